package deadscan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/deadfile/pyimports"
	"github.com/LegacyCodeHQ/deadfile/pyproject"
)

// ErrEscapesRoot is returned when a relative import ascends past the
// filesystem root. The statement contributes nothing; the run continues.
var ErrEscapesRoot = errors.New("relative import escapes the filesystem root")

// Resolver turns raw import statements into canonical resolved imports.
// Package-vs-module disambiguation goes through the path-kind probe.
type Resolver struct {
	project *pyproject.Project
	probe   pyproject.Probe
}

// NewResolver returns a resolver for the given project.
func NewResolver(project *pyproject.Project, probe pyproject.Probe) *Resolver {
	return &Resolver{project: project, probe: probe}
}

// Resolve translates one statement from currentFile into zero or more
// resolved imports.
func (r *Resolver) Resolve(stmt pyimports.Statement, currentFile string) ([]ResolvedImport, error) {
	switch s := stmt.(type) {
	case pyimports.Import:
		return r.resolvePlain(s), nil
	case pyimports.ImportFrom:
		return r.resolveFrom(s, currentFile)
	}
	return nil, nil
}

// resolvePlain handles "import a.b, c". Plain imports never carry relative
// semantics, so every name resolves against the project root.
func (r *Resolver) resolvePlain(stmt pyimports.Import) []ResolvedImport {
	imports := make([]ResolvedImport, 0, len(stmt.Names))
	for _, name := range stmt.Names {
		if r.probe.Kind(r.project.ToPath(name)) == pyproject.KindDir {
			imports = append(imports, PackageImport(name))
		} else {
			imports = append(imports, ModuleImport(name))
		}
	}
	return imports
}

// resolveFrom handles "from X import a, b" in three steps: pick a base
// directory from the relative level, short-circuit when the source fragment
// names a module file, otherwise resolve each name against the anchor.
func (r *Resolver) resolveFrom(stmt pyimports.ImportFrom, currentFile string) ([]ResolvedImport, error) {
	base := r.project.Root()
	if stmt.Level > 0 {
		base = filepath.Dir(currentFile)
		for i := 1; i < stmt.Level; i++ {
			parent := filepath.Dir(base)
			if parent == base {
				return nil, fmt.Errorf("%w: level %d from %s", ErrEscapesRoot, stmt.Level, currentFile)
			}
			base = parent
		}
	}

	anchor := base
	if stmt.Source != "" {
		joined := filepath.Join(base, dottedToPath(stmt.Source))
		if r.isModuleFile(joined) {
			// The source names a single module; the listed names are
			// attributes of it, not further path segments.
			return []ResolvedImport{ModuleImport(r.project.ToDotted(joined))}, nil
		}
		anchor = joined
	}

	imports := make([]ResolvedImport, 0, len(stmt.Names))
	for _, name := range stmt.Names {
		namePath := filepath.Join(anchor, dottedToPath(name))
		dotted := r.project.ToDotted(namePath)
		if r.probe.Kind(namePath) == pyproject.KindDir {
			imports = append(imports, PackageImport(dotted))
		} else {
			// A missing path is assumed to be a module; the heuristic
			// never hard-fails a statement.
			imports = append(imports, ModuleImport(dotted))
		}
	}
	return imports, nil
}

// isModuleFile reports whether path denotes a module: either the bare path
// or the path with the source suffix appended is a regular file. A directory
// is always a package, even when a shadowed sibling <path><suffix> file
// exists alongside it.
func (r *Resolver) isModuleFile(path string) bool {
	switch r.probe.Kind(path) {
	case pyproject.KindFile:
		return true
	case pyproject.KindDir:
		return false
	}
	return r.probe.Kind(path+r.project.SourceSuffix()) == pyproject.KindFile
}

func dottedToPath(dotted string) string {
	return strings.ReplaceAll(dotted, ".", string(filepath.Separator))
}
