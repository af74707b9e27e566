package deadscan

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LegacyCodeHQ/deadfile/config"
	"github.com/LegacyCodeHQ/deadfile/pyimports"
	"github.com/LegacyCodeHQ/deadfile/pyproject"
	"github.com/LegacyCodeHQ/deadfile/pywalk"
)

// ContentReader reads file content given a file path. It exists so tests can
// inject content without touching the filesystem.
type ContentReader func(filePath string) ([]byte, error)

// Report is the immutable outcome of one scan.
type Report struct {
	// Root is the located project root.
	Root string
	// Dead holds root-relative paths of dead files, sorted and unique.
	Dead []string
	// ScannedFiles is the number of source files parsed for imports.
	ScannedFiles int
	// Elapsed is the wall time of the scan.
	Elapsed time.Duration
	// Warnings holds per-file and per-statement failures that were absorbed.
	Warnings []string
	// Graph maps importing files to the identifiers they import.
	Graph *ImporterGraph
}

// Scanner runs the locate → enumerate → resolve → fold → filter pipeline.
// It holds no state across runs.
type Scanner struct {
	conv     config.Conventions
	probe    pyproject.Probe
	readFile ContentReader
}

// NewScanner returns a scanner using the live filesystem.
func NewScanner(conv config.Conventions) *Scanner {
	return NewScannerWithReader(conv, os.ReadFile)
}

// NewScannerWithReader returns a scanner that reads file content through the
// given reader instead of the live filesystem. Tests use it to simulate
// files vanishing or failing to read between enumeration and parse.
func NewScannerWithReader(conv config.Conventions, readFile ContentReader) *Scanner {
	return &Scanner{
		conv:     conv,
		probe:    pyproject.NewFSProbe(),
		readFile: readFile,
	}
}

// Scan analyzes the target paths and reports dead files. The import graph is
// always built over the whole project root, which may be a superset of the
// target scope. Per-file failures are absorbed into Report.Warnings; only
// root location and invalid target paths are fatal.
func (s *Scanner) Scan(targets []string, ignorePatterns []string) (*Report, error) {
	start := time.Now()

	if len(targets) == 0 {
		return nil, fmt.Errorf("at least one target path is required")
	}
	for _, target := range targets {
		if _, err := os.Stat(target); err != nil {
			return nil, fmt.Errorf("target path does not exist: %s", target)
		}
	}

	project, err := pyproject.Locate(targets[0], s.conv.RootMarkers, s.conv.SourceSuffix, s.conv.InitializerName)
	if err != nil {
		return nil, err
	}

	classifier, err := NewClassifier(s.conv.InitializerName, s.conv.EntrypointPattern)
	if err != nil {
		return nil, err
	}

	candidateFiles, err := pywalk.Enumerate(targets, ignorePatterns, s.conv.Extension())
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate target files: %w", err)
	}

	allFiles, err := pywalk.Enumerate([]string{project.Root()}, ignorePatterns, s.conv.Extension())
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate project files: %w", err)
	}

	resolver := NewResolver(project, s.probe)

	// Fan out one task per file. Each task appends only to its own result
	// slot, so no synchronization beyond the final join is needed.
	imports := make([][]ResolvedImport, len(allFiles))
	importWarnings := make([][]string, len(allFiles))
	candidates := make([]Candidate, len(candidateFiles))
	candidateWarnings := make([]string, len(candidateFiles))
	candidateVanished := make([]bool, len(candidateFiles))

	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())

	for i, path := range allFiles {
		group.Go(func() error {
			imports[i], importWarnings[i] = s.resolveFile(resolver, project, path)
			return nil
		})
	}

	for i, path := range candidateFiles {
		group.Go(func() error {
			rel, relErr := filepath.Rel(project.Root(), path)
			if relErr != nil {
				rel = path
			}

			content, readErr := s.readFile(path)
			if readErr != nil {
				if os.IsNotExist(readErr) {
					candidateVanished[i] = true
					candidateWarnings[i] = fmt.Sprintf("file vanished during scan: %s", rel)
					return nil
				}
				// Other read failures keep the file a candidate; the
				// entrypoint check falls back to the filename alone.
				candidateWarnings[i] = fmt.Sprintf("failed to read %s: %v", rel, readErr)
			}
			candidates[i] = Candidate{
				Path:         path,
				IsEntrypoint: classifier.IsEntrypoint(path, content),
			}
			return nil
		})
	}

	_ = group.Wait()

	// Single-threaded fold after all producers have joined.
	builder := NewSetBuilder(s.conv.InitializerModule())
	importerGraph := NewImporterGraph()
	var warnings []string

	for i, fileImports := range imports {
		builder.Fold(fileImports)
		warnings = append(warnings, importWarnings[i]...)

		importer, relErr := filepath.Rel(project.Root(), allFiles[i])
		if relErr != nil {
			importer = allFiles[i]
		}
		for _, imp := range fileImports {
			importerGraph.AddImport(importer, imp.Dotted)
			if imp.Kind == KindPackage {
				importerGraph.AddImport(importer, imp.Dotted+"."+s.conv.InitializerModule())
			}
		}
	}

	liveCandidates := make([]Candidate, 0, len(candidates))
	for i, candidate := range candidates {
		if candidateWarnings[i] != "" {
			warnings = append(warnings, candidateWarnings[i])
		}
		if candidateVanished[i] {
			continue
		}
		liveCandidates = append(liveCandidates, candidate)
	}

	return &Report{
		Root:         project.Root(),
		Dead:         ResolveDeadSet(project, liveCandidates, builder.Set()),
		ScannedFiles: len(allFiles),
		Elapsed:      time.Since(start),
		Warnings:     warnings,
		Graph:        importerGraph,
	}, nil
}

// resolveFile extracts and resolves every import statement of one file.
// A parse failure drops the whole file; a single bad statement drops only
// that statement.
func (s *Scanner) resolveFile(resolver *Resolver, project *pyproject.Project, path string) ([]ResolvedImport, []string) {
	rel, err := filepath.Rel(project.Root(), path)
	if err != nil {
		rel = path
	}

	content, err := s.readFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, []string{fmt.Sprintf("file vanished during scan: %s", rel)}
		}
		return nil, []string{fmt.Sprintf("failed to read %s: %v", rel, err)}
	}

	statements, err := pyimports.Extract(content)
	if err != nil {
		return nil, []string{fmt.Sprintf("skipping %s: %v", rel, err)}
	}

	var resolved []ResolvedImport
	var warnings []string
	for _, stmt := range statements {
		imports, resolveErr := resolver.Resolve(stmt, path)
		if resolveErr != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", rel, resolveErr))
			continue
		}
		resolved = append(resolved, imports...)
	}
	return resolved, warnings
}

// Project locates the project for the given start path using the scanner's
// conventions. The why and watch commands share it with Scan.
func (s *Scanner) Project(start string) (*pyproject.Project, error) {
	return pyproject.Locate(start, s.conv.RootMarkers, s.conv.SourceSuffix, s.conv.InitializerName)
}
