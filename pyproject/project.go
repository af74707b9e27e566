package pyproject

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned when no ancestor of the starting path carries a
// project root marker.
var ErrRootNotFound = errors.New("no project root found")

// Project is a located project root together with the layout conventions
// needed to translate between file paths and dotted module identifiers.
// Immutable once located.
type Project struct {
	root            string
	sourceSuffix    string
	initializerName string
}

// Locate walks upward from start (a file or directory) and returns the first
// ancestor, inclusive, that contains one of the marker files. It fails with
// ErrRootNotFound when the filesystem root is reached without a match.
func Locate(start string, markers []string, sourceSuffix, initializerName string) (*Project, error) {
	absStart, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve start path %s: %w", start, err)
	}

	dir := absStart
	if info, statErr := os.Stat(absStart); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(absStart)
	}

	for {
		for _, marker := range markers {
			if _, statErr := os.Stat(filepath.Join(dir, marker)); statErr == nil {
				return &Project{
					root:            dir,
					sourceSuffix:    sourceSuffix,
					initializerName: initializerName,
				}, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("%w: searched from %s upward for %v", ErrRootNotFound, absStart, markers)
		}
		dir = parent
	}
}

// Root returns the absolute project root directory.
func (p *Project) Root() string {
	return p.root
}

// InitializerName returns the package initializer filename.
func (p *Project) InitializerName() string {
	return p.initializerName
}

// SourceSuffix returns the source file extension, including the dot.
func (p *Project) SourceSuffix() string {
	return p.sourceSuffix
}
