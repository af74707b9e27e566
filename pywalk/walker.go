// Package pywalk enumerates the source files a scan operates on. It honors
// nested .gitignore/.ignore conventions via gocodewalker and applies the
// user-supplied ignore patterns on top.
package pywalk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/boyter/gocodewalker"
)

// queueSize bounds the walker's in-flight file buffer.
const queueSize = 256

// Enumerate returns the absolute paths of all source files with the given
// extension under roots. Roots may be files or directories; a root that does
// not exist is an error. Results are deduplicated and sorted so callers see
// a stable order regardless of walk concurrency.
func Enumerate(roots []string, ignorePatterns []string, extension string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)
	var files []string

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", root, err)
		}

		info, err := os.Stat(absRoot)
		if err != nil {
			return nil, fmt.Errorf("path does not exist: %s", root)
		}

		if info.IsDir() {
			dirs = append(dirs, absRoot)
			continue
		}

		// Explicitly named files bypass ignore rules, matching how a user
		// expects a direct argument to behave.
		if strings.TrimPrefix(filepath.Ext(absRoot), ".") == extension && !seen[absRoot] {
			seen[absRoot] = true
			files = append(files, absRoot)
		}
	}

	if len(dirs) > 0 {
		walked, err := walkDirs(dirs, ignorePatterns, extension)
		if err != nil {
			return nil, err
		}
		for _, f := range walked {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// walkDirs runs a single gocodewalker pass over all directories, filtered to
// the source extension, and drops anything matching an ignore pattern.
func walkDirs(dirs []string, ignorePatterns []string, extension string) ([]string, error) {
	fileListQueue := make(chan *gocodewalker.File, queueSize)

	fileWalker := gocodewalker.NewParallelFileWalker(dirs, fileListQueue)
	fileWalker.AllowListExtensions = append(fileWalker.AllowListExtensions, extension)
	fileWalker.SetErrorHandler(func(err error) bool {
		// Unreadable entries are skipped; the walk itself keeps going.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return true
	})

	walkErr := make(chan error, 1)
	go func() {
		walkErr <- fileWalker.Start()
	}()

	var files []string
	for f := range fileListQueue {
		absPath, err := filepath.Abs(f.Location)
		if err != nil {
			continue
		}
		if ignored(absPath, dirs, ignorePatterns) {
			continue
		}
		files = append(files, absPath)
	}

	if err := <-walkErr; err != nil {
		return nil, fmt.Errorf("failed to walk directories: %w", err)
	}

	return files, nil
}

// ignored reports whether path matches any user-supplied ignore pattern.
// Patterns are tried as doublestar globs against the path relative to each
// walked directory, and as plain path prefixes so "-I build" skips a whole
// subtree.
func ignored(path string, dirs []string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	var rels []string
	for _, dir := range dirs {
		rel, err := filepath.Rel(dir, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		rels = append(rels, filepath.ToSlash(rel))
	}

	for _, pattern := range patterns {
		cleaned := filepath.ToSlash(filepath.Clean(pattern))
		for _, rel := range rels {
			if rel == cleaned || strings.HasPrefix(rel, cleaned+"/") {
				return true
			}
			if ok, err := doublestar.Match(cleaned, rel); err == nil && ok {
				return true
			}
		}
	}

	return false
}
