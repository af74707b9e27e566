package deadscan

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// Classifier decides whether a file is a live entrypoint: either the package
// initializer by name, or a file whose text contains the "executed directly"
// idiom. The idiom check is a textual match, not a parse; that keeps it
// cheap and tolerant of files that fail the import extractor.
type Classifier struct {
	initializerName string
	pattern         *regexp.Regexp
}

// NewClassifier compiles the entrypoint pattern.
func NewClassifier(initializerName, entrypointPattern string) (*Classifier, error) {
	pattern, err := regexp.Compile(entrypointPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile entrypoint pattern: %w", err)
	}
	return &Classifier{initializerName: initializerName, pattern: pattern}, nil
}

// IsEntrypoint reports whether the file is live regardless of imports.
func (c *Classifier) IsEntrypoint(path string, content []byte) bool {
	if filepath.Base(path) == c.initializerName {
		return true
	}
	return c.pattern.Match(content)
}
