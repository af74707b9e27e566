package deadscan

import (
	"path/filepath"
	"sort"

	"github.com/LegacyCodeHQ/deadfile/pyproject"
)

// Candidate is a file within the user's target scope, paired with its
// entrypoint classification. Entrypoint files are never evaluated for
// deadness.
type Candidate struct {
	Path         string
	IsEntrypoint bool
}

// ResolveDeadSet returns the root-relative paths of candidates that are not
// entrypoints and whose dotted form is absent from the imported set. The
// result is deduplicated and sorted lexicographically, so the output never
// depends on traversal or resolution order.
func ResolveDeadSet(project *pyproject.Project, candidates []Candidate, imported ImportedSet) []string {
	seen := make(map[string]bool)
	dead := make([]string, 0)

	for _, candidate := range candidates {
		if candidate.IsEntrypoint {
			continue
		}
		if imported.Contains(project.ToDotted(candidate.Path)) {
			continue
		}

		rel, err := filepath.Rel(project.Root(), candidate.Path)
		if err != nil {
			rel = candidate.Path
		}
		if !seen[rel] {
			seen[rel] = true
			dead = append(dead, rel)
		}
	}

	sort.Strings(dead)
	return dead
}
