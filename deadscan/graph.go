package deadscan

import (
	"sort"

	"github.com/dominikbraun/graph"
)

// ImporterGraph is a directed graph from importing files (root-relative
// paths) to the dotted identifiers their statements resolved to. It is built
// during the fold and queried by the why command.
type ImporterGraph struct {
	g graph.Graph[string, string]
}

// NewImporterGraph returns an empty importer graph.
func NewImporterGraph() *ImporterGraph {
	return &ImporterGraph{g: graph.New(graph.StringHash, graph.Directed())}
}

// AddImport records that importerPath resolved an import to targetDotted.
// Re-adding an existing edge is a no-op.
func (ig *ImporterGraph) AddImport(importerPath, targetDotted string) {
	_ = ig.g.AddVertex(importerPath)
	_ = ig.g.AddVertex(targetDotted)
	_ = ig.g.AddEdge(importerPath, targetDotted)
}

// Importers returns the sorted set of files whose imports resolved to any of
// the given dotted identifiers.
func (ig *ImporterGraph) Importers(dotted ...string) []string {
	predecessors, err := ig.g.PredecessorMap()
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	for _, d := range dotted {
		for importer := range predecessors[d] {
			seen[importer] = true
		}
	}

	importers := make([]string, 0, len(seen))
	for importer := range seen {
		importers = append(importers, importer)
	}
	sort.Strings(importers)
	return importers
}
