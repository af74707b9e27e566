package pyproject

import (
	"path/filepath"
	"strings"
)

// ToDotted converts a path under the project root into its dotted module
// form: the root prefix is stripped, the source suffix removed when present,
// and path separators replaced with dots. The result is compared by literal
// string equality against resolved imports, so ToDotted and ToPath must stay
// exact inverses of each other for any path strictly under the root.
func (p *Project) ToDotted(path string) string {
	rel, err := filepath.Rel(p.root, path)
	if err != nil {
		rel = path
	}
	rel = strings.TrimSuffix(rel, p.sourceSuffix)
	return strings.ReplaceAll(rel, string(filepath.Separator), ".")
}

// ToPath converts a dotted module identifier back into an absolute path
// under the project root, without a source suffix.
func (p *Project) ToPath(dotted string) string {
	return filepath.Join(p.root, strings.ReplaceAll(dotted, ".", string(filepath.Separator)))
}

// Contains reports whether path lies under the project root.
func (p *Project) Contains(path string) bool {
	rel, err := filepath.Rel(p.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
