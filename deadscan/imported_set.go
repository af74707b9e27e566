package deadscan

// ImportedSet is the global set of dotted module identifiers referenced by
// any import statement under the project root. Packages are stored expanded
// to their initializer-module form, so a package is reachable only through
// its initializer.
type ImportedSet map[string]struct{}

// Contains reports whether the dotted identifier is in the set.
func (s ImportedSet) Contains(dotted string) bool {
	_, ok := s[dotted]
	return ok
}

// SetBuilder folds resolved imports into one ImportedSet. Insertion is
// idempotent and commutative, so results from unordered producers fold to
// the same set; Fold itself must be called from a single goroutine.
type SetBuilder struct {
	initializerModule string
	set               ImportedSet
}

// NewSetBuilder returns a builder that expands package imports using the
// given initializer module name (e.g. "__init__").
func NewSetBuilder(initializerModule string) *SetBuilder {
	return &SetBuilder{
		initializerModule: initializerModule,
		set:               make(ImportedSet),
	}
}

// Fold inserts a batch of resolved imports.
func (b *SetBuilder) Fold(imports []ResolvedImport) {
	for _, imp := range imports {
		dotted := imp.Dotted
		if imp.Kind == KindPackage {
			dotted = dotted + "." + b.initializerModule
		}
		b.set[dotted] = struct{}{}
	}
}

// Set returns the folded set. The builder must not be used afterwards.
func (b *SetBuilder) Set() ImportedSet {
	return b.set
}
