package deadscan

// ImportKind distinguishes module imports from package imports.
type ImportKind int

const (
	// KindModule is an import that resolves to a single source file.
	KindModule ImportKind = iota
	// KindPackage is an import that resolves to a directory.
	KindPackage
)

// ResolvedImport is one canonical project-relative import. Dotted is the
// module identifier relative to the project root.
type ResolvedImport struct {
	Kind   ImportKind
	Dotted string
}

// ModuleImport returns a module-kind resolved import.
func ModuleImport(dotted string) ResolvedImport {
	return ResolvedImport{Kind: KindModule, Dotted: dotted}
}

// PackageImport returns a package-kind resolved import.
func PackageImport(dotted string) ResolvedImport {
	return ResolvedImport{Kind: KindPackage, Dotted: dotted}
}
