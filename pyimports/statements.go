package pyimports

// Statement is one import statement extracted from a Python source file.
type Statement interface {
	statement()
}

// Import is a plain "import a.b, c" statement. Each name is a dotted module
// path as written in the source.
type Import struct {
	Names []string
}

func (Import) statement() {}

// ImportFrom is a "from X import a, b" statement. Level counts the leading
// dots of a relative import; zero means an absolute import. Source is the
// dotted fragment after the dots and may be empty ("from . import x").
type ImportFrom struct {
	Source string
	Names  []string
	Level  int
}

func (ImportFrom) statement() {}
