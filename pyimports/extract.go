package pyimports

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrParse is returned when a file cannot be parsed as Python. The caller is
// expected to drop the file's contribution and keep going.
var ErrParse = errors.New("python syntax error")

// ExtractFile parses a Python file and returns its import statements.
func ExtractFile(filePath string) ([]Statement, error) {
	sourceCode, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Extract(sourceCode)
}

// Extract parses Python source code and returns its import statements in
// source order. A tree containing syntax errors fails the whole file with
// ErrParse.
func Extract(sourceCode []byte) ([]Statement, error) {
	lang := python.GetLanguage()

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Python code: %w", err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, ErrParse
	}

	return extractStatementsFromTree(rootNode, sourceCode), nil
}

// extractStatementsFromTree walks the AST and collects import statements.
func extractStatementsFromTree(rootNode *sitter.Node, sourceCode []byte) []Statement {
	var statements []Statement

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		switch n.Type() {
		case "import_statement":
			names := extractImportedNames(n, sourceCode)
			if len(names) > 0 {
				statements = append(statements, Import{Names: names})
			}
		case "import_from_statement", "future_import_statement":
			statements = append(statements, extractImportFrom(n, sourceCode))
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(rootNode)
	return statements
}

// extractImportFrom splits a from-import into its source fragment, relative
// level and imported names. Children before the "import" keyword describe
// the source; children after it are the names.
func extractImportFrom(node *sitter.Node, sourceCode []byte) ImportFrom {
	stmt := ImportFrom{}
	seenImportKeyword := false

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}

		if child.Type() == "import" {
			seenImportKeyword = true
			continue
		}

		if !seenImportKeyword {
			switch child.Type() {
			case "dotted_name":
				stmt.Source = strings.TrimSpace(child.Content(sourceCode))
			case "relative_import":
				stmt.Level, stmt.Source = splitRelativeImport(child, sourceCode)
			case "__future__":
				stmt.Source = strings.TrimSpace(child.Content(sourceCode))
			}
			continue
		}

		if name := extractName(child, sourceCode); name != "" {
			stmt.Names = append(stmt.Names, name)
		}
	}

	return stmt
}

// splitRelativeImport takes a relative_import node (".." or "..pkg.sub") and
// returns the dot count and the trailing dotted fragment, if any.
func splitRelativeImport(node *sitter.Node, sourceCode []byte) (level int, source string) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "import_prefix":
			level = strings.Count(child.Content(sourceCode), ".")
		case "dotted_name":
			source = strings.TrimSpace(child.Content(sourceCode))
		}
	}
	return level, source
}

// extractImportedNames collects the module names of a plain import
// statement, unwrapping aliases.
func extractImportedNames(node *sitter.Node, sourceCode []byte) []string {
	var names []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if name := extractName(child, sourceCode); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// extractName returns the imported name carried by a node, ignoring any
// "as" alias. Wildcard imports yield "*".
func extractName(node *sitter.Node, sourceCode []byte) string {
	switch node.Type() {
	case "dotted_name", "identifier":
		return strings.TrimSpace(node.Content(sourceCode))
	case "wildcard_import":
		return "*"
	case "aliased_import":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			if child.Type() == "dotted_name" || child.Type() == "identifier" {
				return strings.TrimSpace(child.Content(sourceCode))
			}
		}
	}
	return ""
}
