package candidate

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// TestPrefix is the naming convention a function must follow to count as a test.
const TestPrefix = "test_"

// pythonLanguage is immutable and shared; parsers are created per call.
var pythonLanguage = sitter.NewLanguage(python.Language())

// parsePython parses source with tree-sitter and rejects any tree that
// contains ERROR or MISSING nodes or breaks the indentation and Python 3
// rules checked by checkStructure. Lone CR line breaks must already be
// mapped to LF (see unifyLineBreaks). The caller owns the returned tree.
func parsePython(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(pythonLanguage); err != nil {
		return nil, fmt.Errorf("failed to load python grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &SyntaxError{Line: 1, Column: 1, Message: "parser produced no syntax tree"}
	}

	if err := firstSyntaxError(tree.RootNode(), source); err != nil {
		tree.Close()
		return nil, err
	}
	if err := checkStructure(tree.RootNode(), source); err != nil {
		tree.Close()
		return nil, err
	}

	return tree, nil
}

// firstSyntaxError returns a SyntaxError for the first ERROR or MISSING node
// in document order, or nil for a clean tree.
func firstSyntaxError(root *sitter.Node, source []byte) *SyntaxError {
	if !root.HasError() {
		return nil
	}

	var bad *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if bad != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			bad = n
			return false
		}
		return n.HasError()
	})

	if bad == nil {
		pos := root.StartPosition()
		return &SyntaxError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1, Message: "invalid syntax"}
	}

	pos := bad.StartPosition()
	return &SyntaxError{
		Line:    int(pos.Row) + 1,
		Column:  int(pos.Column) + 1,
		Message: describeErrorNode(bad, source),
	}
}

func describeErrorNode(n *sitter.Node, source []byte) string {
	if n.IsMissing() {
		return fmt.Sprintf("missing %q", n.Kind())
	}

	snippet := extractNodeText(n, source)
	if idx := strings.IndexByte(snippet, '\n'); idx >= 0 {
		snippet = snippet[:idx]
	}
	snippet = strings.TrimSpace(snippet)
	if len(snippet) > 40 {
		snippet = snippet[:40] + "..."
	}
	if snippet == "" {
		return "invalid syntax"
	}
	return fmt.Sprintf("invalid syntax near %q", snippet)
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
// Returning false from the visitor skips that node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// testFunctions returns every function_definition whose name satisfies
// isTest, at any depth, in source order.
func testFunctions(root *sitter.Node, source []byte, isTest func(string) bool) []*sitter.Node {
	var found []*sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() == "function_definition" && isTest(functionName(n, source)) {
			found = append(found, n)
		}
		return true
	})
	return found
}

func functionName(node *sitter.Node, source []byte) string {
	return extractNodeText(node.ChildByFieldName("name"), source)
}

func hasTestPrefix(name string) bool {
	return strings.HasPrefix(name, TestPrefix)
}

// unifyLineBreaks maps lone CR line breaks to LF. CRLF pairs are left alone
// and the byte length never changes, so positions stay valid for the
// original text.
func unifyLineBreaks(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	b := []byte(text)
	for i, c := range b {
		if c == '\r' && (i+1 == len(b) || b[i+1] != '\n') {
			b[i] = '\n'
		}
	}
	return string(b)
}
