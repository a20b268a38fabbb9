package candidate

import (
	"bytes"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// tree-sitter recovers from several errors CPython rejects without leaving
// an ERROR node: bad indentation and Python 2 syntax. checkStructure finds
// those in an otherwise clean tree.

// python2Kinds are statements the grammar still accepts for Python 2.
var python2Kinds = map[string]string{
	"print_statement": "missing parentheses in call to 'print'",
	"exec_statement":  "missing parentheses in call to 'exec'",
}

// clauseKinds continue a compound statement and must line up with it.
var clauseKinds = map[string]bool{
	"elif_clause":         true,
	"else_clause":         true,
	"except_clause":       true,
	"except_group_clause": true,
	"finally_clause":      true,
}

// checkStructure returns the first violation in document order, or nil.
func checkStructure(root *sitter.Node, source []byte) *SyntaxError {
	var found *SyntaxError
	report := func(e *SyntaxError) {
		if e != nil && (found == nil || e.precedes(found)) {
			found = e
		}
	}

	report(checkAlignment(namedStatements(root), 0))

	walkTree(root, func(n *sitter.Node) bool {
		kind := n.Kind()
		switch {
		case python2Kinds[kind] != "":
			report(syntaxErrorAt(n, python2Kinds[kind]))
			return false
		case !n.IsNamed() && kind == "<>":
			report(syntaxErrorAt(n, `invalid operator "<>", use "!="`))
		case kind == "block":
			report(checkBlock(n))
		case clauseKinds[kind]:
			report(checkClause(n))
		}
		return true
	})

	report(findBacktick(root, source))
	return found
}

// checkBlock verifies the body of a compound statement. A body on the
// header's line is a simple statement list; otherwise it must be indented
// deeper than the header and its statements must share one column.
func checkBlock(block *sitter.Node) *SyntaxError {
	header := block.Parent()
	if header == nil {
		return nil
	}

	headerEnd := header.StartPosition().Row
	if colon := prevNonExtra(block); colon != nil {
		headerEnd = colon.EndPosition().Row
	}

	stmts := namedStatements(block)
	if len(stmts) == 0 {
		return &SyntaxError{Line: int(headerEnd) + 2, Column: 1, Message: "expected an indented block"}
	}

	first := stmts[0]
	if first.StartPosition().Row == headerEnd {
		return nil
	}

	indent := first.StartPosition().Column
	if indent <= header.StartPosition().Column {
		return syntaxErrorAt(first, "expected an indented block")
	}
	return checkAlignment(stmts, indent)
}

// checkAlignment requires every statement that starts a line to start at
// column indent. Statements after a semicolon share a line and are skipped.
func checkAlignment(stmts []*sitter.Node, indent uint) *SyntaxError {
	lastRow := -1
	for _, stmt := range stmts {
		pos := stmt.StartPosition()
		startsLine := int(pos.Row) > lastRow
		lastRow = int(stmt.EndPosition().Row)
		if !startsLine {
			continue
		}

		switch {
		case pos.Column > indent:
			return syntaxErrorAt(stmt, "unexpected indent")
		case pos.Column < indent:
			return syntaxErrorAt(stmt, "unindent does not match any outer indentation level")
		}
	}
	return nil
}

func checkClause(clause *sitter.Node) *SyntaxError {
	parent := clause.Parent()
	if parent == nil || clause.StartPosition().Column == parent.StartPosition().Column {
		return nil
	}
	return syntaxErrorAt(clause, "clause is not aligned with its statement")
}

// findBacktick reports a backtick outside strings and comments. The grammar
// has no rule for Python 2 repr quotes.
func findBacktick(root *sitter.Node, source []byte) *SyntaxError {
	offset := 0
	for {
		i := bytes.IndexByte(source[offset:], '`')
		if i < 0 {
			return nil
		}
		pos := offset + i
		if !insideStringOrComment(root, uint(pos)) {
			lineStart := bytes.LastIndexByte(source[:pos], '\n')
			return &SyntaxError{
				Line:    bytes.Count(source[:pos], []byte{'\n'}) + 1,
				Column:  pos - lineStart,
				Message: "invalid syntax near \"`\"",
			}
		}
		offset = pos + 1
	}
}

func insideStringOrComment(root *sitter.Node, pos uint) bool {
	for n := root.DescendantForByteRange(pos, pos+1); n != nil; n = n.Parent() {
		switch n.Kind() {
		case "string", "string_content", "comment":
			return true
		}
	}
	return false
}

// namedStatements returns the named children of n that are not extras such
// as comments.
func namedStatements(n *sitter.Node) []*sitter.Node {
	var stmts []*sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil || child.IsExtra() {
			continue
		}
		stmts = append(stmts, child)
	}
	return stmts
}

func prevNonExtra(n *sitter.Node) *sitter.Node {
	prev := n.PrevSibling()
	for prev != nil && prev.IsExtra() {
		prev = prev.PrevSibling()
	}
	return prev
}

func syntaxErrorAt(n *sitter.Node, message string) *SyntaxError {
	pos := n.StartPosition()
	return &SyntaxError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1, Message: message}
}
