package rules

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/pytree"
)

func warn(rc *Context, code diag.Code, n *sitter.Node, msg string) []diag.Diagnostic {
	return []diag.Diagnostic{diag.NewWarning(code, rc.Span(n), msg)}
}

func warnf(rc *Context, code diag.Code, n *sitter.Node, format string, args ...any) []diag.Diagnostic {
	return warn(rc, code, n, fmt.Sprintf(format, args...))
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// isExceptionCheck reports whether n is the condition of an if arm whose
// body is a single raise statement. Negated comparisons inside such
// guards are idiomatic and the negation rules leave them alone.
func isExceptionCheck(rc *Context, n *sitter.Node) bool {
	p := rc.Tree.Parent(n)
	for p != nil && p.Type() == "parenthesized_expression" {
		n = p
		p = rc.Tree.Parent(p)
	}
	if p == nil {
		return false
	}
	var cond *sitter.Node
	var body []*sitter.Node
	switch p.Type() {
	case "if_statement":
		cond = p.ChildByFieldName("condition")
		body = pytree.Statements(p.ChildByFieldName("consequence"))
	case "elif_clause":
		cond = p.ChildByFieldName("condition")
		body = pytree.Statements(p.ChildByFieldName("consequence"))
	default:
		return false
	}
	if !sameNode(cond, n) {
		return false
	}
	return len(body) == 1 && body[0].Type() == "raise_statement"
}

// returnValue returns the expression of a return statement, or nil when
// the statement is not a return or returns nothing.
func returnValue(n *sitter.Node) *sitter.Node {
	if n == nil || n.Type() != "return_statement" {
		return nil
	}
	if n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}

func isReturn(n *sitter.Node) bool {
	return n != nil && n.Type() == "return_statement"
}

func isRaise(n *sitter.Node) bool {
	return n != nil && n.Type() == "raise_statement"
}

// hasDirectReturn reports whether one of the statements is itself a
// return. Nested blocks are deliberately not searched.
func hasDirectReturn(stmts []*sitter.Node) bool {
	for _, s := range stmts {
		if isReturn(s) {
			return true
		}
	}
	return false
}
