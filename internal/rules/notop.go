package rules

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/pytree"
)

// negatedCompare matches "not <left> <op> <right>" for a single
// comparison operator and returns the rendered sides.
func negatedCompare(rc *Context, n *sitter.Node, op string) (left, right string, ok bool) {
	cmp := pytree.Unparen(pytree.NotArg(n))
	if cmp == nil || cmp.Type() != "comparison_operator" {
		return "", "", false
	}
	operands, ops := rc.Tree.CompareParts(cmp)
	if len(ops) != 1 || ops[0] != op {
		return "", "", false
	}
	if isExceptionCheck(rc, n) {
		return "", "", false
	}
	return rc.Render(operands[0]), rc.Render(operands[1]), true
}

func checkNegatedCompare(rc *Context, code diag.Code, n *sitter.Node, op, format string) []diag.Diagnostic {
	left, right, ok := negatedCompare(rc, n, op)
	if !ok {
		return nil
	}
	return warn(rc, code, n, fmt.Sprintf(format, left, right, left, right))
}

// SIM201: "not a == b" is "a != b".
func checkNegatedEq(rc *Context, n *sitter.Node) []diag.Diagnostic {
	return checkNegatedCompare(rc, diag.NegatedEq, n, "==", "Use '%s != %s' instead of 'not %s == %s'")
}

// SIM202: "not a != b" is "a == b".
func checkNegatedNotEq(rc *Context, n *sitter.Node) []diag.Diagnostic {
	return checkNegatedCompare(rc, diag.NegatedNotEq, n, "!=", "Use '%s == %s' instead of 'not %s != %s'")
}

// SIM203: "not a in b" is "a not in b".
func checkNegatedIn(rc *Context, n *sitter.Node) []diag.Diagnostic {
	return checkNegatedCompare(rc, diag.NegatedIn, n, "in", "Use '%s not in %s' instead of 'not %s in %s'")
}

// SIM204: "not a < b" is "a >= b".
func checkNegatedLt(rc *Context, n *sitter.Node) []diag.Diagnostic {
	return checkNegatedCompare(rc, diag.NegatedLt, n, "<", "Use '%s >= %s' instead of 'not (%s < %s)'")
}

// SIM205: "not a <= b" is "a > b".
func checkNegatedLtE(rc *Context, n *sitter.Node) []diag.Diagnostic {
	return checkNegatedCompare(rc, diag.NegatedLtE, n, "<=", "Use '%s > %s' instead of 'not (%s <= %s)'")
}

// SIM206: "not a > b" is "a <= b".
func checkNegatedGt(rc *Context, n *sitter.Node) []diag.Diagnostic {
	return checkNegatedCompare(rc, diag.NegatedGt, n, ">", "Use '%s <= %s' instead of 'not (%s > %s)'")
}

// SIM207: "not a >= b" is "a < b".
func checkNegatedGtE(rc *Context, n *sitter.Node) []diag.Diagnostic {
	return checkNegatedCompare(rc, diag.NegatedGtE, n, ">=", "Use '%s < %s' instead of 'not (%s >= %s)'")
}

// SIM208: "not (not a)" is "a". Unlike the comparison negations this
// also fires inside guard conditions.
func checkDoubleNegation(rc *Context, n *sitter.Node) []diag.Diagnostic {
	inner := pytree.Unparen(pytree.NotArg(n))
	if inner == nil || inner.Type() != "not_operator" {
		return nil
	}
	a := rc.Render(pytree.NotArg(inner))
	return warnf(rc, diag.DoubleNegation, n, "Use '%s' instead of 'not (not %s)'", a, a)
}
