package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/match"
	"simplint/internal/pytree"
)

// SIM118: "key in d.keys()" is "key in d".
func checkKeyInDict(rc *Context, n *sitter.Node) []diag.Diagnostic {
	operands, ops := rc.Tree.CompareParts(n)
	if len(ops) != 1 || ops[0] != "in" {
		return nil
	}
	call := pytree.Unparen(operands[1])
	if call == nil || call.Type() != "call" {
		return nil
	}
	fn, _, _ := pytree.CallParts(call)
	obj, attr := pytree.AttributeParts(fn)
	if obj == nil || rc.Text(attr) != "keys" {
		return nil
	}
	el := rc.Render(operands[0])
	dict := rc.Render(obj)
	return warnf(rc, diag.KeyInDict, n, "Use '%s in %s' instead of '%s in %s.keys()'", el, dict, el, dict)
}

// SIM300: a constant on the left of an equality reads backwards.
func checkYodaCondition(rc *Context, n *sitter.Node) []diag.Diagnostic {
	operands, ops := rc.Tree.CompareParts(n)
	if len(ops) != 1 || ops[0] != "==" {
		return nil
	}
	if !match.IsConstant(pytree.Unparen(operands[0])) {
		return nil
	}
	left := rc.Render(operands[0])
	right := rc.Render(operands[1])
	return warnf(rc, diag.YodaCondition, n,
		"Use '%s == %s' instead of '%s == %s' (Yoda-conditions)", right, left, left, right)
}
