package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/match"
	"simplint/internal/pytree"
)

// SIM210: "True if x else False" is "bool(x)".
func checkTernaryToBool(rc *Context, n *sitter.Node) []diag.Diagnostic {
	body, cond, orelse := pytree.TernaryParts(n)
	if !match.IsTrue(pytree.Unparen(body)) || !match.IsFalse(pytree.Unparen(orelse)) {
		return nil
	}
	c := rc.Render(cond)
	return warnf(rc, diag.TernaryToBool, n, "Use 'bool(%s)' instead of 'True if %s else False'", c, c)
}

// SIM211: "False if x else True" is "not x".
func checkTernaryToNot(rc *Context, n *sitter.Node) []diag.Diagnostic {
	body, cond, orelse := pytree.TernaryParts(n)
	if !match.IsFalse(pytree.Unparen(body)) || !match.IsTrue(pytree.Unparen(orelse)) {
		return nil
	}
	c := rc.Render(cond)
	return warnf(rc, diag.TernaryToNot, n, "Use 'not %s' instead of 'False if %s else True'", c, c)
}

// SIM212: "b if not a else a" is "a if a else b".
func checkTernaryToOr(rc *Context, n *sitter.Node) []diag.Diagnostic {
	body, cond, orelse := pytree.TernaryParts(n)
	neg := pytree.Unparen(cond)
	arg := pytree.NotArg(neg)
	if arg == nil || !match.SameName(rc.Tree, pytree.Unparen(arg), pytree.Unparen(orelse)) {
		return nil
	}
	a := rc.Render(arg)
	b := rc.Render(body)
	return warnf(rc, diag.TernaryToOr, n, "Use '%s if %s else %s' instead of '%s if not %s else %s'", a, a, b, b, a, a)
}
