package rules

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/match"
	"simplint/internal/pytree"
)

// SIM104: a loop that only re-yields its target is "yield from". Async
// generators have no "yield from" so loops directly inside an async
// function stay quiet.
func checkYieldFrom(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if pytree.IsAsync(n) {
		return nil
	}
	target, iter, body, elseBody := pytree.ForParts(n)
	if target == nil || len(body) != 1 || elseBody != nil {
		return nil
	}
	if target.Type() != "identifier" {
		return nil
	}
	yield := pytree.ExprOf(body[0])
	if yield == nil || yield.Type() != "yield" {
		return nil
	}
	if yield.ChildCount() > 1 && yield.Child(1).Type() == "from" {
		return nil
	}
	if yield.NamedChildCount() != 1 {
		return nil
	}
	value := pytree.Unparen(yield.NamedChild(0))
	if !match.SameName(rc.Tree, target, value) {
		return nil
	}
	if inDirectAsyncFunction(rc, n) {
		return nil
	}
	return warnf(rc, diag.YieldFrom, n, "Use 'yield from %s'", rc.Render(iter))
}

// inDirectAsyncFunction reports whether n is a top-level statement of
// an async function body.
func inDirectAsyncFunction(rc *Context, n *sitter.Node) bool {
	block := rc.Tree.Parent(n)
	if block == nil || block.Type() != "block" {
		return false
	}
	fn := rc.Tree.Parent(block)
	return fn != nil && fn.Type() == "function_definition" && pytree.IsAsync(fn)
}

// anyAllLoop matches "for t in it: if check: return <bool>" followed by
// a sibling return.
func anyAllLoop(rc *Context, n *sitter.Node) (check, target, iter *sitter.Node, retTrue, ok bool) {
	if pytree.IsAsync(n) {
		return nil, nil, nil, false, false
	}
	target, iter, body, _ := pytree.ForParts(n)
	if target == nil || len(body) != 1 || body[0].Type() != "if_statement" {
		return nil, nil, nil, false, false
	}
	cond, ifBody, _, _ := pytree.IfParts(body[0])
	if len(ifBody) != 1 {
		return nil, nil, nil, false, false
	}
	value := returnValue(ifBody[0])
	if !match.IsBoolLiteral(value) {
		return nil, nil, nil, false, false
	}
	if !isReturn(rc.Tree.NextStmt(n)) {
		return nil, nil, nil, false, false
	}
	return cond, target, iter, match.IsTrue(value), true
}

// negateText inverts a rendered boolean expression. A leading "not "
// strips instead of doubling; "and"/"or" chains get parentheses so the
// negation binds the whole expression.
func negateText(expr string) string {
	if strings.Contains(expr, " and ") || strings.Contains(expr, " or ") {
		return "not (" + expr + ")"
	}
	if strings.HasPrefix(expr, "not ") {
		return expr[len("not "):]
	}
	return "not " + expr
}

// SIM110: the loop returns True on the first hit, so it is any().
func checkUseAny(rc *Context, n *sitter.Node) []diag.Diagnostic {
	cond, target, iter, retTrue, ok := anyAllLoop(rc, n)
	if !ok || !retTrue {
		return nil
	}
	return warnf(rc, diag.UseAny, n, "Use 'return any(%s for %s in %s)'",
		rc.Render(cond), rc.Render(target), rc.Render(iter))
}

// SIM111: the loop returns False on the first hit, so it is all() of
// the negated check.
func checkUseAll(rc *Context, n *sitter.Node) []diag.Diagnostic {
	cond, target, iter, retTrue, ok := anyAllLoop(rc, n)
	if !ok || retTrue {
		return nil
	}
	return warnf(rc, diag.UseAll, n, "Use 'return all(%s for %s in %s)'",
		negateText(rc.Render(cond)), rc.Render(target), rc.Render(iter))
}

// counterInitialized reports whether a statement before the loop in the
// same suite assigns the counter by plain name.
func counterInitialized(rc *Context, loop *sitter.Node, name string) bool {
	for prev := rc.Tree.PrevStmt(loop); prev != nil; prev = rc.Tree.PrevStmt(prev) {
		assign := pytree.ExprOf(prev)
		if assign == nil || assign.Type() != "assignment" {
			continue
		}
		left, right := pytree.AssignParts(assign)
		if right != nil && left != nil && left.Type() == "identifier" && rc.Tree.Text(left) == name {
			return true
		}
	}
	return false
}

// SIM113: a counter incremented by one on every iteration is what
// enumerate provides. Only counters initialized by a plain assignment
// before the loop count; loops with a continue may skip the increment,
// so they stay quiet. Reported at the counter statement rather than
// the loop head.
func checkUseEnumerate(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if pytree.IsAsync(n) {
		return nil
	}
	_, _, body, _ := pytree.ForParts(n)
	if len(body) == 0 || match.ContainsContinue(body) {
		return nil
	}
	var out []diag.Diagnostic
	for _, stmt := range body {
		aug := pytree.ExprOf(stmt)
		if aug == nil || aug.Type() != "augmented_assignment" || !match.IsPlusOne(rc.Tree, aug) {
			continue
		}
		left, _, _ := rc.Tree.AugAssignParts(aug)
		if left == nil || left.Type() != "identifier" {
			continue
		}
		if !counterInitialized(rc, n, rc.Tree.Text(left)) {
			continue
		}
		out = append(out, diag.NewWarning(diag.UseEnumerate, rc.Span(aug),
			"Use enumerate instead of '"+rc.Render(left)+"'"))
	}
	return out
}
