package rules

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/match"
	"simplint/internal/pytree"
)

// isinstanceArg returns the rendered first argument of an
// isinstance(x, T) call, or "" when n is not such a call.
func isinstanceArg(rc *Context, n *sitter.Node) string {
	call := pytree.Unparen(n)
	if call == nil || call.Type() != "call" {
		return ""
	}
	fn, args, kwargs := pytree.CallParts(call)
	if fn == nil || fn.Type() != "identifier" || rc.Text(fn) != "isinstance" {
		return ""
	}
	if len(args) != 2 || len(kwargs) != 0 {
		return ""
	}
	return rc.Render(args[0])
}

// SIM101: several isinstance checks of the same variable joined by "or"
// can merge their type arguments into one tuple.
func checkDuplicateIsinstance(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if rc.Tree.BoolOp(n) != "or" || !rc.Tree.IsBoolChainHead(n) {
		return nil
	}
	var order []string
	counts := map[string]int{}
	for _, operand := range rc.Tree.FlattenBool(n) {
		arg := isinstanceArg(rc, operand)
		if arg == "" {
			continue
		}
		if counts[arg] == 0 {
			order = append(order, arg)
		}
		counts[arg]++
	}
	var out []diag.Diagnostic
	for _, variable := range order {
		if counts[variable] > 1 {
			out = append(out, diag.NewWarning(diag.DuplicateIsinstance, rc.Span(n), fmt.Sprintf(
				"Multiple isinstance-calls which can be merged into a single call for variable '%s'", variable)))
		}
	}
	return out
}

// SIM109: repeated equality checks of one variable joined by "or" are a
// membership test on a tuple.
func checkCompareToTuple(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if rc.Tree.BoolOp(n) != "or" || !rc.Tree.IsBoolChainHead(n) {
		return nil
	}
	var order []*sitter.Node
	values := map[string][]*sitter.Node{}
	for _, operand := range rc.Tree.FlattenBool(n) {
		cmp := pytree.Unparen(operand)
		if cmp == nil || cmp.Type() != "comparison_operator" {
			continue
		}
		operands, ops := rc.Tree.CompareParts(cmp)
		if len(ops) != 1 || ops[0] != "==" {
			continue
		}
		left, right := operands[0], operands[1]
		if left.Type() != "identifier" || right.Type() != "identifier" {
			continue
		}
		key := rc.Text(left)
		if _, seen := values[key]; !seen {
			order = append(order, left)
		}
		values[key] = append(values[key], right)
	}
	var out []diag.Diagnostic
	for _, variable := range order {
		comparators := values[rc.Text(variable)]
		if len(comparators) < 2 {
			continue
		}
		rendered := make([]string, len(comparators))
		for i, c := range comparators {
			rendered[i] = rc.Render(c)
		}
		out = append(out, diag.NewWarning(diag.CompareToTuple, rc.Span(n), fmt.Sprintf(
			"Use '%s in (%s)' instead of '%s'",
			rc.Text(variable), strings.Join(rendered, ", "), rc.Render(n))))
	}
	return out
}

// contradiction finds the first operand pair "x" / "not x" in the chain.
func contradiction(rc *Context, operands []*sitter.Node) (name *sitter.Node, found bool) {
	var plain, negated []*sitter.Node
	for _, operand := range operands {
		e := pytree.Unparen(operand)
		if arg := pytree.NotArg(e); arg != nil {
			negated = append(negated, pytree.Unparen(arg))
		} else {
			plain = append(plain, e)
		}
	}
	for _, p := range plain {
		for _, neg := range negated {
			if match.SameName(rc.Tree, p, neg) {
				return p, true
			}
		}
	}
	return nil, false
}

// SIM220: "x and not x" is always False.
func checkAndNotSelf(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if rc.Tree.BoolOp(n) != "and" || !rc.Tree.IsBoolChainHead(n) {
		return nil
	}
	name, ok := contradiction(rc, rc.Tree.FlattenBool(n))
	if !ok {
		return nil
	}
	a := rc.Render(name)
	return warnf(rc, diag.AndNotSelf, n, "Use 'False' instead of '%s and not %s'", a, a)
}

// SIM221: "x or not x" is always True.
func checkOrNotSelf(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if rc.Tree.BoolOp(n) != "or" || !rc.Tree.IsBoolChainHead(n) {
		return nil
	}
	name, ok := contradiction(rc, rc.Tree.FlattenBool(n))
	if !ok {
		return nil
	}
	a := rc.Render(name)
	return warnf(rc, diag.OrNotSelf, n, "Use 'True' instead of '%s or not %s'", a, a)
}

// SIM222: an "or" chain containing a literal True is always True.
func checkOrTrue(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if rc.Tree.BoolOp(n) != "or" || !rc.Tree.IsBoolChainHead(n) {
		return nil
	}
	for _, operand := range rc.Tree.FlattenBool(n) {
		if match.IsTrue(pytree.Unparen(operand)) {
			return warn(rc, diag.OrTrue, n, "Use 'True' instead of '... or True'")
		}
	}
	return nil
}

// SIM223: an "and" chain containing a literal False is always False.
func checkAndFalse(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if rc.Tree.BoolOp(n) != "and" || !rc.Tree.IsBoolChainHead(n) {
		return nil
	}
	for _, operand := range rc.Tree.FlattenBool(n) {
		if match.IsFalse(pytree.Unparen(operand)) {
			return warn(rc, diag.AndFalse, n, "Use 'False' instead of '... and False'")
		}
	}
	return nil
}
