package rules

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/pytree"
)

// topLevelAssign reports whether n is the head of an assignment
// statement, not a link inside a chained "a = b = c".
func topLevelAssign(rc *Context, n *sitter.Node) (stmt *sitter.Node, ok bool) {
	p := rc.Tree.Parent(n)
	if p == nil || p.Type() != "expression_statement" {
		return nil, false
	}
	return p, true
}

// SIM904: a dict literal assignment immediately followed by a
// subscript store into the same variable can initialize the dict
// inline. If the stored value mentions the dict itself the split is
// genuine and stays quiet.
func checkDictInitThenAssign(rc *Context, n *sitter.Node) []diag.Diagnostic {
	stmt, ok := topLevelAssign(rc, n)
	if !ok {
		return nil
	}
	target, value := pytree.AssignParts(n)
	if target == nil || target.Type() != "identifier" {
		return nil
	}
	if value == nil || value.Type() != "dictionary" {
		return nil
	}

	next := rc.Tree.NextStmt(stmt)
	nextAssign := pytree.ExprOf(next)
	if nextAssign == nil || nextAssign.Type() != "assignment" {
		return nil
	}
	nextTarget, nextValue := pytree.AssignParts(nextAssign)
	sub := nextTarget
	if sub == nil || sub.Type() != "subscript" || nextValue == nil {
		return nil
	}
	base, _ := pytree.SubscriptParts(sub)
	if base == nil || base.Type() != "identifier" {
		return nil
	}
	dictName := rc.Render(target)
	if rc.Text(base) != dictName {
		return nil
	}
	// Coarse textual containment, as a cheap alias check.
	if strings.Contains(rc.Render(nextValue), dictName) {
		return nil
	}
	return warnf(rc, diag.DictInitThenAssign, n, "Initialize dictionary '%s' directly", dictName)
}

// SIM909: an assignment whose value re-appears among its own targets
// is a no-op. Class bodies redeclare attributes on purpose and are
// exempt.
func checkReflexiveAssign(rc *Context, n *sitter.Node) []diag.Diagnostic {
	stmt, ok := topLevelAssign(rc, n)
	if !ok {
		return nil
	}

	var names []string
	cur := n
	var value *sitter.Node
	for cur != nil && cur.Type() == "assignment" {
		left, right := pytree.AssignParts(cur)
		if left == nil || right == nil {
			return nil
		}
		names = append(names, rc.Render(left))
		value = right
		cur = right
	}
	switch value.Type() {
	case "identifier", "subscript", "tuple", "expression_list":
		names = append(names, rc.Render(value))
	}

	seen := map[string]bool{}
	duplicate := false
	for _, name := range names {
		if seen[name] {
			duplicate = true
		}
		seen[name] = true
	}
	if !duplicate {
		return nil
	}
	if inClassBody(rc, stmt) {
		return nil
	}
	return warnf(rc, diag.ReflexiveAssign, n, "Remove reflexive assignment '%s'", rc.Render(n))
}

func inClassBody(rc *Context, stmt *sitter.Node) bool {
	block := rc.Tree.Parent(stmt)
	if block == nil || block.Type() != "block" {
		return false
	}
	owner := rc.Tree.Parent(block)
	return owner != nil && owner.Type() == "class_definition"
}
