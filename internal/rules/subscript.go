package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/match"
	"simplint/internal/pytree"
)

// subscriptElems returns the index expressions of a subscript. The
// grammar flattens "Union[int, None]" into one element per comma, so a
// multi-element index arrives as a list rather than a tuple node.
func subscriptElems(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i, child := range pytree.NamedChildren(n) {
		if i == 0 || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	if len(out) == 1 {
		if t := pytree.Unparen(out[0]); t != nil && t.Type() == "tuple" {
			return pytree.NamedChildren(t)
		}
	}
	return out
}

// unionParts extracts the subscripted value and its element
// expressions. Annotations arrive as generic_type with a
// type_parameter wrapping each element in a type node; everywhere else
// the grammar produces a plain subscript.
func unionParts(n *sitter.Node) (value *sitter.Node, elems []*sitter.Node) {
	if n.Type() == "generic_type" {
		value = n.NamedChild(0)
		params := n.NamedChild(1)
		if params == nil || params.Type() != "type_parameter" {
			return nil, nil
		}
		for _, p := range pytree.NamedChildren(params) {
			if p.Type() == "type" && p.NamedChildCount() > 0 {
				elems = append(elems, p.NamedChild(0))
			}
		}
		return value, elems
	}
	value, _ = pytree.SubscriptParts(n)
	return value, subscriptElems(n)
}

// SIM907: Union[X, None] spells Optional[X].
func checkUnionNone(rc *Context, n *sitter.Node) []diag.Diagnostic {
	value, elems := unionParts(n)
	if !match.IsName(rc.Tree, value, "Union") {
		return nil
	}
	if len(elems) < 2 {
		return nil
	}
	hasNone := false
	var others []*sitter.Node
	for _, elt := range elems {
		if match.IsNone(pytree.Unparen(elt)) {
			hasNone = true
		} else {
			others = append(others, elt)
		}
	}
	if !hasNone || len(others) != 1 {
		return nil
	}
	return warnf(rc, diag.UnionNone, n, "Use 'Optional[%s]' instead of '%s'",
		rc.Render(others[0]), rc.Render(n))
}
