package pytree

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Branch is one arm of a conditional chain: the syntactic node that
// anchors it (the if_statement itself or an elif_clause), its condition
// and its body statements.
type Branch struct {
	Anchor *sitter.Node
	Cond   *sitter.Node
	Body   []*sitter.Node
}

// IfChain flattens an if_statement into its branches. elif clauses become
// branches, and an else block whose only statement is another if_statement
// continues the chain. The walk stops at the first else block that is not
// exactly one nested conditional; its statements come back as elseBody with
// elseNode pointing at the terminating else_clause.
func (t *Tree) IfChain(n *sitter.Node) (branches []Branch, elseBody []*sitter.Node, elseNode *sitter.Node) {
	cur := n
	for cur != nil && cur.Type() == "if_statement" {
		branches = append(branches, Branch{
			Anchor: cur,
			Cond:   cur.ChildByFieldName("condition"),
			Body:   Statements(cur.ChildByFieldName("consequence")),
		})

		var elseClause *sitter.Node
		for i := 0; i < int(cur.NamedChildCount()); i++ {
			child := cur.NamedChild(i)
			switch child.Type() {
			case "elif_clause":
				branches = append(branches, Branch{
					Anchor: child,
					Cond:   child.ChildByFieldName("condition"),
					Body:   Statements(child.ChildByFieldName("consequence")),
				})
			case "else_clause":
				elseClause = child
			}
		}

		if elseClause == nil {
			return branches, nil, nil
		}
		body := Statements(elseClause.ChildByFieldName("body"))
		if len(body) == 1 && body[0].Type() == "if_statement" {
			cur = body[0]
			continue
		}
		return branches, body, elseClause
	}
	return branches, elseBody, elseNode
}

// Arm views one arm of an if_statement the way it executes: the arm's
// condition and body, plus whatever follows it. An elif after this arm
// plays the role of the whole else branch and comes back as NextElif;
// a plain else block comes back as Else/ElseNode.
type Arm struct {
	Node     *sitter.Node
	Cond     *sitter.Node
	Body     []*sitter.Node
	NextElif *sitter.Node
	Else     []*sitter.Node
	ElseNode *sitter.Node
}

// Arms returns one Arm per arm of an if_statement: the if itself plus
// every elif clause, in source order.
func (t *Tree) Arms(n *sitter.Node) []Arm {
	if n == nil || n.Type() != "if_statement" {
		return nil
	}
	arms := []Arm{{
		Node: n,
		Cond: n.ChildByFieldName("condition"),
		Body: Statements(n.ChildByFieldName("consequence")),
	}}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "elif_clause":
			arms[len(arms)-1].NextElif = child
			arms = append(arms, Arm{
				Node: child,
				Cond: child.ChildByFieldName("condition"),
				Body: Statements(child.ChildByFieldName("consequence")),
			})
		case "else_clause":
			arms[len(arms)-1].Else = ElseBody(child)
			arms[len(arms)-1].ElseNode = child
		}
	}
	return arms
}

// IfParts returns the raw pieces of a single if_statement without chain
// flattening: condition, consequence statements, elif clauses and the
// else clause (nil when absent).
func IfParts(n *sitter.Node) (cond *sitter.Node, body []*sitter.Node, elifs []*sitter.Node, elseClause *sitter.Node) {
	if n == nil || n.Type() != "if_statement" {
		return nil, nil, nil, nil
	}
	cond = n.ChildByFieldName("condition")
	body = Statements(n.ChildByFieldName("consequence"))
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "elif_clause":
			elifs = append(elifs, child)
		case "else_clause":
			elseClause = child
		}
	}
	return cond, body, elifs, elseClause
}

// ElseBody returns the statements of an else_clause.
func ElseBody(elseClause *sitter.Node) []*sitter.Node {
	if elseClause == nil {
		return nil
	}
	return Statements(elseClause.ChildByFieldName("body"))
}

// ElifParts returns condition and body statements of an elif_clause.
func ElifParts(n *sitter.Node) (cond *sitter.Node, body []*sitter.Node) {
	if n == nil || n.Type() != "elif_clause" {
		return nil, nil
	}
	return n.ChildByFieldName("condition"), Statements(n.ChildByFieldName("consequence"))
}

// ForParts splits a for_statement into loop target, iterable, body and
// the statements of an optional else clause.
func ForParts(n *sitter.Node) (left, right *sitter.Node, body, elseBody []*sitter.Node) {
	if n == nil || n.Type() != "for_statement" {
		return nil, nil, nil, nil
	}
	left = n.ChildByFieldName("left")
	right = n.ChildByFieldName("right")
	body = Statements(n.ChildByFieldName("body"))
	if alt := n.ChildByFieldName("alternative"); alt != nil {
		elseBody = ElseBody(alt)
	}
	return left, right, body, elseBody
}

// ExceptClause is one except arm of a try statement. Types holds the
// caught exception expressions, with tuples already unpacked.
type ExceptClause struct {
	Node  *sitter.Node
	Types []*sitter.Node
	Alias *sitter.Node
	Body  []*sitter.Node
}

// TryParts splits a try_statement into body, except arms, else body and
// finally body.
func TryParts(n *sitter.Node) (body []*sitter.Node, handlers []ExceptClause, elseBody, finallyBody []*sitter.Node) {
	if n == nil || n.Type() != "try_statement" {
		return nil, nil, nil, nil
	}
	body = Statements(n.ChildByFieldName("body"))
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "except_clause":
			handlers = append(handlers, parseExcept(child))
		case "else_clause":
			elseBody = ElseBody(child)
		case "finally_clause":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if b := child.NamedChild(j); b.Type() == "block" {
					finallyBody = Statements(b)
				}
			}
		}
	}
	return body, handlers, elseBody, finallyBody
}

func parseExcept(n *sitter.Node) ExceptClause {
	ec := ExceptClause{Node: n}
	var exprs []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "block":
			ec.Body = Statements(child)
		case "comment":
		default:
			exprs = append(exprs, child)
		}
	}
	if len(exprs) > 0 {
		typeExpr := Unparen(exprs[0])
		if typeExpr != nil && typeExpr.Type() == "tuple" {
			ec.Types = Statements(typeExpr)
		} else {
			ec.Types = []*sitter.Node{typeExpr}
		}
	}
	if len(exprs) > 1 {
		ec.Alias = exprs[1]
	}
	return ec
}

// WithParts splits a with_statement into its with items and body.
func WithParts(n *sitter.Node) (items []*sitter.Node, body []*sitter.Node) {
	if n == nil || n.Type() != "with_statement" {
		return nil, nil
	}
	body = Statements(n.ChildByFieldName("body"))
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "with_clause" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			if item := child.NamedChild(j); item.Type() == "with_item" {
				items = append(items, item)
			}
		}
	}
	return items, body
}

// WithItemParts splits a with_item into the context expression and the
// optional "as" target.
func WithItemParts(item *sitter.Node) (ctxExpr, alias *sitter.Node) {
	if item == nil || item.Type() != "with_item" {
		return nil, nil
	}
	value := item.ChildByFieldName("value")
	if value != nil && value.Type() == "as_pattern" {
		return value.NamedChild(0), value.ChildByFieldName("alias")
	}
	return value, nil
}

// FuncParts splits a function_definition into name, parameter nodes and
// body statements.
func (t *Tree) FuncParts(n *sitter.Node) (name string, params []*sitter.Node, body []*sitter.Node) {
	if n == nil || n.Type() != "function_definition" {
		return "", nil, nil
	}
	name = t.Text(n.ChildByFieldName("name"))
	if pl := n.ChildByFieldName("parameters"); pl != nil {
		params = Statements(pl)
	}
	body = Statements(n.ChildByFieldName("body"))
	return name, params, body
}

// ClassParts splits a class_definition into name, positional bases,
// keyword arguments (metaclass=... and friends) and body statements.
func (t *Tree) ClassParts(n *sitter.Node) (name string, bases, keywords, body []*sitter.Node) {
	if n == nil || n.Type() != "class_definition" {
		return "", nil, nil, nil
	}
	name = t.Text(n.ChildByFieldName("name"))
	if super := n.ChildByFieldName("superclasses"); super != nil {
		for i := 0; i < int(super.NamedChildCount()); i++ {
			arg := super.NamedChild(i)
			switch arg.Type() {
			case "comment":
			case "keyword_argument":
				keywords = append(keywords, arg)
			default:
				bases = append(bases, arg)
			}
		}
	}
	body = Statements(n.ChildByFieldName("body"))
	return name, bases, keywords, body
}

// Decorators returns the decorator nodes attached to a decorated
// function or class definition.
func (t *Tree) Decorators(n *sitter.Node) []*sitter.Node {
	parent := t.Parent(n)
	if parent == nil || parent.Type() != "decorated_definition" {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		if child := parent.NamedChild(i); child.Type() == "decorator" {
			out = append(out, child)
		}
	}
	return out
}
