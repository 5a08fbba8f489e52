package pytree

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// NamedChildren returns all named children of n.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// Statements returns the statement children of a module or block node,
// with comments filtered out.
func Statements(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// Unparen strips any number of wrapping parenthesized_expression nodes.
func Unparen(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == "parenthesized_expression" {
		n = n.NamedChild(0)
	}
	return n
}

// ExprOf unwraps an expression_statement to its expression. Other nodes
// pass through unchanged.
func ExprOf(n *sitter.Node) *sitter.Node {
	if n != nil && n.Type() == "expression_statement" && n.NamedChildCount() > 0 {
		return n.NamedChild(0)
	}
	return n
}

// BoolOp returns "and" or "or" for a boolean_operator node, "" otherwise.
func (t *Tree) BoolOp(n *sitter.Node) string {
	if n == nil || n.Type() != "boolean_operator" {
		return ""
	}
	op := n.ChildByFieldName("operator")
	if op == nil {
		return ""
	}
	return t.Text(op)
}

// FlattenBool collects the operands of the maximal chain of
// boolean_operator nodes with the same operator rooted at n, in source
// order. The grammar parses "a and b and c" as nested binary nodes;
// rules want the flat operand list.
func (t *Tree) FlattenBool(n *sitter.Node) []*sitter.Node {
	op := t.BoolOp(n)
	if op == "" {
		return nil
	}
	var out []*sitter.Node
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if t.BoolOp(node) == op {
			walk(node.ChildByFieldName("left"))
			walk(node.ChildByFieldName("right"))
			return
		}
		out = append(out, node)
	}
	walk(n)
	return out
}

// IsBoolChainHead reports whether n is the outermost node of its
// same-operator chain. Rules fire only at the head so nested operands of
// "a and b and c" do not produce duplicate findings.
func (t *Tree) IsBoolChainHead(n *sitter.Node) bool {
	op := t.BoolOp(n)
	if op == "" {
		return false
	}
	return t.BoolOp(t.Parent(n)) != op
}

// NotArg returns the operand of a not_operator node, nil otherwise.
func NotArg(n *sitter.Node) *sitter.Node {
	if n == nil || n.Type() != "not_operator" {
		return nil
	}
	return n.ChildByFieldName("argument")
}

// CompareParts splits a comparison_operator node into operands and
// operator tokens ("==", "not in", ...). len(ops) == len(operands)-1.
func (t *Tree) CompareParts(n *sitter.Node) (operands []*sitter.Node, ops []string) {
	if n == nil || n.Type() != "comparison_operator" {
		return nil, nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.IsNamed() {
			operands = append(operands, child)
		} else {
			ops = append(ops, child.Type())
		}
	}
	return operands, ops
}

// CallParts splits a call node into its callee, positional arguments and
// keyword arguments.
func CallParts(n *sitter.Node) (fn *sitter.Node, args, kwargs []*sitter.Node) {
	if n == nil || n.Type() != "call" {
		return nil, nil, nil
	}
	fn = n.ChildByFieldName("function")
	argList := n.ChildByFieldName("arguments")
	if argList == nil {
		return fn, nil, nil
	}
	for i := 0; i < int(argList.NamedChildCount()); i++ {
		a := argList.NamedChild(i)
		switch a.Type() {
		case "comment":
		case "keyword_argument":
			kwargs = append(kwargs, a)
		default:
			args = append(args, a)
		}
	}
	return fn, args, kwargs
}

// KeywordParts splits a keyword_argument into name and value nodes.
func KeywordParts(n *sitter.Node) (name, value *sitter.Node) {
	if n == nil || n.Type() != "keyword_argument" {
		return nil, nil
	}
	return n.ChildByFieldName("name"), n.ChildByFieldName("value")
}

// AttributeParts splits an attribute node into object and attribute name.
func AttributeParts(n *sitter.Node) (object, attr *sitter.Node) {
	if n == nil || n.Type() != "attribute" {
		return nil, nil
	}
	return n.ChildByFieldName("object"), n.ChildByFieldName("attribute")
}

// SubscriptParts splits a subscript node into value and index.
func SubscriptParts(n *sitter.Node) (value, index *sitter.Node) {
	if n == nil || n.Type() != "subscript" {
		return nil, nil
	}
	return n.ChildByFieldName("value"), n.ChildByFieldName("subscript")
}

// DottedName renders an identifier or a static attribute chain such as
// "os.path.join". Dynamic callees (subscripts, calls) yield "".
func (t *Tree) DottedName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier":
		return t.Text(n)
	case "attribute":
		obj, attr := AttributeParts(n)
		base := t.DottedName(obj)
		if base == "" {
			return ""
		}
		return base + "." + t.Text(attr)
	default:
		return ""
	}
}

// LastName returns the final segment of an identifier or attribute chain,
// e.g. "join" for "os.path.join". Dynamic expressions yield "".
func (t *Tree) LastName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier":
		return t.Text(n)
	case "attribute":
		_, attr := AttributeParts(n)
		return t.Text(attr)
	default:
		return ""
	}
}

// TernaryParts splits a conditional_expression into its pieces:
// "body if cond else orelse".
func TernaryParts(n *sitter.Node) (body, cond, orelse *sitter.Node) {
	if n == nil || n.Type() != "conditional_expression" || n.NamedChildCount() < 3 {
		return nil, nil, nil
	}
	return n.NamedChild(0), n.NamedChild(1), n.NamedChild(2)
}

// AssignParts splits an assignment into target and value. Annotated
// assignments without a value yield a nil value.
func AssignParts(n *sitter.Node) (left, right *sitter.Node) {
	if n == nil || n.Type() != "assignment" {
		return nil, nil
	}
	return n.ChildByFieldName("left"), n.ChildByFieldName("right")
}

// AugAssignParts splits an augmented_assignment into target, operator
// text and value.
func (t *Tree) AugAssignParts(n *sitter.Node) (left *sitter.Node, op string, right *sitter.Node) {
	if n == nil || n.Type() != "augmented_assignment" {
		return nil, "", nil
	}
	opNode := n.ChildByFieldName("operator")
	if opNode != nil {
		op = t.Text(opNode)
	}
	return n.ChildByFieldName("left"), op, n.ChildByFieldName("right")
}

// IsAsync reports whether a function_definition, for_statement or
// with_statement carries the async keyword.
func IsAsync(n *sitter.Node) bool {
	if n == nil || n.ChildCount() == 0 {
		return false
	}
	return n.Child(0).Type() == "async"
}

// InAsyncFunction reports whether n sits inside an async function.
func (t *Tree) InAsyncFunction(n *sitter.Node) bool {
	fn := t.EnclosingFunction(n)
	return fn != nil && IsAsync(fn)
}
