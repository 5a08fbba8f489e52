// Package match holds the structural predicates shared by rules:
// literal classification, expression equality and small body checks.
package match

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/pytree"
)

// maxEqualDepth bounds the recursion of ExprEqual. Pathologically nested
// expressions compare as "not equal" instead of blowing the stack.
const maxEqualDepth = 200

// IsTrue reports whether n is the literal True.
func IsTrue(n *sitter.Node) bool {
	return n != nil && n.Type() == "true"
}

// IsFalse reports whether n is the literal False.
func IsFalse(n *sitter.Node) bool {
	return n != nil && n.Type() == "false"
}

// IsBoolLiteral reports whether n is True or False.
func IsBoolLiteral(n *sitter.Node) bool {
	return IsTrue(n) || IsFalse(n)
}

// IsNone reports whether n is the literal None.
func IsNone(n *sitter.Node) bool {
	return n != nil && n.Type() == "none"
}

// IsNumber reports whether n is a numeric literal.
func IsNumber(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	k := n.Type()
	return k == "integer" || k == "float"
}

// IsString reports whether n is a string literal, including implicit
// concatenation of adjacent literals.
func IsString(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	k := n.Type()
	return k == "string" || k == "concatenated_string"
}

// IsConstant reports whether n is a literal of any kind.
func IsConstant(n *sitter.Node) bool {
	return IsBoolLiteral(n) || IsNone(n) || IsNumber(n) || IsString(n)
}

// IsName reports whether n is an identifier with the given text.
func IsName(t *pytree.Tree, n *sitter.Node, name string) bool {
	return n != nil && n.Type() == "identifier" && t.Text(n) == name
}

// SameName reports whether a and b are identifiers with identical text.
func SameName(t *pytree.Tree, a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Type() == "identifier" && b.Type() == "identifier" && t.Text(a) == t.Text(b)
}

// ExprEqual compares two subtrees structurally, ignoring positions,
// comments and surrounding trivia. Leaves compare by token text, so
// "a + b" equals "a+b" but not "a - b".
func ExprEqual(t *pytree.Tree, a, b *sitter.Node) bool {
	return exprEqual(t, a, b, 0)
}

func exprEqual(t *pytree.Tree, a, b *sitter.Node, depth int) bool {
	if depth > maxEqualDepth {
		return false
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	ac := nonCommentChildren(a)
	bc := nonCommentChildren(b)
	if len(ac) == 0 && len(bc) == 0 {
		return t.Text(a) == t.Text(b)
	}
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !exprEqual(t, ac[i], bc[i], depth+1) {
			return false
		}
	}
	return true
}

func nonCommentChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.ChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// ContainsContinue reports whether any statement is a continue, or is a
// conditional whose body recursively contains one.
func ContainsContinue(stmts []*sitter.Node) bool {
	for _, stmt := range stmts {
		switch stmt.Type() {
		case "continue_statement":
			return true
		case "if_statement":
			if ContainsContinue(pytree.Statements(stmt.ChildByFieldName("consequence"))) {
				return true
			}
		}
	}
	return false
}

// LooksLikeException reports whether a name reads like an exception
// class: the conventional Error/Exception/Warning suffixes plus the
// builtin exceptions that do not follow the convention.
func LooksLikeException(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasSuffix(name, "Error") ||
		strings.HasSuffix(name, "Exception") ||
		strings.HasSuffix(name, "Warning") {
		return true
	}
	switch name {
	case "StopIteration", "StopAsyncIteration", "KeyboardInterrupt",
		"SystemExit", "GeneratorExit":
		return true
	}
	return false
}

// IsPlusOne reports whether an augmented assignment is "x += 1".
func IsPlusOne(t *pytree.Tree, n *sitter.Node) bool {
	left, op, right := t.AugAssignParts(n)
	if left == nil || op != "+=" {
		return false
	}
	return right != nil && right.Type() == "integer" && t.Text(right) == "1"
}
