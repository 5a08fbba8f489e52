package match

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/pytree"
)

func expr(t *testing.T, src string) (*pytree.Tree, *sitter.Node) {
	t.Helper()
	tree, err := pytree.Parse(context.Background(), []byte(src+"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	t.Cleanup(tree.Close)
	stmts := pytree.Statements(tree.Root())
	return tree, pytree.ExprOf(stmts[0])
}

func TestLiteralPredicates(t *testing.T) {
	tests := []struct {
		src   string
		check func(*sitter.Node) bool
		want  bool
	}{
		{"True", IsTrue, true},
		{"False", IsTrue, false},
		{"False", IsFalse, true},
		{"True", IsBoolLiteral, true},
		{"None", IsNone, true},
		{"0", IsNone, false},
		{"42", IsNumber, true},
		{"4.2", IsNumber, true},
		{`"s"`, IsNumber, false},
		{`"s"`, IsString, true},
		{`"a" "b"`, IsString, true},
		{"None", IsConstant, true},
		{"x", IsConstant, false},
	}
	for _, tt := range tests {
		_, node := expr(t, tt.src)
		if got := tt.check(node); got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestSameName(t *testing.T) {
	tree, node := expr(t, "x == x")
	operands, _ := tree.CompareParts(node)
	if !SameName(tree, operands[0], operands[1]) {
		t.Error("x == x operands not same name")
	}

	tree2, node2 := expr(t, "x == y")
	operands2, _ := tree2.CompareParts(node2)
	if SameName(tree2, operands2[0], operands2[1]) {
		t.Error("x == y operands reported same")
	}
}

func TestExprEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"a + b", "a + b", true},
		{"a + b", "a+b", true},
		{"a + b", "a - b", false},
		{"f(x)", "f(x)", true},
		{"f(x)", "f(y)", false},
		{"d[k]", "d[k]", true},
		{"d[k]", "d[j]", false},
		{"a.b.c", "a.b.c", true},
		{"a.b.c", "a.b.d", false},
	}
	for _, tt := range tests {
		// Leaf comparison reads token text through the tree, so both
		// expressions are parsed from one source.
		combined, err := pytree.Parse(context.Background(), []byte(tt.a+"\n"+tt.b+"\n"))
		if err != nil {
			t.Fatal(err)
		}
		stmts := pytree.Statements(combined.Root())
		got := ExprEqual(combined, pytree.ExprOf(stmts[0]), pytree.ExprOf(stmts[1]))
		combined.Close()
		if got != tt.want {
			t.Errorf("ExprEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestContainsContinue(t *testing.T) {
	tree, err := pytree.Parse(context.Background(), []byte("for x in xs:\n    if a:\n        continue\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()
	stmts := pytree.Statements(tree.Root())
	_, _, body, _ := pytree.ForParts(stmts[0])
	if !ContainsContinue(body) {
		t.Error("nested continue not found")
	}

	tree2, err := pytree.Parse(context.Background(), []byte("for x in xs:\n    y()\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer tree2.Close()
	_, _, body2, _ := pytree.ForParts(pytree.Statements(tree2.Root())[0])
	if ContainsContinue(body2) {
		t.Error("continue reported in plain body")
	}
}

func TestLooksLikeException(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"ValueError", true},
		{"MyCustomException", true},
		{"DeprecationWarning", true},
		{"StopIteration", true},
		{"set_visible", false},
		{"print", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksLikeException(tt.name); got != tt.want {
			t.Errorf("LooksLikeException(%q) = %v", tt.name, got)
		}
	}
}

func TestIsPlusOne(t *testing.T) {
	tree, node := expr(t, "idx += 1")
	if !IsPlusOne(tree, node) {
		t.Error("idx += 1 not recognized")
	}
	tree2, node2 := expr(t, "idx += 2")
	if IsPlusOne(tree2, node2) {
		t.Error("idx += 2 recognized")
	}
	tree3, node3 := expr(t, "idx -= 1")
	if IsPlusOne(tree3, node3) {
		t.Error("idx -= 1 recognized")
	}
}
