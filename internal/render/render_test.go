package render

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/pytree"
)

func exprOf(t *testing.T, src string) (*pytree.Tree, *sitter.Node) {
	t.Helper()
	tree, err := pytree.Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	t.Cleanup(tree.Close)
	stmts := pytree.Statements(tree.Root())
	if len(stmts) == 0 {
		t.Fatal("no statements")
	}
	return tree, pytree.ExprOf(stmts[0])
}

func TestNodeNil(t *testing.T) {
	tree, _ := exprOf(t, "x\n")
	if got := Node(tree, nil); got != "None" {
		t.Errorf("Node(nil) = %q", got)
	}
}

func TestNodeRendering(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain expression", "a == b\n", "a == b"},
		{"wrapping parens removed", "(a or b)\n", "a or b"},
		{"inner parens kept", "(a) or (b)\n", "(a) or (b)"},
		{"single quotes converted", "'hello'\n", `"hello"`},
		{"triple double collapsed", `"""hi"""` + "\n", `"hi"`},
		{"triple single converted", "'''hi'''\n", `"""hi"""`},
		{"multiline folded", "f(a,\n  b)\n", "f(a, b)"},
		{"continuation folded", "a + \\\n    b\n", "a + b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, node := exprOf(t, tt.src)
			if got := Node(tree, node); got != tt.want {
				t.Errorf("Node(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestNodeFixedPoint(t *testing.T) {
	// Re-parsing and re-rendering already-normalized text changes nothing.
	srcs := []string{
		"(a or b)\n",
		"'hello'\n",
		"f(a,\n  b)\n",
		"not (a and b)\n",
		"a + \\\n    b\n",
	}
	for _, src := range srcs {
		tree, node := exprOf(t, src)
		once := Node(tree, node)
		tree2, node2 := exprOf(t, once+"\n")
		if again := Node(tree2, node2); again != once {
			t.Errorf("Node(%q): second pass %q, first pass %q", src, again, once)
		}
	}
}

func TestStripParensBalance(t *testing.T) {
	tests := []struct{ in, want string }{
		{"(a)", "a"},
		{"(a)(b)", "(a)(b)"},
		{"((a))", "(a)"},
		{"f(a)", "f(a)"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripParens(tt.in); got != tt.want {
			t.Errorf("stripParens(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
