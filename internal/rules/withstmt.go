package rules

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/pytree"
)

// SIM117: a with statement whose whole body is another with statement
// can list both context managers in one header.
func checkCombineWith(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if pytree.IsAsync(n) {
		return nil
	}
	items, body := pytree.WithParts(n)
	if len(body) != 1 || body[0].Type() != "with_statement" || pytree.IsAsync(body[0]) {
		return nil
	}
	innerItems, _ := pytree.WithParts(body[0])

	var rendered []string
	for _, item := range append(items, innerItems...) {
		rendered = append(rendered, rc.Render(item))
	}
	merged := "with " + strings.Join(rendered, ", ") + ":"
	return warnf(rc, diag.CombineWith, n, "Use '%s' instead of multiple with statements", merged)
}
