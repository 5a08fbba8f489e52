package rules

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/pytree"
)

// SIM105: a single guarded statement whose only handler passes is
// contextlib.suppress. A bare except maps to suppressing Exception.
func checkContextlibSuppress(rc *Context, n *sitter.Node) []diag.Diagnostic {
	body, handlers, elseBody, _ := pytree.TryParts(n)
	if len(body) != 1 || len(handlers) != 1 || elseBody != nil {
		return nil
	}
	handler := handlers[0]
	if len(handler.Body) != 1 || handler.Body[0].Type() != "pass_statement" {
		return nil
	}
	exception := "Exception"
	if len(handler.Types) > 0 {
		rendered := make([]string, len(handler.Types))
		for i, t := range handler.Types {
			rendered[i] = rc.Render(t)
		}
		exception = strings.Join(rendered, ", ")
		if len(rendered) > 1 {
			exception = "(" + exception + ")"
		}
	}
	return warnf(rc, diag.ContextlibSuppress, n, "Use 'contextlib.suppress(%s)'", exception)
}

// SIM107: a return in try or except is silently discarded when finally
// also returns. Reported at the return inside the finally block.
func checkReturnInTryFinally(rc *Context, n *sitter.Node) []diag.Diagnostic {
	body, handlers, _, finallyBody := pytree.TryParts(n)
	if len(finallyBody) == 0 {
		return nil
	}

	guarded := hasDirectReturn(body)
	for _, handler := range handlers {
		guarded = guarded || hasDirectReturn(handler.Body)
	}
	if !guarded {
		return nil
	}

	var out []diag.Diagnostic
	for _, stmt := range finallyBody {
		if isReturn(stmt) {
			out = append(out, diag.NewWarning(diag.ReturnInTryFinally, rc.Span(stmt),
				"Don't use return in try/except and finally"))
		}
	}
	return out
}
