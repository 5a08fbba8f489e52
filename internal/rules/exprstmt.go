package rules

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/match"
	"simplint/internal/pytree"
)

// isOsEnviron matches the "os.environ" attribute chain.
func isOsEnviron(rc *Context, n *sitter.Node) bool {
	obj, attr := pytree.AttributeParts(pytree.Unparen(n))
	return obj != nil && match.IsName(rc.Tree, obj, "os") && rc.Text(attr) == "environ"
}

// SIM112: environment variables are upper-case by convention.
func checkUncapitalizedEnvVar(rc *Context, n *sitter.Node) []diag.Diagnostic {
	value := pytree.ExprOf(n)
	if value == nil {
		return nil
	}
	value = pytree.Unparen(value)

	var envName, expected string
	switch value.Type() {
	case "subscript":
		base, index := pytree.SubscriptParts(value)
		if !isOsEnviron(rc, base) || !match.IsString(pytree.Unparen(index)) {
			return nil
		}
		envName = rc.Render(index)
		expected = "os.environ[" + strings.ToUpper(envName) + "]"
	case "call":
		fn, args, kwargs := pytree.CallParts(value)
		obj, attr := pytree.AttributeParts(fn)
		if obj == nil || !isOsEnviron(rc, obj) || rc.Text(attr) != "get" {
			return nil
		}
		if len(kwargs) != 0 || len(args) < 1 || len(args) > 2 {
			return nil
		}
		if !match.IsString(pytree.Unparen(args[0])) {
			return nil
		}
		envName = rc.Render(args[0])
		if len(args) == 1 {
			expected = "os.environ.get(" + strings.ToUpper(envName) + ")"
		} else {
			expected = "os.environ.get(" + strings.ToUpper(envName) + ", " + rc.Render(args[1]) + ")"
		}
	default:
		return nil
	}

	if envName == strings.ToUpper(envName) {
		return nil
	}
	return warnf(rc, diag.UncapitalizedEnvVar, n, "Use '%s' instead of '%s'", expected, rc.Render(n))
}
