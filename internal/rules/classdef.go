package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/match"
	"simplint/internal/pytree"
)

var dataclassMethods = map[string]bool{
	"__init__": true,
	"__eq__":   true,
	"__hash__": true,
	"__repr__": true,
	"__str__":  true,
}

// SIM119: a plain class whose methods are all constructor/equality
// boilerplate, with a constructor that only stores its arguments, is a
// dataclass.
func checkUseDataclass(rc *Context, n *sitter.Node) []diag.Diagnostic {
	name, bases, _, body := rc.Tree.ClassParts(n)
	if len(rc.Tree.Decorators(n)) > 0 || len(bases) > 0 {
		return nil
	}

	hasFunctions := false
	for _, stmt := range body {
		fn := stmt
		if fn.Type() == "decorated_definition" {
			fn = fn.ChildByFieldName("definition")
		}
		if fn == nil || fn.Type() != "function_definition" {
			continue
		}
		hasFunctions = true
		fnName, _, fnBody := rc.Tree.FuncParts(fn)
		if !dataclassMethods[fnName] {
			return nil
		}
		if fnName == "__init__" && !storesArgumentsOnly(rc, fnBody) {
			return nil
		}
	}
	if !hasFunctions {
		return nil
	}
	return warnf(rc, diag.UseDataclass, n, "Use a dataclass for 'class %s'", name)
}

// storesArgumentsOnly accepts constructors made of nothing but
// "self.attr = name" assignments.
func storesArgumentsOnly(rc *Context, body []*sitter.Node) bool {
	for _, stmt := range body {
		targets, value := assignChain(stmt)
		if value == nil || value.Type() != "identifier" {
			return false
		}
		for _, target := range targets {
			if target.Type() != "attribute" {
				return false
			}
		}
	}
	return true
}

// assignChain unwraps "a = b = value" into its targets and the final
// value. Annotated assignments do not count as plain stores.
func assignChain(stmt *sitter.Node) (targets []*sitter.Node, value *sitter.Node) {
	e := pytree.ExprOf(stmt)
	for e != nil && e.Type() == "assignment" {
		if e.ChildByFieldName("type") != nil {
			return nil, nil
		}
		left, right := pytree.AssignParts(e)
		if left == nil || right == nil {
			return nil, nil
		}
		targets = append(targets, left)
		value = right
		e = right
	}
	if len(targets) == 0 {
		return nil, nil
	}
	return targets, value
}

// SIM120: inheriting from object is implicit.
func checkClassObjectBase(rc *Context, n *sitter.Node) []diag.Diagnostic {
	name, bases, _, _ := rc.Tree.ClassParts(n)
	if len(bases) != 1 || !match.IsName(rc.Tree, bases[0], "object") {
		return nil
	}
	return warnf(rc, diag.ClassObjectBase, n, "Use 'class %s:' instead of 'class %s(object):'", name, name)
}
