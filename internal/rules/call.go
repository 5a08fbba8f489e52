package rules

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/match"
	"simplint/internal/pytree"
)

// SIM115: open() outside a with item leaks the handle on error paths.
func checkOpenWithoutContext(rc *Context, n *sitter.Node) []diag.Diagnostic {
	fn, _, _ := pytree.CallParts(n)
	if !match.IsName(rc.Tree, fn, "open") || isWithItemExpr(rc, n) {
		return nil
	}
	return warn(rc, diag.OpenWithoutContext, n, "Use context handler for opening files")
}

func isWithItemExpr(rc *Context, n *sitter.Node) bool {
	p := rc.Tree.Parent(n)
	if p != nil && p.Type() == "as_pattern" {
		p = rc.Tree.Parent(p)
	}
	return p != nil && p.Type() == "with_item"
}

// SIM901: bool() around a comparison is redundant.
func checkBoolWrappedCompare(rc *Context, n *sitter.Node) []diag.Diagnostic {
	fn, args, _ := pytree.CallParts(n)
	if !match.IsName(rc.Tree, fn, "bool") || len(args) != 1 {
		return nil
	}
	if pytree.Unparen(args[0]).Type() != "comparison_operator" {
		return nil
	}
	return warnf(rc, diag.BoolWrappedCompare, n, "Use '%s' instead of '%s'",
		rc.Render(args[0]), rc.Render(n))
}

// SIM902: a bare boolean passed positionally says nothing at the call
// site. Setter-style calls with few arguments and exception
// constructors are conventional and stay quiet.
func checkMagicBooleanArg(rc *Context, n *sitter.Node) []diag.Diagnostic {
	fn, args, _ := pytree.CallParts(n)
	if fn == nil {
		return nil
	}
	name := rc.Tree.LastName(fn)
	if name == "" || match.LooksLikeException(name) {
		return nil
	}
	magic := rc.Cfg.Rules.MagicArgs
	if hasSetterPrefix(name, magic.SetterPrefixes) && len(args) <= magic.SetterMaxArgs {
		return nil
	}
	for _, arg := range args {
		if match.IsBoolLiteral(arg) {
			return warnf(rc, diag.MagicBooleanArg, n,
				"Use keyword-argument instead of magic boolean for '%s'", name)
		}
	}
	return nil
}

// SIM903: a bare number passed positionally, outside the small-integer
// and conventional-name allow-lists, deserves a keyword.
func checkMagicNumberArg(rc *Context, n *sitter.Node) []diag.Diagnostic {
	fn, args, _ := pytree.CallParts(n)
	if fn == nil {
		return nil
	}
	name := rc.Tree.LastName(fn)
	if name == "" || match.LooksLikeException(name) {
		return nil
	}
	magic := rc.Cfg.Rules.MagicArgs
	for _, allowed := range magic.AllowedNames {
		if name == allowed {
			return nil
		}
	}
	if nameSuggestsNumbers(name, magic.NameParts) {
		return nil
	}
	for _, arg := range args {
		if !match.IsNumber(arg) {
			continue
		}
		if allowedNumber(rc.Text(arg), magic.AllowedNumbers) {
			continue
		}
		return warnf(rc, diag.MagicNumberArg, n,
			"Use keyword-argument instead of magic number for '%s'", name)
	}
	return nil
}

func hasSetterPrefix(name string, prefixes []string) bool {
	lower := strings.ToLower(name)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// nameSuggestsNumbers matches callee name segments against the
// configured geometry/color vocabulary. One-letter parts only match a
// whole segment so "max" does not hit "x".
func nameSuggestsNumbers(name string, parts []string) bool {
	segments := strings.Split(strings.ToLower(name), "_")
	for _, seg := range segments {
		for _, part := range parts {
			if len(part) == 1 {
				if seg == part {
					return true
				}
			} else if strings.Contains(seg, part) {
				return true
			}
		}
	}
	return false
}

func allowedNumber(text string, allowed []string) bool {
	for _, a := range allowed {
		if text == a {
			return true
		}
	}
	return false
}

// SIM905: splitting a string literal at runtime recomputes a constant.
func checkSplitStaticString(rc *Context, n *sitter.Node) []diag.Diagnostic {
	fn, args, kwargs := pytree.CallParts(n)
	obj, attr := pytree.AttributeParts(fn)
	if obj == nil || rc.Text(attr) != "split" || !match.IsString(obj) {
		return nil
	}
	if len(args) != 0 || len(kwargs) != 0 {
		return nil
	}
	rendered := rc.Render(obj)
	words := strings.Fields(stripDoubleQuotes(rendered))
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = `"` + w + `"`
	}
	expected := "[" + strings.Join(quoted, ", ") + "]"
	return warnf(rc, diag.SplitStaticString, n, "Use '%s' instead of '%s'", expected, rendered+".split()")
}

// isPathJoin matches a call to os.path.join.
func isPathJoin(rc *Context, n *sitter.Node) bool {
	if n == nil || n.Type() != "call" {
		return false
	}
	fn, _, _ := pytree.CallParts(n)
	obj, attr := pytree.AttributeParts(fn)
	if rc.Text(attr) != "join" {
		return false
	}
	inner, innerAttr := pytree.AttributeParts(obj)
	return inner != nil && match.IsName(rc.Tree, inner, "os") && rc.Text(innerAttr) == "path"
}

// SIM906: nested os.path.join calls flatten into one.
func checkNestedPathJoin(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if !isPathJoin(rc, n) {
		return nil
	}
	_, args, _ := pytree.CallParts(n)
	if len(args) != 2 {
		return nil
	}
	nested := false
	for _, arg := range args {
		if isPathJoin(rc, pytree.Unparen(arg)) {
			nested = true
		}
	}
	if !nested {
		return nil
	}
	names := flattenPathJoin(rc, n)
	return warnf(rc, diag.NestedPathJoin, n, "Use 'os.path.join(%s)' instead of '%s'",
		strings.Join(names, ", "), rc.Render(n))
}

// flattenPathJoin collects the leaf arguments of a join tree in source
// order, keeping names and quoting string literals. Anything else is
// not representable in the flattened call and is dropped.
func flattenPathJoin(rc *Context, call *sitter.Node) []string {
	var names []string
	_, args, _ := pytree.CallParts(call)
	for _, arg := range args {
		a := pytree.Unparen(arg)
		switch {
		case isPathJoin(rc, a):
			names = append(names, flattenPathJoin(rc, a)...)
		case a.Type() == "identifier":
			names = append(names, rc.Text(a))
		case match.IsString(a):
			names = append(names, "'"+stripDoubleQuotes(rc.Render(a))+"'")
		default:
			rc.Debugf("os.path.join: skipping unrenderable argument '%s'", rc.Render(a))
		}
	}
	return names
}

// SIM910: get's default already is None.
func checkDictGetWithNone(rc *Context, n *sitter.Node) []diag.Diagnostic {
	fn, args, _ := pytree.CallParts(n)
	_, attr := pytree.AttributeParts(fn)
	if rc.Text(attr) != "get" {
		return nil
	}
	if len(args) != 2 || !match.IsNone(pytree.Unparen(args[1])) {
		return nil
	}
	return warnf(rc, diag.DictGetWithNone, n, "Use '%s(%s)' instead of '%s'",
		rc.Render(fn), rc.Render(args[0]), rc.Render(n))
}

// SIM911: zipping keys with values of the same mapping is items().
func checkZipDictKeysValues(rc *Context, n *sitter.Node) []diag.Diagnostic {
	fn, args, _ := pytree.CallParts(n)
	if !match.IsName(rc.Tree, fn, "zip") || len(args) != 2 {
		return nil
	}
	keysRecv := dictMethodReceiver(rc, args[0], "keys")
	valuesRecv := dictMethodReceiver(rc, args[1], "values")
	if keysRecv == nil || valuesRecv == nil || !match.SameName(rc.Tree, keysRecv, valuesRecv) {
		return nil
	}
	name := rc.Text(keysRecv)
	return warnf(rc, diag.ZipDictKeysValues, n, "Use '%s.items()' instead of 'zip(%s.keys(), %s.values())'",
		name, name, name)
}

func dictMethodReceiver(rc *Context, arg *sitter.Node, method string) *sitter.Node {
	call := pytree.Unparen(arg)
	if call == nil || call.Type() != "call" {
		return nil
	}
	fn, args, _ := pytree.CallParts(call)
	if len(args) != 0 {
		return nil
	}
	obj, attr := pytree.AttributeParts(fn)
	if obj == nil || obj.Type() != "identifier" || rc.Text(attr) != method {
		return nil
	}
	return obj
}
