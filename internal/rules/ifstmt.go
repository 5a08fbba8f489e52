package rules

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/diag"
	"simplint/internal/match"
	"simplint/internal/pytree"
)

// assignStmt unwraps an expression_statement into its assignment, when
// that is all the statement does.
func assignStmt(stmt *sitter.Node) (assign, left, right *sitter.Node) {
	e := pytree.ExprOf(stmt)
	if e == nil || e.Type() != "assignment" {
		return nil, nil, nil
	}
	left, right = pytree.AssignParts(e)
	if left == nil || right == nil {
		return nil, nil, nil
	}
	return e, left, right
}

// isMainCheck matches the __name__ == "__main__" guard.
func isMainCheck(rc *Context, cond *sitter.Node) bool {
	cmp := pytree.Unparen(cond)
	if cmp == nil || cmp.Type() != "comparison_operator" {
		return false
	}
	operands, ops := rc.Tree.CompareParts(cmp)
	if len(ops) != 1 || ops[0] != "==" {
		return false
	}
	if !match.IsName(rc.Tree, operands[0], "__name__") {
		return false
	}
	return match.IsString(operands[1]) && rc.Render(operands[1]) == `"__main__"`
}

// isElseContinuation reports whether n is an if_statement that forms
// the sole statement of an else block, meaning some outer chain already
// walked it.
func isElseContinuation(rc *Context, n *sitter.Node) bool {
	block := rc.Tree.Parent(n)
	if block == nil || block.Type() != "block" {
		return false
	}
	owner := rc.Tree.Parent(block)
	if owner == nil || owner.Type() != "else_clause" {
		return false
	}
	ifNode := rc.Tree.Parent(owner)
	return ifNode != nil && ifNode.Type() == "if_statement" && len(pytree.Statements(block)) == 1
}

// SIM102: an if whose whole body is another bare if can merge the two
// conditions.
func checkCollapsibleIf(rc *Context, n *sitter.Node) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, arm := range rc.Tree.Arms(n) {
		if arm.NextElif != nil || arm.ElseNode != nil || len(arm.Body) != 1 {
			continue
		}
		inner := arm.Body[0]
		if inner.Type() != "if_statement" {
			continue
		}
		_, _, elifs, elseClause := pytree.IfParts(inner)
		if len(elifs) > 0 || elseClause != nil {
			continue
		}
		if isMainCheck(rc, arm.Cond) {
			continue
		}
		out = append(out, diag.NewWarning(diag.CollapsibleIf, rc.Span(arm.Node),
			"Use a single if-statement instead of nested if-statements"))
	}
	return out
}

// SIM103: the branches return opposite boolean literals, so the
// condition (or its negation, for the return-False-first shape) is the
// return value.
func checkReturnCondition(rc *Context, n *sitter.Node) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, arm := range rc.Tree.Arms(n) {
		if arm.NextElif != nil || len(arm.Body) != 1 || len(arm.Else) != 1 {
			continue
		}
		bodyVal := returnValue(arm.Body[0])
		elseVal := returnValue(arm.Else[0])
		if !match.IsBoolLiteral(bodyVal) || !match.IsBoolLiteral(elseVal) {
			continue
		}
		bodyTrue := match.IsTrue(bodyVal)
		if bodyTrue == match.IsTrue(elseVal) {
			continue
		}
		cond := rc.Render(arm.Cond)
		if !bodyTrue {
			cond = negateText(cond)
		}
		out = append(out, diag.NewWarning(diag.ReturnCondition, rc.Span(arm.Node),
			fmt.Sprintf("Return the condition %s directly", cond)))
	}
	return out
}

// SIM106: a short raising else buries the error case below the happy
// path. Raises of configured validation exceptions are guard clauses
// and stay quiet.
func checkHandleErrorCasesFirst(rc *Context, n *sitter.Node) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, arm := range rc.Tree.Arms(n) {
		if arm.NextElif != nil || len(arm.Else) == 0 || len(arm.Body) == 0 {
			continue
		}
		lastElse := arm.Else[len(arm.Else)-1]
		if !isRaise(lastElse) || isRaise(arm.Body[len(arm.Body)-1]) {
			continue
		}
		if len(arm.Else) != 1 && len(arm.Body) <= 2*len(arm.Else) {
			continue
		}
		if raisesExpected(rc, lastElse) {
			continue
		}
		out = append(out, diag.NewWarning(diag.HandleErrorCasesFirst, rc.Span(arm.Node),
			"Handle error-cases first"))
	}
	return out
}

func raisesExpected(rc *Context, raise *sitter.Node) bool {
	if raise.NamedChildCount() == 0 {
		return false
	}
	call := pytree.Unparen(raise.NamedChild(0))
	if call == nil || call.Type() != "call" {
		return false
	}
	fn, _, _ := pytree.CallParts(call)
	if fn == nil || fn.Type() != "identifier" {
		return false
	}
	name := rc.Text(fn)
	for _, expected := range rc.Cfg.Rules.ErrorCases.ExpectedExceptions {
		if name == expected {
			return true
		}
	}
	return false
}

// SIM108: if/else assigning the same variable collapses to a ternary,
// unless the rewritten line would not fit the configured line length.
func checkUseTernary(rc *Context, n *sitter.Node) []diag.Diagnostic {
	arms := rc.Tree.Arms(n)
	var out []diag.Diagnostic
	for i, arm := range arms {
		if arm.NextElif != nil || len(arm.Body) != 1 || len(arm.Else) != 1 {
			continue
		}
		_, bodyTarget, bodyValue := assignStmt(arm.Body[0])
		_, elseTarget, elseValue := assignStmt(arm.Else[0])
		if bodyTarget == nil || elseTarget == nil {
			continue
		}
		if bodyTarget.Type() != "identifier" || !match.SameName(rc.Tree, bodyTarget, elseTarget) {
			continue
		}
		if preassignedInParent(rc, arms, i, arm, bodyTarget) {
			continue
		}
		msg := fmt.Sprintf("Use ternary operator '%s = %s if %s else %s' instead of if-else-block",
			rc.Render(bodyTarget), rc.Render(bodyValue), rc.Render(arm.Cond), rc.Render(elseValue))
		if len(diag.UseTernary.String())+1+len(msg) > rc.Cfg.Lint.MaxLineLength {
			continue
		}
		out = append(out, diag.NewWarning(diag.UseTernary, rc.Span(arm.Node), msg))
	}
	return out
}

// preassignedInParent reports whether the body of the arm (or enclosing
// if arm) directly above already assigns the ternary target, meaning
// the if/else is one leg of a larger dispatch.
func preassignedInParent(rc *Context, arms []pytree.Arm, idx int, arm pytree.Arm, target *sitter.Node) bool {
	var parentBody []*sitter.Node
	if idx > 0 {
		parentBody = arms[idx-1].Body
	} else {
		parentBody = enclosingIfBody(rc, arm.Node)
	}
	for _, stmt := range parentBody {
		_, left, _ := assignStmt(stmt)
		if left != nil && left.Type() == "identifier" && match.SameName(rc.Tree, left, target) {
			return true
		}
	}
	return false
}

// enclosingIfBody returns the statements of the conditional arm that
// directly contains n, if any.
func enclosingIfBody(rc *Context, n *sitter.Node) []*sitter.Node {
	block := rc.Tree.Parent(n)
	if block == nil || block.Type() != "block" {
		return nil
	}
	owner := rc.Tree.Parent(block)
	if owner == nil {
		return nil
	}
	switch owner.Type() {
	case "if_statement", "elif_clause":
		return pytree.Statements(owner.ChildByFieldName("consequence"))
	case "else_clause":
		ifNode := rc.Tree.Parent(owner)
		if ifNode == nil || ifNode.Type() != "if_statement" {
			return nil
		}
		arms := rc.Tree.Arms(ifNode)
		return arms[len(arms)-1].Body
	}
	return nil
}

// SIM114: adjacent branches of one chain with identical bodies can
// share a single body behind an "or".
func checkCombineIfBranches(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if isElseContinuation(rc, n) {
		return nil
	}
	branches, _, _ := rc.Tree.IfChain(n)
	var out []diag.Diagnostic
	for i := 0; i+1 < len(branches); i++ {
		if !sameBody(rc, branches[i].Body, branches[i+1].Body) {
			continue
		}
		out = append(out, diag.NewWarning(diag.CombineIfBranches, rc.Span(n), fmt.Sprintf(
			"Use logical or ((%s) or (%s)) and a single body",
			rc.Render(branches[i].Cond), rc.Render(branches[i+1].Cond))))
	}
	return out
}

func sameBody(rc *Context, a, b []*sitter.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !match.ExprEqual(rc.Tree, a[i], b[i]) {
			return false
		}
	}
	return true
}

// SIM116: three or more equality branches on one variable that each
// just return a value form a dictionary lookup.
func checkUseDictLookup(rc *Context, n *sitter.Node) []diag.Diagnostic {
	if isElseContinuation(rc, n) {
		return nil
	}
	branches, elseBody, elseNode := rc.Tree.IfChain(n)
	if len(branches) < 2 {
		return nil
	}

	var variable *sitter.Node
	var keys []string
	values := map[string]string{}
	for i, branch := range branches {
		key, value, ok := lookupBranch(rc, branch, variable, i > 0)
		if !ok {
			return nil
		}
		if i == 0 {
			operands, _ := rc.Tree.CompareParts(pytree.Unparen(branch.Cond))
			variable = operands[0]
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}

	defaultValue := ""
	if elseNode != nil {
		if len(elseBody) != 1 || !isReturn(elseBody[0]) {
			return nil
		}
		defaultValue = rc.Render(returnValue(elseBody[0]))
	}
	if len(keys) < 3 {
		return nil
	}

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + ": " + pyRepr(values[k])
	}
	ret := "{" + strings.Join(pairs, ", ") + "}.get(" + rc.Text(variable)
	if defaultValue != "" {
		ret += ", " + defaultValue
	}
	ret += ")"
	return warnf(rc, diag.UseDictLookup, n,
		"Use a dictionary lookup instead of 3+ if/elif-statements: return %s", ret)
}

// lookupBranch validates one branch of a dictionary-lookup chain and
// returns its rendered key and value. Calls as return values are
// skipped: a call is not a precomputable constant.
func lookupBranch(rc *Context, branch pytree.Branch, variable *sitter.Node, rejectCalls bool) (key, value string, ok bool) {
	cmp := pytree.Unparen(branch.Cond)
	if cmp == nil || cmp.Type() != "comparison_operator" {
		return "", "", false
	}
	operands, ops := rc.Tree.CompareParts(cmp)
	if len(ops) != 1 || ops[0] != "==" {
		return "", "", false
	}
	left, right := operands[0], pytree.Unparen(operands[1])
	if left.Type() != "identifier" || !match.IsConstant(right) {
		return "", "", false
	}
	if variable != nil && !match.SameName(rc.Tree, left, variable) {
		return "", "", false
	}
	if len(branch.Body) != 1 {
		return "", "", false
	}
	ret := returnValue(branch.Body[0])
	if ret == nil {
		return "", "", false
	}
	if rejectCalls && pytree.Unparen(ret).Type() == "call" {
		return "", "", false
	}

	if match.IsString(right) {
		key = pyRepr(stripDoubleQuotes(rc.Render(right)))
	} else {
		key = rc.Render(right)
	}
	return key, stripDoubleQuotes(rc.Render(ret)), true
}

func stripDoubleQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// pyRepr quotes s the way a Python repr of a string does.
func pyRepr(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// SIM401: if/else switching on key membership to pick between a
// subscript read and a default is dict.get with a default.
func checkUseDictGet(rc *Context, n *sitter.Node) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, arm := range rc.Tree.Arms(n) {
		if arm.NextElif != nil || len(arm.Body) != 1 || len(arm.Else) != 1 {
			continue
		}
		cmp := pytree.Unparen(arm.Cond)
		if cmp == nil || cmp.Type() != "comparison_operator" {
			continue
		}
		operands, ops := rc.Tree.CompareParts(cmp)
		if len(ops) != 1 {
			continue
		}
		key, dictName := operands[0], operands[1]

		var lookup, defaultStmt *sitter.Node
		switch ops[0] {
		case "in":
			lookup, defaultStmt = arm.Body[0], arm.Else[0]
		case "not in":
			lookup, defaultStmt = arm.Else[0], arm.Body[0]
		default:
			continue
		}

		_, lookupTarget, lookupValue := assignStmt(lookup)
		_, defaultTarget, defaultValue := assignStmt(defaultStmt)
		if lookupTarget == nil || defaultTarget == nil {
			continue
		}
		sub := pytree.Unparen(lookupValue)
		if sub == nil || sub.Type() != "subscript" {
			continue
		}
		_, index := pytree.SubscriptParts(sub)
		if rc.Render(index) != rc.Render(key) {
			continue
		}
		if ops[0] == "in" && rc.Render(lookupTarget) != rc.Render(defaultTarget) {
			continue
		}
		out = append(out, diag.NewWarning(diag.UseDictGet, rc.Span(arm.Node), fmt.Sprintf(
			"Use '%s = %s.get(%s, %s)' instead of an if-block",
			rc.Render(lookupTarget), rc.Render(dictName), rc.Render(key), rc.Render(defaultValue))))
	}
	return out
}

// SIM908: "if key in d: x = d[key]" with no else is d.get(key).
func checkIfInDictGet(rc *Context, n *sitter.Node) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, arm := range rc.Tree.Arms(n) {
		if arm.NextElif != nil || arm.ElseNode != nil || len(arm.Body) != 1 {
			continue
		}
		cmp := pytree.Unparen(arm.Cond)
		if cmp == nil || cmp.Type() != "comparison_operator" {
			continue
		}
		operands, ops := rc.Tree.CompareParts(cmp)
		if len(ops) != 1 || ops[0] != "in" {
			continue
		}
		_, target, value := assignStmt(arm.Body[0])
		if target == nil || target.Type() != "identifier" {
			continue
		}
		sub := pytree.Unparen(value)
		if sub == nil || sub.Type() != "subscript" {
			continue
		}
		_, index := pytree.SubscriptParts(sub)
		if rc.Render(index) != rc.Render(operands[0]) {
			continue
		}
		key := rc.Render(operands[0])
		dictName := rc.Render(operands[1])
		out = append(out, diag.NewWarning(diag.IfInDictGet, rc.Span(arm.Node), fmt.Sprintf(
			"Use '%s.get(%s)' instead of 'if %s in %s: %s[%s]'",
			dictName, key, key, dictName, dictName, key)))
	}
	return out
}
