// Package rules holds the individual lint checks. Every rule matches a
// small structural pattern against the syntax tree of one file and
// reports how the matched code could be simplified.
package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/config"
	"simplint/internal/diag"
	"simplint/internal/pytree"
	"simplint/internal/render"
	"simplint/internal/source"
)

// Context carries everything a rule may inspect while checking one file.
type Context struct {
	Tree *pytree.Tree
	File source.FileID
	Cfg  *config.Config

	// Debug receives notes about input a rule had to skip. Nil means off.
	Debug func(format string, args ...any)
}

// Debugf reports a skipped shape to the debug sink, if one is set.
func (rc *Context) Debugf(format string, args ...any) {
	if rc.Debug != nil {
		rc.Debug(format, args...)
	}
}

func (rc *Context) Span(n *sitter.Node) source.Span {
	return rc.Tree.Span(rc.File, n)
}

func (rc *Context) Text(n *sitter.Node) string {
	return rc.Tree.Text(n)
}

// Render returns the single-line normalized source text of n, the form
// used inside diagnostic messages.
func (rc *Context) Render(n *sitter.Node) string {
	return render.Node(rc.Tree, n)
}

// Rule is one lint check. Kinds lists the node kinds the engine
// dispatches it on; Check reports zero or more findings for a node of
// one of those kinds. A pattern mismatch is an empty result, never an
// error.
type Rule struct {
	Code  diag.Code
	Kinds []string
	Check func(rc *Context, n *sitter.Node) []diag.Diagnostic
}

// All returns every built-in rule in code order. The engine filters the
// set against the configuration before walking.
func All() []Rule {
	return []Rule{
		{Code: diag.DuplicateIsinstance, Kinds: []string{"boolean_operator"}, Check: checkDuplicateIsinstance},
		{Code: diag.CollapsibleIf, Kinds: []string{"if_statement"}, Check: checkCollapsibleIf},
		{Code: diag.ReturnCondition, Kinds: []string{"if_statement"}, Check: checkReturnCondition},
		{Code: diag.YieldFrom, Kinds: []string{"for_statement"}, Check: checkYieldFrom},
		{Code: diag.ContextlibSuppress, Kinds: []string{"try_statement"}, Check: checkContextlibSuppress},
		{Code: diag.HandleErrorCasesFirst, Kinds: []string{"if_statement"}, Check: checkHandleErrorCasesFirst},
		{Code: diag.ReturnInTryFinally, Kinds: []string{"try_statement"}, Check: checkReturnInTryFinally},
		{Code: diag.UseTernary, Kinds: []string{"if_statement"}, Check: checkUseTernary},
		{Code: diag.CompareToTuple, Kinds: []string{"boolean_operator"}, Check: checkCompareToTuple},
		{Code: diag.UseAny, Kinds: []string{"for_statement"}, Check: checkUseAny},
		{Code: diag.UseAll, Kinds: []string{"for_statement"}, Check: checkUseAll},
		{Code: diag.UncapitalizedEnvVar, Kinds: []string{"expression_statement"}, Check: checkUncapitalizedEnvVar},
		{Code: diag.UseEnumerate, Kinds: []string{"for_statement"}, Check: checkUseEnumerate},
		{Code: diag.CombineIfBranches, Kinds: []string{"if_statement"}, Check: checkCombineIfBranches},
		{Code: diag.OpenWithoutContext, Kinds: []string{"call"}, Check: checkOpenWithoutContext},
		{Code: diag.UseDictLookup, Kinds: []string{"if_statement"}, Check: checkUseDictLookup},
		{Code: diag.CombineWith, Kinds: []string{"with_statement"}, Check: checkCombineWith},
		{Code: diag.KeyInDict, Kinds: []string{"comparison_operator"}, Check: checkKeyInDict},
		{Code: diag.UseDataclass, Kinds: []string{"class_definition"}, Check: checkUseDataclass},
		{Code: diag.ClassObjectBase, Kinds: []string{"class_definition"}, Check: checkClassObjectBase},
		{Code: diag.NegatedEq, Kinds: []string{"not_operator"}, Check: checkNegatedEq},
		{Code: diag.NegatedNotEq, Kinds: []string{"not_operator"}, Check: checkNegatedNotEq},
		{Code: diag.NegatedIn, Kinds: []string{"not_operator"}, Check: checkNegatedIn},
		{Code: diag.NegatedLt, Kinds: []string{"not_operator"}, Check: checkNegatedLt},
		{Code: diag.NegatedLtE, Kinds: []string{"not_operator"}, Check: checkNegatedLtE},
		{Code: diag.NegatedGt, Kinds: []string{"not_operator"}, Check: checkNegatedGt},
		{Code: diag.NegatedGtE, Kinds: []string{"not_operator"}, Check: checkNegatedGtE},
		{Code: diag.DoubleNegation, Kinds: []string{"not_operator"}, Check: checkDoubleNegation},
		{Code: diag.TernaryToBool, Kinds: []string{"conditional_expression"}, Check: checkTernaryToBool},
		{Code: diag.TernaryToNot, Kinds: []string{"conditional_expression"}, Check: checkTernaryToNot},
		{Code: diag.TernaryToOr, Kinds: []string{"conditional_expression"}, Check: checkTernaryToOr},
		{Code: diag.AndNotSelf, Kinds: []string{"boolean_operator"}, Check: checkAndNotSelf},
		{Code: diag.OrNotSelf, Kinds: []string{"boolean_operator"}, Check: checkOrNotSelf},
		{Code: diag.OrTrue, Kinds: []string{"boolean_operator"}, Check: checkOrTrue},
		{Code: diag.AndFalse, Kinds: []string{"boolean_operator"}, Check: checkAndFalse},
		{Code: diag.YodaCondition, Kinds: []string{"comparison_operator"}, Check: checkYodaCondition},
		{Code: diag.UseDictGet, Kinds: []string{"if_statement"}, Check: checkUseDictGet},
		{Code: diag.BoolWrappedCompare, Kinds: []string{"call"}, Check: checkBoolWrappedCompare},
		{Code: diag.MagicBooleanArg, Kinds: []string{"call"}, Check: checkMagicBooleanArg},
		{Code: diag.MagicNumberArg, Kinds: []string{"call"}, Check: checkMagicNumberArg},
		{Code: diag.DictInitThenAssign, Kinds: []string{"assignment"}, Check: checkDictInitThenAssign},
		{Code: diag.SplitStaticString, Kinds: []string{"call"}, Check: checkSplitStaticString},
		{Code: diag.NestedPathJoin, Kinds: []string{"call"}, Check: checkNestedPathJoin},
		{Code: diag.UnionNone, Kinds: []string{"subscript", "generic_type"}, Check: checkUnionNone},
		{Code: diag.IfInDictGet, Kinds: []string{"if_statement"}, Check: checkIfInDictGet},
		{Code: diag.ReflexiveAssign, Kinds: []string{"assignment"}, Check: checkReflexiveAssign},
		{Code: diag.DictGetWithNone, Kinds: []string{"call"}, Check: checkDictGetWithNone},
		{Code: diag.ZipDictKeysValues, Kinds: []string{"call"}, Check: checkZipDictKeysValues},
	}
}
