package diag

import (
	"fmt"
	"strconv"
	"strings"
)

// Code identifies a single simplification rule. The numeric value is the
// rule number; String renders the canonical "SIM###" form.
type Code uint16

const (
	UnknownCode Code = 0

	// Conditional statements.
	DuplicateIsinstance   Code = 101
	CollapsibleIf         Code = 102
	ReturnCondition       Code = 103
	YieldFrom             Code = 104
	ContextlibSuppress    Code = 105
	HandleErrorCasesFirst Code = 106
	ReturnInTryFinally    Code = 107
	UseTernary            Code = 108
	CompareToTuple        Code = 109
	UseAny                Code = 110
	UseAll                Code = 111
	UncapitalizedEnvVar   Code = 112
	UseEnumerate          Code = 113
	CombineIfBranches     Code = 114
	OpenWithoutContext    Code = 115
	UseDictLookup         Code = 116
	CombineWith           Code = 117
	KeyInDict             Code = 118
	UseDataclass          Code = 119
	ClassObjectBase       Code = 120

	// Negated comparisons and constant boolean expressions.
	NegatedEq      Code = 201
	NegatedNotEq   Code = 202
	NegatedIn      Code = 203
	NegatedLt      Code = 204
	NegatedLtE     Code = 205
	NegatedGt      Code = 206
	NegatedGtE     Code = 207
	DoubleNegation Code = 208
	TernaryToBool  Code = 210
	TernaryToNot   Code = 211
	TernaryToOr    Code = 212
	AndNotSelf     Code = 220
	OrNotSelf      Code = 221
	OrTrue         Code = 222
	AndFalse       Code = 223

	YodaCondition Code = 300

	UseDictGet Code = 401

	// General simplifications.
	BoolWrappedCompare Code = 901
	MagicBooleanArg    Code = 902
	MagicNumberArg     Code = 903
	DictInitThenAssign Code = 904
	SplitStaticString  Code = 905
	NestedPathJoin     Code = 906
	UnionNone          Code = 907
	IfInDictGet        Code = 908
	ReflexiveAssign    Code = 909
	DictGetWithNone    Code = 910
	ZipDictKeysValues  Code = 911
)

// titles maps every rule code to a short summary used by listings.
var titles = map[Code]string{
	DuplicateIsinstance:   "merge repeated isinstance calls on one value into a tuple",
	CollapsibleIf:         "collapse a nested if into the enclosing if",
	ReturnCondition:       "return the condition instead of True/False branches",
	YieldFrom:             "use 'yield from' instead of yielding inside a loop",
	ContextlibSuppress:    "use contextlib.suppress instead of try/except/pass",
	HandleErrorCasesFirst: "handle error cases first (raise in the if, not the else)",
	ReturnInTryFinally:    "avoid return in try/else when finally also returns",
	UseTernary:            "use a ternary assignment instead of an if/else block",
	CompareToTuple:        "use tuple membership instead of repeated equality checks",
	UseAny:                "use any() instead of a for loop that returns True",
	UseAll:                "use all() instead of a for loop that returns False",
	UncapitalizedEnvVar:   "use capitalized environment variable names",
	UseEnumerate:          "use enumerate() instead of a manually incremented counter",
	CombineIfBranches:     "combine if branches with identical bodies using or",
	OpenWithoutContext:    "use a context manager for resource-allocating calls",
	UseDictLookup:         "use a dictionary lookup instead of an if cascade",
	CombineWith:           "merge nested with statements",
	KeyInDict:             "use 'key in dict' instead of 'key in dict.keys()'",
	UseDataclass:          "use a dataclass for classes that only assign in __init__",
	ClassObjectBase:       "omit 'object' as an explicit base class",

	NegatedEq:      "use 'a != b' instead of 'not a == b'",
	NegatedNotEq:   "use 'a == b' instead of 'not a != b'",
	NegatedIn:      "use 'a not in b' instead of 'not a in b'",
	NegatedLt:      "use 'a >= b' instead of 'not a < b'",
	NegatedLtE:     "use 'a > b' instead of 'not a <= b'",
	NegatedGt:      "use 'a <= b' instead of 'not a > b'",
	NegatedGtE:     "use 'a < b' instead of 'not a >= b'",
	DoubleNegation: "remove a double negation",
	TernaryToBool:  "use 'bool(a)' instead of 'True if a else False'",
	TernaryToNot:   "use 'not a' instead of 'False if a else True'",
	TernaryToOr:    "use 'a or b' instead of 'a if a else b'",
	AndNotSelf:     "'a and not a' is always False",
	OrNotSelf:      "'a or not a' is always True",
	OrTrue:         "'... or True' is always True",
	AndFalse:       "'... and False' is always False",

	YodaCondition: "put the variable on the left side of a comparison",

	UseDictGet: "use dict.get with a default instead of an if/else lookup",

	BoolWrappedCompare: "drop the bool() wrapper around a comparison",
	MagicBooleanArg:    "pass boolean literals as keyword arguments",
	MagicNumberArg:     "pass magic numbers as keyword arguments",
	DictInitThenAssign: "assign values while initializing the dictionary",
	SplitStaticString:  "use a list literal instead of splitting a static string",
	NestedPathJoin:     "merge nested os.path.join calls",
	UnionNone:          "use Optional[X] instead of Union[X, None]",
	IfInDictGet:        "use dict.get(key) instead of an 'if key in dict' block",
	ReflexiveAssign:    "remove a reflexive assignment",
	DictGetWithNone:    "omit the explicit None default of dict.get",
	ZipDictKeysValues:  "use dict.items() instead of zip(dict.keys(), dict.values())",
}

// codeOrder lists every rule code in display order.
var codeOrder = []Code{
	DuplicateIsinstance, CollapsibleIf, ReturnCondition, YieldFrom,
	ContextlibSuppress, HandleErrorCasesFirst, ReturnInTryFinally, UseTernary,
	CompareToTuple, UseAny, UseAll, UncapitalizedEnvVar, UseEnumerate,
	CombineIfBranches, OpenWithoutContext, UseDictLookup, CombineWith,
	KeyInDict, UseDataclass, ClassObjectBase,
	NegatedEq, NegatedNotEq, NegatedIn, NegatedLt, NegatedLtE, NegatedGt,
	NegatedGtE, DoubleNegation, TernaryToBool, TernaryToNot, TernaryToOr,
	AndNotSelf, OrNotSelf, OrTrue, AndFalse,
	YodaCondition,
	UseDictGet,
	BoolWrappedCompare, MagicBooleanArg, MagicNumberArg, DictInitThenAssign,
	SplitStaticString, NestedPathJoin, UnionNone, IfInDictGet,
	ReflexiveAssign, DictGetWithNone, ZipDictKeysValues,
}

// AllCodes returns every known rule code in display order.
func AllCodes() []Code {
	out := make([]Code, len(codeOrder))
	copy(out, codeOrder)
	return out
}

// Title returns the short summary for a code, or "" for unknown codes.
func (c Code) Title() string {
	return titles[c]
}

// Known reports whether c is a registered rule code.
func (c Code) Known() bool {
	_, ok := titles[c]
	return ok
}

func (c Code) String() string {
	if c == UnknownCode {
		return "UNKNOWN"
	}
	return fmt.Sprintf("SIM%03d", uint16(c))
}

// ID is the stable identifier used in machine-readable output.
func (c Code) ID() string {
	return c.String()
}

// ParseCode resolves a "SIM###" identifier (case-insensitive) to a Code.
func ParseCode(s string) (Code, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	rest, ok := strings.CutPrefix(s, "SIM")
	if !ok {
		return UnknownCode, false
	}
	n, err := strconv.ParseUint(rest, 10, 16)
	if err != nil {
		return UnknownCode, false
	}
	c := Code(n)
	if !c.Known() {
		return UnknownCode, false
	}
	return c, true
}
