package rules

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/config"
	"simplint/internal/pytree"
)

// lint walks src with every rule and returns findings formatted as
// "line:col CODE message", line 1-based and col a 0-based byte offset.
func lint(t *testing.T, src string) []string {
	t.Helper()
	return lintWith(t, src, config.Default())
}

func lintWith(t *testing.T, src string, cfg *config.Config) []string {
	t.Helper()
	tree, err := pytree.Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	t.Cleanup(tree.Close)

	byKind := map[string][]Rule{}
	for _, rule := range All() {
		for _, kind := range rule.Kinds {
			byKind[kind] = append(byKind[kind], rule)
		}
	}

	rc := &Context{Tree: tree, File: 1, Cfg: cfg}
	var out []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for _, rule := range byKind[n.Type()] {
			for _, d := range rule.Check(rc, n) {
				line, col := offsetPos(src, d.Primary.Start)
				out = append(out, fmt.Sprintf("%d:%d %s %s", line, col, d.Code, d.Message))
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(tree.Root())
	return out
}

func offsetPos(src string, off uint32) (line, col int) {
	line = 1
	for _, b := range []byte(src)[:off] {
		if b == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

func expect(t *testing.T, src string, want ...string) {
	t.Helper()
	got := lint(t, src)
	if len(want) == 0 {
		want = nil
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("findings mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestDuplicateIsinstance(t *testing.T) {
	expect(t, "if isinstance(a, int) or isinstance(a, float) or b:\n    pass\n",
		"1:3 SIM101 Multiple isinstance-calls which can be merged into a single call for variable 'a'")
	expect(t, "if isinstance(a, int) or isinstance(b, float):\n    pass\n")
}

func TestCollapsibleIf(t *testing.T) {
	expect(t, "if a:\n    if b:\n        c()\n",
		"1:0 SIM102 Use a single if-statement instead of nested if-statements")
	// An else on either if blocks the merge.
	expect(t, "if a:\n    if b:\n        c()\n    else:\n        d()\n")
	expect(t, "if a:\n    if b:\n        c()\nelse:\n    d()\n")
	// The import-guard idiom stays quiet.
	expect(t, "if __name__ == \"__main__\":\n    if b:\n        c()\n")
}

func TestCollapsibleIfElifArm(t *testing.T) {
	expect(t, "if a:\n    pass\nelif b:\n    if c:\n        d()\n",
		"3:0 SIM102 Use a single if-statement instead of nested if-statements")
}

func TestReturnCondition(t *testing.T) {
	expect(t, "def f():\n    if cond:\n        return True\n    else:\n        return False\n",
		"2:4 SIM103 Return the condition cond directly")
	// The inverted shape returns the negation; an existing "not" strips.
	expect(t, "def f():\n    if cond:\n        return False\n    else:\n        return True\n",
		"2:4 SIM103 Return the condition not cond directly")
	expect(t, "def f():\n    if not cond:\n        return False\n    else:\n        return True\n",
		"2:4 SIM103 Return the condition cond directly")
	expect(t, "def f():\n    if a and b:\n        return False\n    else:\n        return True\n",
		"2:4 SIM103 Return the condition not (a and b) directly")
	// Identical literals in both branches are not condition-shaped.
	expect(t, "def f():\n    if cond:\n        return True\n    else:\n        return True\n")
	expect(t, "def f():\n    if cond:\n        return True\n    else:\n        return value\n")
}

func TestYieldFrom(t *testing.T) {
	expect(t, "def f():\n    for item in iterable:\n        yield item\n",
		"2:4 SIM104 Use 'yield from iterable'")
	// Different name, extra statements, or async generators stay quiet.
	expect(t, "def f():\n    for item in iterable:\n        yield other\n")
	expect(t, "async def f():\n    for item in iterable:\n        yield item\n")
}

func TestContextlibSuppress(t *testing.T) {
	expect(t, "try:\n    foo()\nexcept ValueError:\n    pass\n",
		"1:0 SIM105 Use 'contextlib.suppress(ValueError)'")
	expect(t, "try:\n    foo()\nexcept:\n    pass\n",
		"1:0 SIM105 Use 'contextlib.suppress(Exception)'")
	expect(t, "try:\n    foo()\n    bar()\nexcept ValueError:\n    pass\n")
}

func TestHandleErrorCasesFirst(t *testing.T) {
	expect(t, "if cond:\n    a()\nelse:\n    raise Exception(\"failed\")\n",
		"1:0 SIM106 Handle error-cases first")
	// Configured validation exceptions are guard clauses.
	expect(t, "if cond:\n    a()\nelse:\n    raise ValueError(\"failed\")\n")
	// A raising happy path is not an inverted structure.
	expect(t, "if cond:\n    raise KeyError(\"a\")\nelse:\n    raise Exception(\"b\")\n")
}

func TestReturnInTryFinally(t *testing.T) {
	expect(t, "def f():\n    try:\n        a()\n        return 1\n    finally:\n        return 3\n",
		"6:8 SIM107 Don't use return in try/except and finally")
	// A returning handler conflicts with the finally return too.
	expect(t, "def f():\n    try:\n        a()\n        b()\n    except KeyError:\n        return 2\n    finally:\n        return 3\n",
		"8:8 SIM107 Don't use return in try/except and finally")
	expect(t, "def f():\n    try:\n        a()\n    finally:\n        return 3\n")
}

func TestUseTernary(t *testing.T) {
	expect(t, "if a:\n    b = c\nelse:\n    b = d\n",
		"1:0 SIM108 Use ternary operator 'b = c if a else d' instead of if-else-block")
	// Different targets, or a chain arm that refines an assignment
	// made one level up, stay quiet.
	expect(t, "if a:\n    b = c\nelse:\n    e = d\n")
	expect(t, "if x:\n    b = 1\nelif y:\n    b = 2\nelse:\n    b = 3\n")
}

func TestUseTernaryLineLength(t *testing.T) {
	cfg := config.Default()
	cfg.Lint.MaxLineLength = 30
	got := lintWith(t, "if a:\n    b = some_rather_long_call(c)\nelse:\n    b = d\n", cfg)
	if got != nil {
		t.Errorf("expected no findings over the length budget, got %v", got)
	}
}

func TestCompareToTuple(t *testing.T) {
	expect(t, "if a == b or a == c:\n    d()\n",
		"1:3 SIM109 Use 'a in (b, c)' instead of 'a == b or a == c'")
	expect(t, "if a == b or x == c:\n    d()\n")
}

func TestUseAny(t *testing.T) {
	expect(t, "def f():\n    for x in iterable:\n        if check(x):\n            return True\n    return False\n",
		"2:4 SIM110 Use 'return any(check(x) for x in iterable)'")
}

func TestUseAll(t *testing.T) {
	expect(t, "def f():\n    for x in iterable:\n        if check(x):\n            return False\n    return True\n",
		"2:4 SIM111 Use 'return all(not check(x) for x in iterable)'")
	// A negated check flips back, a compound one gets wrapped.
	expect(t, "def f():\n    for x in iterable:\n        if not check(x):\n            return False\n    return True\n",
		"2:4 SIM111 Use 'return all(check(x) for x in iterable)'")
	expect(t, "def f():\n    for x in iterable:\n        if a(x) and b(x):\n            return False\n    return True\n",
		"2:4 SIM111 Use 'return all(not (a(x) and b(x)) for x in iterable)'")
}

func TestAnyAllNeedTrailingReturn(t *testing.T) {
	expect(t, "def f():\n    for x in iterable:\n        if check(x):\n            return True\n")
}

func TestUncapitalizedEnvVar(t *testing.T) {
	expect(t, "os.environ[\"foo\"]\n",
		`1:0 SIM112 Use 'os.environ["FOO"]' instead of 'os.environ["foo"]'`)
	expect(t, "os.environ.get(\"foo\")\n",
		`1:0 SIM112 Use 'os.environ.get("FOO")' instead of 'os.environ.get("foo")'`)
	expect(t, "os.environ.get(\"foo\", \"bar\")\n",
		`1:0 SIM112 Use 'os.environ.get("FOO", "bar")' instead of 'os.environ.get("foo", "bar")'`)
	expect(t, "os.environ[\"FOO\"]\n")
}

func TestUseEnumerate(t *testing.T) {
	expect(t, "idx = 0\nfor el in iterable:\n    foo(el)\n    idx += 1\n",
		"4:4 SIM113 Use enumerate instead of 'idx'")
	// A continue may skip the increment.
	expect(t, "idx = 0\nfor el in iterable:\n    if el:\n        continue\n    idx += 1\n")
	expect(t, "for el in iterable:\n    idx += 2\n")
	// Without an initializer before the loop the increment may target
	// an outer-scope name.
	expect(t, "for el in iterable:\n    foo(el)\n    idx += 1\n")
	expect(t, "def g():\n    idx = 0\ndef f():\n    for el in iterable:\n        idx += 1\n")
}

func TestCombineIfBranches(t *testing.T) {
	expect(t, "if a:\n    b()\nelif c:\n    b()\n",
		"1:0 SIM114 Use logical or ((a) or (c)) and a single body")
	expect(t, "if a:\n    b()\nelif c:\n    d()\n")
}

func TestOpenWithoutContext(t *testing.T) {
	expect(t, "f = open(\"f.txt\")\n",
		"1:4 SIM115 Use context handler for opening files")
	expect(t, "with open(\"f.txt\") as f:\n    pass\n")
}

func TestUseDictLookup(t *testing.T) {
	expect(t, "def f():\n    if a == \"a\":\n        return \"A\"\n    elif a == \"b\":\n        return \"B\"\n    elif a == \"c\":\n        return \"C\"\n",
		"2:4 SIM116 Use a dictionary lookup instead of 3+ if/elif-statements: return {'a': 'A', 'b': 'B', 'c': 'C'}.get(a)")
	expect(t, "def f():\n    if a == \"a\":\n        return \"A\"\n    elif a == \"b\":\n        return \"B\"\n    elif a == \"c\":\n        return \"C\"\n    else:\n        return \"D\"\n",
		`2:4 SIM116 Use a dictionary lookup instead of 3+ if/elif-statements: return {'a': 'A', 'b': 'B', 'c': 'C'}.get(a, "D")`)
	// Two branches are not enough, and call results are not constants.
	expect(t, "def f():\n    if a == \"a\":\n        return \"A\"\n    elif a == \"b\":\n        return \"B\"\n")
	expect(t, "def f():\n    if a == \"a\":\n        return \"A\"\n    elif a == \"b\":\n        return make()\n    elif a == \"c\":\n        return \"C\"\n")
}

func TestCombineWith(t *testing.T) {
	expect(t, "with A() as a:\n    with B() as b:\n        print(\"hello\")\n",
		"1:0 SIM117 Use 'with A() as a, B() as b:' instead of multiple with statements")
	expect(t, "with A() as a:\n    with B() as b:\n        pass\n    print(\"hello\")\n")
}

func TestKeyInDict(t *testing.T) {
	expect(t, "if key in d.keys():\n    pass\n",
		"1:3 SIM118 Use 'key in d' instead of 'key in d.keys()'")
	expect(t, "if key in d:\n    pass\n")
}

func TestUseDataclass(t *testing.T) {
	expect(t, "class Person:\n    def __init__(self, name):\n        self.name = name\n",
		"1:0 SIM119 Use a dataclass for 'class Person'")
	// Real behavior or computation in the constructor disqualifies.
	expect(t, "class Person:\n    def __init__(self, name):\n        self.name = name.strip()\n")
	expect(t, "class Person:\n    def walk(self):\n        pass\n")
	expect(t, "class Person:\n    pass\n")
}

func TestClassObjectBase(t *testing.T) {
	expect(t, "class A(object):\n    pass\n",
		"1:0 SIM120 Use 'class A:' instead of 'class A(object):'")
	expect(t, "class A(Base):\n    pass\n")
}

func TestNegatedComparisons(t *testing.T) {
	expect(t, "not a == b\n", "1:0 SIM201 Use 'a != b' instead of 'not a == b'")
	expect(t, "not a != b\n", "1:0 SIM202 Use 'a == b' instead of 'not a != b'")
	expect(t, "not a in b\n", "1:0 SIM203 Use 'a not in b' instead of 'not a in b'")
	expect(t, "not a < b\n", "1:0 SIM204 Use 'a >= b' instead of 'not (a < b)'")
	expect(t, "not a <= b\n", "1:0 SIM205 Use 'a > b' instead of 'not (a <= b)'")
	expect(t, "not a > b\n", "1:0 SIM206 Use 'a <= b' instead of 'not (a > b)'")
	expect(t, "not a >= b\n", "1:0 SIM207 Use 'a < b' instead of 'not (a >= b)'")
}

func TestNegatedComparisonGuardSuppressed(t *testing.T) {
	expect(t, "if not a == b:\n    raise ValueError(\"x\")\n")
}

func TestDoubleNegation(t *testing.T) {
	expect(t, "not (not a)\n", "1:0 SIM208 Use 'a' instead of 'not (not a)'")
}

func TestTernaryToBool(t *testing.T) {
	expect(t, "x = True if a else False\n",
		"1:4 SIM210 Use 'bool(a)' instead of 'True if a else False'")
}

func TestTernaryToNot(t *testing.T) {
	expect(t, "x = False if a else True\n",
		"1:4 SIM211 Use 'not a' instead of 'False if a else True'")
}

func TestTernaryToOr(t *testing.T) {
	expect(t, "x = b if not a else a\n",
		"1:4 SIM212 Use 'a if a else b' instead of 'b if not a else a'")
	expect(t, "x = b if not a else c\n")
}

func TestBoolContradictions(t *testing.T) {
	expect(t, "if a and not a:\n    pass\n", "1:3 SIM220 Use 'False' instead of 'a and not a'")
	expect(t, "if a or not a:\n    pass\n", "1:3 SIM221 Use 'True' instead of 'a or not a'")
	expect(t, "if a or True:\n    pass\n", "1:3 SIM222 Use 'True' instead of '... or True'")
	expect(t, "if a and False:\n    pass\n", "1:3 SIM223 Use 'False' instead of '... and False'")
	expect(t, "if a and not b:\n    pass\n")
}

func TestYodaCondition(t *testing.T) {
	expect(t, "if \"yoda\" == compare:\n    pass\n",
		`1:3 SIM300 Use 'compare == "yoda"' instead of '"yoda" == compare' (Yoda-conditions)`)
	expect(t, "if compare == \"yoda\":\n    pass\n")
}

func TestUseDictGet(t *testing.T) {
	expect(t, "if key in a_dict:\n    value = a_dict[key]\nelse:\n    value = \"default\"\n",
		`1:0 SIM401 Use 'value = a_dict.get(key, "default")' instead of an if-block`)
	expect(t, "if key not in a_dict:\n    value = \"default\"\nelse:\n    value = a_dict[key]\n",
		`1:0 SIM401 Use 'value = a_dict.get(key, "default")' instead of an if-block`)
	expect(t, "if key in a_dict:\n    value = a_dict[other]\nelse:\n    value = \"default\"\n")
}

func TestBoolWrappedCompare(t *testing.T) {
	expect(t, "bool(a == b)\n", "1:0 SIM901 Use 'a == b' instead of 'bool(a == b)'")
	expect(t, "bool(a)\n")
}

func TestMagicBooleanArg(t *testing.T) {
	expect(t, "foo(a, True)\n",
		"1:0 SIM902 Use keyword-argument instead of magic boolean for 'foo'")
	// Setter-style calls and exception constructors are conventional.
	expect(t, "set_visible(True)\n")
	expect(t, "raise DataError(True)\n")
	expect(t, "foo(a, flag=True)\n")
}

func TestMagicNumberArg(t *testing.T) {
	expect(t, "foo(a, 42)\n",
		"1:0 SIM903 Use keyword-argument instead of magic number for 'foo'")
	// Small integers, conventional names and geometry vocabulary pass.
	expect(t, "foo(a, 1)\n")
	expect(t, "range(42)\n")
	expect(t, "translate_x(42)\n")
	expect(t, "resize_width(42)\n")
}

func TestDictInitThenAssign(t *testing.T) {
	expect(t, "a = {}\na[\"b\"] = \"c\"\n",
		"1:0 SIM904 Initialize dictionary 'a' directly")
	// A value reading the dict itself cannot move into the literal.
	expect(t, "a = {}\na[\"b\"] = a.get(\"x\")\n")
	expect(t, "a = {}\nother[\"b\"] = \"c\"\n")
}

func TestSplitStaticString(t *testing.T) {
	expect(t, "domains = \"de com net org\".split()\n",
		`1:10 SIM905 Use '["de", "com", "net", "org"]' instead of '"de com net org".split()'`)
	expect(t, "domains = value.split()\n")
}

func TestNestedPathJoin(t *testing.T) {
	expect(t, "os.path.join(a, os.path.join(b, c))\n",
		"1:0 SIM906 Use 'os.path.join(a, b, c)' instead of 'os.path.join(a, os.path.join(b, c))'")
	expect(t, "os.path.join(\"a\", os.path.join(b, c))\n",
		`1:0 SIM906 Use 'os.path.join('a', b, c)' instead of 'os.path.join("a", os.path.join(b, c))'`)
	expect(t, "os.path.join(a, b)\n")
}

func TestNestedPathJoinReportsDroppedArgs(t *testing.T) {
	tree, err := pytree.Parse(context.Background(), []byte("os.path.join(a, os.path.join(b, c()))\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	t.Cleanup(tree.Close)

	var notes []string
	rc := &Context{Tree: tree, File: 1, Cfg: config.Default(), Debug: func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}}
	call := pytree.ExprOf(pytree.Statements(tree.Root())[0])
	out := checkNestedPathJoin(rc, call)
	if len(out) != 1 {
		t.Fatalf("got %d findings, want 1", len(out))
	}
	want := "Use 'os.path.join(a, b)' instead of 'os.path.join(a, os.path.join(b, c()))'"
	if out[0].Message != want {
		t.Errorf("message = %q, want %q", out[0].Message, want)
	}
	if len(notes) != 1 || notes[0] != "os.path.join: skipping unrenderable argument 'c()'" {
		t.Errorf("debug notes = %q", notes)
	}
}

func TestUnionNone(t *testing.T) {
	expect(t, "x: Union[int, None] = None\n",
		"1:3 SIM907 Use 'Optional[int]' instead of 'Union[int, None]'")
	// Outside annotations the same spelling parses as a plain subscript.
	expect(t, "x = Union[int, None]\n",
		"1:4 SIM907 Use 'Optional[int]' instead of 'Union[int, None]'")
	expect(t, "def f() -> Union[str, None]:\n    pass\n",
		"1:11 SIM907 Use 'Optional[str]' instead of 'Union[str, None]'")
	expect(t, "x: Union[int, str] = 1\n")
	expect(t, "x: Union[int, str, None] = None\n")
}

func TestIfInDictGet(t *testing.T) {
	expect(t, "if \"key\" in d:\n    value = d[\"key\"]\n",
		`1:0 SIM908 Use 'd.get("key")' instead of 'if "key" in d: d["key"]'`)
	expect(t, "if \"key\" in d:\n    value = d[\"other\"]\n")
}

func TestReflexiveAssign(t *testing.T) {
	expect(t, "foo = foo\n", "1:0 SIM909 Remove reflexive assignment 'foo = foo'")
	expect(t, "a = b = a\n", "1:0 SIM909 Remove reflexive assignment 'a = b = a'")
	expect(t, "a, b = a, b\n", "1:0 SIM909 Remove reflexive assignment 'a, b = a, b'")
	expect(t, "a[\"k\"] = a[\"k\"]\n", `1:0 SIM909 Remove reflexive assignment 'a["k"] = a["k"]'`)
	expect(t, "foo = bar\n")
	// Class-level redeclaration is intentional.
	expect(t, "class A:\n    foo = foo\n")
}

func TestDictGetWithNone(t *testing.T) {
	expect(t, "d.get(key, None)\n",
		"1:0 SIM910 Use 'd.get(key)' instead of 'd.get(key, None)'")
	expect(t, "d.get(key, 0)\n")
}

func TestZipDictKeysValues(t *testing.T) {
	expect(t, "zip(d.keys(), d.values())\n",
		"1:0 SIM911 Use 'd.items()' instead of 'zip(d.keys(), d.values())'")
	expect(t, "zip(d.keys(), e.values())\n")
}
