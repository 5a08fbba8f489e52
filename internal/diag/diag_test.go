package diag

import (
	"strings"
	"testing"

	"simplint/internal/source"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{DuplicateIsinstance, "SIM101"},
		{NegatedEq, "SIM201"},
		{YodaCondition, "SIM300"},
		{UseDictGet, "SIM401"},
		{ZipDictKeysValues, "SIM911"},
		{UnknownCode, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("Code(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestParseCode(t *testing.T) {
	if c, ok := ParseCode("SIM105"); !ok || c != ContextlibSuppress {
		t.Errorf("ParseCode(SIM105) = %v, %v", c, ok)
	}
	if c, ok := ParseCode("sim118"); !ok || c != KeyInDict {
		t.Errorf("ParseCode(sim118) = %v, %v", c, ok)
	}
	for _, bad := range []string{"", "SIM", "SIM999", "E501", "105"} {
		if _, ok := ParseCode(bad); ok {
			t.Errorf("ParseCode(%q) unexpectedly succeeded", bad)
		}
	}
}

func TestAllCodesHaveTitles(t *testing.T) {
	for _, c := range AllCodes() {
		if c.Title() == "" {
			t.Errorf("%s has no title", c)
		}
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 0, Start: 0, End: 1}

	if !b.Add(NewWarning(KeyInDict, sp, "first")) {
		t.Error("first Add rejected")
	}
	if !b.Add(NewWarning(KeyInDict, sp, "second")) {
		t.Error("second Add rejected")
	}
	if b.Add(NewWarning(KeyInDict, sp, "third")) {
		t.Error("Add beyond cap accepted")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	b := NewBag(10)
	b.Add(NewWarning(UseAny, source.Span{File: 0, Start: 40, End: 50}, "late"))
	b.Add(NewWarning(UseAll, source.Span{File: 0, Start: 10, End: 20}, "early"))
	b.Add(NewWarning(CollapsibleIf, source.Span{File: 0, Start: 10, End: 20}, "same span, lower code"))
	b.Sort()

	items := b.Items()
	if items[0].Code != CollapsibleIf || items[1].Code != UseAll || items[2].Code != UseAny {
		t.Errorf("sorted codes = %v, %v, %v", items[0].Code, items[1].Code, items[2].Code)
	}
}

func TestBagMergeAndDedup(t *testing.T) {
	sp := source.Span{File: 0, Start: 5, End: 9}
	a := NewBag(1)
	a.Add(NewWarning(KeyInDict, sp, "x"))
	b := NewBag(1)
	b.Add(NewWarning(KeyInDict, sp, "x"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("merged Len = %d, want 2", a.Len())
	}
	a.Dedup()
	if a.Len() != 1 {
		t.Errorf("deduped Len = %d, want 1", a.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 0, Start: 0, End: 4}

	r.Report(NegatedEq, SevWarning, sp, "same", nil)
	r.Report(NegatedEq, SevWarning, sp, "same", nil)
	r.Report(NegatedEq, SevWarning, sp, "different message", nil)

	if bag.Len() != 2 {
		t.Errorf("bag Len = %d, want 2", bag.Len())
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/proj")
	id := fs.AddVirtual("/proj/app.py", []byte("x = 1\ny = 2\n"))
	skipped := fs.AddVirtual("/proj/.venv/lib/site.py", []byte("z = 3\n"))

	d1 := NewWarning(ReflexiveAssign, source.Span{File: id, Start: 6, End: 11}, "Remove reflexive assignment 'y = y'")
	d2 := NewWarning(ReflexiveAssign, source.Span{File: skipped, Start: 0, End: 5}, "inside venv")

	out := FormatGoldenDiagnostics([]*Diagnostic{&d1, &d2}, fs, false)
	if !strings.Contains(out, "warning SIM909 app.py:2:1 Remove reflexive assignment 'y = y'") {
		t.Errorf("golden output = %q", out)
	}
	if strings.Contains(out, "venv") {
		t.Errorf("vendored path not skipped: %q", out)
	}
}

func TestHasWarningsErrors(t *testing.T) {
	b := NewBag(4)
	if b.HasWarnings() || b.HasErrors() {
		t.Error("empty bag reports findings")
	}
	b.Add(New(SevInfo, KeyInDict, source.Span{}, "info"))
	if b.HasWarnings() {
		t.Error("info-only bag reports warnings")
	}
	b.Add(NewWarning(KeyInDict, source.Span{}, "warn"))
	if !b.HasWarnings() || b.HasErrors() {
		t.Error("warning detection wrong")
	}
	b.Add(NewError(UnknownCode, source.Span{}, "boom"))
	if !b.HasErrors() {
		t.Error("error not detected")
	}
}
