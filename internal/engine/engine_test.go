package engine

import (
	"context"
	"testing"

	"simplint/internal/config"
	"simplint/internal/diag"
	"simplint/internal/source"
)

func checkFile(t *testing.T, cfg *config.Config, src string) *diag.Bag {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("example.py", []byte(src))
	bag := diag.NewBag(int(^uint16(0)))
	if err := New(cfg).Check(context.Background(), fs.Get(id), diag.BagReporter{Bag: bag}); err != nil {
		t.Fatalf("Check: %v", err)
	}
	return bag
}

func TestCheckReportsFindings(t *testing.T) {
	bag := checkFile(t, config.Default(), "not a == b\n")
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d findings, want 1", len(items))
	}
	if items[0].Code != diag.NegatedEq {
		t.Errorf("code = %s, want SIM201", items[0].Code)
	}
	if items[0].Severity != diag.SevWarning {
		t.Errorf("severity = %v, want warning", items[0].Severity)
	}
}

func TestDisabledRuleNeverFires(t *testing.T) {
	cfg := config.Default()
	cfg.Lint.Disable = []string{"SIM201"}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	bag := checkFile(t, cfg, "not a == b\n")
	if bag.Len() != 0 {
		t.Fatalf("disabled rule produced %d findings", bag.Len())
	}
}

func TestFindingsKeptVerbatim(t *testing.T) {
	// The reporter is append-only: the engine must not merge two
	// identical findings from different statements of equal text.
	bag := checkFile(t, config.Default(), "not a == b\nnot a == b\n")
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("got %d findings, want 2", len(items))
	}
	if items[0].Primary == items[1].Primary {
		t.Error("distinct statements share one span")
	}
	if items[0].Primary.Start > items[1].Primary.Start {
		t.Error("findings out of walk order")
	}
}

func TestEmptyInputIsClean(t *testing.T) {
	for _, src := range []string{"", "\n", "# comment only\n"} {
		if bag := checkFile(t, config.Default(), src); bag.Len() != 0 {
			t.Errorf("source %q produced %d findings", src, bag.Len())
		}
	}
}

func TestCheckDeterministic(t *testing.T) {
	src := "not a == b\nif a or True:\n    pass\nx = not not y\n"
	first := checkFile(t, config.Default(), src).Items()
	second := checkFile(t, config.Default(), src).Items()
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Code != b.Code || a.Severity != b.Severity || a.Primary != b.Primary || a.Message != b.Message {
			t.Errorf("finding %d differs between runs: %v vs %v", i, a, b)
		}
	}
}

func TestWalkReachesNestedNodes(t *testing.T) {
	src := "def f():\n    if cond:\n        x = True if a else False\n"
	bag := checkFile(t, config.Default(), src)
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.TernaryToBool {
		t.Fatalf("nested ternary not found: %v", items)
	}
}
