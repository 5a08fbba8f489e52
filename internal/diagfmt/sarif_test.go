package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"simplint/internal/source"
)

func TestSarifOutput(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := testBag(fs)

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "simplint", ToolVersion: "0.1.0", InvocationArgs: []string{"check", "."}}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("Sarif: %v", err)
	}

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID  string `json:"ruleId"`
				Level   string `json:"level"`
				Message struct {
					Text string `json:"text"`
				} `json:"message"`
				Locations []struct {
					PhysicalLocation struct {
						Region struct {
							StartLine   uint32 `json:"startLine"`
							StartColumn uint32 `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if log.Version != "2.1.0" {
		t.Errorf("version = %q, want 2.1.0", log.Version)
	}
	if len(log.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(log.Runs))
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "simplint" {
		t.Errorf("tool name = %q", run.Tool.Driver.Name)
	}
	if len(run.Tool.Driver.Rules) != 2 {
		t.Errorf("expected 2 distinct rules, got %d", len(run.Tool.Driver.Rules))
	}
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}

	first := run.Results[0]
	if first.RuleID != "SIM208" || first.Level != "warning" {
		t.Errorf("result = %s/%s, want SIM208/warning", first.RuleID, first.Level)
	}
	region := first.Locations[0].PhysicalLocation.Region
	if region.StartLine != 1 || region.StartColumn != 5 {
		t.Errorf("region = %d:%d, want 1:5", region.StartLine, region.StartColumn)
	}
}
