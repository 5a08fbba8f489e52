package config

import (
	"os"
	"path/filepath"
	"testing"

	"simplint/internal/diag"
)

func TestDefaultEnabled(t *testing.T) {
	cfg := Default()
	for _, c := range diag.AllCodes() {
		if !cfg.Enabled(c) {
			t.Errorf("%s disabled by default", c)
		}
	}
	if cfg.Lint.MaxLineLength != 79 {
		t.Errorf("MaxLineLength = %d", cfg.Lint.MaxLineLength)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simplint.toml")
	manifest := `
[lint]
disable = ["SIM105", "sim118"]
line-length = 100

[rules.magic-args]
setter-prefixes = ["set"]
setter-max-args = 3
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Enabled(diag.ContextlibSuppress) {
		t.Error("SIM105 still enabled")
	}
	if cfg.Enabled(diag.KeyInDict) {
		t.Error("sim118 still enabled")
	}
	if !cfg.Enabled(diag.CollapsibleIf) {
		t.Error("untouched rule disabled")
	}
	if cfg.Lint.MaxLineLength != 100 {
		t.Errorf("MaxLineLength = %d", cfg.Lint.MaxLineLength)
	}
	// Unset fields keep defaults.
	if cfg.Lint.MaxDiagnostics != 10000 {
		t.Errorf("MaxDiagnostics = %d", cfg.Lint.MaxDiagnostics)
	}
	if cfg.Rules.MagicArgs.SetterMaxArgs != 3 {
		t.Errorf("SetterMaxArgs = %d", cfg.Rules.MagicArgs.SetterMaxArgs)
	}
}

func TestLoadRejectsUnknownCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simplint.toml")
	if err := os.WriteFile(path, []byte("[lint]\ndisable = [\"SIM999\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("unknown code accepted")
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(root, "simplint.toml")
	if err := os.WriteFile(manifest, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	found, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: %v, %v", ok, err)
	}
	if found != manifest {
		t.Errorf("found %q, want %q", found, manifest)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg == nil || cfg.Lint.MaxLineLength != 79 {
		t.Error("defaults not returned")
	}
}
