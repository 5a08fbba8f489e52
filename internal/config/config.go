// Package config loads linter settings from simplint.toml and carries the
// heuristic allow-lists some rules depend on. The lists mirror the
// conventions the rules were tuned against; projects override them in the
// manifest rather than patching rule logic.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"simplint/internal/diag"
)

// Config is the resolved configuration for one lint run.
type Config struct {
	Lint  LintConfig  `toml:"lint"`
	Rules RulesConfig `toml:"rules"`

	disabled map[diag.Code]bool
}

// LintConfig holds run-wide settings.
type LintConfig struct {
	// Disable lists rule codes ("SIM105") that never fire.
	Disable []string `toml:"disable"`
	// MaxLineLength bounds the formatted suggestion of the ternary rule:
	// a rewrite that would not fit on one line is not suggested.
	MaxLineLength int `toml:"line-length"`
	// MaxDiagnostics caps findings per run.
	MaxDiagnostics int `toml:"max-diagnostics"`
}

// RulesConfig groups per-rule heuristic knobs.
type RulesConfig struct {
	MagicArgs  MagicArgsConfig  `toml:"magic-args"`
	ErrorCases ErrorCasesConfig `toml:"error-cases"`
}

// ErrorCasesConfig tunes the error-cases-first rule.
type ErrorCasesConfig struct {
	// ExpectedExceptions are constructors whose raise in an else branch
	// counts as an idiomatic validation guard, not a buried error case.
	ExpectedExceptions []string `toml:"expected-exceptions"`
}

// MagicArgsConfig tunes the magic boolean/number argument rules.
type MagicArgsConfig struct {
	// SetterPrefixes are callee-name prefixes allowed to take a bare
	// positional boolean when the call has few arguments.
	SetterPrefixes []string `toml:"setter-prefixes"`
	// SetterMaxArgs is the argument budget for setter-style calls.
	SetterMaxArgs int `toml:"setter-max-args"`
	// AllowedNumbers are numeric literals that never count as magic.
	AllowedNumbers []string `toml:"allowed-numbers"`
	// AllowedNames are exact callee names that take positional numbers
	// by convention (math and UI primitives).
	AllowedNames []string `toml:"allowed-names"`
	// NameParts are substrings of callee names that signal positional
	// numeric arguments are conventional (coordinates, colors, geometry).
	NameParts []string `toml:"name-parts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Lint: LintConfig{
			MaxLineLength:  79,
			MaxDiagnostics: 10000,
		},
		Rules: RulesConfig{
			MagicArgs: MagicArgsConfig{
				SetterPrefixes: []string{"set", "get", "is", "has"},
				SetterMaxArgs:  2,
				AllowedNumbers: []string{"0", "1", "2"},
				AllowedNames: []string{
					"range", "round", "pow", "min", "max", "sum",
					"sleep", "zeros", "ones", "linspace", "arange",
				},
				NameParts: []string{
					"x", "y", "z", "width", "height", "size", "point",
					"coord", "rect", "color", "rgb", "alpha", "angle",
				},
			},
			ErrorCases: ErrorCasesConfig{
				ExpectedExceptions: []string{"ValueError", "NotImplementedError"},
			},
		},
	}
	cfg.rebuildDisabled()
	return cfg
}

// FindManifest searches startDir and its parents for simplint.toml.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "simplint.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads a manifest and overlays it on the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.rebuildDisabled()
	return cfg, nil
}

// Normalize revalidates the configuration and rebuilds derived state
// after programmatic edits.
func (c *Config) Normalize() error {
	if err := c.validate("config"); err != nil {
		return err
	}
	c.rebuildDisabled()
	return nil
}

// Discover loads the nearest manifest above startDir, falling back to the
// defaults when none exists.
func Discover(startDir string) (*Config, string, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func (c *Config) validate(path string) error {
	for _, s := range c.Lint.Disable {
		if _, ok := diag.ParseCode(s); !ok {
			return fmt.Errorf("%s: unknown rule code %q in [lint].disable", path, s)
		}
	}
	if c.Lint.MaxLineLength <= 0 {
		return fmt.Errorf("%s: [lint].line-length must be positive", path)
	}
	if c.Lint.MaxDiagnostics <= 0 {
		return fmt.Errorf("%s: [lint].max-diagnostics must be positive", path)
	}
	if c.Rules.MagicArgs.SetterMaxArgs < 0 {
		return fmt.Errorf("%s: [rules.magic-args].setter-max-args must not be negative", path)
	}
	return nil
}

func (c *Config) rebuildDisabled() {
	c.disabled = make(map[diag.Code]bool, len(c.Lint.Disable))
	for _, s := range c.Lint.Disable {
		if code, ok := diag.ParseCode(s); ok {
			c.disabled[code] = true
		}
	}
}

// Enabled reports whether a rule should run.
func (c *Config) Enabled(code diag.Code) bool {
	return !c.disabled[code]
}
