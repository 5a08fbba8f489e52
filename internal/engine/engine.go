// Package engine walks parsed files and dispatches lint rules.
package engine

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"simplint/internal/config"
	"simplint/internal/diag"
	"simplint/internal/pytree"
	"simplint/internal/rules"
	"simplint/internal/source"
)

// Engine holds the enabled rule set, grouped by the node kinds each
// rule subscribes to. One Engine checks many files; it keeps no
// per-file state, so concurrent Check calls on one Engine are safe.
type Engine struct {
	cfg    *config.Config
	byKind map[string][]rules.Rule

	// Debug, when set, receives rule-level notes about skipped input.
	Debug func(format string, args ...any)
}

// New builds an engine from the built-in rule set, dropping rules the
// configuration disables.
func New(cfg *config.Config) *Engine {
	e := &Engine{cfg: cfg, byKind: map[string][]rules.Rule{}}
	for _, rule := range rules.All() {
		if !cfg.Enabled(rule.Code) {
			continue
		}
		for _, kind := range rule.Kinds {
			e.byKind[kind] = append(e.byKind[kind], rule)
		}
	}
	return e
}

// Check parses one file and reports every finding to rep, in a single
// pre-order walk. Findings arrive in walk order: rules never sort or
// deduplicate behind the reporter's back.
func (e *Engine) Check(ctx context.Context, file *source.File, rep diag.Reporter) error {
	tree, err := pytree.Parse(ctx, file.Content)
	if err != nil {
		return err
	}
	defer tree.Close()

	rc := &rules.Context{Tree: tree, File: file.ID, Cfg: e.cfg, Debug: e.Debug}
	e.walk(rc, tree.Root(), rep)
	return nil
}

func (e *Engine) walk(rc *rules.Context, n *sitter.Node, rep diag.Reporter) {
	for _, rule := range e.byKind[n.Type()] {
		for _, d := range rule.Check(rc, n) {
			rep.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		e.walk(rc, n.NamedChild(i), rep)
	}
}
