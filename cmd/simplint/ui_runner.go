package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"simplint/internal/runner"
	"simplint/internal/ui"
)

type checkOutcome struct {
	result *runner.Result
	err    error
}

// runCheckWithUI runs the linter in a goroutine while Bubble Tea renders
// per-file progress from the event channel. The runner closes the
// channel when it finishes, which quits the model.
func runCheckWithUI(ctx context.Context, title string, files []string, baseDir string, opts runner.Options) (*runner.Result, error) {
	events := make(chan runner.Event, 256)
	opts.Events = events
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		res, err := runner.CheckFiles(ctx, baseDir, files, opts)
		outcomeCh <- checkOutcome{result: res, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
