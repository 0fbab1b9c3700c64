package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"gradelint/internal/check"
	"gradelint/internal/model"
	"gradelint/internal/ui"
)

type runOutcome struct {
	result *check.Result
	err    error
}

// runChecksWithUI runs the registered checks while a progress view renders
// their events to out.
func runChecksWithUI(ctx context.Context, out io.Writer, opts check.Options, m *model.Model) (*check.Result, error) {
	names := enabledChecks(opts)
	// queued, running and a final event per check; the sink never blocks
	events := make(chan check.Event, 3*len(names)+1)
	opts.Progress = check.ChannelSink{Ch: events}
	engine, err := check.NewFromRegistry(opts)
	if err != nil {
		return nil, err
	}

	outcomeCh := make(chan runOutcome, 1)
	go func() {
		res, err := engine.Run(ctx, m)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	title := fmt.Sprintf("checking %d files", m.Files.Len())
	program := tea.NewProgram(ui.NewProgressModel(title, names, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

func enabledChecks(opts check.Options) []string {
	all := check.All()
	names := make([]string, 0, len(all))
	for _, d := range all {
		if !slices.Contains(opts.Disabled, d.Name) {
			names = append(names, d.Name)
		}
	}
	return names
}
