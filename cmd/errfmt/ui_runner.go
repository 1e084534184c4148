package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"errfmt/internal/driver"
	"errfmt/internal/template"
	"errfmt/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseUI decides whether to show progress on stderr. In auto mode the
// UI appears only for file inputs, so stdin stays free for the data.
func shouldUseUI(mode uiMode, args []string, stderrTTY bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	if !stderrTTY || len(args) == 0 {
		return false
	}
	for _, arg := range args {
		if arg == "-" {
			return false
		}
	}
	return true
}

type runOutcome struct {
	result *driver.Result
	err    error
}

// runWithUI runs the driver while a Bubble Tea program renders progress on
// stderr. The program never reads stdin.
func runWithUI(ctx context.Context, tpl *template.Template, inputs []driver.Input, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.RunInputs(ctx, tpl, inputs, optsCopy)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	names := make([]string, len(inputs))
	for i, in := range inputs {
		names[i] = in.Name
	}
	model := ui.NewProgressModel("errfmt", names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	// программа могла завершиться раньше драйвера
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, fmt.Errorf("progress UI: %w", uiErr)
	}
	return outcome.result, outcome.err
}
