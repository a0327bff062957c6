package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"shortcut-recorder/internal/hotkey"
	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/recorder"
	"shortcut-recorder/internal/tui"
)

// RunCmd starts the tray application
type RunCmd struct{}

// Run executes the tray application
func (r *RunCmd) Run(cli *CLI) error {
	a, err := cli.newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	logging.Logger.Info("Application started", "config", cli.config.Path())
	// Run on the main thread (required on macOS and by some GUIs)
	hotkey.RunOnMainThread(a.Run)
	return nil
}

// RecordCmd records a shortcut interactively in the terminal
type RecordCmd struct {
	Name string `arg:"" help:"Declared shortcut name"`
}

// Run executes the record command
func (r *RecordCmd) Run(cli *CLI) error {
	a, err := cli.newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := declared(a, r.Name)
	if err != nil {
		return err
	}

	deps := a.RecorderDeps()
	deps.Cue = nil // the terminal flashes the field instead of beeping
	m := tui.New(name, deps)
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithReportFocus()).Run(); err != nil {
		return fmt.Errorf("failed to run recorder: %w", err)
	}

	out := m.Outcome()
	if out == nil {
		return nil
	}
	if out.Kind == recorder.Failed {
		return out.Err
	}
	return nil
}
