// Package cli defines the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"shortcut-recorder/internal/app"
	"shortcut-recorder/internal/config"
	"shortcut-recorder/internal/conflict"
	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version   kong.VersionFlag `help:"Show version information"`
	Debug     bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile string           `help:"Custom path for debug log file"`
	Config    string           `help:"Path to config file" type:"path" env:"SHORTCUTS_CONFIG"`

	Run     RunCmd     `cmd:"" help:"Run in the system tray with global shortcuts (default)" default:"1"`
	List    ListCmd    `cmd:"list" help:"List declared shortcuts"`
	Record  RecordCmd  `cmd:"record" help:"Record a shortcut in the terminal"`
	Set     SetCmd     `cmd:"set" help:"Assign a shortcut"`
	Clear   ClearCmd   `cmd:"clear" help:"Remove a shortcut"`
	Reset   ResetCmd   `cmd:"reset" help:"Restore the default shortcut"`
	Check   CheckCmd   `cmd:"check" help:"Check whether a shortcut can be assigned"`
	Declare DeclareCmd `cmd:"declare" help:"Declare a name in the config with its default shortcut"`

	// loaded in AfterApply
	config *config.Config `kong:"-"`
}

// AfterApply loads the config and initializes logging after CLI parsing.
func (c *CLI) AfterApply() error {
	path := c.Config
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.config = cfg

	debugFile := c.DebugFile
	if debugFile == "" {
		debugFile = cfg.LogFile()
	}
	logFilePath, err := logging.Initialize(c.Debug || cfg.Debug(), debugFile)
	if err != nil {
		return err
	}
	if logFilePath != "" {
		// child commands append to the same log
		os.Setenv("SHORTCUTS_DEBUG_FILE", logFilePath)
	}

	if lang, ok := i18n.ParseLanguage(cfg.UILanguage()); ok {
		i18n.SetLanguage(lang)
	}
	return nil
}

func (c *CLI) newApp() (*app.App, error) {
	a, err := app.New(c.config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return a, nil
}

// declared fails for names the config does not declare.
func declared(a *app.App, name string) (store.Name, error) {
	n := store.Name(name)
	if _, ok := a.Store().Default(n); !ok {
		return "", fmt.Errorf("%s", i18n.Tf("cli_undeclared", name))
	}
	return n, nil
}

// describe renders a conflict the way the recording alerts word it.
func describe(s shortcut.Shortcut, res conflict.Result) string {
	switch res.Verdict {
	case conflict.ClaimedByMenu:
		return i18n.Tf("alert_menu_conflict", s.Display(), res.Item.Title)
	case conflict.ClaimedByName:
		return i18n.Tf("alert_name_conflict", s.Display(), res.Name)
	case conflict.Disallowed:
		return i18n.Tf("alert_disallowed", s.Display())
	case conflict.ReservedBySystem:
		if res.Owner == "" {
			return i18n.Tf("alert_reserved_unknown", s.Display())
		}
		return i18n.Tf("alert_reserved", s.Display(), res.Owner)
	default:
		return i18n.Tf("cli_ok", s.Display())
	}
}

func display(s shortcut.Shortcut, ok bool) string {
	if !ok {
		return i18n.T("cli_not_set")
	}
	return s.Display()
}
