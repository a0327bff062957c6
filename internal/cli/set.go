package cli

import (
	"errors"
	"fmt"

	"shortcut-recorder/internal/app"
	"shortcut-recorder/internal/conflict"
	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
)

// SetCmd assigns a shortcut to a declared name
type SetCmd struct {
	Name    string `arg:"" help:"Declared shortcut name"`
	Binding string `arg:"" help:"Shortcut such as ctrl+shift+k"`
	Force   bool   `help:"Accept a shortcut the system reserves" short:"f"`
}

// Run executes the set command
func (s *SetCmd) Run(cli *CLI) error {
	a, err := cli.newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	msg, err := set(a, s.Name, s.Binding, s.Force)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func set(a *app.App, rawName, binding string, force bool) (string, error) {
	name, err := declared(a, rawName)
	if err != nil {
		return "", err
	}
	sc, err := shortcut.Parse(binding)
	if err != nil {
		return "", err
	}
	res, err := a.Assign(name, sc, force)
	if errors.Is(err, app.ErrConflict) {
		return "", errors.New(describe(sc, res))
	}
	if err != nil {
		return "", err
	}
	if res.Verdict == conflict.ReservedBySystem {
		return i18n.Tf("cli_forced", sc.Display()), nil
	}
	return i18n.Tf("cli_set", name, display(sc, !sc.IsZero())), nil
}

// ClearCmd removes the shortcut of a declared name
type ClearCmd struct {
	Name string `arg:"" help:"Declared shortcut name"`
}

// Run executes the clear command
func (c *ClearCmd) Run(cli *CLI) error {
	return update(cli, c.Name, (*store.Store).Clear)
}

// ResetCmd restores the default shortcut of a declared name
type ResetCmd struct {
	Name string `arg:"" help:"Declared shortcut name"`
}

// Run executes the reset command
func (r *ResetCmd) Run(cli *CLI) error {
	return update(cli, r.Name, (*store.Store).Reset)
}

func update(cli *CLI, rawName string, op func(*store.Store, store.Name) error) error {
	a, err := cli.newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := declared(a, rawName)
	if err != nil {
		return err
	}
	if err := op(a.Store(), name); err != nil {
		return err
	}
	sc, ok := a.Store().Get(name)
	fmt.Println(i18n.Tf("cli_set", name, display(sc, ok)))
	return nil
}

// CheckCmd reports conflicts without assigning
type CheckCmd struct {
	Binding string `arg:"" help:"Shortcut such as ctrl+shift+k"`
	For     string `help:"Check as if recorded for this name, ignoring its own shortcut"`
}

// Run executes the check command
func (c *CheckCmd) Run(cli *CLI) error {
	a, err := cli.newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	msg, ok, err := check(a, c.Binding, c.For)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(msg)
	}
	fmt.Println(msg)
	return nil
}

func check(a *app.App, binding, forName string) (msg string, ok bool, err error) {
	sc, err := shortcut.Parse(binding)
	if err != nil {
		return "", false, err
	}
	res := a.Check(store.Name(forName), sc)
	return describe(sc, res), res.Verdict == conflict.OK, nil
}

// DeclareCmd adds a name to the config file
type DeclareCmd struct {
	Name    string `arg:"" help:"Shortcut name to declare"`
	Default string `arg:"" optional:"" help:"Default shortcut"`
}

// Run executes the declare command
func (d *DeclareCmd) Run(cli *CLI) error {
	sc, err := shortcut.Parse(d.Default)
	if err != nil {
		return err
	}
	if err := cli.config.SetDefault(store.Name(d.Name), sc); err != nil {
		return err
	}
	fmt.Println(i18n.Tf("cli_set", d.Name, display(sc, !sc.IsZero())))
	return nil
}
