// Package app wires the shortcut store, the recorder hosts and the global
// hotkeys into the tray application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"

	"shortcut-recorder/internal/config"
	"shortcut-recorder/internal/conflict"
	"shortcut-recorder/internal/dialog"
	"shortcut-recorder/internal/hotkey"
	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/menu"
	"shortcut-recorder/internal/notify"
	"shortcut-recorder/internal/recorder"
	"shortcut-recorder/internal/settings"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/storage/filestore"
	"shortcut-recorder/internal/storage/sqlstore"
	"shortcut-recorder/internal/store"
	"shortcut-recorder/internal/suppress"
	"shortcut-recorder/internal/tray"
)

// ErrConflict is returned by Assign when the shortcut is claimed elsewhere.
var ErrConflict = errors.New("shortcut conflict")

// App is the main application.
type App struct {
	mu       sync.Mutex
	closed   bool
	config   *config.Config
	backend  store.Backend
	closer   io.Closer
	store    *store.Store
	flag     *suppress.Flag
	menu     *menu.Bar
	resolver *conflict.Resolver
	notifier *notify.Notifier
	alerts   recorder.Alerter

	hotkeyOpts  []hotkey.Option
	dispatcher  *hotkey.Dispatcher
	tray        *tray.Tray
	settingsWin *settings.Window

	// runs the configured command of a fired shortcut
	exec func(command string) error
}

// Option customizes an App.
type Option func(*App)

// WithBackend replaces the backend selected by the config.
func WithBackend(b store.Backend) Option {
	return func(a *App) { a.backend = b }
}

// WithHotkeyOptions passes options to the global hotkey dispatcher.
func WithHotkeyOptions(opts ...hotkey.Option) Option {
	return func(a *App) { a.hotkeyOpts = append(a.hotkeyOpts, opts...) }
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(n *notify.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// New creates the application from cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	// Set the interface language from the config
	if lang, ok := i18n.ParseLanguage(cfg.UILanguage()); ok {
		i18n.SetLanguage(lang)
	}

	a := &App{
		config: cfg,
		flag:   suppress.New(),
		alerts: dialog.New(),
		exec:   runShell,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.notifier == nil {
		a.notifier = notify.New(cfg.NotificationsEnabled())
	}

	if a.backend == nil {
		backend, closer, err := openBackend(cfg.Storage(), cfg.Debug())
		if err != nil {
			return nil, err
		}
		a.backend, a.closer = backend, closer
	}

	a.store = store.New(a.backend)
	defaults := cfg.Defaults()
	for _, name := range cfg.Names() {
		if err := a.store.Declare(name, defaults[name]); err != nil {
			a.closeBackend()
			return nil, fmt.Errorf("failed to declare %q: %w", name, err)
		}
	}

	a.menu = menu.New(cfg.MenuItems()...)
	a.resolver = conflict.NewResolver(a.menu)

	a.dispatcher = hotkey.New(a.store, a.flag, a.hotkeyOpts...)
	for _, name := range a.store.Names() {
		a.dispatcher.Handle(name, func() { a.fire(name) })
	}

	logging.Logger.Info("Application created",
		"names", len(cfg.Names()),
		"menu_items", len(cfg.MenuItems()),
		"storage", cfg.Storage().Driver)
	return a, nil
}

func openBackend(sc config.StorageConfig, debug bool) (store.Backend, io.Closer, error) {
	switch sc.Driver {
	case config.DriverMemory:
		return store.NewMemory(), nil, nil
	case config.DriverSQLite:
		db, err := sqlstore.Open(sc.Path, debug)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	default:
		fs, err := filestore.Open(sc.Path)
		if err != nil {
			return nil, nil, err
		}
		return fs, nil, nil
	}
}

// Config returns the application config.
func (a *App) Config() *config.Config { return a.config }

// Store returns the shortcut store.
func (a *App) Store() *store.Store { return a.store }

// Flag returns the suppression flag shared by every recorder.
func (a *App) Flag() *suppress.Flag { return a.flag }

// Menu returns the host menu model consulted for conflicts.
func (a *App) Menu() *menu.Bar { return a.menu }

// Notifier returns the desktop notifier.
func (a *App) Notifier() *notify.Notifier { return a.notifier }

// Dispatcher returns the global hotkey dispatcher.
func (a *App) Dispatcher() *hotkey.Dispatcher { return a.dispatcher }

// RecorderDeps returns the collaborators for a recorder hosted elsewhere.
// Events is left for the host to fill in.
func (a *App) RecorderDeps() recorder.Deps {
	return recorder.Deps{
		Store:    a.store,
		Flag:     a.flag,
		Resolver: a.resolver,
		Alerts:   a.alerts,
		Cue:      a.notifier,
	}
}

// Check runs the conflict checks for s as if it were recorded for name.
func (a *App) Check(name store.Name, s shortcut.Shortcut) conflict.Result {
	rv := *a.resolver
	rv.Assigned = func(s shortcut.Shortcut) (string, bool) {
		other, ok := a.store.Lookup(s, name)
		return string(other), ok
	}
	return rv.Resolve(s)
}

// Assign stores s for name after the same checks a recording runs. force
// accepts a shortcut reserved by the system, like "Use Anyway"; no other
// conflict can be overridden. The zero shortcut clears the name.
func (a *App) Assign(name store.Name, s shortcut.Shortcut, force bool) (conflict.Result, error) {
	if s.IsZero() {
		return conflict.Result{}, a.store.Clear(name)
	}
	res := a.Check(name, s)
	switch res.Verdict {
	case conflict.OK:
	case conflict.ReservedBySystem:
		if !force {
			return res, fmt.Errorf("%w: %s is %s", ErrConflict, s, res.Verdict)
		}
		logging.Logger.Info("Reserved shortcut forced", "name", name, "shortcut", s.String(), "owner", res.Owner)
	default:
		return res, fmt.Errorf("%w: %s is %s", ErrConflict, s, res.Verdict)
	}
	return res, a.store.Set(name, s)
}

// fire runs the action bound to name: its configured command, or a
// notification when it has none.
func (a *App) fire(name store.Name) {
	logging.Logger.Debug("Shortcut fired", "name", name)
	command, ok := a.config.Command(name)
	if !ok {
		a.notifier.Info(i18n.Tf("notify_fired", name))
		return
	}
	go func() {
		if err := a.exec(command); err != nil {
			logging.Logger.Error("Command failed", "name", name, "command", command, "error", err)
			a.notifier.Error(fmt.Sprintf("%s: %v", name, err))
		}
	}()
}

func runShell(command string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", command)
	} else {
		cmd = exec.Command("sh", "-c", command)
	}
	return cmd.Run()
}

// Run starts the tray and blocks until Quit.
func (a *App) Run() {
	a.settingsWin = settings.New(a.config, a.RecorderDeps())
	a.settingsWin.OnFinish(a.notifier.Finished)
	a.settingsWin.OnError(func(err error) { a.notifier.Error(err.Error()) })

	a.tray = tray.New(a.store, a.flag, tray.Callbacks{
		OnNotificationsToggle: func() bool {
			enabled := a.config.ToggleNotifications()
			a.notifier.SetEnabled(enabled)
			return enabled
		},
		OnSettingsClick: a.settingsWin.Show,
		OnQuit:          a.Close,
	})

	// Refresh the tray after a UI language change
	a.settingsWin.OnUILangChange(func(i18n.Language) {
		a.tray.RefreshUI()
	})

	a.tray.Run(func() {
		// Register hotkeys once the tray is up
		a.dispatcher.Start()
	})
}

// Close releases hotkeys, windows and storage. Safe to call more than once.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true

	if a.dispatcher != nil {
		a.dispatcher.Stop()
	}
	if a.settingsWin != nil {
		a.settingsWin.Hide()
	}
	a.closeBackend()
}

func (a *App) closeBackend() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		logging.Logger.Error("Failed to close storage", "error", err)
	}
	a.closer = nil
}
