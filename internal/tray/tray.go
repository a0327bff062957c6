// Package tray shows the assigned shortcuts in the system tray and lets the
// user pause all of them.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/observe"
	"shortcut-recorder/internal/store"
	"shortcut-recorder/internal/suppress"
)

// Callbacks are invoked from the tray menu goroutine.
type Callbacks struct {
	OnNotificationsToggle func() bool
	OnSettingsClick       func()
	OnQuit                func()
}

// Tray manages the tray icon and menu.
type Tray struct {
	store     *store.Store
	callbacks Callbacks
	pause     pauser

	mu       sync.Mutex
	items    map[store.Name]*systray.MenuItem
	pauseBtn    *systray.MenuItem
	notifyOn    *systray.MenuItem
	settingsBtn *systray.MenuItem
	quitBtn     *systray.MenuItem
	paused      bool
	storeSub    observe.Handle
}

// New creates a tray for the names declared in st. Pausing holds flag, the
// same flag a recording holds.
func New(st *store.Store, flag *suppress.Flag, callbacks Callbacks) *Tray {
	return &Tray{
		store:     st,
		callbacks: callbacks,
		pause:     pauser{flag: flag},
		items:     map[store.Name]*systray.MenuItem{},
	}
}

// Run starts the tray. Blocks until Quit.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconActive)
	systray.SetTitle(i18n.T("app_name"))
	systray.SetTooltip(i18n.T("app_tooltip"))

	t.mu.Lock()
	for _, name := range t.store.Names() {
		item := systray.AddMenuItem(t.label(name), "")
		item.Disable()
		t.items[name] = item
	}
	t.mu.Unlock()
	t.storeSub = t.store.Subscribe(func(c store.Change) { t.refresh(c.Name) })

	systray.AddSeparator()

	t.pauseBtn = systray.AddMenuItemCheckbox(i18n.T("tray_pause"), i18n.T("tray_pause_hint"), false)
	t.notifyOn = systray.AddMenuItemCheckbox(i18n.T("tray_notifications"), i18n.T("tray_notifications_hint"), true)
	t.settingsBtn = systray.AddMenuItem(i18n.T("tray_settings"), i18n.T("tray_settings_hint"))

	systray.AddSeparator()

	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.pauseBtn.ClickedCh:
			paused := t.pause.toggle()
			t.mu.Lock()
			t.paused = paused
			t.mu.Unlock()
			if paused {
				t.pauseBtn.Check()
				systray.SetIcon(iconPaused)
			} else {
				t.pauseBtn.Uncheck()
				systray.SetIcon(iconActive)
			}
			systray.SetTooltip(t.tooltip())

		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				if t.callbacks.OnNotificationsToggle() {
					t.notifyOn.Check()
				} else {
					t.notifyOn.Uncheck()
				}
			}

		case <-t.settingsBtn.ClickedCh:
			if t.callbacks.OnSettingsClick != nil {
				t.callbacks.OnSettingsClick()
			}

		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
			return
		}
	}
}

func (t *Tray) tooltip() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.paused {
		return i18n.T("tray_paused")
	}
	return i18n.T("app_tooltip")
}

// RefreshUI re-applies translated texts after a language change.
func (t *Tray) RefreshUI() {
	if t.quitBtn == nil {
		return
	}
	systray.SetTitle(i18n.T("app_name"))
	systray.SetTooltip(t.tooltip())
	t.pauseBtn.SetTitle(i18n.T("tray_pause"))
	t.pauseBtn.SetTooltip(i18n.T("tray_pause_hint"))
	t.notifyOn.SetTitle(i18n.T("tray_notifications"))
	t.notifyOn.SetTooltip(i18n.T("tray_notifications_hint"))
	t.settingsBtn.SetTitle(i18n.T("tray_settings"))
	t.settingsBtn.SetTooltip(i18n.T("tray_settings_hint"))
	t.quitBtn.SetTitle(i18n.T("tray_quit"))
	t.quitBtn.SetTooltip(i18n.T("tray_quit_hint"))
	for _, name := range t.store.Names() {
		t.refresh(name)
	}
}

func (t *Tray) refresh(name store.Name) {
	t.mu.Lock()
	item := t.items[name]
	t.mu.Unlock()
	if item != nil {
		item.SetTitle(t.label(name))
	}
}

func (t *Tray) label(name store.Name) string {
	sc, ok := t.store.Get(name)
	return itemLabel(name, sc.Display(), ok)
}

func itemLabel(name store.Name, display string, assigned bool) string {
	if !assigned {
		display = i18n.T("tray_not_set")
	}
	return string(name) + "    " + display
}

func (t *Tray) onExit() {
	t.store.Unsubscribe(t.storeSub)
	t.pause.stop()
}

// Quit closes the tray.
func (t *Tray) Quit() {
	systray.Quit()
}

// pauser holds the suppression flag while the user has shortcuts paused.
type pauser struct {
	mu      sync.Mutex
	flag    *suppress.Flag
	release func()
}

// toggle flips the pause state and reports whether shortcuts are paused.
func (p *pauser) toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.release != nil {
		p.release()
		p.release = nil
		return false
	}
	p.release = p.flag.Acquire()
	return true
}

func (p *pauser) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.release != nil {
		p.release()
		p.release = nil
	}
}
