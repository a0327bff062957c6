// Package dialog shows the blocking conflict alerts of a recording session
// as native dialogs.
package dialog

import (
	"errors"

	"github.com/ncruces/zenity"

	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/menu"
	"shortcut-recorder/internal/recorder"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
)

// Alerts implements recorder.Alerter with zenity message boxes. Each method
// blocks until the dialog is dismissed.
type Alerts struct {
	warning func(text string, options ...zenity.Option) error
}

var _ recorder.Alerter = (*Alerts)(nil)

// New creates native alerts.
func New() *Alerts {
	return &Alerts{warning: zenity.Warning}
}

// MenuConflict reports that a visible menu item already uses s.
func (a *Alerts) MenuConflict(s shortcut.Shortcut, item menu.Item) {
	a.show(i18n.Tf("alert_menu_conflict", s.Display(), item.Title))
}

// NameConflict reports that another name already holds s.
func (a *Alerts) NameConflict(s shortcut.Shortcut, other store.Name) {
	a.show(i18n.Tf("alert_name_conflict", s.Display(), other))
}

// Disallowed reports a chord that would interfere with typing.
func (a *Alerts) Disallowed(s shortcut.Shortcut) {
	a.show(i18n.Tf("alert_disallowed", s.Display()))
}

// ReservedBySystem offers OK and Use Anyway. Closing the dialog counts as OK.
func (a *Alerts) ReservedBySystem(s shortcut.Shortcut, owner string) bool {
	text := i18n.Tf("alert_reserved_unknown", s.Display())
	if owner != "" {
		text = i18n.Tf("alert_reserved", s.Display(), owner)
	}
	err := a.warning(text,
		zenity.Title(i18n.T("alert_title")),
		zenity.OKLabel(i18n.T("alert_ok")),
		zenity.ExtraButton(i18n.T("alert_use_anyway")),
	)
	switch {
	case errors.Is(err, zenity.ErrExtraButton):
		return true
	case err != nil && !errors.Is(err, zenity.ErrCanceled):
		logging.Logger.Warn("Alert failed", "error", err)
	}
	return false
}

func (a *Alerts) show(text string) {
	err := a.warning(text,
		zenity.Title(i18n.T("alert_title")),
		zenity.OKLabel(i18n.T("alert_ok")),
	)
	if err != nil && !errors.Is(err, zenity.ErrCanceled) {
		logging.Logger.Warn("Alert failed", "error", err)
	}
}

// ShowInfo shows an informational message.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title))
}

// ShowError shows an error message.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
