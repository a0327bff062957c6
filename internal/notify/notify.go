// Package notify provides the reject cue and desktop notifications.
package notify

import (
	"sync"

	"github.com/gen2brain/beeep"

	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/recorder"
)

// Notifier sends system notifications and plays the reject sound.
type Notifier struct {
	mu      sync.Mutex
	enabled bool
	beep    func(freq float64, duration int) error
	send    func(title, message, icon string) error
}

var _ recorder.Cue = (*Notifier)(nil)

// New creates a Notifier. enabled gates desktop notifications only; the
// reject cue always plays.
func New(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		beep:    beeep.Beep,
		send:    beeep.Notify,
	}
}

// SetEnabled turns desktop notifications on or off.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	n.enabled = enabled
	n.mu.Unlock()
}

// Reject plays the system alert sound for a refused key press.
func (n *Notifier) Reject() {
	if err := n.beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
		logging.Logger.Debug("Reject cue failed", "error", err)
	}
}

// Finished reports the end of a recording session. Only sessions that
// changed the store produce a notification.
func (n *Notifier) Finished(out recorder.Outcome) {
	switch out.Kind {
	case recorder.Committed:
		n.notify(i18n.T("notify_recorded"), string(out.Name)+": "+out.Shortcut.Display())
	case recorder.Cleared:
		n.notify(i18n.T("notify_cleared"), string(out.Name))
	case recorder.Failed:
		if out.Err != nil {
			n.Error(out.Err.Error())
		}
	}
}

// Info shows an informational notification.
func (n *Notifier) Info(msg string) {
	n.notify(msg, "")
}

// Error shows an error notification.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

func (n *Notifier) notify(title, message string) {
	n.mu.Lock()
	enabled := n.enabled
	n.mu.Unlock()
	if !enabled {
		return
	}
	// notification failures are not critical
	if err := n.send(i18n.T("app_name")+": "+title, message, ""); err != nil {
		logging.Logger.Debug("Notification failed", "error", err)
	}
}
