package recorder

import (
	"shortcut-recorder/internal/menu"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
)

// Status is the recorder's lifecycle state.
type Status int

const (
	Idle Status = iota
	Recording
	AwaitingAlertDismissal
)

func (s Status) String() string {
	switch s {
	case Recording:
		return "recording"
	case AwaitingAlertDismissal:
		return "awaiting-alert-dismissal"
	default:
		return "idle"
	}
}

// OutcomeKind says how a recording session ended.
type OutcomeKind int

const (
	// Committed: a new shortcut was written to the store.
	Committed OutcomeKind = iota
	// Unchanged: the user typed the shortcut already assigned; nothing was
	// written but the recording counts as successful.
	Unchanged
	// Cleared: Delete/Backspace removed the assignment.
	Cleared
	// Cancelled: Tab, Escape or a click outside the control.
	Cancelled
	// Abandoned: the host tore the recording down (focus loss, close).
	Abandoned
	// Failed: the store rejected the write; the previous value is kept.
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Committed:
		return "committed"
	case Unchanged:
		return "unchanged"
	case Cleared:
		return "cleared"
	case Cancelled:
		return "cancelled"
	case Abandoned:
		return "abandoned"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Recorded reports whether the outcome counts as a successful recording.
func (k OutcomeKind) Recorded() bool {
	return k == Committed || k == Unchanged || k == Cleared
}

// Outcome describes the end of a recording session.
type Outcome struct {
	Name     store.Name
	Session  string
	Kind     OutcomeKind
	Shortcut shortcut.Shortcut // the committed or unchanged shortcut
	Err      error             // for Failed
}

// Alerter presents blocking conflict messages. Each method returns when the
// user dismissed the message.
type Alerter interface {
	MenuConflict(s shortcut.Shortcut, item menu.Item)
	NameConflict(s shortcut.Shortcut, other store.Name)
	Disallowed(s shortcut.Shortcut)
	// ReservedBySystem offers "OK" (false) and "Use Anyway" (true).
	ReservedBySystem(s shortcut.Shortcut, owner string) (useAnyway bool)
}

// Cue signals a rejected key press to the user.
type Cue interface {
	Reject()
}
