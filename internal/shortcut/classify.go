package shortcut

// KeyEvent is a raw key-down as delivered by the host toolkit. An empty Key
// means only modifiers changed.
type KeyEvent struct {
	Key       Key
	Modifiers Modifiers
	Repeat    bool
}

// IsBare reports whether the event carries no modifiers.
func (e KeyEvent) IsBare() bool {
	return e.Modifiers.IsEmpty()
}

// Classify turns a key-down into a shortcut. It fails for modifier-only
// events, unknown keys and chords without a non-shift modifier, except for
// function keys which may be bound bare.
func Classify(ev KeyEvent) (Shortcut, bool) {
	if ev.Key == "" || !ev.Key.Valid() {
		return Shortcut{}, false
	}
	s := New(ev.Key, ev.Modifiers)
	if !s.Assignable() {
		return Shortcut{}, false
	}
	return s, true
}

// IsDisallowed reports whether the application refuses s regardless of any
// user override: chords that are indistinguishable from typing (bare keys,
// Shift-only) and, on macOS, Option / Option+Shift with a non-function key.
func IsDisallowed(s Shortcut) bool {
	if s.IsZero() {
		return false
	}
	if s.key.IsFunction() {
		return false
	}
	m := s.modifiers
	switch {
	case m.IsEmpty(), m.ShiftOnly():
		return true
	case m == ModAlt, m == ModAlt|ModShift:
		return optionChordsDisallowed
	}
	return false
}

// IsReservedBySystem reports whether the operating system intercepts s
// before any application sees it.
func IsReservedBySystem(s Shortcut) bool {
	_, ok := systemReserved[s]
	return ok
}

// SystemOwner returns what the operating system uses s for.
func SystemOwner(s Shortcut) (string, bool) {
	owner, ok := systemReserved[s]
	return owner, ok
}

// ReservedBySystem returns the platform table of reserved shortcuts.
func ReservedBySystem() map[Shortcut]string {
	out := make(map[Shortcut]string, len(systemReserved))
	for s, owner := range systemReserved {
		out[s] = owner
	}
	return out
}

func reservedTable(entries map[string]string) map[Shortcut]string {
	out := make(map[Shortcut]string, len(entries))
	for binding, owner := range entries {
		out[MustParse(binding)] = owner
	}
	return out
}
