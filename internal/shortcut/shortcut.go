package shortcut

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned when a shortcut string cannot be parsed.
var ErrInvalid = errors.New("invalid shortcut")

// Shortcut is a key plus a modifier set. The zero value means "no shortcut".
// Construct with New, Parse or Classify; two shortcuts are equal iff their
// key and modifiers match, so == works.
type Shortcut struct {
	key       Key
	modifiers Modifiers
}

// New returns the shortcut for key with the given modifiers.
func New(key Key, modifiers Modifiers) Shortcut {
	return Shortcut{key: key, modifiers: modifiers}
}

// Key returns the physical key.
func (s Shortcut) Key() Key { return s.key }

// Modifiers returns the modifier set.
func (s Shortcut) Modifiers() Modifiers { return s.modifiers }

// IsZero reports whether s is "no shortcut".
func (s Shortcut) IsZero() bool { return s.key == "" }

// Assignable reports whether s may be stored as a final assignment: it needs
// a non-shift modifier, unless the key is a function key.
func (s Shortcut) Assignable() bool {
	if s.IsZero() || !s.key.Valid() {
		return false
	}
	if s.key.IsFunction() {
		return true
	}
	return !s.modifiers.Without(ModShift).IsEmpty()
}

// String returns the canonical form, e.g. "ctrl+shift+c". Parse accepts it.
func (s Shortcut) String() string {
	if s.IsZero() {
		return ""
	}
	if s.modifiers.IsEmpty() {
		return string(s.key)
	}
	return s.modifiers.String() + "+" + string(s.key)
}

// Display returns the rendered form: modifier glyphs followed by the key
// glyph, e.g. "⌃⇧C".
func (s Shortcut) Display() string {
	if s.IsZero() {
		return ""
	}
	return s.modifiers.Glyphs() + s.key.Glyph()
}

// MarshalText implements encoding.TextMarshaler.
func (s Shortcut) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text decodes to
// the zero shortcut.
func (s *Shortcut) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Parse reads a shortcut such as "Ctrl+Shift+C", "cmd+space" or "f5".
// Modifier and key names are case-insensitive. An empty string yields the
// zero shortcut.
func Parse(binding string) (Shortcut, error) {
	binding = strings.TrimSpace(binding)
	if binding == "" {
		return Shortcut{}, nil
	}

	parts := strings.Split(binding, "+")
	var mods Modifiers
	for _, p := range parts[:len(parts)-1] {
		m, ok := LookupModifier(p)
		if !ok {
			return Shortcut{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalid, p, binding)
		}
		if mods.Has(m) {
			return Shortcut{}, fmt.Errorf("%w: duplicate modifier %q in %q", ErrInvalid, p, binding)
		}
		mods = mods.With(m)
	}

	last := parts[len(parts)-1]
	if _, isMod := LookupModifier(last); isMod {
		return Shortcut{}, fmt.Errorf("%w: %q has no key", ErrInvalid, binding)
	}
	key, ok := LookupKey(last)
	if !ok {
		return Shortcut{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalid, last, binding)
	}
	return New(key, mods), nil
}

// MustParse is like Parse but panics on error. For tables and tests.
func MustParse(binding string) Shortcut {
	s, err := Parse(binding)
	if err != nil {
		panic(err)
	}
	return s
}
