package shortcut

import "strings"

// Modifiers is a set of modifier keys.
type Modifiers uint8

const (
	ModCtrl  Modifiers = 1 << iota
	ModAlt             // Option on macOS
	ModShift
	ModSuper // Cmd on macOS, Win on Windows
)

// ModNone is the empty set.
const ModNone Modifiers = 0

// canonical order used for both String and Display.
var modifierOrder = []struct {
	mod   Modifiers
	name  string
	glyph string
}{
	{ModCtrl, "ctrl", "⌃"},
	{ModAlt, "alt", "⌥"},
	{ModShift, "shift", "⇧"},
	{ModSuper, "super", "⌘"},
}

var modifierAliases = map[string]Modifiers{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"win":     ModSuper,
	"meta":    ModSuper,
}

// Has reports whether m contains every modifier in mod.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod == mod
}

// With returns m with mod added.
func (m Modifiers) With(mod Modifiers) Modifiers {
	return m | mod
}

// Without returns m with mod removed.
func (m Modifiers) Without(mod Modifiers) Modifiers {
	return m &^ mod
}

// IsEmpty reports whether no modifier is set.
func (m Modifiers) IsEmpty() bool {
	return m == ModNone
}

// ShiftOnly reports whether Shift is the only modifier.
func (m Modifiers) ShiftOnly() bool {
	return m == ModShift
}

// String returns the modifiers in canonical order, joined with "+".
func (m Modifiers) String() string {
	var parts []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			parts = append(parts, o.name)
		}
	}
	return strings.Join(parts, "+")
}

// Glyphs returns the modifier symbols in canonical order (⌃⌥⇧⌘).
func (m Modifiers) Glyphs() string {
	var b strings.Builder
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			b.WriteString(o.glyph)
		}
	}
	return b.String()
}

// LookupModifier resolves a modifier name, accepting platform aliases.
func LookupModifier(name string) (Modifiers, bool) {
	m, ok := modifierAliases[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}
