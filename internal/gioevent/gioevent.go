// Package gioevent feeds Gio input events into a monitor.Source so a Gio
// window can host a shortcut recorder.
package gioevent

import (
	"image"
	"strings"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"

	"shortcut-recorder/internal/monitor"
	"shortcut-recorder/internal/shortcut"
)

var keyNames = map[key.Name]shortcut.Key{
	key.NameSpace:          shortcut.KeySpace,
	key.NameReturn:         shortcut.KeyReturn,
	key.NameEnter:          shortcut.KeyReturn,
	key.NameTab:            shortcut.KeyTab,
	key.NameEscape:         shortcut.KeyEscape,
	key.NameDeleteBackward: shortcut.KeyDelete,
	key.NameDeleteForward:  shortcut.KeyForwardDelete,
	key.NameLeftArrow:      shortcut.KeyLeft,
	key.NameRightArrow:     shortcut.KeyRight,
	key.NameUpArrow:        shortcut.KeyUp,
	key.NameDownArrow:      shortcut.KeyDown,
	key.NameHome:           shortcut.KeyHome,
	key.NameEnd:            shortcut.KeyEnd,
	key.NamePageUp:         shortcut.KeyPageUp,
	key.NamePageDown:       shortcut.KeyPageDown,
	key.NameF1:             shortcut.KeyF1,
	key.NameF2:             shortcut.KeyF2,
	key.NameF3:             shortcut.KeyF3,
	key.NameF4:             shortcut.KeyF4,
	key.NameF5:             shortcut.KeyF5,
	key.NameF6:             shortcut.KeyF6,
	key.NameF7:             shortcut.KeyF7,
	key.NameF8:             shortcut.KeyF8,
	key.NameF9:             shortcut.KeyF9,
	key.NameF10:            shortcut.KeyF10,
	key.NameF11:            shortcut.KeyF11,
	key.NameF12:            shortcut.KeyF12,
}

// modifier names report modifier-only presses
var modifierNames = map[key.Name]bool{
	key.NameCtrl:    true,
	key.NameShift:   true,
	key.NameAlt:     true,
	key.NameSuper:   true,
	key.NameCommand: true,
}

// KeyEvent converts a Gio key press. ok is false for releases. Modifier-only
// presses yield an empty Key; unknown keys keep their Gio name so the
// recorder rejects them.
func KeyEvent(e key.Event) (ev shortcut.KeyEvent, ok bool) {
	if e.State != key.Press {
		return shortcut.KeyEvent{}, false
	}
	ev.Modifiers = Modifiers(e.Modifiers)
	switch {
	case modifierNames[e.Name]:
	case keyNames[e.Name] != "":
		ev.Key = keyNames[e.Name]
	default:
		if k, found := shortcut.LookupKey(strings.ToLower(string(e.Name))); found {
			ev.Key = k
		} else {
			ev.Key = shortcut.Key(e.Name)
		}
	}
	return ev, true
}

// Modifiers maps Gio modifiers. Command and Super both become Super.
func Modifiers(m key.Modifiers) shortcut.Modifiers {
	var out shortcut.Modifiers
	if m.Contain(key.ModCtrl) {
		out = out.With(shortcut.ModCtrl)
	}
	if m.Contain(key.ModAlt) {
		out = out.With(shortcut.ModAlt)
	}
	if m.Contain(key.ModShift) {
		out = out.With(shortcut.ModShift)
	}
	if m.Contain(key.ModCommand) || m.Contain(key.ModSuper) {
		out = out.With(shortcut.ModSuper)
	}
	return out
}

// Filters returns the event filters a recording control registers for tag:
// every key with any modifier, and pointer presses and releases.
func Filters(tag event.Tag) []event.Filter {
	modifiers := key.ModCtrl | key.ModShift | key.ModAlt | key.ModSuper | key.ModCommand

	filters := []event.Filter{
		key.FocusFilter{Target: tag},
		pointer.Filter{Target: tag, Kinds: pointer.Press | pointer.Release},
	}
	for name := range keyNames {
		filters = append(filters, key.Filter{Focus: tag, Name: name, Optional: modifiers})
	}
	for c := 'A'; c <= 'Z'; c++ {
		filters = append(filters, key.Filter{Focus: tag, Name: key.Name(string(c)), Optional: modifiers})
	}
	for c := '0'; c <= '9'; c++ {
		filters = append(filters, key.Filter{Focus: tag, Name: key.Name(string(c)), Optional: modifiers})
	}
	for _, c := range "-=[];',./\\`" {
		filters = append(filters, key.Filter{Focus: tag, Name: key.Name(string(c)), Optional: modifiers})
	}
	// Also capture modifier-only events
	filters = append(filters, key.Filter{Focus: tag, Optional: modifiers})
	return filters
}

// Source is what layout.Context offers for draining events.
type Source interface {
	Event(filters ...event.Filter) (event.Event, bool)
}

// Translator dispatches Gio events to a monitor.Source.
type Translator struct {
	events  *monitor.Source
	buttons pointer.Buttons
}

// NewTranslator creates a translator feeding events.
func NewTranslator(events *monitor.Source) *Translator {
	return &Translator{events: events}
}

// Translate dispatches one Gio event. ok is false for events with no
// monitor equivalent.
func (t *Translator) Translate(e event.Event) (d monitor.Disposition, ok bool) {
	switch e := e.(type) {
	case key.Event:
		ke, ok := KeyEvent(e)
		if !ok {
			return monitor.Ignore, false
		}
		return t.events.Dispatch(monitor.Event{Kind: monitor.KeyDown, Key: ke}), true
	case pointer.Event:
		switch e.Kind {
		case pointer.Press:
			t.buttons = e.Buttons
			return monitor.Ignore, false
		case pointer.Release:
			released := t.buttons &^ e.Buttons
			t.buttons = e.Buttons
			kind := monitor.MouseUp
			if released.Contain(pointer.ButtonSecondary) {
				kind = monitor.RightMouseUp
			}
			return t.events.Dispatch(monitor.Event{Kind: kind, Pos: e.Position.Round()}), true
		}
	}
	return monitor.Ignore, false
}

// Drain dispatches every pending event for filters and returns the ones the
// recorder did not consume: passed-through events and events with no
// monitor equivalent, such as focus changes, for the host's own handling.
func (t *Translator) Drain(src Source, filters []event.Filter) []event.Event {
	var rest []event.Event
	for {
		e, ok := src.Event(filters...)
		if !ok {
			return rest
		}
		if d, ok := t.Translate(e); !ok || d == monitor.PassThrough {
			rest = append(rest, e)
		}
	}
}

// DrainOutside dispatches pointer events caught by a handler behind the
// control. Their positions are not in the control's coordinate space, so
// releases are reported just outside bounds.
func (t *Translator) DrainOutside(src Source, tag event.Tag, bounds image.Rectangle) {
	outside := f32.Pt(float32(bounds.Min.X-1), float32(bounds.Min.Y-1))
	for {
		e, ok := src.Event(pointer.Filter{Target: tag, Kinds: pointer.Press | pointer.Release})
		if !ok {
			return
		}
		if pe, ok := e.(pointer.Event); ok {
			pe.Position = outside
			t.Translate(pe)
		}
	}
}
