package tui

import (
	"strconv"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"shortcut-recorder/internal/shortcut"
)

// teaKeys maps the non-rune key types a terminal can report. Ctrl+I and
// Ctrl+M share codes with Tab and Enter and are left out.
var teaKeys = buildTeaKeys()

func buildTeaKeys() map[tea.KeyType]shortcut.KeyEvent {
	m := map[tea.KeyType]shortcut.KeyEvent{}
	set := func(t tea.KeyType, k shortcut.Key, mods shortcut.Modifiers) {
		m[t] = shortcut.KeyEvent{Key: k, Modifiers: mods}
	}
	ctrl, shift := shortcut.ModCtrl, shortcut.ModShift

	set(tea.KeySpace, shortcut.KeySpace, 0)
	set(tea.KeyEnter, shortcut.KeyReturn, 0)
	set(tea.KeyTab, shortcut.KeyTab, 0)
	set(tea.KeyShiftTab, shortcut.KeyTab, shift)
	set(tea.KeyEsc, shortcut.KeyEscape, 0)
	set(tea.KeyBackspace, shortcut.KeyDelete, 0)
	set(tea.KeyDelete, shortcut.KeyForwardDelete, 0)

	set(tea.KeyUp, shortcut.KeyUp, 0)
	set(tea.KeyDown, shortcut.KeyDown, 0)
	set(tea.KeyLeft, shortcut.KeyLeft, 0)
	set(tea.KeyRight, shortcut.KeyRight, 0)
	set(tea.KeyShiftUp, shortcut.KeyUp, shift)
	set(tea.KeyShiftDown, shortcut.KeyDown, shift)
	set(tea.KeyShiftLeft, shortcut.KeyLeft, shift)
	set(tea.KeyShiftRight, shortcut.KeyRight, shift)
	set(tea.KeyCtrlUp, shortcut.KeyUp, ctrl)
	set(tea.KeyCtrlDown, shortcut.KeyDown, ctrl)
	set(tea.KeyCtrlLeft, shortcut.KeyLeft, ctrl)
	set(tea.KeyCtrlRight, shortcut.KeyRight, ctrl)
	set(tea.KeyCtrlShiftUp, shortcut.KeyUp, ctrl|shift)
	set(tea.KeyCtrlShiftDown, shortcut.KeyDown, ctrl|shift)
	set(tea.KeyCtrlShiftLeft, shortcut.KeyLeft, ctrl|shift)
	set(tea.KeyCtrlShiftRight, shortcut.KeyRight, ctrl|shift)

	set(tea.KeyHome, shortcut.KeyHome, 0)
	set(tea.KeyEnd, shortcut.KeyEnd, 0)
	set(tea.KeyPgUp, shortcut.KeyPageUp, 0)
	set(tea.KeyPgDown, shortcut.KeyPageDown, 0)
	set(tea.KeyShiftHome, shortcut.KeyHome, shift)
	set(tea.KeyShiftEnd, shortcut.KeyEnd, shift)
	set(tea.KeyCtrlHome, shortcut.KeyHome, ctrl)
	set(tea.KeyCtrlEnd, shortcut.KeyEnd, ctrl)
	set(tea.KeyCtrlPgUp, shortcut.KeyPageUp, ctrl)
	set(tea.KeyCtrlPgDown, shortcut.KeyPageDown, ctrl)
	set(tea.KeyCtrlShiftHome, shortcut.KeyHome, ctrl|shift)
	set(tea.KeyCtrlShiftEnd, shortcut.KeyEnd, ctrl|shift)

	fkeys := []tea.KeyType{
		tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5,
		tea.KeyF6, tea.KeyF7, tea.KeyF8, tea.KeyF9, tea.KeyF10,
		tea.KeyF11, tea.KeyF12, tea.KeyF13, tea.KeyF14, tea.KeyF15,
		tea.KeyF16, tea.KeyF17, tea.KeyF18, tea.KeyF19, tea.KeyF20,
	}
	for i, t := range fkeys {
		k, _ := shortcut.LookupKey("f" + strconv.Itoa(i+1))
		set(t, k, 0)
	}

	letters := map[rune]tea.KeyType{
		'a': tea.KeyCtrlA, 'b': tea.KeyCtrlB, 'c': tea.KeyCtrlC, 'd': tea.KeyCtrlD,
		'e': tea.KeyCtrlE, 'f': tea.KeyCtrlF, 'g': tea.KeyCtrlG, 'h': tea.KeyCtrlH,
		'j': tea.KeyCtrlJ, 'k': tea.KeyCtrlK, 'l': tea.KeyCtrlL, 'n': tea.KeyCtrlN,
		'o': tea.KeyCtrlO, 'p': tea.KeyCtrlP, 'q': tea.KeyCtrlQ, 'r': tea.KeyCtrlR,
		's': tea.KeyCtrlS, 't': tea.KeyCtrlT, 'u': tea.KeyCtrlU, 'v': tea.KeyCtrlV,
		'w': tea.KeyCtrlW, 'x': tea.KeyCtrlX, 'y': tea.KeyCtrlY, 'z': tea.KeyCtrlZ,
	}
	for r, t := range letters {
		k, _ := shortcut.LookupKey(string(r))
		set(t, k, ctrl)
	}
	return m
}

// keyEvent converts a terminal key press. Terminals cannot report Super, and
// report Alt as a prefix flag.
func keyEvent(msg tea.KeyMsg) (shortcut.KeyEvent, bool) {
	var ev shortcut.KeyEvent
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return ev, false
		}
		r := msg.Runes[0]
		if unicode.IsUpper(r) {
			ev.Modifiers = ev.Modifiers.With(shortcut.ModShift)
			r = unicode.ToLower(r)
		}
		if k, ok := shortcut.LookupKey(string(r)); ok {
			ev.Key = k
		} else {
			ev.Key = shortcut.Key(strings.ToLower(string(r)))
		}
	} else {
		mapped, ok := teaKeys[msg.Type]
		if !ok {
			return ev, false
		}
		ev = mapped
	}
	if msg.Alt {
		ev.Modifiers = ev.Modifiers.With(shortcut.ModAlt)
	}
	return ev, true
}
