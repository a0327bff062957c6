//go:build windows

package hotkey

import (
	"golang.design/x/hotkey"

	"shortcut-recorder/internal/shortcut"
)

var modifierMap = map[shortcut.Modifiers]hotkey.Modifier{
	shortcut.ModCtrl:  hotkey.ModCtrl,
	shortcut.ModShift: hotkey.ModShift,
	shortcut.ModAlt:   hotkey.ModAlt,
	shortcut.ModSuper: hotkey.ModWin,
}
