//go:build darwin

package hotkey

import (
	"golang.design/x/hotkey"

	"shortcut-recorder/internal/shortcut"
)

var modifierMap = map[shortcut.Modifiers]hotkey.Modifier{
	shortcut.ModCtrl:  hotkey.ModCtrl,
	shortcut.ModShift: hotkey.ModShift,
	shortcut.ModAlt:   hotkey.ModOption,
	shortcut.ModSuper: hotkey.ModCmd,
}
