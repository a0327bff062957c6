//go:build linux

package hotkey

import (
	"golang.design/x/hotkey"

	"shortcut-recorder/internal/shortcut"
)

var modifierMap = map[shortcut.Modifiers]hotkey.Modifier{
	shortcut.ModCtrl:  hotkey.ModCtrl,
	shortcut.ModShift: hotkey.ModShift,
	shortcut.ModAlt:   hotkey.Mod1, // Alt = Mod1 on X11
	shortcut.ModSuper: hotkey.Mod4, // Super = Mod4 on X11
}
