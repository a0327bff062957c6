package hotkey

import (
	"golang.design/x/hotkey"

	"shortcut-recorder/internal/shortcut"
)

// keyMap covers the keys the OS hotkey layer can register on every
// platform. Punctuation, Home/End/Page keys and forward delete have no
// portable code and are rejected with ErrUnsupportedKey.
var keyMap = map[shortcut.Key]hotkey.Key{
	shortcut.KeySpace:  hotkey.KeySpace,
	shortcut.KeyReturn: hotkey.KeyReturn,
	shortcut.KeyTab:    hotkey.KeyTab,
	shortcut.KeyEscape: hotkey.KeyEscape,
	shortcut.KeyDelete: hotkey.KeyDelete,
	shortcut.KeyLeft:   hotkey.KeyLeft,
	shortcut.KeyRight:  hotkey.KeyRight,
	shortcut.KeyUp:     hotkey.KeyUp,
	shortcut.KeyDown:   hotkey.KeyDown,
	shortcut.KeyA:      hotkey.KeyA,
	shortcut.KeyB:      hotkey.KeyB,
	shortcut.KeyC:      hotkey.KeyC,
	shortcut.KeyD:      hotkey.KeyD,
	shortcut.KeyE:      hotkey.KeyE,
	shortcut.KeyF:      hotkey.KeyF,
	shortcut.KeyG:      hotkey.KeyG,
	shortcut.KeyH:      hotkey.KeyH,
	shortcut.KeyI:      hotkey.KeyI,
	shortcut.KeyJ:      hotkey.KeyJ,
	shortcut.KeyK:      hotkey.KeyK,
	shortcut.KeyL:      hotkey.KeyL,
	shortcut.KeyM:      hotkey.KeyM,
	shortcut.KeyN:      hotkey.KeyN,
	shortcut.KeyO:      hotkey.KeyO,
	shortcut.KeyP:      hotkey.KeyP,
	shortcut.KeyQ:      hotkey.KeyQ,
	shortcut.KeyR:      hotkey.KeyR,
	shortcut.KeyS:      hotkey.KeyS,
	shortcut.KeyT:      hotkey.KeyT,
	shortcut.KeyU:      hotkey.KeyU,
	shortcut.KeyV:      hotkey.KeyV,
	shortcut.KeyW:      hotkey.KeyW,
	shortcut.KeyX:      hotkey.KeyX,
	shortcut.KeyY:      hotkey.KeyY,
	shortcut.KeyZ:      hotkey.KeyZ,
	shortcut.Key0:      hotkey.Key0,
	shortcut.Key1:      hotkey.Key1,
	shortcut.Key2:      hotkey.Key2,
	shortcut.Key3:      hotkey.Key3,
	shortcut.Key4:      hotkey.Key4,
	shortcut.Key5:      hotkey.Key5,
	shortcut.Key6:      hotkey.Key6,
	shortcut.Key7:      hotkey.Key7,
	shortcut.Key8:      hotkey.Key8,
	shortcut.Key9:      hotkey.Key9,
	shortcut.KeyF1:     hotkey.KeyF1,
	shortcut.KeyF2:     hotkey.KeyF2,
	shortcut.KeyF3:     hotkey.KeyF3,
	shortcut.KeyF4:     hotkey.KeyF4,
	shortcut.KeyF5:     hotkey.KeyF5,
	shortcut.KeyF6:     hotkey.KeyF6,
	shortcut.KeyF7:     hotkey.KeyF7,
	shortcut.KeyF8:     hotkey.KeyF8,
	shortcut.KeyF9:     hotkey.KeyF9,
	shortcut.KeyF10:    hotkey.KeyF10,
	shortcut.KeyF11:    hotkey.KeyF11,
	shortcut.KeyF12:    hotkey.KeyF12,
	shortcut.KeyF13:    hotkey.KeyF13,
	shortcut.KeyF14:    hotkey.KeyF14,
	shortcut.KeyF15:    hotkey.KeyF15,
	shortcut.KeyF16:    hotkey.KeyF16,
	shortcut.KeyF17:    hotkey.KeyF17,
	shortcut.KeyF18:    hotkey.KeyF18,
	shortcut.KeyF19:    hotkey.KeyF19,
	shortcut.KeyF20:    hotkey.KeyF20,
}

// convert maps s onto the OS hotkey layer.
func convert(s shortcut.Shortcut) ([]hotkey.Modifier, hotkey.Key, error) {
	key, ok := keyMap[s.Key()]
	if !ok {
		return nil, 0, ErrUnsupportedKey
	}
	mods := make([]hotkey.Modifier, 0, 4)
	for _, m := range []shortcut.Modifiers{shortcut.ModCtrl, shortcut.ModAlt, shortcut.ModShift, shortcut.ModSuper} {
		if s.Modifiers().Has(m) {
			mods = append(mods, modifierMap[m])
		}
	}
	return mods, key, nil
}
