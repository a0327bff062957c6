// Package shortcut models keyboard shortcuts: a physical key plus a set of
// modifiers, with classification helpers used while recording.
package shortcut

import "strings"

// Key is a physical key, named independently of any keyboard layout.
type Key string

const (
	KeySpace         Key = "space"
	KeyReturn        Key = "return"
	KeyTab           Key = "tab"
	KeyEscape        Key = "escape"
	KeyDelete        Key = "delete" // Backspace
	KeyForwardDelete Key = "forwarddelete"
	KeyLeft          Key = "left"
	KeyRight         Key = "right"
	KeyUp            Key = "up"
	KeyDown          Key = "down"
	KeyHome          Key = "home"
	KeyEnd           Key = "end"
	KeyPageUp        Key = "pageup"
	KeyPageDown      Key = "pagedown"

	KeyA Key = "a"
	KeyB Key = "b"
	KeyC Key = "c"
	KeyD Key = "d"
	KeyE Key = "e"
	KeyF Key = "f"
	KeyG Key = "g"
	KeyH Key = "h"
	KeyI Key = "i"
	KeyJ Key = "j"
	KeyK Key = "k"
	KeyL Key = "l"
	KeyM Key = "m"
	KeyN Key = "n"
	KeyO Key = "o"
	KeyP Key = "p"
	KeyQ Key = "q"
	KeyR Key = "r"
	KeyS Key = "s"
	KeyT Key = "t"
	KeyU Key = "u"
	KeyV Key = "v"
	KeyW Key = "w"
	KeyX Key = "x"
	KeyY Key = "y"
	KeyZ Key = "z"

	Key0 Key = "0"
	Key1 Key = "1"
	Key2 Key = "2"
	Key3 Key = "3"
	Key4 Key = "4"
	Key5 Key = "5"
	Key6 Key = "6"
	Key7 Key = "7"
	Key8 Key = "8"
	Key9 Key = "9"

	KeyMinus        Key = "-"
	KeyEqual        Key = "="
	KeyLeftBracket  Key = "["
	KeyRightBracket Key = "]"
	KeySemicolon    Key = ";"
	KeyQuote        Key = "'"
	KeyComma        Key = ","
	KeyPeriod       Key = "."
	KeySlash        Key = "/"
	KeyBackslash    Key = "\\"
	KeyGrave        Key = "`"

	KeyF1  Key = "f1"
	KeyF2  Key = "f2"
	KeyF3  Key = "f3"
	KeyF4  Key = "f4"
	KeyF5  Key = "f5"
	KeyF6  Key = "f6"
	KeyF7  Key = "f7"
	KeyF8  Key = "f8"
	KeyF9  Key = "f9"
	KeyF10 Key = "f10"
	KeyF11 Key = "f11"
	KeyF12 Key = "f12"
	KeyF13 Key = "f13"
	KeyF14 Key = "f14"
	KeyF15 Key = "f15"
	KeyF16 Key = "f16"
	KeyF17 Key = "f17"
	KeyF18 Key = "f18"
	KeyF19 Key = "f19"
	KeyF20 Key = "f20"
)

var functionKeys = map[Key]bool{
	KeyF1: true, KeyF2: true, KeyF3: true, KeyF4: true, KeyF5: true,
	KeyF6: true, KeyF7: true, KeyF8: true, KeyF9: true, KeyF10: true,
	KeyF11: true, KeyF12: true, KeyF13: true, KeyF14: true, KeyF15: true,
	KeyF16: true, KeyF17: true, KeyF18: true, KeyF19: true, KeyF20: true,
}

// keyGlyphs holds display forms that differ from the upper-cased key name.
var keyGlyphs = map[Key]string{
	KeySpace:         "Space",
	KeyReturn:        "↩",
	KeyTab:           "⇥",
	KeyEscape:        "⎋",
	KeyDelete:        "⌫",
	KeyForwardDelete: "⌦",
	KeyLeft:          "←",
	KeyRight:         "→",
	KeyUp:            "↑",
	KeyDown:          "↓",
	KeyHome:          "↖",
	KeyEnd:           "↘",
	KeyPageUp:        "⇞",
	KeyPageDown:      "⇟",
}

var keyAliases = map[string]Key{
	"enter":     KeyReturn,
	"esc":       KeyEscape,
	"backspace": KeyDelete,
	"del":       KeyForwardDelete,
	"pgup":      KeyPageUp,
	"pgdown":    KeyPageDown,
}

var knownKeys = func() map[Key]bool {
	m := map[Key]bool{
		KeySpace: true, KeyReturn: true, KeyTab: true, KeyEscape: true,
		KeyDelete: true, KeyForwardDelete: true, KeyLeft: true, KeyRight: true,
		KeyUp: true, KeyDown: true, KeyHome: true, KeyEnd: true,
		KeyPageUp: true, KeyPageDown: true,
		KeyMinus: true, KeyEqual: true, KeyLeftBracket: true, KeyRightBracket: true,
		KeySemicolon: true, KeyQuote: true, KeyComma: true, KeyPeriod: true,
		KeySlash: true, KeyBackslash: true, KeyGrave: true,
	}
	for c := 'a'; c <= 'z'; c++ {
		m[Key(string(c))] = true
	}
	for c := '0'; c <= '9'; c++ {
		m[Key(string(c))] = true
	}
	for k := range functionKeys {
		m[k] = true
	}
	return m
}()

// IsFunction reports whether k is one of F1–F20.
func (k Key) IsFunction() bool {
	return functionKeys[k]
}

// IsLetter reports whether k is a–z.
func (k Key) IsLetter() bool {
	return len(k) == 1 && k[0] >= 'a' && k[0] <= 'z'
}

// Valid reports whether k names a known key.
func (k Key) Valid() bool {
	return knownKeys[k]
}

// Glyph returns the display form of the key.
func (k Key) Glyph() string {
	if g, ok := keyGlyphs[k]; ok {
		return g
	}
	return strings.ToUpper(string(k))
}

// LookupKey resolves a key name, accepting common aliases.
func LookupKey(name string) (Key, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyAliases[n]; ok {
		return k, true
	}
	k := Key(n)
	return k, k.Valid()
}
