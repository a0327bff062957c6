//go:build darwin

package shortcut

// systemReserved lists the shortcuts macOS claims for itself.
var systemReserved = reservedTable(map[string]string{
	"super+space":      "Spotlight",
	"ctrl+space":       "Input source switch",
	"ctrl+alt+space":   "Next input source",
	"super+alt+space":  "Finder search window",
	"super+tab":        "Application switcher",
	"super+shift+tab":  "Application switcher",
	"super+`":          "Cycle windows",
	"super+alt+escape": "Force Quit",
	"ctrl+super+q":     "Lock Screen",
	"super+shift+q":    "Log Out",
	"super+alt+d":      "Show/hide Dock",
	"super+shift+3":    "Screenshot",
	"super+shift+4":    "Screenshot of selection",
	"super+shift+5":    "Screenshot and recording options",
	"ctrl+super+space": "Character Viewer",
	"ctrl+up":          "Mission Control",
	"ctrl+down":        "Application windows",
	"ctrl+left":        "Move left a space",
	"ctrl+right":       "Move right a space",
	"ctrl+super+f":     "Full screen",
	"super+h":          "Hide application",
	"super+alt+h":      "Hide others",
	"super+m":          "Minimize",
	"ctrl+f2":          "Move focus to the menu bar",
	"ctrl+f3":          "Move focus to the Dock",
})

// Option and Option+Shift chords type characters and cannot be registered
// as global hotkeys.
const optionChordsDisallowed = true
