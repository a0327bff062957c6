//go:build linux

package shortcut

// systemReserved lists shortcuts the common Linux desktops (GNOME, KDE)
// bind by default.
var systemReserved = reservedTable(map[string]string{
	"super+l":         "Lock Screen",
	"super+a":         "Show Applications",
	"super+d":         "Show Desktop",
	"super+tab":       "Switch applications",
	"super+space":     "Switch input source",
	"alt+tab":         "Switch windows",
	"alt+shift+tab":   "Switch windows backward",
	"alt+f2":          "Run command",
	"alt+f4":          "Close window",
	"ctrl+alt+t":      "Terminal",
	"ctrl+alt+delete": "Log Out",
	"ctrl+alt+left":   "Move to workspace on the left",
	"ctrl+alt+right":  "Move to workspace on the right",
	"super+up":        "Maximize window",
	"super+down":      "Restore window",
	"super+left":      "Tile left",
	"super+right":     "Tile right",
	"super+shift+s":   "Screenshot",
})

const optionChordsDisallowed = false
