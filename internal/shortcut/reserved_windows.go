//go:build windows

package shortcut

// systemReserved lists shortcuts Windows handles before applications.
var systemReserved = reservedTable(map[string]string{
	"super+l":           "Lock",
	"super+d":           "Show desktop",
	"super+e":           "File Explorer",
	"super+r":           "Run",
	"super+i":           "Settings",
	"super+tab":         "Task View",
	"super+space":       "Switch input language",
	"super+shift+s":     "Snip & Sketch",
	"super+.":           "Emoji panel",
	"super+v":           "Clipboard history",
	"alt+tab":           "Switch windows",
	"alt+f4":            "Close window",
	"ctrl+alt+delete":   "Security options",
	"ctrl+shift+escape": "Task Manager",
	"ctrl+escape":       "Start menu",
	"super+up":          "Maximize window",
	"super+down":        "Minimize window",
	"super+left":        "Snap left",
	"super+right":       "Snap right",
})

const optionChordsDisallowed = false
