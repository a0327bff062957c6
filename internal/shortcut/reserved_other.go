//go:build !darwin && !linux && !windows

package shortcut

var systemReserved = map[Shortcut]string{}

const optionChordsDisallowed = false
