package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

var (
	iconActive = drawIcon(color.RGBA{128, 128, 128, 255}) // gray
	iconPaused = drawIcon(color.RGBA{230, 160, 50, 255})  // orange
)

// drawIcon renders a keycap: a rounded square outline with a bar for the
// key legend.
func drawIcon(c color.RGBA) []byte {
	const (
		size   = 64
		margin = 8
		radius = 10
		stroke = 5
	)
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	inside := func(x, y, inset int) bool {
		lo, hi := margin+inset, size-margin-inset
		r := radius - inset
		if x < lo || x >= hi || y < lo || y >= hi {
			return false
		}
		// corners
		cx, cy := x, y
		switch {
		case x < lo+r:
			cx = lo + r
		case x >= hi-r:
			cx = hi - r - 1
		}
		switch {
		case y < lo+r:
			cy = lo + r
		case y >= hi-r:
			cy = hi - r - 1
		}
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= r*r
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if inside(x, y, 0) && !inside(x, y, stroke) {
				img.Set(x, y, c)
			}
		}
	}
	for y := size/2 + 6; y < size/2+11; y++ {
		for x := size/2 - 12; x < size/2+12; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
