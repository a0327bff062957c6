package tray

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/suppress"
)

func TestPauseHoldsFlag(t *testing.T) {
	flag := suppress.New()
	p := pauser{flag: flag}

	assert.True(t, p.toggle())
	assert.True(t, flag.Active())

	release := flag.Acquire() // a recording running meanwhile
	assert.False(t, p.toggle())
	assert.True(t, flag.Active(), "recording still holds the flag")

	release()
	assert.False(t, flag.Active())
}

func TestStopReleasesPause(t *testing.T) {
	flag := suppress.New()
	p := pauser{flag: flag}
	p.toggle()

	p.stop()
	p.stop()

	assert.False(t, flag.Active())
}

func TestItemLabel(t *testing.T) {
	defer i18n.SetLanguage(i18n.GetLanguage())
	i18n.SetLanguage(i18n.EN)

	assert.Equal(t, "toggle    ⌘C", itemLabel("toggle", "⌘C", true))
	assert.Equal(t, "toggle    not set", itemLabel("toggle", "", false))
}

func TestIconsAreValidPNG(t *testing.T) {
	for _, icon := range [][]byte{iconActive, iconPaused} {
		img, err := png.Decode(bytes.NewReader(icon))
		require.NoError(t, err)
		assert.Equal(t, 64, img.Bounds().Dx())
	}
}

func TestTooltipFollowsPause(t *testing.T) {
	defer i18n.SetLanguage(i18n.GetLanguage())
	i18n.SetLanguage(i18n.EN)
	tr := &Tray{}

	assert.Equal(t, i18n.T("app_tooltip"), tr.tooltip())
	tr.paused = true
	assert.Equal(t, i18n.T("tray_paused"), tr.tooltip())
}
