package gioevent

import (
	"image"
	"testing"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortcut-recorder/internal/conflict"
	"shortcut-recorder/internal/menu"
	"shortcut-recorder/internal/monitor"
	"shortcut-recorder/internal/recorder"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
	"shortcut-recorder/internal/suppress"
)

func TestKeyEvent(t *testing.T) {
	cases := []struct {
		name string
		in   key.Event
		want shortcut.KeyEvent
	}{
		{"letter", key.Event{Name: "C", Modifiers: key.ModCommand | key.ModShift, State: key.Press},
			shortcut.KeyEvent{Key: shortcut.KeyC, Modifiers: shortcut.ModSuper | shortcut.ModShift}},
		{"digit", key.Event{Name: "7", Modifiers: key.ModCtrl, State: key.Press},
			shortcut.KeyEvent{Key: shortcut.Key7, Modifiers: shortcut.ModCtrl}},
		{"backspace", key.Event{Name: key.NameDeleteBackward, State: key.Press},
			shortcut.KeyEvent{Key: shortcut.KeyDelete}},
		{"function", key.Event{Name: key.NameF5, Modifiers: key.ModAlt, State: key.Press},
			shortcut.KeyEvent{Key: shortcut.KeyF5, Modifiers: shortcut.ModAlt}},
		{"modifier only", key.Event{Name: key.NameShift, Modifiers: key.ModShift, State: key.Press},
			shortcut.KeyEvent{Modifiers: shortcut.ModShift}},
		{"super", key.Event{Name: key.NameSpace, Modifiers: key.ModSuper, State: key.Press},
			shortcut.KeyEvent{Key: shortcut.KeySpace, Modifiers: shortcut.ModSuper}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := KeyEvent(tc.in)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestKeyReleaseIgnored(t *testing.T) {
	_, ok := KeyEvent(key.Event{Name: "C", Modifiers: key.ModCtrl, State: key.Release})
	assert.False(t, ok)
}

func TestUnknownKeyIsRejectedDownstream(t *testing.T) {
	ev, ok := KeyEvent(key.Event{Name: "⏏", Modifiers: key.ModCtrl, State: key.Press})
	require.True(t, ok)
	_, valid := shortcut.Classify(ev)
	assert.False(t, valid)
}

func TestTranslatePointerButtons(t *testing.T) {
	src := monitor.NewSource()
	var got []monitor.Event
	src.Start(monitor.MouseUp|monitor.RightMouseUp, func(ev monitor.Event) monitor.Disposition {
		got = append(got, ev)
		return monitor.PassThrough
	})
	tr := NewTranslator(src)

	tr.Translate(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonSecondary})
	d, ok := tr.Translate(pointer.Event{Kind: pointer.Release, Position: f32.Pt(12.4, 3.6)})
	require.True(t, ok)
	assert.Equal(t, monitor.PassThrough, d)

	tr.Translate(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary})
	tr.Translate(pointer.Event{Kind: pointer.Release})

	require.Len(t, got, 2)
	assert.Equal(t, monitor.RightMouseUp, got[0].Kind)
	assert.Equal(t, image.Pt(12, 4), got[0].Pos)
	assert.Equal(t, monitor.MouseUp, got[1].Kind)
}

type queue []event.Event

func (q *queue) Event(...event.Filter) (event.Event, bool) {
	if len(*q) == 0 {
		return nil, false
	}
	e := (*q)[0]
	*q = (*q)[1:]
	return e, true
}

func TestDrainReturnsUnconsumed(t *testing.T) {
	src := monitor.NewSource()
	src.Start(monitor.KeyDown, func(ev monitor.Event) monitor.Disposition {
		if ev.Key.Key == shortcut.KeyTab {
			return monitor.PassThrough
		}
		return monitor.Consume
	})
	tab := key.Event{Name: key.NameTab, State: key.Press}
	release := key.Event{Name: key.NameTab, State: key.Release}
	blur := key.FocusEvent{Focus: false}
	q := queue{
		key.Event{Name: "C", Modifiers: key.ModCtrl, State: key.Press},
		tab,
		release,
		blur,
	}

	rest := NewTranslator(src).Drain(&q, nil)

	assert.Equal(t, []event.Event{tab, release, blur}, rest)
}

func TestDrainOutsideLandsOutsideBounds(t *testing.T) {
	src := monitor.NewSource()
	var got []monitor.Event
	src.Start(monitor.MouseUp, func(ev monitor.Event) monitor.Disposition {
		got = append(got, ev)
		return monitor.PassThrough
	})
	bounds := image.Rect(0, 0, 200, 40)
	q := queue{
		pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary, Position: f32.Pt(10, 10)},
		pointer.Event{Kind: pointer.Release, Position: f32.Pt(10, 10)},
	}

	NewTranslator(src).DrainOutside(&q, new(int), bounds)

	require.Len(t, got, 1)
	assert.False(t, got[0].Pos.In(bounds))
}

func TestFiltersTargetTag(t *testing.T) {
	tag := new(int)
	filters := Filters(tag)

	require.NotEmpty(t, filters)
	for _, f := range filters {
		switch f := f.(type) {
		case key.Filter:
			assert.Equal(t, event.Tag(tag), f.Focus)
		case key.FocusFilter:
			assert.Equal(t, event.Tag(tag), f.Target)
		case pointer.Filter:
			assert.Equal(t, event.Tag(tag), f.Target)
		}
	}
}

type countingCue struct{ n int }

func (c *countingCue) Reject() { c.n++ }

func TestChordTypedKeyByKeyRecordsWithoutReject(t *testing.T) {
	src := monitor.NewSource()
	st := store.New(store.NewMemory())
	require.NoError(t, st.Declare("toggle", shortcut.Shortcut{}))
	cue := &countingCue{}
	rec := recorder.New("toggle", recorder.Deps{
		Store:    st,
		Flag:     suppress.New(),
		Events:   src,
		Resolver: conflict.NewResolver(menu.New()),
		Cue:      cue,
	})
	t.Cleanup(rec.Close)
	rec.Activate()

	q := queue{
		key.Event{Name: key.NameCtrl, Modifiers: key.ModCtrl, State: key.Press},
		key.Event{Name: key.NameShift, Modifiers: key.ModCtrl | key.ModShift, State: key.Press},
		key.Event{Name: "K", Modifiers: key.ModCtrl | key.ModShift, State: key.Press},
	}
	rest := NewTranslator(src).Drain(&q, nil)

	assert.Empty(t, rest)
	assert.Equal(t, 0, cue.n)
	got, ok := st.Get("toggle")
	require.True(t, ok)
	assert.Equal(t, shortcut.MustParse("ctrl+shift+k"), got)
	assert.Equal(t, recorder.Idle, rec.Status())
}
