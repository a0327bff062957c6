package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shortcut-recorder/internal/shortcut"
)

func keyDown(k shortcut.Key) Event {
	return Event{Kind: KeyDown, Key: shortcut.KeyEvent{Key: k}}
}

func TestDispatchWithoutMonitors(t *testing.T) {
	s := NewSource()
	assert.Equal(t, Ignore, s.Dispatch(keyDown(shortcut.KeyA)))
}

func TestKindFilter(t *testing.T) {
	s := NewSource()
	calls := 0
	s.Start(MouseUp, func(Event) Disposition { calls++; return Consume })

	assert.Equal(t, Ignore, s.Dispatch(keyDown(shortcut.KeyA)))
	assert.Equal(t, Consume, s.Dispatch(Event{Kind: MouseUp}))
	assert.Equal(t, 1, calls)
}

func TestNewestFirstAndConsumeStops(t *testing.T) {
	s := NewSource()
	var order []string
	s.Start(KeyDown, func(Event) Disposition { order = append(order, "old"); return Consume })
	s.Start(KeyDown, func(Event) Disposition { order = append(order, "new"); return Ignore })

	assert.Equal(t, Consume, s.Dispatch(keyDown(shortcut.KeyA)))
	assert.Equal(t, []string{"new", "old"}, order)

	order = nil
	s2 := NewSource()
	s2.Start(KeyDown, func(Event) Disposition { order = append(order, "old"); return Consume })
	s2.Start(KeyDown, func(Event) Disposition { order = append(order, "new"); return PassThrough })

	assert.Equal(t, PassThrough, s2.Dispatch(keyDown(shortcut.KeyTab)))
	assert.Equal(t, []string{"new"}, order)
}

func TestStopIsIdempotentAndFinal(t *testing.T) {
	s := NewSource()
	calls := 0
	m := s.Start(KeyDown, func(Event) Disposition { calls++; return Consume })

	m.Stop()
	m.Stop()

	assert.True(t, m.Stopped())
	assert.Zero(t, s.Active())
	assert.Equal(t, Ignore, s.Dispatch(keyDown(shortcut.KeyA)))
	assert.Zero(t, calls)
}

func TestStopDuringDispatchSkipsInFlight(t *testing.T) {
	s := NewSource()
	var older *Monitor
	olderCalls := 0
	older = s.Start(KeyDown, func(Event) Disposition { olderCalls++; return Consume })
	s.Start(KeyDown, func(Event) Disposition {
		older.Stop()
		return Ignore
	})

	assert.Equal(t, Ignore, s.Dispatch(keyDown(shortcut.KeyA)))
	assert.Zero(t, olderCalls)
}
