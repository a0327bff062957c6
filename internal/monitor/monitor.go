// Package monitor delivers host input events to scoped listeners. A host
// event loop owns a Source and calls Dispatch for every event; components
// start a Monitor while they need to intercept input.
package monitor

import (
	"image"
	"sync"
	"sync/atomic"

	"shortcut-recorder/internal/shortcut"
)

// Kind is an input event type.
type Kind uint8

const (
	KeyDown Kind = 1 << iota
	MouseUp
	RightMouseUp
)

// Event is one input event.
type Event struct {
	Kind Kind
	Key  shortcut.KeyEvent // for KeyDown
	Pos  image.Point       // for mouse events, in host coordinates
}

// Disposition is what a handler decided to do with an event.
type Disposition uint8

const (
	// Ignore leaves the event alone; other monitors still see it and the
	// host delivers it normally.
	Ignore Disposition = iota
	// Consume swallows the event.
	Consume
	// PassThrough forwards the event to the next responder right away,
	// skipping older monitors.
	PassThrough
)

func (d Disposition) String() string {
	switch d {
	case Consume:
		return "consume"
	case PassThrough:
		return "pass-through"
	default:
		return "ignore"
	}
}

// Handler decides the fate of an event.
type Handler func(Event) Disposition

// Monitor is a started listener. Stop it when done.
type Monitor struct {
	source  *Source
	kinds   Kind
	handler Handler
	stopped atomic.Bool
}

// Stop removes the monitor. It may be called any number of times; once it
// returns the handler is not invoked again, even for an event whose dispatch
// is already under way.
func (m *Monitor) Stop() {
	if m.stopped.Swap(true) {
		return
	}
	m.source.remove(m)
}

// Stopped reports whether Stop was called.
func (m *Monitor) Stopped() bool {
	return m.stopped.Load()
}

// Source fans host events out to active monitors, newest first.
type Source struct {
	mu       sync.Mutex
	monitors []*Monitor
}

// NewSource creates an empty source.
func NewSource() *Source {
	return &Source{}
}

// Start begins delivering events whose kind is in kinds (a bitmask) to h.
func (s *Source) Start(kinds Kind, h Handler) *Monitor {
	m := &Monitor{source: s, kinds: kinds, handler: h}
	s.mu.Lock()
	s.monitors = append(s.monitors, m)
	s.mu.Unlock()
	return m
}

// Dispatch offers ev to the monitors, newest first, and returns the
// resulting disposition. The host should deliver the event normally unless
// the result is Consume.
func (s *Source) Dispatch(ev Event) Disposition {
	s.mu.Lock()
	snapshot := make([]*Monitor, len(s.monitors))
	copy(snapshot, s.monitors)
	s.mu.Unlock()

	for i := len(snapshot) - 1; i >= 0; i-- {
		m := snapshot[i]
		if m.kinds&ev.Kind == 0 || m.Stopped() {
			continue
		}
		switch d := m.handler(ev); d {
		case Consume, PassThrough:
			return d
		}
	}
	return Ignore
}

// Active returns the number of running monitors.
func (s *Source) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.monitors)
}

func (s *Source) remove(m *Monitor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.monitors {
		if cur == m {
			s.monitors = append(s.monitors[:i:i], s.monitors[i+1:]...)
			return
		}
	}
}
