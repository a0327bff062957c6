// Package suppress holds the process-wide "shortcut recording in progress"
// flag. The global hotkey dispatcher must not fire while it is active.
package suppress

import (
	"sync"

	"shortcut-recorder/internal/observe"
)

// Flag is active while at least one holder has acquired it. Observers are
// told about transitions only, not about every acquire and release.
type Flag struct {
	mu        sync.Mutex
	holders   int
	observers observe.Registry[bool]
}

// New creates an inactive flag.
func New() *Flag {
	return &Flag{}
}

// Acquire asserts the flag and returns the matching release. Calling the
// release more than once has no further effect.
func (f *Flag) Acquire() (release func()) {
	f.mu.Lock()
	f.holders++
	became := f.holders == 1
	f.mu.Unlock()

	if became {
		f.observers.Publish(true)
	}

	var once sync.Once
	return func() {
		once.Do(f.release)
	}
}

func (f *Flag) release() {
	f.mu.Lock()
	if f.holders == 0 {
		f.mu.Unlock()
		return
	}
	f.holders--
	cleared := f.holders == 0
	f.mu.Unlock()

	if cleared {
		f.observers.Publish(false)
	}
}

// Active reports whether any holder has the flag asserted.
func (f *Flag) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.holders > 0
}

// Subscribe registers fn for active/inactive transitions.
func (f *Flag) Subscribe(fn func(active bool)) observe.Handle {
	return f.observers.Subscribe(fn)
}

// Unsubscribe revokes a subscription made with Subscribe.
func (f *Flag) Unsubscribe(h observe.Handle) {
	f.observers.Unsubscribe(h)
}
