// Package observe provides a typed observer registry with revocable
// subscriptions.
package observe

import (
	"sync"
	"sync/atomic"
)

// Handle identifies one subscription. Handles are unique across all
// registries in the process; the zero Handle is never issued.
type Handle uint64

var lastHandle atomic.Uint64

// Registry delivers values of type T to its subscribers, synchronously and in
// subscription order.
type Registry[T any] struct {
	mu       sync.Mutex
	handlers []entry[T]
}

type entry[T any] struct {
	handle Handle
	fn     func(T)
}

// Subscribe registers fn and returns a handle for Unsubscribe.
func (r *Registry[T]) Subscribe(fn func(T)) Handle {
	h := Handle(lastHandle.Add(1))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, entry[T]{handle: h, fn: fn})
	return h
}

// Unsubscribe removes the subscription. Unknown or already revoked handles
// are ignored.
func (r *Registry[T]) Unsubscribe(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.handlers {
		if e.handle == h {
			r.handlers = append(r.handlers[:i:i], r.handlers[i+1:]...)
			return
		}
	}
}

// Publish calls every subscriber with v. The lock is not held during the
// calls, so subscribers may publish, subscribe or unsubscribe re-entrantly.
// A subscriber revoked while Publish is running is not called afterwards.
func (r *Registry[T]) Publish(v T) {
	r.mu.Lock()
	snapshot := make([]entry[T], len(r.handlers))
	copy(snapshot, r.handlers)
	r.mu.Unlock()

	for _, e := range snapshot {
		if !r.subscribed(e.handle) {
			continue
		}
		e.fn(v)
	}
}

// Len returns the number of live subscriptions.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}

func (r *Registry[T]) subscribed(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.handlers {
		if e.handle == h {
			return true
		}
	}
	return false
}
