// Package store keeps the in-memory mapping from shortcut names to their
// current shortcut, persists changes through a Backend and notifies
// subscribers after every successful write.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/observe"
	"shortcut-recorder/internal/shortcut"
)

// ErrUndeclared is returned for operations that need a declared name.
var ErrUndeclared = errors.New("shortcut name not declared")

// Name identifies one bindable action.
type Name string

// Change is published after a name's shortcut was written.
type Change struct {
	Name Name
}

// Backend persists shortcuts. Load reports found=false when nothing was ever
// stored for the name; a stored zero shortcut means "explicitly cleared".
type Backend interface {
	Load(name Name) (s shortcut.Shortcut, found bool, err error)
	Save(name Name, s shortcut.Shortcut) error
}

type entry struct {
	current  shortcut.Shortcut
	fallback shortcut.Shortcut
}

// Store is the source of truth for assigned shortcuts.
type Store struct {
	writeMu sync.Mutex // orders backend saves with memory updates
	mu      sync.Mutex
	backend Backend
	entries map[Name]*entry
	changes observe.Registry[Change]
}

// New creates a store persisting through backend.
func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		entries: make(map[Name]*entry),
	}
}

// Declare registers name with a default. The persisted value wins if one
// exists, including an explicitly cleared one.
func (s *Store) Declare(name Name, def shortcut.Shortcut) error {
	stored, found, err := s.backend.Load(name)
	if err != nil {
		return fmt.Errorf("failed to load shortcut %q: %w", name, err)
	}

	current := def
	if found {
		current = stored
	}

	s.mu.Lock()
	s.entries[name] = &entry{current: current, fallback: def}
	s.mu.Unlock()

	logging.Logger.Debug("Shortcut declared", "name", name, "shortcut", current.String(), "persisted", found)
	return nil
}

// Get returns the shortcut for name; ok is false when none is assigned.
func (s *Store) Get(name Name) (sc shortcut.Shortcut, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.entries[name]
	if !exists || e.current.IsZero() {
		return shortcut.Shortcut{}, false
	}
	return e.current, true
}

// Set assigns sc (the zero shortcut clears). The backend write happens
// first; if it fails nothing changes and no notification is sent. Every
// successful Set notifies, even when the value did not change. Undeclared
// names are declared implicitly without a default.
func (s *Store) Set(name Name, sc shortcut.Shortcut) error {
	s.writeMu.Lock()
	if err := s.backend.Save(name, sc); err != nil {
		s.writeMu.Unlock()
		logging.Logger.Error("Failed to persist shortcut", "name", name, "shortcut", sc.String(), "error", err)
		return fmt.Errorf("failed to save shortcut %q: %w", name, err)
	}

	s.mu.Lock()
	e, ok := s.entries[name]
	if !ok {
		e = &entry{}
		s.entries[name] = e
	}
	e.current = sc
	s.mu.Unlock()
	s.writeMu.Unlock()

	logging.Logger.Info("Shortcut changed", "name", name, "shortcut", sc.String())
	s.changes.Publish(Change{Name: name})
	return nil
}

// Clear removes the assignment for name. The name stays declared.
func (s *Store) Clear(name Name) error {
	return s.Set(name, shortcut.Shortcut{})
}

// Reset restores the default given to Declare.
func (s *Store) Reset(name Name) error {
	s.mu.Lock()
	e, ok := s.entries[name]
	var def shortcut.Shortcut
	if ok {
		def = e.fallback
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUndeclared, name)
	}
	return s.Set(name, def)
}

// Default returns the default given to Declare.
func (s *Store) Default(name Name) (shortcut.Shortcut, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[name]
	if !ok || e.fallback.IsZero() {
		return shortcut.Shortcut{}, false
	}
	return e.fallback, true
}

// Names returns every known name, sorted.
func (s *Store) Names() []Name {
	s.mu.Lock()
	names := make([]Name, 0, len(s.entries))
	for n := range s.entries {
		names = append(names, n)
	}
	s.mu.Unlock()

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Lookup finds a name other than except that is bound to sc.
func (s *Store) Lookup(sc shortcut.Shortcut, except Name) (Name, bool) {
	if sc.IsZero() {
		return "", false
	}
	for _, n := range s.Names() {
		if n == except {
			continue
		}
		if cur, ok := s.Get(n); ok && cur == sc {
			return n, true
		}
	}
	return "", false
}

// Subscribe registers fn for change notifications. Handlers receive changes
// for every name and should filter on Change.Name.
func (s *Store) Subscribe(fn func(Change)) observe.Handle {
	return s.changes.Subscribe(fn)
}

// Unsubscribe revokes a subscription. Safe to call more than once.
func (s *Store) Unsubscribe(h observe.Handle) {
	s.changes.Unsubscribe(h)
}
