// Package menu models the host application's menu bar as far as shortcut
// conflicts are concerned: which visible item owns which key combination.
package menu

import (
	"sync"

	"shortcut-recorder/internal/shortcut"
)

// Item is a menu entry bound to a shortcut.
type Item struct {
	ID       string
	Title    string
	Shortcut shortcut.Shortcut
	Hidden   bool
}

// Bar is a mutable set of menu items. The host updates it as its menu
// changes; lookups only consider visible items.
type Bar struct {
	mu    sync.RWMutex
	items []Item
}

// New creates a bar holding items.
func New(items ...Item) *Bar {
	b := &Bar{}
	for _, it := range items {
		b.Add(it)
	}
	return b
}

// Add inserts item, replacing an existing one with the same ID.
func (b *Bar) Add(item Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, it := range b.items {
		if item.ID != "" && it.ID == item.ID {
			b.items[i] = item
			return
		}
	}
	b.items = append(b.items, item)
}

// Remove deletes the item with id.
func (b *Bar) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, it := range b.items {
		if it.ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}

// SetHidden changes the visibility of the item with id.
func (b *Bar) SetHidden(id string, hidden bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Hidden = hidden
		}
	}
}

// Items returns a copy of all items, hidden ones included.
func (b *Bar) Items() []Item {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// ItemClaiming returns the first visible item bound to exactly s. A nil Bar
// claims nothing.
func (b *Bar) ItemClaiming(s shortcut.Shortcut) (Item, bool) {
	if b == nil || s.IsZero() {
		return Item{}, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, it := range b.items {
		if !it.Hidden && it.Shortcut == s {
			return it, true
		}
	}
	return Item{}, false
}
