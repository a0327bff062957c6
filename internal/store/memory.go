package store

import (
	"sync"

	"shortcut-recorder/internal/shortcut"
)

// Memory is a Backend that keeps everything in process memory.
type Memory struct {
	mu   sync.Mutex
	data map[Name]shortcut.Shortcut
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[Name]shortcut.Shortcut)}
}

func (m *Memory) Load(name Name) (shortcut.Shortcut, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[name]
	return s, ok, nil
}

func (m *Memory) Save(name Name, s shortcut.Shortcut) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = s
	return nil
}
