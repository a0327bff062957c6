// Package filestore persists shortcut assignments in a JSON document.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
)

const (
	maxRenameRetry       = 10
	renameRetryBaseDelay = 10 * time.Millisecond
)

// Store keeps all assignments in one file, mapping each name to its binding
// string. A name mapped to "" was cleared explicitly; an absent name was
// never stored.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

var _ store.Backend = (*Store)(nil)

// Open reads path if it exists. A missing file starts empty.
func Open(path string) (*Store, error) {
	s := &Store{path: path, entries: map[string]string{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read shortcuts file: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("failed to parse shortcuts file %s: %w", path, err)
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Load implements store.Backend. An unparsable binding counts as not stored
// so the declared default applies.
func (s *Store) Load(name store.Name) (shortcut.Shortcut, bool, error) {
	s.mu.Lock()
	raw, ok := s.entries[string(name)]
	s.mu.Unlock()
	if !ok {
		return shortcut.Shortcut{}, false, nil
	}
	sc, err := shortcut.Parse(raw)
	if err != nil {
		logging.Logger.Warn("Ignoring stored shortcut", "name", name, "binding", raw, "error", err)
		return shortcut.Shortcut{}, false, nil
	}
	return sc, true, nil
}

// Save implements store.Backend. The file is rewritten before the in-memory
// map changes, so a failed write leaves both untouched.
func (s *Store) Save(name store.Name, sc shortcut.Shortcut) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.entries)+1)
	for k, v := range s.entries {
		next[k] = v
	}
	next[string(name)] = sc.String()

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode shortcuts: %w", err)
	}
	if err := atomicWrite(s.path, data); err != nil {
		return err
	}
	s.entries = next
	logging.Logger.Debug("Shortcut saved", "path", s.path, "name", name, "binding", sc.String())
	return nil
}

// atomicWrite writes data to a temp file in the same directory and renames
// it over path.
func atomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".shortcuts.json.tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
		}
		if err != nil {
			if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				logging.Logger.Warn("Failed to remove temp file", "path", tmpPath, "error", rmErr)
			}
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write shortcuts: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync shortcuts: %w", err)
	}
	err = tmp.Close()
	tmp = nil
	if err != nil {
		return fmt.Errorf("failed to close shortcuts: %w", err)
	}

	if err = renameWithRetry(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace shortcuts file: %w", err)
	}
	return nil
}

// renameWithRetry retries on Windows where indexers and antivirus briefly
// lock freshly written files.
func renameWithRetry(src, dst string) error {
	var lastErr error
	for attempt := range maxRenameRetry {
		err := os.Rename(src, dst)
		if err == nil {
			return nil
		}
		lastErr = err
		if runtime.GOOS != "windows" {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * renameRetryBaseDelay)
	}
	return lastErr
}
