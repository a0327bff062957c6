// Package config provides the application configuration persisted as YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.yaml.in/yaml/v3"

	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/menu"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
)

const appDir = "shortcut-recorder"

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path,omitempty"`
}

// MenuItem declares one item of the host's menu.
type MenuItem struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Binding string `yaml:"binding"`
	Hidden  bool   `yaml:"hidden,omitempty"`
}

// configData is the on-disk document.
type configData struct {
	UILanguage    string            `yaml:"ui_language,omitempty"`
	Notifications bool              `yaml:"notifications"`
	Debug         bool              `yaml:"debug,omitempty"`
	LogFile       string            `yaml:"log_file,omitempty"`
	Storage       StorageConfig     `yaml:"storage"`
	Shortcuts     map[string]string `yaml:"shortcuts,omitempty"`
	Commands      map[string]string `yaml:"commands,omitempty"`
	Menu          []MenuItem        `yaml:"menu,omitempty"`
}

// Config holds the application settings. Accessors are safe for concurrent
// use; setters write the file.
type Config struct {
	mu   sync.RWMutex
	path string
	data configData
}

func defaults() configData {
	return configData{
		UILanguage:    "ru",
		Notifications: true,
		Storage:       StorageConfig{Driver: DriverFile},
		Shortcuts:     map[string]string{},
		Commands:      map[string]string{},
	}
}

// DefaultPath returns <UserConfigDir>/shortcut-recorder/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, appDir, "config.yaml"), nil
}

// Load reads path. A missing file yields the defaults without creating it.
func Load(path string) (*Config, error) {
	c := &Config{path: path, data: defaults()}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Logger.Debug("Config file not found, using defaults", "path", path)
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c.data); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := c.data.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if c.data.Shortcuts == nil {
		c.data.Shortcuts = map[string]string{}
	}
	if c.data.Commands == nil {
		c.data.Commands = map[string]string{}
	}
	return c, nil
}

func (d *configData) validate() error {
	switch d.Storage.Driver {
	case "":
		d.Storage.Driver = DriverFile
	case DriverFile, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", d.Storage.Driver)
	}
	for name, binding := range d.Shortcuts {
		if _, err := shortcut.Parse(binding); err != nil {
			return fmt.Errorf("shortcut %q: %w", name, err)
		}
	}
	for _, item := range d.Menu {
		if item.ID == "" {
			return fmt.Errorf("menu item %q has no id", item.Title)
		}
		if _, err := shortcut.Parse(item.Binding); err != nil {
			return fmt.Errorf("menu item %q: %w", item.ID, err)
		}
	}
	return nil
}

// save writes the config. The caller holds mu.
func (c *Config) save() error {
	raw, err := yaml.Marshal(c.data)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	logging.Logger.Debug("Config saved", "path", c.path)
	return nil
}

// Path returns the config file location.
func (c *Config) Path() string { return c.path }

// Dir returns the directory holding the config file.
func (c *Config) Dir() string { return filepath.Dir(c.path) }

// UILanguage returns the interface language.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.UILanguage
}

// SetUILanguage sets the interface language.
func (c *Config) SetUILanguage(lang string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.UILanguage = lang
	return c.save()
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Notifications
}

// ToggleNotifications flips notifications and returns the new state.
func (c *Config) ToggleNotifications() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Notifications = !c.data.Notifications
	if err := c.save(); err != nil {
		logging.Logger.Error("Failed to save config", "error", err)
	}
	return c.data.Notifications
}

// Debug reports whether debug logging is requested.
func (c *Config) Debug() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Debug
}

// LogFile returns the configured debug log path, if any.
func (c *Config) LogFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.LogFile
}

// Storage returns the backend selection with the path resolved: relative
// paths and the default file name live next to the config file.
func (c *Config) Storage() StorageConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.data.Storage
	if s.Driver == DriverMemory {
		return s
	}
	if s.Path == "" {
		name := "shortcuts.json"
		if s.Driver == DriverSQLite {
			name = "shortcuts.db"
		}
		s.Path = name
	}
	if !filepath.IsAbs(s.Path) {
		s.Path = filepath.Join(filepath.Dir(c.path), s.Path)
	}
	return s
}

// Defaults returns the declared names with their default shortcuts.
func (c *Config) Defaults() map[store.Name]shortcut.Shortcut {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[store.Name]shortcut.Shortcut, len(c.data.Shortcuts))
	for name, binding := range c.data.Shortcuts {
		sc, _ := shortcut.Parse(binding) // validated on load
		out[store.Name(name)] = sc
	}
	return out
}

// SetDefault declares name with a default binding.
func (c *Config) SetDefault(name store.Name, sc shortcut.Shortcut) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Shortcuts[string(name)] = sc.String()
	return c.save()
}

// Command returns the shell command bound to name.
func (c *Config) Command(name store.Name) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cmd, ok := c.data.Commands[string(name)]
	return cmd, ok && cmd != ""
}

// MenuItems returns the declared menu in file order.
func (c *Config) MenuItems() []menu.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]menu.Item, 0, len(c.data.Menu))
	for _, m := range c.data.Menu {
		sc, _ := shortcut.Parse(m.Binding)
		items = append(items, menu.Item{ID: m.ID, Title: m.Title, Shortcut: sc, Hidden: m.Hidden})
	}
	return items
}

// Names returns the declared names sorted.
func (c *Config) Names() []store.Name {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]store.Name, 0, len(c.data.Shortcuts))
	for name := range c.data.Shortcuts {
		names = append(names, store.Name(name))
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
