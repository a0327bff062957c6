// Package hotkey registers assigned shortcuts as global hotkeys and runs the
// action bound to each name when its hotkey fires.
package hotkey

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/observe"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
	"shortcut-recorder/internal/suppress"
)

// ErrUnsupportedKey is returned for shortcuts the OS hotkey layer cannot
// register.
var ErrUnsupportedKey = errors.New("key cannot be registered as a global hotkey")

const (
	defaultDebounce   = 300 * time.Millisecond // key repeat protection
	unregisterTimeout = 500 * time.Millisecond
)

// Registration is one OS-level hotkey.
type Registration interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
}

// Registrar creates an unregistered hotkey for s.
type Registrar func(s shortcut.Shortcut) (Registration, error)

// OSRegistrar builds hotkeys through golang.design/x/hotkey.
func OSRegistrar(s shortcut.Shortcut) (Registration, error) {
	mods, key, err := convert(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s, err)
	}
	return hotkey.New(mods, key), nil
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithRegistrar replaces the OS hotkey layer.
func WithRegistrar(r Registrar) Option {
	return func(d *Dispatcher) { d.registrar = r }
}

// WithDebounce sets the minimum interval between two firings of one name.
func WithDebounce(interval time.Duration) Option {
	return func(d *Dispatcher) { d.debounce = interval }
}

// Dispatcher keeps one global hotkey registered per named action. It
// follows store changes, and unregisters everything while the suppression
// flag is asserted so a recording control receives the keys instead.
type Dispatcher struct {
	store     *store.Store
	flag      *suppress.Flag
	registrar Registrar
	debounce  time.Duration
	now       func() time.Time

	mu        sync.Mutex
	actions   map[store.Name]func()
	bound     map[store.Name]*binding
	lastFire  map[store.Name]time.Time
	running   bool
	suspended bool
	storeSub  observe.Handle
	flagSub   observe.Handle
}

type binding struct {
	shortcut shortcut.Shortcut
	reg      Registration
	stop     chan struct{}
}

// New creates a stopped dispatcher.
func New(st *store.Store, flag *suppress.Flag, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:     st,
		flag:      flag,
		registrar: OSRegistrar,
		debounce:  defaultDebounce,
		now:       time.Now,
		actions:   map[store.Name]func(){},
		bound:     map[store.Name]*binding{},
		lastFire:  map[store.Name]time.Time{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle binds fn to name. It replaces any earlier action for name.
func (d *Dispatcher) Handle(name store.Name, fn func()) {
	d.mu.Lock()
	d.actions[name] = fn
	d.mu.Unlock()
	d.sync(name)
}

// Start registers every handled name and begins following the store and the
// suppression flag.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.suspended = d.flag.Active()
	d.mu.Unlock()

	d.storeSub = d.store.Subscribe(func(c store.Change) { d.sync(c.Name) })
	d.flagSub = d.flag.Subscribe(func(active bool) {
		if active {
			d.suspend()
		} else {
			d.resume()
		}
	})
	d.resume()
}

// Stop unregisters all hotkeys.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	d.store.Unsubscribe(d.storeSub)
	d.flag.Unsubscribe(d.flagSub)
	d.unbindAll()
	logging.Logger.Info("Hotkey dispatcher stopped")
}

// Registered returns the shortcuts currently registered with the OS.
func (d *Dispatcher) Registered() map[store.Name]shortcut.Shortcut {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[store.Name]shortcut.Shortcut, len(d.bound))
	for name, b := range d.bound {
		out[name] = b.shortcut
	}
	return out
}

func (d *Dispatcher) suspend() {
	d.mu.Lock()
	if !d.running || d.suspended {
		d.mu.Unlock()
		return
	}
	d.suspended = true
	d.mu.Unlock()

	logging.Logger.Debug("Hotkeys suspended for recording")
	d.unbindAll()
}

func (d *Dispatcher) resume() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.suspended = false
	names := make([]store.Name, 0, len(d.actions))
	for name := range d.actions {
		names = append(names, name)
	}
	d.mu.Unlock()

	for _, name := range names {
		d.sync(name)
	}
}

// sync brings the registration for name in line with the store.
func (d *Dispatcher) sync(name store.Name) {
	want, assigned := d.store.Get(name)

	d.mu.Lock()
	defer d.mu.Unlock()
	_, handled := d.actions[name]
	if !d.running || d.suspended || !handled {
		return
	}
	if b := d.bound[name]; b != nil {
		if assigned && b.shortcut == want {
			return
		}
		delete(d.bound, name)
		release(name, b)
	}
	if !assigned {
		return
	}

	reg, err := d.registrar(want)
	if err != nil {
		logging.Logger.Warn("Hotkey not supported", "name", name, "shortcut", want.String(), "error", err)
		return
	}
	if err := reg.Register(); err != nil {
		logging.Logger.Error("Failed to register hotkey", "name", name, "shortcut", want.String(), "error", err)
		return
	}
	b := &binding{shortcut: want, reg: reg, stop: make(chan struct{})}
	d.bound[name] = b
	go d.listen(name, b)
	logging.Logger.Info("Hotkey registered", "name", name, "shortcut", want.String())
}

func (d *Dispatcher) unbindAll() {
	d.mu.Lock()
	bound := d.bound
	d.bound = map[store.Name]*binding{}
	d.mu.Unlock()

	for name, b := range bound {
		release(name, b)
	}
}

// release stops the listener and unregisters with a timeout; some platforms
// block in Unregister while their event loop is busy.
func release(name store.Name, b *binding) {
	close(b.stop)
	done := make(chan error, 1)
	go func() { done <- b.reg.Unregister() }()
	select {
	case err := <-done:
		if err != nil {
			logging.Logger.Warn("Failed to unregister hotkey", "name", name, "error", err)
		}
	case <-time.After(unregisterTimeout):
		logging.Logger.Warn("Hotkey unregister timeout", "name", name)
	}
}

func (d *Dispatcher) listen(name store.Name, b *binding) {
	for {
		select {
		case <-b.stop:
			return
		case _, ok := <-b.reg.Keydown():
			if !ok {
				return
			}
			d.fire(name)
		}
	}
}

// fire runs the action for name unless a recording holds the suppression
// flag or the previous firing is too recent.
func (d *Dispatcher) fire(name store.Name) bool {
	if d.flag.Active() {
		logging.Logger.Debug("Hotkey ignored while recording", "name", name)
		return false
	}

	d.mu.Lock()
	now := d.now()
	if last, ok := d.lastFire[name]; ok && now.Sub(last) < d.debounce {
		d.mu.Unlock()
		return false
	}
	d.lastFire[name] = now
	fn := d.actions[name]
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// RunOnMainThread runs fn with the main thread reserved for the OS event
// loop, which macOS requires for global hotkeys.
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}
