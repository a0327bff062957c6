package hotkey

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.design/x/hotkey"

	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
	"shortcut-recorder/internal/suppress"
)

type fakeReg struct {
	sc          shortcut.Shortcut
	keydown     chan hotkey.Event
	mu          sync.Mutex
	registered  bool
	registerErr error
}

func (f *fakeReg) Register() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = true
	return nil
}

func (f *fakeReg) Unregister() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = false
	return nil
}

func (f *fakeReg) Keydown() <-chan hotkey.Event { return f.keydown }

func (f *fakeReg) isRegistered() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registered
}

type fakeOS struct {
	mu   sync.Mutex
	regs []*fakeReg
	fail error
}

func (o *fakeOS) registrar(s shortcut.Shortcut) (Registration, error) {
	if _, _, err := convert(s); err != nil {
		return nil, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	r := &fakeReg{sc: s, keydown: make(chan hotkey.Event, 1), registerErr: o.fail}
	o.regs = append(o.regs, r)
	return r, nil
}

// live returns the registered hotkeys.
func (o *fakeOS) live() []*fakeReg {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []*fakeReg
	for _, r := range o.regs {
		if r.isRegistered() {
			out = append(out, r)
		}
	}
	return out
}

func setup(t *testing.T) (*Dispatcher, *store.Store, *suppress.Flag, *fakeOS) {
	t.Helper()
	st := store.New(store.NewMemory())
	require.NoError(t, st.Declare("toggle", shortcut.MustParse("ctrl+shift+space")))
	require.NoError(t, st.Declare("palette", shortcut.Shortcut{}))
	flag := suppress.New()
	os := &fakeOS{}
	d := New(st, flag, WithRegistrar(os.registrar))
	t.Cleanup(d.Stop)
	return d, st, flag, os
}

func TestRegistersHandledNames(t *testing.T) {
	d, _, _, os := setup(t)
	d.Handle("toggle", func() {})
	d.Handle("palette", func() {})
	d.Start()

	live := os.live()
	require.Len(t, live, 1, "unassigned names are not registered")
	assert.Equal(t, shortcut.MustParse("ctrl+shift+space"), live[0].sc)
	assert.Equal(t, map[store.Name]shortcut.Shortcut{"toggle": shortcut.MustParse("ctrl+shift+space")}, d.Registered())
}

func TestFollowsStoreChanges(t *testing.T) {
	d, st, _, os := setup(t)
	d.Handle("toggle", func() {})
	d.Start()

	require.NoError(t, st.Set("toggle", shortcut.MustParse("super+f5")))
	live := os.live()
	require.Len(t, live, 1)
	assert.Equal(t, shortcut.MustParse("super+f5"), live[0].sc)

	require.NoError(t, st.Clear("toggle"))
	assert.Empty(t, os.live())
	assert.Empty(t, d.Registered())
}

func TestSuspendedWhileFlagAsserted(t *testing.T) {
	d, _, flag, os := setup(t)
	d.Handle("toggle", func() {})
	d.Start()
	require.Len(t, os.live(), 1)

	release := flag.Acquire()
	assert.Empty(t, os.live())

	release()
	assert.Len(t, os.live(), 1)
}

func TestStartWhileFlagAsserted(t *testing.T) {
	d, _, flag, os := setup(t)
	release := flag.Acquire()
	d.Handle("toggle", func() {})
	d.Start()

	assert.Empty(t, os.live())

	release()
	assert.Len(t, os.live(), 1)
}

func TestStoreChangeWhileSuspendedAppliesOnResume(t *testing.T) {
	d, st, flag, os := setup(t)
	d.Handle("toggle", func() {})
	d.Start()

	release := flag.Acquire()
	require.NoError(t, st.Set("toggle", shortcut.MustParse("ctrl+alt+k")))
	assert.Empty(t, os.live())
	release()

	live := os.live()
	require.Len(t, live, 1)
	assert.Equal(t, shortcut.MustParse("ctrl+alt+k"), live[0].sc)
}

func TestFireRefusedWhileFlagAsserted(t *testing.T) {
	d, _, flag, _ := setup(t)
	calls := 0
	d.Handle("toggle", func() { calls++ })

	release := flag.Acquire()
	assert.False(t, d.fire("toggle"))
	release()
	assert.True(t, d.fire("toggle"))
	assert.Equal(t, 1, calls)
}

func TestFireDebounces(t *testing.T) {
	d, _, _, _ := setup(t)
	now := time.Unix(100, 0)
	d.now = func() time.Time { return now }
	calls := 0
	d.Handle("toggle", func() { calls++ })

	assert.True(t, d.fire("toggle"))
	now = now.Add(100 * time.Millisecond)
	assert.False(t, d.fire("toggle"))
	now = now.Add(defaultDebounce)
	assert.True(t, d.fire("toggle"))
	assert.Equal(t, 2, calls)
}

func TestKeydownRunsAction(t *testing.T) {
	d, _, _, os := setup(t)
	fired := make(chan struct{}, 1)
	d.Handle("toggle", func() { fired <- struct{}{} })
	d.Start()

	live := os.live()
	require.Len(t, live, 1)
	live[0].keydown <- hotkey.Event{}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("action not run")
	}
}

func TestUnsupportedKeyIsSkipped(t *testing.T) {
	d, st, _, os := setup(t)
	require.NoError(t, st.Set("toggle", shortcut.MustParse("ctrl+shift+home")))
	d.Handle("toggle", func() {})
	d.Start()

	assert.Empty(t, os.live())
	_, err := OSRegistrar(shortcut.MustParse("ctrl+shift+home"))
	assert.ErrorIs(t, err, ErrUnsupportedKey)
}

func TestRegisterFailureIsLogged(t *testing.T) {
	d, _, _, os := setup(t)
	os.fail = errors.New("grabbed by another application")
	d.Handle("toggle", func() {})
	d.Start()

	assert.Empty(t, d.Registered())
}

func TestStopUnregistersAll(t *testing.T) {
	d, st, _, os := setup(t)
	d.Handle("toggle", func() {})
	d.Start()
	d.Stop()

	assert.Empty(t, os.live())
	require.NoError(t, st.Set("toggle", shortcut.MustParse("super+f6")))
	assert.Empty(t, os.live(), "stopped dispatcher ignores store changes")
}

func TestConvertModifiers(t *testing.T) {
	mods, key, err := convert(shortcut.MustParse("ctrl+alt+shift+super+a"))
	require.NoError(t, err)
	assert.Equal(t, hotkey.KeyA, key)
	assert.Equal(t, []hotkey.Modifier{
		modifierMap[shortcut.ModCtrl],
		modifierMap[shortcut.ModAlt],
		modifierMap[shortcut.ModShift],
		modifierMap[shortcut.ModSuper],
	}, mods)
}
