package settings

import (
	"path/filepath"
	"testing"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortcut-recorder/internal/config"
	"shortcut-recorder/internal/conflict"
	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/menu"
	"shortcut-recorder/internal/monitor"
	"shortcut-recorder/internal/recorder"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
	"shortcut-recorder/internal/suppress"
)

type countingCue struct{ n int }

func (c *countingCue) Reject() { c.n++ }

func newWindow(t *testing.T) (*Window, *store.Store, *suppress.Flag, *countingCue) {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	st := store.New(store.NewMemory())
	require.NoError(t, st.Declare("copy", shortcut.MustParse("ctrl+shift+c")))
	require.NoError(t, st.Declare("paste", shortcut.Shortcut{}))
	flag := suppress.New()
	cue := &countingCue{}
	w := New(cfg, recorder.Deps{
		Store:    st,
		Flag:     flag,
		Resolver: conflict.NewResolver(menu.New()),
		Cue:      cue,
	})
	w.openRows()
	t.Cleanup(w.closeRows)
	return w, st, flag, cue
}

func (w *Window) rowNamed(name store.Name) *row {
	for _, r := range w.rows {
		if r.name == name {
			return r
		}
	}
	return nil
}

func keyDown(w *Window, binding string) monitor.Disposition {
	sc := shortcut.MustParse(binding)
	return w.events.Dispatch(monitor.Event{
		Kind: monitor.KeyDown,
		Key:  shortcut.KeyEvent{Key: sc.Key(), Modifiers: sc.Modifiers()},
	})
}

func TestRowsFollowDeclaredNames(t *testing.T) {
	w, _, _, _ := newWindow(t)

	require.Len(t, w.rows, 2)
	assert.Equal(t, store.Name("copy"), w.rows[0].name)
	assert.Equal(t, store.Name("paste"), w.rows[1].name)
}

func TestEnableWaitsForNextFrame(t *testing.T) {
	w, st, flag, _ := newWindow(t)
	r := w.rowNamed("paste")

	w.startRecording(r)
	assert.True(t, flag.Active())
	assert.Equal(t, 0, w.events.Active(), "monitor starts on the next frame")
	assert.True(t, r.wantFocus)

	w.runPending()
	assert.Equal(t, 1, w.events.Active())

	assert.Equal(t, monitor.Consume, keyDown(w, "ctrl+alt+p"))
	got, ok := st.Get("paste")
	assert.True(t, ok)
	assert.Equal(t, shortcut.MustParse("ctrl+alt+p"), got)
	assert.False(t, flag.Active())
}

func TestOnlyOneRowRecords(t *testing.T) {
	w, _, flag, _ := newWindow(t)
	copyRow, pasteRow := w.rowNamed("copy"), w.rowNamed("paste")

	w.startRecording(copyRow)
	w.runPending()
	w.startRecording(pasteRow)
	w.runPending()

	assert.Equal(t, recorder.Idle, copyRow.rec.Status())
	assert.Equal(t, recorder.Recording, pasteRow.rec.Status())
	assert.Equal(t, 1, w.events.Active())
	assert.True(t, flag.Active())
}

func TestOutcomesReachCallback(t *testing.T) {
	w, _, _, _ := newWindow(t)
	var outcomes []recorder.Outcome
	w.OnFinish(func(out recorder.Outcome) { outcomes = append(outcomes, out) })

	w.startRecording(w.rowNamed("copy"))
	w.runPending()
	keyDown(w, "escape")

	require.Len(t, outcomes, 1)
	assert.Equal(t, recorder.Cancelled, outcomes[0].Kind)
	assert.Equal(t, store.Name("copy"), outcomes[0].Name)
}

func TestRejectFlashesRow(t *testing.T) {
	w, _, _, cue := newWindow(t)
	r := w.rowNamed("paste")

	w.startRecording(r)
	w.runPending()
	keyDown(w, "q")

	assert.Equal(t, 1, cue.n)
	assert.True(t, r.flashing(time.Now()))
	assert.False(t, r.flashing(time.Now().Add(rejectFlash)))
	assert.Equal(t, recorder.Recording, r.rec.Status())
}

func TestFieldText(t *testing.T) {
	defer i18n.SetLanguage(i18n.GetLanguage())
	i18n.SetLanguage(i18n.EN)
	w, st, _, _ := newWindow(t)

	assert.Equal(t, shortcut.MustParse("ctrl+shift+c").Display(), fieldText(w.rowNamed("copy"), st))
	assert.Equal(t, i18n.T("settings_record"), fieldText(w.rowNamed("paste"), st))

	w.startRecording(w.rowNamed("paste"))
	assert.Equal(t, i18n.T("settings_recording"), fieldText(w.rowNamed("paste"), st))
}

func TestCloseRowsCancelsRecording(t *testing.T) {
	w, _, flag, _ := newWindow(t)
	w.startRecording(w.rowNamed("copy"))

	w.closeRows()

	assert.False(t, flag.Active())
	assert.Empty(t, w.pending)
	assert.Equal(t, 0, w.events.Active())
}

type queue []event.Event

func (q *queue) Event(...event.Filter) (event.Event, bool) {
	if len(*q) == 0 {
		return nil, false
	}
	e := (*q)[0]
	*q = (*q)[1:]
	return e, true
}

func TestTabMovesFocusToNextRow(t *testing.T) {
	w, _, flag, _ := newWindow(t)
	var outcomes []recorder.Outcome
	w.OnFinish(func(out recorder.Outcome) { outcomes = append(outcomes, out) })
	copyRow, pasteRow := w.rowNamed("copy"), w.rowNamed("paste")

	w.startRecording(copyRow)
	w.runPending()
	q := queue{
		key.Event{Name: key.NameTab, State: key.Press},
		key.Event{Name: key.NameTab, State: key.Release},
	}
	rest := w.translator.Drain(&q, copyRow.filters)

	assert.Same(t, pasteRow, w.tabTarget(copyRow, rest))
	assert.Same(t, copyRow, w.tabTarget(pasteRow, rest), "wraps to the first row")
	assert.Equal(t, recorder.Idle, copyRow.rec.Status())
	assert.False(t, flag.Active())
	require.Len(t, outcomes, 1)
	assert.Equal(t, recorder.Cancelled, outcomes[0].Kind)
}

func TestConsumedKeysKeepFocus(t *testing.T) {
	w, _, _, _ := newWindow(t)
	r := w.rowNamed("copy")

	w.startRecording(r)
	w.runPending()
	q := queue{key.Event{Name: key.NameTab, Modifiers: key.ModShift, State: key.Press}}
	rest := w.translator.Drain(&q, r.filters)

	assert.Nil(t, w.tabTarget(r, rest))
	assert.Equal(t, recorder.Recording, r.rec.Status())
}

func TestReturnStartsRecordingOnFocusedField(t *testing.T) {
	w, _, flag, _ := newWindow(t)
	r := w.rowNamed("paste")

	q := queue{
		key.FocusEvent{Focus: true},
		key.Event{Name: key.NameReturn, State: key.Press},
	}
	w.handleIdle(&q, r)

	assert.Equal(t, recorder.Recording, r.rec.Status())
	assert.True(t, flag.Active())
	assert.True(t, r.wantFocus)
}
