// Package settings provides the Gio window for editing shortcuts.
package settings

import (
	"image"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"

	"shortcut-recorder/internal/config"
	"shortcut-recorder/internal/gioevent"
	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/monitor"
	"shortcut-recorder/internal/observe"
	"shortcut-recorder/internal/recorder"
	"shortcut-recorder/internal/store"
)

// rejectFlash is how long a field stays highlighted after a rejected key.
const rejectFlash = 400 * time.Millisecond

// row is one declared name with its recording field.
type row struct {
	name    store.Name
	rec     *recorder.Recorder
	filters []event.Filter
	idle    []event.Filter

	tag       int // stable focus and pointer target of the field
	size      image.Point
	wantFocus bool
	rejected  time.Time

	clearBtn widget.Clickable
	resetBtn widget.Clickable
}

// Window is the shortcuts editor. All recorders it hosts are driven from
// its event loop goroutine.
type Window struct {
	mu     sync.Mutex
	config *config.Config
	deps   recorder.Deps

	// Window state
	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	events     *monitor.Source
	translator *gioevent.Translator
	rows       []*row
	pending    []func()
	background int // catches clicks outside every field
	storeSub   observe.Handle

	// Widgets
	selectedUILang i18n.Language
	langButtons    map[i18n.Language]*widget.Clickable
	closeBtn       widget.Clickable
	contentList    widget.List

	// Callbacks
	onFinish       func(recorder.Outcome)
	onError        func(error)
	onUILangChange func(lang i18n.Language)
}

// New creates the editor window. deps.Events is replaced by the window's
// own source.
func New(cfg *config.Config, deps recorder.Deps) *Window {
	events := monitor.NewSource()
	deps.Events = events
	w := &Window{
		config:      cfg,
		deps:        deps,
		events:      events,
		translator:  gioevent.NewTranslator(events),
		langButtons: make(map[i18n.Language]*widget.Clickable),
	}
	for _, lang := range i18n.AvailableLanguages() {
		w.langButtons[lang] = new(widget.Clickable)
	}
	w.selectedUILang = i18n.GetLanguage()
	w.contentList.Axis = layout.Vertical
	return w
}

// OnFinish sets the callback run after every recording session.
func (w *Window) OnFinish(fn func(recorder.Outcome)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onFinish = fn
}

// OnError sets the callback for failed clear and reset actions.
func (w *Window) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// OnUILangChange sets the callback for when user changes UI language.
func (w *Window) OnUILangChange(fn func(lang i18n.Language)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUILangChange = fn
}

// Show displays the window (non-blocking).
func (w *Window) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.selectedUILang = i18n.GetLanguage()
	w.window = new(app.Window)
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.runEventLoop()
}

// Hide closes the window. Any recording in progress is cancelled.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh := w.stopCh
	doneCh := w.doneCh
	w.stopCh = nil
	w.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}

	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// IsVisible returns true if window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Window) runEventLoop() {
	w.mu.Lock()
	win, stopCh, doneCh := w.window, w.stopCh, w.doneCh
	w.mu.Unlock()
	defer close(doneCh)

	win.Option(
		app.Title(i18n.T("app_name")+" - "+i18n.T("settings_title")),
		app.Size(unit.Dp(520), unit.Dp(480)),
		app.MinSize(unit.Dp(420), unit.Dp(320)),
	)

	w.openRows()
	defer w.closeRows()

	var ops op.Ops

	loopDone := make(chan struct{})
	defer close(loopDone)

	// Invalidation goroutine
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-loopDone:
				return
			case <-stopCh:
				win.Perform(system.ActionClose)
				return
			case <-ticker.C:
				win.Invalidate()
			}
		}
	}()

	for {
		switch e := win.Event().(type) {
		case app.DestroyEvent:
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.runPending()
			w.handleEvents(gtx)
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// openRows creates a recorder for every declared name.
func (w *Window) openRows() {
	w.rows = w.rows[:0]
	for _, name := range w.deps.Store.Names() {
		r := &row{name: name}
		deps := w.deps
		deps.Cue = &rowCue{row: r, extra: w.deps.Cue}
		r.rec = recorder.New(name, deps, recorder.WithScheduler(w.schedule))
		r.rec.OnFinish(w.finished)
		r.filters = gioevent.Filters(&r.tag)
		r.idle = []event.Filter{
			key.FocusFilter{Target: &r.tag},
			key.Filter{Focus: &r.tag, Name: key.NameReturn},
			key.Filter{Focus: &r.tag, Name: key.NameSpace},
			pointer.Filter{Target: &r.tag, Kinds: pointer.Press | pointer.Release},
		}
		w.rows = append(w.rows, r)
	}
	w.storeSub = w.deps.Store.Subscribe(func(store.Change) { w.invalidate() })
}

func (w *Window) closeRows() {
	w.deps.Store.Unsubscribe(w.storeSub)
	for _, r := range w.rows {
		r.rec.Close()
	}
	w.rows = nil
	w.mu.Lock()
	w.pending = nil
	w.mu.Unlock()
}

// schedule runs fn at the start of the next frame.
func (w *Window) schedule(fn func()) {
	w.mu.Lock()
	w.pending = append(w.pending, fn)
	w.mu.Unlock()
	w.invalidate()
}

func (w *Window) runPending() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

func (w *Window) invalidate() {
	w.mu.Lock()
	win := w.window
	w.mu.Unlock()
	if win != nil {
		win.Invalidate()
	}
}

func (w *Window) finished(out recorder.Outcome) {
	w.mu.Lock()
	fn := w.onFinish
	w.mu.Unlock()
	if fn != nil {
		fn(out)
	}
}

func (w *Window) fail(err error) {
	logging.Logger.Error("Shortcut update failed", "error", err)
	w.mu.Lock()
	fn := w.onError
	w.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// startRecording makes r the only recording row.
func (w *Window) startRecording(r *row) {
	for _, other := range w.rows {
		if other != r {
			other.rec.Deactivate()
		}
	}
	r.rec.Activate()
	r.wantFocus = true
}

func (w *Window) handleEvents(gtx layout.Context) {
	for _, r := range w.rows {
		if r.rec.Status() == recorder.Idle {
			w.handleIdle(gtx, r)
		} else {
			w.handleRecording(gtx, r)
		}

		if r.clearBtn.Clicked(gtx) {
			r.rec.Deactivate()
			if err := w.deps.Store.Clear(r.name); err != nil {
				w.fail(err)
			}
		}
		if r.resetBtn.Clicked(gtx) {
			r.rec.Deactivate()
			if err := w.deps.Store.Reset(r.name); err != nil {
				w.fail(err)
			}
		}
	}

	// Clicks behind the fields only matter to a recording row.
	for {
		if _, ok := gtx.Event(pointer.Filter{Target: &w.background, Kinds: pointer.Press | pointer.Release}); !ok {
			break
		}
	}

	// Handle UI language buttons - apply immediately
	for lang, btn := range w.langButtons {
		if btn.Clicked(gtx) {
			w.mu.Lock()
			if w.selectedUILang != lang {
				w.selectedUILang = lang
				i18n.SetLanguage(lang)
				if err := w.config.SetUILanguage(string(lang)); err != nil {
					logging.Logger.Error("Failed to save UI language", "error", err)
				}
				callback := w.onUILangChange
				w.mu.Unlock()
				if callback != nil {
					callback(lang)
				}
			} else {
				w.mu.Unlock()
			}
		}
	}

	if w.closeBtn.Clicked(gtx) {
		for _, r := range w.rows {
			r.rec.Deactivate()
		}
		w.mu.Lock()
		win := w.window
		w.mu.Unlock()
		win.Perform(system.ActionClose)
	}
}

// handleIdle starts recording on a click, or on Return or Space while the
// field has focus.
func (w *Window) handleIdle(src gioevent.Source, r *row) {
	for {
		e, ok := src.Event(r.idle...)
		if !ok {
			return
		}
		switch e := e.(type) {
		case pointer.Event:
			if e.Kind == pointer.Release {
				w.startRecording(r)
			}
		case key.Event:
			if e.State == key.Press && e.Modifiers == 0 {
				w.startRecording(r)
			}
		}
	}
}

func (w *Window) handleRecording(gtx layout.Context, r *row) {
	if r.wantFocus {
		gtx.Execute(key.FocusCmd{Tag: &r.tag})
		r.wantFocus = false
	}
	r.rec.SetBounds(image.Rectangle{Max: r.size})

	w.translator.DrainOutside(gtx, &w.background, image.Rectangle{Max: r.size})
	rest := w.translator.Drain(gtx, r.filters)
	for _, e := range rest {
		// Focus moved elsewhere: the field gave up first responder.
		if fe, ok := e.(key.FocusEvent); ok && !fe.Focus {
			r.rec.Deactivate()
		}
	}
	if next := w.tabTarget(r, rest); next != nil {
		gtx.Execute(key.FocusCmd{Tag: &next.tag})
	}
}

// tabTarget returns the row that takes focus when rest holds the bare Tab
// press that ended r's recording, or nil.
func (w *Window) tabTarget(r *row, rest []event.Event) *row {
	for _, e := range rest {
		ke, ok := e.(key.Event)
		if !ok || ke.Name != key.NameTab || ke.State != key.Press || ke.Modifiers != 0 {
			continue
		}
		for i, other := range w.rows {
			if other == r {
				return w.rows[(i+1)%len(w.rows)]
			}
		}
	}
	return nil
}

// fieldText is the label of r's recording field.
func fieldText(r *row, st *store.Store) string {
	if r.rec.Status() != recorder.Idle {
		return i18n.T("settings_recording")
	}
	if sc, ok := st.Get(r.name); ok {
		return sc.Display()
	}
	return i18n.T("settings_record")
}

// rowCue flashes the field of a row after a rejected key press.
type rowCue struct {
	row   *row
	extra recorder.Cue
}

func (c *rowCue) Reject() {
	c.row.rejected = time.Now()
	if c.extra != nil {
		c.extra.Reject()
	}
}

func (r *row) flashing(now time.Time) bool {
	return !r.rejected.IsZero() && now.Sub(r.rejected) < rejectFlash
}

func (w *Window) getSelectedUILang() i18n.Language {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedUILang
}

func (w *Window) getLangButton(lang i18n.Language) *widget.Clickable {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.langButtons[lang]
}
