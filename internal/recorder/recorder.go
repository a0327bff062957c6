// Package recorder implements the shortcut recording state machine: it turns
// the key and mouse events a control receives while active into either a
// validated assignment in the store, or a cancelled recording.
package recorder

import (
	"image"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"shortcut-recorder/internal/conflict"
	"shortcut-recorder/internal/logging"
	"shortcut-recorder/internal/monitor"
	"shortcut-recorder/internal/observe"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
	"shortcut-recorder/internal/suppress"
)

// Scheduler runs fn on a later turn of the host event loop.
type Scheduler func(fn func())

// Deps are the collaborators a recorder needs. Store, Flag and Events are
// required; the rest fall back to no-op behaviour.
type Deps struct {
	Store    *store.Store
	Flag     *suppress.Flag
	Events   *monitor.Source
	Resolver *conflict.Resolver
	Alerts   Alerter
	Cue      Cue
}

// Option customizes a Recorder.
type Option func(*Recorder)

// WithScheduler defers the enable phase of activation to the host loop.
func WithScheduler(s Scheduler) Option {
	return func(r *Recorder) { r.schedule = s }
}

// WithRightMouse controls whether right-button releases outside the control
// end the recording. Defaults to true on macOS only.
func WithRightMouse(enabled bool) Option {
	return func(r *Recorder) { r.rightMouse = enabled }
}

// WithBounds sets the control's frame in host coordinates.
func WithBounds(b image.Rectangle) Option {
	return func(r *Recorder) { r.bounds = b }
}

// Recorder records a shortcut for one name. It is driven by a single host
// event loop; callbacks (alerts, observers, store writes) run without the
// recorder's lock held and may call back into it.
type Recorder struct {
	name store.Name
	deps Deps

	mu         sync.Mutex
	status     Status
	session    *session
	closed     bool
	bounds     image.Rectangle
	rightMouse bool
	schedule   Scheduler

	activity observe.Registry[bool]
	finished observe.Registry[Outcome]
}

type session struct {
	id      string
	monitor *monitor.Monitor
	release func()
}

// New creates an idle recorder for name.
func New(name store.Name, deps Deps, opts ...Option) *Recorder {
	if deps.Resolver == nil {
		deps.Resolver = conflict.NewResolver(nil)
	}
	r := &Recorder{
		name:       name,
		deps:       deps,
		rightMouse: runtime.GOOS == "darwin",
		schedule:   func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the shortcut name this recorder writes to.
func (r *Recorder) Name() store.Name { return r.name }

// Status returns the current state.
func (r *Recorder) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// SetBounds updates the control's frame used for outside-click detection.
func (r *Recorder) SetBounds(b image.Rectangle) {
	r.mu.Lock()
	r.bounds = b
	r.mu.Unlock()
}

// OnActiveChange subscribes to recorder active/inactive signals.
func (r *Recorder) OnActiveChange(fn func(active bool)) observe.Handle {
	return r.activity.Subscribe(fn)
}

// OnFinish subscribes to session outcomes.
func (r *Recorder) OnFinish(fn func(Outcome)) observe.Handle {
	return r.finished.Subscribe(fn)
}

// Unsubscribe revokes a handle from OnActiveChange or OnFinish.
func (r *Recorder) Unsubscribe(h observe.Handle) {
	r.activity.Unsubscribe(h)
	r.finished.Unsubscribe(h)
}

// Activate starts recording. The arm phase runs now: the suppression flag is
// asserted and the active signal published before any event can arrive. The
// enable phase, which starts the event monitor, runs through the scheduler.
// Activating an already active or closed recorder does nothing.
func (r *Recorder) Activate() {
	r.mu.Lock()
	if r.closed || r.status != Idle {
		r.mu.Unlock()
		return
	}
	sess := &session{id: uuid.NewString()}
	r.session = sess
	r.status = Recording
	r.mu.Unlock()

	release := r.deps.Flag.Acquire()
	r.mu.Lock()
	ended := r.session != sess
	if !ended {
		sess.release = release
	}
	r.mu.Unlock()
	if ended {
		release()
		return
	}

	logging.Logger.Info("Shortcut recording started", "name", r.name, "session", sess.id)
	r.activity.Publish(true)
	r.schedule(func() { r.enable(sess) })
}

func (r *Recorder) enable(sess *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != sess || sess.monitor != nil {
		return
	}
	kinds := monitor.KeyDown | monitor.MouseUp
	if r.rightMouse {
		kinds |= monitor.RightMouseUp
	}
	sess.monitor = r.deps.Events.Start(kinds, func(ev monitor.Event) monitor.Disposition {
		return r.handle(sess, ev)
	})
	logging.Logger.Debug("Shortcut recording enabled", "name", r.name, "session", sess.id)
}

// Deactivate ends any recording without writing: the host calls it when the
// window loses key status or closes. Safe to call at any time, including
// while an alert is showing; the alert's answer is then discarded.
func (r *Recorder) Deactivate() {
	r.mu.Lock()
	sess := r.session
	r.mu.Unlock()
	if sess != nil {
		r.finish(sess, Outcome{Kind: Abandoned})
	}
}

// Close deactivates the recorder for good; later Activate calls are ignored.
func (r *Recorder) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.Deactivate()
}

func (r *Recorder) current(sess *session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session == sess
}

func (r *Recorder) handle(sess *session, ev monitor.Event) monitor.Disposition {
	r.mu.Lock()
	live := r.session == sess && r.status == Recording
	bounds := r.bounds
	r.mu.Unlock()
	if !live {
		return monitor.Ignore
	}

	switch ev.Kind {
	case monitor.KeyDown:
		return r.handleKey(sess, ev.Key)
	case monitor.MouseUp, monitor.RightMouseUp:
		if ev.Pos.In(bounds) {
			return monitor.Ignore
		}
		r.finish(sess, Outcome{Kind: Cancelled})
		return monitor.PassThrough
	}
	return monitor.Ignore
}

func (r *Recorder) handleKey(sess *session, ev shortcut.KeyEvent) monitor.Disposition {
	// Repeats and modifier-only presses on the way to a chord.
	if ev.Repeat || ev.Key == "" {
		return monitor.Consume
	}

	if ev.IsBare() {
		switch ev.Key {
		case shortcut.KeyTab:
			r.finish(sess, Outcome{Kind: Cancelled})
			return monitor.PassThrough
		case shortcut.KeyEscape:
			r.finish(sess, Outcome{Kind: Cancelled})
			return monitor.Consume
		case shortcut.KeyDelete, shortcut.KeyForwardDelete:
			r.commit(sess, shortcut.Shortcut{})
			return monitor.Consume
		}
	}

	candidate, ok := shortcut.Classify(ev)
	if !ok {
		logging.Logger.Debug("Key press rejected", "name", r.name, "session", sess.id,
			"key", ev.Key, "modifiers", ev.Modifiers.String())
		r.reject()
		return monitor.Consume
	}

	if cur, ok := r.deps.Store.Get(r.name); ok && cur == candidate {
		r.finish(sess, Outcome{Kind: Unchanged, Shortcut: candidate})
		return monitor.Consume
	}

	res := r.resolve(candidate)
	logging.Logger.Debug("Shortcut candidate resolved", "name", r.name, "session", sess.id,
		"shortcut", candidate.String(), "verdict", res.Verdict.String())

	alerts := r.deps.Alerts
	switch res.Verdict {
	case conflict.ClaimedByMenu:
		r.await(sess, func() bool {
			if alerts != nil {
				alerts.MenuConflict(candidate, res.Item)
			}
			return false
		})
		return monitor.Consume
	case conflict.ClaimedByName:
		r.await(sess, func() bool {
			if alerts != nil {
				alerts.NameConflict(candidate, store.Name(res.Name))
			}
			return false
		})
		return monitor.Consume
	case conflict.Disallowed:
		r.await(sess, func() bool {
			if alerts != nil {
				alerts.Disallowed(candidate)
			}
			return false
		})
		return monitor.Consume
	case conflict.ReservedBySystem:
		useAnyway, resumed := r.await(sess, func() bool {
			return alerts != nil && alerts.ReservedBySystem(candidate, res.Owner)
		})
		if !resumed || !useAnyway {
			return monitor.Consume
		}
		logging.Logger.Info("System shortcut override accepted", "name", r.name, "session", sess.id,
			"shortcut", candidate.String(), "owner", res.Owner)
	}

	r.commit(sess, candidate)
	return monitor.Consume
}

func (r *Recorder) resolve(candidate shortcut.Shortcut) conflict.Result {
	rv := *r.deps.Resolver
	if rv.Assigned == nil {
		rv.Assigned = func(s shortcut.Shortcut) (string, bool) {
			n, ok := r.deps.Store.Lookup(s, r.name)
			return string(n), ok
		}
	}
	return rv.Resolve(candidate)
}

// await moves to AwaitingAlertDismissal while show runs. The suppression
// flag stays asserted throughout. resumed is false when the session was torn
// down while the alert was up.
func (r *Recorder) await(sess *session, show func() bool) (answer, resumed bool) {
	r.mu.Lock()
	if r.session != sess {
		r.mu.Unlock()
		return false, false
	}
	r.status = AwaitingAlertDismissal
	r.mu.Unlock()

	answer = show()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != sess {
		logging.Logger.Debug("Alert answered after recording ended", "name", r.name, "session", sess.id)
		return false, false
	}
	r.status = Recording
	return answer, true
}

func (r *Recorder) commit(sess *session, s shortcut.Shortcut) {
	if !r.current(sess) {
		return
	}
	if err := r.deps.Store.Set(r.name, s); err != nil {
		logging.Logger.Error("Failed to commit shortcut", "name", r.name, "session", sess.id,
			"shortcut", s.String(), "error", err)
		r.reject()
		r.finish(sess, Outcome{Kind: Failed, Shortcut: s, Err: err})
		return
	}
	if s.IsZero() {
		r.finish(sess, Outcome{Kind: Cleared})
		return
	}
	r.finish(sess, Outcome{Kind: Committed, Shortcut: s})
}

func (r *Recorder) reject() {
	if r.deps.Cue != nil {
		r.deps.Cue.Reject()
	}
}

// finish is the single exit path: it stops the monitor, releases the flag,
// publishes the inactive signal and the outcome. Only the first call for a
// session has any effect.
func (r *Recorder) finish(sess *session, out Outcome) {
	r.mu.Lock()
	if r.session != sess {
		r.mu.Unlock()
		return
	}
	r.session = nil
	r.status = Idle
	mon, release := sess.monitor, sess.release
	r.mu.Unlock()

	if mon != nil {
		mon.Stop()
	}
	if release != nil {
		release()
	}

	out.Name = r.name
	out.Session = sess.id
	logging.Logger.Info("Shortcut recording ended", "name", r.name, "session", sess.id,
		"outcome", out.Kind.String(), "shortcut", out.Shortcut.String())
	r.activity.Publish(false)
	r.finished.Publish(out)
}
