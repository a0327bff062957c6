// Package tui hosts a shortcut recorder in the terminal.
package tui

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/menu"
	"shortcut-recorder/internal/monitor"
	"shortcut-recorder/internal/recorder"
	"shortcut-recorder/internal/shortcut"
	"shortcut-recorder/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(1, 0)

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 2)

	rejectStyle = fieldStyle.
			BorderForeground(lipgloss.Color("1"))

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("3")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(1, 0)
)

type alertMsg struct {
	text     string
	reserved bool
	reply    chan bool
}

type rejectMsg struct{}

type finishedMsg struct {
	out recorder.Outcome
}

// Model records one shortcut name. The recorder runs on its own loop so its
// blocking alerts can be answered from the terminal.
type Model struct {
	name   store.Name
	store  *store.Store
	events *monitor.Source
	rec    *recorder.Recorder

	work      chan func()
	msgs      chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once

	alert    *alertMsg
	rejected bool
	outcome  *recorder.Outcome
}

// New creates a model recording name. deps.Alerts is replaced by terminal
// prompts; deps.Cue, if set, plays in addition to the on-screen cue.
func New(name store.Name, deps recorder.Deps) *Model {
	if deps.Events == nil {
		deps.Events = monitor.NewSource()
	}
	m := &Model{
		name:   name,
		store:  deps.Store,
		events: deps.Events,
		work:   make(chan func(), 64),
		msgs:   make(chan tea.Msg, 8),
		done:   make(chan struct{}),
	}
	deps.Alerts = &prompts{m: m}
	deps.Cue = &cue{m: m, extra: deps.Cue}
	// Activate already runs on the loop, so enabling follows arming directly
	// and no key can be dispatched in between.
	m.rec = recorder.New(name, deps, recorder.WithRightMouse(false))
	m.rec.OnFinish(func(out recorder.Outcome) { m.post(finishedMsg{out: out}) })
	go m.loop()
	return m
}

// Outcome returns how recording ended, or nil while it runs.
func (m *Model) Outcome() *recorder.Outcome { return m.outcome }

// Close tears the recorder down. Safe to call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.rec.Close()
		close(m.done)
	})
}

func (m *Model) loop() {
	for {
		select {
		case fn := <-m.work:
			fn()
		case <-m.done:
			return
		}
	}
}

func (m *Model) enqueue(fn func()) {
	select {
	case m.work <- fn:
	case <-m.done:
	}
}

func (m *Model) post(msg tea.Msg) bool {
	select {
	case m.msgs <- msg:
		return true
	case <-m.done:
		return false
	}
}

func (m *Model) wait() tea.Msg {
	select {
	case msg := <-m.msgs:
		return msg
	case <-m.done:
		return nil
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.enqueue(m.rec.Activate)
	return m.wait
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case alertMsg:
		m.alert = &msg
		return m, m.wait
	case rejectMsg:
		m.rejected = true
		return m, m.wait
	case finishedMsg:
		m.alert = nil
		m.outcome = &msg.out
		return m, tea.Quit
	case tea.BlurMsg:
		m.enqueue(m.rec.Deactivate)
		return m, nil
	case tea.KeyMsg:
		if m.alert != nil {
			m.answer(msg)
			return m, nil
		}
		ev, ok := keyEvent(msg)
		if !ok {
			return m, nil
		}
		m.rejected = false
		m.enqueue(func() {
			m.events.Dispatch(monitor.Event{Kind: monitor.KeyDown, Key: ev})
		})
	}
	return m, nil
}

func (m *Model) answer(msg tea.KeyMsg) {
	useAnyway := false
	switch msg.String() {
	case "enter", "esc", " ":
	case "u":
		if !m.alert.reserved {
			return
		}
		useAnyway = true
	default:
		return
	}
	m.alert.reply <- useAnyway
	m.alert = nil
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.Tf("tui_prompt", m.name)) + "\n")

	if m.outcome != nil {
		b.WriteString(outcomeText(*m.outcome) + "\n")
		return b.String()
	}

	current := i18n.T("tui_none")
	if sc, ok := m.store.Get(m.name); ok {
		current = sc.Display()
	}
	field := fieldStyle
	if m.rejected {
		field = rejectStyle
	}
	b.WriteString(field.Render(i18n.Tf("tui_current", current)) + "\n")

	if m.alert != nil {
		hint := i18n.T("tui_alert")
		if m.alert.reserved {
			hint = i18n.T("tui_reserved")
		}
		b.WriteString(alertStyle.Render(m.alert.text+"\n"+hint) + "\n")
		return b.String()
	}
	b.WriteString(helpStyle.Render(i18n.T("tui_hint")))
	return b.String()
}

func outcomeText(out recorder.Outcome) string {
	switch out.Kind {
	case recorder.Committed, recorder.Unchanged:
		return i18n.Tf("tui_committed", out.Shortcut.Display())
	case recorder.Cleared:
		return i18n.T("tui_cleared")
	case recorder.Failed:
		return i18n.Tf("tui_failed", out.Err)
	default:
		return i18n.T("tui_cancelled")
	}
}

// prompts shows alerts inside the program and blocks the recorder loop
// until the user answers.
type prompts struct {
	m *Model
}

func (p *prompts) ask(text string, reserved bool) bool {
	reply := make(chan bool, 1)
	if !p.m.post(alertMsg{text: text, reserved: reserved, reply: reply}) {
		return false
	}
	select {
	case answer := <-reply:
		return answer
	case <-p.m.done:
		return false
	}
}

func (p *prompts) MenuConflict(s shortcut.Shortcut, item menu.Item) {
	p.ask(i18n.Tf("alert_menu_conflict", s.Display(), item.Title), false)
}

func (p *prompts) NameConflict(s shortcut.Shortcut, other store.Name) {
	p.ask(i18n.Tf("alert_name_conflict", s.Display(), other), false)
}

func (p *prompts) Disallowed(s shortcut.Shortcut) {
	p.ask(i18n.Tf("alert_disallowed", s.Display()), false)
}

func (p *prompts) ReservedBySystem(s shortcut.Shortcut, owner string) bool {
	if owner == "" {
		return p.ask(i18n.Tf("alert_reserved_unknown", s.Display()), true)
	}
	return p.ask(i18n.Tf("alert_reserved", s.Display(), owner), true)
}

type cue struct {
	m     *Model
	extra recorder.Cue
}

func (c *cue) Reject() {
	if c.extra != nil {
		c.extra.Reject()
	}
	select {
	case c.m.msgs <- rejectMsg{}:
	default:
	}
}
