package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/recorder"
	"shortcut-recorder/internal/shortcut"
)

type sent struct{ title, message string }

func fake(enabled bool) (*Notifier, *[]sent, *int) {
	var msgs []sent
	beeps := 0
	n := &Notifier{
		enabled: enabled,
		beep:    func(float64, int) error { beeps++; return nil },
		send: func(title, message, _ string) error {
			msgs = append(msgs, sent{title, message})
			return nil
		},
	}
	return n, &msgs, &beeps
}

func TestRejectAlwaysBeeps(t *testing.T) {
	n, msgs, beeps := fake(false)

	n.Reject()

	assert.Equal(t, 1, *beeps)
	assert.Empty(t, *msgs)
}

func TestFinished(t *testing.T) {
	defer i18n.SetLanguage(i18n.GetLanguage())
	i18n.SetLanguage(i18n.EN)
	n, msgs, _ := fake(true)
	s := shortcut.MustParse("super+shift+c")

	n.Finished(recorder.Outcome{Name: "toggle", Kind: recorder.Committed, Shortcut: s})
	n.Finished(recorder.Outcome{Name: "toggle", Kind: recorder.Unchanged, Shortcut: s})
	n.Finished(recorder.Outcome{Name: "toggle", Kind: recorder.Cancelled})
	n.Finished(recorder.Outcome{Name: "toggle", Kind: recorder.Cleared})
	n.Finished(recorder.Outcome{Name: "toggle", Kind: recorder.Failed, Err: errors.New("disk full")})

	assert.Equal(t, []sent{
		{"Shortcuts: Shortcut saved", "toggle: " + s.Display()},
		{"Shortcuts: Shortcut cleared", "toggle"},
		{"Shortcuts: Error", "disk full"},
	}, *msgs)
}

func TestDisabled(t *testing.T) {
	n, msgs, _ := fake(true)
	n.SetEnabled(false)

	n.Error("boom")

	assert.Empty(t, *msgs)
}

func TestInfo(t *testing.T) {
	defer i18n.SetLanguage(i18n.GetLanguage())
	i18n.SetLanguage(i18n.EN)
	n, msgs, _ := fake(true)

	n.Info(i18n.Tf("notify_fired", "toggle"))

	assert.Equal(t, []sent{{"Shortcuts: “toggle” triggered", ""}}, *msgs)
}
