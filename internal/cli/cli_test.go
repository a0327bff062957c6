package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortcut-recorder/internal/app"
	"shortcut-recorder/internal/config"
	"shortcut-recorder/internal/i18n"
	"shortcut-recorder/internal/notify"
	"shortcut-recorder/internal/shortcut"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ui_language: en
storage: {driver: memory}
shortcuts:
  toggle: ctrl+shift+k
  palette: ""
menu:
  - {id: save, title: Save, binding: ctrl+s}
`), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	a, err := app.New(cfg, app.WithNotifier(notify.New(false)))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestSet(t *testing.T) {
	a := newTestApp(t)

	msg, err := set(a, "palette", "ctrl+alt+p", false)
	require.NoError(t, err)
	assert.Equal(t, "palette: "+shortcut.MustParse("ctrl+alt+p").Display(), msg)

	_, err = set(a, "palette", "ctrl+s", false)
	assert.EqualError(t, err, i18n.Tf("alert_menu_conflict", shortcut.MustParse("ctrl+s").Display(), "Save"))

	_, err = set(a, "nope", "ctrl+alt+p", false)
	assert.EqualError(t, err, i18n.Tf("cli_undeclared", "nope"))

	_, err = set(a, "palette", "ctrl+bogus", false)
	assert.ErrorIs(t, err, shortcut.ErrInvalid)
}

func TestCheck(t *testing.T) {
	a := newTestApp(t)

	msg, ok, err := check(a, "ctrl+alt+p", "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, i18n.Tf("cli_ok", shortcut.MustParse("ctrl+alt+p").Display()), msg)

	_, ok, err = check(a, "ctrl+shift+k", "")
	require.NoError(t, err)
	assert.False(t, ok, "toggle owns it")

	_, ok, err = check(a, "ctrl+shift+k", "toggle")
	require.NoError(t, err)
	assert.True(t, ok, "a name never conflicts with itself")

	msg, ok, _ = check(a, "shift+x", "")
	assert.False(t, ok)
	assert.Equal(t, i18n.Tf("alert_disallowed", shortcut.MustParse("shift+x").Display()), msg)
}

func TestListOutput(t *testing.T) {
	a := newTestApp(t)
	entries := listEntries(a.Store())

	require.Len(t, entries, 2)
	assert.Equal(t, listEntry{Name: "palette", Display: i18n.T("cli_not_set")}, entries[0])
	assert.Equal(t, "toggle", entries[1].Name)
	assert.Equal(t, "ctrl+shift+k", entries[1].Shortcut)
	assert.Equal(t, "ctrl+shift+k", entries[1].Default)

	var table bytes.Buffer
	printTable(&table, entries)
	assert.Contains(t, table.String(), "NAME")
	assert.Contains(t, table.String(), "toggle")

	var js bytes.Buffer
	require.NoError(t, printJSON(&js, entries))
	assert.JSONEq(t, `[
		{"name": "palette", "shortcut": "", "display": "`+i18n.T("cli_not_set")+`", "default": ""},
		{"name": "toggle", "shortcut": "ctrl+shift+k", "display": "`+entries[1].Display+`", "default": "ctrl+shift+k"}
	]`, js.String())
}
