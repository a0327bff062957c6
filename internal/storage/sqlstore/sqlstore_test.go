package sqlstore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortcut-recorder/internal/shortcut"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shortcuts.db")
	s, err := Open(path, false)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestLoadNeverStored(t *testing.T) {
	s, _ := openTemp(t)

	_, found, err := s.Load("toggle")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveUpsertsAndReopens(t *testing.T) {
	s, path := openTemp(t)

	require.NoError(t, s.Save("toggle", shortcut.MustParse("ctrl+shift+c")))
	require.NoError(t, s.Save("toggle", shortcut.MustParse("super+f5")))
	require.NoError(t, s.Save("palette", shortcut.Shortcut{}))
	require.NoError(t, s.Close())

	reopened, err := Open(path, false)
	require.NoError(t, err)
	defer reopened.Close()

	got, found, err := reopened.Load("toggle")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, shortcut.MustParse("super+f5"), got)

	cleared, found, err := reopened.Load("palette")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, cleared.IsZero())

	rows, err := reopened.All()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "palette", rows[0].Name)
	assert.Equal(t, "toggle", rows[1].Name)
	assert.False(t, rows[1].UpdatedAt.IsZero())
}

func TestInMemory(t *testing.T) {
	s, err := Open(":memory:", false)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save("toggle", shortcut.MustParse("alt+f4")))
	got, found, err := s.Load("toggle")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, shortcut.MustParse("alt+f4"), got)
}

func TestWithRetryStopsOnOtherErrors(t *testing.T) {
	calls := 0
	boom := errors.New("boom")

	err := withRetry(func() error { calls++; return boom }, 3)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
