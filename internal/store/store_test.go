package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/logging"
)

func newTestStore(t *testing.T) (*Store, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	st, err := New(cfg, logging.NewDefault())
	require.NoError(t, err)
	return st, cfg
}

func TestBookmarksRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)

	saved := []Bookmark{
		{Title: "Example", URL: "https://example.com"},
		{Title: "Example", URL: "https://example.com"}, // duplicates are allowed
		{Title: "https://no.title", URL: "https://no.title"},
	}
	st.SaveBookmarks(saved)

	loaded := st.LoadBookmarks()
	assert.Equal(t, saved, loaded)
}

func TestBookmarksMissingFile(t *testing.T) {
	st, _ := newTestStore(t)
	assert.Empty(t, st.LoadBookmarks())
}

func TestBookmarksCorruptFile(t *testing.T) {
	st, cfg := newTestStore(t)
	require.NoError(t, os.WriteFile(cfg.BookmarksPath(), []byte("{not json"), 0o644))
	assert.Empty(t, st.LoadBookmarks())
}

func TestSaveEmptyBookmarksWritesArray(t *testing.T) {
	st, cfg := newTestStore(t)

	st.SaveBookmarks(nil)

	data, err := os.ReadFile(cfg.BookmarksPath())
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestSessionRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)

	st.SaveSession(Session{Tabs: []string{"https://a.example", "about:home"}})
	snap := st.LoadSession()
	assert.Equal(t, []string{"https://a.example", "about:home"}, snap.Tabs)
}

func TestSessionSaveLoadIdempotent(t *testing.T) {
	st, cfg := newTestStore(t)

	st.SaveSession(Session{Tabs: []string{"https://a.example", "about:home"}})
	first, err := os.ReadFile(cfg.SessionPath())
	require.NoError(t, err)

	st.SaveSession(st.LoadSession())
	second, err := os.ReadFile(cfg.SessionPath())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSessionMissingAndCorrupt(t *testing.T) {
	st, cfg := newTestStore(t)
	assert.Empty(t, st.LoadSession().Tabs)

	require.NoError(t, os.WriteFile(cfg.SessionPath(), []byte(`{"tabs": "oops"}`), 0o644))
	assert.Empty(t, st.LoadSession().Tabs)
}

func TestUserCSS(t *testing.T) {
	st, _ := newTestStore(t)

	_, ok := st.LoadUserCSS()
	assert.False(t, ok)

	st.SaveUserCSS("body { color: red }")
	css, ok := st.LoadUserCSS()
	assert.True(t, ok)
	assert.Equal(t, "body { color: red }", css)
}

func TestNewCreatesDataDir(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = filepath.Join(t.TempDir(), "nested", "dir")

	_, err := New(cfg, logging.NewDefault())
	require.NoError(t, err)

	info, err := os.Stat(cfg.Data.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
