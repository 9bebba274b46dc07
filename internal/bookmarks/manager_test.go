package bookmarks

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/logging"
	"github.com/flintbrowser/flint/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *config.Config, *[][]store.Bookmark) {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	st, err := store.New(cfg, logging.NewDefault())
	require.NoError(t, err)

	var refreshes [][]store.Bookmark
	toolbar := ToolbarFunc(func(list []store.Bookmark) {
		refreshes = append(refreshes, list)
	})
	return NewManager(st, toolbar, logging.NewDefault()), cfg, &refreshes
}

func TestNewEntryDefaultsTitleToURL(t *testing.T) {
	b := NewEntry("", "https://example.com")
	assert.Equal(t, "https://example.com", b.Title)

	b = NewEntry("Example", "https://example.com")
	assert.Equal(t, "Example", b.Title)
}

func TestAddPersistsAndRefreshes(t *testing.T) {
	m, cfg, refreshes := newTestManager(t)

	m.Add(NewEntry("Example", "https://example.com"))

	assert.Equal(t, 1, m.Count())
	require.Len(t, *refreshes, 1)
	assert.Equal(t, "Example", (*refreshes)[0][0].Title)

	st, err := store.New(cfg, logging.NewDefault())
	require.NoError(t, err)
	assert.Len(t, st.LoadBookmarks(), 1)
}

func TestAddAllowsDuplicates(t *testing.T) {
	m, _, _ := newTestManager(t)

	b := NewEntry("Example", "https://example.com")
	m.Add(b)
	m.Add(b)

	assert.Equal(t, 2, m.Count())
}

func TestDeletePersistsEmptyList(t *testing.T) {
	m, cfg, _ := newTestManager(t)
	m.Add(NewEntry("Example", "https://example.com"))

	m.Delete(0)

	assert.Equal(t, 0, m.Count())
	data, err := os.ReadFile(cfg.BookmarksPath())
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestDeleteOutOfRangeIsSilent(t *testing.T) {
	m, _, refreshes := newTestManager(t)
	m.Add(NewEntry("Example", "https://example.com"))
	before := len(*refreshes)

	m.Delete(-1)
	m.Delete(5)

	assert.Equal(t, 1, m.Count())
	assert.Len(t, *refreshes, before)
}

func TestListIsACopy(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Add(NewEntry("Example", "https://example.com"))

	list := m.List()
	list[0].Title = "mutated"

	got, ok := m.Get(0)
	require.True(t, ok)
	assert.Equal(t, "Example", got.Title)
}

func TestNewManagerLoadsPersistedList(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	st, err := store.New(cfg, logging.NewDefault())
	require.NoError(t, err)
	st.SaveBookmarks([]store.Bookmark{{Title: "Saved", URL: "https://saved.example"}})

	m := NewManager(st, ToolbarFunc(func([]store.Bookmark) {}), logging.NewDefault())
	assert.Equal(t, 1, m.Count())
	got, ok := m.Get(0)
	require.True(t, ok)
	assert.Equal(t, "https://saved.example", got.URL)
}
