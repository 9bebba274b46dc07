// Package bookmarks manages the persistent bookmark list and keeps the
// toolbar rendering of it current.
package bookmarks

import (
	"go.uber.org/zap"

	"github.com/flintbrowser/flint/internal/logging"
	"github.com/flintbrowser/flint/internal/store"
)

// Toolbar renders the bookmark list. The window implementation rebuilds its
// bookmark buttons from each Refresh call.
type Toolbar interface {
	Refresh(list []store.Bookmark)
}

// ToolbarFunc adapts a function to the Toolbar interface.
type ToolbarFunc func(list []store.Bookmark)

func (f ToolbarFunc) Refresh(list []store.Bookmark) { f(list) }

// Manager owns the in-memory bookmark list and writes every mutation
// through to the store.
type Manager struct {
	store   *store.Store
	toolbar Toolbar
	log     *logging.Logger

	list []store.Bookmark
}

// NewManager loads the persisted list and returns a manager over it. A
// missing or unreadable file yields an empty list.
func NewManager(st *store.Store, toolbar Toolbar, log *logging.Logger) *Manager {
	m := &Manager{
		store:   st,
		toolbar: toolbar,
		log:     log.Named("bookmarks"),
	}
	m.list = st.LoadBookmarks()
	return m
}

// NewEntry builds a bookmark for url. An empty title defaults to the URL
// itself so every toolbar button has a label.
func NewEntry(title, url string) store.Bookmark {
	if title == "" {
		title = url
	}
	return store.Bookmark{Title: title, URL: url}
}

// Add appends a bookmark and persists the list. Duplicates are allowed.
func (m *Manager) Add(b store.Bookmark) {
	m.list = append(m.list, b)
	m.store.SaveBookmarks(m.list)
	m.toolbar.Refresh(m.List())
	m.log.Debug("bookmark added", zap.String("url", b.URL))
}

// Delete removes the bookmark at index and persists the list. An
// out-of-range index is ignored.
func (m *Manager) Delete(index int) {
	if index < 0 || index >= len(m.list) {
		return
	}
	removed := m.list[index]
	m.list = append(m.list[:index], m.list[index+1:]...)
	m.store.SaveBookmarks(m.list)
	m.toolbar.Refresh(m.List())
	m.log.Debug("bookmark removed", zap.String("url", removed.URL))
}

// Get returns the bookmark at index.
func (m *Manager) Get(index int) (store.Bookmark, bool) {
	if index < 0 || index >= len(m.list) {
		return store.Bookmark{}, false
	}
	return m.list[index], true
}

// List returns a copy of the current bookmark list in order.
func (m *Manager) List() []store.Bookmark {
	out := make([]store.Bookmark, len(m.list))
	copy(out, m.list)
	return out
}

// Count returns the number of bookmarks.
func (m *Manager) Count() int { return len(m.list) }

// Refresh pushes the current list to the toolbar.
func (m *Manager) Refresh() { m.toolbar.Refresh(m.List()) }

// Flush rewrites the persisted list from memory.
func (m *Manager) Flush() { m.store.SaveBookmarks(m.list) }
