// Package session snapshots the open tab set on exit and restores it on the
// next launch.
package session

import (
	"go.uber.org/zap"

	"github.com/flintbrowser/flint/internal/logging"
	"github.com/flintbrowser/flint/internal/store"
	"github.com/flintbrowser/flint/internal/tabs"
)

// Manager binds the tab coordinator to the persisted session snapshot.
type Manager struct {
	coord *tabs.Coordinator
	store *store.Store
	log   *logging.Logger
}

// NewManager returns a session manager over the given coordinator and store.
func NewManager(coord *tabs.Coordinator, st *store.Store, log *logging.Logger) *Manager {
	return &Manager{coord: coord, store: st, log: log.Named("session")}
}

// Restore replaces the current tab set with the persisted snapshot, opening
// one tab per saved URL in order. A missing, unreadable or empty snapshot
// leaves the current tabs in place.
func (m *Manager) Restore() bool {
	snap := m.store.LoadSession()
	if len(snap.Tabs) == 0 {
		m.log.Debug("no session to restore")
		return false
	}

	m.coord.Reset()
	for _, url := range snap.Tabs {
		m.coord.AddTab(url)
	}
	m.log.Info("session restored", zap.Int("tabs", len(snap.Tabs)))
	return true
}

// Snapshot persists the current tab set.
func (m *Manager) Snapshot() {
	urls := m.coord.URLs()
	m.store.SaveSession(store.Session{Tabs: urls})
	m.log.Debug("session saved", zap.Int("tabs", len(urls)))
}
