package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/engine"
	"github.com/flintbrowser/flint/internal/engine/enginetest"
	"github.com/flintbrowser/flint/internal/homepage"
	"github.com/flintbrowser/flint/internal/logging"
	"github.com/flintbrowser/flint/internal/store"
	"github.com/flintbrowser/flint/internal/tabs"
)

type nopChrome struct{}

func (nopChrome) InsertTab(int, engine.View) {}
func (nopChrome) RemoveTab(int)              {}
func (nopChrome) SelectTab(int)              {}
func (nopChrome) SetAddress(string)          {}
func (nopChrome) SetNavState(bool, bool)     {}
func (nopChrome) SetTabTitle(int, string)    {}
func (nopChrome) SetTabIcon(int, string)     {}

func newTestManager(t *testing.T) (*Manager, *tabs.Coordinator, *store.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	st, err := store.New(cfg, logging.NewDefault())
	require.NoError(t, err)

	coord := tabs.NewCoordinator(enginetest.NewFactory(), nopChrome{}, func() {}, 30, logging.NewDefault())
	return NewManager(coord, st, logging.NewDefault()), coord, st
}

func TestRestoreReplacesStartupTabs(t *testing.T) {
	m, coord, st := newTestManager(t)
	st.SaveSession(store.Session{Tabs: []string{"https://a.example", homepage.URL}})
	coord.AddTab(homepage.URL)

	restored := m.Restore()

	assert.True(t, restored)
	require.Equal(t, 2, coord.Count())
	assert.Equal(t, []string{"https://a.example", homepage.URL}, coord.URLs())
}

func TestRestoreWithoutSnapshotKeepsCurrentTabs(t *testing.T) {
	m, coord, _ := newTestManager(t)
	coord.AddTab(homepage.URL)

	restored := m.Restore()

	assert.False(t, restored)
	assert.Equal(t, 1, coord.Count())
	assert.Equal(t, []string{homepage.URL}, coord.URLs())
}

func TestSnapshotRoundTrip(t *testing.T) {
	m, coord, st := newTestManager(t)
	coord.AddTab("https://a.example")
	coord.AddTab(homepage.URL)

	m.Snapshot()

	snap := st.LoadSession()
	assert.Equal(t, []string{"https://a.example", homepage.URL}, snap.Tabs)
}
