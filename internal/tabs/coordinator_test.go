package tabs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintbrowser/flint/internal/engine"
	"github.com/flintbrowser/flint/internal/engine/enginetest"
	"github.com/flintbrowser/flint/internal/homepage"
	"github.com/flintbrowser/flint/internal/logging"
)

// chromeRecorder captures coordinator-driven chrome updates.
type chromeRecorder struct {
	address      string
	addressSets  int
	canGoBack    bool
	canGoForward bool
	titles       map[int]string
	icons        map[int]string
	inserted     []int
	removed      []int
	selected     []int

	onRemove func(index int)
}

func newChromeRecorder() *chromeRecorder {
	return &chromeRecorder{titles: map[int]string{}, icons: map[int]string{}}
}

func (r *chromeRecorder) InsertTab(index int, _ engine.View) { r.inserted = append(r.inserted, index) }
func (r *chromeRecorder) RemoveTab(index int) {
	r.removed = append(r.removed, index)
	if r.onRemove != nil {
		r.onRemove(index)
	}
}
func (r *chromeRecorder) SelectTab(index int)        { r.selected = append(r.selected, index) }
func (r *chromeRecorder) SetAddress(url string)      { r.address = url; r.addressSets++ }
func (r *chromeRecorder) SetNavState(back, fwd bool) { r.canGoBack, r.canGoForward = back, fwd }
func (r *chromeRecorder) SetTabTitle(index int, title string) {
	r.titles[index] = title
}
func (r *chromeRecorder) SetTabIcon(index int, iconURI string) {
	r.icons[index] = iconURI
}

func newTestCoordinator(t *testing.T) (*Coordinator, *enginetest.Factory, *chromeRecorder, *bool) {
	t.Helper()
	factory := enginetest.NewFactory()
	chrome := newChromeRecorder()
	quit := false
	c := NewCoordinator(factory, chrome, func() { quit = true }, 30, logging.NewDefault())
	return c, factory, chrome, &quit
}

func fakeView(t *testing.T, tab *Tab) *enginetest.View {
	t.Helper()
	v, ok := tab.View().(*enginetest.View)
	require.True(t, ok)
	return v
}

func TestAddTabActivates(t *testing.T) {
	c, _, chrome, _ := newTestCoordinator(t)

	tab := c.AddTab(homepage.URL)

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 0, c.Active())
	assert.Same(t, tab, c.ActiveTab())
	assert.Equal(t, []int{0}, chrome.inserted)
	assert.Contains(t, chrome.selected, 0)
	assert.Equal(t, homepage.URL, chrome.address)
}

func TestAddTabDefaultsToHome(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t)

	tab := c.AddTab("")
	assert.Equal(t, homepage.URL, tab.URL())
	assert.NotEmpty(t, fakeView(t, tab).HTML)
}

func TestCloseSoleTabQuits(t *testing.T) {
	c, _, _, quit := newTestCoordinator(t)
	tab := c.AddTab(homepage.URL)

	c.CloseTab(0)

	assert.True(t, *quit, "closing the last tab must quit the application")
	assert.Equal(t, 1, c.Count(), "the collection never reaches zero tabs")
	assert.False(t, fakeView(t, tab).Destroyed)
}

func TestCloseActiveTabSelectsRightNeighbor(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t)
	c.AddTab("https://a.example")
	middle := c.AddTab("https://b.example")
	c.AddTab("https://c.example")
	c.Activate(1)

	c.CloseTab(1)

	assert.True(t, fakeView(t, middle).Destroyed)
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 1, c.Active())
	assert.Equal(t, "https://c.example", c.ActiveTab().URL())
}

func TestCloseDetachesChromeBeforeDestroy(t *testing.T) {
	c, _, chrome, _ := newTestCoordinator(t)
	c.AddTab("https://a.example")
	doomed := c.AddTab("https://b.example")

	chrome.onRemove = func(index int) {
		assert.Equal(t, 1, index)
		assert.False(t, fakeView(t, doomed).Destroyed,
			"the page must leave the chrome while its view is still alive")
	}
	c.CloseTab(1)

	assert.True(t, fakeView(t, doomed).Destroyed)
	assert.Equal(t, []int{1}, chrome.removed)
}

func TestCloseLastTabSelectsNewLast(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t)
	c.AddTab("https://a.example")
	c.AddTab("https://b.example")
	c.Activate(1)

	c.CloseTab(1)

	assert.Equal(t, 0, c.Active())
	assert.Equal(t, "https://a.example", c.ActiveTab().URL())
}

func TestCloseBeforeActiveKeepsActiveTab(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t)
	c.AddTab("https://a.example")
	c.AddTab("https://b.example")
	active := c.AddTab("https://c.example")

	c.CloseTab(0)

	assert.Same(t, active, c.ActiveTab())
	assert.Equal(t, 1, c.Active())
}

func TestTitleTruncation(t *testing.T) {
	c, _, chrome, _ := newTestCoordinator(t)
	tab := c.AddTab("https://x.test")

	long := strings.Repeat("t", 40)
	fakeView(t, tab).SetTitle(long)

	assert.Equal(t, strings.Repeat("t", 27)+"...", chrome.titles[0])

	fakeView(t, tab).SetTitle("short")
	assert.Equal(t, "short", chrome.titles[0])
}

func TestTitleFallsBackToURL(t *testing.T) {
	c, _, chrome, _ := newTestCoordinator(t)
	c.AddTab("https://x.test")

	// Load finished without the page publishing a title.
	assert.Equal(t, "https://x.test", chrome.titles[0])
}

func TestInactiveTabDoesNotTouchSharedChrome(t *testing.T) {
	c, _, chrome, _ := newTestCoordinator(t)
	background := c.AddTab("https://a.example")
	c.AddTab("https://b.example")

	sets := chrome.addressSets
	fakeView(t, background).SetTitle("background page")
	fakeView(t, background).SetIcon("https://a.example/favicon.ico")

	assert.Equal(t, sets, chrome.addressSets, "background events must not move the address bar")
	assert.Equal(t, "background page", chrome.titles[0])
	assert.Equal(t, "https://a.example/favicon.ico", chrome.icons[0])
	assert.Equal(t, "https://a.example/favicon.ico", background.IconURI())
}

func TestActivateRefreshesChrome(t *testing.T) {
	c, _, chrome, _ := newTestCoordinator(t)
	c.AddTab("https://a.example")
	c.AddTab("https://b.example")

	c.Activate(0)

	assert.Equal(t, "https://a.example", chrome.address)
	assert.Contains(t, chrome.selected, 0)
}

func TestBackForwardNavState(t *testing.T) {
	c, _, chrome, _ := newTestCoordinator(t)
	tab := c.AddTab("https://a.example")
	tab.Load("https://b.example")

	assert.True(t, chrome.canGoBack)
	assert.False(t, chrome.canGoForward)

	c.Back()
	assert.Equal(t, "https://a.example", chrome.address)
	assert.False(t, chrome.canGoBack)
	assert.True(t, chrome.canGoForward)

	c.Forward()
	assert.Equal(t, "https://b.example", chrome.address)
}

func TestURLsSnapshotOrderAndHomeSentinel(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t)
	c.AddTab("https://a.example")
	c.AddTab(homepage.URL)
	c.tabs = append(c.tabs, &Tab{view: enginetest.NewFactory().NewView()}) // never navigated

	assert.Equal(t, []string{"https://a.example", homepage.URL, homepage.URL}, c.URLs())
}

func TestReset(t *testing.T) {
	c, _, chrome, _ := newTestCoordinator(t)
	first := c.AddTab("https://a.example")
	second := c.AddTab("https://b.example")

	tabs := []*Tab{first, second}
	chrome.onRemove = func(index int) {
		assert.False(t, fakeView(t, tabs[index]).Destroyed)
	}
	c.Reset()

	assert.Equal(t, 0, c.Count())
	assert.True(t, fakeView(t, first).Destroyed)
	assert.True(t, fakeView(t, second).Destroyed)
	assert.Equal(t, []int{1, 0}, chrome.removed)
}

func TestReloadActive(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t)
	tab := c.AddTab("https://a.example")

	c.Reload()
	assert.Equal(t, 1, fakeView(t, tab).Reloads)
}
