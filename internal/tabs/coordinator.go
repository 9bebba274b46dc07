package tabs

import (
	"go.uber.org/zap"

	"github.com/flintbrowser/flint/internal/engine"
	"github.com/flintbrowser/flint/internal/homepage"
	"github.com/flintbrowser/flint/internal/logging"
)

// Chrome is the typed listener the coordinator drives. The window
// implementation keeps the tab strip, address bar and navigation buttons in
// step with the collection through these calls and nothing else.
type Chrome interface {
	InsertTab(index int, v engine.View)
	RemoveTab(index int)
	SelectTab(index int)
	SetAddress(url string)
	SetNavState(canGoBack, canGoForward bool)
	SetTabTitle(index int, title string)
	SetTabIcon(index int, iconURI string)
}

// Coordinator owns the ordered tab collection and the active index.
// All methods run on the UI loop.
type Coordinator struct {
	factory    engine.Factory
	chrome     Chrome
	quit       func()
	titleWidth int
	log        *logging.Logger

	tabs   []*Tab
	active int
}

// NewCoordinator creates an empty coordinator. quit is invoked instead of
// closing the last remaining tab.
func NewCoordinator(factory engine.Factory, chrome Chrome, quit func(), titleWidth int, log *logging.Logger) *Coordinator {
	if titleWidth <= 3 {
		titleWidth = 30
	}
	return &Coordinator{
		factory:    factory,
		chrome:     chrome,
		quit:       quit,
		titleWidth: titleWidth,
		log:        log.Named("tabs"),
	}
}

// AddTab opens a new tab on url, appends it to the collection and makes it
// active.
func (c *Coordinator) AddTab(url string) *Tab {
	if url == "" {
		url = homepage.URL
	}

	tab := &Tab{view: c.factory.NewView()}
	c.tabs = append(c.tabs, tab)
	index := len(c.tabs) - 1
	c.chrome.InsertTab(index, tab.view)

	sub := &subscription{c: c, tab: tab}
	tab.view.OnTitleChanged(sub.onTitle)
	tab.view.OnURLChanged(sub.onURL)
	tab.view.OnIconChanged(sub.onIcon)
	tab.view.OnLoadFinished(sub.onLoadFinished)

	tab.Load(url)
	c.Activate(index)

	c.log.Debug("tab opened", zap.Int("index", index), zap.String("url", url))
	return tab
}

// CloseTab removes the tab at index. Closing the sole remaining tab quits
// the application instead; the window never hosts zero tabs.
func (c *Coordinator) CloseTab(index int) {
	if index < 0 || index >= len(c.tabs) {
		return
	}
	if len(c.tabs) == 1 {
		c.log.Debug("last tab closed, quitting")
		c.quit()
		return
	}

	// Detach the page from the chrome before destroying the view. GTK
	// releases a notebook child on page removal, so the reverse order would
	// tear down the widget twice and remove the neighbor that shifted into
	// the closed slot.
	closing := c.tabs[index]
	c.chrome.RemoveTab(index)
	c.tabs = append(c.tabs[:index], c.tabs[index+1:]...)
	closing.view.Destroy()

	// The next tab to the right inherits the closed tab's index; fall back
	// to the new last tab when the closed one was last.
	if index < c.active {
		c.active--
	}
	if c.active >= len(c.tabs) {
		c.active = len(c.tabs) - 1
	}
	c.Activate(c.active)
}

// Activate makes the tab at index active and refreshes the address bar and
// navigation controls from its record.
func (c *Coordinator) Activate(index int) {
	if index < 0 || index >= len(c.tabs) {
		return
	}
	c.active = index
	tab := c.tabs[index]
	c.chrome.SelectTab(index)
	c.chrome.SetAddress(tab.url)
	c.chrome.SetNavState(tab.canGoBack, tab.canGoForward)
}

// ActiveTab returns the currently active tab, or nil for an empty
// collection (only seen mid-restore).
func (c *Coordinator) ActiveTab() *Tab {
	if len(c.tabs) == 0 {
		return nil
	}
	return c.tabs[c.active]
}

// Active returns the active index.
func (c *Coordinator) Active() int { return c.active }

// Count returns the number of open tabs.
func (c *Coordinator) Count() int { return len(c.tabs) }

// URLs snapshots every open tab's URL in left-to-right order. A tab that
// never reported a URL is recorded as the homepage.
func (c *Coordinator) URLs() []string {
	urls := make([]string, len(c.tabs))
	for i, tab := range c.tabs {
		if tab.url == "" {
			urls[i] = homepage.URL
			continue
		}
		urls[i] = tab.url
	}
	return urls
}

// Each calls fn for every open tab in order.
func (c *Coordinator) Each(fn func(*Tab)) {
	for _, tab := range c.tabs {
		fn(tab)
	}
}

// Reset destroys every tab and empties the collection. Only session restore
// uses this, immediately before repopulating from the snapshot.
func (c *Coordinator) Reset() {
	for i := len(c.tabs) - 1; i >= 0; i-- {
		c.chrome.RemoveTab(i)
		c.tabs[i].view.Destroy()
	}
	c.tabs = nil
	c.active = 0
}

// Back navigates the active tab backwards.
func (c *Coordinator) Back() {
	if tab := c.ActiveTab(); tab != nil {
		tab.view.GoBack()
	}
}

// Forward navigates the active tab forwards.
func (c *Coordinator) Forward() {
	if tab := c.ActiveTab(); tab != nil {
		tab.view.GoForward()
	}
}

// Reload reloads the active tab.
func (c *Coordinator) Reload() {
	if tab := c.ActiveTab(); tab != nil {
		tab.view.Reload()
	}
}

// Home loads the built-in start page in the active tab.
func (c *Coordinator) Home() {
	c.LoadActive(homepage.URL)
}

// LoadActive navigates the active tab to url.
func (c *Coordinator) LoadActive(url string) {
	if tab := c.ActiveTab(); tab != nil {
		tab.Load(url)
	}
}

func (c *Coordinator) indexOf(tab *Tab) int {
	for i, t := range c.tabs {
		if t == tab {
			return i
		}
	}
	return -1
}

func (c *Coordinator) isActive(tab *Tab) bool {
	return len(c.tabs) > 0 && c.tabs[c.active] == tab
}

// handleTitle bounds a tab handle label. Titles longer than width render as
// the leading width-3 characters plus an ellipsis marker.
func (c *Coordinator) handleTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= c.titleWidth {
		return title
	}
	return string(runes[:c.titleWidth-3]) + "..."
}

// subscription wires one view's notifications back to the coordinator with
// a stable reference to the owning record.
type subscription struct {
	c   *Coordinator
	tab *Tab
}

func (s *subscription) onTitle(title string) {
	s.tab.title = title
	index := s.c.indexOf(s.tab)
	if index < 0 {
		return
	}
	s.c.chrome.SetTabTitle(index, s.c.handleTitle(s.tab.Title()))
	if s.c.isActive(s.tab) {
		s.c.chrome.SetAddress(s.tab.url)
	}
}

func (s *subscription) onURL(url string) {
	s.tab.url = url
	s.tab.refreshNavState()
	if s.c.isActive(s.tab) {
		s.c.chrome.SetAddress(url)
		s.c.chrome.SetNavState(s.tab.canGoBack, s.tab.canGoForward)
	}
}

func (s *subscription) onIcon(iconURI string) {
	s.tab.iconURI = iconURI
	if index := s.c.indexOf(s.tab); index >= 0 {
		s.c.chrome.SetTabIcon(index, iconURI)
	}
}

func (s *subscription) onLoadFinished(ok bool) {
	s.tab.refreshNavState()
	index := s.c.indexOf(s.tab)
	if index >= 0 {
		s.c.chrome.SetTabTitle(index, s.c.handleTitle(s.tab.Title()))
	}
	if s.c.isActive(s.tab) {
		s.c.chrome.SetNavState(s.tab.canGoBack, s.tab.canGoForward)
	}
	if !ok {
		s.c.log.Debug("load failed", zap.String("url", s.tab.url))
	}
}
