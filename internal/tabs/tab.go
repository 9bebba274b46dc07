package tabs

import (
	"github.com/flintbrowser/flint/internal/engine"
	"github.com/flintbrowser/flint/internal/homepage"
)

// Tab is one browsing surface. It exclusively owns its engine view and
// caches the view's last reported URL, title and icon so chrome can be
// refreshed without round-tripping to the engine.
type Tab struct {
	view engine.View

	url     string
	title   string
	iconURI string

	canGoBack    bool
	canGoForward bool
}

// View returns the engine view the tab owns.
func (t *Tab) View() engine.View { return t.view }

// URL returns the tab's current URL as last reported by the view.
func (t *Tab) URL() string { return t.url }

// Title returns the tab's current title, falling back to its URL when the
// page published none.
func (t *Tab) Title() string {
	if t.title == "" {
		return t.url
	}
	return t.title
}

// IconURI returns the tab's current favicon reference.
func (t *Tab) IconURI() string { return t.iconURI }

// Load navigates the tab. The homepage sentinel is served from the built-in
// document, never fetched.
func (t *Tab) Load(url string) {
	if homepage.IsHome(url) {
		t.url = homepage.URL
		t.view.LoadHTML(homepage.Document, homepage.URL)
		return
	}
	t.view.Load(url)
}

// refreshNavState re-reads history availability from the view.
func (t *Tab) refreshNavState() {
	t.canGoBack = t.view.CanGoBack()
	t.canGoForward = t.view.CanGoForward()
}
