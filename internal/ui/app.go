// Package ui composes the shell: it binds the window surface to the tab
// coordinator, bookmarks, session, styles and downloads managers.
package ui

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/flintbrowser/flint/internal/bookmarks"
	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/downloads"
	"github.com/flintbrowser/flint/internal/engine"
	"github.com/flintbrowser/flint/internal/homepage"
	"github.com/flintbrowser/flint/internal/logging"
	"github.com/flintbrowser/flint/internal/nav"
	"github.com/flintbrowser/flint/internal/session"
	"github.com/flintbrowser/flint/internal/store"
	"github.com/flintbrowser/flint/internal/styles"
	"github.com/flintbrowser/flint/internal/tabs"
)

// Window is the surface the shell drives. The GTK implementation satisfies
// it; tests substitute a recorder.
type Window interface {
	tabs.Chrome

	ChooseSavePath(suggested string) (string, bool)
	ShowDownloads()
	AddDownload(id, label string)
	UpdateDownload(id, label string)

	RefreshBookmarks(list []store.Bookmark)
	SetUserCSS(css string)

	OnAddressEntered(func(string))
	OnBack(func())
	OnForward(func())
	OnReload(func())
	OnHome(func())
	OnNewTab(func())
	OnTabSelected(func(int))
	OnTabClosed(func(int))
	OnBookmarkOpened(func(int))
	OnBookmarkAdded(func())
	OnBookmarkDeleted(func(int))
	OnScriptRun(func(string))
	OnStyleApplied(func(string))
	OnCloseRequested(func())

	Show()
	Run()
	Quit()
}

// panelView exposes the window's downloads widgets as a downloads.Panel.
// The window cannot implement the panel directly: its Show is the window's.
type panelView struct{ win Window }

func (p panelView) Show()                   { p.win.ShowDownloads() }
func (p panelView) Add(id, label string)    { p.win.AddDownload(id, label) }
func (p panelView) Update(id, label string) { p.win.UpdateDownload(id, label) }

// App owns the shell's managers and their wiring.
type App struct {
	cfg     *config.Config
	log     *logging.Logger
	factory engine.Factory
	win     Window

	store      *store.Store
	normalizer *nav.Normalizer
	coord      *tabs.Coordinator
	bookmarks  *bookmarks.Manager
	session    *session.Manager
	styles     *styles.Gateway
	downloads  *downloads.Manager

	quitting bool
}

// New builds the app over an available engine factory and a window.
func New(cfg *config.Config, factory engine.Factory, win Window, log *logging.Logger) (*App, error) {
	st, err := store.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open data store: %w", err)
	}

	a := &App{
		cfg:     cfg,
		log:     log.Named("app"),
		factory: factory,
		win:     win,
		store:   st,
	}
	a.normalizer = nav.New(cfg.Search.Template)
	a.coord = tabs.NewCoordinator(factory, win, a.shutdown, cfg.Tabs.TitleWidth, log)
	a.bookmarks = bookmarks.NewManager(st, bookmarks.ToolbarFunc(win.RefreshBookmarks), log)
	a.session = session.NewManager(a.coord, st, log)
	a.styles = styles.NewGateway(cfg, st, factory, log)
	a.downloads = downloads.NewManager(win, panelView{win}, log)

	a.bind()
	return a, nil
}

func (a *App) bind() {
	w := a.win

	w.OnAddressEntered(func(text string) {
		url, ok := a.normalizer.Normalize(text)
		if !ok {
			return
		}
		a.coord.LoadActive(url)
	})

	w.OnBack(a.coord.Back)
	w.OnForward(a.coord.Forward)
	w.OnReload(a.coord.Reload)
	w.OnHome(a.coord.Home)
	w.OnNewTab(func() { a.coord.AddTab(homepage.URL) })
	w.OnTabSelected(a.coord.Activate)
	w.OnTabClosed(a.coord.CloseTab)

	w.OnBookmarkOpened(func(index int) {
		if b, ok := a.bookmarks.Get(index); ok {
			a.coord.LoadActive(b.URL)
		}
	})
	w.OnBookmarkAdded(func() {
		tab := a.coord.ActiveTab()
		if tab == nil {
			return
		}
		a.bookmarks.Add(bookmarks.NewEntry(tab.Title(), tab.URL()))
	})
	w.OnBookmarkDeleted(a.bookmarks.Delete)

	w.OnScriptRun(func(js string) {
		tab := a.coord.ActiveTab()
		if tab == nil || js == "" {
			return
		}
		tab.View().RunScript(js)
	})
	w.OnStyleApplied(a.applyStyle)

	w.OnCloseRequested(a.shutdown)
}

// Start installs the user stylesheet, wires downloads, opens the initial
// tab, restores the previous session and shows the window. The stylesheet
// goes in before any page loads so every document sees it.
func (a *App) Start() error {
	if err := a.styles.Install(a.factory.DefaultProfile()); err != nil {
		a.log.Warn("user stylesheet not installed", zap.Error(err))
	}
	a.factory.DefaultProfile().OnDownload(a.downloads.HandleRequest)

	a.win.SetUserCSS(a.styles.CSS())
	a.bookmarks.Refresh()

	a.coord.AddTab(homepage.URL)
	a.session.Restore()

	if err := a.styles.Watch(a.onStyleFileChanged); err != nil {
		a.log.Warn("stylesheet watch disabled", zap.Error(err))
	}

	a.win.Show()
	return nil
}

// Run starts the app and blocks on the window's main loop.
func (a *App) Run() error {
	if err := a.Start(); err != nil {
		return err
	}
	a.win.Run()
	return nil
}

// applyStyle persists css, reinstalls the injection script and reloads
// every open tab so the change shows immediately.
func (a *App) applyStyle(css string) {
	a.styles.Set(css)
	if err := a.styles.Install(a.factory.DefaultProfile()); err != nil {
		a.log.Warn("user stylesheet not installed", zap.Error(err))
		return
	}
	a.coord.Each(func(t *tabs.Tab) { t.View().Reload() })
}

// onStyleFileChanged runs on the UI loop after an external edit to the
// stylesheet file.
func (a *App) onStyleFileChanged() {
	a.win.SetUserCSS(a.styles.CSS())
	if err := a.styles.Install(a.factory.DefaultProfile()); err != nil {
		a.log.Warn("user stylesheet not installed", zap.Error(err))
		return
	}
	a.coord.Each(func(t *tabs.Tab) { t.View().Reload() })
}

// shutdown saves state and quits. Reached from the window close button and
// from closing the last tab.
func (a *App) shutdown() {
	if a.quitting {
		return
	}
	a.quitting = true

	a.session.Snapshot()
	a.bookmarks.Flush()
	a.styles.Close()
	a.log.Info("shutting down")
	a.win.Quit()
}
