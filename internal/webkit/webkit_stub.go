//go:build !webkitgtk

package webkit

import (
	"errors"

	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/engine"
	"github.com/flintbrowser/flint/internal/logging"
	"github.com/flintbrowser/flint/internal/store"
)

// Factory reports the engine missing when compiled without the webkitgtk
// tag. The launcher checks Available before building any window, so the
// remaining methods are never reached.
type Factory struct{}

// NewFactory returns the unavailable factory.
func NewFactory(_ *config.Config, _ *logging.Logger) *Factory { return &Factory{} }

func (f *Factory) Available() error {
	return engine.ErrUnavailable
}

func (f *Factory) NewView() engine.View           { panic("webkit: engine unavailable") }
func (f *Factory) DefaultProfile() engine.Profile { panic("webkit: engine unavailable") }
func (f *Factory) Dispatch(fn func())             { fn() }

// NewWindow always fails in this build.
func NewWindow(_ *Factory, _ *config.Config, _ *logging.Logger) (*Window, error) {
	return nil, errors.New("webkit: built without webkitgtk support")
}

// Window satisfies the shell's window surface so non-tagged builds still
// type-check. No instance is ever constructed.
type Window struct{}

func (w *Window) InsertTab(int, engine.View) {}
func (w *Window) RemoveTab(int)              {}
func (w *Window) SelectTab(int)              {}
func (w *Window) SetAddress(string)          {}
func (w *Window) SetNavState(bool, bool)     {}
func (w *Window) SetTabTitle(int, string)    {}
func (w *Window) SetTabIcon(int, string)     {}

func (w *Window) ChooseSavePath(string) (string, bool) { return "", false }
func (w *Window) ShowDownloads()                       {}
func (w *Window) AddDownload(string, string)           {}
func (w *Window) UpdateDownload(string, string)        {}

func (w *Window) RefreshBookmarks([]store.Bookmark) {}
func (w *Window) SetUserCSS(string)                 {}

func (w *Window) OnAddressEntered(func(string)) {}
func (w *Window) OnBack(func())                 {}
func (w *Window) OnForward(func())              {}
func (w *Window) OnReload(func())               {}
func (w *Window) OnHome(func())                 {}
func (w *Window) OnNewTab(func())               {}
func (w *Window) OnTabSelected(func(int))       {}
func (w *Window) OnTabClosed(func(int))         {}
func (w *Window) OnBookmarkOpened(func(int))    {}
func (w *Window) OnBookmarkAdded(func())        {}
func (w *Window) OnBookmarkDeleted(func(int))   {}
func (w *Window) OnScriptRun(func(string))      {}
func (w *Window) OnStyleApplied(func(string))   {}
func (w *Window) OnCloseRequested(func())       {}

func (w *Window) Show() {}
func (w *Window) Run()  {}
func (w *Window) Quit() {}
