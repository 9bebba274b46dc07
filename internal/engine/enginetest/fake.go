// Package enginetest provides an in-memory engine fake for package tests.
// Events fire synchronously from the calls that cause them, which matches
// the single-threaded delivery of the real engine closely enough for the
// shell's logic.
package enginetest

import (
	"fmt"
	"sync/atomic"

	"github.com/flintbrowser/flint/internal/engine"
)

// Factory implements engine.Factory over fake views.
type Factory struct {
	Unavailable bool

	profile *Profile
	views   []*View
	nextID  atomic.Int64
}

// NewFactory returns a fake factory with a fresh default profile.
func NewFactory() *Factory {
	return &Factory{profile: NewProfile()}
}

func (f *Factory) Available() error {
	if f.Unavailable {
		return engine.ErrUnavailable
	}
	return nil
}

func (f *Factory) NewView() engine.View {
	v := &View{profile: f.profile, id: f.nextID.Add(1)}
	f.views = append(f.views, v)
	return v
}

func (f *Factory) DefaultProfile() engine.Profile { return f.profile }

// Dispatch runs fn immediately; the fake has no event loop.
func (f *Factory) Dispatch(fn func()) { fn() }

// Views returns every view the factory created, including destroyed ones.
func (f *Factory) Views() []*View { return f.views }

// View implements engine.View with scripted navigation.
type View struct {
	profile *Profile
	id      int64

	url     string
	title   string
	iconURI string

	// history positions for CanGoBack/CanGoForward
	history []string
	pos     int

	Destroyed  bool
	RanScripts []string
	Reloads    int
	HTML       string

	onTitle func(string)
	onURL   func(string)
	onIcon  func(string)
	onLoad  func(bool)
}

func (v *View) Load(url string) {
	v.navigate(url)
	v.fireLoadFinished(true)
}

func (v *View) LoadHTML(html, baseURL string) {
	v.HTML = html
	v.navigate(baseURL)
	v.fireLoadFinished(true)
}

func (v *View) navigate(url string) {
	if v.pos < len(v.history) {
		v.history = v.history[:v.pos]
	}
	v.history = append(v.history, url)
	v.pos = len(v.history)
	v.setURL(url)
}

func (v *View) setURL(url string) {
	v.url = url
	if v.onURL != nil {
		v.onURL(url)
	}
}

func (v *View) URL() string     { return v.url }
func (v *View) Title() string   { return v.title }
func (v *View) IconURI() string { return v.iconURI }

func (v *View) GoBack() {
	if !v.CanGoBack() {
		return
	}
	v.pos--
	v.setURL(v.history[v.pos-1])
}

func (v *View) GoForward() {
	if !v.CanGoForward() {
		return
	}
	v.pos++
	v.setURL(v.history[v.pos-1])
}

func (v *View) Reload() {
	v.Reloads++
	v.fireLoadFinished(true)
}

func (v *View) CanGoBack() bool    { return v.pos > 1 }
func (v *View) CanGoForward() bool { return v.pos < len(v.history) }

func (v *View) RunScript(js string) { v.RanScripts = append(v.RanScripts, js) }

func (v *View) OnTitleChanged(fn func(string)) { v.onTitle = fn }
func (v *View) OnURLChanged(fn func(string))   { v.onURL = fn }
func (v *View) OnIconChanged(fn func(string))  { v.onIcon = fn }
func (v *View) OnLoadFinished(fn func(bool))   { v.onLoad = fn }

func (v *View) Profile() engine.Profile { return v.profile }
func (v *View) Native() uintptr         { return uintptr(v.id) }
func (v *View) Destroy()                { v.Destroyed = true }

// SetTitle simulates the page publishing a title.
func (v *View) SetTitle(title string) {
	v.title = title
	if v.onTitle != nil {
		v.onTitle(title)
	}
}

// SetIcon simulates a favicon notification.
func (v *View) SetIcon(uri string) {
	v.iconURI = uri
	if v.onIcon != nil {
		v.onIcon(uri)
	}
}

func (v *View) fireLoadFinished(ok bool) {
	if v.onLoad != nil {
		v.onLoad(ok)
	}
}

// FailLoad simulates a navigation the engine reports as failed.
func (v *View) FailLoad() { v.fireLoadFinished(false) }

// InstalledScript is one entry in the fake profile registry.
type InstalledScript struct {
	Name    string
	Source  string
	Options engine.ScriptOptions
}

// Profile implements engine.Profile with an ordered script registry.
type Profile struct {
	Scripts    []InstalledScript
	InstallErr error

	onDownload func(engine.Download)
}

func NewProfile() *Profile { return &Profile{} }

func (p *Profile) InstallScript(name, source string, o engine.ScriptOptions) error {
	if p.InstallErr != nil {
		return p.InstallErr
	}
	p.Scripts = append(p.Scripts, InstalledScript{Name: name, Source: source, Options: o})
	return nil
}

func (p *Profile) RemoveScript(name string) {
	kept := p.Scripts[:0]
	for _, s := range p.Scripts {
		if s.Name != name {
			kept = append(kept, s)
		}
	}
	p.Scripts = kept
}

func (p *Profile) OnDownload(fn func(engine.Download)) { p.onDownload = fn }

// Script returns the installed script with the given name.
func (p *Profile) Script(name string) (InstalledScript, bool) {
	for _, s := range p.Scripts {
		if s.Name == name {
			return s, true
		}
	}
	return InstalledScript{}, false
}

// StartDownload delivers d to the registered download handler.
func (p *Profile) StartDownload(d engine.Download) error {
	if p.onDownload == nil {
		return fmt.Errorf("no download handler registered")
	}
	p.onDownload(d)
	return nil
}

// Download implements engine.Download for tests.
type Download struct {
	Suggested    string
	AcceptedPath string
	Cancelled    bool
	AcceptErr    error

	onFinished func(error)
}

func (d *Download) SuggestedFilename() string { return d.Suggested }

func (d *Download) AcceptTo(path string) error {
	if d.AcceptErr != nil {
		return d.AcceptErr
	}
	d.AcceptedPath = path
	return nil
}

func (d *Download) Cancel() { d.Cancelled = true }

func (d *Download) OnFinished(fn func(error)) { d.onFinished = fn }

// Finish simulates transfer completion with the given outcome.
func (d *Download) Finish(err error) {
	if d.onFinished != nil {
		d.onFinished(err)
	}
}
