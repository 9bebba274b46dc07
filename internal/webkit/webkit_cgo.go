//go:build webkitgtk

package webkit

/*
#cgo pkg-config: webkit2gtk-4.1 gtk+-3.0
#include <stdlib.h>
#include <gtk/gtk.h>
#include <webkit2/webkit2.h>

extern void goDispatchIdle(gulong handle);
extern void goViewTitleChanged(gulong id);
extern void goViewURIChanged(gulong id);
extern void goViewFaviconChanged(gulong id);
extern void goViewLoadFinished(gulong id, int ok);
extern void goDownloadStarted(gulong ctxID, void* dl);
extern int goDownloadDecide(gulong id, char* suggested);
extern void goDownloadFailed(gulong id, char* message);
extern void goDownloadFinished(gulong id);

static gboolean flint_idle_cb(gpointer data) {
	goDispatchIdle((gulong)data);
	return FALSE;
}

static void flint_idle_add(gulong handle) {
	g_idle_add(flint_idle_cb, (gpointer)handle);
}

static gulong flint_connect(gpointer instance, const char* signal, GCallback handler, gulong id) {
	return g_signal_connect_data(instance, signal, handler, (gpointer)id, NULL, 0);
}

static void flint_notify_title(GObject* obj, GParamSpec* pspec, gpointer user_data) {
	(void)obj; (void)pspec;
	goViewTitleChanged((gulong)user_data);
}

static void flint_notify_uri(GObject* obj, GParamSpec* pspec, gpointer user_data) {
	(void)obj; (void)pspec;
	goViewURIChanged((gulong)user_data);
}

static void flint_notify_favicon(GObject* obj, GParamSpec* pspec, gpointer user_data) {
	(void)obj; (void)pspec;
	goViewFaviconChanged((gulong)user_data);
}

static void flint_load_changed(WebKitWebView* wv, WebKitLoadEvent event, gpointer user_data) {
	(void)wv;
	if (event == WEBKIT_LOAD_FINISHED) {
		goViewLoadFinished((gulong)user_data, 1);
	}
}

static gboolean flint_load_failed(WebKitWebView* wv, WebKitLoadEvent event, gchar* uri, GError* error, gpointer user_data) {
	(void)wv; (void)event; (void)uri; (void)error;
	goViewLoadFinished((gulong)user_data, 0);
	return FALSE;
}

static void flint_download_started(WebKitWebContext* ctx, WebKitDownload* dl, gpointer user_data) {
	(void)ctx;
	goDownloadStarted((gulong)user_data, dl);
}

static gboolean flint_decide_destination(WebKitDownload* dl, gchar* suggested, gpointer user_data) {
	(void)dl;
	return goDownloadDecide((gulong)user_data, (char*)suggested) ? TRUE : FALSE;
}

static void flint_download_failed(WebKitDownload* dl, GError* error, gpointer user_data) {
	(void)dl;
	goDownloadFailed((gulong)user_data, error ? error->message : NULL);
}

static void flint_download_finished(WebKitDownload* dl, gpointer user_data) {
	(void)dl;
	goDownloadFinished((gulong)user_data);
}

static WebKitWebsiteDataManager* flint_make_wdm(const gchar* data, const gchar* cache) {
	return webkit_website_data_manager_new(
		"base-data-directory", data,
		"base-cache-directory", cache,
		NULL);
}

static WebKitWebView* flint_as_webview(GtkWidget* w) { return WEBKIT_WEB_VIEW(w); }
*/
import "C"

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/engine"
	"github.com/flintbrowser/flint/internal/logging"
)

var (
	registryMu sync.Mutex
	nextID     atomic.Uint64
	views      = map[uint64]*View{}
	downloads  = map[uint64]*Download{}
	factories  = map[uint64]*Factory{}
	idleFns    = map[uint64]func(){}
)

func newID() uint64 { return nextID.Add(1) }

// Factory owns the shared web context: persistent cookie and website data
// storage, the favicon database and the download-started hook.
type Factory struct {
	cfg *config.Config
	log *logging.Logger

	id      uint64
	ctx     *C.WebKitWebContext
	profile *Profile
	initErr error
}

// NewFactory initializes GTK and the web context. Initialization failures
// are deferred to Available so the launcher reports them uniformly.
func NewFactory(cfg *config.Config, log *logging.Logger) *Factory {
	f := &Factory{cfg: cfg, log: log.Named("webkit"), id: newID()}
	f.profile = &Profile{factory: f}

	if C.gtk_init_check(nil, nil) == 0 {
		f.initErr = fmt.Errorf("%w: no display", engine.ErrUnavailable)
		return f
	}

	dataDir := filepath.Join(cfg.Data.Dir, "webkit", "data")
	cacheDir := filepath.Join(cfg.Data.Dir, "webkit", "cache")
	_ = os.MkdirAll(dataDir, 0o755)
	_ = os.MkdirAll(cacheDir, 0o755)

	cData := C.CString(dataDir)
	cCache := C.CString(cacheDir)
	defer C.free(unsafe.Pointer(cData))
	defer C.free(unsafe.Pointer(cCache))

	wdm := C.flint_make_wdm((*C.gchar)(cData), (*C.gchar)(cCache))
	if wdm == nil {
		f.initErr = fmt.Errorf("%w: website data manager", engine.ErrUnavailable)
		return f
	}
	f.ctx = C.webkit_web_context_new_with_website_data_manager(wdm)
	if f.ctx == nil {
		f.initErr = fmt.Errorf("%w: web context", engine.ErrUnavailable)
		return f
	}

	if cm := C.webkit_web_context_get_cookie_manager(f.ctx); cm != nil {
		cookiePath := C.CString(filepath.Join(dataDir, "cookies.sqlite"))
		C.webkit_cookie_manager_set_persistent_storage(cm, (*C.gchar)(cookiePath), C.WEBKIT_COOKIE_PERSISTENT_STORAGE_SQLITE)
		C.free(unsafe.Pointer(cookiePath))
	}

	favDir := C.CString(filepath.Join(cacheDir, "favicons"))
	C.webkit_web_context_set_favicon_database_directory(f.ctx, (*C.gchar)(favDir))
	C.free(unsafe.Pointer(favDir))

	registryMu.Lock()
	factories[f.id] = f
	registryMu.Unlock()

	sig := C.CString("download-started")
	C.flint_connect(C.gpointer(unsafe.Pointer(f.ctx)), sig, C.GCallback(C.flint_download_started), C.gulong(f.id))
	C.free(unsafe.Pointer(sig))

	f.log.Info("engine initialized", zap.String("data_dir", dataDir))
	return f
}

func (f *Factory) Available() error { return f.initErr }

// NewView creates a web view on the shared context, wires its notifications
// and installs the profile's current scripts.
func (f *Factory) NewView() engine.View {
	widget := C.webkit_web_view_new_with_context(f.ctx)
	wv := C.flint_as_webview(widget)

	// Own a reference independent of any container, so removing the widget
	// from the notebook does not finalize it before Destroy runs.
	C.g_object_ref_sink(C.gpointer(unsafe.Pointer(widget)))

	if settings := C.webkit_web_view_get_settings(wv); settings != nil {
		C.webkit_settings_set_enable_developer_extras(settings, C.gboolean(1))
	}

	v := &View{
		factory: f,
		id:      newID(),
		widget:  widget,
		wv:      wv,
	}
	registryMu.Lock()
	views[v.id] = v
	registryMu.Unlock()

	v.connect("notify::title", C.GCallback(C.flint_notify_title))
	v.connect("notify::uri", C.GCallback(C.flint_notify_uri))
	v.connect("notify::favicon", C.GCallback(C.flint_notify_favicon))
	v.connect("load-changed", C.GCallback(C.flint_load_changed))
	v.connect("load-failed", C.GCallback(C.flint_load_failed))

	f.profile.attach(v)
	return v
}

func (f *Factory) DefaultProfile() engine.Profile { return f.profile }

// Dispatch schedules fn on the GTK main loop. Safe from any goroutine.
func (f *Factory) Dispatch(fn func()) {
	handle := newID()
	registryMu.Lock()
	idleFns[handle] = fn
	registryMu.Unlock()
	C.flint_idle_add(C.gulong(handle))
}

// Profile carries the injected user scripts. WebKit scopes user scripts to
// each view's content manager, so the profile replays its registry onto
// every attached view and onto new views as they are created.
type Profile struct {
	factory *Factory

	scripts    []profileScript
	views      []*View
	onDownload func(engine.Download)
}

type profileScript struct {
	name    string
	source  string
	options engine.ScriptOptions
}

func (p *Profile) InstallScript(name, source string, o engine.ScriptOptions) error {
	p.scripts = append(p.scripts, profileScript{name: name, source: source, options: o})
	p.replayAll()
	return nil
}

func (p *Profile) RemoveScript(name string) {
	kept := p.scripts[:0]
	for _, s := range p.scripts {
		if s.name != name {
			kept = append(kept, s)
		}
	}
	p.scripts = kept
	p.replayAll()
}

func (p *Profile) OnDownload(fn func(engine.Download)) { p.onDownload = fn }

func (p *Profile) attach(v *View) {
	p.views = append(p.views, v)
	p.replay(v)
}

func (p *Profile) detach(v *View) {
	kept := p.views[:0]
	for _, other := range p.views {
		if other != v {
			kept = append(kept, other)
		}
	}
	p.views = kept
}

func (p *Profile) replayAll() {
	for _, v := range p.views {
		p.replay(v)
	}
}

func (p *Profile) replay(v *View) {
	ucm := C.webkit_web_view_get_user_content_manager(v.wv)
	if ucm == nil {
		return
	}
	C.webkit_user_content_manager_remove_all_scripts(ucm)
	for _, s := range p.scripts {
		frames := C.WebKitUserContentInjectedFrames(C.WEBKIT_USER_CONTENT_INJECT_TOP_FRAME)
		if s.options.AllFrames {
			frames = C.WEBKIT_USER_CONTENT_INJECT_ALL_FRAMES
		}
		when := C.WebKitUserScriptInjectionTime(C.WEBKIT_USER_SCRIPT_INJECT_AT_DOCUMENT_END)
		if s.options.AtDocumentCreation {
			when = C.WEBKIT_USER_SCRIPT_INJECT_AT_DOCUMENT_START
		}
		src := C.CString(s.source)
		var script *C.WebKitUserScript
		if s.options.IsolatedWorld {
			world := C.CString("flint")
			script = C.webkit_user_script_new_for_world((*C.gchar)(src), frames, when, (*C.gchar)(world), nil, nil)
			C.free(unsafe.Pointer(world))
		} else {
			script = C.webkit_user_script_new((*C.gchar)(src), frames, when, nil, nil)
		}
		C.free(unsafe.Pointer(src))
		if script != nil {
			C.webkit_user_content_manager_add_script(ucm, script)
			C.webkit_user_script_unref(script)
		}
	}
}

// View implements engine.View over one WebKitWebView widget.
type View struct {
	factory *Factory
	id      uint64
	widget  *C.GtkWidget
	wv      *C.WebKitWebView

	destroyed bool

	onTitle func(string)
	onURL   func(string)
	onIcon  func(string)
	onLoad  func(bool)
}

func (v *View) connect(signal string, handler C.GCallback) {
	sig := C.CString(signal)
	C.flint_connect(C.gpointer(unsafe.Pointer(v.wv)), sig, handler, C.gulong(v.id))
	C.free(unsafe.Pointer(sig))
}

func (v *View) Load(url string) {
	curl := C.CString(url)
	defer C.free(unsafe.Pointer(curl))
	C.webkit_web_view_load_uri(v.wv, (*C.gchar)(curl))
}

func (v *View) LoadHTML(html, baseURL string) {
	chtml := C.CString(html)
	cbase := C.CString(baseURL)
	defer C.free(unsafe.Pointer(chtml))
	defer C.free(unsafe.Pointer(cbase))
	C.webkit_web_view_load_html(v.wv, (*C.gchar)(chtml), (*C.gchar)(cbase))
}

func (v *View) URL() string {
	uri := C.webkit_web_view_get_uri(v.wv)
	if uri == nil {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(uri)))
}

func (v *View) Title() string {
	title := C.webkit_web_view_get_title(v.wv)
	if title == nil {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(title)))
}

func (v *View) IconURI() string {
	db := C.webkit_web_context_get_favicon_database(v.factory.ctx)
	if db == nil {
		return ""
	}
	uri := C.webkit_web_view_get_uri(v.wv)
	if uri == nil {
		return ""
	}
	cicon := C.webkit_favicon_database_get_favicon_uri(db, uri)
	if cicon == nil {
		return ""
	}
	defer C.g_free(C.gpointer(unsafe.Pointer(cicon)))
	return C.GoString((*C.char)(unsafe.Pointer(cicon)))
}

func (v *View) GoBack()    { C.webkit_web_view_go_back(v.wv) }
func (v *View) GoForward() { C.webkit_web_view_go_forward(v.wv) }
func (v *View) Reload()    { C.webkit_web_view_reload(v.wv) }

func (v *View) CanGoBack() bool    { return C.webkit_web_view_can_go_back(v.wv) != 0 }
func (v *View) CanGoForward() bool { return C.webkit_web_view_can_go_forward(v.wv) != 0 }

func (v *View) RunScript(js string) {
	cjs := C.CString(js)
	defer C.free(unsafe.Pointer(cjs))
	C.webkit_web_view_run_javascript(v.wv, (*C.gchar)(cjs), nil, nil, nil)
}

func (v *View) OnTitleChanged(fn func(string)) { v.onTitle = fn }
func (v *View) OnURLChanged(fn func(string))   { v.onURL = fn }
func (v *View) OnIconChanged(fn func(string))  { v.onIcon = fn }
func (v *View) OnLoadFinished(fn func(bool))   { v.onLoad = fn }

func (v *View) Profile() engine.Profile { return v.factory.profile }

func (v *View) Native() uintptr { return uintptr(unsafe.Pointer(v.widget)) }

func (v *View) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.factory.profile.detach(v)
	registryMu.Lock()
	delete(views, v.id)
	registryMu.Unlock()
	// The notebook may have released the widget already; only tear it down
	// while it still has a parent, then drop our own reference.
	if C.gtk_widget_get_parent(v.widget) != nil {
		C.gtk_widget_destroy(v.widget)
	}
	C.g_object_unref(C.gpointer(unsafe.Pointer(v.widget)))
}

// Download implements engine.Download over one WebKitDownload. It lives for
// the duration of the transfer; the finished signal unregisters it.
type Download struct {
	factory *Factory
	id      uint64
	dl      *C.WebKitDownload

	suggested  string
	accepted   bool
	failErr    error
	onFinished func(error)
}

func (d *Download) SuggestedFilename() string { return d.suggested }

func (d *Download) AcceptTo(path string) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	// Paths with spaces or fragment characters need proper URI escaping.
	curi := C.g_filename_to_uri((*C.gchar)(cpath), nil, nil)
	if curi == nil {
		return fmt.Errorf("webkit: destination %q is not an absolute path", path)
	}
	defer C.g_free(C.gpointer(unsafe.Pointer(curi)))
	C.webkit_download_set_destination(d.dl, curi)
	d.accepted = true
	return nil
}

func (d *Download) Cancel() { C.webkit_download_cancel(d.dl) }

func (d *Download) OnFinished(fn func(error)) { d.onFinished = fn }
