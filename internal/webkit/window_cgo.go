//go:build webkitgtk

package webkit

/*
#cgo pkg-config: webkit2gtk-4.1 gtk+-3.0
#include <stdlib.h>
#include <gtk/gtk.h>

extern void goWindowButton(gulong packed);
extern void goWindowTabSelected(gulong id, int page);
extern void goWindowTabCloseClicked(gulong id, void* button);
extern void goWindowBookmarkClicked(gulong id, void* widget, int button);
extern void goWindowAddressActivated(gulong id);
extern int goWindowCloseRequested(gulong id);

static gulong flint_win_connect(gpointer instance, const char* signal, GCallback handler, gulong data) {
	return g_signal_connect_data(instance, signal, handler, (gpointer)data, NULL, 0);
}

static void flint_btn_clicked(GtkButton* b, gpointer user_data) {
	(void)b;
	goWindowButton((gulong)user_data);
}

static void flint_tab_close_clicked(GtkButton* b, gpointer user_data) {
	goWindowTabCloseClicked((gulong)user_data, b);
}

static void flint_switch_page(GtkNotebook* nb, GtkWidget* page, guint num, gpointer user_data) {
	(void)nb; (void)page;
	goWindowTabSelected((gulong)user_data, (int)num);
}

static void flint_address_activate(GtkEntry* e, gpointer user_data) {
	(void)e;
	goWindowAddressActivated((gulong)user_data);
}

static gboolean flint_bookmark_press(GtkWidget* w, GdkEventButton* ev, gpointer user_data) {
	goWindowBookmarkClicked((gulong)user_data, w, (int)ev->button);
	return TRUE;
}

static gboolean flint_window_delete(GtkWidget* w, GdkEvent* ev, gpointer user_data) {
	(void)w; (void)ev;
	return goWindowCloseRequested((gulong)user_data) ? TRUE : FALSE;
}

static void flint_destroy_child(GtkWidget* child, gpointer data) {
	(void)data;
	gtk_widget_destroy(child);
}

static void flint_container_clear(GtkContainer* c) {
	gtk_container_foreach(c, flint_destroy_child, NULL);
}

static char* flint_textview_text(GtkTextView* tv) {
	GtkTextBuffer* buf = gtk_text_view_get_buffer(tv);
	GtkTextIter start, end;
	gtk_text_buffer_get_bounds(buf, &start, &end);
	return gtk_text_buffer_get_text(buf, &start, &end, FALSE);
}

static void flint_textview_set(GtkTextView* tv, const char* text) {
	GtkTextBuffer* buf = gtk_text_view_get_buffer(tv);
	gtk_text_buffer_set_text(buf, text, -1);
}

static GtkWidget* flint_icon_button(const char* icon) {
	return gtk_button_new_from_icon_name(icon, GTK_ICON_SIZE_SMALL_TOOLBAR);
}

static char* flint_save_dialog(GtkWindow* parent, const char* suggested) {
	GtkWidget* dlg = gtk_file_chooser_dialog_new("Save File", parent,
		GTK_FILE_CHOOSER_ACTION_SAVE,
		"_Cancel", GTK_RESPONSE_CANCEL,
		"_Save", GTK_RESPONSE_ACCEPT,
		NULL);
	gtk_file_chooser_set_do_overwrite_confirmation(GTK_FILE_CHOOSER(dlg), TRUE);
	if (suggested && *suggested) {
		gtk_file_chooser_set_current_name(GTK_FILE_CHOOSER(dlg), suggested);
	}
	char* path = NULL;
	if (gtk_dialog_run(GTK_DIALOG(dlg)) == GTK_RESPONSE_ACCEPT) {
		path = gtk_file_chooser_get_filename(GTK_FILE_CHOOSER(dlg));
	}
	gtk_widget_destroy(dlg);
	return path;
}
*/
import "C"

import (
	"unsafe"

	"github.com/flintbrowser/flint/internal/config"
	"github.com/flintbrowser/flint/internal/engine"
	"github.com/flintbrowser/flint/internal/logging"
	"github.com/flintbrowser/flint/internal/store"
)

// Toolbar button codes, packed into signal user data next to the window id.
const (
	btnBack = iota + 1
	btnForward
	btnReload
	btnHome
	btnNewTab
	btnAddBookmark
	btnConsole
	btnRunScript
	btnApplyStyle
)

const buttonCodeBits = 8

var windows = map[uint64]*Window{}

type tabHandle struct {
	child *C.GtkWidget
	label *C.GtkWidget
	close *C.GtkWidget
}

// Window is the GTK shell: toolbar, bookmarks bar, tab notebook and the
// bottom pane holding the dev console and the downloads list.
type Window struct {
	cfg *config.Config
	log *logging.Logger
	id  uint64

	win         *C.GtkWidget
	notebook    *C.GtkNotebook
	address     *C.GtkEntry
	backBtn     *C.GtkWidget
	forwardBtn  *C.GtkWidget
	bookmarkBar *C.GtkWidget
	bottomPane  *C.GtkWidget
	bottomTabs  *C.GtkNotebook
	jsView      *C.GtkTextView
	cssView     *C.GtkTextView
	dlList      *C.GtkWidget

	tabs         []tabHandle
	bookmarkBtns []*C.GtkWidget
	dlRows       map[string]*C.GtkWidget
	muteSelect   bool

	onAddressEntered  func(string)
	onBack            func()
	onForward         func()
	onReload          func()
	onHome            func()
	onNewTab          func()
	onTabSelected     func(int)
	onTabClosed       func(int)
	onBookmarkOpened  func(int)
	onBookmarkAdded   func()
	onBookmarkDeleted func(int)
	onScriptRun       func(string)
	onStyleApplied    func(string)
	onCloseRequested  func()
}

// NewWindow builds the shell window. The factory must have initialized
// successfully first.
func NewWindow(f *Factory, cfg *config.Config, log *logging.Logger) (*Window, error) {
	if err := f.Available(); err != nil {
		return nil, err
	}

	w := &Window{
		cfg:    cfg,
		log:    log.Named("window"),
		id:     newID(),
		dlRows: map[string]*C.GtkWidget{},
	}
	registryMu.Lock()
	windows[w.id] = w
	registryMu.Unlock()

	w.win = C.gtk_window_new(C.GTK_WINDOW_TOPLEVEL)
	C.gtk_window_set_title(asWindow(w.win), cstr("Flint"))
	C.gtk_window_set_default_size(asWindow(w.win), 1200, 800)
	w.connectWin(w.win, "delete-event", C.GCallback(C.flint_window_delete), C.gulong(w.id))

	vbox := C.gtk_box_new(C.GTK_ORIENTATION_VERTICAL, 0)
	C.gtk_container_add(asContainer(w.win), vbox)

	w.buildToolbar(vbox)
	w.buildBookmarkBar(vbox)
	w.buildBody(vbox)

	return w, nil
}

func (w *Window) buildToolbar(vbox *C.GtkWidget) {
	bar := C.gtk_box_new(C.GTK_ORIENTATION_HORIZONTAL, 4)
	C.gtk_container_set_border_width(asContainer(bar), 4)
	C.gtk_box_pack_start(asBox(vbox), bar, 0, 0, 0)

	w.backBtn = w.toolButton(bar, "go-previous-symbolic", btnBack)
	w.forwardBtn = w.toolButton(bar, "go-next-symbolic", btnForward)
	w.toolButton(bar, "view-refresh-symbolic", btnReload)
	w.toolButton(bar, "go-home-symbolic", btnHome)

	entry := C.gtk_entry_new()
	w.address = asEntry(entry)
	C.gtk_entry_set_placeholder_text(w.address, cstr("Enter URL or search"))
	C.gtk_box_pack_start(asBox(bar), entry, 1, 1, 0)
	w.connectWin(entry, "activate", C.GCallback(C.flint_address_activate), C.gulong(w.id))

	w.toolButton(bar, "tab-new-symbolic", btnNewTab)
	w.toolButton(bar, "starred-symbolic", btnAddBookmark)
	w.toolButton(bar, "utilities-terminal-symbolic", btnConsole)
}

func (w *Window) buildBookmarkBar(vbox *C.GtkWidget) {
	w.bookmarkBar = C.gtk_box_new(C.GTK_ORIENTATION_HORIZONTAL, 2)
	C.gtk_container_set_border_width(asContainer(w.bookmarkBar), 2)
	C.gtk_box_pack_start(asBox(vbox), w.bookmarkBar, 0, 0, 0)
}

func (w *Window) buildBody(vbox *C.GtkWidget) {
	paned := C.gtk_paned_new(C.GTK_ORIENTATION_VERTICAL)
	C.gtk_box_pack_start(asBox(vbox), paned, 1, 1, 0)

	nb := C.gtk_notebook_new()
	w.notebook = asNotebook(nb)
	C.gtk_notebook_set_scrollable(w.notebook, 1)
	C.gtk_paned_pack1(asPaned(paned), nb, 1, 0)
	w.connectWin(nb, "switch-page", C.GCallback(C.flint_switch_page), C.gulong(w.id))

	w.bottomPane = C.gtk_notebook_new()
	w.bottomTabs = asNotebook(w.bottomPane)
	C.gtk_paned_pack2(asPaned(paned), w.bottomPane, 0, 0)

	w.jsView = w.editorPage("Console", btnRunScript, "Run")
	w.cssView = w.editorPage("User CSS", btnApplyStyle, "Save & Inject")

	w.dlList = C.gtk_list_box_new()
	scroll := C.gtk_scrolled_window_new(nil, nil)
	C.gtk_container_add(asContainer(scroll), w.dlList)
	C.gtk_notebook_append_page(w.bottomTabs, scroll, C.gtk_label_new(cstr("Downloads")))
}

func (w *Window) editorPage(title string, code int, action string) *C.GtkTextView {
	page := C.gtk_box_new(C.GTK_ORIENTATION_VERTICAL, 2)

	tv := C.gtk_text_view_new()
	C.gtk_text_view_set_monospace(asTextView(tv), 1)
	scroll := C.gtk_scrolled_window_new(nil, nil)
	C.gtk_container_add(asContainer(scroll), tv)
	C.gtk_box_pack_start(asBox(page), scroll, 1, 1, 0)

	btn := C.gtk_button_new_with_label(cstr(action))
	w.connectWin(btn, "clicked", C.GCallback(C.flint_btn_clicked), w.packed(code))
	C.gtk_box_pack_start(asBox(page), btn, 0, 0, 0)

	C.gtk_notebook_append_page(w.bottomTabs, page, C.gtk_label_new(cstr(title)))
	return asTextView(tv)
}

func (w *Window) toolButton(bar *C.GtkWidget, icon string, code int) *C.GtkWidget {
	cicon := C.CString(icon)
	btn := C.flint_icon_button(cicon)
	C.free(unsafe.Pointer(cicon))
	w.connectWin(btn, "clicked", C.GCallback(C.flint_btn_clicked), w.packed(code))
	C.gtk_box_pack_start(asBox(bar), btn, 0, 0, 0)
	return btn
}

func (w *Window) packed(code int) C.gulong {
	return C.gulong(w.id<<buttonCodeBits | uint64(code))
}

func (w *Window) connectWin(obj *C.GtkWidget, signal string, handler C.GCallback, data C.gulong) {
	sig := C.CString(signal)
	C.flint_win_connect(C.gpointer(unsafe.Pointer(obj)), sig, handler, data)
	C.free(unsafe.Pointer(sig))
}

// tabs.Chrome

func (w *Window) InsertTab(index int, v engine.View) {
	child := (*C.GtkWidget)(unsafe.Pointer(v.Native()))

	box := C.gtk_box_new(C.GTK_ORIENTATION_HORIZONTAL, 4)
	label := C.gtk_label_new(cstr("New Tab"))
	C.gtk_box_pack_start(asBox(box), label, 0, 0, 0)

	cicon := C.CString("window-close-symbolic")
	closeBtn := C.flint_icon_button(cicon)
	C.free(unsafe.Pointer(cicon))
	C.gtk_button_set_relief(asButton(closeBtn), C.GTK_RELIEF_NONE)
	w.connectWin(closeBtn, "clicked", C.GCallback(C.flint_tab_close_clicked), C.gulong(w.id))
	C.gtk_box_pack_start(asBox(box), closeBtn, 0, 0, 0)
	C.gtk_widget_show_all(box)

	w.muteSelect = true
	C.gtk_notebook_insert_page(w.notebook, child, box, C.gint(index))
	C.gtk_widget_show_all(child)
	w.muteSelect = false

	handle := tabHandle{child: child, label: label, close: closeBtn}
	w.tabs = append(w.tabs, tabHandle{})
	copy(w.tabs[index+1:], w.tabs[index:])
	w.tabs[index] = handle
}

func (w *Window) RemoveTab(index int) {
	if index < 0 || index >= len(w.tabs) {
		return
	}
	w.muteSelect = true
	C.gtk_notebook_remove_page(w.notebook, C.gint(index))
	w.muteSelect = false
	w.tabs = append(w.tabs[:index], w.tabs[index+1:]...)
}

func (w *Window) SelectTab(index int) {
	w.muteSelect = true
	C.gtk_notebook_set_current_page(w.notebook, C.gint(index))
	w.muteSelect = false
}

func (w *Window) SetAddress(url string) {
	curl := C.CString(url)
	C.gtk_entry_set_text(w.address, (*C.gchar)(curl))
	C.free(unsafe.Pointer(curl))
}

func (w *Window) SetNavState(canGoBack, canGoForward bool) {
	C.gtk_widget_set_sensitive(w.backBtn, boolToG(canGoBack))
	C.gtk_widget_set_sensitive(w.forwardBtn, boolToG(canGoForward))
}

func (w *Window) SetTabTitle(index int, title string) {
	if index < 0 || index >= len(w.tabs) {
		return
	}
	ctitle := C.CString(title)
	C.gtk_label_set_text(asLabel(w.tabs[index].label), (*C.gchar)(ctitle))
	C.free(unsafe.Pointer(ctitle))
}

func (w *Window) SetTabIcon(index int, iconURI string) {
	if index < 0 || index >= len(w.tabs) {
		return
	}
	curi := C.CString(iconURI)
	C.gtk_widget_set_tooltip_text(w.tabs[index].label, (*C.gchar)(curi))
	C.free(unsafe.Pointer(curi))
}

// downloads surface

func (w *Window) ChooseSavePath(suggested string) (string, bool) {
	csug := C.CString(suggested)
	defer C.free(unsafe.Pointer(csug))
	cpath := C.flint_save_dialog(asWindow(w.win), csug)
	if cpath == nil {
		return "", false
	}
	defer C.g_free(C.gpointer(unsafe.Pointer(cpath)))
	return C.GoString(cpath), true
}

func (w *Window) ShowDownloads() {
	C.gtk_widget_show_all(w.bottomPane)
	C.gtk_notebook_set_current_page(w.bottomTabs, 2)
}

func (w *Window) AddDownload(id, label string) {
	clabel := C.CString(label)
	row := C.gtk_label_new((*C.gchar)(clabel))
	C.free(unsafe.Pointer(clabel))
	C.gtk_label_set_xalign(asLabel(row), 0)
	C.gtk_container_add(asContainer(w.dlList), row)
	C.gtk_widget_show_all(w.dlList)
	w.dlRows[id] = row
}

func (w *Window) UpdateDownload(id, label string) {
	row, ok := w.dlRows[id]
	if !ok {
		return
	}
	clabel := C.CString(label)
	C.gtk_label_set_text(asLabel(row), (*C.gchar)(clabel))
	C.free(unsafe.Pointer(clabel))
}

// bookmarks and styles surfaces

func (w *Window) RefreshBookmarks(list []store.Bookmark) {
	C.flint_container_clear(asContainer(w.bookmarkBar))
	w.bookmarkBtns = w.bookmarkBtns[:0]
	for _, b := range list {
		clabel := C.CString(b.Title)
		btn := C.gtk_button_new_with_label((*C.gchar)(clabel))
		C.free(unsafe.Pointer(clabel))
		C.gtk_button_set_relief(asButton(btn), C.GTK_RELIEF_NONE)
		curl := C.CString(b.URL)
		C.gtk_widget_set_tooltip_text(btn, (*C.gchar)(curl))
		C.free(unsafe.Pointer(curl))
		w.connectWin(btn, "button-press-event", C.GCallback(C.flint_bookmark_press), C.gulong(w.id))
		C.gtk_box_pack_start(asBox(w.bookmarkBar), btn, 0, 0, 0)
		w.bookmarkBtns = append(w.bookmarkBtns, btn)
	}
	C.gtk_widget_show_all(w.bookmarkBar)
}

func (w *Window) SetUserCSS(css string) {
	ccss := C.CString(css)
	C.flint_textview_set(w.cssView, ccss)
	C.free(unsafe.Pointer(ccss))
}

// callback registration

func (w *Window) OnAddressEntered(fn func(string)) { w.onAddressEntered = fn }
func (w *Window) OnBack(fn func())                 { w.onBack = fn }
func (w *Window) OnForward(fn func())              { w.onForward = fn }
func (w *Window) OnReload(fn func())               { w.onReload = fn }
func (w *Window) OnHome(fn func())                 { w.onHome = fn }
func (w *Window) OnNewTab(fn func())               { w.onNewTab = fn }
func (w *Window) OnTabSelected(fn func(int))       { w.onTabSelected = fn }
func (w *Window) OnTabClosed(fn func(int))         { w.onTabClosed = fn }
func (w *Window) OnBookmarkOpened(fn func(int))    { w.onBookmarkOpened = fn }
func (w *Window) OnBookmarkAdded(fn func())        { w.onBookmarkAdded = fn }
func (w *Window) OnBookmarkDeleted(fn func(int))   { w.onBookmarkDeleted = fn }
func (w *Window) OnScriptRun(fn func(string))      { w.onScriptRun = fn }
func (w *Window) OnStyleApplied(fn func(string))   { w.onStyleApplied = fn }
func (w *Window) OnCloseRequested(fn func())       { w.onCloseRequested = fn }

// lifecycle

func (w *Window) Show() {
	C.gtk_widget_show_all(w.win)
	// The bottom pane stays hidden until the console button or a download
	// reveals it.
	C.gtk_widget_hide(w.bottomPane)
}

func (w *Window) Run() { C.gtk_main() }

func (w *Window) Quit() { C.gtk_main_quit() }

func (w *Window) toggleConsole() {
	if C.gtk_widget_get_visible(w.bottomPane) != 0 {
		C.gtk_widget_hide(w.bottomPane)
		return
	}
	C.gtk_widget_show_all(w.bottomPane)
	C.gtk_notebook_set_current_page(w.bottomTabs, 0)
}

func (w *Window) addressText() string {
	return C.GoString((*C.char)(unsafe.Pointer(C.gtk_entry_get_text(w.address))))
}

func (w *Window) textOf(tv *C.GtkTextView) string {
	ctext := C.flint_textview_text(tv)
	if ctext == nil {
		return ""
	}
	defer C.g_free(C.gpointer(unsafe.Pointer(ctext)))
	return C.GoString(ctext)
}

func (w *Window) tabIndexOfClose(btn unsafe.Pointer) int {
	for i, h := range w.tabs {
		if unsafe.Pointer(h.close) == btn {
			return i
		}
	}
	return -1
}

func (w *Window) bookmarkIndexOf(widget unsafe.Pointer) int {
	for i, b := range w.bookmarkBtns {
		if unsafe.Pointer(b) == widget {
			return i
		}
	}
	return -1
}

// small cast helpers; cgo has no implicit GObject casts

// cstr is for string literals used once during widget construction; the
// copies are never freed.
func cstr(s string) *C.gchar {
	return (*C.gchar)(C.CString(s))
}

func asWindow(w *C.GtkWidget) *C.GtkWindow       { return (*C.GtkWindow)(unsafe.Pointer(w)) }
func asContainer(w *C.GtkWidget) *C.GtkContainer { return (*C.GtkContainer)(unsafe.Pointer(w)) }
func asBox(w *C.GtkWidget) *C.GtkBox             { return (*C.GtkBox)(unsafe.Pointer(w)) }
func asNotebook(w *C.GtkWidget) *C.GtkNotebook   { return (*C.GtkNotebook)(unsafe.Pointer(w)) }
func asPaned(w *C.GtkWidget) *C.GtkPaned         { return (*C.GtkPaned)(unsafe.Pointer(w)) }
func asEntry(w *C.GtkWidget) *C.GtkEntry         { return (*C.GtkEntry)(unsafe.Pointer(w)) }
func asLabel(w *C.GtkWidget) *C.GtkLabel         { return (*C.GtkLabel)(unsafe.Pointer(w)) }
func asButton(w *C.GtkWidget) *C.GtkButton       { return (*C.GtkButton)(unsafe.Pointer(w)) }
func asTextView(w *C.GtkWidget) *C.GtkTextView   { return (*C.GtkTextView)(unsafe.Pointer(w)) }

func boolToG(b bool) C.gboolean {
	if b {
		return 1
	}
	return 0
}
