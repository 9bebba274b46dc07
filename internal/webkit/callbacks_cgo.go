//go:build webkitgtk

package webkit

/*
#cgo pkg-config: webkit2gtk-4.1 gtk+-3.0
#include <gtk/gtk.h>
#include <webkit2/webkit2.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

func lookupView(id C.gulong) *View {
	registryMu.Lock()
	defer registryMu.Unlock()
	return views[uint64(id)]
}

func lookupDownload(id C.gulong) *Download {
	registryMu.Lock()
	defer registryMu.Unlock()
	return downloads[uint64(id)]
}

//export goDispatchIdle
func goDispatchIdle(handle C.gulong) {
	registryMu.Lock()
	fn := idleFns[uint64(handle)]
	delete(idleFns, uint64(handle))
	registryMu.Unlock()
	if fn != nil {
		fn()
	}
}

//export goViewTitleChanged
func goViewTitleChanged(id C.gulong) {
	if v := lookupView(id); v != nil && v.onTitle != nil {
		v.onTitle(v.Title())
	}
}

//export goViewURIChanged
func goViewURIChanged(id C.gulong) {
	if v := lookupView(id); v != nil && v.onURL != nil {
		v.onURL(v.URL())
	}
}

//export goViewFaviconChanged
func goViewFaviconChanged(id C.gulong) {
	if v := lookupView(id); v != nil && v.onIcon != nil {
		v.onIcon(v.IconURI())
	}
}

//export goViewLoadFinished
func goViewLoadFinished(id C.gulong, ok C.int) {
	if v := lookupView(id); v != nil && v.onLoad != nil {
		v.onLoad(ok != 0)
	}
}

//export goDownloadStarted
func goDownloadStarted(ctxID C.gulong, ptr unsafe.Pointer) {
	registryMu.Lock()
	f := factories[uint64(ctxID)]
	registryMu.Unlock()
	if f == nil {
		return
	}

	d := &Download{
		factory: f,
		id:      newID(),
		dl:      (*C.WebKitDownload)(ptr),
	}
	registryMu.Lock()
	downloads[d.id] = d
	registryMu.Unlock()

	for _, sig := range []struct {
		name    string
		handler C.GCallback
	}{
		{"decide-destination", C.GCallback(C.flint_decide_destination)},
		{"failed", C.GCallback(C.flint_download_failed)},
		{"finished", C.GCallback(C.flint_download_finished)},
	} {
		cname := C.CString(sig.name)
		C.flint_connect(C.gpointer(ptr), cname, sig.handler, C.gulong(d.id))
		C.free(unsafe.Pointer(cname))
	}
}

//export goDownloadDecide
func goDownloadDecide(id C.gulong, suggested *C.char) C.int {
	d := lookupDownload(id)
	if d == nil {
		return 0
	}
	if suggested != nil {
		d.suggested = C.GoString(suggested)
	}

	handler := d.factory.profile.onDownload
	if handler == nil {
		return 0
	}
	handler(d)
	if !d.accepted {
		// Handler cancelled; claim the decision so WebKit does not pick a
		// destination of its own.
		return 1
	}
	return 1
}

//export goDownloadFailed
func goDownloadFailed(id C.gulong, message *C.char) {
	d := lookupDownload(id)
	if d == nil {
		return
	}
	msg := "download failed"
	if message != nil {
		msg = C.GoString(message)
	}
	d.failErr = fmt.Errorf("%s", msg)
}

//export goDownloadFinished
func goDownloadFinished(id C.gulong) {
	d := lookupDownload(id)
	if d == nil {
		return
	}
	registryMu.Lock()
	delete(downloads, d.id)
	registryMu.Unlock()
	if d.onFinished != nil {
		d.onFinished(d.failErr)
	}
}
