//go:build webkitgtk

package webkit

/*
#cgo pkg-config: webkit2gtk-4.1 gtk+-3.0
#include <gtk/gtk.h>
*/
import "C"

import "unsafe"

func lookupWindow(id uint64) *Window {
	registryMu.Lock()
	defer registryMu.Unlock()
	return windows[id]
}

//export goWindowButton
func goWindowButton(packed C.gulong) {
	id := uint64(packed) >> buttonCodeBits
	code := int(uint64(packed) & (1<<buttonCodeBits - 1))
	w := lookupWindow(id)
	if w == nil {
		return
	}

	switch code {
	case btnBack:
		if w.onBack != nil {
			w.onBack()
		}
	case btnForward:
		if w.onForward != nil {
			w.onForward()
		}
	case btnReload:
		if w.onReload != nil {
			w.onReload()
		}
	case btnHome:
		if w.onHome != nil {
			w.onHome()
		}
	case btnNewTab:
		if w.onNewTab != nil {
			w.onNewTab()
		}
	case btnAddBookmark:
		if w.onBookmarkAdded != nil {
			w.onBookmarkAdded()
		}
	case btnConsole:
		w.toggleConsole()
	case btnRunScript:
		if w.onScriptRun != nil {
			w.onScriptRun(w.textOf(w.jsView))
		}
	case btnApplyStyle:
		if w.onStyleApplied != nil {
			w.onStyleApplied(w.textOf(w.cssView))
		}
	}
}

//export goWindowTabSelected
func goWindowTabSelected(id C.gulong, page C.int) {
	w := lookupWindow(uint64(id))
	if w == nil || w.muteSelect {
		return
	}
	if w.onTabSelected != nil {
		w.onTabSelected(int(page))
	}
}

//export goWindowTabCloseClicked
func goWindowTabCloseClicked(id C.gulong, button unsafe.Pointer) {
	w := lookupWindow(uint64(id))
	if w == nil {
		return
	}
	index := w.tabIndexOfClose(button)
	if index >= 0 && w.onTabClosed != nil {
		w.onTabClosed(index)
	}
}

//export goWindowBookmarkClicked
func goWindowBookmarkClicked(id C.gulong, widget unsafe.Pointer, button C.int) {
	w := lookupWindow(uint64(id))
	if w == nil {
		return
	}
	index := w.bookmarkIndexOf(widget)
	if index < 0 {
		return
	}
	switch button {
	case 1:
		if w.onBookmarkOpened != nil {
			w.onBookmarkOpened(index)
		}
	case 3:
		if w.onBookmarkDeleted != nil {
			w.onBookmarkDeleted(index)
		}
	}
}

//export goWindowAddressActivated
func goWindowAddressActivated(id C.gulong) {
	w := lookupWindow(uint64(id))
	if w == nil || w.onAddressEntered == nil {
		return
	}
	w.onAddressEntered(w.addressText())
}

//export goWindowCloseRequested
func goWindowCloseRequested(id C.gulong) C.int {
	w := lookupWindow(uint64(id))
	if w == nil || w.onCloseRequested == nil {
		return 0
	}
	w.onCloseRequested()
	return 1
}
