// Package webkit backs the engine interfaces with WebKit2GTK and provides
// the GTK window chrome.
//
// The real implementation builds only with the webkitgtk tag, since it needs
// cgo and the webkit2gtk-4.1 and gtk+-3.0 development packages. Without the
// tag the package still compiles but Available reports the engine missing,
// which the launcher treats as fatal before any window is shown.
//
// Everything in this package runs on the GTK main loop. Work arriving from
// other goroutines must go through Factory.Dispatch, which schedules it as a
// main-loop idle callback.
package webkit
