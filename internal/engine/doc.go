// Package engine defines the browsing-engine capability the shell consumes.
//
// All networking, rendering, script execution and download transport live
// behind these interfaces; the shell is event wiring and small persistence
// on top. The concrete implementation is internal/webkit; package tests use
// the in-memory fake in enginetest.
//
// One failure mode matters at this boundary: the engine being unavailable
// at startup. No tab can function without it, which makes it the only
// fatal condition in the application; Factory.Available surfaces it.
package engine
