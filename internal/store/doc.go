// Package store persists the shell's small JSON documents and the user
// stylesheet under the per-application data directory.
//
// The store degrades instead of failing: a missing or corrupt document
// loads as its zero value and a failed write is logged and swallowed. The
// user is never blocked by persistence; the worst outcome is reverting to
// defaults on next start.
//
// Documents:
//   - bookmarks.json: array of {title, url}
//   - session.json:   {"tabs": [url, ...]}
//   - userstyle.css:  plain CSS text
//
// Writes are full-file overwrites of human-readable, two-space indented
// JSON. The documents are tiny, so writes stay synchronous on the UI loop.
package store
