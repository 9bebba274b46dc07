// Package tabs owns the ordered tab collection and keeps the window chrome
// synchronized with the active tab.
//
// Exactly one tab is active at all times while the window is open: the
// collection starts with one tab, closing the last tab quits the
// application instead of leaving zero, and every navigation or activation
// event refreshes the address bar from the active record.
//
// Chrome updates are event-driven. Each tab gets a subscription object at
// construction time that carries a stable reference to its record; view
// notifications update the record's cached title/icon/URL always, and touch
// shared chrome only when that record is the active one.
package tabs
