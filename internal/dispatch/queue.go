// Package dispatch defines the UI scheduling contract.
//
// GTK objects may only be touched from the main loop. Every component that
// needs to mutate UI state or UI-owned data takes a Queue and submits the
// mutation instead of performing it inline, so callers on any goroutine
// (D-Bus handlers, watchers) stay off the GTK thread.
package dispatch

// Queue schedules functions onto the single UI thread. Submit is
// fire-and-forget: it never blocks on the function running and gives no
// completion signal. Functions submitted from the same goroutine run in
// submission order.
type Queue interface {
	Submit(fn func())
}
