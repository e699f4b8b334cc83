package dispatch

import "github.com/diamondburned/gotk4/pkg/glib/v2"

// MainLoop submits functions to the GTK main loop as idle sources.
type MainLoop struct{}

// NewMainLoop returns a Queue backed by the GTK main loop. The loop must be
// running before submitted functions execute.
func NewMainLoop() *MainLoop {
	return &MainLoop{}
}

// Submit schedules fn to run on the GTK main loop.
func (*MainLoop) Submit(fn func()) {
	glib.IdleAdd(fn)
}
