package dispatch

// Direct runs submitted functions immediately on the calling goroutine.
// It exists for tests and for the CLI, where there is no GTK main loop
// and ordering is already single-threaded.
type Direct struct{}

// NewDirect returns a synchronous Queue.
func NewDirect() *Direct {
	return &Direct{}
}

// Submit runs fn inline.
func (*Direct) Submit(fn func()) {
	fn()
}
