package daemon

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Session records one preview appearance: Show opens it, Hide ends it.
type Session struct {
	ID          string    // ULID assigned at open
	App         string    // Application the preview was for
	WindowCount int       // Number of windows shown
	ShownAt     time.Time // When Show arrived
	EndedAt     time.Time // Zero while the session is open
}

// Open reports whether the session is still running.
func (s *Session) Open() bool {
	return s.EndedAt.IsZero()
}

// SessionTracker maintains the current preview session. It backs the
// Status D-Bus method and the daemon's session logging.
type SessionTracker struct {
	mu      sync.RWMutex
	current *Session
	opened  int
}

// NewSessionTracker creates an empty tracker.
func NewSessionTracker() *SessionTracker {
	return &SessionTracker{}
}

// Begin opens a new session, ending any session still open. Returns the
// new session's ID.
func (t *SessionTracker) Begin(app string, windowCount int) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil && t.current.Open() {
		t.current.EndedAt = time.Now()
	}
	t.current = &Session{
		ID:          id,
		App:         app,
		WindowCount: windowCount,
		ShownAt:     time.Now(),
	}
	t.opened++

	return id
}

// End closes the current session. Idempotent.
func (t *SessionTracker) End() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil && t.current.Open() {
		t.current.EndedAt = time.Now()
	}
}

// Current returns a copy of the latest session and whether it is open.
// Returns false when no session has ever been opened.
func (t *SessionTracker) Current() (Session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.current == nil {
		return Session{}, false
	}
	return *t.current, true
}

// Opened returns the number of sessions opened since start.
func (t *SessionTracker) Opened() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.opened
}
