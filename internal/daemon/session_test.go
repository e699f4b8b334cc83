package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTracker_Empty(t *testing.T) {
	tracker := NewSessionTracker()

	_, ok := tracker.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, tracker.Opened())
}

func TestSessionTracker_BeginAndEnd(t *testing.T) {
	tracker := NewSessionTracker()

	id := tracker.Begin("editor", 3)
	require.Len(t, id, 26) // ULID string length

	s, ok := tracker.Current()
	require.True(t, ok)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, "editor", s.App)
	assert.Equal(t, 3, s.WindowCount)
	assert.True(t, s.Open())

	tracker.End()

	s, ok = tracker.Current()
	require.True(t, ok)
	assert.False(t, s.Open())
	assert.Equal(t, id, s.ID)
}

func TestSessionTracker_BeginReplacesOpenSession(t *testing.T) {
	tracker := NewSessionTracker()

	first := tracker.Begin("editor", 3)
	second := tracker.Begin("browser", 1)
	assert.NotEqual(t, first, second)

	s, ok := tracker.Current()
	require.True(t, ok)
	assert.Equal(t, second, s.ID)
	assert.Equal(t, "browser", s.App)
	assert.True(t, s.Open())
	assert.Equal(t, 2, tracker.Opened())
}

func TestSessionTracker_EndIsIdempotent(t *testing.T) {
	tracker := NewSessionTracker()
	tracker.End() // no session yet, safe

	tracker.Begin("editor", 1)
	tracker.End()

	s, _ := tracker.Current()
	endedAt := s.EndedAt

	tracker.End()
	s, _ = tracker.Current()
	assert.Equal(t, endedAt, s.EndedAt)
}
