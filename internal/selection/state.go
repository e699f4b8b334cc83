// Package selection holds the preview's selection state: which card is
// current and whether keyboard cycling is driving the highlight.
//
// The state is the publisher and the presentation layer subscribes; cards
// react to change events rather than being poked directly.
package selection

import (
	"sync"

	"github.com/dockpeek/dockpeek/internal/dispatch"
)

// ChangeType identifies which field of the state changed.
type ChangeType int

const (
	// ChangeIndex indicates the current index moved.
	ChangeIndex ChangeType = iota
	// ChangeCycling indicates keyboard cycling was turned on or off.
	ChangeCycling
	// ChangeReset indicates the state was reset to its initial values.
	ChangeReset
)

// ChangeEvent signals a selection state change. Index and Cycling carry the
// values after the change regardless of Type.
type ChangeEvent struct {
	Type    ChangeType
	Index   int
	Cycling bool
}

// State is the process-wide selection state. Setters are fire-and-forget:
// the mutation is scheduled onto the UI queue and subscribers hear about it
// asynchronously. Setters do no bounds validation; the controller owns the
// relationship between the index and the window list.
type State struct {
	mu    sync.RWMutex
	queue dispatch.Queue

	index   int
	cycling bool

	subscribers []chan ChangeEvent
}

// NewState creates a State whose mutations run on the given queue.
func NewState(queue dispatch.Queue) *State {
	return &State{
		queue:       queue,
		subscribers: make([]chan ChangeEvent, 0),
	}
}

// Index returns the current selection index.
func (s *State) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Cycling reports whether keyboard cycling is active.
func (s *State) Cycling() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycling
}

// SetIndex schedules the index change onto the UI queue.
func (s *State) SetIndex(index int) {
	s.queue.Submit(func() { s.SetIndexNow(index) })
}

// SetIndexNow applies the index change immediately. For callers already
// running on the UI queue: a queued task that writes through SetIndex
// and then reads Index sees the old value, because the write lands in a
// later queue slot.
func (s *State) SetIndexNow(index int) {
	s.mu.Lock()
	s.index = index
	event := ChangeEvent{Type: ChangeIndex, Index: s.index, Cycling: s.cycling}
	s.mu.Unlock()

	s.notifyChange(event)
}

// SetCycling schedules the cycling-flag change onto the UI queue.
func (s *State) SetCycling(active bool) {
	s.queue.Submit(func() { s.SetCyclingNow(active) })
}

// SetCyclingNow applies the cycling-flag change immediately. For
// callers already running on the UI queue.
func (s *State) SetCyclingNow(active bool) {
	s.mu.Lock()
	s.cycling = active
	event := ChangeEvent{Type: ChangeCycling, Index: s.index, Cycling: s.cycling}
	s.mu.Unlock()

	s.notifyChange(event)
}

// Reset schedules a return to the initial state (index 0, cycling off).
// Hide goes through here.
func (s *State) Reset() {
	s.queue.Submit(s.ResetNow)
}

// ResetNow applies the reset immediately. For callers already running
// on the UI queue.
func (s *State) ResetNow() {
	s.mu.Lock()
	s.index = 0
	s.cycling = false
	event := ChangeEvent{Type: ChangeReset, Index: 0, Cycling: false}
	s.mu.Unlock()

	s.notifyChange(event)
}

// Subscribe returns a channel that receives change events.
func (s *State) Subscribe() <-chan ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *State) Unsubscribe(ch <-chan ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

func (s *State) notifyChange(event ChangeEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}
