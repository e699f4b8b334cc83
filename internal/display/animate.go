package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"
)

// tweenInterval is the step interval for frame tweens, roughly 60fps.
const tweenInterval = 16 * time.Millisecond

// easeOutCubic maps linear progress t in [0,1] to eased progress.
// Fast start, gentle settle.
func easeOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := 1 - t
	return 1 - u*u*u
}

// easeInOutCubic accelerates through the first half and decelerates
// through the second. Frame moves use this one.
func easeInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// lerp interpolates between a and b by eased progress t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// tweener drives time-based position tweens on the GTK main loop.
// Starting a new tween cancels the running one via the generation counter.
type tweener struct {
	generation int
}

// start runs apply with eased progress every tween interval until the
// duration elapses. A zero or negative duration applies the end state
// immediately. Must be called from the UI thread.
func (t *tweener) start(duration time.Duration, ease func(float64) float64, apply func(progress float64)) {
	t.generation++
	gen := t.generation

	if duration <= 0 {
		apply(1)
		return
	}

	began := time.Now()
	glib.TimeoutAdd(uint(tweenInterval.Milliseconds()), func() bool {
		if gen != t.generation {
			return false
		}
		elapsed := time.Since(began)
		progress := float64(elapsed) / float64(duration)
		if progress >= 1 {
			apply(1)
			return false
		}
		apply(ease(progress))
		return true
	})
}

// cancel stops the running tween without applying the end state.
func (t *tweener) cancel() {
	t.generation++
}
