// Package preview orchestrates the overlay surface: what is shown, where it
// goes, and how selection moves. The GTK window sits behind the Surface
// interface so the orchestration is plain Go.
package preview

import (
	"log/slog"
	"sync"

	"github.com/dockpeek/dockpeek/internal/activate"
	"github.com/dockpeek/dockpeek/internal/dispatch"
	"github.com/dockpeek/dockpeek/internal/dock"
	"github.com/dockpeek/dockpeek/internal/geom"
	"github.com/dockpeek/dockpeek/internal/model"
	"github.com/dockpeek/dockpeek/internal/selection"
)

// Surface is the overlay window as the controller sees it. Implementations
// must tolerate every call arriving on the UI queue.
type Surface interface {
	// SetContent replaces the displayed application name and window list.
	SetContent(appName string, windows []model.WindowEntry)

	// ContentSize returns the surface's natural size for its current
	// content, width-capped at maxWidth. A maxWidth of zero or less
	// means no screen is known and the surface applies its own fallback.
	ContentSize(maxWidth float64) geom.Size

	// ApplyFrame moves and resizes the surface. When animate is true the
	// move tweens over the configured duration, otherwise it is immediate.
	ApplyFrame(origin geom.Point, size geom.Size, animate bool)

	// Present maps the surface and takes keyboard focus.
	Present()

	// Withdraw removes the surface from screen.
	Withdraw()
}

// ScreensProvider enumerates the current outputs.
type ScreensProvider interface {
	Screens() geom.Screens
}

// TapCallback runs after a window is activated from the surface.
type TapCallback func(entry model.WindowEntry)

// VisibilityCallback observes show/hide transitions for session tracking.
type VisibilityCallback func(visible bool, appName string, windowCount int)

// Controller owns the preview lifecycle. All four operations are
// fire-and-forget and may be called from any goroutine; the work runs on
// the UI queue.
type Controller struct {
	queue     dispatch.Queue
	surface   Surface
	sel       *selection.State
	dock      dock.Provider
	activator activate.Activator
	screens   ScreensProvider
	logger    *slog.Logger

	// Guards the fields below. The queue serializes mutations, the lock
	// exists for reads from other goroutines (Status over D-Bus).
	mu        sync.RWMutex
	appName   string
	windows   []model.WindowEntry
	onTap     TapCallback
	visible   bool
	bestGuess geom.Screen
	hasGuess  bool

	onVisibility VisibilityCallback
	onSelect     func(entry model.WindowEntry)
}

// NewController wires the controller's collaborators.
func NewController(queue dispatch.Queue, surface Surface, sel *selection.State,
	dockProvider dock.Provider, activator activate.Activator,
	screens ScreensProvider, logger *slog.Logger) *Controller {

	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		queue:     queue,
		surface:   surface,
		sel:       sel,
		dock:      dockProvider,
		activator: activator,
		screens:   screens,
		logger:    logger,
	}
}

// SetVisibilityCallback registers the session-tracking hook. Must be set
// before the first Show.
func (c *Controller) SetVisibilityCallback(cb VisibilityCallback) {
	c.mu.Lock()
	c.onVisibility = cb
	c.mu.Unlock()
}

// SetSelectHook registers a hook that runs when a window is activated,
// before the tap callback. Used for audio feedback.
func (c *Controller) SetSelectHook(hook func(entry model.WindowEntry)) {
	c.mu.Lock()
	c.onSelect = hook
	c.mu.Unlock()
}

// Show replaces the surface content and presents it. A pointer of
// geom.NoLocation means the request came from the keyboard: the surface
// centers on the best-guess screen and cycling mode turns on. A real
// pointer anchors the surface at it and turns cycling off.
func (c *Controller) Show(appName string, windows []model.WindowEntry, pointer geom.Point, onTap TapCallback) {
	c.queue.Submit(func() {
		// An empty list forces a hide rather than an empty surface.
		if len(windows) == 0 {
			c.logger.Debug("show with no windows, hiding", "app", appName)
			c.hideNow()
			return
		}

		c.mu.Lock()
		c.appName = appName
		c.windows = windows
		c.onTap = onTap
		c.mu.Unlock()

		c.surface.SetContent(appName, windows)
		c.sel.SetIndexNow(0)

		keyboard := pointer.IsNone()
		c.sel.SetCyclingNow(keyboard)

		if keyboard {
			c.placeCentered(c.contentSize(), true)
		} else {
			// Resolve the pointer's screen before sizing so the deck
			// caps at that screen's width.
			if screen, ok := c.screens.Screens().At(pointer); ok {
				c.cacheScreen(screen)
			}
			c.placeAnchored(pointer, c.contentSize())
		}

		c.surface.Present()
		c.setVisible(true)

		c.logger.Debug("preview shown",
			"app", appName,
			"windows", len(windows),
			"keyboard", keyboard,
		)
	})
}

// Hide withdraws the surface and resets selection. Idempotent.
func (c *Controller) Hide() {
	c.queue.Submit(c.hideNow)
}

// hideNow is Hide's body for callers already running on the UI queue.
func (c *Controller) hideNow() {
	c.mu.Lock()
	wasVisible := c.visible
	c.windows = nil
	c.onTap = nil
	c.mu.Unlock()

	c.surface.Withdraw()
	c.sel.ResetNow()
	c.setVisible(false)

	if wasVisible {
		c.logger.Debug("preview hidden")
	}
}

// Cycle advances the selection with wraparound and re-centers the frame
// without animating. Cycling is keyboard-driven, so it also turns
// cycling mode on: a preview shown by pointer switches to keyboard
// control on the first cycle and stays there until the next
// pointer-triggered Show. No-op when the window list is empty.
func (c *Controller) Cycle() {
	c.queue.Submit(func() {
		c.mu.RLock()
		count := len(c.windows)
		c.mu.RUnlock()

		if count == 0 {
			c.logger.Debug("cycle with no windows, ignoring")
			return
		}

		// Synchronous writes: the next queued operation must observe
		// the advanced index.
		c.sel.SetCyclingNow(true)
		next := (c.sel.Index() + 1) % count
		c.sel.SetIndexNow(next)

		// Refresh path: no animation on cycle moves.
		c.placeCentered(c.contentSize(), false)
	})
}

// SelectCurrent activates the selected window and hides the preview.
// No-op when the window list is empty.
func (c *Controller) SelectCurrent() {
	c.queue.Submit(func() {
		c.mu.RLock()
		windows := c.windows
		c.mu.RUnlock()

		if len(windows) == 0 {
			c.logger.Debug("select with no windows, ignoring")
			return
		}

		idx := c.sel.Index()
		if idx < 0 || idx >= len(windows) {
			c.logger.Debug("selection index out of range, ignoring", "index", idx, "windows", len(windows))
			return
		}

		c.activateEntry(windows[idx])
	})
}

// Activate raises the given entry and hides the preview. The deck calls
// this on card tap.
func (c *Controller) Activate(entry model.WindowEntry) {
	c.queue.Submit(func() {
		c.activateEntry(entry)
	})
}

// PointerExited is called by the surface when the pointer leaves its
// bounds. Hides the preview unless keyboard cycling is active.
func (c *Controller) PointerExited() {
	c.queue.Submit(func() {
		if c.sel.Cycling() {
			return
		}
		c.mu.RLock()
		visible := c.visible
		c.mu.RUnlock()
		if visible {
			c.hideNow()
		}
	})
}

// Refresh recomputes the frame for the current content without animating.
// Called when a thumbnail arrives or the theme reloads while visible.
func (c *Controller) Refresh() {
	c.queue.Submit(func() {
		c.mu.RLock()
		visible := c.visible
		c.mu.RUnlock()
		if !visible {
			return
		}
		c.placeCentered(c.contentSize(), false)
	})
}

// Visible reports whether the surface is currently shown.
func (c *Controller) Visible() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visible
}

// AppName returns the currently displayed application name.
func (c *Controller) AppName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.appName
}

// Windows returns the current window list.
func (c *Controller) Windows() []model.WindowEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.WindowEntry, len(c.windows))
	copy(out, c.windows)
	return out
}

// BestGuessScreen returns the cached screen, if any.
func (c *Controller) BestGuessScreen() (geom.Screen, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bestGuess, c.hasGuess
}

func (c *Controller) activateEntry(entry model.WindowEntry) {
	c.mu.RLock()
	onTap := c.onTap
	onSelect := c.onSelect
	c.mu.RUnlock()

	c.activator.Raise(entry)
	if onSelect != nil {
		onSelect(entry)
	}
	if onTap != nil {
		onTap(entry)
	}
	c.hideNow()
}

// placeCentered centers the surface on the cached best-guess screen.
// Without a cached screen the placement degrades to a logged no-op.
func (c *Controller) placeCentered(size geom.Size, animate bool) {
	c.mu.RLock()
	screen, ok := c.bestGuess, c.hasGuess
	c.mu.RUnlock()

	if !ok {
		c.logger.Debug("center placement with no known screen, skipping")
		return
	}

	origin := geom.CenterOrigin(screen.Frame, size)
	c.surface.ApplyFrame(origin, size, animate)
}

// placeAnchored anchors the surface at the pointer with dock avoidance.
func (c *Controller) placeAnchored(pointer geom.Point, size geom.Size) {
	screen, ok := c.screens.Screens().At(pointer)
	if !ok {
		c.logger.Debug("pointer on no known screen, skipping placement",
			"x", pointer.X, "y", pointer.Y)
		return
	}

	c.cacheScreen(screen)

	edge := c.dock.Edge()
	height := c.dock.Height(screen.Frame)
	origin := geom.AnchorOrigin(pointer, size, screen.Frame, edge, height)

	c.surface.ApplyFrame(origin, size, true)
}

// cacheScreen records the screen later center placements fall back to.
func (c *Controller) cacheScreen(screen geom.Screen) {
	c.mu.Lock()
	c.bestGuess = screen
	c.hasGuess = true
	c.mu.Unlock()
}

// contentSize asks the surface for its natural size, capped at the
// best-guess screen's visible width when one is known.
func (c *Controller) contentSize() geom.Size {
	c.mu.RLock()
	screen, ok := c.bestGuess, c.hasGuess
	c.mu.RUnlock()

	if !ok {
		return c.surface.ContentSize(0)
	}
	return c.surface.ContentSize(screen.VisibleFrame.W)
}

func (c *Controller) setVisible(v bool) {
	c.mu.Lock()
	changed := c.visible != v
	c.visible = v
	app := c.appName
	count := len(c.windows)
	cb := c.onVisibility
	c.mu.Unlock()

	if changed && cb != nil {
		cb(v, app, count)
	}
}
