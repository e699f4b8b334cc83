package display

import (
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/dockpeek/dockpeek/internal/config"
	"github.com/dockpeek/dockpeek/internal/geom"
)

// Monitors enumerates outputs through GDK. It satisfies the controller's
// screens provider.
type Monitors struct {
	config  *config.DaemonConfig
	display *gdk.Display
	logger  *slog.Logger
}

// NewMonitors creates a monitor enumerator bound to the default display.
func NewMonitors(cfg *config.DaemonConfig, logger *slog.Logger) *Monitors {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitors{
		config:  cfg,
		display: gdk.DisplayGetDefault(),
		logger:  logger,
	}
}

// Screens returns the current outputs as placement screens.
// Pinned mode (monitor >= 1) narrows the result to that output.
func (m *Monitors) Screens() geom.Screens {
	if m.display == nil {
		m.display = gdk.DisplayGetDefault()
	}
	if m.display == nil {
		m.logger.Warn("no display available")
		return nil
	}

	monitors := m.display.Monitors()
	if monitors == nil {
		m.logger.Warn("no monitors list available")
		return nil
	}

	n := monitors.NItems()
	screens := make(geom.Screens, 0, n)
	for i := uint(0); i < n; i++ {
		mon := wrapMonitor(monitors.Item(i))
		if mon == nil {
			continue
		}
		screens = append(screens, screenFromMonitor(mon))
	}

	// Pinned mode: restrict to the configured output (1-indexed)
	if m.config != nil && m.config.Display.Monitor > 0 {
		idx := m.config.Display.Monitor - 1
		if idx < len(screens) {
			return geom.Screens{screens[idx]}
		}
		m.logger.Warn("configured monitor not available, using all",
			"configured", m.config.Display.Monitor,
			"available", len(screens),
		)
	}

	return screens
}

// HandleMonitorChange should be called when outputs change. It refreshes
// the display reference and logs the new count.
func (m *Monitors) HandleMonitorChange() {
	m.display = gdk.DisplayGetDefault()
	if m.display == nil {
		m.logger.Warn("no display available after monitor change")
		return
	}

	monitors := m.display.Monitors()
	if monitors != nil {
		m.logger.Info("monitor configuration changed", "count", monitors.NItems())
	}
}

// screenFromMonitor converts a GDK monitor to a placement screen.
// GDK has no work-area API on Wayland, so the visible frame equals the
// full frame and dock avoidance is handled by the placement math.
func screenFromMonitor(mon *gdk.Monitor) geom.Screen {
	g := mon.Geometry()
	frame := geom.NewRect(
		float64(g.X()),
		float64(g.Y()),
		float64(g.Width()),
		float64(g.Height()),
	)
	return geom.Screen{
		Frame:        frame,
		VisibleFrame: frame,
		Connector:    mon.Connector(),
	}
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor.
// This is necessary because gotk4 doesn't expose the wrapMonitor function.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	// The gdk.Monitor struct embeds a *coreglib.Object, so we can create
	// one by casting the native pointer. This is how gotk4 does it internally.
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
