package display

import (
	"log/slog"
	"strings"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/dockpeek/dockpeek/internal/config"
	"github.com/dockpeek/dockpeek/internal/geom"
	"github.com/dockpeek/dockpeek/internal/model"
	"github.com/dockpeek/dockpeek/internal/selection"
)

// Surface is the layer-shell overlay window holding the card deck.
// It implements the controller's surface contract; every method is
// expected to run on the GTK main loop.
type Surface struct {
	window   *gtk.Window
	box      *gtk.Box
	deck     *Deck
	config   *config.DaemonConfig
	monitors *Monitors
	logger   *slog.Logger

	tween tweener

	// Current layer-shell margins, the tween's starting point
	marginLeft float64
	marginTop  float64

	appClass string
	mapped   bool

	onPointerExit func()
}

// NewSurface creates the overlay window. The window is built once and
// reused across show/hide cycles.
func NewSurface(app *gtk.Application, cfg *config.DaemonConfig, sel *selection.State,
	monitors *Monitors, logger *slog.Logger) (*Surface, error) {

	if logger == nil {
		logger = slog.Default()
	}

	s := &Surface{
		config:   cfg,
		monitors: monitors,
		logger:   logger,
	}

	s.window = gtk.NewWindow()
	s.window.SetApplication(app)
	s.window.SetDecorated(false)
	s.window.SetResizable(false)

	// Initialize layer-shell
	if !layershell.IsSupported() {
		return nil, &DisplayError{Message: "layer-shell not supported by compositor"}
	}
	layershell.InitForWindow(s.window)
	layershell.SetLayer(s.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(s.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(s.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(s.window, "dockpeek-preview")

	// Anchor to the top-left corner; margins position the surface
	layershell.SetAnchor(s.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(s.window, layershell.LayerShellEdgeLeft, true)

	s.box = gtk.NewBox(gtk.OrientationVertical, 0)
	s.box.AddCSSClass("preview-overlay")
	s.box.AddCSSClass(s.colorSchemeClass())
	s.box.SetMarginTop(s.config.Display.Padding)
	s.box.SetMarginBottom(s.config.Display.Padding)
	s.box.SetMarginStart(s.config.Display.Padding)
	s.box.SetMarginEnd(s.config.Display.Padding)

	s.deck = NewDeck(cfg, sel, logger)
	s.deck.Watch()
	s.box.Append(s.deck.Widget())

	s.window.SetChild(s.box)

	s.connectSignals()

	return s, nil
}

// connectSignals sets up pointer-exit detection.
func (s *Surface) connectSignals() {
	motion := gtk.NewEventControllerMotion()
	motion.ConnectLeave(func() {
		if s.onPointerExit != nil {
			s.onPointerExit()
		}
	})
	s.window.AddController(motion)
}

// OnPointerExit sets the callback for the pointer leaving the surface.
func (s *Surface) OnPointerExit(cb func()) {
	s.onPointerExit = cb
}

// OnTap sets the callback for card activation, forwarded to the deck.
func (s *Surface) OnTap(cb func(entry model.WindowEntry)) {
	s.deck.OnTap(cb)
}

// Deck returns the card deck for thumbnail routing.
func (s *Surface) Deck() *Deck {
	return s.deck
}

// SetContent replaces the displayed application name and window list.
func (s *Surface) SetContent(appName string, windows []model.WindowEntry) {
	if s.appClass != "" {
		s.box.RemoveCSSClass(s.appClass)
		s.appClass = ""
	}
	if appName != "" {
		s.appClass = "app-" + sanitizeClassName(appName)
		s.box.AddCSSClass(s.appClass)
	}

	s.deck.SetContent(appName, windows)

	// Every content replacement replays the entrance, not just the
	// first mapping.
	s.deck.PlayEntrance()
}

// ContentSize returns the surface's natural size for its current
// content, width-capped at maxWidth. With no known screen (maxWidth
// <= 0) the configured fallback width caps instead, so an app with
// many windows scrolls rather than spanning the output.
func (s *Surface) ContentSize(maxWidth float64) geom.Size {
	if maxWidth <= 0 {
		maxWidth = float64(s.config.Display.FallbackWidth)
	}
	pad := float64(s.config.Display.Padding)
	size := s.deck.NaturalSize(maxWidth - pad*2)
	size.W += pad * 2
	size.H += pad * 2
	return size
}

// ApplyFrame moves and resizes the surface. The origin arrives in global
// coordinates; it is translated to output-relative layer-shell margins.
func (s *Surface) ApplyFrame(origin geom.Point, size geom.Size, animate bool) {
	s.window.SetDefaultSize(int(size.W), int(size.H))

	local := origin
	if s.monitors != nil {
		if screen, ok := s.monitors.Screens().At(origin); ok {
			local = geom.Point{
				X: origin.X - screen.Frame.MinX(),
				Y: origin.Y - screen.Frame.MinY(),
			}
		}
	}

	if !animate || !s.mapped {
		s.tween.cancel()
		s.setMargins(local.X, local.Y)
		return
	}

	fromX, fromY := s.marginLeft, s.marginTop
	s.tween.start(s.config.Animation.Frame.Duration(), easeInOutCubic, func(progress float64) {
		s.setMargins(
			lerp(fromX, local.X, progress),
			lerp(fromY, local.Y, progress),
		)
	})
}

// setMargins writes the layer-shell margins and records them as the next
// tween's starting point.
func (s *Surface) setMargins(left, top float64) {
	s.marginLeft = left
	s.marginTop = top
	layershell.SetMargin(s.window, layershell.LayerShellEdgeLeft, int(left))
	layershell.SetMargin(s.window, layershell.LayerShellEdgeTop, int(top))
}

// Present maps the surface. The entrance animation belongs to content
// replacement, see SetContent.
func (s *Surface) Present() {
	s.mapped = true
	s.window.Present()
}

// Withdraw removes the surface from screen.
func (s *Surface) Withdraw() {
	if !s.mapped {
		return
	}
	s.mapped = false
	s.tween.cancel()
	s.window.SetVisible(false)
}

// Mapped reports whether the surface is currently on screen.
func (s *Surface) Mapped() bool {
	return s.mapped
}

// Destroy tears down the window. The surface is unusable afterwards.
func (s *Surface) Destroy() {
	s.deck.Unwatch()
	s.window.Destroy()
}

// UpdateConfig swaps in a new configuration. Called on hot reload.
func (s *Surface) UpdateConfig(cfg *config.DaemonConfig) {
	s.config = cfg
	s.deck.config = cfg

	s.box.RemoveCSSClass("light")
	s.box.RemoveCSSClass("dark")
	s.box.AddCSSClass(s.colorSchemeClass())
}

// colorSchemeClass returns "light" or "dark" from config or the system
// preference.
func (s *Surface) colorSchemeClass() string {
	switch config.ColorScheme(s.config.Theme.ColorScheme) {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		return detectSystemColorScheme()
	}
}

// detectSystemColorScheme checks libadwaita for system dark mode preference.
func detectSystemColorScheme() string {
	styleManager := adw.StyleManagerGetDefault()
	if styleManager.Dark() {
		return "dark"
	}
	return "light"
}

// sanitizeClassName converts a string to a valid CSS class name.
// Replaces spaces and special characters with hyphens, lowercases.
func sanitizeClassName(name string) string {
	var result strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z':
			result.WriteRune(r)
			prevHyphen = false
		case r >= '0' && r <= '9':
			result.WriteRune(r)
			prevHyphen = false
		case r == '-' || r == '_':
			if !prevHyphen && result.Len() > 0 {
				result.WriteRune('-')
				prevHyphen = true
			}
		case r == ' ' || r == '.' || r == '/':
			if !prevHyphen && result.Len() > 0 {
				result.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	// Trim trailing hyphen
	out := result.String()
	if len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return out
}
