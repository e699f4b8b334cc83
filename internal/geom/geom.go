// Package geom provides the pure placement math for the preview overlay.
//
// All coordinates are in global compositor space with the origin at the
// top-left and y growing downward, matching GDK monitor geometry.
package geom

import "math"

// Point is a location in global screen coordinates.
type Point struct {
	X float64
	Y float64
}

// NoLocation is the sentinel for "no pointer location". It marks a
// keyboard-triggered display request.
var NoLocation = Point{X: math.NaN(), Y: math.NaN()}

// IsNone reports whether the point is the NoLocation sentinel.
func (p Point) IsNone() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// Size is a width/height pair in pixels.
type Size struct {
	W float64
	H float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// NewRect constructs a Rect from origin and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether the point lies inside the rectangle.
// Edges on the right and bottom are exclusive so adjacent screens
// never both claim a shared border pixel.
func (r Rect) Contains(p Point) bool {
	if p.IsNone() {
		return false
	}
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Screen describes one output.
type Screen struct {
	// Frame is the full output geometry in global coordinates.
	Frame Rect
	// VisibleFrame is the frame minus space reserved by panels and bars.
	VisibleFrame Rect
	// Connector is the output name as reported by the compositor (eDP-1, ...).
	Connector string
}

// Screens is an ordered set of outputs.
type Screens []Screen

// At returns the screen whose frame contains the point.
func (s Screens) At(p Point) (Screen, bool) {
	for _, scr := range s {
		if scr.Frame.Contains(p) {
			return scr, true
		}
	}
	return Screen{}, false
}

// DockEdge is the screen edge the dock occupies.
type DockEdge int

const (
	// DockUnknown means no dock avoidance is applied.
	DockUnknown DockEdge = iota
	DockBottom
	DockLeft
	DockRight
)

// String returns the edge name.
func (e DockEdge) String() string {
	switch e {
	case DockBottom:
		return "bottom"
	case DockLeft:
		return "left"
	case DockRight:
		return "right"
	default:
		return "unknown"
	}
}

// CenterOrigin returns the origin that centers content of the given size
// on the screen. With content the size of the screen this is exactly the
// screen origin.
func CenterOrigin(screen Rect, size Size) Point {
	c := screen.Center()
	return Point{X: c.X - size.W/2, Y: c.Y - size.H/2}
}

// AnchorOrigin computes the origin for content anchored at the pointer,
// pushed off the dock edge and clamped into the screen.
//
// Dock rules:
//   - bottom dock: flush above the dock, centered horizontally on the pointer
//   - left/right dock: centered vertically on the pointer, pushed just past
//     the dock's inner edge
//   - unknown dock: pointer-anchored, no avoidance
//
// When a side dock leaves less horizontal room than the content needs, the
// pointer's x is ignored entirely and the content is pinned to the screen
// edge. The final clamp always applies.
func AnchorOrigin(pointer Point, size Size, screen Rect, dock DockEdge, dockHeight float64) Point {
	origin := pointer

	switch dock {
	case DockBottom:
		origin.Y = screen.MaxY() - dockHeight - size.H
		origin.X -= size.W / 2
	case DockLeft:
		origin.Y -= size.H / 2
		origin.X = screen.MinX() + dockHeight
	case DockRight:
		origin.Y -= size.H / 2
		origin.X = screen.MaxX() - size.W - dockHeight
	}

	// Side-dock overflow: content wider than the space next to the dock.
	if dock == DockLeft || dock == DockRight {
		if size.W > screen.W-dockHeight {
			if dock == DockLeft {
				origin.X = screen.MinX()
			} else {
				origin.X = screen.MaxX() - size.W
			}
		}
	}

	return Clamp(origin, size, screen)
}

// Clamp constrains the origin so the content never extends past the screen.
// When the content is larger than the screen the origin pins to the screen's
// min edge.
func Clamp(origin Point, size Size, screen Rect) Point {
	origin.X = math.Min(origin.X, screen.MaxX()-size.W)
	origin.X = math.Max(origin.X, screen.MinX())
	origin.Y = math.Min(origin.Y, screen.MaxY()-size.H)
	origin.Y = math.Max(origin.Y, screen.MinY())
	return origin
}
