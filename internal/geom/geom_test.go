package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testScreen = NewRect(0, 0, 1920, 1080)

func TestPoint_IsNone(t *testing.T) {
	assert.True(t, NoLocation.IsNone())
	assert.False(t, Point{X: 0, Y: 0}.IsNone())
	assert.False(t, Point{X: -100, Y: 3000}.IsNone())
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(100, 200, 800, 600)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{500, 500}, true},
		{"top-left corner inclusive", Point{100, 200}, true},
		{"bottom-right corner exclusive", Point{900, 800}, false},
		{"left of rect", Point{99, 500}, false},
		{"below rect", Point{500, 801}, false},
		{"no location sentinel", NoLocation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestScreens_At(t *testing.T) {
	screens := Screens{
		{Frame: NewRect(0, 0, 1920, 1080), Connector: "eDP-1"},
		{Frame: NewRect(1920, 0, 2560, 1440), Connector: "DP-1"},
	}

	s, ok := screens.At(Point{100, 100})
	assert.True(t, ok)
	assert.Equal(t, "eDP-1", s.Connector)

	s, ok = screens.At(Point{2000, 100})
	assert.True(t, ok)
	assert.Equal(t, "DP-1", s.Connector)

	_, ok = screens.At(Point{-50, 100})
	assert.False(t, ok)

	_, ok = screens.At(NoLocation)
	assert.False(t, ok)
}

func TestCenterOrigin(t *testing.T) {
	origin := CenterOrigin(testScreen, Size{W: 400, H: 300})
	assert.Equal(t, Point{X: 760, Y: 390}, origin)
}

// Content exactly the size of the screen centers to the screen origin with
// no negative offset.
func TestCenterOrigin_FullScreenContent(t *testing.T) {
	origin := CenterOrigin(testScreen, Size{W: 1920, H: 1080})
	assert.Equal(t, Point{X: 0, Y: 0}, origin)
}

func TestAnchorOrigin_NoDock(t *testing.T) {
	origin := AnchorOrigin(Point{500, 400}, Size{W: 300, H: 200}, testScreen, DockUnknown, 0)
	assert.Equal(t, Point{X: 500, Y: 400}, origin)
}

// Bottom dock: the preview sits flush above the dock regardless of the
// pointer's y, centered horizontally on the pointer.
func TestAnchorOrigin_BottomDock(t *testing.T) {
	const dockHeight = 64
	size := Size{W: 300, H: 200}

	for _, pointerY := range []float64{0, 500, 1079} {
		origin := AnchorOrigin(Point{960, pointerY}, size, testScreen, DockBottom, dockHeight)
		assert.Equal(t, testScreen.MaxY()-dockHeight-size.H, origin.Y, "pointer y=%v", pointerY)
		assert.Equal(t, 960-size.W/2, origin.X)
	}
}

func TestAnchorOrigin_LeftDock(t *testing.T) {
	const dockHeight = 48
	origin := AnchorOrigin(Point{10, 540}, Size{W: 300, H: 200}, testScreen, DockLeft, dockHeight)
	assert.Equal(t, float64(dockHeight), origin.X)
	assert.Equal(t, float64(440), origin.Y)
}

func TestAnchorOrigin_RightDock(t *testing.T) {
	const dockHeight = 48
	size := Size{W: 300, H: 200}
	origin := AnchorOrigin(Point{1900, 540}, size, testScreen, DockRight, dockHeight)
	assert.Equal(t, testScreen.MaxX()-size.W-dockHeight, origin.X)
	assert.Equal(t, float64(440), origin.Y)
}

// Side-dock overflow: content wider than the space beside the dock pins to
// the screen edge and ignores the pointer's x entirely.
func TestAnchorOrigin_LeftDockOverflow(t *testing.T) {
	const dockHeight = 48
	size := Size{W: 1900, H: 200}
	origin := AnchorOrigin(Point{1500, 540}, size, testScreen, DockLeft, dockHeight)
	assert.Equal(t, testScreen.MinX(), origin.X)
}

func TestAnchorOrigin_RightDockOverflow(t *testing.T) {
	const dockHeight = 48
	size := Size{W: 1900, H: 200}
	origin := AnchorOrigin(Point{100, 540}, size, testScreen, DockRight, dockHeight)
	assert.Equal(t, testScreen.MaxX()-size.W, origin.X)
}

// The final clamp keeps the surface fully on screen for any pointer, even
// one outside the screen bounds.
func TestAnchorOrigin_ClampsToScreen(t *testing.T) {
	size := Size{W: 300, H: 200}

	pointers := []Point{
		{-500, -500},
		{5000, 5000},
		{-500, 5000},
		{5000, -500},
		{960, 540},
	}

	for _, p := range pointers {
		origin := AnchorOrigin(p, size, testScreen, DockUnknown, 0)
		assert.GreaterOrEqual(t, origin.X, testScreen.MinX(), "pointer %v", p)
		assert.LessOrEqual(t, origin.X, testScreen.MaxX()-size.W, "pointer %v", p)
		assert.GreaterOrEqual(t, origin.Y, testScreen.MinY(), "pointer %v", p)
		assert.LessOrEqual(t, origin.Y, testScreen.MaxY()-size.H, "pointer %v", p)
	}
}

// Screens with a non-zero origin (secondary monitor) clamp against their
// own bounds, not the global origin.
func TestAnchorOrigin_SecondaryScreen(t *testing.T) {
	screen := NewRect(1920, 0, 2560, 1440)
	size := Size{W: 300, H: 200}

	origin := AnchorOrigin(Point{1930, -100}, size, screen, DockUnknown, 0)
	assert.Equal(t, Point{X: 1930, Y: 0}, origin)

	origin = AnchorOrigin(Point{9000, 9000}, size, screen, DockUnknown, 0)
	assert.Equal(t, Point{X: screen.MaxX() - size.W, Y: screen.MaxY() - size.H}, origin)
}

func TestClamp_OversizedContent(t *testing.T) {
	// Content larger than the screen pins to the screen origin.
	origin := Clamp(Point{500, 500}, Size{W: 4000, H: 3000}, testScreen)
	assert.Equal(t, Point{X: 0, Y: 0}, origin)
}

func TestDockEdge_String(t *testing.T) {
	assert.Equal(t, "bottom", DockBottom.String())
	assert.Equal(t, "left", DockLeft.String())
	assert.Equal(t, "right", DockRight.String())
	assert.Equal(t, "unknown", DockUnknown.String())
}
