package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dockpeek/dockpeek/internal/config"
)

func TestCardHighlighted(t *testing.T) {
	tests := []struct {
		name     string
		hovered  bool
		selected bool
		cycling  bool
		expected bool
	}{
		{"nothing", false, false, false, false},
		{"hover only", true, false, false, true},
		{"selected only", false, true, false, true},
		{"hover and selected", true, true, false, true},
		{"cycling ignores hover", true, false, true, false},
		{"cycling follows selection", false, true, true, true},
		{"cycling hover and selected", true, true, true, true},
		{"cycling nothing", false, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cardHighlighted(tt.hovered, tt.selected, tt.cycling))
		})
	}
}

func TestEaseOutCubic(t *testing.T) {
	// Endpoints are exact
	assert.Equal(t, 0.0, easeOutCubic(0))
	assert.Equal(t, 1.0, easeOutCubic(1))

	// Out-of-range input clamps
	assert.Equal(t, 0.0, easeOutCubic(-0.5))
	assert.Equal(t, 1.0, easeOutCubic(1.5))

	// Monotonically increasing
	prev := 0.0
	for t0 := 0.05; t0 < 1.0; t0 += 0.05 {
		v := easeOutCubic(t0)
		assert.Greater(t, v, prev, "not monotonic at t=%v", t0)
		prev = v
	}

	// Ease-out: first half covers more than half the distance
	assert.Greater(t, easeOutCubic(0.5), 0.5)
}

func TestEaseInOutCubic(t *testing.T) {
	// Endpoints are exact
	assert.Equal(t, 0.0, easeInOutCubic(0))
	assert.Equal(t, 1.0, easeInOutCubic(1))

	// Out-of-range input clamps
	assert.Equal(t, 0.0, easeInOutCubic(-0.5))
	assert.Equal(t, 1.0, easeInOutCubic(1.5))

	// Symmetric: halfway in time is halfway in distance
	assert.InDelta(t, 0.5, easeInOutCubic(0.5), 1e-9)

	// Slow start, slow finish
	assert.Less(t, easeInOutCubic(0.25), 0.25)
	assert.Greater(t, easeInOutCubic(0.75), 0.75)

	// Monotonically increasing
	prev := 0.0
	for t0 := 0.05; t0 < 1.0; t0 += 0.05 {
		v := easeInOutCubic(t0)
		assert.Greater(t, v, prev, "not monotonic at t=%v", t0)
		prev = v
	}
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 10.0, lerp(10, 20, 0))
	assert.Equal(t, 20.0, lerp(10, 20, 1))
	assert.Equal(t, 15.0, lerp(10, 20, 0.5))
	assert.Equal(t, -5.0, lerp(0, -10, 0.5))
}

func TestDeckSize(t *testing.T) {
	cfg := config.DefaultDaemonConfig()
	cfg.Display.CardWidth = 220
	cfg.Display.CardHeight = 150
	cfg.Display.Padding = 16

	t.Run("empty deck is padding only", func(t *testing.T) {
		size := deckSize(0, cfg, 0)
		assert.Equal(t, 32.0, size.W)
		assert.Equal(t, 32.0+150+titleRowHeight+appNameRowHeight, size.H)
	})

	t.Run("cards and gaps", func(t *testing.T) {
		size := deckSize(3, cfg, 0)
		// 2*16 padding + 3*220 cards + 2*8 gaps
		assert.Equal(t, 708.0, size.W)
	})

	t.Run("width capped", func(t *testing.T) {
		size := deckSize(10, cfg, 960)
		assert.Equal(t, 960.0, size.W)
	})

	t.Run("cap not applied when under", func(t *testing.T) {
		size := deckSize(1, cfg, 960)
		assert.Equal(t, 252.0, size.W)
	})

	t.Run("zero cap means uncapped", func(t *testing.T) {
		size := deckSize(10, cfg, 0)
		assert.Greater(t, size.W, 2000.0)
	})
}

func TestSanitizeClassName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Firefox", "firefox"},
		{"Google Chrome", "google-chrome"},
		{"org.gnome.Nautilus", "org-gnome-nautilus"},
		{"app_with_underscores", "app-with-underscores"},
		{"  leading spaces", "leading-spaces"},
		{"trailing. ", "trailing"},
		{"UPPER123", "upper123"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeClassName(tt.input))
		})
	}
}

func TestDisplayError(t *testing.T) {
	plain := &DisplayError{Message: "no display available"}
	assert.Equal(t, "no display available", plain.Error())
	assert.Nil(t, plain.Unwrap())

	cause := &DisplayError{Message: "inner"}
	wrapped := &DisplayError{Message: "outer", Cause: cause}
	assert.Equal(t, "outer: inner", wrapped.Error())
	assert.Equal(t, cause, wrapped.Unwrap())
}
