// Package dock answers where the dock is. Detection itself lives outside
// the daemon; the shipping provider reads the answer from configuration.
package dock

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dockpeek/dockpeek/internal/geom"
)

// Provider reports the dock's screen edge and thickness. The placement
// code treats an unknown edge as "no dock avoidance".
type Provider interface {
	// Edge returns the screen edge the dock occupies.
	Edge() geom.DockEdge

	// Height returns the dock's thickness in pixels on the given screen.
	// For side docks this is the dock's width.
	Height(screen geom.Rect) float64
}

// ParseEdge maps a config string to a DockEdge. Empty and "unknown" both
// mean no avoidance.
func ParseEdge(s string) (geom.DockEdge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return geom.DockUnknown, nil
	case "bottom":
		return geom.DockBottom, nil
	case "left":
		return geom.DockLeft, nil
	case "right":
		return geom.DockRight, nil
	default:
		return geom.DockUnknown, fmt.Errorf("invalid dock position %q (must be bottom, left, right, or unknown)", s)
	}
}

// StaticProvider is a Provider with fixed values from configuration.
type StaticProvider struct {
	mu     sync.RWMutex
	edge   geom.DockEdge
	height float64
}

// NewStaticProvider creates a provider that always reports the given edge
// and height.
func NewStaticProvider(edge geom.DockEdge, height float64) *StaticProvider {
	return &StaticProvider{edge: edge, height: height}
}

// Edge returns the configured dock edge.
func (p *StaticProvider) Edge() geom.DockEdge {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.edge
}

// Height returns the configured dock thickness, independent of screen.
func (p *StaticProvider) Height(geom.Rect) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.height
}

// Update swaps the reported edge and height. Called on config reload.
func (p *StaticProvider) Update(edge geom.DockEdge, height float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.edge = edge
	p.height = height
}
