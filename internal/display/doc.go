// Package display implements the GTK4/libadwaita overlay surface.
// It owns the layer-shell window, the horizontal card deck, thumbnail
// cards, monitor enumeration, and frame animation.
package display
