package dbus

import (
	"fmt"

	"github.com/dockpeek/dockpeek/internal/geom"
	"github.com/dockpeek/dockpeek/internal/model"
)

// ShowRequest carries the raw parameters of a Show call. The window fields
// arrive as parallel string arrays because D-Bus has no optional struct
// members; titles and thumbnails shorter than handles are padded with
// empty strings.
type ShowRequest struct {
	AppName    string
	Handles    []string
	Titles     []string
	Thumbnails []string
	PointerX   float64
	PointerY   float64
	HasPointer bool
}

// Pointer returns the request's pointer location, or geom.NoLocation for a
// keyboard-triggered request. The sentinel never crosses the wire; it is
// reconstructed from the has_pointer flag here.
func (r *ShowRequest) Pointer() geom.Point {
	if !r.HasPointer {
		return geom.NoLocation
	}
	return geom.Point{X: r.PointerX, Y: r.PointerY}
}

// Entries converts the parallel arrays to window entries, stamping each
// with a fresh ID. Entries with an empty handle are rejected.
func (r *ShowRequest) Entries() ([]model.WindowEntry, error) {
	entries := make([]model.WindowEntry, 0, len(r.Handles))
	for i, handle := range r.Handles {
		if handle == "" {
			return nil, fmt.Errorf("window %d: empty handle", i)
		}

		entry, err := model.NewWindowEntry(handle, stringAt(r.Titles, i), stringAt(r.Thumbnails, i))
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", i, err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

func stringAt(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// WindowInfo is one window as reported by the Windows method.
type WindowInfo struct {
	Handle    string `json:"handle" yaml:"handle"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// DisplayTitle returns the title, falling back to the handle.
func (w WindowInfo) DisplayTitle() string {
	if w.Title != "" {
		return w.Title
	}
	return w.Handle
}

// Status is the daemon state reported by the Status method.
type Status struct {
	Visible     bool   `json:"visible" yaml:"visible"`
	App         string `json:"app,omitempty" yaml:"app,omitempty"`
	WindowCount uint32 `json:"window_count" yaml:"window_count"`
	Session     string `json:"session,omitempty" yaml:"session,omitempty"`
	ShownAt     int64  `json:"shown_at,omitempty" yaml:"shown_at,omitempty"`
}
