// Package model defines the core data structures for dockpeek.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// WindowEntry represents one open window of an application as reported by
// the external dispatcher. Entries are consumed read-only; dockpeek never
// mutates a window, it only displays and activates it.
type WindowEntry struct {
	// ID is assigned by dockpeek at ingest and identifies the entry for
	// the lifetime of the preview session.
	ID string `json:"id"`

	// Handle is the compositor's opaque window identifier (for Hyprland
	// this is the window address). It is the only field the activator needs.
	Handle string `json:"handle"`

	// Title is the window title at capture time. May be empty.
	Title string `json:"title,omitempty"`

	// ThumbnailPath points at the screenshot the capture collaborator
	// produced for this window. May be empty or not yet exist on disk;
	// the card shows a placeholder until the file appears.
	ThumbnailPath string `json:"thumbnail_path,omitempty"`

	// IngestedAt is when the entry arrived over the control interface.
	IngestedAt int64 `json:"ingested_at"`
}

// Validation errors.
var (
	ErrEmptyID     = errors.New("id cannot be empty")
	ErrEmptyHandle = errors.New("handle cannot be empty")
)

// NewWindowEntry creates a WindowEntry with a generated ULID and ingest
// timestamp.
func NewWindowEntry(handle, title, thumbnailPath string) (*WindowEntry, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &WindowEntry{
		ID:            id.String(),
		Handle:        handle,
		Title:         title,
		ThumbnailPath: thumbnailPath,
		IngestedAt:    time.Now().Unix(),
	}, nil
}

// Validate checks that the entry has all required fields.
func (w *WindowEntry) Validate() error {
	if w.ID == "" {
		return ErrEmptyID
	}
	if w.Handle == "" {
		return ErrEmptyHandle
	}
	return nil
}

// DisplayTitle returns the title, falling back to the handle when the
// compositor reported none.
func (w *WindowEntry) DisplayTitle() string {
	if strings.TrimSpace(w.Title) != "" {
		return w.Title
	}
	return w.Handle
}

// TitleTruncated returns the title truncated to maxLen characters.
// If the title is longer, it is truncated and "..." is appended.
func (w *WindowEntry) TitleTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	// Collapse whitespace and newlines to single spaces
	title := strings.Join(strings.Fields(w.DisplayTitle()), " ")

	if len(title) <= maxLen {
		return title
	}
	if maxLen <= 3 {
		return title[:maxLen]
	}
	return title[:maxLen-3] + "..."
}

// HasThumbnail reports whether a thumbnail path was supplied at ingest.
// It does not check the file exists; arrival may lag the entry.
func (w *WindowEntry) HasThumbnail() bool {
	return w.ThumbnailPath != ""
}

// IngestedAtTime returns the ingest timestamp as a time.Time.
func (w *WindowEntry) IngestedAtTime() time.Time {
	return time.Unix(w.IngestedAt, 0)
}

// Clone creates a copy of the entry.
func (w *WindowEntry) Clone() *WindowEntry {
	clone := *w
	return &clone
}
