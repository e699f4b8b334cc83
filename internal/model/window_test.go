package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindowEntry(t *testing.T) {
	w, err := NewWindowEntry("0x5602a1b2c3d4", "Editor - main.go", "/tmp/spool/0x5602a1b2c3d4.png")
	require.NoError(t, err)

	assert.NotEmpty(t, w.ID)
	assert.Len(t, w.ID, 26) // ULID string length
	assert.Equal(t, "0x5602a1b2c3d4", w.Handle)
	assert.Equal(t, "Editor - main.go", w.Title)
	assert.Equal(t, "/tmp/spool/0x5602a1b2c3d4.png", w.ThumbnailPath)
	assert.Greater(t, w.IngestedAt, int64(0))
}

func TestWindowEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   WindowEntry
		wantErr error
	}{
		{
			name:    "valid",
			entry:   WindowEntry{ID: "01JXYZ", Handle: "0xabc"},
			wantErr: nil,
		},
		{
			name:    "missing id",
			entry:   WindowEntry{Handle: "0xabc"},
			wantErr: ErrEmptyID,
		},
		{
			name:    "missing handle",
			entry:   WindowEntry{ID: "01JXYZ"},
			wantErr: ErrEmptyHandle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWindowEntry_DisplayTitle(t *testing.T) {
	w := WindowEntry{Handle: "0xabc", Title: "Browser"}
	assert.Equal(t, "Browser", w.DisplayTitle())

	w.Title = "   "
	assert.Equal(t, "0xabc", w.DisplayTitle())

	w.Title = ""
	assert.Equal(t, "0xabc", w.DisplayTitle())
}

func TestWindowEntry_TitleTruncated(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		maxLen int
		want   string
	}{
		{"fits", "short", 20, "short"},
		{"truncated with ellipsis", "a very long window title here", 10, "a very ..."},
		{"collapses whitespace", "multi\n  line\ttitle", 40, "multi line title"},
		{"zero max", "anything", 0, ""},
		{"tiny max", "anything", 2, "an"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WindowEntry{Handle: "0xabc", Title: tt.title}
			got := w.TitleTruncated(tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), max(tt.maxLen, 0))
		})
	}
}

func TestWindowEntry_HasThumbnail(t *testing.T) {
	w := WindowEntry{Handle: "0xabc"}
	assert.False(t, w.HasThumbnail())

	w.ThumbnailPath = "/tmp/spool/x.png"
	assert.True(t, w.HasThumbnail())
}

func TestWindowEntry_Clone(t *testing.T) {
	w, err := NewWindowEntry("0xabc", "Title", "")
	require.NoError(t, err)

	clone := w.Clone()
	clone.Title = strings.ToUpper(clone.Title)

	assert.Equal(t, "Title", w.Title)
	assert.Equal(t, "TITLE", clone.Title)
	assert.Equal(t, w.ID, clone.ID)
}
