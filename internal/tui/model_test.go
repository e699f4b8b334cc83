package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dockpeek/dockpeek/internal/config"
	"github.com/dockpeek/dockpeek/internal/dbus"
)

type fakeClient struct {
	app     string
	windows []dbus.WindowInfo
	status  dbus.Status
	cycles  int
	selects int
	hides   int
}

func (f *fakeClient) Windows() (string, []dbus.WindowInfo, error) {
	return f.app, f.windows, nil
}

func (f *fakeClient) Status() (dbus.Status, error) { return f.status, nil }
func (f *fakeClient) Cycle() error                 { f.cycles++; return nil }
func (f *fakeClient) SelectCurrent() error         { f.selects++; return nil }
func (f *fakeClient) Hide() error                  { f.hides++; return nil }

func TestCycleSteps(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		target   int
		count    int
		expected int
	}{
		{"no move", 1, 1, 3, 0},
		{"one forward", 0, 1, 3, 1},
		{"wraparound backward", 2, 0, 3, 1},
		{"backward one in three", 1, 0, 3, 2},
		{"full span", 0, 4, 5, 4},
		{"empty list", 0, 0, 0, 0},
		{"single entry", 0, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cycleSteps(tt.current, tt.target, tt.count))
		})
	}
}

func TestWindowItem(t *testing.T) {
	withTitle := windowItem{window: dbus.WindowInfo{Handle: "0x1", Title: "Editor"}}
	assert.Equal(t, "Editor", withTitle.Title())
	assert.Equal(t, "0x1", withTitle.Description())
	assert.Contains(t, withTitle.FilterValue(), "Editor")
	assert.Contains(t, withTitle.FilterValue(), "0x1")

	noTitle := windowItem{window: dbus.WindowInfo{Handle: "0x2"}}
	assert.Equal(t, "0x2", noTitle.Title())

	withThumb := windowItem{window: dbus.WindowInfo{Handle: "0x3", Thumbnail: "/tmp/t.png"}}
	assert.Contains(t, withThumb.Description(), "thumbnail ready")
}

func TestNew_MirrorFollowsConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TUI.MirrorOverlay = false

	m := New(cfg, &fakeClient{})
	assert.False(t, m.mirror)

	cfg.TUI.MirrorOverlay = true
	m = New(cfg, &fakeClient{})
	assert.True(t, m.mirror)
}

func TestBuildListItems(t *testing.T) {
	m := New(config.DefaultConfig(), &fakeClient{})
	m.windows = []dbus.WindowInfo{
		{Handle: "0x1", Title: "one"},
		{Handle: "0x2", Title: "two"},
	}

	items := m.buildListItems()
	assert.Len(t, items, 2)

	first, ok := items[0].(windowItem)
	assert.True(t, ok)
	assert.Equal(t, 0, first.index)
	assert.Equal(t, "0x1", first.window.Handle)
}

func TestWindowsMsg_UpdatesList(t *testing.T) {
	m := New(config.DefaultConfig(), &fakeClient{})

	updated, _ := m.Update(windowsMsg{
		app: "firefox",
		windows: []dbus.WindowInfo{
			{Handle: "0x1", Title: "tab one"},
		},
	})

	model := updated.(Model)
	assert.Equal(t, "firefox", model.appName)
	assert.Len(t, model.windows, 1)
	assert.Equal(t, "Window Preview · firefox", model.list.Title)
}
