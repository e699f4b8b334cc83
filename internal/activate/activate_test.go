package activate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dockpeek/dockpeek/internal/model"
)

func TestExpandTemplate(t *testing.T) {
	entry := model.WindowEntry{Handle: "0x5602a1b2", Title: "Browser"}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "default command",
			template: DefaultCommand,
			want:     "hyprctl dispatch focuswindow address:0x5602a1b2",
		},
		{
			name:     "title placeholder",
			template: "wmctrl -a {title}",
			want:     "wmctrl -a Browser",
		},
		{
			name:     "both placeholders",
			template: "activate {handle} {title}",
			want:     "activate 0x5602a1b2 Browser",
		},
		{
			name:     "no placeholders",
			template: "true",
			want:     "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandTemplate(tt.template, entry))
		})
	}
}

func TestNewCommandActivator_EmptyTemplateFallsBack(t *testing.T) {
	a := NewCommandActivator("", nil)
	assert.Equal(t, DefaultCommand, a.template)

	a = NewCommandActivator("   ", nil)
	assert.Equal(t, DefaultCommand, a.template)

	a = NewCommandActivator("custom {handle}", nil)
	assert.Equal(t, "custom {handle}", a.template)
}

func TestCommandActivator_RaiseNeverPanics(t *testing.T) {
	// A command that does not exist must degrade to a logged no-op.
	a := NewCommandActivator("definitely-not-a-real-binary {handle}", nil)
	assert.NotPanics(t, func() {
		a.Raise(model.WindowEntry{Handle: "0xabc"})
	})
}

func TestCommandActivator_RaiseReturnsBeforeCommandFinishes(t *testing.T) {
	// A slow command must not stall the caller; it runs detached.
	a := NewCommandActivator("sleep 2", nil)

	start := time.Now()
	a.Raise(model.WindowEntry{Handle: "0xabc"})
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestNoop(t *testing.T) {
	var a Activator = Noop{}
	assert.NotPanics(t, func() {
		a.Raise(model.WindowEntry{Handle: "0xabc"})
	})
}
