package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dockpeek/dockpeek/internal/config"
)

func TestManager_DisabledPlaysNothing(t *testing.T) {
	cfg := config.DefaultDaemonConfig()
	cfg.Audio.Enabled = false

	m := NewManager(cfg, nil)
	// With audio disabled, PlaySelect is a no-op and never errors
	assert.NoError(t, m.PlaySelect())
}

func TestManager_MissingSoundIgnored(t *testing.T) {
	cfg := config.DefaultDaemonConfig()
	cfg.Audio.Enabled = true
	cfg.Audio.SelectSound = "/nonexistent/select.wav"

	m := NewManager(cfg, nil)
	// Missing file means no sound is resolved, PlaySelect is a no-op
	assert.NoError(t, m.PlaySelect())
}

func TestManager_UpdateConfigResolvesSound(t *testing.T) {
	tmpDir := t.TempDir()
	soundPath := filepath.Join(tmpDir, "click.wav")
	// An empty file is enough for resolution; decode only happens on play
	require.NoError(t, os.WriteFile(soundPath, []byte{}, 0644))

	cfg := config.DefaultDaemonConfig()
	m := NewManager(cfg, nil)

	updated := config.DefaultDaemonConfig()
	updated.Audio.Enabled = true
	updated.Audio.SelectSound = soundPath
	m.UpdateConfig(updated)

	m.mu.RLock()
	resolved := m.selectSound
	m.mu.RUnlock()
	assert.Equal(t, soundPath, resolved)
}

func TestManager_Volume(t *testing.T) {
	cfg := config.DefaultDaemonConfig()
	cfg.Audio.Volume = 50

	m := NewManager(cfg, nil)
	assert.InDelta(t, 0.5, m.GetVolume(), 0.001)

	m.SetVolume(1.5)
	assert.Equal(t, 1.0, m.GetVolume())

	m.SetVolume(-0.5)
	assert.Equal(t, 0.0, m.GetVolume())
}

func TestVolumeToDecibels(t *testing.T) {
	tests := []struct {
		volume   float64
		expected float64
	}{
		{1.0, 0},
		{0.5, -6.02},
		{0.25, -12.04},
		{0.1, -20},
		{0, -100},
		{-1, -100},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, volumeToDecibels(tt.volume), 0.01,
			"volume %v", tt.volume)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "sounds", "click.wav"), expandHome("~/sounds/click.wav"))
	assert.Equal(t, "/abs/click.wav", expandHome("/abs/click.wav"))
	assert.Equal(t, "", expandHome(""))
}
