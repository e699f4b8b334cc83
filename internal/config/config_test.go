package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2*time.Second, cfg.DBus.Timeout.Duration())
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.True(t, cfg.TUI.ShowTitles)
	assert.True(t, cfg.TUI.MirrorOverlay)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	// Use a path that doesn't exist
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Output.Format, cfg.Output.Format)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[dbus]
timeout = "500ms"

[output]
format = "json"

[tui]
show_help = false
show_titles = false
mirror_overlay = false
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.DBus.Timeout.Duration())
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.TUI.ShowHelp)
	assert.False(t, cfg.TUI.ShowTitles)
	assert.False(t, cfg.TUI.MirrorOverlay)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	// A config with only some fields keeps defaults for the rest
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[output]
format = "yaml"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 2*time.Second, cfg.DBus.Timeout.Duration())
	assert.True(t, cfg.TUI.ShowHelp)
}

func TestLoadConfig_RejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	err := os.WriteFile(path, []byte("[output]\nformat = \"xml\"\n"), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.Output.Format = "json"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", loaded.Output.Format)
	assert.Equal(t, cfg.DBus.Timeout, loaded.DBus.Timeout)
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"200ms", 200 * time.Millisecond, false},
		{"5s", 5 * time.Second, false},
		{"1m", time.Minute, false},
		{"250", 250 * time.Millisecond, false}, // bare integer is milliseconds
		{"0", 0, false},
		{"later", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration(200 * time.Millisecond)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "200ms", string(text))
}
