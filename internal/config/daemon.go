package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "200ms", "5s", "1m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Try parsing as integer (milliseconds) first
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	// Parse as duration string (e.g., "200ms", "5s", "1m")
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '200ms', '5s', '1m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Milliseconds returns the duration in milliseconds.
func (d Duration) Milliseconds() int {
	return int(time.Duration(d).Milliseconds())
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// DaemonConfig is the configuration for dockpeekd.
// Loaded from ~/.config/dockpeek/dockpeekd.toml
type DaemonConfig struct {
	Display    DisplayConfig    `toml:"display"`
	Animation  AnimationConfig  `toml:"animation"`
	Dock       DockConfig       `toml:"dock"`
	Activate   ActivateConfig   `toml:"activate"`
	Thumbnails ThumbnailsConfig `toml:"thumbnails"`
	Audio      AudioConfig      `toml:"audio"`
	Theme      ThemeConfig      `toml:"theme"`
}

// DisplayConfig contains overlay surface settings.
type DisplayConfig struct {
	CardWidth     int `toml:"card_width"`     // Thumbnail card width in pixels
	CardHeight    int `toml:"card_height"`    // Thumbnail card height in pixels
	Padding       int `toml:"padding"`        // Inner padding around the deck
	FallbackWidth int `toml:"fallback_width"` // Deck width cap when no screen is known
	Monitor       int `toml:"monitor"`        // 0 = follow pointer/best-guess, 1+ = pin to monitor
}

// AnimationConfig contains animation timings.
type AnimationConfig struct {
	Frame    Duration `toml:"frame"`    // Frame move/resize tween
	Entrance Duration `toml:"entrance"` // Deck entrance spring
	Scroll   Duration `toml:"scroll"`   // Selection scroll centering
}

// DockConfig locates the dock for placement avoidance.
// Position detection is external; these values are the static answer.
type DockConfig struct {
	Position string `toml:"position"` // "bottom", "left", "right", "unknown"
	Height   int    `toml:"height"`   // Dock thickness in pixels (width for side docks)
}

// ActivateConfig contains window activation settings.
type ActivateConfig struct {
	Command string `toml:"command"` // Template; {handle} and {title} are expanded
}

// ThumbnailsConfig contains thumbnail spool settings.
type ThumbnailsConfig struct {
	SpoolDir string `toml:"spool_dir"` // Directory the capture collaborator writes into
}

// AudioConfig contains audio feedback settings.
type AudioConfig struct {
	Enabled     bool   `toml:"enabled"`
	Volume      int    `toml:"volume"`       // 0-100
	SelectSound string `toml:"select_sound"` // Sample played on selection; empty disables
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without .css extension
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// ValidDockPositions returns all valid dock position values.
func ValidDockPositions() []string {
	return []string{"bottom", "left", "right", "unknown"}
}

// DefaultDaemonConfig returns a new DaemonConfig with default values.
func DefaultDaemonConfig() *DaemonConfig {
	return &DaemonConfig{
		Display: DisplayConfig{
			CardWidth:     220,
			CardHeight:    150,
			Padding:       16,
			FallbackWidth: 960,
			Monitor:       0,
		},
		Animation: AnimationConfig{
			Frame:    Duration(200 * time.Millisecond),
			Entrance: Duration(200 * time.Millisecond),
			Scroll:   Duration(150 * time.Millisecond),
		},
		Dock: DockConfig{
			Position: "bottom",
			Height:   64,
		},
		Activate: ActivateConfig{
			Command: "", // Empty uses the activator's default
		},
		Thumbnails: ThumbnailsConfig{
			SpoolDir: DefaultSpoolDir(),
		},
		Audio: AudioConfig{
			Enabled:     false,
			Volume:      80,
			SelectSound: "",
		},
		Theme: ThemeConfig{
			Name:        "default",
			ColorScheme: string(ColorSchemeSystem),
		},
	}
}

// DefaultSpoolDir returns the default thumbnail spool directory.
// Uses XDG_CACHE_HOME if set, otherwise ~/.cache.
func DefaultSpoolDir() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "dockpeek", "thumbs")
}

// DaemonConfigPath returns the path to the daemon config file.
func DaemonConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "dockpeek", "dockpeekd.toml"), nil
}

// LoadDaemonConfig loads the daemon configuration from disk.
// If the file doesn't exist, returns the default configuration.
func LoadDaemonConfig() (*DaemonConfig, error) {
	path, err := DaemonConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDaemonConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	config := DefaultDaemonConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// SaveDaemonConfig saves the daemon configuration to disk.
func SaveDaemonConfig(config *DaemonConfig) error {
	path, err := DaemonConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *DaemonConfig) Validate() error {
	validPos := false
	for _, p := range ValidDockPositions() {
		if c.Dock.Position == p {
			validPos = true
			break
		}
	}
	if !validPos {
		return fmt.Errorf("invalid dock position %q, must be one of: %v", c.Dock.Position, ValidDockPositions())
	}
	if c.Dock.Height < 0 || c.Dock.Height > 1000 {
		return fmt.Errorf("dock height must be between 0 and 1000, got %d", c.Dock.Height)
	}

	if c.Display.CardWidth < 50 || c.Display.CardWidth > 1000 {
		return fmt.Errorf("card_width must be between 50 and 1000, got %d", c.Display.CardWidth)
	}
	if c.Display.CardHeight < 50 || c.Display.CardHeight > 1000 {
		return fmt.Errorf("card_height must be between 50 and 1000, got %d", c.Display.CardHeight)
	}
	if c.Display.FallbackWidth < 100 {
		return fmt.Errorf("fallback_width must be at least 100, got %d", c.Display.FallbackWidth)
	}

	if c.Animation.Frame.Duration() < 0 {
		return fmt.Errorf("animation frame duration cannot be negative")
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	validScheme := false
	for _, s := range ValidColorSchemes() {
		if c.Theme.ColorScheme == string(s) {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}

	return nil
}

// SelectSoundPath returns the selection sound path with ~ expanded.
func (c *DaemonConfig) SelectSoundPath() string {
	return expandPath(c.Audio.SelectSound)
}

// SpoolDir returns the thumbnail spool directory with ~ expanded.
func (c *DaemonConfig) SpoolDir() string {
	if c.Thumbnails.SpoolDir == "" {
		return DefaultSpoolDir()
	}
	return expandPath(c.Thumbnails.SpoolDir)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
