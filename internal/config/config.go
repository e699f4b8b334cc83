// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default CLI configuration values.
const (
	DefaultDBusTimeout  = "2s"
	DefaultOutputFormat = "text"
)

// Config represents the dockpeek CLI configuration.
// Loaded from ~/.config/dockpeek/config.toml
type Config struct {
	DBus   DBusConfig   `toml:"dbus"`
	Output OutputConfig `toml:"output"`
	TUI    TUIConfig    `toml:"tui"`
}

// DBusConfig holds session-bus client settings.
type DBusConfig struct {
	Timeout Duration `toml:"timeout"` // Per-call timeout for daemon methods
}

// OutputConfig holds default output settings for status-style commands.
type OutputConfig struct {
	Format string `toml:"format"` // text, json, yaml
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp      bool `toml:"show_help"`
	ShowTitles    bool `toml:"show_titles"`    // Show window titles next to handles
	MirrorOverlay bool `toml:"mirror_overlay"` // Mirror TUI cycling to the overlay
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DBus: DBusConfig{
			Timeout: Duration(2 * time.Second),
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
		TUI: TUIConfig{
			ShowHelp:      true,
			ShowTitles:    true,
			MirrorOverlay: true,
		},
	}
}

// ConfigPath returns the path to the CLI config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dockpeek", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the CLI configuration.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return errors.New("output format must be text, json, or yaml")
	}
	if c.DBus.Timeout.Duration() <= 0 {
		return errors.New("dbus timeout must be positive")
	}
	return nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
