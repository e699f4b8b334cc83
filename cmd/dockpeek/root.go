// Package main provides the CLI entrypoint for dockpeek.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dockpeek/dockpeek/internal/config"
	"github.com/dockpeek/dockpeek/internal/dbus"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		format     string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dockpeek",
	Short: "Control the dockpeek window preview daemon",
	Long: `dockpeek talks to the dockpeekd preview daemon over the session bus.

The daemon shows a hover preview of an application's windows above the
dock. This CLI is the control surface: the dock (or a script) calls
"dockpeek show" when the pointer dwells on an icon, and "dockpeek hide"
when it leaves. The cycle and select commands drive keyboard traversal.

Running dockpeek without a subcommand launches the interactive TUI.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// A --format flag overrides the config file default
		if globalOpts.format != "" {
			cfg.Output.Format = globalOpts.format
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/dockpeek/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.format, "format", "f", "",
		"Output format: text, json, yaml (default from config)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// getClient connects to the daemon over the session bus.
func getClient() (*dbus.Client, error) {
	client, err := dbus.NewClient(cfg.DBus.Timeout.Duration())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to dockpeekd (is it running?): %w", err)
	}
	return client, nil
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}

func main() {
	Execute()
}
