package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Long: `Query the daemon for its current state: whether the overlay is
visible, which application it is showing, how many windows, and the
session ID.

The exit code is 0 when the overlay is visible and 1 when it is hidden,
so scripts can branch on it:

  dockpeek status -f json | jq .
  if dockpeek status >/dev/null; then dockpeek hide; fi`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}
	defer client.Close()

	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	switch cfg.Output.Format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(status); err != nil {
			return err
		}
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		if err := encoder.Encode(status); err != nil {
			return err
		}
	default:
		if !status.Visible {
			fmt.Println("hidden")
		} else {
			fmt.Printf("visible  app=%s  windows=%d", status.App, status.WindowCount)
			if status.Session != "" {
				fmt.Printf("  session=%s", status.Session)
			}
			if status.ShownAt > 0 {
				fmt.Printf("  shown %s", humanize.Time(time.Unix(status.ShownAt, 0)))
			}
			fmt.Println()
		}
	}

	if !status.Visible {
		// Silent non-zero exit so scripts can branch on visibility
		os.Exit(1)
	}
	return nil
}
