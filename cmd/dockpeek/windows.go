package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dockpeek/dockpeek/internal/dbus"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List the windows currently shown in the overlay",
	Long: `List the windows the overlay is currently showing, one per line as
tab-separated handle, title, and thumbnail path. The format matches
what "dockpeek show --stdin" accepts, so a window list can be captured
and replayed.

Prints nothing and exits 0 when the overlay is hidden.`,
	RunE: runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
}

// windowListing is the structured output for json/yaml formats.
type windowListing struct {
	App     string            `json:"app" yaml:"app"`
	Windows []dbus.WindowInfo `json:"windows" yaml:"windows"`
}

func runWindows(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}
	defer client.Close()

	app, windows, err := client.Windows()
	if err != nil {
		return fmt.Errorf("windows failed: %w", err)
	}

	switch cfg.Output.Format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(windowListing{App: app, Windows: windows})
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		return encoder.Encode(windowListing{App: app, Windows: windows})
	default:
		for _, w := range windows {
			fmt.Printf("%s\t%s\t%s\n", w.Handle, w.Title, w.Thumbnail)
		}
	}
	return nil
}
