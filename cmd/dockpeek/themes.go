package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dockpeek/dockpeek/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available overlay themes",
	Long: `List the themes the daemon can load, bundled themes first, then any
user themes found under ~/.config/dockpeek/themes/. A user theme with
the same name as a bundled one shadows it.

Set the active theme in the daemon config:

  [theme]
  name = "minimal"`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	themes, err := theme.ListAvailableThemes()
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}

	for _, t := range themes {
		marker := " "
		if t.IsDefault {
			marker = "*"
		}
		kind := "user"
		if t.IsBundled {
			kind = "bundled"
		}
		fmt.Printf("%s %-16s %-8s %s\n", marker, t.Name, kind, t.Path)
	}
	return nil
}
