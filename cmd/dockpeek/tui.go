package main

import (
	"github.com/spf13/cobra"

	"github.com/dockpeek/dockpeek/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal UI.

The TUI shows the daemon's current window list and lets you navigate it
from the keyboard. With mirroring enabled (the default) moving the TUI
selection also moves the overlay highlight, so the terminal and the
on-screen preview stay in sync.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.RunOptions{
		Config: getConfig(),
	})
}
