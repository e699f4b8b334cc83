package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide the preview overlay",
	Long: `Hide the preview overlay immediately.

Typically called by the dock when the pointer leaves both the icon and
the overlay. Hiding an already-hidden overlay is not an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Hide(); err != nil {
			return fmt.Errorf("hide failed: %w", err)
		}
		return nil
	},
}

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Advance the highlight to the next window",
	Long: `Advance the overlay's highlighted card to the next window, wrapping
from the last back to the first. Enables cycling mode if the overlay
was shown by pointer. Does nothing when the overlay is hidden.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Cycle(); err != nil {
			return fmt.Errorf("cycle failed: %w", err)
		}
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Activate the highlighted window and hide the overlay",
	Long: `Activate the currently highlighted window, as if its card had been
clicked, then hide the overlay. Does nothing when the overlay is
hidden.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.SelectCurrent(); err != nil {
			return fmt.Errorf("select failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(cycleCmd)
	rootCmd.AddCommand(selectCmd)
}
