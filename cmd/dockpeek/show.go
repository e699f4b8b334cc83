package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dockpeek/dockpeek/internal/geom"
)

var showOpts struct {
	at         string
	keyboard   bool
	fromStdin  bool
	titles     []string
	thumbnails []string
}

var showCmd = &cobra.Command{
	Use:   "show <app> [handle...]",
	Short: "Show the preview overlay for an application",
	Long: `Show the preview overlay for an application's windows.

Window handles are passed as positional arguments after the app name,
with optional parallel --title and --thumbnail flags. With --stdin the
window list is read from standard input instead, one window per line as
tab-separated fields: handle, title, thumbnail path (title and
thumbnail may be empty).

The overlay anchors at the pointer position given with --at. With
--keyboard (or when --at is omitted) the overlay centers on the screen
and opens in cycling mode, ready for "dockpeek cycle".

Prints the session ID assigned by the daemon.

Examples:
  dockpeek show firefox 0x4a 0x4b --title "Inbox" --title "Docs" --at 960,1055
  wlrctl window list | awk '...' | dockpeek show firefox --stdin --keyboard`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showOpts.at, "at", "",
		"Pointer position as X,Y in global pixels")
	showCmd.Flags().BoolVar(&showOpts.keyboard, "keyboard", false,
		"Keyboard-triggered: center the overlay and enable cycling")
	showCmd.Flags().BoolVar(&showOpts.fromStdin, "stdin", false,
		"Read the window list from standard input")
	showCmd.Flags().StringArrayVar(&showOpts.titles, "title", nil,
		"Window title, repeat per handle in order")
	showCmd.Flags().StringArrayVar(&showOpts.thumbnails, "thumbnail", nil,
		"Thumbnail image path, repeat per handle in order")
}

func runShow(cmd *cobra.Command, args []string) error {
	appName := args[0]

	var handles, titles, thumbnails []string
	var err error
	if showOpts.fromStdin {
		if len(args) > 1 {
			return fmt.Errorf("cannot combine positional handles with --stdin")
		}
		handles, titles, thumbnails, err = readWindowsFromStdin(os.Stdin)
		if err != nil {
			return err
		}
	} else {
		handles = args[1:]
		titles = padTo(showOpts.titles, len(handles))
		thumbnails = padTo(showOpts.thumbnails, len(handles))
	}

	if len(handles) == 0 {
		return fmt.Errorf("no windows given (pass handles or use --stdin)")
	}
	if len(showOpts.titles) > len(handles) || len(showOpts.thumbnails) > len(handles) {
		return fmt.Errorf("more --title/--thumbnail values than handles")
	}

	pointer := geom.NoLocation
	if showOpts.at != "" {
		if showOpts.keyboard {
			return fmt.Errorf("--at and --keyboard are mutually exclusive")
		}
		pointer, err = parsePointer(showOpts.at)
		if err != nil {
			return err
		}
	}

	client, err := getClient()
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := client.Show(appName, handles, titles, thumbnails, pointer)
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}

	fmt.Println(session)
	return nil
}

// parsePointer parses "X,Y" into a point.
func parsePointer(s string) (geom.Point, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return geom.NoLocation, fmt.Errorf("invalid --at %q (want X,Y)", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.NoLocation, fmt.Errorf("invalid --at X: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.NoLocation, fmt.Errorf("invalid --at Y: %w", err)
	}
	return geom.Point{X: x, Y: y}, nil
}

// readWindowsFromStdin parses tab-separated window lines. Blank lines
// and lines starting with # are skipped.
func readWindowsFromStdin(r *os.File) (handles, titles, thumbnails []string, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		handles = append(handles, fields[0])
		if len(fields) > 1 {
			titles = append(titles, fields[1])
		} else {
			titles = append(titles, "")
		}
		if len(fields) > 2 {
			thumbnails = append(thumbnails, fields[2])
		} else {
			thumbnails = append(thumbnails, "")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return handles, titles, thumbnails, nil
}

// padTo extends a slice with empty strings to the given length.
func padTo(values []string, n int) []string {
	out := make([]string, n)
	copy(out, values)
	return out
}
