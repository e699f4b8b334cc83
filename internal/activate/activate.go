// Package activate raises windows via the compositor.
package activate

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/dockpeek/dockpeek/internal/model"
)

// DefaultCommand raises a window under Hyprland by its address.
const DefaultCommand = "hyprctl dispatch focuswindow address:{handle}"

const commandTimeout = 5 * time.Second

// Activator raises the window behind an entry. Failures are fire-and-forget:
// Raise logs and returns, the caller never branches on the outcome.
type Activator interface {
	Raise(entry model.WindowEntry)
}

// CommandActivator runs a configurable command template. Occurrences of
// {handle} and {title} in the template are replaced with the entry's fields
// before execution.
type CommandActivator struct {
	template string
	logger   *slog.Logger
}

// NewCommandActivator creates an activator running the given template.
// An empty template falls back to DefaultCommand.
func NewCommandActivator(template string, logger *slog.Logger) *CommandActivator {
	if strings.TrimSpace(template) == "" {
		template = DefaultCommand
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandActivator{template: template, logger: logger}
}

// Raise runs the activation command for the entry. The command executes
// on its own goroutine; Raise returns before it finishes so a slow or
// hung compositor never stalls the caller.
func (a *CommandActivator) Raise(entry model.WindowEntry) {
	cmdline := expandTemplate(a.template, entry)

	parts := strings.Fields(cmdline)
	if len(parts) == 0 {
		a.logger.Debug("empty activation command, skipping", "handle", entry.Handle)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		c := exec.CommandContext(ctx, parts[0], parts[1:]...)
		if out, err := c.CombinedOutput(); err != nil {
			a.logger.Debug("window activation failed",
				"handle", entry.Handle,
				"command", parts[0],
				"output", strings.TrimSpace(string(out)),
				"error", fmt.Sprintf("%v", err))
		}
	}()
}

func expandTemplate(template string, entry model.WindowEntry) string {
	r := strings.NewReplacer(
		"{handle}", entry.Handle,
		"{title}", entry.Title,
	)
	return r.Replace(template)
}

// Noop is an Activator that does nothing. Used in tests and as the
// fallback when activation is disabled.
type Noop struct{}

// Raise does nothing.
func (Noop) Raise(model.WindowEntry) {}
