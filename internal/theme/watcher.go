package theme

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher polls a user theme file and reports changed CSS. Bundled
// themes are embedded and never watched.
type Watcher struct {
	mu       sync.Mutex
	logger   *slog.Logger
	theme    *Theme
	interval time.Duration
	onChange func(css string)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for the given theme.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:   logger,
		theme:    theme,
		interval: time.Second,
	}
}

// SetChangeCallback registers the function called with the new CSS when
// the file changes. Must be set before Start.
func (w *Watcher) SetChangeCallback(callback func(css string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start begins polling. Starting a watcher for a bundled theme is a
// no-op, as is starting twice.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	if w.theme == nil || w.theme.IsDefault {
		w.logger.Debug("bundled theme, nothing to watch")
		return nil
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.poll(ctx, w.stopCh, w.doneCh)

	w.logger.Debug("theme watcher started", "path", w.theme.Path, "interval", w.interval)
	return nil
}

// Stop halts polling and waits for the poll goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stop, done := w.stopCh, w.doneCh
	w.mu.Unlock()

	close(stop)
	<-done
	w.logger.Debug("theme watcher stopped")
}

func (w *Watcher) poll(ctx context.Context, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check reloads the theme file if it changed and pushes the new CSS to
// the callback. A vanished file is logged once per tick and skipped;
// the previous CSS stays applied.
func (w *Watcher) check() {
	w.mu.Lock()
	theme := w.theme
	callback := w.onChange
	w.mu.Unlock()

	if _, err := os.Stat(theme.Path); err != nil {
		if os.IsNotExist(err) {
			w.logger.Debug("theme file missing, keeping current css", "path", theme.Path)
		}
		return
	}

	changed, err := theme.Reload()
	if err != nil {
		w.logger.Warn("failed to reload theme", "path", theme.Path, "error", err)
		return
	}
	if changed {
		w.logger.Info("theme file changed", "path", theme.Path)
		if callback != nil {
			callback(theme.CSS)
		}
	}
}
