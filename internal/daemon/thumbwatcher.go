package daemon

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ThumbWatcher observes the thumbnail spool directory. The capture
// collaborator drops images in asynchronously; cards show a placeholder
// until the file lands, then the arrival callback refreshes them.
type ThumbWatcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	spoolDir string
	watcher  *fsnotify.Watcher

	onArrival func(path string)

	doneCh  chan struct{}
	running bool
}

// NewThumbWatcher creates a watcher for the given spool directory.
func NewThumbWatcher(spoolDir string, logger *slog.Logger) *ThumbWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ThumbWatcher{
		logger:   logger,
		spoolDir: spoolDir,
	}
}

// SetArrivalCallback sets the callback invoked with the path of each
// thumbnail that appears. The callback runs on the watcher goroutine;
// schedule UI work onto the UI queue.
func (w *ThumbWatcher) SetArrivalCallback(callback func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onArrival = callback
}

// Start creates the spool directory if missing and begins watching it.
func (w *ThumbWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	if err := os.MkdirAll(w.spoolDir, 0755); err != nil {
		return fmt.Errorf("failed to create spool directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(w.spoolDir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch spool directory: %w", err)
	}

	w.watcher = watcher
	w.doneCh = make(chan struct{})
	w.running = true

	go w.watchLoop()

	w.logger.Debug("thumbnail watcher started", "dir", w.spoolDir)
	return nil
}

// Stop closes the watcher.
func (w *ThumbWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	watcher := w.watcher
	doneCh := w.doneCh
	w.mu.Unlock()

	watcher.Close()
	<-doneCh
	w.logger.Debug("thumbnail watcher stopped")
}

func (w *ThumbWatcher) watchLoop() {
	defer close(w.doneCh)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isImage(event.Name) {
				continue
			}

			w.mu.Lock()
			callback := w.onArrival
			w.mu.Unlock()

			w.logger.Debug("thumbnail arrived", "path", event.Name)
			if callback != nil {
				callback(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Debug("thumbnail watcher error", "error", err)
		}
	}
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}
