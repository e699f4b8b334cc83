package daemon

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dockpeek/dockpeek/internal/config"
)

// ConfigWatcher polls the daemon config file and revalidates it on
// change. Only a config that passes validation reaches the reload
// callback; a broken edit is reported through the error callback and
// the running config stays in force.
type ConfigWatcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	configPath  string
	lastModTime time.Time
	current     *config.DaemonConfig
	interval    time.Duration

	onReload func(newConfig *config.DaemonConfig)
	onError  func(err error)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewConfigWatcher creates a watcher for the default daemon config path.
func NewConfigWatcher(logger *slog.Logger) (*ConfigWatcher, error) {
	configPath, err := config.DaemonConfigPath()
	if err != nil {
		return nil, err
	}

	return &ConfigWatcher{
		logger:     logger,
		configPath: configPath,
		interval:   time.Second,
	}, nil
}

// SetPollInterval overrides the polling interval. Call before Start.
func (w *ConfigWatcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = interval
}

// SetReloadCallback registers the function called with each validated
// new config.
func (w *ConfigWatcher) SetReloadCallback(callback func(newConfig *config.DaemonConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = callback
}

// SetErrorCallback registers the function called when a changed config
// fails to load or validate.
func (w *ConfigWatcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = callback
}

// Start begins polling. The initial config seeds the baseline so the
// first tick does not fire a spurious reload.
func (w *ConfigWatcher) Start(ctx context.Context, initialConfig *config.DaemonConfig) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	w.running = true
	w.current = initialConfig
	if info, err := os.Stat(w.configPath); err == nil {
		w.lastModTime = info.ModTime()
	}

	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.poll(ctx, w.stopCh, w.doneCh)

	w.logger.Debug("config watcher started", "path", w.configPath, "interval", w.interval)
	return nil
}

// Stop halts polling and waits for the poll goroutine to exit.
func (w *ConfigWatcher) Stop() {
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
	w.logger.Debug("config watcher stopped")
}

func (w *ConfigWatcher) poll(ctx context.Context, stopCh, doneCh chan struct{}) {
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

// check reloads the config if the file's mtime advanced. The mtime
// baseline moves even when validation fails, so a bad edit is reported
// once rather than every tick.
func (w *ConfigWatcher) check() {
	w.mu.Lock()
	onReload := w.onReload
	onError := w.onError
	lastModTime := w.lastModTime
	w.mu.Unlock()

	info, err := os.Stat(w.configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Debug("failed to stat config file", "path", w.configPath, "error", err)
		}
		return
	}

	modTime := info.ModTime()
	if !modTime.After(lastModTime) {
		return
	}

	w.mu.Lock()
	w.lastModTime = modTime
	w.mu.Unlock()

	w.logger.Debug("config file changed", "path", w.configPath, "modTime", modTime)

	newConfig, err := config.LoadDaemonConfig()
	if err != nil {
		w.logger.Warn("config file changed but validation failed", "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.mu.Lock()
	w.current = newConfig
	w.mu.Unlock()

	w.logger.Info("config reloaded")
	if onReload != nil {
		onReload(newConfig)
	}
}
