package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader owns the GTK CSS provider for the overlay and swaps its
// content when themes load or change on disk.
type Loader struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	provider    *gtk.CSSProvider
	themesDir   string
	currentName string
	theme       *Theme
	watcher     *Watcher
}

// NewLoader creates a loader. The provider is not attached to a
// display until Apply.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	themesDir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		themesDir = ""
	}

	return &Loader{
		logger:    logger,
		provider:  gtk.NewCSSProvider(),
		themesDir: themesDir,
	}
}

// ThemesDir returns the user themes directory,
// ~/.config/dockpeek/themes with the usual XDG override.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "dockpeek", "themes"), nil
}

// LoadTheme loads a theme by name into the provider. A user theme file
// shadows a bundled theme of the same name; an unknown name falls back
// to the bundled default rather than failing, so a typo in the config
// still produces a styled overlay.
func (l *Loader) LoadTheme(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		name = DefaultThemeName
	}

	if l.themesDir != "" {
		themePath := filepath.Join(l.themesDir, name+".css")
		if _, err := os.Stat(themePath); err == nil {
			theme, err := NewTheme(name, themePath)
			if err != nil {
				l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
			} else {
				l.install(theme)
				l.logger.Info("loaded user theme", "name", name, "path", themePath)
				return nil
			}
		}
	}

	if css, found := GetEmbeddedTheme(name); found {
		l.install(&Theme{
			Name:      name,
			CSS:       ProcessImports(css, "", nil),
			IsDefault: name == DefaultThemeName,
		})
		l.logger.Info("loaded bundled theme", "name", name)
		return nil
	}

	l.logger.Warn("theme not found, using default", "theme", name)
	css, _ := GetEmbeddedTheme(DefaultThemeName)
	l.install(&Theme{
		Name:      DefaultThemeName,
		CSS:       ProcessImports(css, "", nil),
		IsDefault: true,
	})
	return nil
}

// install swaps the provider content. Caller holds the lock.
func (l *Loader) install(theme *Theme) {
	l.provider.LoadFromString(theme.CSS)
	l.theme = theme
	l.currentName = theme.Name
}

// Apply attaches the provider to a display at application priority.
// With a nil display the GDK default is used; call this after GTK is
// initialized.
func (l *Loader) Apply(display *gdk.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	l.logger.Debug("applied theme to display", "name", l.currentName)
}

// CurrentTheme returns the name of the loaded theme.
func (l *Loader) CurrentTheme() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentName
}

// StartHotReload watches the current theme file and pushes changed CSS
// into the provider. Bundled themes have no file and are not watched.
func (l *Loader) StartHotReload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.theme == nil || l.theme.IsDefault {
		l.logger.Debug("bundled theme active, hot-reload not started")
		return
	}

	if l.watcher != nil {
		l.watcher.Stop()
	}

	l.watcher = NewWatcher(l.theme, l.logger)
	l.watcher.SetChangeCallback(func(css string) {
		l.mu.Lock()
		l.provider.LoadFromString(css)
		l.mu.Unlock()
		l.logger.Info("hot-reloaded theme", "name", l.currentName)
	})

	if err := l.watcher.Start(ctx); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
	}
}

// StopHotReload stops the watcher if one is running.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}
