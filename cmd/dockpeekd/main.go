// Package main is the entry point for the dockpeekd preview daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/dockpeek/dockpeek/internal/activate"
	"github.com/dockpeek/dockpeek/internal/audio"
	"github.com/dockpeek/dockpeek/internal/config"
	"github.com/dockpeek/dockpeek/internal/daemon"
	"github.com/dockpeek/dockpeek/internal/dbus"
	"github.com/dockpeek/dockpeek/internal/dispatch"
	"github.com/dockpeek/dockpeek/internal/display"
	"github.com/dockpeek/dockpeek/internal/dock"
	"github.com/dockpeek/dockpeek/internal/model"
	"github.com/dockpeek/dockpeek/internal/preview"
	"github.com/dockpeek/dockpeek/internal/selection"
	"github.com/dockpeek/dockpeek/internal/theme"
)

const appID = "io.github.dockpeek"

var (
	// Build-time variables
	version = "dev"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *showVersion {
		fmt.Println("dockpeekd version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	runDaemon(logger)
}

// runDaemon wires the daemon together and runs the GTK main loop.
func runDaemon(logger *slog.Logger) {
	logger.Info("starting dockpeekd", "version", version)

	cfg, err := config.LoadDaemonConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	app := adw.NewApplication(appID, 0)

	// Shared state between GTK main loop and signal handlers
	var (
		dbusServer    *dbus.PreviewServer
		surface       *display.Surface
		controller    *preview.Controller
		themeLoader   *theme.Loader
		audioManager  *audio.Manager
		configWatcher *daemon.ConfigWatcher
		thumbWatcher  *daemon.ThumbWatcher
		running       atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		// Stop components in GTK main loop context
		glib.IdleAdd(func() {
			if running.Load() {
				if thumbWatcher != nil {
					thumbWatcher.Stop()
				}
				if configWatcher != nil {
					configWatcher.Stop()
				}
				if themeLoader != nil {
					themeLoader.StopHotReload()
				}
				if audioManager != nil {
					audioManager.Stop()
				}
				if dbusServer != nil {
					_ = dbusServer.Stop()
				}
				if surface != nil {
					surface.Destroy()
				}
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		queue := dispatch.NewMainLoop()
		sel := selection.NewState(queue)
		monitors := display.NewMonitors(cfg, logger)
		sessions := daemon.NewSessionTracker()

		// Theme
		themeLoader = theme.NewLoader(logger)
		if err := themeLoader.LoadTheme(cfg.Theme.Name); err != nil {
			logger.Warn("failed to load theme, using default", "error", err)
		}
		themeLoader.Apply(nil)
		themeLoader.StartHotReload(ctx)

		// Audio
		audioManager = audio.NewManager(cfg, logger)
		if err := audioManager.Start(); err != nil {
			logger.Warn("failed to start audio manager", "error", err)
		}

		// Overlay surface
		surface, err = display.NewSurface(&app.Application, cfg, sel, monitors, logger)
		if err != nil {
			logger.Error("failed to create overlay surface", "error", err)
			app.Quit()
			return
		}

		// Dock and activation
		edge, err := dock.ParseEdge(cfg.Dock.Position)
		if err != nil {
			logger.Warn("invalid dock position, treating as unknown", "error", err)
		}
		dockProvider := dock.NewStaticProvider(edge, float64(cfg.Dock.Height))
		activator := activate.NewCommandActivator(cfg.Activate.Command, logger)

		// Controller
		controller = preview.NewController(queue, surface, sel, dockProvider, activator, monitors, logger)
		controller.SetVisibilityCallback(func(visible bool, appName string, windowCount int) {
			if !visible {
				sessions.End()
			}
		})
		controller.SetSelectHook(func(entry model.WindowEntry) {
			go func() {
				if err := audioManager.PlaySelect(); err != nil {
					logger.Debug("failed to play selection sound", "error", err)
				}
			}()
		})
		surface.OnPointerExit(controller.PointerExited)
		surface.OnTap(controller.Activate)

		// Recompute placement when outputs come and go
		if disp := gdk.DisplayGetDefault(); disp != nil {
			if list := disp.Monitors(); list != nil {
				list.ConnectItemsChanged(func(position, removed, added uint) {
					monitors.HandleMonitorChange()
					controller.Refresh()
				})
			}
		}

		// D-Bus control interface
		dbusServer = dbus.NewPreviewServer(logger)
		dbusServer.SetShowHandler(func(req *dbus.ShowRequest) (string, error) {
			entries, err := req.Entries()
			if err != nil {
				return "", err
			}
			session := sessions.Begin(req.AppName, len(entries))
			controller.Show(req.AppName, entries, req.Pointer(), nil)
			return session, nil
		})
		dbusServer.SetHideHandler(controller.Hide)
		dbusServer.SetCycleHandler(controller.Cycle)
		dbusServer.SetSelectHandler(controller.SelectCurrent)
		dbusServer.SetStatusProvider(func() dbus.Status {
			st := dbus.Status{
				Visible:     controller.Visible(),
				App:         controller.AppName(),
				WindowCount: uint32(len(controller.Windows())),
			}
			if session, ok := sessions.Current(); ok {
				st.Session = session.ID
				st.ShownAt = session.ShownAt.Unix()
			}
			return st
		})
		dbusServer.SetWindowsProvider(func() (string, []model.WindowEntry) {
			return controller.AppName(), controller.Windows()
		})

		if err := dbusServer.Start(); err != nil {
			logger.Error("failed to start D-Bus server", "error", err)
			app.Quit()
			return
		}

		// Thumbnail spool watcher
		thumbWatcher = daemon.NewThumbWatcher(cfg.SpoolDir(), logger)
		thumbWatcher.SetArrivalCallback(func(path string) {
			handle := handleFromSpoolPath(path)
			glib.IdleAdd(func() {
				if surface.Deck().UpdateThumbnail(handle, path) {
					controller.Refresh()
				}
			})
		})
		if err := thumbWatcher.Start(); err != nil {
			logger.Warn("failed to start thumbnail watcher", "error", err)
		}

		// Config hot-reload
		configWatcher, err = daemon.NewConfigWatcher(logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(newConfig *config.DaemonConfig) {
				glib.IdleAdd(func() {
					surface.UpdateConfig(newConfig)
					audioManager.UpdateConfig(newConfig)

					newEdge, err := dock.ParseEdge(newConfig.Dock.Position)
					if err == nil {
						dockProvider.Update(newEdge, float64(newConfig.Dock.Height))
					}

					if newConfig.Theme.Name != cfg.Theme.Name {
						// Provider is already attached; loading swaps its content
						themeLoader.StopHotReload()
						if err := themeLoader.LoadTheme(newConfig.Theme.Name); err != nil {
							logger.Warn("failed to load new theme", "theme", newConfig.Theme.Name, "error", err)
						}
						themeLoader.StartHotReload(ctx)
					}

					cfg = newConfig
					controller.Refresh()
					logger.Info("configuration reloaded")
				})
			})
			configWatcher.SetErrorCallback(func(err error) {
				logger.Warn("config reload rejected", "error", err)
			})
			if err := configWatcher.Start(ctx, cfg); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		app.Hold()

		logger.Info("dockpeekd ready",
			"dbus_interface", dbus.DBusInterface,
			"dock", cfg.Dock.Position,
			"spool", cfg.SpoolDir(),
		)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if thumbWatcher != nil {
			thumbWatcher.Stop()
		}
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if themeLoader != nil {
			themeLoader.StopHotReload()
		}
		if audioManager != nil {
			audioManager.Stop()
		}
		if dbusServer != nil {
			_ = dbusServer.Stop()
		}
		running.Store(false)
	})

	status := app.Run(os.Args)
	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("dockpeekd stopped")
}

// handleFromSpoolPath recovers the window handle from a spool file name.
// The capture collaborator writes <handle>.<ext> into the spool dir.
func handleFromSpoolPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
