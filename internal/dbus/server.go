package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/dockpeek/dockpeek/internal/model"
)

const (
	// DBusInterface is the preview control interface name.
	DBusInterface = "io.github.dockpeek.Preview1"
	// DBusPath is the preview control object path.
	DBusPath = "/io/github/dockpeek/Preview"
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.dockpeek"
)

// ShowHandler is called for incoming Show requests and returns the opened
// session ID.
type ShowHandler func(req *ShowRequest) (string, error)

// ControlHandler is called for the argument-less control methods.
type ControlHandler func()

// StatusProvider returns the current daemon status.
type StatusProvider func() Status

// WindowsProvider returns the app name and window list currently shown.
type WindowsProvider func() (string, []model.WindowEntry)

// PreviewServer exports the preview control interface on the session bus.
type PreviewServer struct {
	conn   *dbus.Conn
	logger *slog.Logger

	showHandler   ShowHandler
	hideHandler   ControlHandler
	cycleHandler  ControlHandler
	selectHandler ControlHandler
	statusFn      StatusProvider
	windowsFn     WindowsProvider

	mu      sync.Mutex
	running bool
}

// NewPreviewServer creates a new PreviewServer.
func NewPreviewServer(logger *slog.Logger) *PreviewServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreviewServer{logger: logger}
}

// SetShowHandler sets the handler for Show requests.
func (s *PreviewServer) SetShowHandler(handler ShowHandler) {
	s.showHandler = handler
}

// SetHideHandler sets the handler for Hide requests.
func (s *PreviewServer) SetHideHandler(handler ControlHandler) {
	s.hideHandler = handler
}

// SetCycleHandler sets the handler for Cycle requests.
func (s *PreviewServer) SetCycleHandler(handler ControlHandler) {
	s.cycleHandler = handler
}

// SetSelectHandler sets the handler for SelectCurrent requests.
func (s *PreviewServer) SetSelectHandler(handler ControlHandler) {
	s.selectHandler = handler
}

// SetStatusProvider sets the provider backing the Status method.
func (s *PreviewServer) SetStatusProvider(fn StatusProvider) {
	s.statusFn = fn
}

// SetWindowsProvider sets the provider backing the Windows method.
func (s *PreviewServer) SetWindowsProvider(fn WindowsProvider) {
	s.windowsFn = fn
}

// Start connects to the session bus and exports the control service.
func (s *PreviewServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: previewMethods(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue|dbus.NameFlagReplaceExisting)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus preview server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name.
func (s *PreviewServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus preview server stopped")
	return nil
}

// Show handles incoming preview requests.
// D-Bus method: Show(sasasasddb) -> s
func (s *PreviewServer) Show(
	appName string,
	handles []string,
	titles []string,
	thumbnails []string,
	pointerX float64,
	pointerY float64,
	hasPointer bool,
) (string, *dbus.Error) {
	s.logger.Debug("Show called",
		"app_name", appName,
		"windows", len(handles),
		"has_pointer", hasPointer,
	)

	if s.showHandler == nil {
		return "", dbus.MakeFailedError(fmt.Errorf("no show handler registered"))
	}

	req := &ShowRequest{
		AppName:    appName,
		Handles:    handles,
		Titles:     titles,
		Thumbnails: thumbnails,
		PointerX:   pointerX,
		PointerY:   pointerY,
		HasPointer: hasPointer,
	}

	session, err := s.showHandler(req)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return session, nil
}

// Hide handles Hide requests.
// D-Bus method: Hide() -> nothing
func (s *PreviewServer) Hide() *dbus.Error {
	s.logger.Debug("Hide called")
	if s.hideHandler != nil {
		s.hideHandler()
	}
	return nil
}

// Cycle handles Cycle requests.
// D-Bus method: Cycle() -> nothing
func (s *PreviewServer) Cycle() *dbus.Error {
	s.logger.Debug("Cycle called")
	if s.cycleHandler != nil {
		s.cycleHandler()
	}
	return nil
}

// SelectCurrent handles SelectCurrent requests.
// D-Bus method: SelectCurrent() -> nothing
func (s *PreviewServer) SelectCurrent() *dbus.Error {
	s.logger.Debug("SelectCurrent called")
	if s.selectHandler != nil {
		s.selectHandler()
	}
	return nil
}

// Status reports the daemon state.
// D-Bus method: Status() -> (bsusx)
func (s *PreviewServer) Status() (bool, string, uint32, string, int64, *dbus.Error) {
	if s.statusFn == nil {
		return false, "", 0, "", 0, nil
	}
	st := s.statusFn()
	return st.Visible, st.App, st.WindowCount, st.Session, st.ShownAt, nil
}

// Windows reports the currently shown window list as parallel arrays.
// D-Bus method: Windows() -> (s, as, as, as)
func (s *PreviewServer) Windows() (string, []string, []string, []string, *dbus.Error) {
	if s.windowsFn == nil {
		return "", nil, nil, nil, nil
	}

	app, entries := s.windowsFn()
	handles := make([]string, len(entries))
	titles := make([]string, len(entries))
	thumbnails := make([]string, len(entries))
	for i, e := range entries {
		handles[i] = e.Handle
		titles[i] = e.Title
		thumbnails[i] = e.ThumbnailPath
	}
	return app, handles, titles, thumbnails, nil
}

// previewMethods returns the D-Bus method introspection data.
func previewMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Show",
			Args: []introspect.Arg{
				{Name: "app_name", Type: "s", Direction: "in"},
				{Name: "handles", Type: "as", Direction: "in"},
				{Name: "titles", Type: "as", Direction: "in"},
				{Name: "thumbnails", Type: "as", Direction: "in"},
				{Name: "pointer_x", Type: "d", Direction: "in"},
				{Name: "pointer_y", Type: "d", Direction: "in"},
				{Name: "has_pointer", Type: "b", Direction: "in"},
				{Name: "session", Type: "s", Direction: "out"},
			},
		},
		{Name: "Hide"},
		{Name: "Cycle"},
		{Name: "SelectCurrent"},
		{
			Name: "Windows",
			Args: []introspect.Arg{
				{Name: "app", Type: "s", Direction: "out"},
				{Name: "handles", Type: "as", Direction: "out"},
				{Name: "titles", Type: "as", Direction: "out"},
				{Name: "thumbnails", Type: "as", Direction: "out"},
			},
		},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "visible", Type: "b", Direction: "out"},
				{Name: "app", Type: "s", Direction: "out"},
				{Name: "window_count", Type: "u", Direction: "out"},
				{Name: "session", Type: "s", Direction: "out"},
				{Name: "shown_at", Type: "x", Direction: "out"},
			},
		},
	}
}
