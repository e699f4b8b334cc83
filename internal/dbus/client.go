package dbus

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/dockpeek/dockpeek/internal/geom"
)

// Client drives a running dockpeekd over the session bus.
type Client struct {
	conn    *dbus.Conn
	obj     dbus.BusObject
	timeout time.Duration
}

// NewClient connects to the session bus. The timeout applies per call.
func NewClient(timeout time.Duration) (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		conn:    conn,
		obj:     conn.Object(DBusBusName, DBusPath),
		timeout: timeout,
	}, nil
}

// Close is a no-op placeholder; the session bus connection is shared.
func (c *Client) Close() error {
	return nil
}

func (c *Client) call(method string, args ...interface{}) *dbus.Call {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.obj.CallWithContext(ctx, DBusInterface+"."+method, 0, args...)
}

// Show asks the daemon to show a preview. A pointer of geom.NoLocation
// marks the request keyboard-triggered. Returns the opened session ID.
func (c *Client) Show(appName string, handles, titles, thumbnails []string, pointer geom.Point) (string, error) {
	hasPointer := !pointer.IsNone()
	x, y := 0.0, 0.0
	if hasPointer {
		x, y = pointer.X, pointer.Y
	}

	var session string
	call := c.call("Show", appName, handles, titles, thumbnails, x, y, hasPointer)
	if err := call.Store(&session); err != nil {
		return "", fmt.Errorf("show failed: %w", err)
	}
	return session, nil
}

// Hide asks the daemon to hide the preview.
func (c *Client) Hide() error {
	if call := c.call("Hide"); call.Err != nil {
		return fmt.Errorf("hide failed: %w", call.Err)
	}
	return nil
}

// Cycle advances the daemon's selection.
func (c *Client) Cycle() error {
	if call := c.call("Cycle"); call.Err != nil {
		return fmt.Errorf("cycle failed: %w", call.Err)
	}
	return nil
}

// SelectCurrent activates the daemon's selected window.
func (c *Client) SelectCurrent() error {
	if call := c.call("SelectCurrent"); call.Err != nil {
		return fmt.Errorf("select failed: %w", call.Err)
	}
	return nil
}

// Windows fetches the currently shown window list.
func (c *Client) Windows() (string, []WindowInfo, error) {
	var app string
	var handles, titles, thumbnails []string

	call := c.call("Windows")
	if err := call.Store(&app, &handles, &titles, &thumbnails); err != nil {
		return "", nil, fmt.Errorf("windows failed: %w", err)
	}

	windows := make([]WindowInfo, len(handles))
	for i, handle := range handles {
		windows[i] = WindowInfo{
			Handle:    handle,
			Title:     stringAt(titles, i),
			Thumbnail: stringAt(thumbnails, i),
		}
	}
	return app, windows, nil
}

// Status fetches the daemon state.
func (c *Client) Status() (Status, error) {
	var st Status
	call := c.call("Status")
	if err := call.Store(&st.Visible, &st.App, &st.WindowCount, &st.Session, &st.ShownAt); err != nil {
		return Status{}, fmt.Errorf("status failed: %w", err)
	}
	return st, nil
}
