// Package dbus implements the io.github.dockpeek.Preview1 session-bus
// interface: the daemon-side control service and the client the CLI uses
// to drive it.
package dbus
