// Package daemon provides the background machinery for dockpeekd: config
// hot reload, thumbnail spool watching, and preview session tracking.
package daemon
