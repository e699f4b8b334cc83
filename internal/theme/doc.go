// Package theme handles CSS theme loading and hot-reload for dockpeekd.
// It supports loading themes from ~/.config/dockpeek/themes/ and provides
// an embedded default theme for use when no custom theme is configured.
package theme
