package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

// EmbeddedThemes holds the bundled preview themes. Partials, the files
// starting with an underscore, are shared snippets pulled in through
// @import and are not themes in their own right.
//
//go:embed themes/*.css
var EmbeddedThemes embed.FS

// DefaultThemeName is the theme used when none is configured.
const DefaultThemeName = "default"

// BundledThemes is the static fallback list when the embed FS cannot
// be read.
var BundledThemes = []string{"default", "minimal"}

// GetEmbeddedTheme returns the raw CSS of a bundled theme. Imports are
// not inlined here; LoadTheme does that.
func GetEmbeddedTheme(name string) (string, bool) {
	data, err := EmbeddedThemes.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// GetEmbeddedPartial returns a bundled partial by name. The underscore
// prefix and .css suffix are added if missing, so "_animations.css",
// "animations.css" and "animations" all resolve the same file.
func GetEmbeddedPartial(name string) (string, bool) {
	if !strings.HasPrefix(name, "_") {
		name = "_" + name
	}
	if !strings.HasSuffix(name, ".css") {
		name += ".css"
	}

	data, err := EmbeddedThemes.ReadFile("themes/" + name)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedThemes returns the bundled theme names, partials excluded.
func ListEmbeddedThemes() []string {
	entries, err := fs.ReadDir(EmbeddedThemes, "themes")
	if err != nil {
		return BundledThemes
	}

	var themes []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") {
			continue
		}
		if ext := filepath.Ext(name); ext == ".css" {
			themes = append(themes, strings.TrimSuffix(name, ext))
		}
	}
	return themes
}

// IsEmbeddedTheme reports whether a theme name is bundled.
func IsEmbeddedTheme(name string) bool {
	_, found := GetEmbeddedTheme(name)
	return found
}
