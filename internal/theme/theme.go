package theme

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// importRegex matches the forms @import "f.css";, @import 'f.css'; and
// @import url("f.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a loaded CSS theme. Path is empty for bundled themes.
type Theme struct {
	Name      string
	Path      string
	CSS       string    // Content with all imports inlined
	ModTime   time.Time // Disk mtime at load, zero for bundled
	IsDefault bool
}

// NewTheme loads a theme file from disk and inlines its imports.
func NewTheme(name, path string) (*Theme, error) {
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// NewDefaultTheme returns the bundled default theme.
func NewDefaultTheme() *Theme {
	css, _ := GetEmbeddedTheme(DefaultThemeName)
	return &Theme{
		Name:      DefaultThemeName,
		CSS:       css,
		IsDefault: true,
	}
}

// ProcessImports inlines @import statements recursively. GTK's CSS
// provider cannot resolve relative imports itself, so the loader does
// it before handing the CSS over. Paths resolve against baseDir; files
// that cannot be read fall back to the embedded partials and themes.
// The seen map breaks import cycles.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		return inlineImport(submatch[1], baseDir, seen)
	})
}

// inlineImport resolves a single import target to CSS. Every branch
// leaves a comment naming the source so a broken user theme can be
// debugged from GTK_DEBUG=interactive.
func inlineImport(importPath, baseDir string, seen map[string]bool) string {
	fullPath := importPath
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(baseDir, importPath)
	}

	if seen[fullPath] {
		return "/* circular import prevented: " + importPath + " */"
	}
	seen[fullPath] = true

	imported, err := os.ReadFile(fullPath)
	if err != nil {
		base := filepath.Base(importPath)
		if strings.HasPrefix(base, "_") {
			if css, found := GetEmbeddedPartial(base); found {
				return "/* imported (embedded): " + importPath + " */\n" + css
			}
		}
		if css, found := GetEmbeddedTheme(strings.TrimSuffix(base, ".css")); found {
			return "/* imported (embedded): " + importPath + " */\n" + css
		}
		return "/* import failed: " + importPath + " - " + err.Error() + " */"
	}

	inlined := ProcessImports(string(imported), filepath.Dir(fullPath), seen)
	return "/* imported: " + importPath + " */\n" + inlined
}

// Reload re-reads the theme file if its mtime advanced. Reports whether
// the resulting CSS differs. Bundled themes never change.
func (t *Theme) Reload() (bool, error) {
	if t.IsDefault {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	css, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	previous := t.CSS
	t.CSS = ProcessImports(string(css), filepath.Dir(t.Path), nil)
	t.ModTime = info.ModTime()
	return previous != t.CSS, nil
}

// ThemeInfo describes an available theme for listings.
type ThemeInfo struct {
	Name      string
	Path      string // Empty for bundled themes
	IsDefault bool
	IsBundled bool
}

// ListAvailableThemes lists bundled themes followed by user themes from
// the themes directory. A user theme never shadows a bundled entry in
// the listing; shadowing happens at load time.
func ListAvailableThemes() ([]ThemeInfo, error) {
	seen := make(map[string]bool)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		if seen[name] {
			continue
		}
		seen[name] = true
		themes = append(themes, ThemeInfo{
			Name:      name,
			IsDefault: name == DefaultThemeName,
			IsBundled: true,
		})
	}

	themesDir, err := ThemesDir()
	if err != nil {
		return themes, nil
	}
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".css" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".css")
		if seen[name] {
			continue
		}
		seen[name] = true
		themes = append(themes, ThemeInfo{
			Name: name,
			Path: filepath.Join(themesDir, entry.Name()),
		})
	}

	return themes, nil
}

// CreateThemesDir ensures the user themes directory exists.
func CreateThemesDir() error {
	themesDir, err := ThemesDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(themesDir, 0755)
}
