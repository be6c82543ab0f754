package xcursor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/ini.v1"

	"github.com/gogpu/cursor/internal/logx"
)

// DefaultThemeName is the theme consulted after a theme's own inherits chain.
const DefaultThemeName = "default"

// DefaultSearchPath returns the icon directories searched for cursor themes.
//
// $XCURSOR_PATH wins when set. Otherwise the list is $XDG_DATA_HOME/icons,
// ~/.local/share/icons, ~/.icons, the icons directory of every
// $XDG_DATA_DIRS entry and /usr/share/pixmaps. Entries starting with ~ are
// expanded to the home directory.
func DefaultSearchPath() []string {
	if p := os.Getenv("XCURSOR_PATH"); p != "" {
		return expandAll(filepath.SplitList(p))
	}

	var dirs []string
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		dirs = append(dirs, filepath.Join(d, "icons"))
	}
	dirs = append(dirs, "~/.local/share/icons", "~/.icons")

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range filepath.SplitList(dataDirs) {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "icons"))
		}
	}
	dirs = append(dirs, "/usr/share/pixmaps")
	return dedupe(expandAll(dirs))
}

func expandAll(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d == "" {
			continue
		}
		p, err := homedir.Expand(d)
		if err != nil {
			logx.Logger().Debug("xcursor: skipping search dir", "dir", d, "err", err)
			continue
		}
		out = append(out, p)
	}
	return out
}

func dedupe(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// Theme is a named cursor theme resolved against a search path.
type Theme struct {
	name       string
	searchPath []string
}

// LoadTheme returns the theme name searched in searchPath, or in
// [DefaultSearchPath] when searchPath is empty. Nothing is read until a
// cursor is looked up, so a theme that does not exist simply finds nothing
// but what its fallbacks provide.
func LoadTheme(name string, searchPath []string) *Theme {
	if len(searchPath) == 0 {
		searchPath = DefaultSearchPath()
	}
	return &Theme{name: name, searchPath: searchPath}
}

// Name returns the theme name.
func (t *Theme) Name() string { return t.name }

// SearchPath returns the directories the theme is looked up in.
func (t *Theme) SearchPath() []string { return t.searchPath }

// Find returns the path of the cursor file name.
//
// The theme's own cursors directories are tried first, then every theme it
// inherits from, depth first in declaration order, then the "default"
// theme. Each theme is visited at most once, so inheritance cycles end.
func (t *Theme) Find(name string) (string, bool) {
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return "", false
	}
	visited := make(map[string]bool)
	if p, ok := t.find(t.name, name, visited); ok {
		return p, true
	}
	return t.find(DefaultThemeName, name, visited)
}

func (t *Theme) find(theme, name string, visited map[string]bool) (string, bool) {
	if theme == "" || visited[theme] {
		return "", false
	}
	visited[theme] = true

	for _, dir := range t.searchPath {
		p := filepath.Join(dir, theme, "cursors", name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}

	for _, parent := range t.inherits(theme) {
		if p, ok := t.find(parent, name, visited); ok {
			return p, true
		}
	}
	return "", false
}

// inherits reads Inherits from the first index.theme of theme on the search path.
func (t *Theme) inherits(theme string) []string {
	for _, dir := range t.searchPath {
		p := filepath.Join(dir, theme, "index.theme")
		if _, err := os.Stat(p); err != nil {
			continue
		}
		f, err := ini.LoadSources(ini.LoadOptions{
			Loose:                   true,
			IgnoreInlineComment:     true,
			SkipUnrecognizableLines: true,
		}, p)
		if err != nil {
			logx.Logger().Debug("xcursor: unreadable index.theme", "path", p, "err", err)
			continue
		}

		var parents []string
		for _, s := range f.Section("Icon Theme").Key("Inherits").Strings(",") {
			if s = strings.TrimSpace(s); s != "" {
				parents = append(parents, s)
			}
		}
		return parents
	}
	return nil
}
