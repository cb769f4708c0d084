package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned by Load when no source has the requested theme.
var ErrNotFound = errors.New("theme not found")

// Loader resolves a theme name against a file path, the embedded defaults,
// the user theme directory and the system theme directory, in that order.
type Loader struct {
	ConfigDir string
	SystemDir string
	// Extra holds themes declared inline in the configuration file. They
	// take precedence over every directory.
	Extra map[string]*Theme
}

// NewLoader creates a Loader with the standard directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "inkshot", "themes"),
		SystemDir: "/usr/share/inkshot/themes",
	}
}

// Load returns the theme called name. An empty name yields Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if t, ok := l.Extra[name]; ok {
		return t, nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	if t, err := parseFile(EmbeddedThemes, "defaults/"+filename); err == nil {
		return t, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		t, err := parseFile(os.DirFS(dir), filename)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Names lists the embedded theme names.
func Names() []string {
	entries, _ := fs.ReadDir(EmbeddedThemes, "defaults")
	var out []string
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".theme"); ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}
