package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader locates and reads the configuration file.
type Loader struct {
	Version      string // Build version; "dev" enables the working directory file
	OverridePath string
	// Home overrides the user home directory. Empty means os.UserHomeDir.
	Home string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load reads the first configuration file found, or returns defaults when
// there is none.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the path of the configuration file, or "" if none
// exists. The override path wins, then .inkshotrc in the working directory
// for dev builds, then the files under ~/.config/inkshot.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.candidates() {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// SavePath is where "config save" writes when no file exists yet.
func (l *Loader) SavePath() string {
	if l.OverridePath != "" {
		return l.OverridePath
	}
	return filepath.Join(l.home(), ".config", "inkshot", "config.rc")
}

func (l *Loader) candidates() []string {
	var out []string
	if l.OverridePath != "" {
		out = append(out, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			out = append(out, filepath.Join(wd, ".inkshotrc"))
		}
	}
	dir := filepath.Join(l.home(), ".config", "inkshot")
	return append(out, filepath.Join(dir, "config.rc"), filepath.Join(dir, "inkshot.rc"))
}

func (l *Loader) home() string {
	if l.Home != "" {
		return l.Home
	}
	home, _ := os.UserHomeDir()
	return home
}
