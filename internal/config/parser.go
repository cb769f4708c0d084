package config

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/example/inkshot/internal/canvas"
	"github.com/example/inkshot/internal/theme"
)

// Parse reads configuration from an io.Reader. Lines are "key = value" or
// "key: value" under optional [section] headers; "#" and "//" start a
// comment line and " #" starts a trailing comment.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitLine(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = setThemeField(current, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "palette":
			err = addPaletteColor(cfg, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitLine separates key and value at the first "=" or, failing that, the
// first ":". Quotes around the value and trailing comments are removed.
func splitLine(line string) (key, value string, ok bool) {
	sep := "="
	if !strings.Contains(line, "=") {
		sep = ":"
	}
	key, value, ok = strings.Cut(line, sep)
	if !ok {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	if i := strings.Index(value, "\t#"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return strings.TrimSpace(key), value, true
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "brush_size":
		cfg.BrushSize, err = parseFloat(key, value)
	case "pressure_flow":
		cfg.PressureFlow, err = parseFloat(key, value)
	case "badge_size":
		cfg.BadgeSize, err = parseFloat(key, value)
	case "zoom_step":
		cfg.ZoomStep, err = parseFloat(key, value)
	case "double_press":
		var d time.Duration
		d, err = time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for key %s: %w", key, err)
		}
		cfg.DoublePress = d
	case "pan_modifier":
		var m canvas.Modifiers
		m, err = canvas.ParseModifiers(value)
		if err != nil {
			return fmt.Errorf("invalid modifier for key %s: %w", key, err)
		}
		cfg.PanModifier = m
	}
	return err
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	return v, nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func addPaletteColor(cfg *Config, name, value string) error {
	c, err := theme.ParseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for %s: %w", name, err)
	}
	cfg.Palette = append(cfg.Palette, canvas.PaletteColor{Name: name, Color: c})
	return nil
}

// setThemeField matches key against the Theme fields ignoring case.
func setThemeField(t *theme.Theme, key, value string) error {
	typ := reflect.TypeOf(*t)
	for i := 0; i < typ.NumField(); i++ {
		if f := typ.Field(i); strings.EqualFold(f.Name, key) {
			return theme.SetField(t, f.Name, value)
		}
	}
	return nil
}
