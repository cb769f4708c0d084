// Package config reads and writes the inkshot RC file: canvas defaults, the
// drawing palette, notification toggles and inline themes.
package config

import (
	"fmt"
	"image/color"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/example/inkshot/internal/canvas"
	"github.com/example/inkshot/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string

	BrushSize    float64
	PressureFlow float64
	BadgeSize    float64
	ZoomStep     float64
	DoublePress  time.Duration
	PanModifier  canvas.Modifiers

	// Palette replaces the default colours when non-empty.
	Palette []canvas.PaletteColor
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a Config holding the canvas defaults.
func New() *Config {
	def := canvas.DefaultSettings()
	return &Config{
		BrushSize:    def.BrushSize,
		PressureFlow: def.PressureFlow,
		BadgeSize:    def.BadgeSize,
		ZoomStep:     def.ZoomStep,
		DoublePress:  def.DoublePress,
		PanModifier:  def.PanModifier,
		Themes:       make(map[string]*theme.Theme),
	}
}

// Settings converts the configuration into sanitized session settings.
func (c *Config) Settings() canvas.Settings {
	s := canvas.Settings{
		Palette:      c.Palette,
		BrushSize:    c.BrushSize,
		PressureFlow: c.PressureFlow,
		BadgeSize:    c.BadgeSize,
		ZoomStep:     c.ZoomStep,
		DoublePress:  c.DoublePress,
		PanModifier:  c.PanModifier,
	}
	return s.Sanitize()
}

// ThemeLoader returns a theme loader that also knows the inline themes.
func (c *Config) ThemeLoader() *theme.Loader {
	l := theme.NewLoader()
	l.Extra = c.Themes
	return l
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "brush_size = %s\n", formatFloat(c.BrushSize))
	fmt.Fprintf(&sb, "pressure_flow = %s\n", formatFloat(c.PressureFlow))
	fmt.Fprintf(&sb, "badge_size = %s\n", formatFloat(c.BadgeSize))
	fmt.Fprintf(&sb, "zoom_step = %s\n", formatFloat(c.ZoomStep))
	fmt.Fprintf(&sb, "double_press = %s\n", c.DoublePress)
	if c.PanModifier != 0 {
		fmt.Fprintf(&sb, "pan_modifier = %s\n", c.PanModifier)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	if len(c.Palette) > 0 {
		sb.WriteString("[palette]\n")
		for _, p := range c.Palette {
			fmt.Fprintf(&sb, "%s = %s\n", p.Name, theme.FormatColor(p.Color))
		}
		sb.WriteString("\n")
	}

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		writeTheme(&sb, c.Themes[name])
		sb.WriteString("\n")
	}
	return sb.String()
}

// writeTheme writes every exported Theme field in declaration order.
func writeTheme(sb *strings.Builder, t *theme.Theme) {
	v := reflect.ValueOf(t).Elem()
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		switch val := v.Field(i).Interface().(type) {
		case string:
			fmt.Fprintf(sb, "%s: %s\n", f.Name, val)
		case int:
			fmt.Fprintf(sb, "%s: %d\n", f.Name, val)
		case color.RGBA:
			fmt.Fprintf(sb, "%s: %s\n", f.Name, theme.FormatColor(val))
		}
	}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
