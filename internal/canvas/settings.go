package canvas

import (
	"image/color"
	"math"
	"time"
)

// PaletteColor is a named drawing colour. Number keys 1–9 select entries
// in order.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

// DefaultPalette returns the colours available before configuration.
func DefaultPalette() []PaletteColor {
	return []PaletteColor{
		{"Red", color.RGBA{230, 25, 25, 255}},
		{"Orange", color.RGBA{255, 140, 0, 255}},
		{"Yellow", color.RGBA{255, 220, 0, 255}},
		{"Green", color.RGBA{30, 170, 60, 255}},
		{"Blue", color.RGBA{20, 90, 230, 255}},
		{"Purple", color.RGBA{140, 50, 190, 255}},
		{"Magenta", color.RGBA{230, 0, 150, 255}},
		{"Black", color.RGBA{0, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
	}
}

// Settings are the user adjustable defaults of a session.
type Settings struct {
	Palette []PaletteColor
	// BrushSize and BadgeSize are screen-pixel diameters.
	BrushSize    float64
	BadgeSize    float64
	PressureFlow float64
	// ZoomStep is the factor applied by one zoom command or scroll step.
	ZoomStep float64
	// DoublePress is the window in which a repeated number key places a
	// badge instead of selecting a colour.
	DoublePress time.Duration
	// PanModifier held on pointer down starts a pan instead of a stroke.
	PanModifier Modifiers
}

// DefaultSettings returns the settings used without a configuration file.
func DefaultSettings() Settings {
	return Settings{
		Palette:      DefaultPalette(),
		BrushSize:    6,
		BadgeSize:    28,
		PressureFlow: 0.5,
		ZoomStep:     1.25,
		DoublePress:  350 * time.Millisecond,
		PanModifier:  ModAlt,
	}
}

// Sanitize clamps out-of-range values so a session never holds them.
func (s Settings) Sanitize() Settings {
	def := DefaultSettings()
	if len(s.Palette) == 0 {
		s.Palette = def.Palette
	}
	if !(s.BrushSize >= 1) {
		s.BrushSize = 1
	}
	if !(s.BadgeSize >= 1) {
		s.BadgeSize = 1
	}
	s.PressureFlow = clampUnit(s.PressureFlow)
	if !(s.ZoomStep > 1) || math.IsInf(s.ZoomStep, 1) {
		s.ZoomStep = def.ZoomStep
	}
	if s.DoublePress < 0 {
		s.DoublePress = 0
	}
	return s
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}
