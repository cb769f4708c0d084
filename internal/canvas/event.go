package canvas

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModMeta
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModShift, "shift"},
	{ModControl, "control"},
	{ModAlt, "alt"},
	{ModMeta, "meta"},
}

// ParseModifiers reads a "+" or "," separated list such as "control+alt".
// "ctrl" is accepted for control and "super" for meta.
func ParseModifiers(s string) (Modifiers, error) {
	var m Modifiers
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '+' || r == ',' || r == ' ' }) {
		switch strings.ToLower(part) {
		case "shift":
			m |= ModShift
		case "control", "ctrl":
			m |= ModControl
		case "alt":
			m |= ModAlt
		case "meta", "super":
			m |= ModMeta
		default:
			return 0, fmt.Errorf("unknown modifier %q", part)
		}
	}
	return m, nil
}

func (m Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m&mn.mod != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}

// Has reports whether every modifier in want is held. An empty want is
// never held.
func (m Modifiers) Has(want Modifiers) bool {
	return want != 0 && m&want == want
}

// Phase is the stage of a pointer gesture.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseDrag
	PhaseUp
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseDrag:
		return "drag"
	case PhaseUp:
		return "up"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// PointerEvent is one mouse or stylus sample. Pos is in view space and
// Pressure in [0,1]; devices without pressure report 1.
type PointerEvent struct {
	Pos      r2.Vec
	Pressure float64
	Phase    Phase
	Mods     Modifiers
}
