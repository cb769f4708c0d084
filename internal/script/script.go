// Package script replays recorded or hand-written gesture scripts against a
// canvas session without a window.
//
// A script is YAML:
//
//	view: {width: 1000, height: 800}
//	steps:
//	  - {action: brush, value: 10}
//	  - {action: down, x: 100, y: 400}
//	  - {action: drag, x: 500, y: 400, pressure: 0.4}
//	  - {action: up, x: 900, y: 400}
//	  - {action: key, number: 3, x: 120, y: 80, at: 2s}
//
// Coordinates are view pixels.
package script

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/example/inkshot/internal/canvas"
	"github.com/example/inkshot/internal/geom"
	"github.com/example/inkshot/internal/theme"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

// Script is a parsed gesture script.
type Script struct {
	// View is the canvas size the coordinates refer to. Zero means the
	// image size.
	View  Size   `yaml:"view,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Size is a width and height in view pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Step is one action. Which fields apply depends on Action.
type Step struct {
	Action   string        `yaml:"action"`
	X        float64       `yaml:"x,omitempty"`
	Y        float64       `yaml:"y,omitempty"`
	Pressure *float64      `yaml:"pressure,omitempty"`
	Mods     string        `yaml:"mods,omitempty"`
	Steps    float64       `yaml:"steps,omitempty"`
	Number   int           `yaml:"number,omitempty"`
	Color    string        `yaml:"color,omitempty"`
	Value    float64       `yaml:"value,omitempty"`
	Width    float64       `yaml:"width,omitempty"`
	Height   float64       `yaml:"height,omitempty"`
	At       time.Duration `yaml:"at,omitempty"`
}

func (st Step) pos() r2.Vec { return r2.Vec{X: st.X, Y: st.Y} }

// Parse decodes a script. Unknown fields are errors so typos surface.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Script
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return &sc, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, st := range sc.Steps {
		if _, ok := actions[st.Action]; !ok {
			return nil, fmt.Errorf("step %d: unknown action %q", i+1, st.Action)
		}
	}
	return &sc, nil
}

// Encode writes sc as YAML.
func Encode(w io.Writer, sc *Script) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return err
	}
	return enc.Close()
}

// keyGap separates number key presses that carry no explicit time so that
// they never pair into a double press.
const keyGap = time.Hour

// Player applies steps to a session, keeping the key clock between calls.
type Player struct {
	Session *canvas.Session
	// Start is the time of a key step with at: 0.
	Start time.Time
	clock time.Duration
	keys  int
}

// Run applies every step in order and stops at the first failure.
func (p *Player) Run(sc *Script) error {
	for i, st := range sc.Steps {
		if err := p.Apply(st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

type action func(p *Player, st Step) error

var actions map[string]action

func init() {
	actions = map[string]action{
		"down":       pointer(canvas.PhaseDown),
		"drag":       pointer(canvas.PhaseDrag),
		"up":         pointer(canvas.PhaseUp),
		"scroll":     func(p *Player, st Step) error { p.Session.Scroll(st.pos(), st.Steps); return nil },
		"color":      selectColor,
		"brush":      func(p *Player, st Step) error { p.Session.SetBrushSize(st.Value); return nil },
		"flow":       func(p *Player, st Step) error { p.Session.SetPressureFlow(st.Value); return nil },
		"badge-size": func(p *Player, st Step) error { p.Session.SetBadgeSize(st.Value); return nil },
		"crop-mode":  func(p *Player, st Step) error { p.Session.ToggleCropMode(); return nil },
		"undo":       func(p *Player, st Step) error { p.Session.Undo(); return nil },
		"clear":      func(p *Player, st Step) error { p.Session.ClearAll(); return nil },
		"zoom-in":    func(p *Player, st Step) error { p.Session.ZoomIn(st.pos()); return nil },
		"zoom-out":   func(p *Player, st Step) error { p.Session.ZoomOut(st.pos()); return nil },
		"reset-zoom": func(p *Player, st Step) error { p.Session.ResetZoom(); return nil },
		"badge":      placeBadge,
		"key":        numberKey,
		"resize":     resize,
	}
}

// Apply runs a single step.
func (p *Player) Apply(st Step) error {
	fn, ok := actions[st.Action]
	if !ok {
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return fn(p, st)
}

func pointer(phase canvas.Phase) action {
	return func(p *Player, st Step) error {
		mods, err := canvas.ParseModifiers(st.Mods)
		if err != nil {
			return err
		}
		pressure := 1.0
		if st.Pressure != nil {
			pressure = *st.Pressure
		}
		p.Session.HandlePointer(canvas.PointerEvent{Pos: st.pos(), Pressure: pressure, Phase: phase, Mods: mods})
		return nil
	}
}

func selectColor(p *Player, st Step) error {
	if st.Color != "" {
		c, err := theme.ParseColor(st.Color)
		if err != nil {
			return err
		}
		p.Session.SetColor(c)
		return nil
	}
	if !p.Session.SelectColor(st.Number) {
		return fmt.Errorf("no palette color %d", st.Number)
	}
	return nil
}

func placeBadge(p *Player, st Step) error {
	if st.Number < 1 || st.Number > 9 {
		return fmt.Errorf("badge number %d out of range 1-9", st.Number)
	}
	p.Session.PlaceBadge(st.Number, st.pos())
	return nil
}

func numberKey(p *Player, st Step) error {
	switch {
	case st.At != 0:
		p.clock = st.At
	case p.keys > 0:
		p.clock += keyGap
	}
	p.keys++
	p.Session.NumberKey(st.Number, st.pos(), p.Start.Add(p.clock))
	return nil
}

func resize(p *Player, st Step) error {
	if st.Width <= 0 || st.Height <= 0 {
		return fmt.Errorf("resize needs a positive width and height")
	}
	b := p.Session.Bounds()
	p.Session.Resize(geom.R(b.Min.X, b.Min.Y, b.Min.X+st.Width, b.Min.Y+st.Height))
	return nil
}
