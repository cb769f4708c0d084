// Package view tracks the zoom scale and pan offset of a canvas view.
package view

import (
	"image"
	"math"

	"github.com/example/inkshot/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// MinZoom is the fitted scale; the whole image is visible.
	MinZoom = 1.0
	// MaxZoom bounds magnification.
	MaxZoom = 10.0
)

// State is the zoom and pan of a view. At MinZoom the pan is always zero.
type State struct {
	Zoom float64
	Pan  r2.Vec
}

// Fit is the state that shows the whole image centred in the view.
func Fit() State { return State{Zoom: MinZoom} }

// Controller owns a State and applies zoom and pan gestures to it. Callers
// redraw after every mutation.
type Controller struct {
	state State
}

// NewController returns a controller in the fitted state.
func NewController() *Controller { return &Controller{state: Fit()} }

// State returns the current zoom and pan.
func (c *Controller) State() State {
	if !(c.state.Zoom >= MinZoom) {
		return Fit()
	}
	return c.state
}

// Space returns the coordinate space for the given view bounds and image size
// under the current state.
func (c *Controller) Space(bounds geom.Rect, img image.Point) geom.Space {
	st := c.State()
	return geom.Space{View: bounds, Image: img, Zoom: st.Zoom, Pan: st.Pan}
}

// ZoomAtPoint multiplies the scale by factor while keeping the image point
// under at fixed on screen. When at lies outside the displayed image the
// image centre is used as the anchor. Scales at or below MinZoom reset to
// the fitted state. Factors that are not finite and positive are ignored.
func (c *Controller) ZoomAtPoint(bounds geom.Rect, img image.Point, at r2.Vec, factor float64) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return
	}
	cur := c.State()
	next := clamp(cur.Zoom*factor, MinZoom, MaxZoom)
	if next == cur.Zoom {
		return
	}
	if next <= MinZoom {
		c.ResetToFit()
		return
	}
	disp := geom.DisplayRect(bounds, img, cur.Zoom, cur.Pan)
	if disp.Empty() {
		return
	}
	if !disp.Contains(at) {
		at = disp.Center()
	}
	frac := r2.Vec{
		X: (at.X - disp.Min.X) / disp.Dx(),
		Y: (at.Y - disp.Min.Y) / disp.Dy(),
	}
	// Display rectangle at the new scale with no pan; the pan then moves the
	// anchor fraction back under at.
	unpanned := geom.DisplayRect(bounds, img, next, r2.Vec{})
	want := r2.Sub(at, r2.Vec{X: frac.X * unpanned.Dx(), Y: frac.Y * unpanned.Dy()})
	c.state = State{Zoom: next, Pan: r2.Sub(want, unpanned.Min)}
}

// Pan moves the display by delta view pixels. Pan has no effect at the
// fitted scale.
func (c *Controller) Pan(delta r2.Vec) {
	if c.State().Zoom <= MinZoom {
		return
	}
	c.state.Pan = r2.Add(c.state.Pan, delta)
}

// ResetToFit returns to the fitted state.
func (c *Controller) ResetToFit() { c.state = Fit() }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
