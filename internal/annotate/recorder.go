package annotate

import (
	"image/color"
	"math"

	"github.com/example/inkshot/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// minPressure keeps a stroke visible at zero pressure.
const minPressure = 0.1

// Brush describes how new strokes look. Size is a screen-pixel diameter.
type Brush struct {
	Color        color.RGBA
	Size         float64
	PressureFlow float64
}

// Recorder turns a begin/extend/end gesture into a stroke. It is idle until
// Begin and owns the in-progress stroke until End hands it to the store.
type Recorder struct {
	store   *Store
	drawing bool
	current Stroke
	last    r2.Vec
}

// NewRecorder returns an idle recorder that finalizes strokes into store.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store}
}

// Drawing reports whether a stroke is in progress.
func (r *Recorder) Drawing() bool { return r.drawing }

// Current returns the in-progress stroke. ok is false while idle.
func (r *Recorder) Current() (st Stroke, ok bool) {
	if !r.drawing {
		return Stroke{}, false
	}
	return r.current, true
}

// Begin starts a stroke at the image-space point at. The brush size is
// converted to image pixels once using sp, so the width stays fixed in
// image space for the rest of the gesture. A stroke already in progress is
// finalized first.
func (r *Recorder) Begin(sp geom.Space, at r2.Vec, pressure float64, brush Brush) {
	if r.drawing {
		r.End()
	}
	flow := clampUnit(brush.PressureFlow)
	r.current = Stroke{
		ID:           newID(),
		Color:        brush.Color,
		BaseWidth:    sp.ScreenLengthToImageLength(brush.Size),
		PressureFlow: flow,
	}
	r.current.Segments = append(r.current.Segments, Segment{From: at, To: at, Width: r.width(pressure)})
	r.last = at
	r.drawing = true
}

// Extend appends a segment from the previous point to at. It does nothing
// while idle.
func (r *Recorder) Extend(at r2.Vec, pressure float64) {
	if !r.drawing {
		return
	}
	r.current.Segments = append(r.current.Segments, Segment{From: r.last, To: at, Width: r.width(pressure)})
	r.last = at
}

// End finalizes the stroke into the store and returns to idle. It returns
// the stored stroke's ID, or "" while idle.
func (r *Recorder) End() string {
	if !r.drawing {
		return ""
	}
	r.drawing = false
	st := r.current
	r.current = Stroke{}
	if r.store == nil {
		return ""
	}
	return r.store.AddStroke(st)
}

// Cancel drops the in-progress stroke without storing it.
func (r *Recorder) Cancel() {
	r.drawing = false
	r.current = Stroke{}
}

func (r *Recorder) width(pressure float64) float64 {
	return PressureWidth(r.current.BaseWidth, r.current.PressureFlow, pressure)
}

// PressureWidth returns base scaled by the pressure factor
// 1 - flow + flow*max(pressure, 0.1). A NaN pressure counts as full.
func PressureWidth(base, flow, pressure float64) float64 {
	flow = clampUnit(flow)
	if math.IsNaN(pressure) {
		pressure = 1
	}
	p := math.Max(math.Min(pressure, 1), minPressure)
	return base * (1 - flow + flow*p)
}

func clampUnit(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
