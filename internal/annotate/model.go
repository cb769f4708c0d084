// Package annotate holds the annotation model of a canvas: freehand strokes,
// numbered badges and the undo history that records every change to them.
//
// All coordinates are image-space pixels so annotations keep their
// appearance regardless of the zoom they were drawn at.
package annotate

import (
	"image"
	"image/color"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is one piece of a stroke. Width is the pressure adjusted diameter
// in image pixels. A segment whose ends coincide is a dot.
type Segment struct {
	From, To r2.Vec
	Width    float64
}

// Stroke is a width-varying freehand line. Segments are in draw order.
type Stroke struct {
	ID       string
	Segments []Segment
	Color    color.RGBA
	// BaseWidth is the nominal brush diameter in image pixels, converted
	// from the screen brush size when the stroke began.
	BaseWidth float64
	// PressureFlow blends between constant width (0) and width fully
	// proportional to pressure (1).
	PressureFlow float64
}

// Bounds returns the image-space rectangle touched by the stroke.
func (s *Stroke) Bounds() image.Rectangle {
	var out image.Rectangle
	for i, seg := range s.Segments {
		r := segmentBounds(seg)
		if i == 0 {
			out = r
			continue
		}
		out = out.Union(r)
	}
	return out
}

func segmentBounds(seg Segment) image.Rectangle {
	h := seg.Width/2 + 1
	x0, x1 := seg.From.X, seg.To.X
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := seg.From.Y, seg.To.Y
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return image.Rect(
		int(math.Floor(x0-h)), int(math.Floor(y0-h)),
		int(math.Ceil(x1+h)), int(math.Ceil(y1+h)),
	)
}

// clone returns a deep copy so stored strokes never share segment arrays.
func (s Stroke) clone() Stroke {
	s.Segments = append([]Segment(nil), s.Segments...)
	return s
}

// Badge is a numbered circular marker. Size is the diameter in image pixels.
type Badge struct {
	ID       string
	Number   int
	Position r2.Vec
	Color    color.RGBA
	Size     float64
}

// MinBadgeNumber and MaxBadgeNumber bound Badge.Number.
const (
	MinBadgeNumber = 1
	MaxBadgeNumber = 9
)

// Action is one entry of the undo history. The set of implementations is
// closed: StrokeAction, BadgeAction and CropAction.
type Action interface {
	isAction()
}

// StrokeAction records that the stroke with ID was appended.
type StrokeAction struct{ ID string }

// BadgeAction records that the badge with ID was appended.
type BadgeAction struct{ ID string }

// CropAction records the canvas contents replaced by a crop.
type CropAction struct {
	Background *image.RGBA
	Strokes    []Stroke
	Badges     []Badge
}

func (StrokeAction) isAction() {}
func (BadgeAction) isAction()  {}
func (CropAction) isAction()   {}

func newID() string { return uuid.NewString() }
