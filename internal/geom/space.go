// Package geom converts between image pixels, the aspect-fit base rectangle
// and the zoomed, panned display rectangle of a canvas view.
//
// Three coordinate spaces are involved:
//
//   - image space: native background pixels, origin at the top-left corner.
//   - view space: pixels of the canvas widget.
//   - the base rectangle: where the whole image sits inside the view at
//     zoom 1.0. The display rectangle is the base rectangle scaled about the
//     view centre by the zoom factor and translated by the pan offset.
//
// All functions are pure; the zoom and pan parameters are supplied by the
// caller on every call.
package geom

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is an axis-aligned rectangle with floating point corners. Min is
// inclusive and Max exclusive, mirroring image.Rectangle.
type Rect struct {
	Min, Max r2.Vec
}

// R is shorthand for Rect{Min: {x0, y0}, Max: {x1, y1}}. The corners are
// sorted so that Min is the top-left corner.
func R(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Min: r2.Vec{X: x0, Y: y0}, Max: r2.Vec{X: x1, Y: y1}}
}

// FromImageRect converts an integer rectangle.
func FromImageRect(r image.Rectangle) Rect {
	return R(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
}

// Dx returns the width.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Size returns the width and height as a vector.
func (r Rect) Size() r2.Vec { return r2.Sub(r.Max, r.Min) }

// Center returns the midpoint.
func (r Rect) Center() r2.Vec { return r2.Scale(0.5, r2.Add(r.Min, r.Max)) }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p r2.Vec) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the largest rectangle contained by both r and s. The
// result may be empty.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		Min: r2.Vec{X: math.Max(r.Min.X, s.Min.X), Y: math.Max(r.Min.Y, s.Min.Y)},
		Max: r2.Vec{X: math.Min(r.Max.X, s.Max.X), Y: math.Min(r.Max.Y, s.Max.Y)},
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Add translates r by v.
func (r Rect) Add(v r2.Vec) Rect {
	return Rect{Min: r2.Add(r.Min, v), Max: r2.Add(r.Max, v)}
}

// Outer returns the smallest integer rectangle that contains r.
func (r Rect) Outer() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X)), int(math.Ceil(r.Max.Y)),
	)
}

// BaseRect scales an image of the given size to fit entirely inside view,
// preserving its aspect ratio, and centres it on both axes.
func BaseRect(view Rect, img image.Point) Rect {
	if img.X <= 0 || img.Y <= 0 || view.Empty() {
		return Rect{Min: view.Center(), Max: view.Center()}
	}
	s := math.Min(view.Dx()/float64(img.X), view.Dy()/float64(img.Y))
	size := r2.Vec{X: float64(img.X) * s, Y: float64(img.Y) * s}
	c := view.Center()
	min := r2.Sub(c, r2.Scale(0.5, size))
	return Rect{Min: min, Max: r2.Add(min, size)}
}

// DisplayRect scales the base rectangle about the view centre by zoom and
// then translates it by pan.
func DisplayRect(view Rect, img image.Point, zoom float64, pan r2.Vec) Rect {
	base := BaseRect(view, img)
	c := view.Center()
	min := r2.Add(r2.Add(c, r2.Scale(zoom, r2.Sub(base.Min, c))), pan)
	return Rect{Min: min, Max: r2.Add(min, r2.Scale(zoom, base.Size()))}
}

// Space bundles the parameters every conversion needs. It is a value type;
// copying it is cheap and it holds no references.
type Space struct {
	View  Rect
	Image image.Point
	Zoom  float64
	Pan   r2.Vec
}

// Base returns the aspect-fit rectangle of the image inside the view.
func (s Space) Base() Rect { return BaseRect(s.View, s.Image) }

// Display returns the base rectangle after zoom and pan.
func (s Space) Display() Rect { return DisplayRect(s.View, s.Image, s.zoom(), s.Pan) }

// ImageBounds returns the image rectangle in image space.
func (s Space) ImageBounds() Rect {
	return R(0, 0, float64(s.Image.X), float64(s.Image.Y))
}

// Scale returns the number of view pixels per image pixel.
func (s Space) Scale() float64 {
	if s.Image.X <= 0 {
		return 1
	}
	d := s.Display()
	if d.Dx() <= 0 {
		return 1
	}
	return d.Dx() / float64(s.Image.X)
}

// ImageToView maps an image-space point into view space.
func (s Space) ImageToView(p r2.Vec) r2.Vec {
	return r2.Add(s.Display().Min, r2.Scale(s.Scale(), p))
}

// ViewToImage maps a view-space point into image space. It is the exact
// inverse of ImageToView.
func (s Space) ViewToImage(p r2.Vec) r2.Vec {
	return r2.Scale(1/s.Scale(), r2.Sub(p, s.Display().Min))
}

// ScreenLengthToImageLength converts a view-space length, such as a brush
// diameter, into image pixels at the current zoom.
func (s Space) ScreenLengthToImageLength(l float64) float64 {
	return l / s.Scale()
}

// ImageToViewRect maps an image-space rectangle into view space.
func (s Space) ImageToViewRect(r Rect) Rect {
	return Rect{Min: s.ImageToView(r.Min), Max: s.ImageToView(r.Max)}
}

// ViewToImageRect maps a view-space rectangle into image space.
func (s Space) ViewToImageRect(r Rect) Rect {
	return Rect{Min: s.ViewToImage(r.Min), Max: s.ViewToImage(r.Max)}
}

// ImageToViewAffine returns the image to view transform in the layout used
// by golang.org/x/image/draw transformers.
func (s Space) ImageToViewAffine() f64.Aff3 {
	k := s.Scale()
	o := s.Display().Min
	return f64.Aff3{
		k, 0, o.X,
		0, k, o.Y,
	}
}

func (s Space) zoom() float64 {
	if s.Zoom <= 0 {
		return 1
	}
	return s.Zoom
}
