// Package render flattens a background image and its annotations into
// pixels, either at native resolution for export or through a view
// transform for on-screen display.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/inkshot/internal/annotate"
	"github.com/example/inkshot/internal/geom"
	"github.com/example/inkshot/internal/theme"
	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r2"
)

// Scene is the content the compositor draws. *annotate.Store satisfies it.
type Scene interface {
	Background() *image.RGBA
	Strokes() []annotate.Stroke
	Badges() []annotate.Badge
}

// Full renders the scene at native resolution. The result has the size of
// the background and a zero origin. It returns nil when there is no
// background.
func Full(sc Scene) *image.RGBA {
	bg := sc.Background()
	if bg == nil {
		return nil
	}
	return Region(sc, image.Rect(0, 0, bg.Bounds().Dx(), bg.Bounds().Dy()))
}

// Region renders the image-space rectangle r of the scene at native
// resolution into a new zero-origin buffer. r is clamped to the image; nil
// is returned if nothing remains.
func Region(sc Scene, r image.Rectangle) *image.RGBA {
	bg := sc.Background()
	if bg == nil {
		return nil
	}
	b := bg.Bounds()
	r = r.Intersect(image.Rect(0, 0, b.Dx(), b.Dy()))
	if r.Empty() {
		return nil
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), bg, b.Min.Add(r.Min), draw.Src)
	annotations(out, sc, nil, transform{scale: 1, offset: r2.Vec{X: float64(-r.Min.X), Y: float64(-r.Min.Y)}})
	return out
}

// VisibleRect returns the image-space rectangle currently shown in the view.
// ok is false when the view is not zoomed or nothing of the image is
// visible, in which case callers render the full image.
func VisibleRect(sp geom.Space) (r image.Rectangle, ok bool) {
	if sp.Zoom <= 1 {
		return image.Rectangle{}, false
	}
	vis := sp.Display().Intersect(sp.View)
	if vis.Empty() {
		return image.Rectangle{}, false
	}
	r = sp.ViewToImageRect(vis).Outer().Intersect(image.Rect(0, 0, sp.Image.X, sp.Image.Y))
	if r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

// Visible renders the part of the scene shown in the view at native
// resolution, falling back to Full when the view is not zoomed in.
func Visible(sc Scene, sp geom.Space) *image.RGBA {
	r, ok := VisibleRect(sp)
	if !ok {
		return Full(sc)
	}
	return Region(sc, r)
}

// Overlay holds transient on-screen elements.
type Overlay struct {
	// Live is the stroke being drawn, shown above finalized strokes.
	Live *annotate.Stroke
	// Selection is a crop rectangle in view space. Empty means none.
	Selection image.Rectangle
}

// View draws the scene into dst, whose pixel coordinates are view space.
// Drawing is clipped to sp.View.
func View(dst *image.RGBA, sc Scene, sp geom.Space, th *theme.Theme, ov Overlay) {
	if th == nil {
		th = theme.Default()
	}
	clip := sp.View.Outer().Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	canvas := dst.SubImage(clip).(*image.RGBA)
	draw.Draw(canvas, clip, image.NewUniform(th.Background), image.Point{}, draw.Src)

	bg := sc.Background()
	if bg == nil {
		return
	}
	area := sp.Display().Outer().Intersect(clip)
	if area.Empty() {
		return
	}
	drawCheckerboard(canvas, area, th.CheckerSize, th.CheckerLight, th.CheckerDark)

	var scaler xdraw.Transformer = xdraw.ApproxBiLinear
	if sp.Scale() >= 2 {
		scaler = xdraw.NearestNeighbor
	}
	scaler.Transform(canvas, sp.ImageToViewAffine(), bg, bg.Bounds(), xdraw.Over, nil)

	annotations(canvas, sc, ov.Live, transform{scale: sp.Scale(), offset: sp.Display().Min})

	if sel := ov.Selection.Canon(); !sel.Empty() {
		drawSelection(canvas, area, sel, th)
	}
}

// annotations draws strokes oldest first, then live, then every badge.
func annotations(dst *image.RGBA, sc Scene, live *annotate.Stroke, xf transform) {
	var r rasterizer
	strokes := sc.Strokes()
	for i := range strokes {
		r.drawStroke(dst, &strokes[i], xf)
	}
	if live != nil {
		r.drawStroke(dst, live, xf)
	}
	badges := sc.Badges()
	for i := range badges {
		r.drawBadge(dst, &badges[i], xf)
	}
}

// drawCheckerboard fills rect with squares of the given size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	if size <= 0 {
		size = 8
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := dark
			if (x/size+y/size)%2 == 0 {
				c = light
			}
			dst.SetRGBA(x, y, c)
		}
	}
}

// selectionDash is the dash length of the crop border.
const selectionDash = 6

// drawSelection shades the image area outside sel and outlines sel with a
// two-colour dashed border.
func drawSelection(dst *image.RGBA, area, sel image.Rectangle, th *theme.Theme) {
	shade := image.NewUniform(th.CropShade)
	inner := sel.Intersect(area)
	outside := []image.Rectangle{area}
	if !inner.Empty() {
		outside = []image.Rectangle{
			image.Rect(area.Min.X, area.Min.Y, area.Max.X, inner.Min.Y),
			image.Rect(area.Min.X, inner.Max.Y, area.Max.X, area.Max.Y),
			image.Rect(area.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y),
			image.Rect(inner.Max.X, inner.Min.Y, area.Max.X, inner.Max.Y),
		}
	}
	for _, r := range outside {
		draw.Draw(dst, r, shade, image.Point{}, draw.Over)
	}
	drawDashedRect(dst, sel, selectionDash, th.CropBorder, th.CropBorderAlt)
}

// drawDashedRect walks the perimeter of r, alternating colours every dash
// pixels.
func drawDashedRect(dst *image.RGBA, r image.Rectangle, dash int, c1, c2 color.RGBA) {
	if r.Dx() < 1 || r.Dy() < 1 {
		return
	}
	x1, y1 := r.Max.X-1, r.Max.Y-1
	var perimeter []image.Point
	for x := r.Min.X; x <= x1; x++ {
		perimeter = append(perimeter, image.Pt(x, r.Min.Y))
	}
	for y := r.Min.Y + 1; y <= y1; y++ {
		perimeter = append(perimeter, image.Pt(x1, y))
	}
	for x := x1 - 1; x >= r.Min.X && y1 > r.Min.Y; x-- {
		perimeter = append(perimeter, image.Pt(x, y1))
	}
	for y := y1 - 1; y > r.Min.Y && x1 > r.Min.X; y-- {
		perimeter = append(perimeter, image.Pt(r.Min.X, y))
	}
	b := dst.Bounds()
	for i, p := range perimeter {
		if !p.In(b) {
			continue
		}
		c := c1
		if (i/dash)%2 == 1 {
			c = c2
		}
		dst.SetRGBA(p.X, p.Y, c)
	}
}
