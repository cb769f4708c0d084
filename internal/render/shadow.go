package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow added behind exported images.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns the shadow used by the -shadow flag.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Radius: 24, Offset: image.Pt(16, 16), Opacity: 0.55}
}

// ApplyShadow returns img on a larger transparent canvas with a blurred copy
// of its alpha channel behind it. The canvas grows to fit the blur radius
// and offset and always has a zero origin. img is returned unchanged when
// the shadow would be invisible.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) *image.RGBA {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	shadow := padded.Add(opts.Offset)
	total := src.Union(shadow)

	mask := image.NewAlpha(image.Rect(0, 0, padded.Dx(), padded.Dy()))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		row := img.Pix[img.PixOffset(src.Min.X, y):]
		dst := mask.Pix[mask.PixOffset(radius, y-src.Min.Y+radius):]
		for x := 0; x < src.Dx(); x++ {
			dst[x] = row[4*x+3]
		}
	}
	boxBlur(mask.Pix, mask.Rect.Dx(), mask.Rect.Dy(), mask.Stride, radius)

	out := image.NewRGBA(image.Rect(0, 0, total.Dx(), total.Dy()))
	ink := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(out, shadow.Sub(total.Min), ink, image.Point{}, mask, image.Point{}, draw.Over)
	draw.Draw(out, src.Sub(total.Min), img, src.Min, draw.Over)
	return out
}

// boxBlur averages every sample of a w×h plane with its neighbours within
// radius, horizontally then vertically. Windows are clipped at the edges.
func boxBlur(pix []uint8, w, h, stride, radius int) {
	if radius <= 0 {
		return
	}
	tmp := make([]uint8, len(pix))
	blurLines(tmp, pix, w, h, 1, stride, radius)
	blurLines(pix, tmp, h, w, stride, 1, radius)
}

// blurLines runs a sliding-window mean along lines of n samples spaced step
// apart. Consecutive lines start lineStep apart.
func blurLines(dst, src []uint8, n, lines, step, lineStep, radius int) {
	for l := 0; l < lines; l++ {
		base := l * lineStep
		sum, lo, hi := 0, 0, -1
		for i := 0; i < n; i++ {
			for hi < min(n-1, i+radius) {
				hi++
				sum += int(src[base+hi*step])
			}
			for lo < i-radius {
				sum -= int(src[base+lo*step])
				lo++
			}
			dst[base+i*step] = uint8(sum / (hi - lo + 1))
		}
	}
}
