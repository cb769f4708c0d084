package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"sync"

	"github.com/example/inkshot/internal/annotate"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// transform maps image-space coordinates into a destination buffer:
// dst = offset + scale*p. Widths and sizes scale by the same factor.
type transform struct {
	scale  float64
	offset r2.Vec
}

func (t transform) apply(p r2.Vec) r2.Vec { return r2.Add(t.offset, r2.Scale(t.scale, p)) }

// pathBuilder feeds paths into a rasterizer whose origin sits at origin in
// destination coordinates. Every shape it emits has the same winding so
// overlapping pieces of one stroke never cancel out.
type pathBuilder struct {
	z      *vector.Rasterizer
	origin image.Point
}

func (b pathBuilder) pt(p r2.Vec) (float32, float32) {
	return float32(p.X - float64(b.origin.X)), float32(p.Y - float64(b.origin.Y))
}

func (b pathBuilder) moveTo(p r2.Vec) { b.z.MoveTo(b.pt(p)) }
func (b pathBuilder) lineTo(p r2.Vec) { b.z.LineTo(b.pt(p)) }

func (b pathBuilder) cubeTo(c1, c2, p r2.Vec) {
	x1, y1 := b.pt(c1)
	x2, y2 := b.pt(c2)
	x, y := b.pt(p)
	b.z.CubeTo(x1, y1, x2, y2, x, y)
}

// circle adds a closed circle. reverse flips the winding, which cuts a hole
// when nested inside a circle of the normal winding.
func (b pathBuilder) circle(c r2.Vec, r float64, reverse bool) {
	if r <= 0 {
		return
	}
	k := r * kappa
	at := func(dx, dy float64) r2.Vec { return r2.Vec{X: c.X + dx, Y: c.Y + dy} }
	b.moveTo(at(r, 0))
	if !reverse {
		b.cubeTo(at(r, k), at(k, r), at(0, r))
		b.cubeTo(at(-k, r), at(-r, k), at(-r, 0))
		b.cubeTo(at(-r, -k), at(-k, -r), at(0, -r))
		b.cubeTo(at(k, -r), at(r, -k), at(r, 0))
	} else {
		b.cubeTo(at(r, -k), at(k, -r), at(0, -r))
		b.cubeTo(at(-k, -r), at(-r, -k), at(-r, 0))
		b.cubeTo(at(-r, k), at(-k, r), at(0, r))
		b.cubeTo(at(k, r), at(r, k), at(r, 0))
	}
	b.z.ClosePath()
}

// capsule adds a segment of width w with round caps.
func (b pathBuilder) capsule(p0, p1 r2.Vec, w float64) {
	r := w / 2
	b.circle(p0, r, false)
	d := r2.Sub(p1, p0)
	l := r2.Norm(d)
	if l == 0 {
		return
	}
	b.circle(p1, r, false)
	n := r2.Vec{X: -d.Y / l * r, Y: d.X / l * r}
	b.moveTo(r2.Sub(p0, n))
	b.lineTo(r2.Sub(p1, n))
	b.lineTo(r2.Add(p1, n))
	b.lineTo(r2.Add(p0, n))
	b.z.ClosePath()
}

// rasterizer wraps one vector.Rasterizer reused across shapes.
type rasterizer struct {
	z vector.Rasterizer
}

// begin prepares the rasterizer to cover bounds of dst. It returns false
// when nothing of bounds is visible.
func (r *rasterizer) begin(dst *image.RGBA, bounds image.Rectangle) (pathBuilder, image.Rectangle, bool) {
	clip := bounds.Intersect(dst.Bounds())
	if clip.Empty() {
		return pathBuilder{}, clip, false
	}
	r.z.Reset(clip.Dx(), clip.Dy())
	r.z.DrawOp = draw.Over
	return pathBuilder{z: &r.z, origin: clip.Min}, clip, true
}

func (r *rasterizer) fill(dst *image.RGBA, clip image.Rectangle, c color.Color) {
	r.z.Draw(dst, clip, image.NewUniform(c), image.Point{})
}

// drawStroke paints every segment of st as one shape so the stroke blends
// onto dst once, even where its own segments overlap.
func (r *rasterizer) drawStroke(dst *image.RGBA, st *annotate.Stroke, xf transform) {
	if len(st.Segments) == 0 {
		return
	}
	b := st.Bounds()
	lo := xf.apply(r2.Vec{X: float64(b.Min.X), Y: float64(b.Min.Y)})
	hi := xf.apply(r2.Vec{X: float64(b.Max.X), Y: float64(b.Max.Y)})
	bounds := image.Rect(
		int(math.Floor(lo.X)), int(math.Floor(lo.Y)),
		int(math.Ceil(hi.X))+1, int(math.Ceil(hi.Y))+1,
	)
	pb, clip, ok := r.begin(dst, bounds)
	if !ok {
		return
	}
	for _, seg := range st.Segments {
		pb.capsule(xf.apply(seg.From), xf.apply(seg.To), seg.Width*xf.scale)
	}
	r.fill(dst, clip, st.Color)
}

// drawBadge paints a filled disc with a contrasting ring and a centred bold
// numeral, all sized from the badge diameter.
func (r *rasterizer) drawBadge(dst *image.RGBA, bd *annotate.Badge, xf transform) {
	c := xf.apply(bd.Position)
	radius := bd.Size * xf.scale / 2
	if radius <= 0 {
		return
	}
	bounds := image.Rect(
		int(math.Floor(c.X-radius))-1, int(math.Floor(c.Y-radius))-1,
		int(math.Ceil(c.X+radius))+1, int(math.Ceil(c.Y+radius))+1,
	)
	pb, clip, ok := r.begin(dst, bounds)
	if !ok {
		return
	}
	pb.circle(c, radius, false)
	r.fill(dst, clip, bd.Color)

	ink := contrastColor(bd.Color)
	ring := math.Max(radius*0.12, 1)
	pb, clip, _ = r.begin(dst, bounds)
	pb.circle(c, radius, false)
	pb.circle(c, radius-ring, true)
	r.fill(dst, clip, ink)

	drawNumeral(dst, c, radius, bd.Number, ink)
}

// contrastColor picks black or white text for a background colour by its
// perceived brightness.
func contrastColor(col color.RGBA) color.RGBA {
	brightness := 0.299*float64(col.R) + 0.587*float64(col.G) + 0.114*float64(col.B)
	if brightness < 128 {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{0, 0, 0, 255}
}

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error

	badgeFaces = map[int]font.Face{} // keyed by bucketed pixel size
)

// maxBadgeFaces bounds badgeFaces; the cache is dropped when it fills.
const maxBadgeFaces = 24

// faceBucket rounds large sizes to a multiple of 4 so continuous zoom
// reuses faces.
func faceBucket(px int) int {
	if px <= 32 {
		return px
	}
	return (px + 2) / 4 * 4
}

func badgeFace(px int) (font.Face, error) {
	px = faceBucket(px)
	if face, ok := badgeFaces[px]; ok {
		return face, nil
	}
	boldOnce.Do(func() { boldFont, boldErr = opentype.Parse(gobold.TTF) })
	if boldErr != nil {
		return nil, boldErr
	}
	face, err := opentype.NewFace(boldFont, &opentype.FaceOptions{Size: float64(px), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	if len(badgeFaces) >= maxBadgeFaces {
		for k, f := range badgeFaces {
			f.Close()
			delete(badgeFaces, k)
		}
	}
	badgeFaces[px] = face
	return face, nil
}

// minNumeralPx is the smallest face worth drawing; below it the digit is
// unreadable and the disc alone marks the spot.
const minNumeralPx = 6

func drawNumeral(dst *image.RGBA, c r2.Vec, radius float64, n int, ink color.RGBA) {
	px := int(math.Round(radius * 1.2))
	if px < minNumeralPx {
		return
	}
	face, err := badgeFace(px)
	if err != nil {
		return
	}
	text := strconv.Itoa(n)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(ink), Face: face}
	bounds, _ := d.BoundString(text)
	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Y - bounds.Min.Y
	cx := fixed.Int26_6(math.Round(c.X * 64))
	cy := fixed.Int26_6(math.Round(c.Y * 64))
	d.Dot = fixed.Point26_6{
		X: cx - w/2 - bounds.Min.X,
		Y: cy - h/2 - bounds.Min.Y,
	}
	d.DrawString(text)
}
