package geom

import (
	"image"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func near(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestBaseRectFitsAndCentres(t *testing.T) {
	tests := []struct {
		name string
		view Rect
		img  image.Point
		want Rect
	}{
		{"exact", R(0, 0, 1000, 800), image.Pt(1000, 800), R(0, 0, 1000, 800)},
		{"wide view", R(0, 0, 2000, 800), image.Pt(1000, 800), R(500, 0, 1500, 800)},
		{"tall view", R(0, 0, 500, 1000), image.Pt(1000, 800), R(0, 300, 500, 700)},
		{"offset view", R(100, 50, 600, 450), image.Pt(250, 200), R(100, 50, 600, 450)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BaseRect(tc.view, tc.img)
			if !near(got.Min, tc.want.Min) || !near(got.Max, tc.want.Max) {
				t.Fatalf("BaseRect = %+v, want %+v", got, tc.want)
			}
			c := got.Center()
			vc := tc.view.Center()
			if !near(c, vc) {
				t.Fatalf("base centre %v, view centre %v", c, vc)
			}
		})
	}
}

func TestDisplayRectZoomAboutCentre(t *testing.T) {
	view := R(0, 0, 1000, 800)
	d := DisplayRect(view, image.Pt(1000, 800), 2, r2.Vec{})
	want := R(-500, -400, 1500, 1200)
	if !near(d.Min, want.Min) || !near(d.Max, want.Max) {
		t.Fatalf("display = %+v, want %+v", d, want)
	}
	d = DisplayRect(view, image.Pt(1000, 800), 2, r2.Vec{X: 30, Y: -20})
	if !near(d.Min, r2.Vec{X: -470, Y: -420}) {
		t.Fatalf("panned display min = %v", d.Min)
	}
}

func TestImageViewRoundTrip(t *testing.T) {
	views := []Rect{R(0, 0, 1000, 800), R(0, 0, 1280, 720), R(40, 24, 900, 1300)}
	points := []r2.Vec{{X: 0, Y: 0}, {X: 999.5, Y: 799}, {X: 123.25, Y: 456.75}, {X: 500, Y: 400}}
	pans := []r2.Vec{{}, {X: 153, Y: -88}, {X: -4000, Y: 2500}}
	for _, view := range views {
		for zoom := 1.0; zoom <= 10.0; zoom += 0.75 {
			for _, pan := range pans {
				s := Space{View: view, Image: image.Pt(1000, 800), Zoom: zoom, Pan: pan}
				for _, p := range points {
					got := s.ViewToImage(s.ImageToView(p))
					if math.Abs(got.X-p.X) > 1e-6 || math.Abs(got.Y-p.Y) > 1e-6 {
						t.Fatalf("round trip zoom=%v pan=%v: %v -> %v", zoom, pan, p, got)
					}
				}
			}
		}
	}
}

func TestScreenLengthToImageLength(t *testing.T) {
	s := Space{View: R(0, 0, 1000, 800), Image: image.Pt(1000, 800), Zoom: 1}
	if got := s.ScreenLengthToImageLength(10); math.Abs(got-10) > eps {
		t.Fatalf("length at fit = %v, want 10", got)
	}
	s.Zoom = 4
	if got := s.ScreenLengthToImageLength(10); math.Abs(got-2.5) > eps {
		t.Fatalf("length at zoom 4 = %v, want 2.5", got)
	}
	s = Space{View: R(0, 0, 500, 400), Image: image.Pt(1000, 800), Zoom: 1}
	if got := s.ScreenLengthToImageLength(10); math.Abs(got-20) > eps {
		t.Fatalf("length on half-size view = %v, want 20", got)
	}
}

func TestImageToViewAffineMatchesPointMap(t *testing.T) {
	s := Space{View: R(0, 0, 1280, 720), Image: image.Pt(1000, 800), Zoom: 3.5, Pan: r2.Vec{X: 12, Y: -40}}
	m := s.ImageToViewAffine()
	p := r2.Vec{X: 321, Y: 654}
	got := r2.Vec{X: m[0]*p.X + m[1]*p.Y + m[2], Y: m[3]*p.X + m[4]*p.Y + m[5]}
	if !near(got, s.ImageToView(p)) {
		t.Fatalf("affine %v, point map %v", got, s.ImageToView(p))
	}
}

func TestRectIntersectAndOuter(t *testing.T) {
	a := R(-10.5, 2.2, 40.1, 30)
	b := R(0, 0, 20, 20)
	got := a.Intersect(b)
	if !near(got.Min, r2.Vec{X: 0, Y: 2.2}) || !near(got.Max, r2.Vec{X: 20, Y: 20}) {
		t.Fatalf("intersect = %+v", got)
	}
	if o := a.Outer(); o != image.Rect(-11, 2, 41, 30) {
		t.Fatalf("outer = %v", o)
	}
	if !R(0, 0, 1, 1).Intersect(R(5, 5, 6, 6)).Empty() {
		t.Fatal("disjoint rectangles should not intersect")
	}
}
