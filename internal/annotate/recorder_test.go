package annotate

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/example/inkshot/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPressureWidth(t *testing.T) {
	tests := []struct {
		name                 string
		base, flow, pressure float64
		want                 float64
	}{
		{"flow zero ignores pressure", 10, 0, 0.2, 10},
		{"full flow full pressure", 10, 1, 1, 10},
		{"full flow half pressure", 10, 1, 0.5, 5},
		{"zero pressure floored", 10, 1, 0, 1},
		{"half flow", 8, 0.5, 0.5, 6},
		{"flow clamped", 10, 3, 0.5, 5},
		{"pressure clamped", 10, 1, 4, 10},
		{"nan pressure is full", 10, 0.5, math.NaN(), 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PressureWidth(tc.base, tc.flow, tc.pressure); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("PressureWidth(%v, %v, %v) = %v, want %v", tc.base, tc.flow, tc.pressure, got, tc.want)
			}
		})
	}
}

func TestRecorderGesture(t *testing.T) {
	store := NewStore(image.NewRGBA(image.Rect(0, 0, 1000, 800)))
	// 500x400 view: the image is shown at half size, so a 10 px brush is 20
	// image pixels wide.
	sp := geom.Space{View: geom.R(0, 0, 500, 400), Image: image.Pt(1000, 800), Zoom: 1}
	rec := NewRecorder(store)
	brush := Brush{Color: color.RGBA{B: 255, A: 255}, Size: 10}

	rec.Begin(sp, r2.Vec{X: 100, Y: 100}, 1, brush)
	if !rec.Drawing() {
		t.Fatal("not drawing after Begin")
	}
	rec.Extend(r2.Vec{X: 200, Y: 100}, 0.3)
	rec.Extend(r2.Vec{X: 200, Y: 300}, 0.7)
	cur, ok := rec.Current()
	if !ok || len(cur.Segments) != 3 {
		t.Fatalf("current = %+v, %v", cur, ok)
	}
	if cur.Segments[0].From != cur.Segments[0].To {
		t.Fatalf("first segment is not a dot: %+v", cur.Segments[0])
	}
	if cur.Segments[2].From != (r2.Vec{X: 200, Y: 100}) {
		t.Fatalf("segment does not continue from last point: %+v", cur.Segments[2])
	}
	for i, seg := range cur.Segments {
		if math.Abs(seg.Width-20) > 1e-9 {
			t.Fatalf("segment %d width = %v, want 20", i, seg.Width)
		}
	}

	id := rec.End()
	if id == "" || rec.Drawing() {
		t.Fatalf("End = %q, drawing %v", id, rec.Drawing())
	}
	if len(store.Strokes()) != 1 || store.Strokes()[0].ID != id {
		t.Fatalf("store strokes = %+v", store.Strokes())
	}
}

func TestRecorderOutOfStateIsNoop(t *testing.T) {
	store := NewStore(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	rec := NewRecorder(store)
	rec.Extend(r2.Vec{X: 1, Y: 1}, 1)
	if id := rec.End(); id != "" {
		t.Fatalf("End while idle = %q", id)
	}
	if _, ok := rec.Current(); ok {
		t.Fatal("idle recorder has a current stroke")
	}
	if store.UndoDepth() != 0 {
		t.Fatal("idle recorder touched the store")
	}
}

func TestRecorderCancel(t *testing.T) {
	store := NewStore(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	rec := NewRecorder(store)
	sp := geom.Space{View: geom.R(0, 0, 10, 10), Image: image.Pt(10, 10)}
	rec.Begin(sp, r2.Vec{X: 2, Y: 2}, 1, Brush{Size: 2})
	rec.Cancel()
	if rec.Drawing() || store.UndoDepth() != 0 {
		t.Fatal("cancelled stroke was kept")
	}
}
