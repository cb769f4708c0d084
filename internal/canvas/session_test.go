package canvas

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"
	"time"

	"github.com/example/inkshot/internal/geom"
	"github.com/example/inkshot/internal/view"
	"gonum.org/v1/gonum/spatial/r2"
)

var white = color.RGBA{255, 255, 255, 255}

func newLoaded(t *testing.T, w, h int) *Session {
	t.Helper()
	s := NewSession(DefaultSettings(), geom.R(0, 0, float64(w), float64(h)))
	bg := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(bg, bg.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	s.Load(bg)
	return s
}

func pt(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

func drag(s *Session, mods Modifiers, pts ...r2.Vec) {
	for i, p := range pts {
		ph := PhaseDrag
		switch i {
		case 0:
			ph = PhaseDown
		case len(pts) - 1:
			ph = PhaseUp
		}
		s.HandlePointer(PointerEvent{Pos: p, Pressure: 1, Phase: ph, Mods: mods})
	}
}

func TestExportBeforeLoad(t *testing.T) {
	s := NewSession(DefaultSettings(), geom.R(0, 0, 100, 100))
	if _, err := s.ExportFull(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("ExportFull err = %v", err)
	}
	if _, err := s.ExportVisible(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("ExportVisible err = %v", err)
	}
	drag(s, 0, pt(1, 1), pt(50, 50))
	if s.Store().UndoDepth() != 0 {
		t.Fatal("pointer events recorded without an image")
	}
}

func TestStrokeGestureExportsBrushWidth(t *testing.T) {
	s := newLoaded(t, 1000, 800)
	s.SetBrushSize(10)
	s.SetPressureFlow(0)
	drag(s, 0, pt(100, 400), pt(500, 400), pt(900, 400))
	if got := len(s.Store().Strokes()); got != 1 {
		t.Fatalf("strokes = %d", got)
	}
	c, _ := s.Color()
	out, err := s.ExportFull()
	if err != nil {
		t.Fatal(err)
	}
	for y := 395; y <= 404; y++ {
		if got := out.RGBAAt(500, y); got != c {
			t.Fatalf("row %d = %v, want %v", y, got, c)
		}
	}
	for _, y := range []int{394, 405} {
		if got := out.RGBAAt(500, y); got != white {
			t.Fatalf("row %d = %v, want background", y, got)
		}
	}
}

func TestStrokeUsesImageSpace(t *testing.T) {
	s := newLoaded(t, 1000, 800)
	s.ZoomIn(pt(500, 400))
	s.ZoomIn(pt(500, 400))
	sp := s.Space()
	drag(s, 0, pt(300, 300), pt(400, 350))
	st := s.Store().Strokes()[0]
	want := sp.ViewToImage(pt(400, 350))
	if got := st.Segments[len(st.Segments)-1].To; got != want {
		t.Fatalf("last point = %v, want %v", got, want)
	}
	if w := st.BaseWidth; w != sp.ScreenLengthToImageLength(s.BrushSize()) {
		t.Fatalf("base width = %v", w)
	}
}

func TestPanModifierPans(t *testing.T) {
	s := newLoaded(t, 1000, 800)
	s.ZoomIn(pt(500, 400))
	before := s.ViewState().Pan
	drag(s, ModAlt, pt(100, 100), pt(130, 120), pt(150, 90))
	got := r2.Sub(s.ViewState().Pan, before)
	if got != pt(50, -10) {
		t.Fatalf("pan delta = %v", got)
	}
	if s.Store().UndoDepth() != 0 {
		t.Fatal("pan recorded an action")
	}
}

func TestPanIgnoredAtFit(t *testing.T) {
	s := newLoaded(t, 1000, 800)
	drag(s, ModAlt, pt(100, 100), pt(300, 300))
	if s.ViewState() != view.Fit() {
		t.Fatalf("view state = %+v", s.ViewState())
	}
}

func TestDownEndsActiveGesture(t *testing.T) {
	s := newLoaded(t, 200, 200)
	s.HandlePointer(PointerEvent{Pos: pt(10, 10), Pressure: 1, Phase: PhaseDown})
	s.HandlePointer(PointerEvent{Pos: pt(20, 20), Pressure: 1, Phase: PhaseDrag})
	s.HandlePointer(PointerEvent{Pos: pt(50, 50), Pressure: 1, Phase: PhaseDown})
	s.HandlePointer(PointerEvent{Pos: pt(60, 60), Pressure: 1, Phase: PhaseUp})
	if got := len(s.Store().Strokes()); got != 2 {
		t.Fatalf("strokes = %d, want 2", got)
	}
}

func TestZoomFourThenReset(t *testing.T) {
	s := newLoaded(t, 1000, 800)
	s.Scroll(pt(500, 400), 0) // no-op
	for s.ViewState().Zoom < 4 {
		s.ZoomIn(pt(500, 400))
	}
	s.ResetZoom()
	if got := s.ViewState(); got.Zoom != 1 || got.Pan != (r2.Vec{}) {
		t.Fatalf("state = %+v", got)
	}
}

func TestScrollMatchesZoomSteps(t *testing.T) {
	a := newLoaded(t, 1000, 800)
	b := newLoaded(t, 1000, 800)
	a.Scroll(pt(200, 300), 2)
	b.ZoomIn(pt(200, 300))
	b.ZoomIn(pt(200, 300))
	sa, sb := a.ViewState(), b.ViewState()
	if d := sa.Zoom - sb.Zoom; d > 1e-9 || d < -1e-9 {
		t.Fatalf("zoom %v vs %v", sa.Zoom, sb.Zoom)
	}
	a.Scroll(pt(200, 300), -10)
	if a.ViewState() != view.Fit() {
		t.Fatalf("scroll out = %+v", a.ViewState())
	}
}

func TestBadgesUndoTwice(t *testing.T) {
	s := newLoaded(t, 400, 300)
	if !s.PlaceBadge(3, pt(100, 100)) || !s.PlaceBadge(5, pt(200, 150)) {
		t.Fatal("badge placement failed")
	}
	s.Undo()
	s.Undo()
	if len(s.Store().Badges()) != 0 || s.Store().UndoDepth() != 0 {
		t.Fatalf("badges %d, depth %d", len(s.Store().Badges()), s.Store().UndoDepth())
	}
	if s.Undo() {
		t.Fatal("undo on empty history reported true")
	}
}

func TestPlaceBadgeOutsideImage(t *testing.T) {
	s := NewSession(DefaultSettings(), geom.R(0, 0, 400, 200))
	s.Load(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	// The image occupies x 100..300 of the view.
	if s.PlaceBadge(1, pt(50, 100)) {
		t.Fatal("badge placed in the letterbox")
	}
	if !s.PlaceBadge(1, pt(150, 100)) {
		t.Fatal("badge inside the image rejected")
	}
	b := s.Store().Badges()[0]
	if b.Size != s.BadgeSize()/2 {
		t.Fatalf("badge size = %v, want %v", b.Size, s.BadgeSize()/2)
	}
	if b.Position != pt(25, 50) {
		t.Fatalf("badge position = %v", b.Position)
	}
}

func TestNumberKeyDoublePress(t *testing.T) {
	s := newLoaded(t, 400, 300)
	t0 := time.Unix(1000, 0)
	settings := s.Settings()
	if got := s.NumberKey(4, pt(50, 50), t0); got != KeyColor {
		t.Fatalf("first press = %v", got)
	}
	if c, n := s.Color(); n != 4 || c != settings.Palette[3].Color {
		t.Fatalf("color = %v (%d)", c, n)
	}
	if got := s.NumberKey(4, pt(50, 50), t0.Add(settings.DoublePress/2)); got != KeyBadge {
		t.Fatalf("second press = %v", got)
	}
	b := s.Store().Badges()
	if len(b) != 1 || b[0].Number != 4 || b[0].Color != settings.Palette[3].Color {
		t.Fatalf("badges = %+v", b)
	}
	// A third press starts over.
	if got := s.NumberKey(4, pt(50, 50), t0.Add(settings.DoublePress)); got != KeyColor {
		t.Fatalf("third press = %v", got)
	}
	// Too slow.
	if got := s.NumberKey(4, pt(50, 50), t0.Add(3*settings.DoublePress)); got != KeyColor {
		t.Fatalf("slow press = %v", got)
	}
	// Different digit resets the pairing.
	s.NumberKey(2, pt(50, 50), t0.Add(3*settings.DoublePress+time.Millisecond))
	if got := len(s.Store().Badges()); got != 1 {
		t.Fatalf("badges = %d", got)
	}
	if got := s.NumberKey(0, pt(50, 50), t0); got != KeyIgnored {
		t.Fatalf("digit 0 = %v", got)
	}
}

func TestLoadResetsEverything(t *testing.T) {
	s := newLoaded(t, 300, 300)
	drag(s, 0, pt(10, 10), pt(20, 20))
	s.ZoomIn(pt(100, 100))
	s.ToggleCropMode()
	s.Load(image.NewRGBA(image.Rect(5, 5, 55, 45)))
	if s.Store().UndoDepth() != 0 || len(s.Store().Strokes()) != 0 {
		t.Fatal("annotations survived load")
	}
	if s.ViewState() != view.Fit() || s.CropMode() {
		t.Fatal("view or crop mode survived load")
	}
	if got := s.Store().Background().Bounds(); got != image.Rect(0, 0, 50, 40) {
		t.Fatalf("background bounds = %v, want zero origin", got)
	}
}

func TestClearAll(t *testing.T) {
	s := newLoaded(t, 300, 300)
	drag(s, 0, pt(10, 10), pt(20, 20))
	s.PlaceBadge(1, pt(30, 30))
	s.ClearAll()
	if s.Store().UndoDepth() != 0 || len(s.Store().Strokes())+len(s.Store().Badges()) != 0 {
		t.Fatal("ClearAll left state")
	}
	if s.Undo() {
		t.Fatal("ClearAll was undoable")
	}
}

func TestExportVisibleWhenZoomed(t *testing.T) {
	s := newLoaded(t, 1000, 800)
	full, _ := s.ExportVisible()
	if full.Bounds().Size() != image.Pt(1000, 800) {
		t.Fatalf("unzoomed visible export = %v", full.Bounds())
	}
	s.view.ZoomAtPoint(s.Bounds(), image.Pt(1000, 800), pt(500, 400), 2)
	vis, _ := s.ExportVisible()
	if vis.Bounds().Size() != image.Pt(500, 400) {
		t.Fatalf("visible export = %v", vis.Bounds())
	}
}

func TestSettingsSanitize(t *testing.T) {
	got := Settings{BrushSize: -3, PressureFlow: 7, ZoomStep: 0.5, DoublePress: -time.Second}.Sanitize()
	if got.BrushSize != 1 || got.PressureFlow != 1 || got.ZoomStep != DefaultSettings().ZoomStep || got.DoublePress != 0 {
		t.Fatalf("sanitized = %+v", got)
	}
	if len(got.Palette) != len(DefaultPalette()) {
		t.Fatal("empty palette not replaced")
	}
}

func TestSettingsSanitizeNonFinite(t *testing.T) {
	def := DefaultSettings()
	for _, step := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := Settings{BrushSize: math.NaN(), BadgeSize: math.NaN(), ZoomStep: step}.Sanitize()
		if got.ZoomStep != def.ZoomStep {
			t.Errorf("ZoomStep %v sanitized to %v", step, got.ZoomStep)
		}
		if got.BrushSize != 1 || got.BadgeSize != 1 {
			t.Errorf("NaN sizes sanitized to %v, %v", got.BrushSize, got.BadgeSize)
		}
	}
}

func TestNaNZoomKeepsView(t *testing.T) {
	s := newLoaded(t, 1000, 800)
	s.Scroll(pt(200, 150), math.NaN())
	if got := s.ViewState(); got != view.Fit() {
		t.Fatalf("after NaN scroll: %+v", got)
	}
	s.ZoomIn(pt(200, 150))
	zoomed := s.ViewState()
	s.Scroll(pt(200, 150), math.NaN())
	if got := s.ViewState(); got != zoomed {
		t.Fatalf("NaN scroll changed %+v to %+v", zoomed, got)
	}

	n := NewSession(Settings{ZoomStep: math.NaN()}, geom.R(0, 0, 1000, 800))
	n.Load(image.NewRGBA(image.Rect(0, 0, 1000, 800)))
	n.ZoomIn(pt(500, 400))
	if got := n.ViewState(); math.IsNaN(got.Zoom) || got.Zoom < view.MinZoom || got.Zoom > view.MaxZoom {
		t.Fatalf("zoom with NaN step config: %+v", got)
	}
}

func TestParseModifiers(t *testing.T) {
	m, err := ParseModifiers("ctrl+Alt")
	if err != nil || m != ModControl|ModAlt {
		t.Fatalf("ParseModifiers = %v, %v", m, err)
	}
	if m.String() != "control+alt" {
		t.Fatalf("String = %q", m.String())
	}
	if _, err := ParseModifiers("hyper"); err == nil {
		t.Fatal("unknown modifier accepted")
	}
	if Modifiers(0).Has(0) {
		t.Fatal("empty modifier set reported held")
	}
}
