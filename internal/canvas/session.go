// Package canvas drives one annotation session: it owns the background and
// annotations, the zoom and pan of the view, and the gesture in progress,
// and turns pointer events and commands into changes of that state.
//
// A Session is not safe for concurrent use. All events are expected to
// arrive from a single event loop, in order.
package canvas

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/inkshot/internal/annotate"
	"github.com/example/inkshot/internal/geom"
	"github.com/example/inkshot/internal/render"
	"github.com/example/inkshot/internal/theme"
	"github.com/example/inkshot/internal/view"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrNoImage is returned by exports requested before an image is loaded.
var ErrNoImage = errors.New("canvas: no image loaded")

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureStroke
	gesturePan
	gestureCrop
)

// Session is the state of one canvas.
type Session struct {
	settings Settings
	store    *annotate.Store
	recorder *annotate.Recorder
	view     *view.Controller
	bounds   geom.Rect

	colorIndex   int
	color        color.RGBA
	brushSize    float64
	pressureFlow float64
	badgeSize    float64
	cropMode     bool

	gesture   gestureKind
	last      r2.Vec
	cropStart r2.Vec

	keys keyTracker
}

// NewSession returns an empty session viewing bounds.
func NewSession(settings Settings, bounds geom.Rect) *Session {
	settings = settings.Sanitize()
	store := annotate.NewStore(nil)
	s := &Session{
		settings:     settings,
		store:        store,
		recorder:     annotate.NewRecorder(store),
		view:         view.NewController(),
		bounds:       bounds,
		brushSize:    settings.BrushSize,
		pressureFlow: settings.PressureFlow,
		badgeSize:    settings.BadgeSize,
	}
	s.SelectColor(1)
	return s
}

// Load replaces the background with img, dropping every annotation, the
// undo history and any zoom.
func (s *Session) Load(img image.Image) {
	s.cancelGesture()
	s.store.Load(toRGBA(img))
	s.view.ResetToFit()
	s.cropMode = false
	s.keys = keyTracker{}
}

// toRGBA returns img as a zero-origin *image.RGBA, copying only when needed.
func toRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Loaded reports whether a background image is present.
func (s *Session) Loaded() bool { return s.store.Background() != nil }

// Resize changes the view bounds. Zoom and pan are kept.
func (s *Session) Resize(bounds geom.Rect) { s.bounds = bounds }

// Bounds returns the view bounds.
func (s *Session) Bounds() geom.Rect { return s.bounds }

// Space returns the current coordinate space.
func (s *Session) Space() geom.Space {
	return s.view.Space(s.bounds, s.store.ImageSize())
}

// ViewState returns the current zoom and pan.
func (s *Session) ViewState() view.State { return s.view.State() }

// Store exposes the annotations for inspection. Mutate only through the
// session.
func (s *Session) Store() *annotate.Store { return s.store }

// Settings returns the sanitized settings the session was created with.
func (s *Session) Settings() Settings { return s.settings }

// SelectColor makes palette entry n (1-based) the drawing colour. It
// reports false when n has no entry.
func (s *Session) SelectColor(n int) bool {
	if n < 1 || n > len(s.settings.Palette) {
		return false
	}
	s.colorIndex = n
	s.color = s.settings.Palette[n-1].Color
	return true
}

// Color returns the drawing colour and its palette number.
func (s *Session) Color() (color.RGBA, int) { return s.color, s.colorIndex }

// SetColor sets an arbitrary drawing colour outside the palette.
func (s *Session) SetColor(c color.RGBA) {
	s.color = c
	s.colorIndex = 0
}

// SetBrushSize sets the screen-pixel diameter used by new strokes.
func (s *Session) SetBrushSize(px float64) { s.brushSize = max(px, 1) }

// BrushSize returns the screen-pixel brush diameter.
func (s *Session) BrushSize() float64 { return s.brushSize }

// SetPressureFlow sets how strongly pressure affects new strokes.
func (s *Session) SetPressureFlow(v float64) { s.pressureFlow = clampUnit(v) }

// PressureFlow returns the pressure flow for new strokes.
func (s *Session) PressureFlow() float64 { return s.pressureFlow }

// SetBadgeSize sets the screen-pixel diameter of new badges.
func (s *Session) SetBadgeSize(px float64) { s.badgeSize = max(px, 1) }

// BadgeSize returns the screen-pixel badge diameter.
func (s *Session) BadgeSize() float64 { return s.badgeSize }

// ToggleCropMode switches crop mode and returns the new state. Leaving crop
// mode abandons an unfinished crop drag.
func (s *Session) ToggleCropMode() bool {
	if s.cropMode && s.gesture == gestureCrop {
		s.gesture = gestureNone
	}
	s.cropMode = !s.cropMode
	return s.cropMode
}

// CropMode reports whether pointer drags select a crop rectangle.
func (s *Session) CropMode() bool { return s.cropMode }

// Undo reverts the newest action. Undoing a crop also resets the view to
// fit. It reports false when there was nothing to undo.
func (s *Session) Undo() bool {
	s.endGesture()
	act, ok := s.store.Undo()
	if !ok {
		return false
	}
	if _, crop := act.(annotate.CropAction); crop {
		s.view.ResetToFit()
	}
	return true
}

// ClearAll removes every annotation and the undo history.
func (s *Session) ClearAll() {
	s.cancelGesture()
	s.store.ClearAll()
}

// ZoomIn zooms by one step anchored at the view point at.
func (s *Session) ZoomIn(at r2.Vec) { s.zoomAt(at, s.settings.ZoomStep) }

// ZoomOut zooms out by one step anchored at the view point at.
func (s *Session) ZoomOut(at r2.Vec) { s.zoomAt(at, 1/s.settings.ZoomStep) }

// Scroll zooms by steps zoom steps; negative steps zoom out.
func (s *Session) Scroll(at r2.Vec, steps float64) {
	if steps == 0 {
		return
	}
	f := math.Pow(s.settings.ZoomStep, steps)
	s.zoomAt(at, f)
}

// ResetZoom returns to the fitted view.
func (s *Session) ResetZoom() { s.view.ResetToFit() }

// Pan moves the zoomed display by delta view pixels.
func (s *Session) Pan(delta r2.Vec) { s.view.Pan(delta) }

func (s *Session) zoomAt(at r2.Vec, factor float64) {
	if !s.Loaded() {
		return
	}
	s.view.ZoomAtPoint(s.bounds, s.store.ImageSize(), at, factor)
}

// Selection returns the crop rectangle being dragged, in view space. It is
// empty when no crop drag is active.
func (s *Session) Selection() image.Rectangle {
	if s.gesture != gestureCrop {
		return image.Rectangle{}
	}
	return geom.R(s.cropStart.X, s.cropStart.Y, s.last.X, s.last.Y).Outer()
}

// Render draws the current view into dst.
func (s *Session) Render(dst *image.RGBA, th *theme.Theme) {
	ov := render.Overlay{Selection: s.Selection()}
	if st, ok := s.recorder.Current(); ok {
		ov.Live = &st
	}
	render.View(dst, s.store, s.Space(), th, ov)
}

// ExportFull renders the whole annotated image at native resolution.
func (s *Session) ExportFull() (*image.RGBA, error) {
	if !s.Loaded() {
		return nil, ErrNoImage
	}
	return render.Full(s.store), nil
}

// ExportVisible renders the region shown in the view at native resolution,
// or the whole image when not zoomed in.
func (s *Session) ExportVisible() (*image.RGBA, error) {
	if !s.Loaded() {
		return nil, ErrNoImage
	}
	return render.Visible(s.store, s.Space()), nil
}
