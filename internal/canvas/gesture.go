package canvas

import (
	"github.com/example/inkshot/internal/annotate"
	"github.com/example/inkshot/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// HandlePointer routes one pointer event. A down event starts a crop drag
// in crop mode, a pan when the pan modifier is held and a stroke otherwise.
// A down that arrives while a gesture is active ends that gesture first.
// Events are ignored until an image is loaded.
func (s *Session) HandlePointer(ev PointerEvent) {
	if !s.Loaded() {
		return
	}
	switch ev.Phase {
	case PhaseDown:
		s.endGesture()
		s.last = ev.Pos
		switch {
		case s.cropMode:
			s.gesture = gestureCrop
			s.cropStart = ev.Pos
		case ev.Mods.Has(s.settings.PanModifier):
			s.gesture = gesturePan
		default:
			s.gesture = gestureStroke
			s.recorder.Begin(s.Space(), s.toImage(ev.Pos), ev.Pressure, s.brush())
		}
	case PhaseDrag:
		s.move(ev)
	case PhaseUp:
		s.move(ev)
		s.endGesture()
	}
}

func (s *Session) move(ev PointerEvent) {
	switch s.gesture {
	case gestureStroke:
		s.recorder.Extend(s.toImage(ev.Pos), ev.Pressure)
	case gesturePan:
		s.view.Pan(r2.Sub(ev.Pos, s.last))
	case gestureCrop, gestureNone:
	}
	s.last = ev.Pos
}

// endGesture completes the active gesture as if the pointer was released.
func (s *Session) endGesture() {
	g := s.gesture
	s.gesture = gestureNone
	switch g {
	case gestureStroke:
		s.recorder.End()
	case gestureCrop:
		sel := geom.R(s.cropStart.X, s.cropStart.Y, s.last.X, s.last.Y)
		if s.crop(sel) {
			s.cropMode = false
		}
	case gesturePan, gestureNone:
	}
}

// cancelGesture drops the active gesture without applying it.
func (s *Session) cancelGesture() {
	if s.gesture == gestureStroke {
		s.recorder.Cancel()
	}
	s.gesture = gestureNone
}

// Drawing reports whether a stroke is being recorded.
func (s *Session) Drawing() bool { return s.recorder.Drawing() }

func (s *Session) toImage(p r2.Vec) r2.Vec { return s.Space().ViewToImage(p) }

func (s *Session) brush() annotate.Brush {
	return annotate.Brush{Color: s.color, Size: s.brushSize, PressureFlow: s.pressureFlow}
}
