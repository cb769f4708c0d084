package canvas

import (
	"time"

	"github.com/example/inkshot/internal/annotate"
	"gonum.org/v1/gonum/spatial/r2"
)

// PlaceBadge adds badge n at the view point at in the current colour. The
// badge diameter is the badge size converted to image pixels. Points
// outside the image are ignored.
func (s *Session) PlaceBadge(n int, at r2.Vec) bool {
	if !s.Loaded() || n < annotate.MinBadgeNumber || n > annotate.MaxBadgeNumber {
		return false
	}
	sp := s.Space()
	p := sp.ViewToImage(at)
	if !sp.ImageBounds().Contains(p) {
		return false
	}
	id := s.store.AddBadge(annotate.Badge{
		Number:   n,
		Position: p,
		Color:    s.color,
		Size:     sp.ScreenLengthToImageLength(s.badgeSize),
	})
	return id != ""
}

// KeyResult says what a number key press did.
type KeyResult int

const (
	KeyIgnored KeyResult = iota
	KeyColor
	KeyBadge
)

func (k KeyResult) String() string {
	switch k {
	case KeyColor:
		return "color"
	case KeyBadge:
		return "badge"
	}
	return "ignored"
}

type keyTracker struct {
	number int
	at     time.Time
}

// NumberKey handles a press of digit n at time now with the pointer at the
// view point at. The first press selects palette colour n. Pressing the
// same digit again within the double-press window places badge n at the
// pointer.
func (s *Session) NumberKey(n int, at r2.Vec, now time.Time) KeyResult {
	if n < annotate.MinBadgeNumber || n > annotate.MaxBadgeNumber {
		return KeyIgnored
	}
	prev := s.keys
	s.keys = keyTracker{number: n, at: now}
	if prev.number == n && !prev.at.IsZero() && now.Sub(prev.at) <= s.settings.DoublePress {
		s.keys = keyTracker{}
		if s.PlaceBadge(n, at) {
			return KeyBadge
		}
		return KeyIgnored
	}
	if s.SelectColor(n) {
		return KeyColor
	}
	return KeyIgnored
}
