package annotate

import (
	"image"
)

// Store owns the background image, the finalized strokes and badges, and a
// LIFO undo history with exactly one entry per stroke, badge or crop since
// the last image load or ClearAll.
type Store struct {
	background *image.RGBA
	strokes    []Stroke
	badges     []Badge
	history    []Action
}

// NewStore returns a store holding bg with no annotations. bg may be nil.
func NewStore(bg *image.RGBA) *Store {
	s := &Store{}
	s.Load(bg)
	return s
}

// Load replaces the background and drops every annotation and all history.
func (s *Store) Load(bg *image.RGBA) {
	s.background = bg
	s.strokes = nil
	s.badges = nil
	s.history = nil
}

// Background returns the current background image, or nil before a load.
func (s *Store) Background() *image.RGBA { return s.background }

// ImageSize returns the background dimensions.
func (s *Store) ImageSize() image.Point {
	if s.background == nil {
		return image.Point{}
	}
	return s.background.Bounds().Size()
}

// Strokes returns the finalized strokes, oldest first. The slice must not
// be modified.
func (s *Store) Strokes() []Stroke { return s.strokes }

// Badges returns the placed badges, oldest first. The slice must not be
// modified.
func (s *Store) Badges() []Badge { return s.badges }

// History returns the undo entries, oldest first.
func (s *Store) History() []Action { return s.history }

// UndoDepth returns the number of undoable actions.
func (s *Store) UndoDepth() int { return len(s.history) }

// AddStroke appends a copy of st and records it for undo. Strokes with no
// segments are ignored. The stored stroke's ID is returned.
func (s *Store) AddStroke(st Stroke) string {
	if len(st.Segments) == 0 {
		return ""
	}
	st = st.clone()
	if st.ID == "" {
		st.ID = newID()
	}
	s.strokes = append(s.strokes, st)
	s.history = append(s.history, StrokeAction{ID: st.ID})
	return st.ID
}

// AddBadge appends b and records it for undo. Badges numbered outside
// MinBadgeNumber..MaxBadgeNumber are ignored.
func (s *Store) AddBadge(b Badge) string {
	if b.Number < MinBadgeNumber || b.Number > MaxBadgeNumber {
		return ""
	}
	if b.ID == "" {
		b.ID = newID()
	}
	s.badges = append(s.badges, b)
	s.history = append(s.history, BadgeAction{ID: b.ID})
	return b.ID
}

// ReplaceBackground installs bg as the result of a crop. The previous
// background and annotations are kept in the history and the live
// annotations are cleared.
func (s *Store) ReplaceBackground(bg *image.RGBA) {
	s.history = append(s.history, CropAction{
		Background: s.background,
		Strokes:    s.strokes,
		Badges:     s.badges,
	})
	s.background = bg
	s.strokes = nil
	s.badges = nil
}

// Undo reverts the most recent action and returns it. ok is false when the
// history is empty.
func (s *Store) Undo() (act Action, ok bool) {
	if len(s.history) == 0 {
		return nil, false
	}
	act = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	switch a := act.(type) {
	case StrokeAction:
		s.strokes = removeLast(s.strokes, func(st Stroke) bool { return st.ID == a.ID })
	case BadgeAction:
		s.badges = removeLast(s.badges, func(b Badge) bool { return b.ID == a.ID })
	case CropAction:
		s.background = a.Background
		s.strokes = a.Strokes
		s.badges = a.Badges
	}
	return act, true
}

// ClearAll removes every stroke, badge and history entry. The background
// is kept. It cannot be undone.
func (s *Store) ClearAll() {
	s.strokes = nil
	s.badges = nil
	s.history = nil
}

// removeLast drops the newest element matching fn. The backing array is
// copied so slices captured by earlier crop entries stay intact.
func removeLast[T any](items []T, fn func(T) bool) []T {
	for i := len(items) - 1; i >= 0; i-- {
		if fn(items[i]) {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...)
		}
	}
	return items
}
