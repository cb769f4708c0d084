package canvas

import (
	"image"
	"math"

	"github.com/example/inkshot/internal/annotate"
	"github.com/example/inkshot/internal/geom"
	"github.com/example/inkshot/internal/render"
)

// MinCropSize is the smallest crop drag, in view pixels along each axis,
// that is applied. Smaller drags are treated as accidental clicks.
const MinCropSize = 10

// CropRect maps a view-space selection to the image pixels it covers. The
// corners are rounded outwards and clamped to the image. ok is false for
// selections below MinCropSize or outside the image.
func CropRect(sp geom.Space, sel geom.Rect) (r image.Rectangle, ok bool) {
	if sel.Dx() < MinCropSize || sel.Dy() < MinCropSize {
		return image.Rectangle{}, false
	}
	lo := sp.ViewToImage(sel.Min)
	hi := sp.ViewToImage(sel.Max)
	r = image.Rect(
		clampInt(math.Floor(lo.X), sp.Image.X), clampInt(math.Floor(lo.Y), sp.Image.Y),
		clampInt(math.Ceil(hi.X), sp.Image.X), clampInt(math.Ceil(hi.Y), sp.Image.Y),
	)
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return image.Rectangle{}, false
	}
	return r, true
}

func clampInt(v float64, hi int) int {
	switch {
	case v < 0:
		return 0
	case v > float64(hi):
		return hi
	}
	return int(v)
}

// Crop bakes the annotations inside r into a new background cut to r and
// installs it in store. The replaced state is pushed for undo.
func Crop(store *annotate.Store, r image.Rectangle) bool {
	img := render.Region(store, r)
	if img == nil {
		return false
	}
	store.ReplaceBackground(img)
	return true
}

// crop applies a view-space selection and resets the view to fit.
func (s *Session) crop(sel geom.Rect) bool {
	r, ok := CropRect(s.Space(), sel)
	if !ok || !Crop(s.store, r) {
		return false
	}
	s.view.ResetToFit()
	return true
}
