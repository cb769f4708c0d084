// Package theme holds the colours of the annotation window chrome: the
// backdrop shown around and behind the image and the crop selection overlay.
package theme

import (
	"image/color"
)

// Theme defines the on-screen colours of a canvas view. None of them reach
// exported images.
type Theme struct {
	Name string

	// Letterbox area outside the displayed image.
	Background color.RGBA

	// Checkerboard behind transparent image pixels.
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	CheckerSize  int

	// Crop selection: dashed border colours and the shade laid over the
	// area that will be discarded.
	CropBorder    color.RGBA
	CropBorderAlt color.RGBA
	CropShade     color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:          "Default",
		Background:    color.RGBA{220, 220, 220, 255},
		CheckerLight:  color.RGBA{220, 220, 220, 255},
		CheckerDark:   color.RGBA{192, 192, 192, 255},
		CheckerSize:   8,
		CropBorder:    color.RGBA{0, 0, 0, 255},
		CropBorderAlt: color.RGBA{255, 255, 255, 255},
		CropShade:     color.RGBA{0, 0, 0, 96},
	}
}
