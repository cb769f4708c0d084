//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// decodeZPixmap converts BGR(X) ZPixmap data of the given depth to RGBA.
// Pixels without an alpha byte, or depths below 32, are opaque.
func decodeZPixmap(formats []xproto.Format, depth byte, data []byte, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("screen has empty geometry")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("screen pixels: empty image data")
	}
	bpp := 0
	for _, f := range formats {
		if f.Depth == depth {
			bpp = int(f.BitsPerPixel) / 8
			break
		}
	}
	if bpp < 3 {
		return nil, fmt.Errorf("unsupported screen depth %d", depth)
	}
	stride := len(data) / h
	if stride*h != len(data) || stride < w*bpp {
		return nil, fmt.Errorf("screen pixels: unexpected stride")
	}
	hasAlpha := bpp >= 4 && depth == 32

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			s, d := src[x*bpp:], dst[x*4:]
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], 0xFF
			if hasAlpha {
				d[3] = s[3]
			}
		}
	}
	return img, nil
}
