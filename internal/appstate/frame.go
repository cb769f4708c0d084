package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const messageSize = 20

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: messageSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		panic(err)
	}
}

// drawFrame renders the editor into a fresh buffer and publishes it.
func drawFrame(s screen.Screen, w screen.Window, sz image.Point, ed *editor) {
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(sz)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	ed.paint(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// paint draws the canvas view and the status message into dst.
func (ed *editor) paint(dst *image.RGBA) {
	ed.session.Render(dst, ed.theme)
	if msg := ed.activeMessage(); msg != "" {
		drawMessage(dst, msg)
	}
}

// drawMessage centres msg near the bottom of dst on a translucent plate.
func drawMessage(dst *image.RGBA, msg string) {
	bounds := dst.Bounds()
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: messageFace}
	width := d.MeasureString(msg).Ceil()
	m := messageFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()

	px := bounds.Min.X + (bounds.Dx()-width)/2
	py := bounds.Max.Y - descent - 16
	plate := image.Rect(px-8, py-ascent-6, px+width+8, py+descent+6)
	draw.Draw(dst, plate, image.NewUniform(color.RGBA{255, 255, 255, 230}), image.Point{}, draw.Over)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
