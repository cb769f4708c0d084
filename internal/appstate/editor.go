package appstate

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/example/inkshot/internal/canvas"
	"github.com/example/inkshot/internal/clipboard"
	"github.com/example/inkshot/internal/notify"
	"github.com/example/inkshot/internal/theme"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	messageDuration = 2 * time.Second
	brushStep       = 1.0
)

// editor turns window events into canvas session calls. It holds no
// window resources so it can be driven directly in tests.
type editor struct {
	session  *canvas.Session
	theme    *theme.Theme
	output   string
	saveDir  string
	notifier *notify.Notifier

	copyImage func(image.Image) error
	now       func() time.Time

	pointer r2.Vec
	pressed bool

	message      string
	messageUntil time.Time
}

func newEditor(session *canvas.Session, th *theme.Theme) *editor {
	if th == nil {
		th = theme.Default()
	}
	return &editor{
		session:   session,
		theme:     th,
		copyImage: clipboard.WriteImage,
		now:       time.Now,
	}
}

// handleMouse reports whether the view needs repainting.
func (ed *editor) handleMouse(e mouse.Event) bool {
	ed.pointer = r2.Vec{X: float64(e.X), Y: float64(e.Y)}
	if e.Button.IsWheel() {
		if e.Direction != mouse.DirPress && e.Direction != mouse.DirStep {
			return false
		}
		switch e.Button {
		case mouse.ButtonWheelUp:
			ed.session.Scroll(ed.pointer, 1)
		case mouse.ButtonWheelDown:
			ed.session.Scroll(ed.pointer, -1)
		default:
			return false
		}
		return true
	}
	ev := canvas.PointerEvent{Pos: ed.pointer, Pressure: 1, Mods: modifiersOf(e.Modifiers)}
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		ed.pressed = true
		ev.Phase = canvas.PhaseDown
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if !ed.pressed {
			return false
		}
		ed.pressed = false
		ev.Phase = canvas.PhaseUp
	case e.Direction == mouse.DirNone && ed.pressed:
		ev.Phase = canvas.PhaseDrag
	default:
		return false
	}
	ed.session.HandlePointer(ev)
	return true
}

// handleKey reports whether the view needs repainting and whether the
// window should close.
func (ed *editor) handleKey(e key.Event) (repaint, quit bool) {
	cmd, n := classifyKey(e)
	if cmd == cmdNone {
		return false, false
	}
	return true, ed.run(cmd, n)
}

func (ed *editor) run(cmd command, n int) (quit bool) {
	s := ed.session
	switch cmd {
	case cmdNumber:
		switch s.NumberKey(n, ed.pointer, ed.now()) {
		case canvas.KeyColor:
			_, idx := s.Color()
			ed.status(fmt.Sprintf("colour %d: %s", idx, s.Settings().Palette[idx-1].Name))
		case canvas.KeyBadge:
			ed.status(fmt.Sprintf("badge %d", n))
		}
	case cmdCropMode:
		if s.ToggleCropMode() {
			ed.status("crop: drag a rectangle")
		} else {
			ed.status("crop cancelled")
		}
	case cmdZoomIn:
		s.ZoomIn(ed.pointer)
	case cmdZoomOut:
		s.ZoomOut(ed.pointer)
	case cmdResetZoom:
		s.ResetZoom()
	case cmdBrushSmaller:
		s.SetBrushSize(s.BrushSize() - brushStep)
		ed.status(fmt.Sprintf("brush %.0fpx", s.BrushSize()))
	case cmdBrushLarger:
		s.SetBrushSize(s.BrushSize() + brushStep)
		ed.status(fmt.Sprintf("brush %.0fpx", s.BrushSize()))
	case cmdUndo:
		if !s.Undo() {
			ed.status("nothing to undo")
		}
	case cmdClear:
		s.ClearAll()
		ed.status("cleared")
	case cmdCopyVisible:
		ed.copy(s.ExportVisible, "visible area")
	case cmdCopyFull:
		ed.copy(s.ExportFull, "image")
	case cmdSave:
		ed.save()
	case cmdEscape:
		if s.CropMode() {
			s.ToggleCropMode()
			ed.status("crop cancelled")
			return false
		}
		return true
	}
	return false
}

func (ed *editor) copy(export func() (*image.RGBA, error), what string) {
	img, err := export()
	if err == nil {
		err = ed.copyImage(img)
	}
	if err != nil {
		log.Printf("copy %s: %v", what, err)
		ed.status("copy failed")
		return
	}
	ed.notifier.Copy(what)
	ed.status("copied " + what)
}

func (ed *editor) save() {
	img, err := ed.session.ExportFull()
	if err != nil {
		log.Printf("save: %v", err)
		ed.status("save failed")
		return
	}
	path := ed.outputPath()
	if err := writePNG(path, img); err != nil {
		log.Printf("save: %v", err)
		ed.status("save failed")
		return
	}
	ed.notifier.Export(path)
	ed.status("saved " + path)
}

// outputPath returns the -output path, or a timestamped name in saveDir.
func (ed *editor) outputPath() string {
	if ed.output != "" {
		return ed.output
	}
	name := "inkshot-" + ed.now().Format("20060102-150405") + ".png"
	return filepath.Join(ed.saveDir, name)
}

func (ed *editor) status(msg string) {
	log.Print(msg)
	ed.message = msg
	ed.messageUntil = ed.now().Add(messageDuration)
}

// activeMessage returns the status message while it is still showing.
func (ed *editor) activeMessage() string {
	if ed.message == "" || !ed.now().Before(ed.messageUntil) {
		return ""
	}
	return ed.message
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
