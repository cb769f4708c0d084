// Package appstate runs the interactive annotation window: a shiny event
// loop that feeds pointer and key events to a canvas session and paints
// its view.
package appstate

import (
	"image"
	"log"
	"sync"

	"github.com/example/inkshot/internal/canvas"
	"github.com/example/inkshot/internal/geom"
	"github.com/example/inkshot/internal/notify"
	"github.com/example/inkshot/internal/theme"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

const windowTitle = "Inkshot"

var (
	maxWindow = image.Pt(1600, 1000)
	minWindow = image.Pt(320, 240)
)

// AppState holds the configuration of the annotation window.
type AppState struct {
	Image    *image.RGBA
	Output   string
	SaveDir  string
	Settings canvas.Settings
	Theme    *theme.Theme
	Notifier *notify.Notifier

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithImage sets the background to annotate.
func WithImage(img *image.RGBA) Option { return func(a *AppState) { a.Image = img } }

// WithOutput sets the path Ctrl+S writes to.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSaveDir sets the directory for timestamped saves when no output is set.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithSettings sets the drawing settings for the session.
func WithSettings(s canvas.Settings) Option { return func(a *AppState) { a.Settings = s } }

// WithTheme sets the colours of the window chrome.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.Theme = th } }

// WithNotifier sets the notifier used after copy and save.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers fn to run once when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New returns an AppState with default settings and theme.
func New(opts ...Option) *AppState {
	a := &AppState{Settings: canvas.DefaultSettings(), Theme: theme.Default()}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run opens the window and blocks until it closes.
func (a *AppState) Run() { driver.Main(a.Main) }

// newEditor builds the session and editor for an initial view size.
func (a *AppState) newEditor(sz image.Point) *editor {
	session := canvas.NewSession(a.Settings, geom.R(0, 0, float64(sz.X), float64(sz.Y)))
	if a.Image != nil {
		session.Load(a.Image)
	}
	ed := newEditor(session, a.Theme)
	ed.output = a.Output
	ed.saveDir = a.SaveDir
	ed.notifier = a.Notifier
	return ed
}

// Main is the shiny entry point.
func (a *AppState) Main(s screen.Screen) {
	sz := windowSize(a.Image)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: windowTitle})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	ed := a.newEditor(sz)
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			sz = e.Size()
			ed.session.Resize(geom.R(0, 0, float64(sz.X), float64(sz.Y)))
			w.Send(paint.Event{})
		case paint.Event:
			drawFrame(s, w, sz, ed)
		case mouse.Event:
			if ed.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			repaint, quit := ed.handleKey(e)
			if quit {
				return
			}
			if repaint {
				w.Send(paint.Event{})
			}
		case error:
			log.Print(e)
		}
	}
}

// windowSize fits the image inside maxWindow without going below minWindow.
func windowSize(img *image.RGBA) image.Point {
	if img == nil {
		return minWindow
	}
	sz := img.Bounds().Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return minWindow
	}
	scale := min(1, float64(maxWindow.X)/float64(sz.X), float64(maxWindow.Y)/float64(sz.Y))
	w := max(int(float64(sz.X)*scale), minWindow.X)
	h := max(int(float64(sz.Y)*scale), minWindow.Y)
	return image.Pt(w, h)
}
