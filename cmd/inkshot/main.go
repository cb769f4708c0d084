package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/inkshot/internal/config"
	"github.com/example/inkshot/internal/notify"
	"github.com/example/inkshot/internal/theme"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	exportAlert bool
	copyAlert   bool
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string { return r.program }

func (r *root) FlagSet() *flag.FlagSet { return r.fs }

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	return newRootWithConfig(cfg)
}

func newRootWithConfig(cfg *config.Config) *root {
	r := &root{
		fs:       flag.NewFlagSet("inkshot", flag.ContinueOnError),
		program:  "inkshot",
		notifier: notify.New(notify.LoadPreferences()),
		config:   cfg,
	}
	r.fs.BoolVar(&r.exportAlert, "notify-export", cfg.Notify.Export, "show a desktop notification after writing an image")
	r.fs.BoolVar(&r.copyAlert, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	// Precedence: flag > INKSHOT_THEME > config.
	r.fs.StringVar(&r.themeName, "theme", "", "colour theme ("+strings.Join(theme.Names(), ", ")+") or a .theme file")
	r.fs.Usage = func() {}
	r.fs.SetOutput(io.Discard)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventExport, r.exportAlert)
	r.notifier.Enable(notify.EventCopy, r.copyAlert)
	r.activeTheme = r.resolveTheme()

	name, args := r.fs.Arg(0), r.fs.Args()[1:]
	var (
		cmd runnable
		err error
	)
	switch name {
	case "annotate":
		cmd, err = parseAnnotateCmd(args, r)
	case "replay":
		cmd, err = parseReplayCmd(args, r)
	case "config":
		cmd, err = parseConfigCmd(args, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolveTheme picks the theme named by -theme, INKSHOT_THEME or the
// config, falling back to the default with a warning.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("INKSHOT_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	t, err := r.config.ThemeLoader().Load(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load theme %q: %v. using default.\n", name, err)
		return theme.Default()
	}
	return t
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// loadImage decodes any registered raster format into a zero-origin RGBA.
func loadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return img, nil
}

// writeImage encodes img as PNG to path, or to w when path is "-".
func writeImage(path string, w io.Writer, img image.Image) error {
	if path == "-" {
		return png.Encode(w, img)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
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
