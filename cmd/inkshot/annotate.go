package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"

	"github.com/example/inkshot/internal/appstate"
	"github.com/example/inkshot/internal/capture"
)

var (
	captureScreenFn = capture.CaptureScreen
	loadImageFn     = loadImage
	runWindowFn     = func(st *appstate.AppState) { st.Run() }
)

// annotateCmd opens the annotation window.
type annotateCmd struct {
	r       *root
	fs      *flag.FlagSet
	file    string
	capture bool
	display string
	output  string
}

func (a *annotateCmd) Program() string        { return a.r.program + " annotate" }
func (a *annotateCmd) FlagSet() *flag.FlagSet { return a.fs }

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	a := &annotateCmd{r: r, fs: flag.NewFlagSet("annotate", flag.ContinueOnError)}
	a.fs.SetOutput(io.Discard)
	a.fs.StringVar(&a.file, "file", "", "image file to annotate")
	a.fs.BoolVar(&a.capture, "capture", false, "capture the X11 desktop instead of reading a file")
	a.fs.StringVar(&a.display, "display", "", "monitor to capture: primary, an index or a name")
	a.fs.StringVar(&a.output, "output", "", "path Ctrl+S writes to (default: timestamped file in save_dir)")
	if err := a.fs.Parse(args); err != nil {
		return nil, &UsageError{of: a, msg: usageMessage(err)}
	}
	if (a.file == "") == !a.capture {
		return nil, &UsageError{of: a, msg: "exactly one of -file or -capture is required"}
	}
	return a, nil
}

func (a *annotateCmd) background() (*image.RGBA, error) {
	if a.capture {
		img, err := captureScreenFn(a.display)
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		return img, nil
	}
	return loadImageFn(a.file)
}

func (a *annotateCmd) Run() error {
	img, err := a.background()
	if err != nil {
		return err
	}
	cfg := a.r.config
	st := appstate.New(
		appstate.WithImage(img),
		appstate.WithOutput(a.output),
		appstate.WithSaveDir(cfg.SaveDir),
		appstate.WithSettings(cfg.Settings()),
		appstate.WithTheme(a.r.activeTheme),
		appstate.WithNotifier(a.r.notifier),
	)
	runWindowFn(st)
	return nil
}

// usageMessage drops flag.ErrHelp so -h just prints help.
func usageMessage(err error) string {
	if errors.Is(err, flag.ErrHelp) {
		return ""
	}
	return err.Error()
}
