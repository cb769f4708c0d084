package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/example/inkshot/internal/canvas"
	"github.com/example/inkshot/internal/clipboard"
	"github.com/example/inkshot/internal/geom"
	"github.com/example/inkshot/internal/render"
	"github.com/example/inkshot/internal/script"
)

var copyImageFn = clipboard.WriteImage

// replayCmd applies a gesture script to an image without opening a window.
type replayCmd struct {
	r           *root
	fs          *flag.FlagSet
	file        string
	script      string
	output      string
	visible     bool
	shadow      bool
	toClipboard bool

	stdin  io.Reader
	stdout io.Writer
}

func (c *replayCmd) Program() string        { return c.r.program + " replay" }
func (c *replayCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	c := &replayCmd{r: r, fs: flag.NewFlagSet("replay", flag.ContinueOnError), stdin: os.Stdin, stdout: os.Stdout}
	c.fs.SetOutput(io.Discard)
	c.fs.StringVar(&c.file, "file", "", "background image")
	c.fs.StringVar(&c.script, "script", "", "YAML gesture script, or - for stdin")
	c.fs.StringVar(&c.output, "output", "annotated.png", "output PNG path, or - for stdout")
	c.fs.BoolVar(&c.visible, "visible", false, "export only the region visible at the end of the script")
	c.fs.BoolVar(&c.shadow, "shadow", false, "add a drop shadow to the exported image")
	c.fs.BoolVar(&c.toClipboard, "to-clipboard", false, "also copy the exported image to the clipboard")
	if err := c.fs.Parse(args); err != nil {
		return nil, &UsageError{of: c, msg: usageMessage(err)}
	}
	if c.file == "" || c.script == "" {
		return nil, &UsageError{of: c, msg: "-file and -script are required"}
	}
	if c.script == "-" && c.output == "-" {
		return nil, &UsageError{of: c, msg: "stdin script and stdout output cannot be combined"}
	}
	return c, nil
}

func (c *replayCmd) readScript() (*script.Script, error) {
	if c.script == "-" {
		return script.Parse(c.stdin)
	}
	f, err := os.Open(c.script)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := script.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.script, err)
	}
	return sc, nil
}

// export replays sc over img and returns the composited result.
func (c *replayCmd) export(img *image.RGBA, sc *script.Script) (*image.RGBA, error) {
	w, h := sc.View.Width, sc.View.Height
	if w <= 0 || h <= 0 {
		sz := img.Bounds().Size()
		w, h = float64(sz.X), float64(sz.Y)
	}
	session := canvas.NewSession(c.r.config.Settings(), geom.R(0, 0, w, h))
	session.Load(img)
	player := &script.Player{Session: session, Start: time.Now()}
	if err := player.Run(sc); err != nil {
		return nil, err
	}
	exportFn := session.ExportFull
	if c.visible {
		exportFn = session.ExportVisible
	}
	out, err := exportFn()
	if err != nil {
		return nil, err
	}
	if c.shadow {
		out = render.ApplyShadow(out, render.DefaultShadowOptions())
	}
	return out, nil
}

func (c *replayCmd) Run() error {
	img, err := loadImageFn(c.file)
	if err != nil {
		return err
	}
	sc, err := c.readScript()
	if err != nil {
		return err
	}
	out, err := c.export(img, sc)
	if err != nil {
		return fmt.Errorf("replay %s: %w", c.script, err)
	}
	if err := writeImage(c.output, c.stdout, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.output, err)
	}
	if c.output != "-" {
		c.r.notifier.Export(c.output)
	}
	if c.toClipboard {
		if err := copyImageFn(out); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		c.r.notifier.Copy("image")
	}
	return nil
}
