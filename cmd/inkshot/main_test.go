package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/inkshot/internal/appstate"
	"github.com/example/inkshot/internal/config"
)

func testRoot(t *testing.T) *root {
	t.Helper()
	t.Setenv("INKSHOT_THEME", "")
	return newRootWithConfig(config.New())
}

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "steps.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const strokeScript = `steps:
  - action: down
    x: 10
    y: 25
  - action: drag
    x: 50
    y: 25
  - action: up
    x: 90
    y: 25
`

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestAnnotateRunCaptureError(t *testing.T) {
	original := captureScreenFn
	sentinel := errors.New("denied")
	captureScreenFn = func(string) (*image.RGBA, error) { return nil, sentinel }
	t.Cleanup(func() { captureScreenFn = original })

	cmd, err := parseAnnotateCmd([]string{"-capture"}, testRoot(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	} else if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestParseAnnotateNeedsOneSource(t *testing.T) {
	for _, args := range [][]string{nil, {"-file", "a.png", "-capture"}} {
		_, err := parseAnnotateCmd(args, testRoot(t))
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			t.Fatalf("args %v: expected usage error, got %v", args, err)
		}
		if !strings.Contains(uerr.Error(), "Usage: inkshot annotate") {
			t.Fatalf("help not rendered: %q", uerr.Error())
		}
	}
}

func TestAnnotateRunOpensWindow(t *testing.T) {
	origWindow, origLoad := runWindowFn, loadImageFn
	t.Cleanup(func() { runWindowFn, loadImageFn = origWindow, origLoad })
	bg := image.NewRGBA(image.Rect(0, 0, 8, 8))
	loadImageFn = func(string) (*image.RGBA, error) { return bg, nil }
	var got *appstate.AppState
	runWindowFn = func(st *appstate.AppState) { got = st }

	r := testRoot(t)
	r.config.BrushSize = 12
	if err := r.Run([]string{"-theme", "dark", "annotate", "-file", "x.png", "-output", "out.png"}); err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("window not started")
	}
	if got.Image != bg || got.Output != "out.png" || got.Settings.BrushSize != 12 {
		t.Fatalf("app state = %+v", got)
	}
	if got.Theme.Name != "Dark" {
		t.Fatalf("theme = %q, want Dark", got.Theme.Name)
	}
}

func TestThemePrecedence(t *testing.T) {
	r := testRoot(t)
	r.config.Theme = "contrast"
	if th := r.resolveTheme(); th.Name == "Default" {
		t.Fatalf("config theme ignored")
	}
	t.Setenv("INKSHOT_THEME", "dark")
	if th := r.resolveTheme(); th.Name != "Dark" {
		t.Fatalf("env theme = %q", th.Name)
	}
	r.themeName = "missing-theme"
	if th := r.resolveTheme(); th.Name != "Default" {
		t.Fatalf("unknown theme = %q, want Default", th.Name)
	}
}

func TestReplayWritesAnnotatedImage(t *testing.T) {
	in := writeTestPNG(t, 100, 50)
	out := filepath.Join(t.TempDir(), "out", "annotated.png")
	r := testRoot(t)
	err := r.Run([]string{"replay", "-file", in, "-script", writeScript(t, strokeScript), "-output", out})
	if err != nil {
		t.Fatal(err)
	}
	img := decodePNG(t, out)
	if img.Bounds() != image.Rect(0, 0, 100, 50) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	red := color.RGBAModel.Convert(img.At(50, 25)).(color.RGBA)
	if red != (color.RGBA{230, 25, 25, 255}) {
		t.Fatalf("stroke pixel = %v", red)
	}
	if c := color.RGBAModel.Convert(img.At(50, 5)).(color.RGBA); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background pixel = %v", c)
	}
}

func TestReplayShadowAndClipboard(t *testing.T) {
	orig := copyImageFn
	t.Cleanup(func() { copyImageFn = orig })
	var copied image.Rectangle
	copyImageFn = func(img image.Image) error {
		copied = img.Bounds()
		return nil
	}

	cmd, err := parseReplayCmd([]string{
		"-file", writeTestPNG(t, 100, 50), "-script", "-", "-output", "-", "-shadow", "-to-clipboard",
	}, testRoot(t))
	if err == nil {
		t.Fatal("stdin script with stdout output accepted")
	}

	var stdout bytes.Buffer
	cmd, err = parseReplayCmd([]string{
		"-file", writeTestPNG(t, 100, 50), "-script", writeScript(t, strokeScript),
		"-output", "-", "-shadow", "-to-clipboard", "-visible",
	}, testRoot(t))
	if err != nil {
		t.Fatal(err)
	}
	cmd.stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&stdout)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() <= 100 || b.Dy() <= 50 {
		t.Fatalf("shadow did not grow the canvas: %v", b)
	}
	if copied != img.Bounds() {
		t.Fatalf("copied %v, wrote %v", copied, img.Bounds())
	}
}

func TestReplayReportsFailingStep(t *testing.T) {
	r := testRoot(t)
	script := writeScript(t, "steps:\n  - action: undo\n  - action: paint\n")
	err := r.Run([]string{"replay", "-file", writeTestPNG(t, 10, 10), "-script", script, "-output", filepath.Join(t.TempDir(), "o.png")})
	if err == nil || !strings.Contains(err.Error(), "step 2") {
		t.Fatalf("err = %v, want step 2 failure", err)
	}
}

func TestReplayScriptFromStdin(t *testing.T) {
	out := filepath.Join(t.TempDir(), "o.png")
	cmd, err := parseReplayCmd([]string{"-file", writeTestPNG(t, 100, 50), "-script", "-", "-output", out}, testRoot(t))
	if err != nil {
		t.Fatal(err)
	}
	cmd.stdin = strings.NewReader("view: {width: 200, height: 100}\n" + strokeScript)
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	// The 200x100 view shows the image at twice its size, so view x 50..180
	// is image x 5..45 at image y 12.5.
	if c := color.RGBAModel.Convert(decodePNG(t, out).At(25, 12)).(color.RGBA); c.G > 100 {
		t.Fatalf("stroke pixel = %v", c)
	}
}

func TestRootWithoutCommandShowsHelp(t *testing.T) {
	err := testRoot(t).Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %v", err)
	}
	help := uerr.Error()
	for _, want := range []string{"Usage: inkshot", "replay", "-notify-export"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}

func TestVersionAndConfigPrint(t *testing.T) {
	r := testRoot(t)
	var out bytes.Buffer
	v := &versionCmd{root: r, stdout: &out}
	if err := v.Run(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "inkshot version dev\n" {
		t.Fatalf("version = %q", got)
	}

	c, err := parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatal(err)
	}
	out.Reset()
	c.stdout = &out
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "brush_size") {
		t.Fatalf("config print = %q", out.String())
	}
}

func TestConfigSaveWritesOverridePath(t *testing.T) {
	r := testRoot(t)
	path := filepath.Join(t.TempDir(), "cfg", "config.rc")
	c, err := parseConfigCmd([]string{"save"}, r)
	if err != nil {
		t.Fatal(err)
	}
	c.loader = config.NewLoader("test", path)
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != r.config.String() {
		t.Fatalf("saved config differs:\n%s", data)
	}
}
