package theme

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FF8000", color.RGBA{255, 128, 0, 255}},
		{"#ff000080", color.RGBA{128, 0, 0, 128}},
		{"orange", color.RGBA{255, 165, 0, 255}},
		{" Red ", color.RGBA{255, 0, 0, 255}},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"#12345", "#GGGGGG", "notacolour", ""} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded", bad)
		}
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, s := range []string{"#1A73E8", "#00000060"} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatColor(c); got != s {
			t.Errorf("FormatColor(ParseColor(%q)) = %q", s, got)
		}
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: test\n# comment\nCropBorder: #00FF00\nCheckerSize: 4\nUnknown: #000000\n"))
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "test" || th.CropBorder != (color.RGBA{0, 255, 0, 255}) || th.CheckerSize != 4 {
		t.Fatalf("parsed %+v", th)
	}
	if th.Background != Default().Background {
		t.Fatalf("background = %v, want default", th.Background)
	}
}

func TestParseReportsLine(t *testing.T) {
	_, err := Parse(strings.NewReader("Name: x\nBackground: #nope\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoaderEmbedded(t *testing.T) {
	l := &Loader{}
	for _, n := range Names() {
		th, err := l.Load(n)
		if err != nil {
			t.Fatalf("Load(%q): %v", n, err)
		}
		if th.Name == "" {
			t.Errorf("theme %q has no name", n)
		}
	}
	if len(Names()) < 2 {
		t.Fatalf("embedded themes = %v", Names())
	}
}

func TestLoaderConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: Mine\nBackground: #010203\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	th, err := l.Load("mine")
	if err != nil {
		t.Fatal(err)
	}
	if th.Background != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("background = %v", th.Background)
	}
	if _, err := l.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing theme err = %v", err)
	}
}

func TestLoaderExtraWins(t *testing.T) {
	custom := &Theme{Name: "dark override"}
	l := &Loader{Extra: map[string]*Theme{"dark": custom}}
	th, err := l.Load("dark")
	if err != nil || th != custom {
		t.Fatalf("Load(dark) = %v, %v", th, err)
	}
}
