package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var rgbaType = reflect.TypeOf(color.RGBA{})

// Parse reads a theme definition. Each line is "Key: value"; keys name
// Theme fields and unknown keys are ignored. Missing keys keep the Default
// values.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if err := SetField(t, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// SetField assigns value to the Theme field named key. Colour fields accept
// anything ParseColor does and integer fields a decimal number. Unknown keys
// are ignored.
func SetField(t *Theme, key, value string) error {
	if key == "Name" {
		t.Name = value
		return nil
	}
	field := reflect.ValueOf(t).Elem().FieldByName(key)
	if !field.IsValid() || !field.CanSet() {
		return nil
	}
	switch {
	case field.Type() == rgbaType:
		col, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		field.Set(reflect.ValueOf(col))
	case field.Kind() == reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
		field.SetInt(int64(v))
	}
	return nil
}

// ParseColor accepts #RRGGBB, #RRGGBBAA or an SVG colour name such as
// "orange". The alpha of #RRGGBBAA is applied as a premultiplied value.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 6, 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex length in %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

// FormatColor is the inverse of ParseColor for hex values.
func FormatColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X%02X", n.R, n.G, n.B, n.A)
}
