// Package capture grabs the desktop as a background image for a canvas.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"
)

// MonitorInfo describes one monitor of the desktop layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

type platformBackend interface {
	ListMonitors() ([]MonitorInfo, error)
	CaptureRoot() (*image.RGBA, error)
}

var (
	backend       platformBackend = newBackend()
	errNoMonitors                 = errors.New("no monitors available")
)

// ListMonitors returns the connected monitors in output order.
func ListMonitors() ([]MonitorInfo, error) {
	monitors, err := backend.ListMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return monitors, nil
}

// CaptureScreen captures the whole desktop. A non-empty display selector
// crops the result to the matching monitor; see FindMonitor.
func CaptureScreen(display string) (*image.RGBA, error) {
	shot, err := backend.CaptureRoot()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	if display == "" {
		return shot, nil
	}
	monitors, err := ListMonitors()
	if err != nil {
		return nil, fmt.Errorf("capture display %q: %w", display, err)
	}
	mon, err := FindMonitor(monitors, display)
	if err != nil {
		return nil, fmt.Errorf("capture display %q: %w", display, err)
	}
	return cropToRect(shot, mon.Rect)
}

// FindMonitor resolves a selector: "" picks the first monitor, "primary"
// the primary one, a number (optionally prefixed with #) an index, and
// anything else a case-insensitive substring of the output name.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	switch sel {
	case "":
		return monitors[0], nil
	case "primary":
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), sel) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}

// cropToRect copies the part of src inside rect into a zero-origin image.
func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
