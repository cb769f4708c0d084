package appstate

import (
	"unicode"

	"github.com/example/inkshot/internal/canvas"
	"golang.org/x/mobile/event/key"
)

type command int

const (
	cmdNone command = iota
	cmdNumber
	cmdCropMode
	cmdZoomIn
	cmdZoomOut
	cmdResetZoom
	cmdBrushSmaller
	cmdBrushLarger
	cmdUndo
	cmdClear
	cmdCopyVisible
	cmdCopyFull
	cmdSave
	cmdEscape
)

var commandNames = [...]string{
	cmdNone:         "none",
	cmdNumber:       "number",
	cmdCropMode:     "crop-mode",
	cmdZoomIn:       "zoom-in",
	cmdZoomOut:      "zoom-out",
	cmdResetZoom:    "reset-zoom",
	cmdBrushSmaller: "brush-smaller",
	cmdBrushLarger:  "brush-larger",
	cmdUndo:         "undo",
	cmdClear:        "clear",
	cmdCopyVisible:  "copy-visible",
	cmdCopyFull:     "copy-full",
	cmdSave:         "save",
	cmdEscape:       "escape",
}

func (c command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// shortcut identifies a key press by code and the modifiers that matter.
type shortcut struct {
	Code      key.Code
	Modifiers key.Modifiers
}

const shortcutMods = key.ModShift | key.ModControl

var keymap = map[shortcut]command{
	{key.CodeZ, key.ModControl}:                cmdUndo,
	{key.CodeDeleteBackspace, key.ModControl}:  cmdClear,
	{key.CodeC, key.ModControl}:                cmdCopyVisible,
	{key.CodeC, key.ModControl | key.ModShift}: cmdCopyFull,
	{key.CodeS, key.ModControl}:                cmdSave,
	{key.CodeEscape, 0}:                        cmdEscape,
	{key.CodeKeypadPlusSign, 0}:                cmdZoomIn,
	{key.CodeKeypadHyphenMinus, 0}:             cmdZoomOut,
}

// runeCommands maps unmodified printable keys. Shifted variants such as
// '+' arrive as their own rune.
var runeCommands = map[rune]command{
	'r': cmdCropMode,
	'+': cmdZoomIn,
	'=': cmdZoomIn,
	'-': cmdZoomOut,
	'0': cmdResetZoom,
	'[': cmdBrushSmaller,
	']': cmdBrushLarger,
}

// classifyKey maps a key press to a command. For cmdNumber the digit 1..9
// is returned as well.
func classifyKey(e key.Event) (command, int) {
	if e.Direction != key.DirPress && e.Direction != key.DirNone {
		return cmdNone, 0
	}
	if cmd, ok := keymap[shortcut{e.Code, e.Modifiers & shortcutMods}]; ok {
		return cmd, 0
	}
	if e.Modifiers&(key.ModControl|key.ModAlt|key.ModMeta) != 0 {
		return cmdNone, 0
	}
	r := unicode.ToLower(e.Rune)
	if r >= '1' && r <= '9' {
		return cmdNumber, int(r - '0')
	}
	if cmd, ok := runeCommands[r]; ok {
		return cmd, 0
	}
	return cmdNone, 0
}

// modifiersOf converts shiny key modifiers to canvas modifiers.
func modifiersOf(m key.Modifiers) canvas.Modifiers {
	var out canvas.Modifiers
	for _, p := range []struct {
		from key.Modifiers
		to   canvas.Modifiers
	}{
		{key.ModShift, canvas.ModShift},
		{key.ModControl, canvas.ModControl},
		{key.ModAlt, canvas.ModAlt},
		{key.ModMeta, canvas.ModMeta},
	} {
		if m&p.from != 0 {
			out |= p.to
		}
	}
	return out
}
