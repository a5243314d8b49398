package termview

import (
	"fmt"
	"image/color"
	"strings"
)

// Color identifies one of the 16 standard terminal colors, or the Default
// sentinel meaning "whatever the host renders when no color was requested".
type Color uint8

const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite

	// ColorDefault is the sentinel for cells that never received an explicit
	// foreground or background. It normalizes to white (fg) or black (bg)
	// before run compression.
	ColorDefault
)

var colorNames = [...]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"brightblack", "brightred", "brightgreen", "brightyellow",
	"brightblue", "brightmagenta", "brightcyan", "brightwhite",
	"default",
}

// Name returns the lowercase color name used in highlight scope keys.
func (c Color) Name() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "default"
}

// ColorPair is the effective (background, foreground) of a run of cells,
// after default normalization and reverse-video swapping.
type ColorPair struct {
	Bg Color
	Fg Color
}

// BaselinePair is the "no highlight" rendering convention: white text on a
// black background. Runs in this pair are never emitted.
var BaselinePair = ColorPair{Bg: ColorBlack, Fg: ColorWhite}

// Normalize maps the Default sentinels to the rendering baseline and swaps
// the pair when reverse video is active. Out-of-range values (a malformed
// attribute from the decoder) fall back to the baseline so the row still
// renders.
func Normalize(fg, bg Color, reverse bool) ColorPair {
	if fg > ColorDefault {
		fg = ColorDefault
	}
	if bg > ColorDefault {
		bg = ColorDefault
	}
	if fg == ColorDefault {
		fg = ColorWhite
	}
	if bg == ColorDefault {
		bg = ColorBlack
	}
	if reverse {
		return ColorPair{Bg: fg, Fg: bg}
	}
	return ColorPair{Bg: bg, Fg: fg}
}

// Key returns the scope string for the pair, e.g. "black_red".
func (p ColorPair) Key() string {
	return p.Bg.Name() + "_" + p.Fg.Name()
}

// Palette holds the RGBA values of the 16 standard colors, used to quantize
// indexed and truecolor attributes down to the named range the highlight
// layer works with.
var Palette = [16]color.RGBA{
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White
	{102, 102, 102, 255}, // Bright Black
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White
}

// xterm256 is the extended palette (indices 16-255): a 6x6x6 color cube
// followed by a 24-step grayscale ramp.
var xterm256 [240]color.RGBA

func init() {
	i := 0
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				xterm256[i] = color.RGBA{uint8(r * 51), uint8(g * 51), uint8(b * 51), 255}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		xterm256[216+j] = color.RGBA{gray, gray, gray, 255}
	}
}

// QuantizeIndex maps a 256-color palette index to the nearest named color.
// Indices 0-15 map directly; out-of-range indices fall back to Default.
func QuantizeIndex(index int) Color {
	switch {
	case index >= 0 && index < 16:
		return Color(index)
	case index >= 16 && index < 256:
		return QuantizeRGB(xterm256[index-16])
	default:
		return ColorDefault
	}
}

// QuantizeRGB maps an arbitrary color to the nearest of the 16 standard
// colors by squared distance in RGB space.
func QuantizeRGB(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	cr, cg, cb := int(r>>8), int(g>>8), int(b>>8)

	best := 0
	bestDist := 1 << 30
	for i, p := range Palette {
		dr := cr - int(p.R)
		dg := cg - int(p.G)
		db := cb - int(p.B)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return Color(best)
}

// ParseColor resolves a lowercase color name back to its value.
func ParseColor(name string) (Color, error) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return ColorDefault, fmt.Errorf("%w: unknown color %q", ErrInvalidColorPair, name)
}

// ParseColorPair is the inverse of Key: it resolves a "bg_fg" scope
// string back to a pair. Hosts that persist region keys use it to
// recover styling after a reload.
func ParseColorPair(key string) (ColorPair, error) {
	bgName, fgName, ok := strings.Cut(key, "_")
	if !ok {
		return ColorPair{}, fmt.Errorf("%w: %q", ErrInvalidColorPair, key)
	}
	bg, err := ParseColor(bgName)
	if err != nil {
		return ColorPair{}, err
	}
	fg, err := ParseColor(fgName)
	if err != nil {
		return ColorPair{}, err
	}
	return ColorPair{Bg: bg, Fg: fg}, nil
}

// RGBA resolves a named color through the palette. Default resolves to the
// normalization baseline for the given channel.
func (c Color) RGBA(fg bool) color.RGBA {
	if c < ColorDefault {
		return Palette[c]
	}
	if fg {
		return Palette[ColorWhite]
	}
	return Palette[ColorBlack]
}
