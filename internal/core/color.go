package core

import "strings"

// Color is the foreground color of a screen cell. The terminal host maps
// each value to an ANSI 256-color code.
type Color uint8

// Predefined colors. Themes pick piece colors from this set.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorPurple
	ColorPink
	ColorTeal
	ColorLime
	ColorNavy
	ColorBrown
)

// Palette is an ordered list of colors used for cycling effects.
var Palette = []Color{
	ColorRed, ColorOrange, ColorYellow, ColorGreen,
	ColorCyan, ColorBlue, ColorPurple, ColorMagenta,
}

// Cycle returns the palette color at step i, wrapping around.
func Cycle(i int) Color {
	n := len(Palette)
	return Palette[((i%n)+n)%n]
}

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
	"dark_gray":      ColorDarkGray,
	"purple":         ColorPurple,
	"pink":           ColorPink,
	"teal":           ColorTeal,
	"lime":           ColorLime,
	"navy":           ColorNavy,
	"brown":          ColorBrown,
}

// ColorByName maps a config color name (e.g. "bright_cyan") to a Color.
// Unknown names return ColorDefault and false.
func ColorByName(name string) (Color, bool) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
