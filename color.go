package gv

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"

	"github.com/inada-s/gv-sdl/command"
)

// Color is an 8-bit RGBA color.
type Color = command.Color

// Point is a content-space point.
type Point = command.Point

// DefaultAlpha is the alpha ColorIndex uses until SetDefaultAlpha is called.
const DefaultAlpha = 255

// Common colors.
var (
	Black = Color{A: 255}
	White = Color{R: 255, G: 255, B: 255, A: 255}
	Red   = Color{R: 255, A: 255}
	Green = Color{G: 255, A: 255}
	Blue  = Color{B: 255, A: 255}
)

// palette is a ten-color categorical palette (d3 category10).
var palette = [...]Color{
	{R: 0x1f, G: 0x77, B: 0xb4},
	{R: 0xff, G: 0x7f, B: 0x0e},
	{R: 0x2c, G: 0xa0, B: 0x2c},
	{R: 0xd6, G: 0x27, B: 0x28},
	{R: 0x94, G: 0x67, B: 0xbd},
	{R: 0x8c, G: 0x56, B: 0x4b},
	{R: 0xe3, G: 0x77, B: 0xc2},
	{R: 0x7f, G: 0x7f, B: 0x7f},
	{R: 0xbc, G: 0xbd, B: 0x22},
	{R: 0x17, G: 0xbe, B: 0xcf},
}

// PaletteSize is the number of distinct colors PaletteColor cycles through.
const PaletteSize = len(palette)

// RGBA returns the color with the given components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// PaletteColor returns palette entry i (modulo PaletteSize) with alpha a.
// Negative indices wrap around as well.
func PaletteColor(i int, a uint8) Color {
	i %= PaletteSize
	if i < 0 {
		i += PaletteSize
	}
	c := palette[i]
	c.A = a
	return c
}

// ParseColor parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA"; the leading
// '#' is optional.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return Color{}, fmt.Errorf("gv: color %q: want 3, 4, 6 or 8 hex digits", s)
	}
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return Color{}, fmt.Errorf("gv: color %q: invalid hex digit %q", s, c)
		}
	}
	return fromRGBA(gg.Hex(hex)), nil
}

// fromRGBA converts a float color to 8 bits per channel.
func fromRGBA(c gg.RGBA) Color {
	to8 := func(v float64) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return Color{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}
