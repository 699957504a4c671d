package core

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 24-bit colour. Frontends translate it into terminal
// styles or image colours; the simulation only copies it around.
type Color struct {
	R, G, B uint8
}

// Palette used by the runner.
var (
	ColorNeon       = Color{0x00, 0xf2, 0xff} // default theme
	ColorAlert      = Color{0xff, 0x00, 0x55} // collision explosion
	ColorGlitch     = Color{0xff, 0x00, 0xff}
	ColorNeutral    = Color{0xff, 0xff, 0xff} // flying hazards
	ColorBackground = Color{0x05, 0x05, 0x05}
	ColorGrid       = Color{0x11, 0x11, 0x11}
	ColorEye        = Color{0x00, 0x00, 0x00}
	ColorGray       = Color{0x8a, 0x8a, 0x8a}
)

// ParseHex parses a colour in the strict "#RRGGBB" form.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' || !isHexDigits(s[1:]) {
		return Color{}, fmt.Errorf("core: colour %q is not in #RRGGBB form", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("core: invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// Hex returns the colour formatted as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA returns the colour as a non-premultiplied image colour with the given
// opacity in [0, 1].
func (c Color) NRGBA(alpha float64) color.NRGBA {
	a := ClampF(alpha, 0, 1)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

// Blend mixes c over bg with opacity t in [0, 1]. Used by surfaces that
// cannot express transparency, such as terminal cells.
func (c Color) Blend(bg Color, t float64) Color {
	t = ClampF(t, 0, 1)
	mixed := bg.colorful().BlendRgb(c.colorful(), t)
	r, g, b := mixed.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
