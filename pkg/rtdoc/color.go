package rtdoc

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is packed 0xRRGGBBAA. The zero value means "no color": the run
// inherits the default for that role.
type Color uint32

const (
	NoColor    Color = 0
	LabelColor Color = 0x000000FF
	White      Color = 0xFFFFFFFF
)

// Palette holds the editor's stock text colors.
var Palette = []Color{
	0x000000FF, 0xDD4E48FF, 0xED734AFF, 0xF1AA3EFF, 0x479D60FF,
	0x5AC2C5FF, 0x50AAF8FF, 0x2355F6FF, 0x9123F4FF, 0xEA5CAEFF,
}

func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func (c Color) IsSet() bool { return c != NoColor }

// Or returns c, or def when c is unset.
func (c Color) Or(def Color) Color {
	if c == NoColor {
		return def
	}
	return c
}

func (c Color) ToRGBA() color.RGBA {
	r, g, b, a := c.Components()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// ParseHex accepts "rrggbb", "#rrggbb", "#rgb" and an optional alpha in [0,1].
func ParseHex(s string, alpha float64) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return NoColor, fmt.Errorf("rtdoc: parse color %q: %w", s, err)
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	r, g, b := cf.RGB255()
	return RGBA(r, g, b, uint8(alpha*255+0.5)), nil
}

func MustParseHex(s string) Color {
	c, err := ParseHex(s, 1)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Hex() string {
	r, g, b, a := c.Components()
	if a == 0xFF {
		return fmt.Sprintf("%02X%02X%02X", r, g, b)
	}
	return fmt.Sprintf("%02X%02X%02X%02X", r, g, b, a)
}

func (c Color) colorful() colorful.Color {
	r, g, b, _ := c.Components()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Luminance is the perceptive luminance in [0,1]; green weighs the most.
func (c Color) Luminance() float64 {
	cf := c.colorful()
	return 0.299*cf.R + 0.587*cf.G + 0.114*cf.B
}

func (c Color) Complementary() Color {
	cf := c.colorful()
	comp := colorful.Color{R: 1 - cf.R, G: 1 - cf.G, B: 1 - cf.B}.Clamped()
	r, g, b := comp.RGB255()
	_, _, _, a := c.Components()
	return RGBA(r, g, b, a)
}

// Contrast returns dark below the luminance threshold and bright otherwise.
func (c Color) Contrast(threshold float64, bright, dark Color) Color {
	if c.Luminance() < threshold {
		return dark
	}
	return bright
}
