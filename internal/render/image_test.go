package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	fb := NewFrameBuffer(w, h)
	fb.Clear(c)
	return fb.RGBA()
}

func TestFitKeepsAspect(t *testing.T) {
	red := color.RGBA{R: 0xFF, A: 0xFF}

	wide := Fit(solid(400, 200, red), 180, 180)
	require.Equal(t, image.Rect(0, 0, 180, 90), wide.Bounds())

	tall := Fit(solid(50, 100, red), 180, 180)
	require.Equal(t, image.Rect(0, 0, 90, 180), tall.Bounds())

	square := Fit(solid(10, 10, red), 180, 180)
	require.Equal(t, image.Rect(0, 0, 180, 180), square.Bounds())
	r, g, _, a := square.At(90, 90).RGBA()
	require.GreaterOrEqual(t, r, uint32(0xFF00))
	require.Zero(t, g)
	require.GreaterOrEqual(t, a, uint32(0xFF00))
}

func TestFitEmptyImage(t *testing.T) {
	out := Fit(image.NewRGBA(image.Rect(0, 0, 0, 0)), 180, 180)
	require.True(t, out.Bounds().Empty())
}

func TestDecorateAddsBorderAndRoundsCorners(t *testing.T) {
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	d := Decoration{Border: 0.04, Radius: 0.05, Color: color.RGBA{0xF2, 0xF2, 0xF7, 0xFF}}
	out := Decorate(solid(100, 100, blue), d)

	// border 4px: +6 wide, +7 tall
	require.Equal(t, image.Rect(0, 0, 106, 107), out.Bounds())
	require.Equal(t, blue, out.RGBAAt(53, 53))
	require.Equal(t, d.Color, out.RGBAAt(2, 50))
	require.Equal(t, color.RGBA{}, out.RGBAAt(0, 0))
	require.Equal(t, color.RGBA{}, out.RGBAAt(105, 106))
}

func TestRule(t *testing.T) {
	c := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	out := Rule(280, 20, c)
	require.Equal(t, image.Rect(0, 0, 280, 20), out.Bounds())
	require.Equal(t, c, out.RGBAAt(140, 10))
	require.Equal(t, color.RGBA{}, out.RGBAAt(140, 0))
}

func TestFrameBufferClipping(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	fb.FillRect(-2, -2, 4, 4, color.RGBA{R: 1, A: 0xFF})
	require.Equal(t, color.RGBA{R: 1, A: 0xFF}, fb.At(1, 1))
	require.Equal(t, color.RGBA{}, fb.At(2, 2))
	require.Equal(t, color.RGBA{}, fb.At(9, 9))

	fb.Resize(8, 2)
	require.Len(t, fb.Pixels, 8*2*4)
}
