package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Decoration frames an attachment bitmap. Border and Radius are fractions of
// the image's shorter side.
type Decoration struct {
	Border float64
	Radius float64
	Color  color.RGBA
}

func DefaultDecoration() Decoration {
	return Decoration{Border: 0.04, Radius: 0.01, Color: color.RGBA{0xF2, 0xF2, 0xF7, 0xFF}}
}

// Fit scales img so it fills maxW wide (landscape) or maxH tall (portrait)
// keeping the aspect ratio.
func Fit(img image.Image, maxW, maxH int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	nw, nh := maxW, maxH
	if w >= h {
		nh = int(math.Round(float64(h) * float64(maxW) / float64(w)))
	} else {
		nw = int(math.Round(float64(w) * float64(maxH) / float64(h)))
	}
	nw, nh = max(nw, 1), max(nh, 1)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Decorate centres img on a slightly larger canvas filled with the border
// color, strokes the border and rounds the corners.
func Decorate(img image.Image, d Decoration) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	length := float64(min(w, h))
	border := length * d.Border
	fb := NewFrameBuffer(w+int(math.Round(border*1.5)), h+int(math.Round(border*1.8)))
	fb.Clear(d.Color)

	dst := fb.RGBA()
	off := image.Pt((fb.W-w)/2, (fb.H-h)/2)
	draw.Draw(dst, image.Rectangle{Min: off, Max: off.Add(image.Pt(w, h))}, img, b.Min, draw.Over)

	if line := int(math.Round(border)); line > 0 {
		fb.StrokeRect(0, 0, fb.W, fb.H, line, d.Color)
	}
	fb.ClipCorners(int(math.Round(length * d.Radius)))
	return dst
}

// Rule draws a horizontal separator bitmap: a transparent canvas with a line
// through the middle.
func Rule(w, h int, c color.RGBA) *image.RGBA {
	fb := NewFrameBuffer(w, h)
	thick := max(fb.H/5, 1)
	fb.FillRect(0, (fb.H-thick)/2, fb.W, thick, c)
	return fb.RGBA()
}
