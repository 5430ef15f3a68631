package render

import (
	"image"
	"image/color"
)

// FrameBuffer is a tightly packed RGBA surface. It backs both the demo
// host's window and the bitmaps built for image attachments.
type FrameBuffer struct {
	W      int
	H      int
	Pixels []uint8 // RGBA
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FrameBuffer{W: w, H: h, Pixels: make([]uint8, w*h*4)}
}

// RGBA views the buffer as an image without copying.
func (fb *FrameBuffer) RGBA() *image.RGBA {
	return &image.RGBA{Pix: fb.Pixels, Stride: fb.W * 4, Rect: image.Rect(0, 0, fb.W, fb.H)}
}

func (fb *FrameBuffer) Resize(w, h int) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if w == fb.W && h == fb.H {
		return
	}
	fb.W, fb.H = w, h
	fb.Pixels = make([]uint8, w*h*4)
}

func (fb *FrameBuffer) Clear(c color.RGBA) {
	for i := 0; i < len(fb.Pixels); i += 4 {
		fb.Pixels[i+0] = c.R
		fb.Pixels[i+1] = c.G
		fb.Pixels[i+2] = c.B
		fb.Pixels[i+3] = c.A
	}
}

func (fb *FrameBuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= fb.W || y >= fb.H {
		return color.RGBA{}
	}
	i := (y*fb.W + x) * 4
	return color.RGBA{R: fb.Pixels[i], G: fb.Pixels[i+1], B: fb.Pixels[i+2], A: fb.Pixels[i+3]}
}

func (fb *FrameBuffer) FillRect(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > fb.W {
		w = fb.W - x
	}
	if y+h > fb.H {
		h = fb.H - y
	}
	if w <= 0 || h <= 0 {
		return
	}
	for row := 0; row < h; row++ {
		off := ((y+row)*fb.W + x) * 4
		for col := 0; col < w; col++ {
			idx := off + col*4
			fb.Pixels[idx+0] = c.R
			fb.Pixels[idx+1] = c.G
			fb.Pixels[idx+2] = c.B
			fb.Pixels[idx+3] = c.A
		}
	}
}

func (fb *FrameBuffer) StrokeRect(x, y, w, h, line int, c color.RGBA) {
	if line <= 0 {
		line = 1
	}
	fb.FillRect(x, y, w, line, c)
	fb.FillRect(x, y+h-line, w, line, c)
	fb.FillRect(x, y, line, h, c)
	fb.FillRect(x+w-line, y, line, h, c)
}

// ClipCorners clears every pixel outside a rounded rectangle of radius r
// spanning the whole buffer.
func (fb *FrameBuffer) ClipCorners(r int) {
	if r <= 0 {
		return
	}
	r = min(r, fb.W/2, fb.H/2)
	rr := r * r
	for y := 0; y < fb.H; y++ {
		for x := 0; x < fb.W; x++ {
			cx, cy := -1, -1
			switch {
			case x < r && y < r:
				cx, cy = r, r
			case x >= fb.W-r && y < r:
				cx, cy = fb.W-r-1, r
			case x < r && y >= fb.H-r:
				cx, cy = r, fb.H-r-1
			case x >= fb.W-r && y >= fb.H-r:
				cx, cy = fb.W-r-1, fb.H-r-1
			}
			if cx < 0 {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > rr {
				i := (y*fb.W + x) * 4
				fb.Pixels[i], fb.Pixels[i+1], fb.Pixels[i+2], fb.Pixels[i+3] = 0, 0, 0, 0
			}
		}
	}
}
