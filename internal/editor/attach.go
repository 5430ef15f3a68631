package editor

import (
	"image"
	"image/color"
	"log/slog"

	"richtext/internal/render"
	"richtext/pkg/rtdoc"
)

const (
	MaxImageSide = 180
	LineWidth    = 280
	LineHeight   = 20
)

var lineColor = color.RGBA{0xC6, 0xC6, 0xC8, 0xFF}

// RequestImage asks subscribers to open an image picker. The result comes
// back later through InsertImage.
func (s *Session) RequestImage() {
	s.emit(func(l Listener) {
		if l.OnImageRequested != nil {
			l.OnImageRequested()
		}
	})
}

// InsertImage scales and frames img and inserts it at the current caret. It
// may run long after RequestImage, so the caret is validated again first.
func (s *Session) InsertImage(img image.Image) bool {
	if img == nil || img.Bounds().Empty() {
		s.log.Warn("image insert skipped: empty bitmap")
		return false
	}
	scaled := render.Fit(img, MaxImageSide, MaxImageSide)
	framed := render.Decorate(scaled, render.DefaultDecoration())
	s.insertAttachment(framed)
	s.log.Debug("image inserted",
		slog.Int("w", framed.Bounds().Dx()), slog.Int("h", framed.Bounds().Dy()),
		slog.Int("at", s.sel.Location-1))
	return true
}

// InsertLine inserts a horizontal separator at the caret.
func (s *Session) InsertLine() {
	s.insertAttachment(render.Rule(LineWidth, LineHeight, lineColor))
}

func (s *Session) insertAttachment(img *image.RGBA) {
	if !s.editing {
		s.BeginEditing()
	}
	s.sel = s.clamp(s.sel)
	pos := s.sel.End()
	att := &rtdoc.Attachment{Image: img, Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	typing := s.text.TypingAttributes()
	s.text.InsertAttachment(pos, att, rtdoc.DefaultAttributes())
	s.text.SetTypingAttributes(typing)
	s.sel = rtdoc.Range{Location: pos + 1}
	s.textChanged()
}
