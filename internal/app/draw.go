package app

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"richtext/internal/render"
	"richtext/internal/ui"
	"richtext/pkg/rtdoc"
)

func (a *App) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if a.frameBuffer == nil || a.frameBuffer.W != w || a.frameBuffer.H != h {
		if a.frameBuffer == nil {
			a.frameBuffer = render.NewFrameBuffer(w, h)
		} else {
			a.frameBuffer.Resize(w, h)
		}
		a.canvas = ebiten.NewImage(w, h)
	}

	scale := a.scale()
	a.layout = ui.ComputeLayout(w, h, a.theme, scale)
	face := a.fonts.uiFace(12, float64(scale))
	measure := func(s string) int { return measureString(face, s) }
	a.menu = ui.LayoutMenu(a.layout, measure)
	a.toolbar = ui.BuildToolbar(a.layout, a.snapshot, a.palette, measure)

	mx, my := ebiten.CursorPosition()
	ui.DrawShell(a.frameBuffer, a.layout, a.menu, a.toolbar, a.theme, mx, my)
	a.layoutText()
	a.drawDecorations()

	a.canvas.WritePixels(a.frameBuffer.Pixels)
	screen.DrawImage(a.canvas, nil)

	a.drawLabels(screen, face)
	a.drawText(screen)
	a.drawStatus(screen, a.fonts.uiFace(10, float64(scale)), h)
}

// layoutText positions every paragraph inside the content box.
func (a *App) layoutText() {
	l := a.layout
	scale := float64(l.Scale)
	box := l.Content
	box.Y -= a.scrollY
	adv := func(r rune, attr rtdoc.StyleAttributes) int {
		f := a.fonts.face(attr, scale)
		if x, ok := f.GlyphAdvance(r); ok {
			return x.Round()
		}
		return measureString(f, string(r))
	}
	met := func(attr rtdoc.StyleAttributes) (int, int) {
		m := a.fonts.face(attr, scale).Metrics()
		return m.Ascent.Round(), m.Descent.Round()
	}
	a.lines = ui.LayoutText(a.session.Text(), box, l.Dp(4), scale, adv, met)

	total := 0
	if n := len(a.lines); n > 0 {
		last := a.lines[n-1]
		total = last.Y + last.Height - box.Y
	}
	a.maxScrollY = max(total-l.Content.H, 0)
	a.scrollY = min(a.scrollY, a.maxScrollY)
}

func (a *App) fillContent(r ui.Rect, c color.RGBA) {
	cr := a.layout.Content
	x0, y0 := max(r.X, cr.X), max(r.Y, cr.Y)
	x1, y1 := min(r.X+r.W, cr.X+cr.W), min(r.Y+r.H, cr.Y+cr.H)
	if x1 > x0 && y1 > y0 {
		a.frameBuffer.FillRect(x0, y0, x1-x0, y1-y0, c)
	}
}

// drawDecorations paints run backgrounds, the selection, underlines,
// strikethroughs and the caret into the frame buffer.
func (a *App) drawDecorations() {
	scale := float64(a.layout.Scale)
	thick := max(a.layout.Dp(1), 1)
	for _, ln := range a.lines {
		for _, seg := range ln.Segments {
			if seg.Attr.Background.IsSet() {
				a.fillContent(ui.Rect{X: seg.X, Y: ln.Y, W: seg.Width, H: ln.Height}, seg.Attr.Background.ToRGBA())
			}
		}
	}
	for _, r := range ui.SelectionRects(a.lines, a.session.Selection()) {
		a.fillContent(r, a.theme.Selection)
	}
	for _, ln := range a.lines {
		for _, seg := range ln.Segments {
			if seg.Attr.Attachment != nil {
				continue
			}
			fg := seg.Attr.Foreground.Or(rtdoc.LabelColor).ToRGBA()
			if seg.Attr.Underline != rtdoc.LineNone {
				a.fillContent(ui.Rect{X: seg.X, Y: seg.Baseline + 2*thick, W: seg.Width, H: thick}, fg)
			}
			if seg.Attr.Strikethrough != rtdoc.LineNone {
				asc := a.fonts.face(seg.Attr, scale).Metrics().Ascent.Round()
				a.fillContent(ui.Rect{X: seg.X, Y: seg.Baseline - asc/3, W: seg.Width, H: thick}, fg)
			}
		}
	}
	sel := a.session.Selection()
	if a.session.Editing() && sel.IsEmpty() && (a.frameTick/30)%2 == 0 {
		c := ui.CaretRect(a.lines, sel.Location)
		c.W = max(a.layout.Dp(2), 1)
		a.fillContent(c, a.theme.Caret)
	}
}

func (a *App) drawText(screen *ebiten.Image) {
	cr := a.layout.Content
	dst, ok := screen.SubImage(image.Rect(cr.X, cr.Y, cr.X+cr.W, cr.Y+cr.H)).(*ebiten.Image)
	if !ok {
		return
	}
	scale := float64(a.layout.Scale)
	for _, ln := range a.lines {
		if ln.Y > cr.Y+cr.H || ln.Y+ln.Height < cr.Y {
			continue
		}
		for _, seg := range ln.Segments {
			if att := seg.Attr.Attachment; att != nil {
				a.drawAttachment(dst, att, seg, scale)
				continue
			}
			fg := seg.Attr.Foreground.Or(rtdoc.LabelColor).ToRGBA()
			text.Draw(dst, seg.Text, a.fonts.face(seg.Attr, scale), seg.X, seg.Baseline, fg)
		}
	}
}

func (a *App) drawAttachment(dst *ebiten.Image, att *rtdoc.Attachment, seg ui.Segment, scale float64) {
	if att.Image == nil {
		return
	}
	img, ok := a.images[att]
	if !ok {
		img = ebiten.NewImageFromImage(att.Image)
		a.images[att] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(seg.X), float64(seg.Baseline)-float64(att.Height)*scale)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

func drawCentered(screen *ebiten.Image, face font.Face, label string, r ui.Rect, c color.Color) {
	m := face.Metrics()
	asc, desc := m.Ascent.Round(), m.Descent.Round()
	x := r.X + (r.W-measureString(face, label))/2
	baseline := r.Y + (r.H+asc+desc)/2 - desc
	text.Draw(screen, label, face, x, baseline, c)
}

func (a *App) drawLabels(screen *ebiten.Image, face font.Face) {
	for _, b := range a.menu {
		drawCentered(screen, face, b.Label, b.Rect, a.theme.TopLabel)
	}
	for _, b := range a.toolbar.Buttons {
		if b.Label == "" {
			continue
		}
		c := a.theme.Label
		if b.Active {
			c = a.theme.LabelActive
		}
		drawCentered(screen, face, b.Label, b.Rect, c)
	}
}

func (a *App) drawStatus(screen *ebiten.Image, face font.Face, h int) {
	t := a.session.Text()
	sel := a.session.Selection()
	name := "Untitled"
	if a.filePath != "" {
		name = filepath.Base(a.filePath)
	}
	super, sub := a.session.ScriptFlags()
	script := ""
	switch {
	case super:
		script = " [ superscript ]"
	case sub:
		script = " [ subscript ]"
	}
	left := fmt.Sprintf("[ Paragraph %d/%d ] [ Caret %d:%d ] [ %gpt %s ]%s",
		t.ParagraphIndex(sel.Location)+1, t.ParagraphCount(), sel.Location, sel.Length,
		a.snapshot.FontSize, a.snapshot.Alignment, script)
	right := fmt.Sprintf("[ %s ] [ %s ]", name, a.status)
	baseline := h - a.layout.Dp(10)
	text.Draw(screen, left, face, a.layout.Dp(12), baseline, a.theme.Label)
	text.Draw(screen, right, face, a.layout.Dp(460), baseline, a.theme.Label)
}
