package ui

import "richtext/internal/render"

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

type Layout struct {
	Scale    float32
	MenuH    int
	ToolbarH int
	StatusH  int
	CanvasY  int
	CanvasH  int
	Page     Rect
	Content  Rect
	StatusY  int
}

// Dp converts density-independent pixels at the layout's scale.
func (l Layout) Dp(v int) int { return int(float32(v) * l.Scale) }

func ComputeLayout(w, h int, theme Theme, scale float32) Layout {
	if scale <= 0 {
		scale = 1
	}
	l := Layout{Scale: scale}
	dp := l.Dp

	l.MenuH = dp(theme.MenuHeightDp)
	l.ToolbarH = dp(theme.ToolbarHeightDp)
	l.StatusH = dp(theme.StatusHeightDp)
	margin := dp(theme.PageMarginDp)

	l.CanvasY = l.MenuH + l.ToolbarH
	l.CanvasH = max(h-l.CanvasY-l.StatusH, 0)

	pageW := min(w-margin*2, dp(900))
	pageW = max(pageW, dp(320))
	pageH := max(l.CanvasH-margin*2, dp(200))
	l.Page = Rect{X: (w - pageW) / 2, Y: l.CanvasY + margin, W: pageW, H: pageH}

	pad := dp(18)
	l.Content = Rect{
		X: l.Page.X + pad,
		Y: l.Page.Y + pad + dp(8),
		W: max(pageW-pad*2, dp(100)),
		H: max(pageH-pad*2-dp(4), dp(100)),
	}
	l.StatusY = h - l.StatusH
	return l
}

// DrawShell paints the window chrome, the page and both button rows.
// hoverX and hoverY are the cursor position.
func DrawShell(fb *render.FrameBuffer, l Layout, menu []MenuButton, tb Toolbar, theme Theme, hoverX, hoverY int) {
	fb.Clear(theme.AppBackground)

	fb.FillRect(0, 0, fb.W, l.MenuH, theme.TopBar)
	fb.FillRect(0, l.MenuH, fb.W, l.ToolbarH, theme.Toolbar)
	fb.StrokeRect(0, 0, fb.W, l.MenuH+l.ToolbarH, 1, theme.Border)

	fb.FillRect(0, l.CanvasY, fb.W, l.CanvasH, theme.Canvas)

	p := l.Page
	fb.FillRect(p.X+2, p.Y+2, p.W, p.H, theme.Shadow)
	fb.FillRect(p.X, p.Y, p.W, p.H, theme.Page)
	fb.StrokeRect(p.X, p.Y, p.W, p.H, 1, theme.Border)
	fb.FillRect(p.X, p.Y, p.W, max(int(3*l.Scale), 1), theme.Accent)

	fb.FillRect(0, l.StatusY, fb.W, l.StatusH, theme.StatusBar)
	fb.StrokeRect(0, l.StatusY, fb.W, l.StatusH, 1, theme.Border)

	for _, b := range menu {
		bg := theme.TopButton
		if b.Rect.Contains(hoverX, hoverY) {
			bg = theme.TopHover
		}
		fb.FillRect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, bg)
		fb.StrokeRect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, 1, theme.TopBar)
	}
	for _, b := range tb.Buttons {
		r := b.Rect
		bg := theme.Button
		switch {
		case b.Rect.Contains(hoverX, hoverY):
			bg = theme.ButtonHover
		case b.Active:
			bg = theme.ButtonActive
		}
		if b.Swatch.IsSet() {
			bg = b.Swatch.ToRGBA()
		}
		fb.FillRect(r.X, r.Y, r.W, r.H, bg)
		border := theme.ButtonBorder
		if b.Active && b.Swatch.IsSet() {
			border = theme.Caret
		}
		fb.StrokeRect(r.X, r.Y, r.W, r.H, 1, border)
	}
}
