package ui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"richtext/internal/editor"
	"richtext/internal/render"
	"richtext/pkg/rtdoc"
)

func fixedWidth(s string) int { return 7 * len(s) }

func center(r Rect) (int, int) { return r.X + r.W/2, r.Y + r.H/2 }

func TestComputeLayoutBounds(t *testing.T) {
	l := ComputeLayout(1280, 800, DefaultTheme(), 1)
	require.Equal(t, 34+42, l.CanvasY)
	require.Equal(t, 900, l.Page.W)
	require.Equal(t, (1280-900)/2, l.Page.X)
	require.Equal(t, 800-28, l.StatusY)
	require.True(t, l.Content.X > l.Page.X)
	require.LessOrEqual(t, l.Content.X+l.Content.W, l.Page.X+l.Page.W)
}

func TestToolbarReflectsSnapshot(t *testing.T) {
	l := ComputeLayout(1280, 800, DefaultTheme(), 1)
	snap := editor.ToolbarSnapshot{Bold: true, Subscript: true, FontSize: 13.5, Alignment: rtdoc.AlignCenter, Foreground: rtdoc.LabelColor}
	tb := BuildToolbar(l, snap, rtdoc.Palette, fixedWidth)

	byLabel := map[string]Button{}
	for _, b := range tb.Buttons {
		if b.Label != "" {
			byLabel[b.Label] = b
		}
	}
	require.True(t, byLabel["B"].Active)
	require.False(t, byLabel["I"].Active)
	require.True(t, byLabel["x_"].Active)
	require.Contains(t, byLabel, "13.5")
	require.Contains(t, byLabel, "Center")

	var swatches, active int
	for _, b := range tb.Buttons {
		if b.Swatch.IsSet() {
			swatches++
			if b.Active {
				active++
			}
		}
	}
	require.Equal(t, len(rtdoc.Palette), swatches)
	require.Equal(t, 1, active)
}

func TestToolbarHitTest(t *testing.T) {
	l := ComputeLayout(1280, 800, DefaultTheme(), 1)
	tb := BuildToolbar(l, editor.ToolbarSnapshot{FontSize: 17}, rtdoc.Palette, fixedWidth)

	for _, b := range tb.Buttons {
		x, y := center(b.Rect)
		ev, ok := tb.HitTest(x, y)
		if b.Label == "17" {
			require.False(t, ok)
			continue
		}
		require.True(t, ok, "button %q", b.Label)
		require.Equal(t, b.Event, ev)
	}
	_, ok := tb.HitTest(0, 0)
	require.False(t, ok)

	// Rectangles must not overlap.
	for i := 1; i < len(tb.Buttons); i++ {
		prev, cur := tb.Buttons[i-1].Rect, tb.Buttons[i].Rect
		require.GreaterOrEqual(t, cur.X, prev.X+prev.W)
	}
}

func TestToolbarDrivesSession(t *testing.T) {
	s := editor.NewSession(rtdoc.NewText("Hello", rtdoc.DefaultAttributes()), editor.Options{})
	s.SelectAll()
	l := ComputeLayout(1280, 800, DefaultTheme(), 1)
	tb := BuildToolbar(l, s.Snapshot(), rtdoc.Palette, fixedWidth)

	for _, b := range tb.Buttons {
		if b.Label == "B" {
			ev, ok := tb.HitTest(center(b.Rect))
			require.True(t, ok)
			s.HandleToolbar(ev)
		}
	}
	require.True(t, s.Snapshot().Bold)
}

func TestMenuAt(t *testing.T) {
	l := ComputeLayout(1280, 800, DefaultTheme(), 1.5)
	menu := LayoutMenu(l, fixedWidth)
	require.Len(t, menu, 7)
	x, y := center(menu[1].Rect)
	id, ok := MenuAt(menu, x, y)
	require.True(t, ok)
	require.Equal(t, CmdOpen, id)
	_, ok = MenuAt(menu, 2000, 2000)
	require.False(t, ok)
}

func TestDrawShellPaintsActiveButton(t *testing.T) {
	theme := DefaultTheme()
	l := ComputeLayout(1280, 800, theme, 1)
	tb := BuildToolbar(l, editor.ToolbarSnapshot{Bold: true, FontSize: 17}, nil, fixedWidth)
	fb := render.NewFrameBuffer(1280, 800)
	DrawShell(fb, l, LayoutMenu(l, fixedWidth), tb, theme, -1, -1)

	bold := tb.Buttons[0].Rect
	italic := tb.Buttons[1].Rect
	require.Equal(t, theme.ButtonActive, fb.At(center(bold)))
	require.Equal(t, theme.Button, fb.At(center(italic)))
	require.Equal(t, theme.Page, fb.At(l.Page.X+10, l.Page.Y+20))
}
