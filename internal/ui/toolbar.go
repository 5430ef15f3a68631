package ui

import (
	"strconv"

	"richtext/internal/editor"
	"richtext/pkg/rtdoc"
)

// Menu commands handled by the host rather than the session.
const (
	CmdNew      = "new"
	CmdOpen     = "open"
	CmdSave     = "save"
	CmdSaveAs   = "save_as"
	CmdMarkdown = "markdown"
	CmdScaleUp  = "scale_up"
	CmdScaleDn  = "scale_down"
)

type MenuButton struct {
	ID    string
	Label string
	Rect  Rect
}

// Button is one toolbar control. Swatch buttons carry their color and no
// label.
type Button struct {
	Label  string
	Rect   Rect
	Active bool
	Swatch rtdoc.Color
	Event  editor.ToolbarEvent
}

type Toolbar struct {
	Buttons []Button
}

// Measure reports the pixel width of a label.
type Measure func(s string) int

// HighlightColor is the background applied by the highlight button.
var HighlightColor = rtdoc.Color(0xFFE066FF)

var alignmentLabels = map[rtdoc.Alignment]string{
	rtdoc.AlignLeft:      "Left",
	rtdoc.AlignCenter:    "Center",
	rtdoc.AlignRight:     "Right",
	rtdoc.AlignJustified: "Justify",
	rtdoc.AlignNatural:   "Natural",
}

func LayoutMenu(l Layout, measure Measure) []MenuButton {
	items := []MenuButton{
		{ID: CmdNew, Label: "New"},
		{ID: CmdOpen, Label: "Open"},
		{ID: CmdSave, Label: "Save"},
		{ID: CmdSaveAs, Label: "Save As"},
		{ID: CmdMarkdown, Label: "Markdown"},
		{ID: CmdScaleDn, Label: "A-"},
		{ID: CmdScaleUp, Label: "A+"},
	}
	x := l.Dp(10)
	y := l.Dp(4)
	h := max(l.MenuH-l.Dp(8), 24)
	for i := range items {
		w := max(measure(items[i].Label)+l.Dp(28), l.Dp(64))
		items[i].Rect = Rect{X: x, Y: y, W: w, H: h}
		x += w + l.Dp(8)
	}
	return items
}

// BuildToolbar lays out the formatting controls for the current snapshot.
func BuildToolbar(l Layout, snap editor.ToolbarSnapshot, palette []rtdoc.Color, measure Measure) Toolbar {
	var tb Toolbar
	x := l.Dp(14)
	y := l.MenuH + l.Dp(8)
	h := max(l.ToolbarH-l.Dp(16), 24)

	add := func(label string, w int, active bool, ev editor.ToolbarEvent) {
		if w <= 0 {
			w = max(measure(label)+l.Dp(20), l.Dp(28))
		}
		tb.Buttons = append(tb.Buttons, Button{Label: label, Rect: Rect{X: x, Y: y, W: w, H: h}, Active: active, Event: ev})
		x += w + l.Dp(6)
	}
	gap := func() { x += l.Dp(6) }

	add("B", 0, snap.Bold, editor.Toggle(editor.StyleBold))
	add("I", 0, snap.Italic, editor.Toggle(editor.StyleItalic))
	add("U", 0, snap.Underline, editor.Toggle(editor.StyleUnderline))
	add("S", 0, snap.Strikethrough, editor.Toggle(editor.StyleStrikethrough))
	add("x^", 0, snap.Superscript, editor.Toggle(editor.StyleSuperscript))
	add("x_", 0, snap.Subscript, editor.Toggle(editor.StyleSubscript))
	gap()
	add("-", l.Dp(28), false, editor.AdjustFontSize(-1))
	add(strconv.FormatFloat(snap.FontSize, 'f', -1, 64), l.Dp(44), false, editor.AdjustFontSize(0))
	add("+", l.Dp(28), false, editor.AdjustFontSize(1))
	gap()
	add(alignmentLabels[snap.Alignment], l.Dp(64), false, editor.CycleAlignment())
	gap()
	side := h - l.Dp(8)
	for _, c := range palette {
		tb.Buttons = append(tb.Buttons, Button{
			Rect:   Rect{X: x, Y: y + l.Dp(4), W: side, H: side},
			Active: c == snap.Foreground,
			Swatch: c,
			Event:  editor.SetColor(editor.RoleForeground, c),
		})
		x += side + l.Dp(3)
	}
	gap()
	add("Hl", 0, snap.Background == HighlightColor, editor.SetColor(editor.RoleBackground, HighlightColor))
	gap()
	add("Image", 0, false, editor.InsertImage())
	add("Line", 0, false, editor.InsertLine())
	add("Done", 0, false, editor.DismissKeyboard())
	return tb
}

// HitTest returns the event of the toolbar control under (x, y). The size
// label sits between the size steps and reports no event.
func (tb Toolbar) HitTest(x, y int) (editor.ToolbarEvent, bool) {
	for _, b := range tb.Buttons {
		if !b.Rect.Contains(x, y) {
			continue
		}
		if b.Event.Action == editor.ActionAdjustFontSize && b.Event.Delta == 0 {
			return editor.ToolbarEvent{}, false
		}
		return b.Event, true
	}
	return editor.ToolbarEvent{}, false
}

func MenuAt(menu []MenuButton, x, y int) (string, bool) {
	for _, b := range menu {
		if b.Rect.Contains(x, y) {
			return b.ID, true
		}
	}
	return "", false
}
