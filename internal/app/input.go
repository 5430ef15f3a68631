package app

import (
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"richtext/internal/editor"
	"richtext/internal/ui"
	"richtext/pkg/rtdoc"
)

func (a *App) Update() error {
	a.frameTick++
	// Deferred work (toolbar publishes, picked images) lands here, on the
	// UI loop.
	a.queue.Flush()
	if sel := a.session.Selection(); sel.IsEmpty() {
		a.anchor = sel.Location
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if a.session.Editing() {
			a.session.HandleToolbar(editor.DismissKeyboard())
			return nil
		}
		return ebiten.Termination
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		a.scrollY = min(max(a.scrollY-int(wy*42), 0), a.maxScrollY)
	}

	a.handleMouse(shift)
	if ctrl {
		a.handleShortcuts(shift)
		return nil
	}
	a.handleNavigation(shift)
	a.handleTyping()
	return nil
}

func (a *App) handleMouse(shift bool) {
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if id, ok := ui.MenuAt(a.menu, x, y); ok {
			a.runCommand(id)
			return
		}
		if ev, ok := a.toolbar.HitTest(x, y); ok {
			a.session.HandleToolbar(ev)
			return
		}
		if !a.layout.Content.Contains(x, y) {
			return
		}
		if !a.session.Editing() {
			a.session.BeginEditing()
			a.layoutText()
		}
		pos := ui.HitTest(a.lines, x, y)
		if !shift {
			a.anchor = pos
		}
		a.selectTo(pos)
		a.dragSelecting = true
		return
	}
	if a.dragSelecting && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		a.selectTo(ui.HitTest(a.lines, x, y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.dragSelecting = false
	}
}

// selectTo spans the selection from the anchor to pos.
func (a *App) selectTo(pos int) {
	lo, hi := min(a.anchor, pos), max(a.anchor, pos)
	a.session.SetSelection(rtdoc.Range{Location: lo, Length: hi - lo})
}

// caretTo collapses the selection at pos, or extends it with shift held.
func (a *App) caretTo(pos int, shift bool) {
	if !shift {
		a.anchor = pos
	}
	a.selectTo(pos)
}

// caret is the moving end of the selection.
func (a *App) caret() int {
	sel := a.session.Selection()
	if sel.Location < a.anchor {
		return sel.Location
	}
	return sel.End()
}

func (a *App) handleShortcuts(shift bool) {
	s := a.session
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		s.HandleToolbar(editor.Toggle(editor.StyleBold))
	case shift && inpututil.IsKeyJustPressed(ebiten.KeyI):
		s.HandleToolbar(editor.InsertImage())
	case shift && inpututil.IsKeyJustPressed(ebiten.KeyX):
		s.HandleToolbar(editor.Toggle(editor.StyleStrikethrough))
	case shift && inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.HandleToolbar(editor.InsertLine())
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		s.HandleToolbar(editor.Toggle(editor.StyleItalic))
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		s.HandleToolbar(editor.Toggle(editor.StyleUnderline))
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		s.HandleToolbar(editor.Toggle(editor.StyleSuperscript))
	case inpututil.IsKeyJustPressed(ebiten.KeyComma):
		s.HandleToolbar(editor.Toggle(editor.StyleSubscript))
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		s.HandleToolbar(editor.AdjustFontSize(1))
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		s.HandleToolbar(editor.AdjustFontSize(-1))
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		s.HandleToolbar(editor.CycleAlignment())
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		a.anchor = 0
		s.SelectAll()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		a.copySelection(false)
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		a.copySelection(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		a.paste()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		a.runCommand(ui.CmdNew)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		a.runCommand(ui.CmdOpen)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if shift {
			a.runCommand(ui.CmdSaveAs)
		} else {
			a.runCommand(ui.CmdSave)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		a.runCommand(ui.CmdMarkdown)
	}
}

func (a *App) copySelection(cut bool) {
	sel := a.session.Selection()
	if sel.IsEmpty() || a.session.ShowingPlaceholder() {
		return
	}
	plain := strings.ReplaceAll(a.session.Text().Slice(sel), string(rtdoc.ObjectReplacement), "")
	if err := clipboard.WriteAll(plain); err != nil {
		a.status = "Copy failed: " + err.Error()
		return
	}
	if cut {
		a.session.DeleteBackward()
		a.anchor = a.session.Selection().Location
	}
}

func (a *App) paste() {
	clip, err := clipboard.ReadAll()
	if err != nil {
		a.status = "Paste failed: " + err.Error()
		return
	}
	a.insert(strings.ReplaceAll(clip, "\r\n", "\n"))
}

func (a *App) insert(s string) {
	if s == "" {
		return
	}
	if !a.session.Editing() {
		a.session.BeginEditing()
	}
	a.session.InsertText(s)
	a.anchor = a.session.Selection().Location
}

func (a *App) handleNavigation(shift bool) {
	if !a.session.Editing() {
		return
	}
	pos := a.caret()
	n := a.session.Text().Len()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		if sel := a.session.Selection(); !shift && !sel.IsEmpty() {
			a.caretTo(sel.Location, false)
		} else {
			a.caretTo(max(pos-1, 0), shift)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		if sel := a.session.Selection(); !shift && !sel.IsEmpty() {
			a.caretTo(sel.End(), false)
		} else {
			a.caretTo(min(pos+1, n), shift)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		a.caretTo(ui.MoveVertical(a.lines, pos, -1), shift)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		a.caretTo(ui.MoveVertical(a.lines, pos, 1), shift)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		if len(a.lines) > 0 {
			a.caretTo(a.lines[ui.LineOf(a.lines, pos)].Start, shift)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		if len(a.lines) > 0 {
			a.caretTo(a.lines[ui.LineOf(a.lines, pos)].End, shift)
		}
	}
}

func (a *App) handleTyping() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
		a.insert("\n")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.insert("    ")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.session.DeleteBackward()
		a.anchor = a.session.Selection().Location
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		sel := a.session.Selection()
		if sel.IsEmpty() && sel.Location < a.session.Text().Len() {
			a.session.SetSelection(rtdoc.Range{Location: sel.Location, Length: 1})
		}
		a.session.DeleteBackward()
		a.anchor = a.session.Selection().Location
	}
	var typed []rune
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 0x20 || !utf8.ValidRune(r) {
			continue
		}
		typed = append(typed, r)
	}
	a.insert(string(typed))
}
