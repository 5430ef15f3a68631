package editor

import (
	"log/slog"
	"math"

	"richtext/pkg/rtdoc"
)

func (s *Session) ToggleBold()   { s.toggleTrait(rtdoc.TraitBold) }
func (s *Session) ToggleItalic() { s.toggleTrait(rtdoc.TraitItalic) }

func (s *Session) ToggleUnderline() {
	s.toggleLine(rtdoc.KeyUnderline, func(a rtdoc.StyleAttributes) rtdoc.LineStyle { return a.Underline })
}

func (s *Session) ToggleStrikethrough() {
	s.toggleLine(rtdoc.KeyStrikethrough, func(a rtdoc.StyleAttributes) rtdoc.LineStyle { return a.Strikethrough })
}

func (s *Session) ToggleSuperscript() { s.toggleScript(rtdoc.SuperscriptOffset) }
func (s *Session) ToggleSubscript()   { s.toggleScript(rtdoc.SubscriptOffset) }

// toggleTrait removes t from every sub-run when all of them carry it and
// adds it everywhere otherwise. The decision is taken before any run is
// touched.
func (s *Session) toggleTrait(t rtdoc.Traits) {
	r := s.sel
	if r.IsEmpty() {
		typing := s.text.TypingAttributes()
		f := typing.Font.Resolve()
		on := f.AddingTrait(t)
		if hasTrait(f, t) {
			typing.Font = on
			s.text.SetTypingAttributes(typing)
		}
		s.text.SetAttribute(rtdoc.KeyFont, on, on.RemovingTrait(t), r)
		s.refresh()
		return
	}
	isAll := s.all(r, func(a rtdoc.StyleAttributes) bool { return hasTrait(a.Font.Resolve(), t) })
	s.text.Apply(r, func(a *rtdoc.StyleAttributes) {
		f := a.Font.Resolve()
		if isAll {
			a.Font = f.RemovingTrait(t)
		} else {
			a.Font = f.AddingTrait(t)
		}
	})
	s.mutated()
}

func hasTrait(f rtdoc.FontDescriptor, t rtdoc.Traits) bool {
	if t == rtdoc.TraitBold {
		return f.IsBold()
	}
	return f.HasTrait(t)
}

// toggleLine clears the line style when every sub-run has one and sets it
// over the whole range otherwise. A fully underlined selection is cleared in
// one toggle.
func (s *Session) toggleLine(k rtdoc.StyleKey, get func(rtdoc.StyleAttributes) rtdoc.LineStyle) {
	r := s.sel
	if r.IsEmpty() {
		s.text.SetAttribute(k, rtdoc.LineSingle, rtdoc.LineNone, r)
		s.refresh()
		return
	}
	isAll := s.all(r, func(a rtdoc.StyleAttributes) bool { return get(a) != rtdoc.LineNone })
	value := rtdoc.LineSingle
	if isAll {
		value = rtdoc.LineNone
	}
	s.text.SetAttribute(k, value, rtdoc.LineNone, r)
	s.mutated()
}

// toggleScript flips super- or subscript depending on the sign of factor.
// Every sub-run is first brought back to its normal size and baseline; the
// requested script is then applied unless the whole range already had it.
func (s *Session) toggleScript(factor float64) {
	super := factor > 0
	r := s.sel
	if r.IsEmpty() {
		on := (super && !s.isSuper) || (!super && !s.isSub)
		typing := s.text.TypingAttributes()
		leaveScript(&typing)
		if on {
			enterScript(&typing, factor)
		}
		s.text.SetTypingAttributes(typing)
		s.isSuper = on && super
		s.isSub = on && !super
		s.refresh()
		return
	}
	isAll := s.all(r, func(a rtdoc.StyleAttributes) bool {
		if super {
			return a.BaselineOffset > 0
		}
		return a.BaselineOffset < 0
	})
	s.text.Apply(r, func(a *rtdoc.StyleAttributes) {
		leaveScript(a)
		if !isAll {
			enterScript(a, factor)
		}
	})
	s.mutated()
}

func leaveScript(a *rtdoc.StyleAttributes) {
	if !a.InScript() {
		return
	}
	f := a.Font.Resolve()
	a.Font = f.WithSize(f.Size / rtdoc.ScriptScale)
	a.BaselineOffset = 0
}

func enterScript(a *rtdoc.StyleAttributes, factor float64) {
	f := a.Font.Resolve()
	a.BaselineOffset = factor * f.Size
	a.Font = f.WithSize(f.Size * rtdoc.ScriptScale)
}

// AdjustFontSize steps the logical size of every sub-run by delta, clamped
// to the session's limits. Runs in script mode keep their scaled rendering.
func (s *Session) AdjustFontSize(delta float64) {
	lo, hi := s.FontLimits()
	resize := func(a *rtdoc.StyleAttributes) {
		f := a.Font.Resolve()
		logical := a.LogicalSize()
		size := math.Min(math.Max(logical+delta, lo), hi)
		if a.InScript() {
			factor := rtdoc.SuperscriptOffset
			if a.BaselineOffset < 0 {
				factor = rtdoc.SubscriptOffset
			}
			a.BaselineOffset = factor * size
			a.Font = f.WithSize(size * rtdoc.ScriptScale)
			return
		}
		a.Font = f.WithSize(size)
	}
	r := s.sel
	if r.IsEmpty() {
		typing := s.text.TypingAttributes()
		resize(&typing)
		s.text.SetTypingAttributes(typing)
		s.refresh()
		return
	}
	s.text.Apply(r, resize)
	s.mutated()
}

// CycleAlignment advances the paragraphs under the selection along the
// left, center, right ring.
func (s *Session) CycleAlignment() {
	next := s.text.Alignment(s.sel.Location).Next()
	s.SetAlignment(next)
}

func (s *Session) SetAlignment(a rtdoc.Alignment) {
	s.text.SetAlignment(s.sel, a)
	s.mutated()
}

// SetForeground colors the selection. At the caret, picking the current
// color again resets it to the default label color.
func (s *Session) SetForeground(c rtdoc.Color) {
	s.setAttr(rtdoc.KeyForeground, c, rtdoc.NoColor)
}

func (s *Session) SetBackground(c rtdoc.Color) {
	s.setAttr(rtdoc.KeyBackground, c, rtdoc.NoColor)
}

// SetFontFamily switches the family and keeps size, weight and traits.
func (s *Session) SetFontFamily(family string) {
	if family == "" {
		return
	}
	r := s.sel
	if r.IsEmpty() {
		f := s.text.TypingAttributes().Font.Resolve()
		s.setAttr(rtdoc.KeyFont, f.WithFamily(family), rtdoc.DefaultBodyFont().WithSize(f.Size))
		return
	}
	s.text.Apply(r, func(a *rtdoc.StyleAttributes) {
		a.Font = a.Font.Resolve().WithFamily(family)
	})
	s.mutated()
}

func (s *Session) setAttr(k rtdoc.StyleKey, value, def any) {
	if !s.text.SetAttribute(k, value, def, s.sel) {
		s.log.Warn("attribute value rejected", slog.String("key", k.String()))
		return
	}
	if s.sel.IsEmpty() {
		s.refresh()
		return
	}
	s.mutated()
}
