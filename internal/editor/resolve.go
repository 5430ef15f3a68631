package editor

import "richtext/pkg/rtdoc"

// ToolbarSnapshot is the aggregate style state of the selection. Booleans
// are on only when every sub-run agrees; mixed selections read as off.
type ToolbarSnapshot struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Superscript   bool
	Subscript     bool
	FontSize      float64
	Alignment     rtdoc.Alignment
	Foreground    rtdoc.Color
	Background    rtdoc.Color
}

// Snapshot returns the state computed after the last change.
func (s *Session) Snapshot() ToolbarSnapshot { return s.snapshot }

func (s *Session) resolve() ToolbarSnapshot {
	r := s.sel
	merged, uniform := s.text.Attributes(r)
	snap := ToolbarSnapshot{
		FontSize:   merged.LogicalSize(),
		Alignment:  s.text.Alignment(r.Location),
		Foreground: merged.Foreground.Or(rtdoc.LabelColor),
		Background: merged.Background,
	}
	if r.IsEmpty() {
		f := merged.Font.Resolve()
		snap.Bold = f.IsBold()
		snap.Italic = f.IsItalic()
		snap.Underline = merged.Underline != rtdoc.LineNone
		snap.Strikethrough = merged.Strikethrough != rtdoc.LineNone
		snap.Superscript = s.isSuper
		snap.Subscript = s.isSub
		return snap
	}
	snap.Bold = s.all(r, func(a rtdoc.StyleAttributes) bool { return a.Font.Resolve().IsBold() })
	snap.Italic = s.all(r, func(a rtdoc.StyleAttributes) bool { return a.Font.Resolve().IsItalic() })
	snap.Underline = uniform.Has(rtdoc.KeyUnderline) && merged.Underline != rtdoc.LineNone
	snap.Strikethrough = uniform.Has(rtdoc.KeyStrikethrough) && merged.Strikethrough != rtdoc.LineNone
	snap.Superscript = s.all(r, func(a rtdoc.StyleAttributes) bool { return a.BaselineOffset > 0 })
	snap.Subscript = s.all(r, func(a rtdoc.StyleAttributes) bool { return a.BaselineOffset < 0 })
	return snap
}

// all reports whether pred holds for every sub-run of r. An empty range
// yields false.
func (s *Session) all(r rtdoc.Range, pred func(rtdoc.StyleAttributes) bool) bool {
	seen := false
	ok := true
	s.text.Enumerate(r, func(_ rtdoc.Range, a rtdoc.StyleAttributes) bool {
		seen = true
		if !pred(a) {
			ok = false
			return false
		}
		return true
	})
	return seen && ok
}
