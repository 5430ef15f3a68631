package editor

import (
	"math"
	"testing"

	"richtext/pkg/rtdoc"
)

func boldAttr() rtdoc.StyleAttributes {
	return rtdoc.StyleAttributes{Font: rtdoc.DefaultBodyFont().AddingTrait(rtdoc.TraitBold)}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func selectAll(s *Session) {
	s.SetSelection(rtdoc.Range{Length: s.Text().Len()})
}

func TestToggleBoldMixedRangeUnionsAndMerges(t *testing.T) {
	txt := rtdoc.NewTextWithRuns("Hello world", []rtdoc.Run{
		{Start: 0, End: 5, Attr: boldAttr()},
		{Start: 5, End: 6, Attr: rtdoc.DefaultAttributes()},
		{Start: 6, End: 11, Attr: boldAttr()},
	})
	s := newSession(txt, Options{})
	selectAll(s)
	if s.Snapshot().Bold {
		t.Fatalf("mixed selection should read as not bold")
	}
	s.ToggleBold()

	runs := s.Text().Runs()
	if len(runs) != 1 || runs[0].Start != 0 || runs[0].End != 11 {
		t.Fatalf("expected one merged run, got %#v", runs)
	}
	if !runs[0].Attr.Font.IsBold() || !s.Snapshot().Bold {
		t.Fatalf("expected the whole range bold")
	}
}

func TestToggleBoldRoundTrip(t *testing.T) {
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	before := s.Text().Runs()
	selectAll(s)
	s.ToggleBold()
	if f := s.Text().Runs()[0].Attr.Font; !f.IsBold() || f.Weight != rtdoc.WeightBold {
		t.Fatalf("expected bold with repaired weight, got %#v", f)
	}
	s.ToggleBold()
	after := s.Text().Runs()
	if len(after) != len(before) || !after[0].Attr.Equal(before[0].Attr) {
		t.Fatalf("bold toggle is not its own inverse:\n%#v\n%#v", before, after)
	}
}

func TestBoldItalicCommute(t *testing.T) {
	a := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	b := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	selectAll(a)
	selectAll(b)
	a.ToggleBold()
	a.ToggleItalic()
	b.ToggleItalic()
	b.ToggleBold()

	fa := a.Text().Runs()[0].Attr.Font
	fb := b.Text().Runs()[0].Attr.Font
	if !fa.Equal(fb) || !fa.IsBold() || !fa.IsItalic() {
		t.Fatalf("bold and italic should commute: %#v vs %#v", fa, fb)
	}
}

func TestItalicToggleKeepsWeightOnlyBold(t *testing.T) {
	heavy := rtdoc.StyleAttributes{Font: rtdoc.FontDescriptor{
		Origin: rtdoc.OriginSystem, Family: "system", Size: 17, Weight: rtdoc.WeightHeavy,
	}}
	s := newSession(rtdoc.NewText("abc", heavy), Options{})
	selectAll(s)
	if !s.Snapshot().Bold {
		t.Fatalf("heavy weight should read as bold")
	}
	s.ToggleItalic()
	f := s.Text().Runs()[0].Attr.Font
	if !f.IsBold() || !f.IsItalic() || f.Weight != rtdoc.WeightHeavy {
		t.Fatalf("italic toggle dropped bold: %#v", f)
	}
}

func TestToggleBoldAtCaret(t *testing.T) {
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	s.SetSelection(rtdoc.Range{Location: 1})
	s.SetTypingAttributes(rtdoc.DefaultAttributes())
	runsBefore := s.Text().Runs()

	s.ToggleBold()
	if !s.Text().TypingAttributes().Font.IsBold() || !s.Snapshot().Bold {
		t.Fatalf("expected bold typing attributes")
	}
	s.ToggleBold()
	if s.Text().TypingAttributes().Font.IsBold() || s.Snapshot().Bold {
		t.Fatalf("expected bold toggled off at caret")
	}
	if runs := s.Text().Runs(); len(runs) != len(runsBefore) || !runs[0].Attr.Equal(runsBefore[0].Attr) {
		t.Fatalf("caret toggle touched the runs")
	}
}

func TestCaretUnderlineTogglesOff(t *testing.T) {
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	typing := rtdoc.DefaultAttributes()
	typing.Underline = rtdoc.LineSingle
	s.SetTypingAttributes(typing)
	if !s.Snapshot().Underline {
		t.Fatalf("snapshot should show underline at caret")
	}

	s.ToggleUnderline()
	if got := s.Text().TypingAttributes().Underline; got != rtdoc.LineNone {
		t.Fatalf("expected typing underline reset, got %v", got)
	}
	if s.Snapshot().Underline {
		t.Fatalf("snapshot should show underline off")
	}
}

// A mixed selection becomes fully styled on the first toggle and cleared on
// the second, so that path does not restore the original runs.
func TestUnderlineMixedBecomesFullThenClears(t *testing.T) {
	under := rtdoc.DefaultAttributes()
	under.Underline = rtdoc.LineSingle
	txt := rtdoc.NewTextWithRuns("abcdef", []rtdoc.Run{
		{Start: 0, End: 3, Attr: under},
		{Start: 3, End: 6, Attr: rtdoc.DefaultAttributes()},
	})
	s := newSession(txt, Options{})
	selectAll(s)

	s.ToggleUnderline()
	runs := s.Text().Runs()
	if len(runs) != 1 || runs[0].Attr.Underline != rtdoc.LineSingle {
		t.Fatalf("mixed selection should become fully underlined: %#v", runs)
	}
	s.ToggleUnderline()
	runs = s.Text().Runs()
	if len(runs) != 1 || runs[0].Attr.Underline != rtdoc.LineNone {
		t.Fatalf("fully underlined selection should clear in one toggle: %#v", runs)
	}
}

func TestStrikethroughPartialSelection(t *testing.T) {
	s := newSession(rtdoc.NewText("abcdef", rtdoc.DefaultAttributes()), Options{})
	s.SetSelection(rtdoc.Range{Location: 2, Length: 2})
	s.ToggleStrikethrough()
	runs := s.Text().Runs()
	if len(runs) != 3 || runs[1].Attr.Strikethrough != rtdoc.LineSingle {
		t.Fatalf("unexpected runs %#v", runs)
	}
	if !s.Snapshot().Strikethrough {
		t.Fatalf("snapshot should show strikethrough")
	}
	s.SetSelection(rtdoc.Range{Location: 1, Length: 3})
	if s.Snapshot().Strikethrough {
		t.Fatalf("mixed strikethrough should read as off")
	}
}

func TestSuperscriptTransform(t *testing.T) {
	s := newSession(rtdoc.NewText("x", rtdoc.DefaultAttributes()), Options{})
	selectAll(s)
	s.ToggleSuperscript()

	a := s.Text().Runs()[0].Attr
	if !near(a.Font.Size, 12.75) || !near(a.BaselineOffset, 6.8) {
		t.Fatalf("expected 12.75pt at +6.8, got %vpt at %v", a.Font.Size, a.BaselineOffset)
	}
	snap := s.Snapshot()
	if !snap.Superscript || snap.Subscript || !near(snap.FontSize, 17) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	s.ToggleSuperscript()
	a = s.Text().Runs()[0].Attr
	if !near(a.Font.Size, 17) || a.BaselineOffset != 0 {
		t.Fatalf("superscript toggle-off did not restore: %vpt at %v", a.Font.Size, a.BaselineOffset)
	}
}

func TestSuperscriptReplacesSubscript(t *testing.T) {
	italic := rtdoc.StyleAttributes{Font: rtdoc.DefaultBodyFont().AddingTrait(rtdoc.TraitItalic)}
	s := newSession(rtdoc.NewText("x", italic), Options{})
	selectAll(s)
	s.ToggleSubscript()
	a := s.Text().Runs()[0].Attr
	if !near(a.BaselineOffset, -5.1) || !near(a.Font.Size, 12.75) {
		t.Fatalf("unexpected subscript %vpt at %v", a.Font.Size, a.BaselineOffset)
	}

	s.ToggleSuperscript()
	a = s.Text().Runs()[0].Attr
	if a.BaselineOffset <= 0 || !near(a.BaselineOffset, 6.8) || !near(a.Font.Size, 12.75) {
		t.Fatalf("expected superscript only, got %vpt at %v", a.Font.Size, a.BaselineOffset)
	}
	if !a.Font.IsItalic() {
		t.Fatalf("script transform dropped italic")
	}
	snap := s.Snapshot()
	if !snap.Superscript || snap.Subscript {
		t.Fatalf("super and sub must be exclusive: %+v", snap)
	}
}

func TestScriptMixedRangeNormalizesFirst(t *testing.T) {
	sup := rtdoc.StyleAttributes{Font: rtdoc.DefaultBodyFont().WithSize(12.75), BaselineOffset: 6.8}
	txt := rtdoc.NewTextWithRuns("ab", []rtdoc.Run{
		{Start: 0, End: 1, Attr: sup},
		{Start: 1, End: 2, Attr: rtdoc.DefaultAttributes()},
	})
	s := newSession(txt, Options{})
	selectAll(s)
	s.ToggleSuperscript()
	runs := s.Text().Runs()
	if len(runs) != 1 {
		t.Fatalf("expected uniform superscript, got %#v", runs)
	}
	if a := runs[0].Attr; !near(a.Font.Size, 12.75) || !near(a.BaselineOffset, 6.8) {
		t.Fatalf("scale compounded: %vpt at %v", a.Font.Size, a.BaselineOffset)
	}
}

func TestScriptAtCaretUsesFlags(t *testing.T) {
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	s.SetSelection(rtdoc.Range{Location: 3})

	s.ToggleSuperscript()
	super, sub := s.ScriptFlags()
	typing := s.Text().TypingAttributes()
	if !super || sub || !near(typing.Font.Size, 12.75) || !near(typing.BaselineOffset, 6.8) {
		t.Fatalf("unexpected caret superscript: %v %v %#v", super, sub, typing)
	}

	s.ToggleSubscript()
	super, sub = s.ScriptFlags()
	typing = s.Text().TypingAttributes()
	if super || !sub || !near(typing.Font.Size, 12.75) || !near(typing.BaselineOffset, -5.1) {
		t.Fatalf("unexpected caret subscript: %v %v %#v", super, sub, typing)
	}
	if snap := s.Snapshot(); !snap.Subscript || snap.Superscript {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	s.ToggleSubscript()
	super, sub = s.ScriptFlags()
	typing = s.Text().TypingAttributes()
	if super || sub || !near(typing.Font.Size, 17) || typing.BaselineOffset != 0 {
		t.Fatalf("unexpected caret reset: %v %v %#v", super, sub, typing)
	}
	if got := s.Text().Runs(); len(got) != 1 || got[0].Attr.InScript() {
		t.Fatalf("caret toggles touched the runs")
	}
}

func TestAdjustFontSizeClamps(t *testing.T) {
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	selectAll(s)
	for i := 0; i < 100; i++ {
		s.AdjustFontSize(1)
	}
	if got := s.Snapshot().FontSize; got != DefaultMaxFontSize {
		t.Fatalf("expected max size, got %v", got)
	}
	for i := 0; i < 100; i++ {
		s.HandleToolbar(AdjustFontSize(-1))
	}
	if got := s.Snapshot().FontSize; got != DefaultMinFontSize {
		t.Fatalf("expected min size, got %v", got)
	}
}

func TestAdjustFontSizeInScriptMode(t *testing.T) {
	s := newSession(rtdoc.NewText("x", rtdoc.DefaultAttributes()), Options{})
	selectAll(s)
	s.ToggleSuperscript()
	s.AdjustFontSize(1)
	a := s.Text().Runs()[0].Attr
	if !near(a.Font.Size, 13.5) || !near(a.BaselineOffset, 7.2) {
		t.Fatalf("expected 13.5pt at 7.2, got %vpt at %v", a.Font.Size, a.BaselineOffset)
	}
	for i := 0; i < 100; i++ {
		s.AdjustFontSize(1)
	}
	a = s.Text().Runs()[0].Attr
	if !near(a.LogicalSize(), 80) || !near(a.Font.Size, 60) {
		t.Fatalf("expected logical 80 rendered 60, got %v / %v", a.LogicalSize(), a.Font.Size)
	}
}

func TestAdjustFontSizeHonoursConfiguredLimits(t *testing.T) {
	s := newSession(rtdoc.NewText("x", rtdoc.DefaultAttributes()), Options{MinFontSize: 12, MaxFontSize: 18})
	s.SetSelection(rtdoc.Range{Location: 1})
	for i := 0; i < 5; i++ {
		s.AdjustFontSize(1)
	}
	if got := s.Snapshot().FontSize; got != 18 {
		t.Fatalf("expected 18, got %v", got)
	}
}

func TestMixedFontSizeReportsFirstRun(t *testing.T) {
	txt := rtdoc.NewTextWithRuns("abcd", []rtdoc.Run{
		{Start: 0, End: 2, Attr: rtdoc.StyleAttributes{Font: rtdoc.DefaultBodyFont().WithSize(12)}},
		{Start: 2, End: 4, Attr: rtdoc.StyleAttributes{Font: rtdoc.DefaultBodyFont().WithSize(20)}},
	})
	s := newSession(txt, Options{})
	selectAll(s)
	if got := s.Snapshot().FontSize; got != 12 {
		t.Fatalf("expected first sub-run size, got %v", got)
	}
	s.AdjustFontSize(1)
	runs := s.Text().Runs()
	if runs[0].Attr.Font.Size != 13 || runs[1].Attr.Font.Size != 21 {
		t.Fatalf("unexpected sizes %v %v", runs[0].Attr.Font.Size, runs[1].Attr.Font.Size)
	}
}

func TestTypingUnchangedByRangeMutation(t *testing.T) {
	s := newSession(rtdoc.NewText("hello world", rtdoc.DefaultAttributes()), Options{})
	s.SetSelection(rtdoc.Range{Location: 0, Length: 5})
	typing := rtdoc.DefaultAttributes()
	typing.Foreground = 0x479D60FF
	s.SetTypingAttributes(typing)

	s.ToggleBold()
	s.ToggleSubscript()
	s.SetBackground(0xF1AA3EFF)
	s.AdjustFontSize(3)

	if got := s.Text().TypingAttributes(); !got.Equal(typing) {
		t.Fatalf("typing attributes changed by run mutation: %#v", got)
	}
}

func TestCycleAlignment(t *testing.T) {
	s := newSession(rtdoc.NewText("one\ntwo", rtdoc.DefaultAttributes()), Options{})
	s.SetSelection(rtdoc.Range{Location: 5})
	want := []rtdoc.Alignment{rtdoc.AlignCenter, rtdoc.AlignRight, rtdoc.AlignLeft}
	for _, w := range want {
		s.HandleToolbar(CycleAlignment())
		if got := s.Snapshot().Alignment; got != w {
			t.Fatalf("expected %v, got %v", w, got)
		}
	}
	if got := s.Text().Alignment(0); got != rtdoc.AlignLeft {
		t.Fatalf("first paragraph should be untouched, got %v", got)
	}

	s.SetAlignment(rtdoc.AlignJustified)
	s.CycleAlignment()
	if got := s.Snapshot().Alignment; got != rtdoc.AlignJustified {
		t.Fatalf("justified should pass through, got %v", got)
	}
}

func TestColorsAtCaretAndRange(t *testing.T) {
	red := rtdoc.Palette[1]
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	if got := s.Snapshot().Foreground; got != rtdoc.LabelColor {
		t.Fatalf("expected label default, got %08X", uint32(got))
	}

	s.SetForeground(red)
	if got := s.Text().TypingAttributes().Foreground; got != red {
		t.Fatalf("expected red typing color, got %08X", uint32(got))
	}
	s.HandleToolbar(SetColor(RoleForeground, red))
	if got := s.Text().TypingAttributes().Foreground; got != rtdoc.NoColor {
		t.Fatalf("same color at caret should reset, got %08X", uint32(got))
	}

	selectAll(s)
	s.HandleToolbar(SetColor(RoleBackground, rtdoc.Palette[3]))
	s.HandleToolbar(SetColor(RoleBackground, rtdoc.Palette[3]))
	snap := s.Snapshot()
	if snap.Background != rtdoc.Palette[3] {
		t.Fatalf("range color should stay set, got %08X", uint32(snap.Background))
	}
}

func TestSetFontFamilyKeepsTraits(t *testing.T) {
	s := newSession(rtdoc.NewText("abc", boldAttr()), Options{})
	selectAll(s)
	s.ToggleSuperscript()
	s.HandleToolbar(SetFontFamily("Menlo"))
	a := s.Text().Runs()[0].Attr
	if a.Font.Family != "Menlo" || !a.Font.IsBold() || !near(a.Font.Size, 12.75) || !a.InScript() {
		t.Fatalf("unexpected attributes %#v", a)
	}
}

func TestHandleToolbarToggles(t *testing.T) {
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	selectAll(s)
	for _, k := range []StyleKind{StyleBold, StyleItalic, StyleUnderline, StyleStrikethrough, StyleSubscript} {
		s.HandleToolbar(Toggle(k))
	}
	snap := s.Snapshot()
	if !snap.Bold || !snap.Italic || !snap.Underline || !snap.Strikethrough || !snap.Subscript || snap.Superscript {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
