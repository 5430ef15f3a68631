package editor

import (
	"image"
	"image/color"
	"testing"

	applog "richtext/internal/log"
	"richtext/pkg/rtdoc"
)

func newSession(txt *rtdoc.Text, opts Options) *Session {
	opts.Logger = applog.Discard()
	return NewSession(txt, opts)
}

func TestSelectionClamped(t *testing.T) {
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	s.SetSelection(rtdoc.Range{Location: 5, Length: 100})
	if got := s.Selection(); got != (rtdoc.Range{Location: 3}) {
		t.Fatalf("unexpected clamped selection: %+v", got)
	}
	s.SetSelection(rtdoc.Range{Location: -2, Length: 4})
	if got := s.Selection(); got != (rtdoc.Range{Location: 0, Length: 2}) {
		t.Fatalf("unexpected clamped selection: %+v", got)
	}
}

func TestInsertAndDeleteBackward(t *testing.T) {
	s := newSession(rtdoc.NewText("ad", rtdoc.DefaultAttributes()), Options{})
	s.SetSelection(rtdoc.Range{Location: 1})
	s.InsertText("bc")
	if got := s.Text().String(); got != "abcd" {
		t.Fatalf("unexpected insert result: %q", got)
	}
	if got := s.Selection(); got != (rtdoc.Range{Location: 3}) {
		t.Fatalf("unexpected caret: %+v", got)
	}
	s.DeleteBackward()
	if got := s.Text().String(); got != "abd" {
		t.Fatalf("unexpected delete result: %q", got)
	}
	s.SetSelection(rtdoc.Range{Location: 0, Length: 2})
	s.DeleteBackward()
	if got := s.Text().String(); got != "d" {
		t.Fatalf("unexpected selection delete result: %q", got)
	}
}

func TestCaretAdoptsPrecedingAttributes(t *testing.T) {
	bold := rtdoc.StyleAttributes{Font: rtdoc.DefaultBodyFont().AddingTrait(rtdoc.TraitBold)}
	txt := rtdoc.NewTextWithRuns("abcd", []rtdoc.Run{
		{Start: 0, End: 2, Attr: bold},
		{Start: 2, End: 4, Attr: rtdoc.DefaultAttributes()},
	})
	s := newSession(txt, Options{})
	s.SetSelection(rtdoc.Range{Location: 2})
	if !s.Snapshot().Bold {
		t.Fatalf("caret after bold text should type bold")
	}
	s.SetSelection(rtdoc.Range{Location: 4})
	if s.Snapshot().Bold {
		t.Fatalf("caret after plain text should not type bold")
	}
}

func TestPlaceholderLifecycle(t *testing.T) {
	s := newSession(nil, Options{Placeholder: "Type here"})
	if !s.ShowingPlaceholder() || s.Text().String() != "Type here" {
		t.Fatalf("expected placeholder, got %q", s.Text().String())
	}

	var committed []string
	ended := 0
	s.Subscribe(Listener{
		OnCommit:     func(txt *rtdoc.Text) { committed = append(committed, txt.String()) },
		OnEndEditing: func() { ended++ },
	})

	s.BeginEditing()
	if s.ShowingPlaceholder() || s.Text().Len() != 0 {
		t.Fatalf("begin editing should clear the placeholder")
	}
	if got := s.Text().TypingAttributes().Foreground; got != rtdoc.LabelColor {
		t.Fatalf("expected label color for typing, got %08X", uint32(got))
	}
	s.EndEditing()
	if !s.ShowingPlaceholder() || len(committed) != 0 {
		t.Fatalf("empty edit should restore placeholder without commit")
	}

	s.BeginEditing()
	s.InsertText("hi")
	s.EndEditing()
	if len(committed) != 1 || committed[0] != "hi" {
		t.Fatalf("unexpected commits: %v", committed)
	}
	if ended != 2 {
		t.Fatalf("expected 2 end-editing events, got %d", ended)
	}
}

func TestToolbarPublishIsDeferred(t *testing.T) {
	q := &QueueDispatcher{}
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{Dispatcher: q})

	var got []ToolbarSnapshot
	s.Subscribe(Listener{OnToolbar: func(snap ToolbarSnapshot) { got = append(got, snap) }})

	s.SetSelection(rtdoc.Range{Location: 0, Length: 3})
	s.ToggleBold()
	s.ToggleItalic()
	if len(got) != 0 {
		t.Fatalf("toolbar published before flush")
	}
	if !s.Snapshot().Bold || !s.Snapshot().Italic {
		t.Fatalf("snapshot must be recomputed synchronously")
	}
	if n := q.Flush(); n != 1 {
		t.Fatalf("expected one coalesced dispatch, got %d", n)
	}
	if len(got) != 1 || !got[0].Bold || !got[0].Italic {
		t.Fatalf("unexpected published snapshots: %+v", got)
	}

	s.ToggleBold()
	q.Flush()
	if len(got) != 2 || got[1].Bold {
		t.Fatalf("expected a second snapshot with bold off: %+v", got)
	}
}

func TestSubscribeCancel(t *testing.T) {
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	calls := 0
	cancel := s.Subscribe(Listener{OnSelectionChanged: func(rtdoc.Range) { calls++ }})
	s.SetSelection(rtdoc.Range{Location: 1})
	cancel()
	s.SetSelection(rtdoc.Range{Location: 2})
	if calls != 1 {
		t.Fatalf("expected 1 call before cancel, got %d", calls)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newSession(rtdoc.NewText("one", rtdoc.DefaultAttributes()), Options{})
	b := newSession(rtdoc.NewText("two", rtdoc.DefaultAttributes()), Options{})
	a.ToggleSuperscript()
	if super, _ := b.ScriptFlags(); super {
		t.Fatalf("script flags leaked between sessions")
	}
	if b.Snapshot().Superscript {
		t.Fatalf("snapshot leaked between sessions")
	}
}

func TestInsertImageAfterDelay(t *testing.T) {
	s := newSession(rtdoc.NewText("abcdef", rtdoc.DefaultAttributes()), Options{})
	requested := 0
	texts := 0
	s.Subscribe(Listener{
		OnImageRequested: func() { requested++ },
		OnTextChanged:    func(*rtdoc.Text) { texts++ },
	})
	s.BeginEditing()
	s.SetSelection(rtdoc.Range{Location: 6})
	s.HandleToolbar(InsertImage())
	if requested != 1 {
		t.Fatalf("expected image request, got %d", requested)
	}

	// text shrinks while the picker is open
	s.SetSelection(rtdoc.Range{Location: 2, Length: 4})
	s.DeleteBackward()

	src := image.NewRGBA(image.Rect(0, 0, 360, 180))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}
	if !s.InsertImage(src) {
		t.Fatalf("image insert failed")
	}
	if got := s.Text().Len(); got != 3 {
		t.Fatalf("expected placeholder rune appended, len=%d", got)
	}
	runs := s.Text().Runs()
	att := runs[len(runs)-1].Attr.Attachment
	if att == nil {
		t.Fatalf("missing attachment run: %#v", runs)
	}
	// 180x90 after fitting, plus a 3.6px border
	if att.Width != 185 || att.Height != 96 {
		t.Fatalf("unexpected attachment size %dx%d", att.Width, att.Height)
	}
	if got := s.Selection(); got != (rtdoc.Range{Location: 3}) {
		t.Fatalf("caret should follow the attachment, got %+v", got)
	}
	if texts < 2 {
		t.Fatalf("expected text change events, got %d", texts)
	}

	if s.InsertImage(nil) {
		t.Fatalf("nil image should be rejected")
	}
}

func TestInsertLine(t *testing.T) {
	s := newSession(rtdoc.NewText("a", rtdoc.DefaultAttributes()), Options{})
	s.SetSelection(rtdoc.Range{Location: 1})
	s.HandleToolbar(InsertLine())
	runs := s.Text().Runs()
	att := runs[len(runs)-1].Attr.Attachment
	if att == nil || att.Width != LineWidth || att.Height != LineHeight {
		t.Fatalf("unexpected line attachment %#v", att)
	}
	if c := att.Image.At(LineWidth/2, LineHeight/2); c != color.Color(lineColor) {
		t.Fatalf("unexpected line pixel %v", c)
	}
}

func TestDismissKeyboardEndsEditing(t *testing.T) {
	s := newSession(rtdoc.NewText("abc", rtdoc.DefaultAttributes()), Options{})
	dismissed := false
	s.Subscribe(Listener{OnDismissKeyboard: func() { dismissed = true }})
	s.BeginEditing()
	s.HandleToolbar(DismissKeyboard())
	if !dismissed || s.Editing() {
		t.Fatalf("expected keyboard dismissed and editing ended")
	}
}

func TestDefaultFontSizeAppliesToFreshBuffer(t *testing.T) {
	s := newSession(nil, Options{Placeholder: "Type here", DefaultFontSize: 22})
	s.BeginEditing()
	if got := s.Text().TypingAttributes().Font.Size; got != 22 {
		t.Fatalf("unexpected typing size: %v", got)
	}
	s.InsertText("hi")
	if got := s.Snapshot().FontSize; got != 22 {
		t.Fatalf("unexpected snapshot size: %v", got)
	}

	big := newSession(nil, Options{Placeholder: "x", DefaultFontSize: 200})
	big.BeginEditing()
	if got := big.Text().TypingAttributes().Font.Size; got != DefaultMaxFontSize {
		t.Fatalf("default size not clamped: %v", got)
	}
}
