package editor

import (
	"log/slog"

	applog "richtext/internal/log"
	"richtext/pkg/rtdoc"
)

const (
	DefaultMinFontSize = 8
	DefaultMaxFontSize = 80
)

// Options configures a session. DefaultFontSize is the body size typed into
// an empty buffer; zero keeps the body style's size.
type Options struct {
	MinFontSize      float64
	MaxFontSize      float64
	DefaultFontSize  float64
	Placeholder      string
	PlaceholderColor rtdoc.Color
	Dispatcher       Dispatcher
	Logger           *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.MinFontSize <= 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.MaxFontSize <= 0 {
		o.MaxFontSize = DefaultMaxFontSize
	}
	if o.MaxFontSize < o.MinFontSize {
		o.MinFontSize, o.MaxFontSize = o.MaxFontSize, o.MinFontSize
	}
	if o.PlaceholderColor == rtdoc.NoColor {
		o.PlaceholderColor = 0x3C3C4399
	}
	if o.Dispatcher == nil {
		o.Dispatcher = ImmediateDispatcher{}
	}
	return o
}

// Session is one editing context: the styled text, the selection, the
// caret's script flags and the observers bound to them. Sessions share no
// state, and a session must only be used from the host's UI loop.
type Session struct {
	text *rtdoc.Text
	sel  rtdoc.Range

	isSuper bool
	isSub   bool

	opts     Options
	dispatch Dispatcher
	log      *slog.Logger

	subs          []subscription
	nextSub       int
	snapshot      ToolbarSnapshot
	toolbarQueued bool

	editing     bool
	placeholder bool
}

func NewSession(text *rtdoc.Text, opts Options) *Session {
	opts = opts.withDefaults()
	if text == nil {
		text = rtdoc.NewText("", rtdoc.DefaultAttributes())
	}
	s := &Session{
		text:     text,
		opts:     opts,
		dispatch: opts.Dispatcher,
		log:      opts.Logger,
	}
	if s.log == nil {
		s.log = applog.WithComponent(nil, "editor")
	}
	s.checkTypingFont()
	s.syncScriptFlags()
	if s.text.Len() == 0 {
		s.showPlaceholder()
	}
	s.refresh()
	return s
}

// Text returns the live buffer. Callers must not mutate it directly.
func (s *Session) Text() *rtdoc.Text { return s.text }

func (s *Session) Selection() rtdoc.Range { return s.sel }

func (s *Session) Editing() bool { return s.editing }

func (s *Session) ShowingPlaceholder() bool { return s.placeholder }

// ScriptFlags reports the caret's explicit superscript and subscript state.
func (s *Session) ScriptFlags() (super, sub bool) { return s.isSuper, s.isSub }

func (s *Session) FontLimits() (lo, hi float64) { return s.opts.MinFontSize, s.opts.MaxFontSize }

// SetSelection moves the selection. Moving the caret adopts the attributes
// of the character before it as the new typing attributes.
func (s *Session) SetSelection(r rtdoc.Range) {
	prev := s.sel
	s.sel = s.clamp(r)
	if s.sel.IsEmpty() && s.sel != prev {
		s.adoptTypingAt(s.sel.Location)
	}
	s.emitSelection()
	s.refresh()
}

func (s *Session) SelectAll() {
	s.SetSelection(rtdoc.Range{Length: s.text.Len()})
}

func (s *Session) SetTypingAttributes(a rtdoc.StyleAttributes) {
	s.text.SetTypingAttributes(a)
	s.checkTypingFont()
	s.syncScriptFlags()
	s.refresh()
}

// SetText replaces the whole buffer, e.g. after loading a document.
func (s *Session) SetText(t *rtdoc.Text) {
	if t == nil {
		t = rtdoc.NewText("", rtdoc.DefaultAttributes())
	}
	s.text = t
	s.placeholder = false
	s.sel = s.clamp(rtdoc.Range{Location: t.Len()})
	s.checkTypingFont()
	s.syncScriptFlags()
	if t.Len() == 0 && !s.editing {
		s.showPlaceholder()
	}
	s.emitText()
	s.emitSelection()
	s.refresh()
}

// InsertText replaces the selection with str in the typing attributes and
// leaves the caret after it.
func (s *Session) InsertText(str string) {
	if str == "" {
		return
	}
	s.clearPlaceholder()
	r := s.sel
	typing := s.text.TypingAttributes()
	s.text.Replace(r, str, typing)
	s.text.SetTypingAttributes(typing)
	s.sel = rtdoc.Range{Location: r.Location + len([]rune(str))}
	s.textChanged()
}

// DeleteBackward removes the selection, or the rune before the caret.
func (s *Session) DeleteBackward() {
	if s.placeholder {
		return
	}
	r := s.sel
	if r.IsEmpty() {
		if r.Location == 0 {
			return
		}
		r = rtdoc.Range{Location: r.Location - 1, Length: 1}
	}
	typing := s.text.TypingAttributes()
	s.text.Delete(r)
	s.text.SetTypingAttributes(typing)
	s.sel = rtdoc.Range{Location: r.Location}
	s.textChanged()
}

// BeginEditing clears the placeholder and gives the caret the label color.
func (s *Session) BeginEditing() {
	s.clearPlaceholder()
	s.editing = true
	s.emit(func(l Listener) {
		if l.OnBeginEditing != nil {
			l.OnBeginEditing()
		}
	})
	s.emitSelection()
	s.refresh()
}

// EndEditing restores the placeholder over an empty buffer, or commits the
// text to subscribers.
func (s *Session) EndEditing() {
	s.editing = false
	if s.text.Len() == 0 || s.placeholder {
		s.showPlaceholder()
	} else {
		committed := s.text.Clone()
		s.emit(func(l Listener) {
			if l.OnCommit != nil {
				l.OnCommit(committed)
			}
		})
	}
	s.emit(func(l Listener) {
		if l.OnEndEditing != nil {
			l.OnEndEditing()
		}
	})
	s.refresh()
}

func (s *Session) DismissKeyboard() {
	s.emit(func(l Listener) {
		if l.OnDismissKeyboard != nil {
			l.OnDismissKeyboard()
		}
	})
	if s.editing {
		s.EndEditing()
	}
}

func (s *Session) showPlaceholder() {
	if s.opts.Placeholder == "" {
		return
	}
	attr := s.defaultTyping()
	attr.Foreground = s.opts.PlaceholderColor
	s.text = rtdoc.NewText(s.opts.Placeholder, attr)
	s.text.SetTypingAttributes(s.defaultTyping())
	s.sel = rtdoc.Range{}
	s.placeholder = true
	s.syncScriptFlags()
}

func (s *Session) clearPlaceholder() {
	if !s.placeholder {
		return
	}
	typing := s.defaultTyping()
	typing.Foreground = rtdoc.LabelColor
	s.text = rtdoc.NewText("", typing)
	s.text.SetTypingAttributes(typing)
	s.sel = rtdoc.Range{}
	s.placeholder = false
	s.syncScriptFlags()
}

func (s *Session) defaultTyping() rtdoc.StyleAttributes {
	a := rtdoc.DefaultAttributes()
	if sz := s.opts.DefaultFontSize; sz > 0 {
		a.Font = a.Font.WithSize(min(max(sz, s.opts.MinFontSize), s.opts.MaxFontSize))
	}
	return a
}

// mutated finishes an attribute-only change.
func (s *Session) mutated() {
	s.emitText()
	s.refresh()
}

func (s *Session) textChanged() {
	s.sel = s.clamp(s.sel)
	s.emitText()
	s.emitSelection()
	s.refresh()
}

// refresh recomputes the toolbar snapshot now and publishes it on the next
// dispatch.
func (s *Session) refresh() {
	s.snapshot = s.resolve()
	s.publishToolbar()
}

func (s *Session) clamp(r rtdoc.Range) rtdoc.Range {
	if s.text.InBounds(r) {
		return r
	}
	c := s.text.Clamp(r)
	s.log.Warn("selection out of bounds; clamped",
		slog.Int("location", r.Location), slog.Int("length", r.Length),
		slog.Int("textLen", s.text.Len()))
	return c
}

func (s *Session) adoptTypingAt(pos int) {
	if s.text.Len() == 0 {
		return
	}
	a := s.text.AttributesAt(pos - 1)
	a.Attachment = nil
	s.text.SetTypingAttributes(a)
	s.syncScriptFlags()
}

func (s *Session) syncScriptFlags() {
	off := s.text.TypingAttributes().BaselineOffset
	s.isSuper = off > 0
	s.isSub = off < 0
}

// checkTypingFont replaces an unusable typing font with the body font.
func (s *Session) checkTypingFont() {
	a := s.text.TypingAttributes()
	if a.Font.Valid() {
		return
	}
	s.log.Debug("typing font unresolved; using body font",
		slog.String("family", a.Font.Family), slog.Float64("size", a.Font.Size))
	a.Font = rtdoc.DefaultBodyFont()
	s.text.SetTypingAttributes(a)
}
