package editor

import "richtext/pkg/rtdoc"

// Listener receives session notifications. Nil hooks are skipped. The text
// passed to OnTextChanged is the live buffer and must not be retained.
type Listener struct {
	OnSelectionChanged func(rtdoc.Range)
	OnTextChanged      func(*rtdoc.Text)
	OnToolbar          func(ToolbarSnapshot)
	OnBeginEditing     func()
	OnEndEditing       func()
	OnCommit           func(*rtdoc.Text)
	OnImageRequested   func()
	OnDismissKeyboard  func()
}

type subscription struct {
	id int
	l  Listener
}

// Subscribe registers l and returns a func that removes it.
func (s *Session) Subscribe(l Listener) (cancel func()) {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, l: l})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) emit(fn func(Listener)) {
	subs := append([]subscription(nil), s.subs...)
	for _, sub := range subs {
		fn(sub.l)
	}
}

func (s *Session) emitSelection() {
	r := s.sel
	s.emit(func(l Listener) {
		if l.OnSelectionChanged != nil {
			l.OnSelectionChanged(r)
		}
	})
}

func (s *Session) emitText() {
	s.emit(func(l Listener) {
		if l.OnTextChanged != nil {
			l.OnTextChanged(s.text)
		}
	})
}

// publishToolbar defers delivery of the latest snapshot by one dispatch.
// Several refreshes before the host flushes collapse into one delivery.
func (s *Session) publishToolbar() {
	if s.toolbarQueued {
		return
	}
	s.toolbarQueued = true
	s.dispatch.Dispatch(func() {
		s.toolbarQueued = false
		snap := s.snapshot
		s.emit(func(l Listener) {
			if l.OnToolbar != nil {
				l.OnToolbar(snap)
			}
		})
	})
}
