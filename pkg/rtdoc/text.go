package rtdoc

import (
	"sort"
	"strings"
)

// Range is a half-open span of rune offsets. Length zero denotes a caret.
type Range struct {
	Location int
	Length   int
}

func (r Range) End() int      { return r.Location + r.Length }
func (r Range) IsEmpty() bool { return r.Length == 0 }

func (r Range) Intersects(start, end int) bool {
	return start < r.End() && end > r.Location
}

type Run struct {
	Start int
	End   int
	Attr  StyleAttributes
}

func (r Run) Len() int { return r.End - r.Start }

func (r Run) Range() Range { return Range{Location: r.Start, Length: r.End - r.Start} }

// Text is a rune buffer partitioned into styled runs, plus the typing
// attributes used at an empty selection and one alignment per paragraph.
type Text struct {
	buf    []rune
	runs   []Run
	align  []Alignment
	typing StyleAttributes
}

func NewText(s string, attr StyleAttributes) *Text {
	t := &Text{buf: []rune(s), typing: attr}
	t.runs = []Run{{Start: 0, End: len(t.buf), Attr: attr.Normalize()}}
	t.align = make([]Alignment, strings.Count(s, "\n")+1)
	return t
}

// NewTextWithRuns builds a text from explicit runs. Runs are sanitized: gaps
// get default attributes and overlaps are trimmed.
func NewTextWithRuns(s string, runs []Run) *Text {
	t := &Text{buf: []rune(s), typing: DefaultAttributes()}
	t.runs = sanitizeRuns(len(t.buf), runs)
	t.align = make([]Alignment, strings.Count(s, "\n")+1)
	if len(t.runs) > 0 {
		t.typing = t.runs[0].Attr
	}
	return t
}

func (t *Text) String() string { return string(t.buf) }

func (t *Text) Len() int { return len(t.buf) }

func (t *Text) Slice(r Range) string {
	r = t.Clamp(r)
	return string(t.buf[r.Location:r.End()])
}

func (t *Text) Runs() []Run {
	out := make([]Run, len(t.runs))
	copy(out, t.runs)
	return out
}

func (t *Text) TypingAttributes() StyleAttributes { return t.typing }

func (t *Text) SetTypingAttributes(a StyleAttributes) { t.typing = a }

func (t *Text) Clone() *Text {
	out := &Text{
		buf:    append([]rune(nil), t.buf...),
		runs:   t.Runs(),
		align:  append([]Alignment(nil), t.align...),
		typing: t.typing,
	}
	return out
}

// Clamp forces r into the buffer. Out-of-range input is an internal bug, so
// it is corrected rather than reported.
func (t *Text) Clamp(r Range) Range {
	n := len(t.buf)
	if r.Length < 0 {
		r.Location += r.Length
		r.Length = -r.Length
	}
	if r.Location < 0 {
		r.Length += r.Location
		r.Location = 0
	}
	if r.Location > n {
		r.Location = n
	}
	if r.Length < 0 {
		r.Length = 0
	}
	if r.End() > n {
		r.Length = n - r.Location
	}
	return r
}

// InBounds reports whether r needs no clamping.
func (t *Text) InBounds(r Range) bool {
	return r.Location >= 0 && r.Length >= 0 && r.End() <= len(t.buf)
}

// Enumerate calls fn with every run intersecting r, clipped to r, in order.
// Returning false stops the walk.
func (t *Text) Enumerate(r Range, fn func(Range, StyleAttributes) bool) {
	r = t.Clamp(r)
	if r.IsEmpty() {
		return
	}
	for _, run := range t.runs {
		if !r.Intersects(run.Start, run.End) {
			continue
		}
		rs := max(run.Start, r.Location)
		re := min(run.End, r.End())
		if !fn(Range{Location: rs, Length: re - rs}, run.Attr) {
			return
		}
	}
}

// Attributes merges the attributes of every run intersecting r. A key is in
// the uniform set when all those runs agree on it; mixed keys carry the first
// run's value. An empty range yields the typing attributes, all uniform.
func (t *Text) Attributes(r Range) (StyleAttributes, KeySet) {
	r = t.Clamp(r)
	if r.IsEmpty() {
		return t.typing, AllKeys
	}
	var merged StyleAttributes
	uniform := AllKeys
	first := true
	t.Enumerate(r, func(_ Range, a StyleAttributes) bool {
		if first {
			merged = a
			first = false
			return true
		}
		for k := StyleKey(0); k < keyCount; k++ {
			if uniform.Has(k) && !merged.EqualKey(a, k) {
				uniform = uniform.Without(k)
			}
		}
		return true
	})
	return merged, uniform
}

// SetAttribute overwrites key over r. At an empty range it writes the typing
// attributes instead: if they already hold value, def is stored, so a second
// application at the caret turns the style off.
func (t *Text) SetAttribute(k StyleKey, value, def any, r Range) bool {
	r = t.Clamp(r)
	if r.IsEmpty() {
		cand, ok := t.typing.Set(k, value)
		if !ok {
			return false
		}
		if t.typing.EqualKey(cand, k) {
			cand, ok = t.typing.Set(k, def)
			if !ok {
				return false
			}
		}
		t.typing = cand
		return true
	}
	if _, ok := t.typing.Set(k, value); !ok {
		return false
	}
	t.Apply(r, func(a *StyleAttributes) {
		*a, _ = a.Set(k, value)
	})
	return true
}

// Apply runs mut over the attributes of every sub-run of r, splitting runs at
// the range boundaries and coalescing equal neighbours afterwards.
func (t *Text) Apply(r Range, mut func(*StyleAttributes)) {
	r = t.Clamp(r)
	if mut == nil || r.IsEmpty() {
		return
	}
	start, end := r.Location, r.End()
	newRuns := make([]Run, 0, len(t.runs)+2)
	for _, run := range t.runs {
		rs, re := run.Start, run.End
		if re <= start || rs >= end {
			newRuns = append(newRuns, run)
			continue
		}
		if rs < start {
			newRuns = append(newRuns, Run{Start: rs, End: start, Attr: run.Attr})
			rs = start
		}
		midEnd := min(re, end)
		attr := run.Attr
		mut(&attr)
		newRuns = append(newRuns, Run{Start: rs, End: midEnd, Attr: attr.Normalize()})
		if re > end {
			newRuns = append(newRuns, Run{Start: end, End: re, Attr: run.Attr})
		}
	}
	t.runs = sanitizeRuns(len(t.buf), newRuns)
}

// AttributesAt returns the attributes of the character at pos, or of the
// last character when pos is at the end.
func (t *Text) AttributesAt(pos int) StyleAttributes {
	return t.styleAt(pos)
}

func (t *Text) styleAt(pos int) StyleAttributes {
	n := len(t.buf)
	if n == 0 {
		if len(t.runs) > 0 {
			return t.runs[0].Attr
		}
		return DefaultAttributes()
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= n {
		pos = n - 1
	}
	for _, run := range t.runs {
		if run.Start <= pos && pos < run.End {
			return run.Attr
		}
	}
	return DefaultAttributes()
}

// Replace swaps the text in r for s styled with attr.
func (t *Text) Replace(r Range, s string, attr StyleAttributes) {
	r = t.Clamp(r)
	start, end := r.Location, r.End()
	insert := []rune(s)
	oldLen := len(t.buf)

	removedBreaks := countBreaks(t.buf[start:end])
	para := countBreaks(t.buf[:start])

	newBuf := make([]rune, 0, oldLen-(end-start)+len(insert))
	newBuf = append(newBuf, t.buf[:start]...)
	newBuf = append(newBuf, insert...)
	newBuf = append(newBuf, t.buf[end:]...)
	delta := len(insert) - (end - start)

	newRuns := make([]Run, 0, len(t.runs)+2)
	for _, run := range t.runs {
		rs, re := run.Start, run.End
		switch {
		case re <= start:
			newRuns = append(newRuns, run)
		case rs >= end:
			newRuns = append(newRuns, Run{Start: rs + delta, End: re + delta, Attr: run.Attr})
		default:
			if rs < start {
				newRuns = append(newRuns, Run{Start: rs, End: start, Attr: run.Attr})
			}
			if re > end {
				newRuns = append(newRuns, Run{Start: end + delta, End: re + delta, Attr: run.Attr})
			}
		}
	}
	if len(insert) > 0 {
		newRuns = append(newRuns, Run{Start: start, End: start + len(insert), Attr: attr.Normalize()})
	}

	t.buf = newBuf
	t.align = spliceAlignments(t.align, para, removedBreaks, countBreaks(insert))
	if len(newBuf) == 0 {
		t.runs = []Run{{Start: 0, End: 0, Attr: attr.Normalize()}}
		return
	}
	t.runs = sanitizeRuns(len(newBuf), newRuns)
}

// Insert types s at pos with the typing attributes.
func (t *Text) Insert(pos int, s string) {
	t.Replace(Range{Location: pos}, s, t.typing)
}

func (t *Text) Delete(r Range) {
	r = t.Clamp(r)
	t.Replace(r, "", t.styleAt(r.Location))
}

// InsertAttachment places att at pos as a single placeholder rune carrying
// base's other attributes.
func (t *Text) InsertAttachment(pos int, att *Attachment, base StyleAttributes) {
	base.Attachment = att
	t.Replace(Range{Location: pos}, string(ObjectReplacement), base)
}

func (t *Text) AppendAttachment(att *Attachment) {
	t.InsertAttachment(len(t.buf), att, t.typing)
}

func countBreaks(rs []rune) int {
	n := 0
	for _, r := range rs {
		if r == '\n' {
			n++
		}
	}
	return n
}

func sanitizeRuns(textLen int, runs []Run) []Run {
	if textLen < 0 {
		textLen = 0
	}
	if len(runs) == 0 {
		return []Run{{Start: 0, End: textLen, Attr: DefaultAttributes()}}
	}
	clean := make([]Run, 0, len(runs))
	for _, r := range runs {
		start := min(max(r.Start, 0), textLen)
		end := min(max(r.End, 0), textLen)
		if start > end {
			start, end = end, start
		}
		if textLen > 0 && start == end {
			continue
		}
		clean = append(clean, Run{Start: start, End: end, Attr: r.Attr.Normalize()})
	}
	if len(clean) == 0 {
		return []Run{{Start: 0, End: textLen, Attr: DefaultAttributes()}}
	}
	if textLen == 0 {
		return []Run{{Start: 0, End: 0, Attr: clean[0].Attr}}
	}

	sort.SliceStable(clean, func(i, j int) bool {
		if clean[i].Start == clean[j].Start {
			return clean[i].End < clean[j].End
		}
		return clean[i].Start < clean[j].Start
	})

	nonOverlap := make([]Run, 0, len(clean))
	for _, r := range clean {
		if len(nonOverlap) > 0 {
			last := nonOverlap[len(nonOverlap)-1]
			if r.Start < last.End {
				if r.End <= last.End {
					continue
				}
				r.Start = last.End
			}
		}
		nonOverlap = append(nonOverlap, r)
	}

	filled := make([]Run, 0, len(nonOverlap)+2)
	cursor := 0
	for _, r := range nonOverlap {
		if r.Start > cursor {
			filled = append(filled, Run{Start: cursor, End: r.Start, Attr: DefaultAttributes()})
		}
		filled = append(filled, r)
		cursor = r.End
	}
	if cursor < textLen {
		filled = append(filled, Run{Start: cursor, End: textLen, Attr: DefaultAttributes()})
	}

	merged := make([]Run, 0, len(filled))
	for _, r := range filled {
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.End == r.Start && last.Attr.Equal(r.Attr) {
				last.End = r.End
				continue
			}
		}
		merged = append(merged, r)
	}
	return merged
}
