package rtdoc

type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustified
	AlignNatural
)

var alignmentNames = [...]string{"left", "center", "right", "justified", "natural"}

func (a Alignment) String() string {
	if int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return "left"
}

// Next steps the user-facing ring left -> center -> right -> left. Justified
// and natural are not on the ring and map to themselves.
func (a Alignment) Next() Alignment {
	switch a {
	case AlignLeft:
		return AlignCenter
	case AlignCenter:
		return AlignRight
	case AlignRight:
		return AlignLeft
	case AlignJustified, AlignNatural:
		return a
	}
	return AlignLeft
}

// ParagraphIndex is the zero-based paragraph containing pos.
func (t *Text) ParagraphIndex(pos int) int {
	pos = min(max(pos, 0), len(t.buf))
	return countBreaks(t.buf[:pos])
}

func (t *Text) ParagraphCount() int { return len(t.align) }

func (t *Text) Alignment(pos int) Alignment {
	i := t.ParagraphIndex(pos)
	if i < len(t.align) {
		return t.align[i]
	}
	return AlignLeft
}

// Alignments returns one entry per paragraph.
func (t *Text) Alignments() []Alignment {
	return append([]Alignment(nil), t.align...)
}

// SetAlignment applies a to every paragraph touched by r.
func (t *Text) SetAlignment(r Range, a Alignment) {
	r = t.Clamp(r)
	first := t.ParagraphIndex(r.Location)
	last := first
	if r.Length > 0 {
		last = t.ParagraphIndex(r.End() - 1)
	}
	for i := first; i <= last && i < len(t.align); i++ {
		t.align[i] = a
	}
}

// spliceAlignments keeps one entry per paragraph across an edit in paragraph
// para that removed and inserted the given number of line breaks. New
// paragraphs inherit the alignment of the one they were split from.
func spliceAlignments(align []Alignment, para, removed, inserted int) []Alignment {
	if para >= len(align) {
		para = len(align) - 1
	}
	if para < 0 {
		return []Alignment{AlignLeft}
	}
	cur := align[para]
	tail := para + 1 + removed
	if tail > len(align) {
		tail = len(align)
	}
	out := make([]Alignment, 0, len(align)-removed+inserted)
	out = append(out, align[:para+1]...)
	for i := 0; i < inserted; i++ {
		out = append(out, cur)
	}
	out = append(out, align[tail:]...)
	return out
}
