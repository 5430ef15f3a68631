package ui

import (
	"math"

	"richtext/pkg/rtdoc"
)

// Advance reports the pen advance of r drawn with a.
type Advance func(r rune, a rtdoc.StyleAttributes) int

// Metrics reports the ascent and descent of the face a resolves to.
type Metrics func(a rtdoc.StyleAttributes) (ascent, descent int)

// Segment is a stretch of one paragraph drawn with a single attribute set.
// Attachments always get a segment of their own.
type Segment struct {
	Start, End int
	X, Width   int
	// Baseline is the segment's baseline, shifted for script offsets.
	Baseline int
	Attr     rtdoc.StyleAttributes
	Text     string
}

// Line is one laid out paragraph. Xs holds the x of every caret position
// from Start to End inclusive.
type Line struct {
	Start, End int
	Y          int
	Height     int
	Baseline   int
	Xs         []int
	Segments   []Segment
}

// LayoutText lays every paragraph of t out as one line inside box. Lines are
// not wrapped. Paragraph alignment shifts each line horizontally.
func LayoutText(t *rtdoc.Text, box Rect, lineGap int, scale float64, adv Advance, met Metrics) []Line {
	runes := []rune(t.String())
	var lines []Line
	y := box.Y
	start := 0
	for start <= len(runes) {
		end := start
		for end < len(runes) && runes[end] != '\n' {
			end++
		}
		ln := layoutLine(t, runes, start, end, scale, adv, met)
		ln.Y = y
		ln.Baseline += y
		for i := range ln.Segments {
			ln.Segments[i].Baseline += y
		}
		shift := box.X + alignShift(t.Alignment(start), box.W, ln.Xs[len(ln.Xs)-1])
		for i := range ln.Xs {
			ln.Xs[i] += shift
		}
		for i := range ln.Segments {
			ln.Segments[i].X += shift
		}
		lines = append(lines, ln)
		y += ln.Height + lineGap
		start = end + 1
	}
	return lines
}

func layoutLine(t *rtdoc.Text, runes []rune, start, end int, scale float64, adv Advance, met Metrics) Line {
	ln := Line{Start: start, End: end, Xs: make([]int, 0, end-start+1)}
	ln.Xs = append(ln.Xs, 0)
	var above, below int
	measure := func(a rtdoc.StyleAttributes) (int, int) {
		if att := a.Attachment; att != nil {
			return int(math.Round(float64(att.Height) * scale)), 0
		}
		asc, desc := met(a)
		off := int(math.Round(a.BaselineOffset * scale))
		return asc + max(off, 0), desc + max(-off, 0)
	}

	x := 0
	if start == end {
		a := t.AttributesAt(start)
		if start == t.Len() {
			a = t.TypingAttributes()
		}
		above, below = measure(a)
	}
	t.Enumerate(rtdoc.Range{Location: start, Length: end - start}, func(r rtdoc.Range, a rtdoc.StyleAttributes) bool {
		asc, desc := measure(a)
		above = max(above, asc)
		below = max(below, desc)
		emit := func(s, e int) {
			seg := Segment{Start: s, End: e, X: x, Attr: a, Text: string(runes[s:e])}
			for i := s; i < e; i++ {
				if a.Attachment != nil {
					x += int(math.Round(float64(a.Attachment.Width) * scale))
				} else {
					x += adv(runes[i], a)
				}
				ln.Xs = append(ln.Xs, x)
			}
			seg.Width = x - seg.X
			seg.Baseline = -int(math.Round(a.BaselineOffset * scale))
			ln.Segments = append(ln.Segments, seg)
		}
		if a.Attachment == nil {
			emit(r.Location, r.End())
			return true
		}
		for i := r.Location; i < r.End(); i++ {
			emit(i, i+1)
		}
		return true
	})
	ln.Height = above + below
	ln.Baseline = above
	for i := range ln.Segments {
		ln.Segments[i].Baseline += above
	}
	return ln
}

func alignShift(a rtdoc.Alignment, boxW, lineW int) int {
	switch a {
	case rtdoc.AlignCenter:
		return max((boxW-lineW)/2, 0)
	case rtdoc.AlignRight:
		return max(boxW-lineW, 0)
	}
	return 0
}

// LineOf returns the index of the line holding caret position pos.
func LineOf(lines []Line, pos int) int {
	for i, ln := range lines {
		if pos >= ln.Start && pos <= ln.End {
			return i
		}
	}
	return max(len(lines)-1, 0)
}

// CaretRect returns the caret bar for pos.
func CaretRect(lines []Line, pos int) Rect {
	if len(lines) == 0 {
		return Rect{}
	}
	ln := lines[LineOf(lines, pos)]
	i := min(max(pos-ln.Start, 0), len(ln.Xs)-1)
	return Rect{X: ln.Xs[i], Y: ln.Y, W: 1, H: max(ln.Height, 1)}
}

// HitTest maps a point to the nearest caret position.
func HitTest(lines []Line, x, y int) int {
	if len(lines) == 0 {
		return 0
	}
	li := len(lines) - 1
	for i, ln := range lines {
		if y < ln.Y+ln.Height {
			li = i
			break
		}
	}
	return nearest(lines[li], x)
}

func nearest(ln Line, x int) int {
	best, bestD := 0, math.MaxInt
	for i, bx := range ln.Xs {
		d := bx - x
		if d < 0 {
			d = -d
		}
		if d < bestD {
			best, bestD = i, d
		}
	}
	return ln.Start + best
}

// MoveVertical returns the caret position delta lines away from pos,
// keeping its x as close as possible.
func MoveVertical(lines []Line, pos, delta int) int {
	if len(lines) == 0 {
		return pos
	}
	li := LineOf(lines, pos)
	target := li + delta
	if target < 0 {
		return lines[0].Start
	}
	if target >= len(lines) {
		return lines[len(lines)-1].End
	}
	return nearest(lines[target], CaretRect(lines, pos).X)
}

// SelectionRects returns one highlight rectangle per line touched by r.
func SelectionRects(lines []Line, r rtdoc.Range) []Rect {
	if r.IsEmpty() {
		return nil
	}
	var out []Rect
	for _, ln := range lines {
		s := max(r.Location, ln.Start)
		e := min(r.End(), ln.End)
		if s > e || (s == e && r.End() <= ln.End) {
			continue
		}
		x0 := ln.Xs[s-ln.Start]
		x1 := ln.Xs[e-ln.Start]
		if r.End() > ln.End {
			// The selection includes the line break.
			x1 += 6
		}
		out = append(out, Rect{X: x0, Y: ln.Y, W: max(x1-x0, 1), H: ln.Height})
	}
	return out
}
