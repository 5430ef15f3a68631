// Package markdown builds an initial styled text from a markdown document.
package markdown

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"richtext/pkg/rtdoc"
)

var ErrInvalidUTF8 = errors.New("markdown: source is not valid UTF-8")

// DefaultHeaderStyles maps heading levels 1-6 to text styles. Index 0 is
// the body style.
var DefaultHeaderStyles = [7]rtdoc.TextStyle{
	rtdoc.TextStyleBody,
	rtdoc.TextStyleLargeTitle,
	rtdoc.TextStyleTitle,
	rtdoc.TextStyleTitle2,
	rtdoc.TextStyleTitle3,
	rtdoc.TextStyleHeadline,
	rtdoc.TextStyleSubheadline,
}

type Options struct {
	HeaderStyles [7]rtdoc.TextStyle
	// InsertBreaks puts a line break before every block but the first.
	InsertBreaks bool
	CodeFamily   string
}

func DefaultOptions() Options {
	return Options{HeaderStyles: DefaultHeaderStyles, InsertBreaks: true, CodeFamily: "Menlo"}
}

// Bootstrap parses src and returns the equivalent styled text.
func Bootstrap(src string, opts Options) (*rtdoc.Text, error) {
	if !utf8.ValidString(src) {
		return nil, ErrInvalidUTF8
	}
	if opts.CodeFamily == "" {
		opts.CodeFamily = "Menlo"
	}
	source := []byte(src)
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	doc := md.Parser().Parse(text.NewReader(source))

	b := &builder{src: source, opts: opts, base: rtdoc.TextStyleFont(opts.HeaderStyles[0])}
	if err := ast.Walk(doc, b.visit); err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}

	out := rtdoc.NewTextWithRuns(b.sb.String(), b.runs)
	out.SetTypingAttributes(rtdoc.DefaultAttributes())
	return out, nil
}

// FromMarkdown is FromMarkdownWith using the default options.
func FromMarkdown(src string) *rtdoc.Text {
	return FromMarkdownWith(src, DefaultOptions())
}

// FromMarkdownWith never fails: a document that cannot be parsed yields a
// plain error message instead.
func FromMarkdownWith(src string, opts Options) *rtdoc.Text {
	out, err := Bootstrap(src, opts)
	if err != nil {
		return rtdoc.NewText(fmt.Sprintf("Error parsing markdown %v", err), rtdoc.DefaultAttributes())
	}
	return out
}

type builder struct {
	src  []byte
	opts Options
	sb   strings.Builder
	runs []rtdoc.Run
	pos  int

	blocks int
	prefix string
	base   rtdoc.FontDescriptor

	bold, italic, strike, code int
}

func (b *builder) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Heading:
		if entering {
			level := min(max(n.Level, 0), len(b.opts.HeaderStyles)-1)
			b.base = rtdoc.TextStyleFont(b.opts.HeaderStyles[level])
			b.beginBlock()
		} else {
			b.base = rtdoc.TextStyleFont(b.opts.HeaderStyles[0])
		}
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			b.beginBlock()
		}
	case *ast.ListItem:
		if entering {
			b.prefix = listPrefix(n)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		b.beginBlock()
		b.code++
		lines := n.Lines()
		var sb strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(b.src))
		}
		b.write(strings.TrimRight(sb.String(), "\n"))
		b.code--
		return ast.WalkSkipChildren, nil
	case *ast.ThematicBreak:
		if entering {
			b.beginBlock()
			b.write("———")
		}
	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil
	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if n.Level >= 2 {
			b.bold += delta
		} else {
			b.italic += delta
		}
	case *east.Strikethrough:
		if entering {
			b.strike++
		} else {
			b.strike--
		}
	case *ast.CodeSpan:
		if entering {
			b.code++
		} else {
			b.code--
		}
	case *ast.Text:
		if entering {
			b.write(string(n.Segment.Value(b.src)))
			switch {
			case n.HardLineBreak():
				b.write("\n")
			case n.SoftLineBreak():
				b.write(" ")
			}
		}
	case *ast.String:
		if entering {
			b.write(string(n.Value))
		}
	case *ast.AutoLink:
		if entering {
			b.write(string(n.URL(b.src)))
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (b *builder) beginBlock() {
	if b.blocks > 0 && b.opts.InsertBreaks {
		b.writeWith("\n", rtdoc.DefaultAttributes())
	}
	b.blocks++
	if b.prefix != "" {
		p := b.prefix
		b.prefix = ""
		b.writeWith(p, rtdoc.StyleAttributes{Font: b.base})
	}
}

func (b *builder) write(s string) {
	b.writeWith(s, b.attr())
}

func (b *builder) writeWith(s string, attr rtdoc.StyleAttributes) {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return
	}
	b.sb.WriteString(s)
	b.runs = append(b.runs, rtdoc.Run{Start: b.pos, End: b.pos + n, Attr: attr})
	b.pos += n
}

func (b *builder) attr() rtdoc.StyleAttributes {
	f := b.base
	if b.code > 0 {
		f = rtdoc.NamedFont(b.opts.CodeFamily, f.Size).WithWeight(f.Weight)
	}
	if b.bold > 0 {
		f = f.AddingTrait(rtdoc.TraitBold)
	}
	if b.italic > 0 {
		f = f.AddingTrait(rtdoc.TraitItalic)
	}
	a := rtdoc.StyleAttributes{Font: f}
	if b.strike > 0 {
		a.Strikethrough = rtdoc.LineSingle
	}
	return a
}

func listPrefix(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "• "
	}
	idx := list.Start
	for sib := item.PreviousSibling(); sib != nil; sib = sib.PreviousSibling() {
		idx++
	}
	return fmt.Sprintf("%d%c ", idx, list.Marker)
}
