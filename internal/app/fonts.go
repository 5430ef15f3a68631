package app

import (
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"richtext/pkg/rtdoc"
)

type fontKey struct {
	size   int // tenths of a pixel
	bold   bool
	italic bool
	mono   bool
}

// fontBank resolves descriptors to Go font faces. Families other than the
// monospaced ones render with Go Regular.
type fontBank struct {
	sans  [4]*opentype.Font
	mono  [4]*opentype.Font
	cache map[fontKey]font.Face
}

func newFontBank() *fontBank {
	bank := &fontBank{cache: map[fontKey]font.Face{}}
	for i, ttf := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
		if f, err := opentype.Parse(ttf); err == nil {
			bank.sans[i] = f
		}
	}
	for i, ttf := range [][]byte{gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF} {
		if f, err := opentype.Parse(ttf); err == nil {
			bank.mono[i] = f
		}
	}
	return bank
}

func isMonoFamily(family string) bool {
	f := strings.ToLower(family)
	for _, m := range []string{"mono", "menlo", "courier", "consolas", "code"} {
		if strings.Contains(f, m) {
			return true
		}
	}
	return false
}

// face returns the face for a at the given UI scale.
func (b *fontBank) face(a rtdoc.StyleAttributes, scale float64) font.Face {
	f := a.Font.Resolve()
	key := fontKey{
		size:   int(math.Round(f.Size * scale * 10)),
		bold:   f.IsBold(),
		italic: f.IsItalic(),
		mono:   f.Origin == rtdoc.OriginNamed && isMonoFamily(f.Family),
	}
	return b.faceFor(key)
}

func (b *fontBank) uiFace(size int, scale float64) font.Face {
	return b.faceFor(fontKey{size: int(math.Round(float64(size) * scale * 10))})
}

func (b *fontBank) faceFor(key fontKey) font.Face {
	if f, ok := b.cache[key]; ok {
		return f
	}
	idx := 0
	if key.bold {
		idx |= 1
	}
	if key.italic {
		idx |= 2
	}
	base := b.sans[idx]
	if key.mono {
		base = b.mono[idx]
	}
	if base == nil || key.size <= 0 {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{Size: float64(key.size) / 10, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	b.cache[key] = face
	return face
}

func measureString(face font.Face, s string) int {
	if face == nil || s == "" {
		return 0
	}
	return max((int(font.MeasureString(face, s))+32)>>6, 0)
}
