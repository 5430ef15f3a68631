package rtdoc

import "image"

type StyleKey uint8

const (
	KeyFont StyleKey = iota
	KeyUnderline
	KeyStrikethrough
	KeyForeground
	KeyBackground
	KeyBaselineOffset
	KeyKerning
	KeyTracking
	KeyAttachment
	keyCount
)

var styleKeyNames = [...]string{
	"font", "underline", "strikethrough", "foreground", "background",
	"baselineOffset", "kerning", "tracking", "attachment",
}

func (k StyleKey) String() string {
	if k < keyCount {
		return styleKeyNames[k]
	}
	return "unknown"
}

// KeySet is a bit set of style keys.
type KeySet uint16

const AllKeys KeySet = 1<<keyCount - 1

func (s KeySet) Has(k StyleKey) bool { return s&(1<<k) != 0 }

func (s KeySet) With(k StyleKey) KeySet { return s | 1<<k }

func (s KeySet) Without(k StyleKey) KeySet { return s &^ (1 << k) }

type LineStyle uint8

const (
	LineNone LineStyle = iota
	LineSingle
)

// Attachment is an inline image carried by a single placeholder rune.
type Attachment struct {
	Image  image.Image
	Width  int
	Height int
}

// ObjectReplacement is the placeholder rune attachment runs are anchored to.
const ObjectReplacement = '\uFFFC'

const (
	ScriptScale       = 0.75
	SuperscriptOffset = 0.4
	SubscriptOffset   = -0.3
)

// StyleAttributes is the attribute map owned by one run. Zero fields mean
// "unset"; Font resolves to the body font.
type StyleAttributes struct {
	Font           FontDescriptor
	Underline      LineStyle
	Strikethrough  LineStyle
	Foreground     Color
	Background     Color
	BaselineOffset float64
	Kerning        float64
	Tracking       float64
	Attachment     *Attachment
}

func DefaultAttributes() StyleAttributes {
	return StyleAttributes{Font: DefaultBodyFont()}
}

// Normalize fills incomplete attributes with documented defaults.
func (a StyleAttributes) Normalize() StyleAttributes {
	a.Font = a.Font.Resolve()
	return a
}

func (a StyleAttributes) InScript() bool {
	return a.BaselineOffset != 0
}

// LogicalSize is the point size the user sees in the toolbar: the rendered
// size undone by the script scale when in script mode.
func (a StyleAttributes) LogicalSize() float64 {
	f := a.Font.Resolve()
	if a.InScript() {
		return f.Size / ScriptScale
	}
	return f.Size
}

func (a StyleAttributes) Get(k StyleKey) any {
	switch k {
	case KeyFont:
		return a.Font
	case KeyUnderline:
		return a.Underline
	case KeyStrikethrough:
		return a.Strikethrough
	case KeyForeground:
		return a.Foreground
	case KeyBackground:
		return a.Background
	case KeyBaselineOffset:
		return a.BaselineOffset
	case KeyKerning:
		return a.Kerning
	case KeyTracking:
		return a.Tracking
	case KeyAttachment:
		return a.Attachment
	}
	return nil
}

// Set returns a copy with k replaced. A value of the wrong type leaves a
// unchanged and reports false.
func (a StyleAttributes) Set(k StyleKey, v any) (StyleAttributes, bool) {
	switch k {
	case KeyFont:
		f, ok := v.(FontDescriptor)
		if !ok {
			return a, false
		}
		a.Font = f
	case KeyUnderline, KeyStrikethrough:
		ls, ok := v.(LineStyle)
		if !ok {
			return a, false
		}
		if k == KeyUnderline {
			a.Underline = ls
		} else {
			a.Strikethrough = ls
		}
	case KeyForeground, KeyBackground:
		c, ok := v.(Color)
		if !ok {
			return a, false
		}
		if k == KeyForeground {
			a.Foreground = c
		} else {
			a.Background = c
		}
	case KeyBaselineOffset, KeyKerning, KeyTracking:
		f, ok := v.(float64)
		if !ok {
			return a, false
		}
		switch k {
		case KeyBaselineOffset:
			a.BaselineOffset = f
		case KeyKerning:
			a.Kerning = f
		default:
			a.Tracking = f
		}
	case KeyAttachment:
		att, ok := v.(*Attachment)
		if !ok {
			return a, false
		}
		a.Attachment = att
	default:
		return a, false
	}
	return a, true
}

func (a StyleAttributes) EqualKey(b StyleAttributes, k StyleKey) bool {
	switch k {
	case KeyFont:
		return a.Font.Resolve().Equal(b.Font.Resolve())
	case KeyUnderline:
		return a.Underline == b.Underline
	case KeyStrikethrough:
		return a.Strikethrough == b.Strikethrough
	case KeyForeground:
		return a.Foreground == b.Foreground
	case KeyBackground:
		return a.Background == b.Background
	case KeyBaselineOffset:
		return floatEqual(a.BaselineOffset, b.BaselineOffset)
	case KeyKerning:
		return floatEqual(a.Kerning, b.Kerning)
	case KeyTracking:
		return floatEqual(a.Tracking, b.Tracking)
	case KeyAttachment:
		return a.Attachment == b.Attachment
	}
	return false
}

func (a StyleAttributes) Equal(b StyleAttributes) bool {
	for k := StyleKey(0); k < keyCount; k++ {
		if !a.EqualKey(b, k) {
			return false
		}
	}
	return true
}
