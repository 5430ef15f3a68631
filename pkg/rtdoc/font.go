package rtdoc

import "math"

// FontOrigin records how a descriptor was constructed.
type FontOrigin uint8

const (
	OriginSystem FontOrigin = iota
	OriginNamed
	OriginTextStyle
)

type TextStyle uint8

const (
	TextStyleBody TextStyle = iota
	TextStyleLargeTitle
	TextStyleTitle
	TextStyleTitle2
	TextStyleTitle3
	TextStyleHeadline
	TextStyleSubheadline
	TextStyleCallout
	TextStyleFootnote
	TextStyleCaption
	TextStyleCaption2
)

var textStyleNames = []string{
	"body", "largeTitle", "title", "title2", "title3", "headline",
	"subheadline", "callout", "footnote", "caption", "caption2",
}

var textStyleSizes = []float64{17, 34, 28, 22, 20, 17, 15, 16, 13, 12, 11}

func (s TextStyle) String() string {
	if int(s) < len(textStyleNames) {
		return textStyleNames[s]
	}
	return textStyleNames[TextStyleBody]
}

// ParseTextStyle maps a style name to its TextStyle. Unknown names report false.
func ParseTextStyle(name string) (TextStyle, bool) {
	for i, n := range textStyleNames {
		if n == name {
			return TextStyle(i), true
		}
	}
	return TextStyleBody, false
}

// DefaultSize is the point size a text style resolves to.
func (s TextStyle) DefaultSize() float64 {
	if int(s) < len(textStyleSizes) {
		return textStyleSizes[s]
	}
	return textStyleSizes[TextStyleBody]
}

// Weight follows the platform numeric scale where zero is regular.
type Weight float64

const (
	WeightUltraLight Weight = -0.8
	WeightThin       Weight = -0.6
	WeightLight      Weight = -0.4
	WeightRegular    Weight = 0
	WeightMedium     Weight = 0.23
	WeightSemibold   Weight = 0.3
	WeightBold       Weight = 0.4
	WeightHeavy      Weight = 0.56
	WeightBlack      Weight = 0.62
)

type Width float64

const (
	WidthCompressed Width = -0.3
	WidthCondensed  Width = -0.2
	WidthStandard   Width = 0
	WidthExpanded   Width = 0.2
)

type Traits uint8

const (
	TraitBold Traits = 1 << iota
	TraitItalic
)

// FontDescriptor is an immutable font description. Every transform returns a
// new value.
type FontDescriptor struct {
	Origin FontOrigin
	Family string
	Style  TextStyle
	Size   float64
	Weight Weight
	Width  Width
	Traits Traits
}

const DefaultBodySize = 17

func SystemFont(size float64, weight Weight) FontDescriptor {
	f := FontDescriptor{Origin: OriginSystem, Family: "system", Size: size, Weight: weight}
	if weight >= WeightBold {
		f.Traits |= TraitBold
	}
	return f
}

func NamedFont(family string, size float64) FontDescriptor {
	return FontDescriptor{Origin: OriginNamed, Family: family, Size: size}
}

// TextStyleFont returns the descriptor for a dynamic text style. Headline is
// semibold, as on the platform it mirrors.
func TextStyleFont(style TextStyle) FontDescriptor {
	f := FontDescriptor{Origin: OriginTextStyle, Family: "system", Style: style, Size: style.DefaultSize()}
	if style == TextStyleHeadline {
		f.Weight = WeightSemibold
	}
	return f
}

func DefaultBodyFont() FontDescriptor {
	return TextStyleFont(TextStyleBody)
}

func (f FontDescriptor) Valid() bool {
	return f.Size > 0 && !math.IsNaN(f.Size) && !math.IsInf(f.Size, 0)
}

// Resolve returns f, or the body font when f is incomplete.
func (f FontDescriptor) Resolve() FontDescriptor {
	if !f.Valid() {
		return DefaultBodyFont()
	}
	return f
}

func (f FontDescriptor) WithWeight(w Weight) FontDescriptor {
	f.Weight = w
	return f
}

func (f FontDescriptor) WithWidth(w Width) FontDescriptor {
	f.Width = w
	return f
}

func (f FontDescriptor) WithSize(pt float64) FontDescriptor {
	f.Size = pt
	return f
}

func (f FontDescriptor) WithFamily(family string) FontDescriptor {
	f.Origin = OriginNamed
	f.Family = family
	return f
}

func (f FontDescriptor) HasTrait(t Traits) bool {
	return f.Traits&t == t
}

// IsBold checks the symbolic trait first; some fonts expose bold only there.
func (f FontDescriptor) IsBold() bool {
	return f.HasTrait(TraitBold) || f.Weight >= WeightBold
}

func (f FontDescriptor) IsItalic() bool {
	return f.HasTrait(TraitItalic)
}

// AddingTrait unions t into the trait set. Adding italic keeps the current
// weight (bold included); adding bold keeps italic and repairs the weight.
func (f FontDescriptor) AddingTrait(t Traits) FontDescriptor {
	if t&TraitBold != 0 {
		f.Traits |= TraitBold
		if f.Weight < WeightBold {
			f.Weight = WeightBold
		}
	}
	if t&TraitItalic != 0 {
		if f.IsBold() {
			f.Traits |= TraitBold
		}
		f.Traits |= TraitItalic
	}
	return f
}

// RemovingTrait subtracts t. Removing bold resets the weight to regular so a
// bold weight cannot resurrect the trait.
func (f FontDescriptor) RemovingTrait(t Traits) FontDescriptor {
	if t&TraitBold != 0 {
		f.Traits &^= TraitBold
		if f.Weight >= WeightBold {
			f.Weight = WeightRegular
		}
	}
	if t&TraitItalic != 0 {
		f.Traits &^= TraitItalic
	}
	return f
}

func (f FontDescriptor) Equal(o FontDescriptor) bool {
	return f.Origin == o.Origin &&
		f.Family == o.Family &&
		f.Style == o.Style &&
		floatEqual(f.Size, o.Size) &&
		f.Weight == o.Weight &&
		f.Width == o.Width &&
		f.Traits == o.Traits
}

const floatEpsilon = 1e-9

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < floatEpsilon
}
