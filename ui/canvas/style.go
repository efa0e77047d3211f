package canvas

import (
	"image/color"

	"snyfter/internal/doc"
	"snyfter/pkg/colorutil"
)

// Legible point-size bounds for on-screen glyphs, independent of document
// scale.
const (
	minFontPt = 8.0
	maxFontPt = 24.0
)

// FontSpec is a resolved on-screen font: point size plus style flags.
type FontSpec struct {
	Size   float64
	Bold   bool
	Italic bool
}

// typeStyle holds the per-item-type rendering rules in one table instead
// of conditionals scattered across call sites.
type typeStyle struct {
	sizeFactor float64
	color      color.RGBA
}

var typeStyles = map[doc.ItemType]typeStyle{
	doc.TypeText:      {1.0, colorutil.Ink},
	doc.TypeTitle:     {1.2, colorutil.Accent},
	doc.TypeHeader:    {1.1, colorutil.Accent},
	doc.TypeTable:     {1.0, colorutil.Ink},
	doc.TypeFormLabel: {1.0, colorutil.LabelBlue},
	doc.TypeFormField: {0.95, colorutil.FieldGray},
	doc.TypeCheckbox:  {1.0, colorutil.CheckInk},
}

// ResolveStyle computes the font spec and text color for an item at the
// given document-to-screen scale. A search match overrides the type color
// uniformly.
func ResolveStyle(it doc.DocumentItem, scale float64, isMatch bool) (FontSpec, color.RGBA) {
	ts, ok := typeStyles[it.Type]
	if !ok {
		ts = typeStyles[doc.TypeText]
	}

	size := it.EffectiveFontSize() * scale
	if size < minFontPt {
		size = minFontPt
	}
	if size > maxFontPt {
		size = maxFontPt
	}
	size *= ts.sizeFactor

	col := ts.color
	if isMatch {
		col = colorutil.MatchOrange
	}

	return FontSpec{Size: size, Bold: it.Bold, Italic: it.Italic}, col
}
