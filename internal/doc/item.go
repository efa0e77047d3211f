// Package doc holds the item model for a reconstructed document page.
package doc

import (
	"fmt"
	"math"
	"strings"

	"snyfter/pkg/geometry"
)

// DefaultFontSize is substituted when an item arrives without a usable
// font size (document units).
const DefaultFontSize = 12.0

// ItemType classifies a positioned text fragment. The type drives the
// font-size multiplier, the text color, and checkbox special-casing.
type ItemType int

const (
	TypeText ItemType = iota
	TypeTitle
	TypeHeader
	TypeTable
	TypeFormLabel
	TypeFormField
	TypeCheckbox
)

func (t ItemType) String() string {
	switch t {
	case TypeText:
		return "Text"
	case TypeTitle:
		return "Title"
	case TypeHeader:
		return "Header"
	case TypeTable:
		return "Table"
	case TypeFormLabel:
		return "FormLabel"
	case TypeFormField:
		return "FormField"
	case TypeCheckbox:
		return "Checkbox"
	default:
		return "Unknown"
	}
}

// DocumentItem is one positioned text fragment in document space.
// Content is never mutated; user edits live in State.ItemTextOverrides.
type DocumentItem struct {
	ID       string
	BBox     geometry.Rect
	Content  string
	FontSize float64
	Bold     bool
	Italic   bool
	Type     ItemType
}

// ItemID derives a stable identifier from the page index and the rounded
// bbox position, so offsets and overrides survive a re-render of the same
// page region.
func ItemID(page int, bbox geometry.Rect) string {
	return fmt.Sprintf("item_%d_%d_%d",
		page,
		int(math.Round(bbox.Left*1000)),
		int(math.Round(bbox.Top*1000)))
}

// NewItem builds a DocumentItem, normalizing a negative bbox height to its
// absolute value and assigning the deterministic ID.
func NewItem(page int, bbox geometry.Rect, content string, fontSize float64, bold, italic bool, typ ItemType) DocumentItem {
	bbox.Height = math.Abs(bbox.Height)
	return DocumentItem{
		ID:       ItemID(page, bbox),
		BBox:     bbox,
		Content:  content,
		FontSize: fontSize,
		Bold:     bold,
		Italic:   italic,
		Type:     typ,
	}
}

// Valid reports whether the item can be rendered at all: a finite bbox and
// non-blank content. Invalid items are dropped by the decoder, never fatal.
func (it DocumentItem) Valid() bool {
	return it.BBox.IsFinite() && strings.TrimSpace(it.Content) != ""
}

// EffectiveFontSize returns the item's font size, or the default when the
// upstream value is missing or nonsense.
func (it DocumentItem) EffectiveFontSize() float64 {
	if it.FontSize <= 0 || math.IsNaN(it.FontSize) || math.IsInf(it.FontSize, 0) {
		return DefaultFontSize
	}
	return it.FontSize
}

// Checked reports whether a checkbox item should render its check mark,
// decided by scanning the content for any checked glyph.
func (it DocumentItem) Checked() bool {
	return strings.ContainsAny(it.Content, "xX") ||
		strings.ContainsRune(it.Content, '☑') ||
		strings.ContainsRune(it.Content, '■')
}
