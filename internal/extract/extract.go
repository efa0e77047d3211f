// Package extract is the shim around the external document-analysis
// service: it launches the extractor process, decodes its JSON output into
// the item model, and tolerates the malformed records real extractions
// produce.
package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"snyfter/internal/doc"
	"snyfter/pkg/geometry"
)

// Letter-size fallback used when the extractor reports no page dimensions.
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
)

// Document is a decoded extraction snapshot: page metadata plus items
// grouped by 1-based page number, already normalized to top-left origin.
type Document struct {
	SourceFile  string
	Pages       []PageInfo
	itemsByPage map[int][]doc.DocumentItem
}

// PageInfo describes one page of the source document.
type PageInfo struct {
	Number           int
	Size             geometry.Size
	ColumnCount      int
	ColumnBoundaries []float64
}

// PageCount returns the number of pages in the snapshot.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Page returns metadata for the given 1-based page, falling back to a
// default Letter page when out of range.
func (d *Document) Page(number int) PageInfo {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return PageInfo{
		Number: number,
		Size:   geometry.NewSize(DefaultPageWidth, DefaultPageHeight),
	}
}

// Items returns the items of the given 1-based page in paint order.
func (d *Document) Items(page int) []doc.DocumentItem {
	return d.itemsByPage[page]
}

// ItemCount returns the total number of items across all pages.
func (d *Document) ItemCount() int {
	n := 0
	for _, items := range d.itemsByPage {
		n += len(items)
	}
	return n
}

// rawDocument mirrors the extractor's JSON schema.
type rawDocument struct {
	Metadata rawMetadata `json:"metadata"`
	Pages    []rawPage   `json:"pages"`
	Items    []rawItem   `json:"items"`
}

type rawMetadata struct {
	SourceFile string `json:"source_file"`
	FileName   string `json:"file_name"`
	DocumentID string `json:"document_id"`
}

type rawPage struct {
	PageNumber       int       `json:"page_number"`
	Width            float64   `json:"width"`
	Height           float64   `json:"height"`
	Columns          int       `json:"columns"`
	ColumnBoundaries []float64 `json:"column_boundaries"`
}

type rawItem struct {
	Index      int           `json:"index"`
	Type       string        `json:"type"`
	Content    string        `json:"content"`
	Text       string        `json:"text"`
	BBox       *rawBBox      `json:"bbox"`
	Page       int           `json:"page"`
	Attributes rawAttributes `json:"attributes"`
}

type rawBBox struct {
	Left        float64 `json:"left"`
	Top         float64 `json:"top"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	CoordOrigin string  `json:"coord_origin"`
}

type rawAttributes struct {
	Style   *rawStyle `json:"style"`
	Checked bool      `json:"checked"`
}

type rawStyle struct {
	FontSize float64 `json:"font_size"`
	Bold     bool    `json:"bold"`
	Italic   bool    `json:"italic"`
}

// LoadDocument reads and decodes an extraction JSON file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read extraction output: %w", err)
	}
	return DecodeDocument(data)
}

// DecodeDocument decodes extractor JSON. Malformed items are dropped
// silently per item; a page with no usable metadata falls back to Letter
// size.
func DecodeDocument(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode extraction output: %w", err)
	}

	d := &Document{
		SourceFile:  raw.Metadata.SourceFile,
		itemsByPage: make(map[int][]doc.DocumentItem),
	}

	for _, rp := range raw.Pages {
		info := PageInfo{
			Number:           rp.PageNumber,
			Size:             geometry.NewSize(rp.Width, rp.Height),
			ColumnCount:      rp.Columns,
			ColumnBoundaries: rp.ColumnBoundaries,
		}
		if info.Size.Width <= 0 || !isFinite(info.Size.Width) {
			info.Size.Width = DefaultPageWidth
		}
		if info.Size.Height <= 0 || !isFinite(info.Size.Height) {
			info.Size.Height = DefaultPageHeight
		}
		d.Pages = append(d.Pages, info)
	}
	if len(d.Pages) == 0 {
		d.Pages = []PageInfo{{
			Number: 1,
			Size:   geometry.NewSize(DefaultPageWidth, DefaultPageHeight),
		}}
	}

	for _, ri := range raw.Items {
		item, page, ok := decodeItem(ri, d)
		if !ok {
			continue
		}
		d.itemsByPage[page] = append(d.itemsByPage[page], item)
	}

	// Derive column hints where the extractor didn't provide them.
	for i, p := range d.Pages {
		if p.ColumnCount <= 1 {
			count, bounds := DetectColumns(d.itemsByPage[p.Number])
			d.Pages[i].ColumnCount = count
			d.Pages[i].ColumnBoundaries = bounds
		}
		if d.Pages[i].ColumnCount > 1 {
			SortReadingOrder(d.itemsByPage[p.Number], d.Pages[i].ColumnBoundaries)
		}
	}

	return d, nil
}

// decodeItem maps one raw record to a DocumentItem, applying the origin
// flip and the per-item tolerances. Returns ok=false for records that
// should be skipped.
func decodeItem(ri rawItem, d *Document) (doc.DocumentItem, int, bool) {
	content := ri.Content
	if content == "" {
		content = ri.Text
	}
	if strings.TrimSpace(content) == "" {
		return doc.DocumentItem{}, 0, false
	}
	if ri.BBox == nil {
		return doc.DocumentItem{}, 0, false
	}

	page := ri.Page
	if page <= 0 {
		page = 1
	}

	bbox := geometry.NewRect(ri.BBox.Left, ri.BBox.Top, ri.BBox.Width, math.Abs(ri.BBox.Height))
	if !bbox.IsFinite() || bbox.Width <= 0 {
		return doc.DocumentItem{}, 0, false
	}

	// Canonical item model is top-left origin; flip bottom-left input here
	// so the transform never has to care.
	if strings.Contains(ri.BBox.CoordOrigin, "BOTTOMLEFT") {
		bbox.Top = d.Page(page).Size.Height - bbox.Top
	}

	typ := itemType(ri.Type, content)

	fontSize := 0.0
	bold := false
	italic := false
	if ri.Attributes.Style != nil {
		fontSize = ri.Attributes.Style.FontSize
		bold = ri.Attributes.Style.Bold
		italic = ri.Attributes.Style.Italic
	}

	return doc.NewItem(page, bbox, content, fontSize, bold, italic, typ), page, true
}

// itemType maps the extractor's type tag to an ItemType, then applies the
// form-field heuristics for extractors that don't tag forms themselves.
func itemType(tag, content string) doc.ItemType {
	switch tag {
	case "TitleItem":
		return doc.TypeTitle
	case "SectionHeaderItem":
		return doc.TypeHeader
	case "TableItem":
		return doc.TypeTable
	case "FormLabel":
		return doc.TypeFormLabel
	case "FormField":
		return doc.TypeFormField
	case "Checkbox":
		return doc.TypeCheckbox
	}

	trimmed := strings.TrimSpace(content)
	switch {
	case isCheckboxGlyph(trimmed):
		return doc.TypeCheckbox
	case strings.HasSuffix(trimmed, ":"):
		return doc.TypeFormLabel
	case trimmed != "" && (trimmed == strings.Repeat("_", len(trimmed)) ||
		trimmed == strings.Repeat("-", len(trimmed))):
		return doc.TypeFormField
	}
	return doc.TypeText
}

var checkboxGlyphs = []string{"[ ]", "[X]", "[x]", "☐", "☑", "□", "■", "▢", "▣"}

func isCheckboxGlyph(s string) bool {
	for _, g := range checkboxGlyphs {
		if s == g {
			return true
		}
	}
	return false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
