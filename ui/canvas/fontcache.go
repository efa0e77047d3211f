package canvas

import (
	"log"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontCache resolves FontSpecs to opentype faces built from the embedded
// Go fonts and memoizes them by style and half-point size. It implements
// Measurer, which is what lets layout and hit-rect sizing run headless.
type FontCache struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face

	regular    *opentype.Font
	bold       *opentype.Font
	italic     *opentype.Font
	boldItalic *opentype.Font
}

type faceKey struct {
	bold    bool
	italic  bool
	halfPts int
}

// NewFontCache parses the embedded font programs once.
func NewFontCache() *FontCache {
	fc := &FontCache{faces: make(map[faceKey]font.Face)}
	fc.regular = mustParse(goregular.TTF)
	fc.bold = mustParse(gobold.TTF)
	fc.italic = mustParse(goitalic.TTF)
	fc.boldItalic = mustParse(gobolditalic.TTF)
	return fc
}

func mustParse(ttf []byte) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		// The embedded gofont programs are known-good; this cannot happen
		// outside a corrupted build.
		log.Fatalf("parse embedded font: %v", err)
	}
	return f
}

// Face returns the cached face for a spec, creating it on first use.
func (fc *FontCache) Face(spec FontSpec) font.Face {
	key := faceKey{
		bold:    spec.Bold,
		italic:  spec.Italic,
		halfPts: int(math.Round(spec.Size * 2)),
	}
	if key.halfPts < 1 {
		key.halfPts = 1
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if face, ok := fc.faces[key]; ok {
		return face
	}

	src := fc.regular
	switch {
	case spec.Bold && spec.Italic:
		src = fc.boldItalic
	case spec.Bold:
		src = fc.bold
	case spec.Italic:
		src = fc.italic
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.halfPts) / 2,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("font face %v: %v", key, err)
		face = basicfont.Face7x13
	}
	fc.faces[key] = face
	return face
}

// MeasureString implements Measurer.
func (fc *FontCache) MeasureString(spec FontSpec, s string) float64 {
	d := font.Drawer{Face: fc.Face(spec)}
	return fixedToFloat(d.MeasureString(s))
}

// LineHeight implements Measurer.
func (fc *FontCache) LineHeight(spec FontSpec) float64 {
	m := fc.Face(spec).Metrics()
	return fixedToFloat(m.Ascent + m.Descent)
}

// Ascent returns the baseline offset for drawing the first line.
func (fc *FontCache) Ascent(spec FontSpec) float64 {
	return fixedToFloat(fc.Face(spec).Metrics().Ascent)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
