package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"snyfter/pkg/geometry"
)

// Painter is the production Surface: software rendering into an
// *image.RGBA through the font cache, with clipboard and cursor delegated
// to callbacks supplied by the owning widget.
type Painter struct {
	dst    *image.RGBA
	fonts  *FontCache
	cursor Cursor

	// OnCopy performs the platform clipboard write; nil means clipboard
	// unavailable.
	OnCopy func(text string) bool
}

// NewPainter creates a painter drawing through the given font cache.
func NewPainter(fonts *FontCache) *Painter {
	return &Painter{fonts: fonts}
}

// Begin points the painter at a fresh frame buffer and resets the frame's
// cursor request.
func (p *Painter) Begin(dst *image.RGBA) {
	p.dst = dst
	p.cursor = CursorDefault
}

// Cursor returns the pointer shape requested during the last frame.
func (p *Painter) Cursor() Cursor {
	return p.cursor
}

// FillRect implements Surface. Colors with partial alpha are blended over
// the existing pixels.
func (p *Painter) FillRect(r geometry.Rect, col color.RGBA) {
	if p.dst == nil {
		return
	}
	rect := clipRect(r, p.dst.Bounds())
	if rect.Empty() {
		return
	}
	if col.A == 255 {
		draw.Draw(p.dst, rect, image.NewUniform(col), image.Point{}, draw.Src)
		return
	}
	draw.Draw(p.dst, rect, image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: col.A}), image.Point{}, draw.Over)
}

// StrokeRect implements Surface, outlining with pixel runs the way the
// raster canvas draws overlay rectangles.
func (p *Painter) StrokeRect(r geometry.Rect, col color.RGBA, thickness float64) {
	if p.dst == nil {
		return
	}
	t := int(thickness)
	if t < 1 {
		t = 1
	}
	x1, y1 := int(r.Left), int(r.Top)
	x2, y2 := int(r.Right()), int(r.Bottom())
	bounds := p.dst.Bounds()

	for i := 0; i < t; i++ {
		for x := x1; x <= x2; x++ {
			setClipped(p.dst, bounds, x, y1+i, col)
			setClipped(p.dst, bounds, x, y2-i, col)
		}
		for y := y1; y <= y2; y++ {
			setClipped(p.dst, bounds, x1+i, y, col)
			setClipped(p.dst, bounds, x2-i, y, col)
		}
	}
}

// DrawLine implements Surface using Bresenham's algorithm with a square
// brush.
func (p *Painter) DrawLine(a, b geometry.Point2D, col color.RGBA, thickness float64) {
	if p.dst == nil {
		return
	}
	t := int(thickness)
	if t < 1 {
		t = 1
	}
	bounds := p.dst.Bounds()

	x1, y1 := int(a.X), int(a.Y)
	x2, y2 := int(b.X), int(b.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		for oy := -t / 2; oy <= t/2; oy++ {
			for ox := -t / 2; ox <= t/2; ox++ {
				setClipped(p.dst, bounds, x1+ox, y1+oy, col)
			}
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawText implements Surface: each line is drawn at its baseline, stacked
// by the face's line height.
func (p *Painter) DrawText(pos geometry.Point2D, lines []string, spec FontSpec, col color.RGBA) {
	if p.dst == nil || len(lines) == 0 {
		return
	}
	face := p.fonts.Face(spec)
	ascent := p.fonts.Ascent(spec)
	lineHeight := p.fonts.LineHeight(spec)

	d := font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	for i, line := range lines {
		y := pos.Y + ascent + float64(i)*lineHeight
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(pos.X * 64),
			Y: fixed.Int26_6(y * 64),
		}
		d.DrawString(line)
	}
}

// SetCursor implements Surface.
func (p *Painter) SetCursor(c Cursor) {
	p.cursor = c
}

// CopyToClipboard implements Surface.
func (p *Painter) CopyToClipboard(text string) bool {
	if p.OnCopy == nil {
		return false
	}
	return p.OnCopy(text)
}

func clipRect(r geometry.Rect, bounds image.Rectangle) image.Rectangle {
	return image.Rect(int(r.Left), int(r.Top), int(r.Right()), int(r.Bottom())).Intersect(bounds)
}

func setClipped(dst *image.RGBA, bounds image.Rectangle, x, y int, col color.RGBA) {
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		dst.SetRGBA(x, y, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
