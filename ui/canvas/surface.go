package canvas

import (
	"image/color"

	"snyfter/pkg/geometry"
)

// Cursor is the pointer shape requested by the frame.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// Surface is the render capability the engine draws through. Separating it
// from the Fyne widget keeps transform, layout, and interaction logic
// testable without a display.
type Surface interface {
	// FillRect fills a screen-space rectangle.
	FillRect(r geometry.Rect, col color.RGBA)
	// StrokeRect outlines a screen-space rectangle.
	StrokeRect(r geometry.Rect, col color.RGBA, thickness float64)
	// DrawLine draws a straight line segment.
	DrawLine(a, b geometry.Point2D, col color.RGBA, thickness float64)
	// DrawText paints laid-out lines with their top-left corner at pos.
	DrawText(pos geometry.Point2D, lines []string, spec FontSpec, col color.RGBA)
	// SetCursor requests a pointer shape for this frame.
	SetCursor(c Cursor)
	// CopyToClipboard places text on the system clipboard. A false return
	// means the copy failed and the toast should be skipped.
	CopyToClipboard(text string) bool
}
