package canvas

import (
	"fmt"
	"image/color"
	"time"

	"snyfter/internal/doc"
	"snyfter/pkg/colorutil"
	"snyfter/pkg/geometry"
)

const (
	// rightMargin keeps wrapped text off the panel's right edge.
	rightMargin = 20.0

	// toastPreviewRunes bounds the copied-text preview in the toast.
	toastPreviewRunes = 50

	statusFontPt = 12.0
	hintFontPt   = 10.0
)

// FrameResult reports what one frame produced, for the owning widget to
// fold back into application state.
type FrameResult struct {
	Rects   []ItemRect
	Outcome Outcome
	Copied  string // non-empty if a clipboard copy succeeded this frame
}

// Renderer orchestrates one synchronous frame: transform, layout, paint,
// then input resolution against the same rects.
type Renderer struct {
	cfg     Config
	measure Measurer
	ctl     Controller
}

// NewRenderer creates a renderer with the given policy and text metrics.
func NewRenderer(cfg Config, m Measurer) *Renderer {
	return &Renderer{cfg: cfg, measure: m}
}

// Config returns the renderer's policy set.
func (r *Renderer) Config() Config {
	return r.cfg
}

// RenderFrame draws the document state through the surface and resolves
// the frame's input. Item rects computed for painting are reused verbatim
// for hit-testing.
func (r *Renderer) RenderFrame(surface Surface, state *doc.State, view View, in Input) FrameResult {
	view.Zoom = ClampZoom(view.Zoom)
	scale := view.Scale(r.cfg)

	// Page background.
	pageRect := view.RectToScreen(geometry.NewRect(0, 0, state.PageSize.Width, state.PageSize.Height), r.cfg)
	surface.FillRect(pageRect, colorutil.PageGray)

	rects := make([]ItemRect, 0, len(state.Items))
	for _, it := range state.Items {
		rects = append(rects, r.paintItem(surface, state, view, scale, it))
	}

	r.paintColumnGuides(surface, state, view)

	// Interaction runs against exactly the rects painted above.
	out := r.ctl.Resolve(rects, state, in, view, r.cfg)
	surface.SetCursor(out.Cursor)

	copied := ""
	if out.CopyText != "" {
		if surface.CopyToClipboard(out.CopyText) {
			r.ctl.NoteCopied(out.CopyText, in.Now)
			copied = out.CopyText
		}
	}

	if out.HoveredID != "" {
		r.paintHoverOutline(surface, rects, out.HoveredID)
	}

	r.paintStatus(surface, state, out.HoveredID != "")
	r.paintToast(surface, view, in)

	return FrameResult{Rects: rects, Outcome: out, Copied: copied}
}

// paintItem styles, lays out, and paints one item, returning the screen
// rect used for both drawing and hit-testing.
func (r *Renderer) paintItem(surface Surface, state *doc.State, view View, scale float64, it doc.DocumentItem) ItemRect {
	isMatch := state.IsMatch(it.ID)
	spec, col := ResolveStyle(it, scale, isMatch)
	text := state.EffectiveText(it)

	base := view.RectToScreen(it.BBox, r.cfg)
	nudge := state.ItemOffset(it.ID)
	base = base.Translate(nudge.X, nudge.Y)

	if it.Type == doc.TypeCheckbox {
		rect := geometry.NewRect(base.Left, base.Top, spec.Size*0.8, spec.Size*0.8)
		r.paintCheckbox(surface, rect, col, it.Checked())
		return ItemRect{Item: it, Rect: rect}
	}

	available := view.PanelSize.Width - base.Left - rightMargin
	layout := Layout(text, spec, layoutWidth(text, base.Width, available, r.cfg), r.measure, r.cfg)

	rect := geometry.NewRect(base.Left, base.Top, layout.Width, layout.Height)
	if rect.Height == 0 {
		// Pre-measurement fallback: the source bbox keeps empty-looking
		// fragments clickable.
		rect.Height = base.Height
	}

	if isMatch {
		surface.FillRect(rect, colorutil.Highlight)
	}
	surface.DrawText(geometry.NewPoint2D(rect.Left, rect.Top), layout.Lines, spec, col)

	return ItemRect{Item: it, Rect: rect}
}

// paintCheckbox draws the fixed square glyph, with the three-segment check
// mark when the content marks it checked.
func (r *Renderer) paintCheckbox(surface Surface, rect geometry.Rect, col color.RGBA, checked bool) {
	surface.StrokeRect(rect, col, 1.5)
	if !checked {
		return
	}
	size := rect.Width
	p1 := geometry.NewPoint2D(rect.Left+size*0.2, rect.Top+size*0.5)
	p2 := geometry.NewPoint2D(rect.Left+size*0.4, rect.Bottom()-size*0.3)
	p3 := geometry.NewPoint2D(rect.Right()-size*0.2, rect.Top+size*0.3)
	surface.DrawLine(p1, p2, col, 2)
	surface.DrawLine(p2, p3, col, 2)
}

// paintColumnGuides draws subtle vertical separators for multi-column
// pages.
func (r *Renderer) paintColumnGuides(surface Surface, state *doc.State, view View) {
	if state.ColumnCount <= 1 || len(state.ColumnBoundaries) == 0 {
		return
	}
	for _, boundary := range state.ColumnBoundaries {
		top := view.ToScreen(geometry.NewPoint2D(boundary, 0), r.cfg)
		bottom := view.ToScreen(geometry.NewPoint2D(boundary, state.PageSize.Height), r.cfg)
		surface.DrawLine(top, bottom, colorutil.GuideBlue, 1)
	}
}

// paintHoverOutline marks the hovered item with a padded outline.
func (r *Renderer) paintHoverOutline(surface Surface, rects []ItemRect, id string) {
	for i := len(rects) - 1; i >= 0; i-- {
		if rects[i].Item.ID == id {
			surface.StrokeRect(rects[i].Rect.Expand(r.cfg.HitPadding), colorutil.HoverBlue, 1)
			return
		}
	}
}

// paintStatus draws the status line and, while hovering, the hint line.
func (r *Renderer) paintStatus(surface Surface, state *doc.State, hovering bool) {
	status := fmt.Sprintf("%d items | Zoom: %.0f%%", len(state.Items), state.Zoom*100)
	if state.ColumnCount > 1 {
		status += fmt.Sprintf(" | %d columns", state.ColumnCount)
	}

	col := colorutil.StatusGray
	if hovering {
		col = colorutil.HoverGray
	}
	surface.DrawText(geometry.NewPoint2D(10, 10), []string{status}, FontSpec{Size: statusFontPt}, col)

	if hovering {
		hint := "Click to copy • Drag to pan • Cmd+scroll to zoom"
		surface.DrawText(geometry.NewPoint2D(10, 25), []string{hint}, FontSpec{Size: hintFontPt}, colorutil.HintGray)
	}
}

// paintToast shows the transient "copied" notification while its display
// window is open.
func (r *Renderer) paintToast(surface Surface, view View, in Input) {
	text := r.ctl.Toast(in.Now)
	if text == "" {
		return
	}
	preview := []rune(text)
	if len(preview) > toastPreviewRunes {
		text = string(preview[:toastPreviewRunes]) + "..."
	}
	msg := "Copied: " + text

	spec := FontSpec{Size: statusFontPt}
	width := r.measure.MeasureString(spec, msg)
	pos := geometry.NewPoint2D(
		view.PanelSize.Width/2-width/2,
		view.PanelSize.Height-30,
	)
	surface.DrawText(pos, []string{msg}, spec, colorutil.Teal)
}

// Toast exposes the active toast text for the widget's repaint scheduling.
func (r *Renderer) Toast(now time.Time) string {
	return r.ctl.Toast(now)
}
