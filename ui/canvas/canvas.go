package canvas

import (
	"image"
	"image/draw"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"snyfter/internal/doc"
	"snyfter/pkg/colorutil"
	"snyfter/pkg/geometry"
)

// DocumentCanvas is the Fyne widget hosting the overlay engine. It owns
// the raster, translates toolkit events into per-frame Input, and folds
// each frame's Outcome back into the view and the owner's callbacks.
type DocumentCanvas struct {
	widget.BaseWidget

	mu       sync.Mutex
	state    *doc.State
	view     View
	in       Input
	zoomMod  bool
	renderer *Renderer
	painter  *Painter

	raster *fynecanvas.Raster

	lastRects  []ItemRect
	toastTimer *time.Timer

	// OnViewChanged fires after user input moved zoom or pan.
	OnViewChanged func(zoom float64, pan geometry.Point2D)
	// OnItemMoved fires with a screen-space delta for an item dragged in
	// edit mode.
	OnItemMoved func(id string, delta geometry.Point2D)
	// OnCopied fires after item text reached the clipboard.
	OnCopied func(text string)
	// OnItemContext fires on a secondary tap over an item, with its id and
	// current effective text.
	OnItemContext func(id, text string)
}

// NewDocumentCanvas creates the widget. The clipboard may be nil, in which
// case click-to-copy silently does nothing.
func NewDocumentCanvas(fonts *FontCache, clipboard fyne.Clipboard) *DocumentCanvas {
	dc := &DocumentCanvas{
		state:    &doc.State{Zoom: 1.0, PageSize: geometry.NewSize(612, 792)},
		renderer: NewRenderer(DefaultConfig(), fonts),
		painter:  NewPainter(fonts),
	}
	dc.view.Zoom = 1.0
	if clipboard != nil {
		dc.painter.OnCopy = func(text string) bool {
			clipboard.SetContent(text)
			return true
		}
	}
	dc.raster = fynecanvas.NewRaster(dc.drawFrame)
	dc.raster.ScaleMode = fynecanvas.ImageScalePixels
	dc.ExtendBaseWidget(dc)
	return dc
}

// SetState replaces the document snapshot the canvas draws. The snapshot's
// zoom and pan seed the view so programmatic changes (toolbar buttons,
// reset) win over stale widget state.
func (dc *DocumentCanvas) SetState(state *doc.State) {
	if state == nil {
		return
	}
	dc.mu.Lock()
	dc.state = state
	dc.view.PageSize = state.PageSize
	dc.view.Zoom = ClampZoom(state.Zoom)
	dc.view.Pan = state.Offset
	dc.mu.Unlock()
	dc.Refresh()
}

// SetZoomModifier tells the canvas whether the zoom chord key is held.
// Fyne scroll events carry no modifier state, so the window tracks it
// from key events.
func (dc *DocumentCanvas) SetZoomModifier(held bool) {
	dc.mu.Lock()
	dc.zoomMod = held
	dc.mu.Unlock()
}

// View returns the current view parameters.
func (dc *DocumentCanvas) View() View {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.view
}

// ZoomIn steps zoom up one notch.
func (dc *DocumentCanvas) ZoomIn() {
	dc.stepZoom(true)
}

// ZoomOut steps zoom down one notch.
func (dc *DocumentCanvas) ZoomOut() {
	dc.stepZoom(false)
}

func (dc *DocumentCanvas) stepZoom(in bool) {
	dc.mu.Lock()
	dc.view.Zoom = StepZoom(dc.view.Zoom, in)
	zoom, pan := dc.view.Zoom, dc.view.Pan
	dc.mu.Unlock()
	if dc.OnViewChanged != nil {
		dc.OnViewChanged(zoom, pan)
	}
	dc.Refresh()
}

// ResetView restores default zoom and clears the pan.
func (dc *DocumentCanvas) ResetView() {
	dc.mu.Lock()
	dc.view.Zoom = 1.0
	dc.view.Pan = geometry.Point2D{}
	dc.mu.Unlock()
	if dc.OnViewChanged != nil {
		dc.OnViewChanged(1.0, geometry.Point2D{})
	}
	dc.Refresh()
}

// Refresh redraws the raster.
func (dc *DocumentCanvas) Refresh() {
	dc.raster.Refresh()
	dc.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (dc *DocumentCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dc.raster)
}

// MinSize implements fyne.Widget.
func (dc *DocumentCanvas) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Cursor implements desktop.Cursorable using the shape the last frame
// requested.
func (dc *DocumentCanvas) Cursor() desktop.Cursor {
	if dc.painter.Cursor() == CursorPointer {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

// MouseIn implements desktop.Hoverable.
func (dc *DocumentCanvas) MouseIn(ev *desktop.MouseEvent) {
	dc.setPointer(ev.Position, true)
}

// MouseMoved implements desktop.Hoverable.
func (dc *DocumentCanvas) MouseMoved(ev *desktop.MouseEvent) {
	dc.setPointer(ev.Position, true)
}

// MouseOut implements desktop.Hoverable.
func (dc *DocumentCanvas) MouseOut() {
	dc.setPointer(fyne.Position{}, false)
}

func (dc *DocumentCanvas) setPointer(pos fyne.Position, has bool) {
	dc.mu.Lock()
	dc.in.Pointer = geometry.NewPoint2D(float64(pos.X), float64(pos.Y))
	dc.in.HasPointer = has
	dc.mu.Unlock()
	dc.raster.Refresh()
}

// Tapped implements fyne.Tappable: a click copies the item under the
// pointer.
func (dc *DocumentCanvas) Tapped(ev *fyne.PointEvent) {
	dc.mu.Lock()
	dc.in.Pointer = geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y))
	dc.in.HasPointer = true
	dc.in.Clicked = true
	dc.mu.Unlock()
	dc.raster.Refresh()
}

// TappedSecondary implements fyne.SecondaryTappable: a right click opens
// the item editor via OnItemContext.
func (dc *DocumentCanvas) TappedSecondary(ev *fyne.PointEvent) {
	if dc.OnItemContext == nil {
		return
	}
	dc.mu.Lock()
	rects := dc.lastRects
	state := dc.state
	pad := dc.renderer.Config().HitPadding
	dc.mu.Unlock()

	p := geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y))
	if idx := hitTest(rects, p, pad); idx >= 0 {
		it := rects[idx].Item
		dc.OnItemContext(it.ID, state.EffectiveText(it))
	}
}

// Dragged implements fyne.Draggable. The first event of a gesture records
// the start position so the engine can latch its drag target there.
func (dc *DocumentCanvas) Dragged(ev *fyne.DragEvent) {
	dc.mu.Lock()
	pos := geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y))
	delta := geometry.NewPoint2D(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	if !dc.in.Dragging {
		dc.in.Dragging = true
		dc.in.DragStart = pos.Sub(delta)
	}
	dc.in.Pointer = pos
	dc.in.DragDelta = dc.in.DragDelta.Add(delta)
	dc.mu.Unlock()
	dc.raster.Refresh()
}

// DragEnd implements fyne.Draggable.
func (dc *DocumentCanvas) DragEnd() {
	dc.mu.Lock()
	dc.in.Dragging = false
	dc.in.DragDelta = geometry.Point2D{}
	dc.mu.Unlock()
	dc.raster.Refresh()
}

// Scrolled implements fyne.Scrollable: wheel pans, wheel with the chord
// key zooms.
func (dc *DocumentCanvas) Scrolled(ev *fyne.ScrollEvent) {
	dc.mu.Lock()
	dc.in.WheelDelta = dc.in.WheelDelta.Add(
		geometry.NewPoint2D(float64(ev.Scrolled.DX), float64(ev.Scrolled.DY)))
	dc.in.ZoomModifier = dc.zoomMod
	dc.mu.Unlock()
	dc.raster.Refresh()
}

// drawFrame is the raster callback: it runs one engine frame and folds the
// outcome back into widget state.
func (dc *DocumentCanvas) drawFrame(w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(colorutil.Backdrop), image.Point{}, draw.Src)
	if w <= 0 || h <= 0 {
		return dst
	}

	dc.mu.Lock()
	state := dc.state
	dc.view.PanelSize = geometry.NewSize(float64(w), float64(h))
	view := dc.view
	in := dc.in
	in.Now = time.Now()

	// One-shot input is consumed by this frame.
	dc.in.Clicked = false
	dc.in.WheelDelta = geometry.Point2D{}
	dc.in.DragDelta = geometry.Point2D{}
	dc.mu.Unlock()

	frameState := *state
	frameState.Zoom = view.Zoom
	dc.painter.Begin(dst)
	res := dc.renderer.RenderFrame(dc.painter, &frameState, view, in)

	dc.mu.Lock()
	dc.lastRects = res.Rects
	dc.mu.Unlock()

	dc.applyOutcome(res)
	return dst
}

func (dc *DocumentCanvas) applyOutcome(res FrameResult) {
	out := res.Outcome

	viewChanged := false
	dc.mu.Lock()
	if out.PanDelta != (geometry.Point2D{}) {
		dc.view.Pan = dc.view.Pan.Add(out.PanDelta)
		viewChanged = true
	}
	if out.ZoomChanged {
		dc.view.Zoom = out.Zoom
		viewChanged = true
	}
	zoom, pan := dc.view.Zoom, dc.view.Pan
	dc.mu.Unlock()

	if viewChanged {
		if dc.OnViewChanged != nil {
			dc.OnViewChanged(zoom, pan)
		}
		// The consumed input applies on the next frame.
		go dc.raster.Refresh()
	}

	if out.ItemDragID != "" && out.ItemDragDelta != (geometry.Point2D{}) && dc.OnItemMoved != nil {
		dc.OnItemMoved(out.ItemDragID, out.ItemDragDelta)
	}

	if res.Copied != "" {
		if dc.OnCopied != nil {
			dc.OnCopied(res.Copied)
		}
		dc.scheduleToastExpiry()
	}
}

// scheduleToastExpiry arranges one repaint just after the toast window
// closes so the notification disappears without a poll loop.
func (dc *DocumentCanvas) scheduleToastExpiry() {
	dc.mu.Lock()
	if dc.toastTimer != nil {
		dc.toastTimer.Stop()
	}
	dc.toastTimer = time.AfterFunc(toastDuration+50*time.Millisecond, func() {
		dc.raster.Refresh()
	})
	dc.mu.Unlock()
}
