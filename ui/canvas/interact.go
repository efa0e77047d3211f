package canvas

import (
	"time"

	"snyfter/internal/doc"
	"snyfter/pkg/geometry"
)

// toastDuration is how long the "copied" notification stays on screen.
// Expiry is driven by frame timestamps, not a per-frame poll loop.
const toastDuration = 2 * time.Second

// Input is one frame's pointer and wheel state, assembled by the widget
// from the UI toolkit's events.
type Input struct {
	Pointer    geometry.Point2D
	HasPointer bool

	// Clicked is set on the frame a click is released.
	Clicked bool

	// Dragging is held while a drag is in progress; DragStart is where it
	// began and DragDelta is this frame's movement.
	Dragging  bool
	DragStart geometry.Point2D
	DragDelta geometry.Point2D

	// WheelDelta is the raw scroll delta; ZoomModifier reports whether the
	// command/control key routed it to zoom instead of pan.
	WheelDelta   geometry.Point2D
	ZoomModifier bool

	Now time.Time
}

// Outcome is everything the interaction pass wants the owner to fold back
// into view parameters and the item model. The controller itself owns no
// persistent state beyond the current drag target and the toast deadline.
type Outcome struct {
	HoveredID string
	Cursor    Cursor

	// CopyText is the effective text of a clicked item; empty when nothing
	// was clicked.
	CopyText string

	PanDelta geometry.Point2D

	Zoom        float64
	ZoomChanged bool

	// ItemDragID/ItemDragDelta report a drag routed to a single item's
	// manual offset (edit mode only).
	ItemDragID    string
	ItemDragDelta geometry.Point2D
}

// ItemRect pairs an item with the screen rect the renderer painted it in.
// Interaction resolves against exactly these rects, so hit-testing can
// never disagree with what is on screen.
type ItemRect struct {
	Item doc.DocumentItem
	Rect geometry.Rect
}

// Controller resolves pointer input against the frame's item rects.
type Controller struct {
	dragActive bool
	dragItemID string

	toastText  string
	toastUntil time.Time
}

// Resolve runs one frame's interaction pass.
func (c *Controller) Resolve(rects []ItemRect, state *doc.State, in Input, view View, cfg Config) Outcome {
	var out Outcome
	out.Cursor = CursorDefault

	// Wheel: modifier routes to zoom and is consumed; otherwise it pans.
	if in.WheelDelta.Y != 0 || in.WheelDelta.X != 0 {
		if in.ZoomModifier {
			out.Zoom = WheelZoom(view.Zoom, in.WheelDelta.Y)
			out.ZoomChanged = true
		} else {
			out.PanDelta = out.PanDelta.Add(in.WheelDelta)
		}
	}

	// Drag: an item surface grabbed in edit mode moves that item; anything
	// else pans the whole canvas. The target is latched at drag start so a
	// fast pointer cannot slide off mid-drag.
	if in.Dragging {
		if !c.dragActive {
			c.dragActive = true
			c.dragItemID = ""
			if state.EditMode {
				if idx := hitTest(rects, in.DragStart, cfg.HitPadding); idx >= 0 {
					c.dragItemID = rects[idx].Item.ID
				}
			}
		}
		if c.dragItemID != "" {
			out.ItemDragID = c.dragItemID
			out.ItemDragDelta = in.DragDelta
		} else {
			out.PanDelta = out.PanDelta.Add(in.DragDelta)
		}
	} else {
		c.dragActive = false
		c.dragItemID = ""
	}

	// Hover and click-to-copy.
	if in.HasPointer && !in.Dragging {
		if idx := hitTest(rects, in.Pointer, cfg.HitPadding); idx >= 0 {
			out.HoveredID = rects[idx].Item.ID
			out.Cursor = CursorPointer
			if in.Clicked {
				out.CopyText = state.EffectiveText(rects[idx].Item)
			}
		}
	}

	return out
}

// NoteCopied starts the toast window after a successful clipboard write.
func (c *Controller) NoteCopied(text string, now time.Time) {
	c.toastText = text
	c.toastUntil = now.Add(toastDuration)
}

// Toast returns the active toast text, or "" once the display window has
// elapsed.
func (c *Controller) Toast(now time.Time) string {
	if c.toastText == "" || now.After(c.toastUntil) {
		return ""
	}
	return c.toastText
}

// Dragging reports the id of the item currently being dragged, if any.
func (c *Controller) Dragging() string {
	return c.dragItemID
}

// hitTest returns the index of the topmost item whose padded rect contains
// p. Items are checked in reverse paint order so overlapping fragments
// resolve to the one painted last, consistent with visual stacking.
func hitTest(rects []ItemRect, p geometry.Point2D, padding float64) int {
	for i := len(rects) - 1; i >= 0; i-- {
		if rects[i].Rect.Expand(padding).Contains(p) {
			return i
		}
	}
	return -1
}
