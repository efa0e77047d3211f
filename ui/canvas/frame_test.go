package canvas

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"snyfter/internal/doc"
	"snyfter/pkg/geometry"
)

// recordingSurface captures draw calls for assertions and stands in for
// the clipboard.
type recordingSurface struct {
	fills    []geometry.Rect
	strokes  []geometry.Rect
	lines    int
	texts    []string
	cursor   Cursor
	copied   []string
	copyFail bool
}

func (s *recordingSurface) FillRect(r geometry.Rect, _ color.RGBA) {
	s.fills = append(s.fills, r)
}

func (s *recordingSurface) StrokeRect(r geometry.Rect, _ color.RGBA, _ float64) {
	s.strokes = append(s.strokes, r)
}

func (s *recordingSurface) DrawLine(_, _ geometry.Point2D, _ color.RGBA, _ float64) {
	s.lines++
}

func (s *recordingSurface) DrawText(_ geometry.Point2D, lines []string, _ FontSpec, _ color.RGBA) {
	s.texts = append(s.texts, strings.Join(lines, "\n"))
}

func (s *recordingSurface) SetCursor(c Cursor) {
	s.cursor = c
}

func (s *recordingSurface) CopyToClipboard(text string) bool {
	if s.copyFail {
		return false
	}
	s.copied = append(s.copied, text)
	return true
}

func (s *recordingSurface) hasText(substr string) bool {
	for _, txt := range s.texts {
		if strings.Contains(txt, substr) {
			return true
		}
	}
	return false
}

func frameState(items ...doc.DocumentItem) *doc.State {
	return &doc.State{
		Items:    items,
		PageSize: geometry.NewSize(612, 792),
		Zoom:     1,
	}
}

func newTestRenderer() *Renderer {
	return NewRenderer(DefaultConfig(), fixedMeasurer{})
}

func TestRenderFrameStatusLine(t *testing.T) {
	r := newTestRenderer()
	surface := &recordingSurface{}
	state := frameState(
		doc.DocumentItem{ID: "a", BBox: geometry.NewRect(10, 10, 50, 12), Content: "one"},
		doc.DocumentItem{ID: "b", BBox: geometry.NewRect(10, 40, 50, 12), Content: "two"},
	)

	r.RenderFrame(surface, state, testView(), Input{Now: time.Unix(0, 0)})

	if !surface.hasText("2 items | Zoom: 100%") {
		t.Errorf("status line missing; texts = %q", surface.texts)
	}
}

func TestRenderFrameColumnStatusAndGuides(t *testing.T) {
	r := newTestRenderer()
	surface := &recordingSurface{}
	state := frameState(
		doc.DocumentItem{ID: "a", BBox: geometry.NewRect(10, 10, 50, 12), Content: "left"},
	)
	state.ColumnCount = 2
	state.ColumnBoundaries = []float64{306}

	r.RenderFrame(surface, state, testView(), Input{Now: time.Unix(0, 0)})

	if !surface.hasText("| 2 columns") {
		t.Errorf("column status missing; texts = %q", surface.texts)
	}
	if surface.lines != 1 {
		t.Errorf("guide lines = %d, want 1", surface.lines)
	}
}

func TestRenderFrameRectsMatchItems(t *testing.T) {
	r := newTestRenderer()
	surface := &recordingSurface{}
	state := frameState(
		doc.DocumentItem{ID: "a", BBox: geometry.NewRect(10, 10, 50, 12), Content: "one"},
		doc.DocumentItem{ID: "b", BBox: geometry.NewRect(10, 40, 50, 12), Content: "two"},
	)

	res := r.RenderFrame(surface, state, testView(), Input{Now: time.Unix(0, 0)})

	if len(res.Rects) != 2 {
		t.Fatalf("rects = %d, want 2", len(res.Rects))
	}
	if res.Rects[0].Item.ID != "a" || res.Rects[1].Item.ID != "b" {
		t.Errorf("rect order = %q,%q", res.Rects[0].Item.ID, res.Rects[1].Item.ID)
	}
}

func TestRenderFrameItemOffsetIsolation(t *testing.T) {
	r := newTestRenderer()
	surface := &recordingSurface{}
	state := frameState(
		doc.DocumentItem{ID: "a", BBox: geometry.NewRect(10, 10, 50, 12), Content: "one"},
		doc.DocumentItem{ID: "b", BBox: geometry.NewRect(10, 40, 50, 12), Content: "two"},
	)

	base := r.RenderFrame(surface, state, testView(), Input{Now: time.Unix(0, 0)})

	state.ItemOffsets = map[string]geometry.Point2D{"a": geometry.NewPoint2D(7, -4)}
	moved := r.RenderFrame(&recordingSurface{}, state, testView(), Input{Now: time.Unix(0, 0)})

	if moved.Rects[0].Rect.Left != base.Rects[0].Rect.Left+7 ||
		moved.Rects[0].Rect.Top != base.Rects[0].Rect.Top-4 {
		t.Errorf("offset item rect = %+v, base %+v", moved.Rects[0].Rect, base.Rects[0].Rect)
	}
	if moved.Rects[1].Rect != base.Rects[1].Rect {
		t.Errorf("untouched item moved: %+v vs %+v", moved.Rects[1].Rect, base.Rects[1].Rect)
	}
}

func TestRenderFrameSearchHighlight(t *testing.T) {
	r := newTestRenderer()
	state := frameState(
		doc.DocumentItem{ID: "a", BBox: geometry.NewRect(10, 10, 50, 12), Content: "match me"},
		doc.DocumentItem{ID: "b", BBox: geometry.NewRect(10, 40, 50, 12), Content: "other"},
	)
	state.SearchResults = map[string]struct{}{"a": {}}

	surface := &recordingSurface{}
	r.RenderFrame(surface, state, testView(), Input{Now: time.Unix(0, 0)})

	// Page background plus exactly one match highlight.
	if len(surface.fills) != 2 {
		t.Errorf("fills = %d, want page + 1 highlight", len(surface.fills))
	}
}

func TestRenderFrameClickCopiesAndToasts(t *testing.T) {
	r := newTestRenderer()
	state := frameState(
		doc.DocumentItem{ID: "a", BBox: geometry.NewRect(10, 10, 50, 12), Content: "copy target"},
	)
	view := testView()
	t0 := time.Unix(1000, 0)

	// Screen position of the item: doc(10,10) + margins.
	click := geometry.NewPoint2D(35, 65)

	surface := &recordingSurface{}
	res := r.RenderFrame(surface, state, view, Input{
		Pointer:    click,
		HasPointer: true,
		Clicked:    true,
		Now:        t0,
	})

	if res.Copied != "copy target" {
		t.Fatalf("Copied = %q", res.Copied)
	}
	if len(surface.copied) != 1 || surface.copied[0] != "copy target" {
		t.Fatalf("clipboard = %q", surface.copied)
	}

	// Toast visible on the next frame, gone after the display window.
	surface = &recordingSurface{}
	r.RenderFrame(surface, state, view, Input{Now: t0.Add(time.Second)})
	if !surface.hasText("Copied: copy target") {
		t.Errorf("toast missing; texts = %q", surface.texts)
	}

	surface = &recordingSurface{}
	r.RenderFrame(surface, state, view, Input{Now: t0.Add(toastDuration + time.Second)})
	if surface.hasText("Copied:") {
		t.Error("toast still visible after expiry")
	}
}

func TestRenderFrameClipboardFailureSkipsToast(t *testing.T) {
	r := newTestRenderer()
	state := frameState(
		doc.DocumentItem{ID: "a", BBox: geometry.NewRect(10, 10, 50, 12), Content: "text"},
	)
	t0 := time.Unix(1000, 0)

	surface := &recordingSurface{copyFail: true}
	res := r.RenderFrame(surface, state, testView(), Input{
		Pointer:    geometry.NewPoint2D(35, 65),
		HasPointer: true,
		Clicked:    true,
		Now:        t0,
	})

	if res.Copied != "" {
		t.Errorf("Copied = %q, want empty on clipboard failure", res.Copied)
	}
	surface = &recordingSurface{}
	r.RenderFrame(surface, state, testView(), Input{Now: t0.Add(time.Millisecond)})
	if surface.hasText("Copied:") {
		t.Error("toast shown despite clipboard failure")
	}
}

func TestRenderFrameToastPreviewTruncation(t *testing.T) {
	r := newTestRenderer()
	long := strings.Repeat("x", 80)
	state := frameState(
		doc.DocumentItem{ID: "a", BBox: geometry.NewRect(10, 10, 50, 12), Content: long},
	)
	t0 := time.Unix(1000, 0)

	surface := &recordingSurface{}
	r.RenderFrame(surface, state, testView(), Input{
		Pointer:    geometry.NewPoint2D(35, 65),
		HasPointer: true,
		Clicked:    true,
		Now:        t0,
	})

	surface = &recordingSurface{}
	r.RenderFrame(surface, state, testView(), Input{Now: t0.Add(time.Millisecond)})

	want := "Copied: " + strings.Repeat("x", 50) + "..."
	if !surface.hasText(want) {
		t.Errorf("toast preview not truncated to 50 runes; texts = %q", surface.texts)
	}
}

func TestRenderFrameCheckbox(t *testing.T) {
	r := newTestRenderer()
	state := frameState(
		doc.DocumentItem{
			ID: "cb", BBox: geometry.NewRect(10, 10, 12, 12),
			Content: "[X]", Type: doc.TypeCheckbox, FontSize: 12,
		},
	)

	surface := &recordingSurface{}
	res := r.RenderFrame(surface, state, testView(), Input{Now: time.Unix(0, 0)})

	if len(surface.strokes) != 1 {
		t.Fatalf("strokes = %d, want checkbox outline", len(surface.strokes))
	}
	if surface.lines != 2 {
		t.Errorf("check mark segments = %d, want 2", surface.lines)
	}
	// Fixed square: 0.8 of the effective font size.
	if got := res.Rects[0].Rect.Width; got != 12*0.8 {
		t.Errorf("checkbox width = %v, want %v", got, 12*0.8)
	}
}
