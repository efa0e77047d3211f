package doc

import "snyfter/pkg/geometry"

// State is one frame's render input: the page's items in paint order plus
// the view and editor state layered on top. It is assembled per frame from
// the extraction snapshot and is never mutated by the renderer.
type State struct {
	// Items in paint order. Later items paint over earlier ones and win
	// hit-tests where rectangles overlap.
	Items []DocumentItem

	// PageSize is the reference page size in document units.
	PageSize geometry.Size

	// Zoom and Offset are applied on top of the fit-to-panel scale.
	Zoom   float64
	Offset geometry.Point2D

	// SearchQuery and SearchResults are derived together; SearchResults is
	// recomputed whenever the query or the item sequence changes.
	SearchQuery   string
	SearchResults map[string]struct{}

	// ItemOffsets are per-item manual screen-space nudges, additive after
	// the view transform. Stale keys for items no longer present are
	// harmless.
	ItemOffsets map[string]geometry.Point2D

	// ItemTextOverrides replace an item's displayed and copied text without
	// touching Content.
	ItemTextOverrides map[string]string

	// EditMode routes item-surface drags into ItemOffsets instead of pan.
	EditMode bool

	// Multi-column layout hints for drawing separator guides.
	ColumnCount      int
	ColumnBoundaries []float64
}

// EffectiveText returns the text to display and copy for an item: the
// override when present, else the immutable content.
func (s *State) EffectiveText(it DocumentItem) string {
	if s.ItemTextOverrides != nil {
		if txt, ok := s.ItemTextOverrides[it.ID]; ok {
			return txt
		}
	}
	return it.Content
}

// ItemOffset returns the manual nudge for an item, or the zero point.
func (s *State) ItemOffset(id string) geometry.Point2D {
	if s.ItemOffsets == nil {
		return geometry.Point2D{}
	}
	return s.ItemOffsets[id]
}

// IsMatch reports whether an item is in the current search result set.
func (s *State) IsMatch(id string) bool {
	_, ok := s.SearchResults[id]
	return ok
}
