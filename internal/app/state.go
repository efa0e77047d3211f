// Package app provides application state, events, and preferences glue.
package app

import (
	"context"
	"log"
	"sync"

	"snyfter/internal/doc"
	"snyfter/internal/extract"
	"snyfter/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventExtractionStarted EventType = iota
	EventExtractionComplete
	EventExtractionFailed
	EventPageChanged
	EventViewChanged
	EventSearchChanged
	EventItemEdited
	EventEditModeChanged
	EventTextCopied
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the extracted document, the current
// page, view parameters, search, and per-item edits.
type State struct {
	mu sync.RWMutex

	// Extraction
	SourcePath string
	Document   *extract.Document

	// Navigation and view
	CurrentPage int
	Zoom        float64
	Pan         geometry.Point2D

	// Search
	searchQuery   string
	matcher       *doc.Matcher
	searchResults map[string]struct{}

	// Per-item edits, keyed by item id. Offsets are screen-space nudges;
	// overrides replace displayed text without touching the source content.
	itemOffsets   map[string]geometry.Point2D
	textOverrides map[string]string
	editMode      bool

	runner *extract.Runner

	listeners map[EventType][]EventListener
}

// NewState creates application state around an extraction runner.
func NewState(runner *extract.Runner) *State {
	return &State{
		CurrentPage:   1,
		Zoom:          1.0,
		matcher:       doc.NewMatcher(),
		searchResults: make(map[string]struct{}),
		itemOffsets:   make(map[string]geometry.Point2D),
		textOverrides: make(map[string]string),
		runner:        runner,
		listeners:     make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Extract launches extraction of the given PDF in the background. A second
// call while one is running returns extract.ErrBusy.
func (s *State) Extract(ctx context.Context, path string) error {
	if err := s.runner.Extract(ctx, path); err != nil {
		return err
	}
	s.mu.Lock()
	s.SourcePath = path
	s.mu.Unlock()
	s.Emit(EventExtractionStarted, path)
	return nil
}

// Extracting reports whether an extraction is in flight.
func (s *State) Extracting() bool {
	return s.runner.Running()
}

// PollExtraction drains the runner's mailbox. On success the new document
// replaces the current one and edits are reset; on failure the previous
// document stays on screen.
func (s *State) PollExtraction() {
	res, ok := s.runner.Mailbox().Take()
	if !ok {
		return
	}
	if res.Err != nil {
		log.Printf("extraction failed: %v", res.Err)
		s.Emit(EventExtractionFailed, &res)
		return
	}

	s.mu.Lock()
	s.Document = res.Doc
	s.CurrentPage = 1
	s.Zoom = 1.0
	s.Pan = geometry.Point2D{}
	s.itemOffsets = make(map[string]geometry.Point2D)
	s.textOverrides = make(map[string]string)
	s.mu.Unlock()

	s.refreshSearch()
	s.Emit(EventExtractionComplete, res.Doc)
	s.Emit(EventPageChanged, 1)
}

// LoadDocument loads an already-extracted JSON document directly, skipping
// the external extractor.
func (s *State) LoadDocument(path string) error {
	d, err := extract.LoadDocument(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.SourcePath = path
	s.Document = d
	s.CurrentPage = 1
	s.Zoom = 1.0
	s.Pan = geometry.Point2D{}
	s.itemOffsets = make(map[string]geometry.Point2D)
	s.textOverrides = make(map[string]string)
	s.mu.Unlock()

	s.refreshSearch()
	s.Emit(EventExtractionComplete, d)
	s.Emit(EventPageChanged, 1)
	return nil
}

// PageCount returns the number of pages in the loaded document.
func (s *State) PageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Document == nil {
		return 0
	}
	return s.Document.PageCount()
}

// SetPage moves to the given 1-based page, clamped to the document.
func (s *State) SetPage(n int) {
	s.mu.Lock()
	count := 0
	if s.Document != nil {
		count = s.Document.PageCount()
	}
	if n < 1 {
		n = 1
	}
	if count > 0 && n > count {
		n = count
	}
	changed := n != s.CurrentPage
	s.CurrentPage = n
	s.mu.Unlock()

	if changed {
		s.refreshSearch()
		s.Emit(EventPageChanged, n)
	}
}

// NextPage advances one page.
func (s *State) NextPage() {
	s.mu.RLock()
	n := s.CurrentPage + 1
	s.mu.RUnlock()
	s.SetPage(n)
}

// PrevPage goes back one page.
func (s *State) PrevPage() {
	s.mu.RLock()
	n := s.CurrentPage - 1
	s.mu.RUnlock()
	s.SetPage(n)
}

// SetView records the zoom and pan the canvas last settled on.
func (s *State) SetView(zoom float64, pan geometry.Point2D) {
	s.mu.Lock()
	s.Zoom = zoom
	s.Pan = pan
	s.mu.Unlock()
	s.Emit(EventViewChanged, zoom)
}

// SetSearchQuery recomputes the match set for the current page. An empty
// query clears it.
func (s *State) SetSearchQuery(query string) {
	s.mu.Lock()
	s.searchQuery = query
	s.matcher.SetQuery(query)
	s.mu.Unlock()

	s.refreshSearch()
	s.Emit(EventSearchChanged, query)
}

// SearchQuery returns the active query.
func (s *State) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// MatchCount returns the number of matching items on the current page.
func (s *State) MatchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.searchResults)
}

func (s *State) refreshSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []doc.DocumentItem
	if s.Document != nil {
		items = s.Document.Items(s.CurrentPage)
	}
	s.searchResults = s.matcher.Match(items)
}

// NudgeItem accumulates a manual screen-space offset for one item.
func (s *State) NudgeItem(id string, delta geometry.Point2D) {
	s.mu.Lock()
	s.itemOffsets[id] = s.itemOffsets[id].Add(delta)
	s.mu.Unlock()
	s.Emit(EventItemEdited, id)
}

// SetItemText overrides an item's displayed and copied text. An empty
// string removes the override.
func (s *State) SetItemText(id, text string) {
	s.mu.Lock()
	if text == "" {
		delete(s.textOverrides, id)
	} else {
		s.textOverrides[id] = text
	}
	s.mu.Unlock()
	s.Emit(EventItemEdited, id)
}

// ClearEdits discards all manual offsets and text overrides.
func (s *State) ClearEdits() {
	s.mu.Lock()
	s.itemOffsets = make(map[string]geometry.Point2D)
	s.textOverrides = make(map[string]string)
	s.mu.Unlock()
	s.Emit(EventItemEdited, nil)
}

// SetEditMode toggles whether item drags move items instead of panning.
func (s *State) SetEditMode(on bool) {
	s.mu.Lock()
	s.editMode = on
	s.mu.Unlock()
	s.Emit(EventEditModeChanged, on)
}

// EditMode reports whether edit mode is active.
func (s *State) EditMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editMode
}

// Frame assembles the render snapshot for the current page. Maps are
// copied so the canvas can draw without holding the state lock.
func (s *State) Frame() *doc.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	frame := &doc.State{
		PageSize:      geometry.NewSize(extract.DefaultPageWidth, extract.DefaultPageHeight),
		Zoom:          s.Zoom,
		Offset:        s.Pan,
		SearchQuery:   s.searchQuery,
		SearchResults: copySet(s.searchResults),
		EditMode:      s.editMode,
	}
	if s.Document != nil {
		page := s.Document.Page(s.CurrentPage)
		frame.Items = s.Document.Items(s.CurrentPage)
		frame.PageSize = page.Size
		frame.ColumnCount = page.ColumnCount
		frame.ColumnBoundaries = page.ColumnBoundaries
	}
	frame.ItemOffsets = copyOffsets(s.itemOffsets)
	frame.ItemTextOverrides = copyOverrides(s.textOverrides)
	return frame
}

func copySet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}

func copyOffsets(in map[string]geometry.Point2D) map[string]geometry.Point2D {
	out := make(map[string]geometry.Point2D, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyOverrides(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
