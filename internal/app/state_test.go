package app

import (
	"testing"

	"snyfter/internal/extract"
	"snyfter/pkg/geometry"
)

func loadedState(t *testing.T) *State {
	t.Helper()
	data := []byte(`{
		"pages": [
			{"page_number": 1, "width": 612, "height": 792},
			{"page_number": 2, "width": 612, "height": 792}
		],
		"items": [
			{"content": "alpha invoice", "page": 1,
			 "bbox": {"left": 72, "top": 100, "width": 100, "height": 14}},
			{"content": "beta", "page": 1,
			 "bbox": {"left": 72, "top": 130, "width": 100, "height": 14}},
			{"content": "gamma invoice", "page": 2,
			 "bbox": {"left": 72, "top": 100, "width": 100, "height": 14}}
		]
	}`)
	d, err := extract.DecodeDocument(data)
	if err != nil {
		t.Fatal(err)
	}

	s := NewState(extract.NewRunner([]string{"extractor"}))
	s.Document = d
	s.CurrentPage = 1
	return s
}

func TestSetPageClamps(t *testing.T) {
	s := loadedState(t)

	s.SetPage(99)
	if s.CurrentPage != 2 {
		t.Errorf("page = %d, want clamp to 2", s.CurrentPage)
	}
	s.SetPage(-5)
	if s.CurrentPage != 1 {
		t.Errorf("page = %d, want clamp to 1", s.CurrentPage)
	}

	s.NextPage()
	if s.CurrentPage != 2 {
		t.Errorf("NextPage = %d", s.CurrentPage)
	}
	s.NextPage()
	if s.CurrentPage != 2 {
		t.Errorf("NextPage past end = %d", s.CurrentPage)
	}
	s.PrevPage()
	if s.CurrentPage != 1 {
		t.Errorf("PrevPage = %d", s.CurrentPage)
	}
}

func TestSearchTracksCurrentPage(t *testing.T) {
	s := loadedState(t)

	s.SetSearchQuery("invoice")
	if s.MatchCount() != 1 {
		t.Errorf("page 1 matches = %d, want 1", s.MatchCount())
	}

	s.SetPage(2)
	if s.MatchCount() != 1 {
		t.Errorf("page 2 matches = %d, want 1", s.MatchCount())
	}

	s.SetSearchQuery("")
	if s.MatchCount() != 0 {
		t.Errorf("cleared query matches = %d", s.MatchCount())
	}
}

func TestNudgeAccumulates(t *testing.T) {
	s := loadedState(t)

	s.NudgeItem("id1", geometry.NewPoint2D(3, 4))
	s.NudgeItem("id1", geometry.NewPoint2D(-1, 2))

	frame := s.Frame()
	if got := frame.ItemOffsets["id1"]; got != geometry.NewPoint2D(2, 6) {
		t.Errorf("accumulated offset = %v, want (2,6)", got)
	}
}

func TestTextOverrideLifecycle(t *testing.T) {
	s := loadedState(t)

	s.SetItemText("id1", "edited")
	if got := s.Frame().ItemTextOverrides["id1"]; got != "edited" {
		t.Errorf("override = %q", got)
	}

	s.SetItemText("id1", "")
	if _, ok := s.Frame().ItemTextOverrides["id1"]; ok {
		t.Error("empty text should remove the override")
	}

	s.SetItemText("id1", "again")
	s.NudgeItem("id1", geometry.NewPoint2D(1, 1))
	s.ClearEdits()
	frame := s.Frame()
	if len(frame.ItemTextOverrides) != 0 || len(frame.ItemOffsets) != 0 {
		t.Error("ClearEdits left edits behind")
	}
}

func TestFrameSnapshotIsolation(t *testing.T) {
	s := loadedState(t)
	s.NudgeItem("id1", geometry.NewPoint2D(1, 1))

	frame := s.Frame()
	frame.ItemOffsets["id1"] = geometry.NewPoint2D(99, 99)
	frame.SearchResults["bogus"] = struct{}{}

	if got := s.Frame().ItemOffsets["id1"]; got != geometry.NewPoint2D(1, 1) {
		t.Errorf("mutating a snapshot leaked into state: %v", got)
	}
	if s.MatchCount() != 0 {
		t.Error("mutating a snapshot leaked into search results")
	}
}

func TestFrameCarriesPageData(t *testing.T) {
	s := loadedState(t)

	frame := s.Frame()
	if len(frame.Items) != 2 {
		t.Errorf("page 1 items = %d, want 2", len(frame.Items))
	}
	if frame.PageSize != geometry.NewSize(612, 792) {
		t.Errorf("page size = %+v", frame.PageSize)
	}

	s.SetPage(2)
	frame = s.Frame()
	if len(frame.Items) != 1 {
		t.Errorf("page 2 items = %d, want 1", len(frame.Items))
	}
}

func TestEvents(t *testing.T) {
	s := loadedState(t)

	var got []EventType
	for _, ev := range []EventType{EventPageChanged, EventSearchChanged, EventItemEdited} {
		ev := ev
		s.On(ev, func(interface{}) { got = append(got, ev) })
	}

	s.SetPage(2)
	s.SetSearchQuery("beta")
	s.NudgeItem("x", geometry.NewPoint2D(1, 0))

	want := []EventType{EventPageChanged, EventSearchChanged, EventItemEdited}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}
