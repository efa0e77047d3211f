package canvas

import (
	"strings"
	"testing"
)

// fixedMeasurer is a deterministic Measurer: every rune advances 10 px and
// lines are 16 px tall.
type fixedMeasurer struct{}

func (fixedMeasurer) MeasureString(_ FontSpec, s string) float64 {
	return float64(len([]rune(s))) * 10
}

func (fixedMeasurer) LineHeight(_ FontSpec) float64 {
	return 16
}

func TestWrapEligible(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"short fragment", "Name", false},
		{"over threshold", strings.Repeat("a", 51), true},
		{"sentence text", "First. Second", true},
		{"trigger phrase", "This form must be signed by both parties", true},
		{"period without space", "v1.2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapEligible(tt.text, cfg); got != tt.want {
				t.Errorf("WrapEligible(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLayoutWraps(t *testing.T) {
	cfg := DefaultConfig()
	m := fixedMeasurer{}
	spec := FontSpec{Size: 12}

	// Four 5-rune words; 120 px fits two words plus the joining space.
	out := Layout("aaaaa bbbbb ccccc ddddd", spec, 120, m, cfg)

	if len(out.Lines) != 2 {
		t.Fatalf("lines = %v, want 2", out.Lines)
	}
	if out.Lines[0] != "aaaaa bbbbb" || out.Lines[1] != "ccccc ddddd" {
		t.Errorf("lines = %q", out.Lines)
	}
	if out.Width != 110 {
		t.Errorf("width = %v, want 110", out.Width)
	}
	if out.Height != 32 {
		t.Errorf("height = %v, want 32", out.Height)
	}
	if out.Truncated {
		t.Error("unexpected truncation")
	}
}

func TestLayoutNeverExceedsMaxWidth(t *testing.T) {
	cfg := DefaultConfig()
	m := fixedMeasurer{}
	spec := FontSpec{Size: 12}

	text := strings.Repeat("word ", 40)
	out := Layout(text, spec, 200, m, cfg)

	for _, line := range out.Lines {
		if w := m.MeasureString(spec, line); w > 200 {
			t.Errorf("line %q measures %v, exceeds max width 200", line, w)
		}
	}
}

func TestLayoutBreaksLongToken(t *testing.T) {
	cfg := DefaultConfig()
	m := fixedMeasurer{}
	spec := FontSpec{Size: 12}

	// A 60-rune run with no spaces is wrap-eligible but has no word break;
	// it must split mid-token rather than overflow the constraint.
	out := Layout(strings.Repeat("a", 60), spec, 400, m, cfg)

	if len(out.Lines) != 2 {
		t.Fatalf("lines = %d (%q), want 2", len(out.Lines), out.Lines)
	}
	if out.Lines[0] != strings.Repeat("a", 40) || out.Lines[1] != strings.Repeat("a", 20) {
		t.Errorf("lines = %q", out.Lines)
	}
	if out.Width > 400 {
		t.Errorf("width = %v, exceeds constraint 400", out.Width)
	}

	// A long token after normal words flushes the pending line first.
	out = Layout("see "+strings.Repeat("b", 30), spec, 100, m, cfg)
	if out.Lines[0] != "see" {
		t.Errorf("first line = %q, want the pending word flushed", out.Lines[0])
	}
	for _, line := range out.Lines {
		if w := m.MeasureString(spec, line); w > 100 {
			t.Errorf("line %q measures %v, exceeds constraint 100", line, w)
		}
	}
}

func TestLayoutTruncatesAtMaxLines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLines = 3
	m := fixedMeasurer{}
	spec := FontSpec{Size: 12}

	// One word per line at width 60.
	out := Layout("aaaaa bbbbb ccccc ddddd eeeee", spec, 60, m, cfg)

	if len(out.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(out.Lines))
	}
	if !out.Truncated {
		t.Error("expected truncation flag")
	}
	if !strings.HasSuffix(out.Lines[2], ellipsis) {
		t.Errorf("last line %q missing ellipsis", out.Lines[2])
	}
}

func TestLayoutPreservesParagraphBreaks(t *testing.T) {
	cfg := DefaultConfig()
	out := Layout("first\nsecond", FontSpec{Size: 12}, 500, fixedMeasurer{}, cfg)
	if len(out.Lines) != 2 {
		t.Fatalf("lines = %v, want paragraph break preserved", out.Lines)
	}
}

func TestLayoutEmptyText(t *testing.T) {
	out := Layout("", FontSpec{Size: 12}, 100, fixedMeasurer{}, DefaultConfig())
	if len(out.Lines) != 1 || out.Lines[0] != "" {
		t.Errorf("empty text lines = %q, want one empty line", out.Lines)
	}
}

func TestLayoutWidth(t *testing.T) {
	cfg := DefaultConfig()
	long := strings.Repeat("a", 60)

	tests := []struct {
		name      string
		text      string
		bboxWidth float64
		available float64
		want      float64
	}{
		{"eligible capped", long, 100, 900, 400},
		{"eligible within available", long, 100, 250, 250},
		{"eligible degenerate available", long, 100, -10, 1},
		{"short below fallback", "Name", 80, 900, 200},
		{"short above fallback", "Name", 320, 900, 320},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := layoutWidth(tt.text, tt.bboxWidth, tt.available, cfg); got != tt.want {
				t.Errorf("layoutWidth = %v, want %v", got, tt.want)
			}
		})
	}
}
