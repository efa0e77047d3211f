package canvas

import "strings"

// ellipsis marks a layout truncated at the line bound.
const ellipsis = "…"

// Measurer provides text metrics for layout. The production implementation
// is the opentype font cache; tests use a fixed-advance fake.
type Measurer interface {
	// MeasureString returns the advance width of s in screen pixels.
	MeasureString(spec FontSpec, s string) float64
	// LineHeight returns the line height (ascent + descent) in screen
	// pixels.
	LineHeight(spec FontSpec) float64
}

// TextLayout is a wrapped glyph layout with measured extents. The measured
// height drives both drawing and hit-rect sizing; the source bbox height is
// only a pre-layout fallback.
type TextLayout struct {
	Lines     []string
	Width     float64
	Height    float64
	Truncated bool
}

// WrapEligible reports whether text takes the wrapping layout path: long
// runs, sentence text, or a configured trigger phrase. Everything else
// stays on a single line to preserve the original page layout.
func WrapEligible(text string, cfg Config) bool {
	if len(text) > cfg.WrapThreshold {
		return true
	}
	if strings.Contains(text, ". ") {
		return true
	}
	for _, trigger := range cfg.WrapTriggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return false
}

// Layout wraps text to maxWidth with a greedy word breaker and measures
// the result. A single token wider than maxWidth breaks mid-word, so no
// line ever measures wider than the constraint. Line count is bounded by
// cfg.MaxLines; excess lines are dropped and the last kept line gets an
// ellipsis.
func Layout(text string, spec FontSpec, maxWidth float64, m Measurer, cfg Config) TextLayout {
	maxLines := cfg.MaxLines
	if maxLines <= 0 {
		maxLines = 10
	}

	var lines []string
	truncated := false

	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}

		current := ""
		for _, word := range words {
			if m.MeasureString(spec, word) > maxWidth {
				if current != "" {
					lines = append(lines, current)
				}
				current = breakWord(word, spec, maxWidth, m, &lines)
				continue
			}
			if current == "" {
				current = word
				continue
			}
			candidate := current + " " + word
			if m.MeasureString(spec, candidate) > maxWidth {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		if current != "" {
			lines = append(lines, current)
		}
	}

	if len(lines) == 0 {
		lines = []string{""}
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += ellipsis
		truncated = true
	}

	width := 0.0
	for _, line := range lines {
		if w := m.MeasureString(spec, line); w > width {
			width = w
		}
	}

	return TextLayout{
		Lines:     lines,
		Width:     width,
		Height:    float64(len(lines)) * m.LineHeight(spec),
		Truncated: truncated,
	}
}

// breakWord splits an unbreakable token (a URL, a fill run) into measured
// chunks no wider than maxWidth, appending every full chunk to lines and
// returning the remainder as the new current line. A chunk always keeps at
// least one rune, so a degenerate maxWidth cannot loop.
func breakWord(word string, spec FontSpec, maxWidth float64, m Measurer, lines *[]string) string {
	chunk := ""
	for _, r := range word {
		next := chunk + string(r)
		if chunk != "" && m.MeasureString(spec, next) > maxWidth {
			*lines = append(*lines, chunk)
			chunk = string(r)
			continue
		}
		chunk = next
	}
	return chunk
}

// layoutWidth picks the width constraint for an item's text: wrap-eligible
// text is capped so long runs always break, single-line text gets at least
// the fallback width so short fragments keep their place on the page.
func layoutWidth(text string, bboxWidth, availableWidth float64, cfg Config) float64 {
	if WrapEligible(text, cfg) {
		w := availableWidth
		if cfg.WrapCapWidth > 0 && w > cfg.WrapCapWidth {
			w = cfg.WrapCapWidth
		}
		if w < 1 {
			w = 1
		}
		return w
	}
	if bboxWidth < cfg.FallbackWidth {
		return cfg.FallbackWidth
	}
	return bboxWidth
}
