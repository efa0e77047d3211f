package doc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// Matcher filters the item model by a query string. Matching is a
// case-insensitive substring test against item Content; text overrides are
// deliberately excluded so search always finds the extracted text.
type Matcher struct {
	matcher *search.Matcher
	pattern *search.Pattern
	query   string
}

// NewMatcher creates a matcher with an empty query.
func NewMatcher() *Matcher {
	return &Matcher{
		matcher: search.New(language.Und, search.IgnoreCase),
	}
}

// SetQuery compiles the query. An empty query matches nothing.
func (m *Matcher) SetQuery(query string) {
	m.query = query
	if query == "" {
		m.pattern = nil
		return
	}
	m.pattern = m.matcher.CompileString(query)
}

// Query returns the current query string.
func (m *Matcher) Query() string {
	return m.query
}

// Match returns the IDs of all items whose content contains the query.
// The result is always non-nil so callers can index it directly.
func (m *Matcher) Match(items []DocumentItem) map[string]struct{} {
	results := make(map[string]struct{})
	if m.pattern == nil {
		return results
	}
	for _, it := range items {
		if start, _ := m.pattern.IndexString(it.Content); start >= 0 {
			results[it.ID] = struct{}{}
		}
	}
	return results
}
