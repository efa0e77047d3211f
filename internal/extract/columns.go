package extract

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"snyfter/internal/doc"
)

const (
	// columnGapThreshold is the minimum horizontal gap between left edges
	// that counts as a column boundary (document units).
	columnGapThreshold = 50.0

	// minItemsForColumns guards against declaring columns on nearly empty
	// pages.
	minItemsForColumns = 5
)

// DetectColumns analyzes the horizontal distribution of item left edges
// and returns the column count plus the boundary X positions (midpoints of
// the detected gaps). Pages with fewer than minItemsForColumns items are
// treated as single-column.
func DetectColumns(items []doc.DocumentItem) (int, []float64) {
	if len(items) < minItemsForColumns {
		return 1, nil
	}

	xs := make([]float64, 0, len(items))
	for _, it := range items {
		xs = append(xs, it.BBox.Left)
	}
	sort.Float64s(xs)

	var boundaries []float64
	for i := 1; i < len(xs); i++ {
		gap := xs[i] - xs[i-1]
		if gap > columnGapThreshold {
			boundaries = append(boundaries, xs[i-1]+gap/2)
		}
	}

	if len(boundaries) == 0 {
		return 1, nil
	}
	return len(boundaries) + 1, boundaries
}

// SortReadingOrder reorders a multi-column page's items in place so that
// paint order follows reading order: row bands top to bottom, columns left
// to right within a band. The band height is the mean item height, which
// tracks the page's dominant line spacing better than a fixed constant.
func SortReadingOrder(items []doc.DocumentItem, boundaries []float64) {
	if len(items) < 2 || len(boundaries) == 0 {
		return
	}

	heights := make([]float64, 0, len(items))
	for _, it := range items {
		if it.BBox.Height > 0 {
			heights = append(heights, it.BBox.Height)
		}
	}
	// stat.Mean of an empty slice is NaN, which int conversion would turn
	// into garbage band indices.
	band := 20.0
	if len(heights) > 0 {
		band = stat.Mean(heights, nil)
	}
	if band <= 0 || math.IsNaN(band) {
		band = 20.0
	}

	column := func(x float64) int {
		for i, b := range boundaries {
			if x < b {
				return i
			}
		}
		return len(boundaries)
	}

	sort.SliceStable(items, func(i, j int) bool {
		bi := int(items[i].BBox.Top / band)
		bj := int(items[j].BBox.Top / band)
		if bi != bj {
			return bi < bj
		}
		ci := column(items[i].BBox.Left)
		cj := column(items[j].BBox.Left)
		if ci != cj {
			return ci < cj
		}
		return items[i].BBox.Top < items[j].BBox.Top
	})
}
