package app

import (
	"sort"
	"strings"

	"github.com/oakwood-commons/bzx/internal/fuzzy"
)

// applyFilter runs the ranker over the full index and rebuilds
// FilteredIndices. An empty (trimmed) query is the identity: every index in
// original order, no scoring. Filtering only drops the empty-input sentinel,
// never low scores.
func (a *App) applyFilter() {
	if strings.TrimSpace(a.Search.Input) == "" {
		indices := make([]int, len(a.Data.Index))
		for i := range indices {
			indices[i] = i
		}
		a.Search.FilteredIndices = indices
	} else {
		query := fuzzy.Normalize(a.Search.Input)

		type scored struct {
			index int
			score int
		}
		kept := make([]scored, 0, len(a.Data.Index))
		for i, item := range a.Data.Index {
			s := fuzzy.Score(query, item.NormDisplay)
			if s > fuzzy.MinScore {
				kept = append(kept, scored{index: i, score: s})
			}
		}

		// Score descending, original index ascending on ties.
		sort.Slice(kept, func(i, j int) bool {
			if kept[i].score != kept[j].score {
				return kept[i].score > kept[j].score
			}
			return kept[i].index < kept[j].index
		})

		indices := make([]int, len(kept))
		for i, s := range kept {
			indices[i] = s.index
		}
		a.Search.FilteredIndices = indices
	}

	if a.Search.SortBySpread {
		a.sortFilteredBySpread()
	}

	// Clamp selection into the new result set.
	count := len(a.Search.FilteredIndices)
	if count == 0 {
		a.Search.SelectedIndex = 0
	} else if a.Search.SelectedIndex > count-1 {
		a.Search.SelectedIndex = count - 1
	}
}

// sortFilteredBySpread re-orders the already-filtered set by sell-buy
// descending, replacing the relevance ordering entirely. Spreads are
// snapshotted once so a concurrent-looking update cannot skew the
// comparator mid-sort.
func (a *App) sortFilteredBySpread() {
	spreads := make(map[int]float64, len(a.Search.FilteredIndices))
	for _, idx := range a.Search.FilteredIndices {
		spreads[idx] = a.spreadAt(idx)
	}
	sort.SliceStable(a.Search.FilteredIndices, func(i, j int) bool {
		return spreads[a.Search.FilteredIndices[i]] > spreads[a.Search.FilteredIndices[j]]
	})
}

// spreadAt returns the current spread for an index entry, or 0 when the
// product is missing from the map.
func (a *App) spreadAt(index int) float64 {
	if index < 0 || index >= len(a.Data.Index) {
		return 0
	}
	if p, ok := a.Data.Products[a.Data.Index[index].ID]; ok {
		return p.QuickStatus.Spread()
	}
	return 0
}
