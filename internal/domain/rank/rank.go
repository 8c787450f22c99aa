// Package rank orders scored candidates into the final recommendation list.
package rank

import (
	"sort"

	"github.com/voyago/voyago/internal/domain/model"
)

// Order sorts recommendations in place: score descending, then distance
// ascending with unknown distances after all known ones, then name ascending.
// The chain yields a total order for equal scores, so identical inputs always
// produce identical output. The sort is stable for any remaining ties.
//
// An empty or nil slice is returned as-is; ranking never fails.
func Order(recs []model.ScoredRecommendation) []model.ScoredRecommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return less(recs[i], recs[j])
	})
	return recs
}

func less(a, b model.ScoredRecommendation) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if c := compareDistance(a.DistanceKm, b.DistanceKm); c != 0 {
		return c < 0
	}
	return a.Place.Name < b.Place.Name
}

// compareDistance orders known distances ascending and sorts unknown
// distances after every known one.
func compareDistance(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
