package calculator

import (
	"cmp"
	"math"
	"slices"
)

// TopN returns up to n items ordered by score, descending when desc is set.
// Ties keep their input order. NaN scores sort last in both directions.
func TopN[T any](items []T, n int, score func(T) float64, desc bool) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		sa, sb := score(a), score(b)
		switch na, nb := math.IsNaN(sa), math.IsNaN(sb); {
		case na && nb:
			return 0
		case na:
			return 1
		case nb:
			return -1
		}
		if desc {
			return cmp.Compare(sb, sa)
		}
		return cmp.Compare(sa, sb)
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
