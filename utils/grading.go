package utils

import (
	"math"

	"virtualab/apperror"
)

// SameOptionSet reports whether two option lists hold the same set of
// options. Order and repeated entries are ignored.
func SameOptionSet(selected, keys []string) bool {
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	got := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		if _, ok := want[s]; !ok {
			return false
		}
		got[s] = struct{}{}
	}
	return len(got) == len(want)
}

// Score returns round(100 * correct / total, 2). An exercise without
// questions cannot be graded.
func Score(correct, total int) (float64, error) {
	if total <= 0 {
		return 0, apperror.InvalidState("Exercise has no questions to grade!")
	}
	return math.Round(float64(correct)/float64(total)*100*100) / 100, nil
}
