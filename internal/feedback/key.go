package feedback

import (
	"sort"
	"strconv"
	"strings"
)

// CacheKey builds the canonical cache key for a set of missed questions on a
// quiz. The ids are deduplicated and sorted ascending so that the same miss
// set always maps to the same key, e.g. "7_3,9".
func CacheKey(quizID int64, incorrect []int64) string {
	seen := make(map[int64]bool, len(incorrect))
	ids := make([]int64, 0, len(incorrect))
	for _, id := range incorrect {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strconv.FormatInt(quizID, 10) + "_" + strings.Join(parts, ",")
}
