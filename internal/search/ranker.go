package search

import "sort"

// Rank orders candidates by score, highest first, keeping index order among equal
// scores, and keeps at most limit of them. The input slice is reordered in place.
func Rank(candidates []Candidate, limit int) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if limit >= 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
