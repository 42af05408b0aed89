package search

import (
	"sort"

	"github.com/gcbaptista/recipe-search/services"
)

// DefaultResultLimit is the number of hits returned when no limit is configured.
const DefaultResultLimit = 10

// TopN orders scores and keeps the first n entries. Equal scores are ordered
// by ascending document id. A non-positive n uses DefaultResultLimit.
func TopN(scores ScoreMap, n int, descending bool) []services.HitResult {
	if n <= 0 {
		n = DefaultResultLimit
	}

	hits := make([]services.HitResult, 0, len(scores))
	for docID, score := range scores {
		hits = append(hits, services.HitResult{DocumentID: docID, Score: score})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			if descending {
				return hits[i].Score > hits[j].Score
			}
			return hits[i].Score < hits[j].Score
		}
		return hits[i].DocumentID < hits[j].DocumentID
	})

	if len(hits) > n {
		hits = hits[:n]
	}
	return hits
}
