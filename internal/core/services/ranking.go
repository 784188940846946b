package services

import (
	"sort"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

// Merge fuses raw provider candidates into the final ordered list.
//
// Candidates must be concatenated in provider-dispatch order (history,
// place, ride, user): deduplication keeps the first occurrence of each ID,
// which is then also the highest-priority one, so dedup and ranking agree.
// The sort is stable so equal-priority, equal-confidence entries retain
// their relative order. The result is truncated to limit.
func Merge(candidates []domain.SearchResult, limit int) []domain.SearchResult {
	if limit <= 0 {
		limit = domain.DefaultResultLimit
	}

	seen := make(map[string]struct{}, len(candidates))
	unique := make([]domain.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if unique[i].Kind.Priority() != unique[j].Kind.Priority() {
			return unique[i].Kind.Priority() < unique[j].Kind.Priority()
		}
		return unique[i].Confidence > unique[j].Confidence
	})

	if len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}
