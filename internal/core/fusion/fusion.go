// Package fusion merges candidate lists from multiple similarity sources
// into one deduplicated, priority-ordered list.
package fusion

import (
	"sort"

	"github.com/moodic-labs/moodic/internal/core/domain"
)

// SourceResult is one source's contribution, carrying its priority rank.
// Priority 0 is the highest.
type SourceResult struct {
	Priority   int
	Candidates []domain.Candidate
}

type rankedCandidate struct {
	domain.Candidate
	priority int
	seen     int // insertion order, keeps the sort stable
}

// Fuse merges source results under the first-seen-wins policy and returns at
// most cap candidates.
//
// Sources are processed in ascending priority order, so an ID claimed by a
// higher-priority source can never be overwritten by a lower-priority one.
// The output is ordered by (priority asc, similarity desc): a low-scored
// candidate from the lyrics index still outranks every candidate from the
// general index.
func Fuse(results []SourceResult, cap int) []domain.Candidate {
	if cap <= 0 || len(results) == 0 {
		return []domain.Candidate{}
	}

	ordered := make([]SourceResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	merged := make(map[string]rankedCandidate)
	order := make([]string, 0)
	for _, res := range ordered {
		for _, c := range res.Candidates {
			if c.ID == "" {
				continue
			}
			if _, exists := merged[c.ID]; exists {
				continue
			}
			merged[c.ID] = rankedCandidate{
				Candidate: c,
				priority:  res.Priority,
				seen:      len(order),
			}
			order = append(order, c.ID)
		}
	}

	ranked := make([]rankedCandidate, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, merged[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].priority != ranked[j].priority {
			return ranked[i].priority < ranked[j].priority
		}
		if ranked[i].Similarity != ranked[j].Similarity {
			return ranked[i].Similarity > ranked[j].Similarity
		}
		return ranked[i].seen < ranked[j].seen
	})

	if len(ranked) > cap {
		ranked = ranked[:cap]
	}

	out := make([]domain.Candidate, len(ranked))
	for i, rc := range ranked {
		out[i] = rc.Candidate
	}
	return out
}
