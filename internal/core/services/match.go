package services

import (
	"strings"
	"unicode"

	"github.com/moodic-labs/moodic/internal/core/domain"
)

// candidateKey normalizes a (title, artist) pair for membership checks
// against the offered candidate list. Lowercased, punctuation collapsed to
// spaces, so providers that echo titles with minor formatting drift still
// match.
func candidateKey(title, artist string) string {
	return normalizeMatchInput(title) + "|" + normalizeMatchInput(artist)
}

func normalizeMatchInput(input string) string {
	var out strings.Builder
	lastSpace := false
	for _, r := range strings.ToLower(input) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			out.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.Join(strings.Fields(out.String()), " ")
}

// filterToCandidates drops recommendations whose (title, artist) pair does
// not appear in the candidate list. This is the strict-mode guard against
// hallucinated songs; by default the provider output is trusted as-is.
func filterToCandidates(recs []domain.Recommendation, candidates []domain.Candidate) []domain.Recommendation {
	offered := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		offered[candidateKey(c.Title, c.Artist)] = struct{}{}
	}

	kept := recs[:0:0]
	for _, rec := range recs {
		if _, ok := offered[candidateKey(rec.Title, rec.Artist)]; ok {
			kept = append(kept, rec)
		}
	}
	return kept
}
