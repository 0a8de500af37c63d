package services

import (
	"fmt"
	"strings"

	"github.com/moodic-labs/moodic/internal/core/domain"
)

const selectionCount = 8

// renderPrompt builds the curation prompt. Candidates are referenced by
// positional index so the provider can point at entries instead of free
// text, which cuts down on hallucinated titles. Selection bounds, genre
// exclusion, and the color contrast rules are part of the prompt contract —
// the provider is trusted to comply.
func renderPrompt(query domain.MoodQuery, candidates []domain.Candidate) string {
	var list strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&list, "ID %d: %q by %q [Matched via: %s]\n", i, c.Title, c.Artist, c.Source)
	}

	return fmt.Sprintf(`User Input: %q
Preferred Genre: %q

Candidate Songs (ranked by similarity):
%s
Task 1: Analyze the user's input and determine a clear visual and emotional "vibe".
Task 2: Select the TOP %d songs from the candidates that best match this vibe.

Color Rules (VERY IMPORTANT):
- Return ONLY a BACKGROUND color.
- Must have high contrast with white text (#FFFFFF).
- Use deep, dark, or saturated colors.
- Avoid light, pastel, neon colors.

Song Rules:
- Strong emotional match only.
- If the user prefers a genre, STRICTLY exclude songs from other genres.
- ONE short sentence explaining why each song fits.

Output Rules:
- STRICT raw JSON
- NO markdown
- EXACT format below

{
  "theme": {
    "moodName": "Short mood name",
    "hexColor": "#RRGGBB"
  },
  "recommendations": [
    {
      "title": "Exact Title",
      "artist": "Exact Artist",
      "reason": "Short reason"
    }
  ]
}
`, query.Mood, query.Genre, list.String(), selectionCount)
}
