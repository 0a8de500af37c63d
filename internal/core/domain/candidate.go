package domain

// SourceTag identifies which similarity index produced a candidate.
type SourceTag string

const (
	// SourceLyrics is the lyrics-focused index. It always wins ties.
	SourceLyrics SourceTag = "lyrics"
	// SourceGeneral is the general-purpose index.
	SourceGeneral SourceTag = "general"
)

// Candidate is a song returned by a similarity search source.
// ID is opaque and unique within a source; Similarity is the source's own
// score (cosine metrics land in [0,1] here, but the fusion order only
// assumes "higher is closer").
type Candidate struct {
	ID         string
	Title      string
	Artist     string
	Similarity float64
	Source     SourceTag
}
