package ports

import (
	"context"

	"github.com/moodic-labs/moodic/internal/core/domain"
)

// SearchSource is a similarity index queried with a mood vector.
// A zero-row result is valid, not an error.
type SearchSource interface {
	// Name identifies the source in logs and fusion diagnostics.
	Name() string
	// Tag is the priority label stamped onto every candidate this source returns.
	Tag() domain.SourceTag
	// Search returns candidates scoring at or above threshold, capped at limit.
	Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]domain.Candidate, error)
}
