package ports

import (
	"context"

	"github.com/moodic-labs/moodic/internal/core/domain"
)

// VideoResolver looks up playable videos for a selected recommendation.
// It is a downstream lookup, independent of the ranking pipeline.
// Search runs a free-form query; Resolve narrows a known song down to
// its best playable matches.
type VideoResolver interface {
	Search(ctx context.Context, query string) ([]domain.Video, error)
	Resolve(ctx context.Context, title, artist string) ([]domain.Video, error)
}
