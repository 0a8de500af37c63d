package ports

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmbedding indicates the embedding backend was unreachable or returned
// a malformed response. Nothing downstream can run without a vector, so the
// orchestrator treats this as fatal for the request.
var ErrEmbedding = errors.New("embedding failed")

// EmbeddingError wraps the upstream cause of an embedding failure.
type EmbeddingError struct {
	Cause error
}

func (e EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Cause)
}

func (e EmbeddingError) Is(target error) bool { return target == ErrEmbedding }

func (e EmbeddingError) Unwrap() error { return e.Cause }

// Embedder converts text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
