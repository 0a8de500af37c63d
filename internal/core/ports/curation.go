package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/moodic-labs/moodic/internal/core/domain"
)

// ErrCurationParse indicates the provider answered but the text contained no
// parseable JSON — a response-contract violation, distinct from an outage.
var ErrCurationParse = errors.New("curation response is not valid JSON")

// ErrCurationProvider indicates the backend call itself failed (timeout,
// auth, rate limit). Retryable at the client layer.
var ErrCurationProvider = errors.New("curation provider unavailable")

// CurationParseError carries the raw text that failed to parse.
type CurationParseError struct {
	Raw   string
	Cause error
}

func (e CurationParseError) Error() string {
	return fmt.Sprintf("curation parse failed: %v", e.Cause)
}

func (e CurationParseError) Is(target error) bool { return target == ErrCurationParse }

func (e CurationParseError) Unwrap() error { return e.Cause }

// CurationProviderError wraps an upstream provider failure.
type CurationProviderError struct {
	Provider string
	Cause    error
}

func (e CurationProviderError) Error() string {
	return fmt.Sprintf("curation provider %s: %v", e.Provider, e.Cause)
}

func (e CurationProviderError) Is(target error) bool { return target == ErrCurationProvider }

func (e CurationProviderError) Unwrap() error { return e.Cause }

// CurationProvider selects and justifies a subset of candidates from a
// rendered prompt. Exactly one concrete provider is active per deployment,
// chosen at startup.
type CurationProvider interface {
	Name() string
	Curate(ctx context.Context, prompt string) (domain.CurationResult, error)
}
