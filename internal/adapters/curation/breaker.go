package curation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/ports"
)

// WithBreaker wraps a provider in a circuit breaker. When the upstream
// LLM keeps failing, further calls are rejected immediately instead of
// burning the request deadline on a dead dependency. Parse errors do not
// trip the breaker; the provider answered, just badly.
type WithBreaker struct {
	inner   ports.CurationProvider
	breaker *gobreaker.CircuitBreaker[domain.CurationResult]
}

var _ ports.CurationProvider = (*WithBreaker)(nil)

// NewWithBreaker wraps inner. The breaker opens after 5 consecutive
// provider failures and probes again after 30 seconds.
func NewWithBreaker(inner ports.CurationProvider) *WithBreaker {
	settings := gobreaker.Settings{
		Name:    "curation/" + inner.Name(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ports.ErrCurationParse)
		},
	}

	return &WithBreaker{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[domain.CurationResult](settings),
	}
}

func (w *WithBreaker) Name() string { return w.inner.Name() }

func (w *WithBreaker) Curate(ctx context.Context, prompt string) (domain.CurationResult, error) {
	result, err := w.breaker.Execute(func() (domain.CurationResult, error) {
		return w.inner.Curate(ctx, prompt)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: w.inner.Name(), Cause: fmt.Errorf("circuit open: %w", err)}
	}
	return result, err
}
