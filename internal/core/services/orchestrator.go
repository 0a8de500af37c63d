package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/fusion"
	"github.com/moodic-labs/moodic/internal/core/ports"
)

// FailMode decides what a pipeline failure looks like to the caller.
type FailMode string

const (
	// FailSoft degrades to an empty-recommendations success with the
	// neutral theme.
	FailSoft FailMode = "soft"
	// FailLoud surfaces a typed error so the transport can answer 5xx and
	// the client retry layer can kick in.
	FailLoud FailMode = "loud"
)

// SourceSpec binds a similarity source to its retrieval parameters and
// fusion priority (0 = highest).
type SourceSpec struct {
	Source    ports.SearchSource
	Priority  int
	Threshold float64
	Limit     int
}

// Options are the tunable pipeline parameters; the near-duplicate constants
// of earlier revisions are consolidated here.
type Options struct {
	FusedCap int
	FailMode FailMode
	// Strict drops curated songs that are not in the offered candidate
	// list. Off by default: the provider is trusted per the prompt contract.
	Strict bool
}

// RecommendationSet is the normalized pipeline result.
type RecommendationSet struct {
	Theme           domain.Theme                 `json:"theme"`
	Recommendations []domain.FinalRecommendation `json:"recommendations"`
}

func emptySet() RecommendationSet {
	return RecommendationSet{
		Theme:           domain.NeutralTheme(),
		Recommendations: []domain.FinalRecommendation{},
	}
}

// Orchestrator runs the embed -> retrieve -> fuse -> curate pipeline for a
// single mood query. It holds no per-request state; every stage produces a
// new value from the previous one.
type Orchestrator struct {
	embedder ports.Embedder
	sources  []SourceSpec
	provider ports.CurationProvider
	opts     Options
	logger   *zap.Logger
}

// NewOrchestrator wires the pipeline. The provider strategy is fixed here;
// nothing downstream branches on provider identity again.
func NewOrchestrator(embedder ports.Embedder, sources []SourceSpec, provider ports.CurationProvider, opts Options, logger *zap.Logger) *Orchestrator {
	if opts.FusedCap <= 0 {
		opts.FusedCap = 20
	}
	if opts.FailMode == "" {
		opts.FailMode = FailSoft
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		embedder: embedder,
		sources:  sources,
		provider: provider,
		opts:     opts,
		logger:   logger,
	}
}

// Recommend executes the full pipeline. Validation failures are always
// returned as errors; downstream stage failures follow the configured fail
// mode. Raw upstream errors never leave this method unwrapped.
func (o *Orchestrator) Recommend(ctx context.Context, query domain.MoodQuery) (RecommendationSet, error) {
	if query.Mood == "" {
		return RecommendationSet{}, domain.ErrEmptyMood
	}
	if query.Genre == "" {
		query.Genre = domain.DefaultGenre
	}

	requestID := uuid.NewString()
	log := o.logger.With(zap.String("request_id", requestID))
	log.Info("recommendation requested", zap.String("genre", query.Genre))

	vector, err := o.embedder.Embed(ctx, query.Mood)
	if err != nil {
		log.Error("embedding failed", zap.Error(err))
		return o.fail(ports.EmbeddingError{Cause: err})
	}

	candidates := o.retrieve(ctx, log, vector)
	if len(candidates) == 0 {
		// A dry corpus is a success path: empty list, neutral theme, no
		// curation call.
		log.Info("no candidates above threshold, skipping curation")
		return emptySet(), nil
	}

	result, err := o.provider.Curate(ctx, renderPrompt(query, candidates))
	if err != nil {
		log.Error("curation failed", zap.String("provider", o.provider.Name()), zap.Error(err))
		return o.fail(err)
	}

	recs := result.Recommendations
	if o.opts.Strict {
		before := len(recs)
		recs = filterToCandidates(recs, candidates)
		if dropped := before - len(recs); dropped > 0 {
			log.Warn("dropped hallucinated recommendations", zap.Int("dropped", dropped))
		}
	}

	set := RecommendationSet{
		Theme:           domain.NeutralTheme(),
		Recommendations: make([]domain.FinalRecommendation, 0, len(recs)),
	}
	if result.Theme != nil && result.Theme.Valid() {
		set.Theme = *result.Theme
	}
	for _, rec := range recs {
		set.Recommendations = append(set.Recommendations, domain.FinalRecommendation{
			Title:  rec.Title,
			Artist: rec.Artist,
			Reason: rec.Reason,
			Link:   BuildSearchLink(rec.Title, rec.Artist),
		})
	}

	log.Info("recommendation completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("recommendations", len(set.Recommendations)),
	)
	return set, nil
}

// retrieve fans out to every configured source concurrently and fuses the
// collected results in priority order. A failing source contributes zero
// candidates but never aborts the run; arrival order is irrelevant because
// fusion happens only after all sources return.
func (o *Orchestrator) retrieve(ctx context.Context, log *zap.Logger, vector []float32) []domain.Candidate {
	results := make([]fusion.SourceResult, len(o.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range o.sources {
		g.Go(func() error {
			found, err := spec.Source.Search(gctx, vector, spec.Threshold, spec.Limit)
			if err != nil {
				log.Warn("search source failed",
					zap.String("source", spec.Source.Name()),
					zap.Error(err),
				)
				results[i] = fusion.SourceResult{Priority: spec.Priority}
				return nil
			}
			for j := range found {
				found[j].Source = spec.Source.Tag()
			}
			results[i] = fusion.SourceResult{Priority: spec.Priority, Candidates: found}
			return nil
		})
	}
	_ = g.Wait()

	return fusion.Fuse(results, o.opts.FusedCap)
}

func (o *Orchestrator) fail(cause error) (RecommendationSet, error) {
	if o.opts.FailMode == FailSoft {
		return emptySet(), nil
	}
	return RecommendationSet{}, fmt.Errorf("service: recommendation pipeline: %w", cause)
}

// IsRetryable reports whether an error from Recommend indicates a transient
// upstream condition rather than a contract violation.
func IsRetryable(err error) bool {
	return errors.Is(err, ports.ErrCurationProvider)
}
