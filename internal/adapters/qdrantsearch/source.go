// Package qdrantsearch implements the lyrics-focused similarity source on
// top of a Qdrant collection of song embeddings.
package qdrantsearch

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/ports"
)

// Config locates the Qdrant collection holding the song corpus.
type Config struct {
	Host       string
	Port       int
	APIKey     string
	Collection string
}

// Source queries a Qdrant collection and maps scored points to candidates.
// The corpus is read-only from the pipeline's perspective.
type Source struct {
	api        *qdrant.Client
	collection string
	tag        domain.SourceTag
}

var _ ports.SearchSource = (*Source)(nil)

// NewSource connects to Qdrant. The gRPC connection is lightweight, so a
// health check runs immediately to fail fast on a bad endpoint.
func NewSource(ctx context.Context, cfg Config, tag domain.SourceTag) (*Source, error) {
	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   port,
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant source: initialize client: %w", err)
	}

	if _, err := client.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("qdrant source: health check: %w", err)
	}

	return &Source{api: client, collection: cfg.Collection, tag: tag}, nil
}

func (s *Source) Name() string { return "qdrant/" + s.collection }

func (s *Source) Tag() domain.SourceTag { return s.tag }

// Search runs a similarity query with the score threshold pushed down to
// the server. Zero rows is a valid result.
func (s *Source) Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]domain.Candidate, error) {
	if limit <= 0 {
		return []domain.Candidate{}, nil
	}

	capped := uint64(limit)
	scoreThreshold := float32(threshold)
	points, err := s.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &capped,
		ScoreThreshold: &scoreThreshold,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant source: query %s: %w", s.collection, err)
	}

	candidates := make([]domain.Candidate, 0, len(points))
	for _, p := range points {
		candidate, err := s.mapPoint(p)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func (s *Source) mapPoint(p *qdrant.ScoredPoint) (domain.Candidate, error) {
	var id string
	switch v := p.Id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		id = fmt.Sprintf("%d", v.Num)
	case *qdrant.PointId_Uuid:
		id = v.Uuid
	default:
		return domain.Candidate{}, fmt.Errorf("qdrant source: unexpected point id type %T", v)
	}

	return domain.Candidate{
		ID:         id,
		Title:      payloadString(p.Payload, "title"),
		Artist:     payloadString(p.Payload, "artist"),
		Similarity: float64(p.Score),
		Source:     s.tag,
	}, nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if payload == nil {
		return ""
	}
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
