package catalog

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/coder/hnsw"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/ports"
)

// Source serves general-purpose similarity queries from an in-memory HNSW
// graph built over the SQLite corpus. The graph is rebuilt wholesale on
// Refresh; queries hold only a read lock.
type Source struct {
	store *Store
	tag   domain.SourceTag

	mu    sync.RWMutex
	graph *hnsw.Graph[string]
	songs map[string]Song
}

var _ ports.SearchSource = (*Source)(nil)

// NewSource loads the corpus and builds the index. An empty corpus is
// allowed; searches simply return no candidates.
func NewSource(ctx context.Context, store *Store, tag domain.SourceTag) (*Source, error) {
	s := &Source{store: store, tag: tag}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Source) Name() string { return "catalog" }

func (s *Source) Tag() domain.SourceTag { return s.tag }

// Refresh rebuilds the index from the store. Safe to call while serving.
func (s *Source) Refresh(ctx context.Context) error {
	songs, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("catalog source: refresh: %w", err)
	}

	graph := hnsw.NewGraph[string]()
	graph.Distance = hnsw.CosineDistance
	byID := make(map[string]Song, len(songs))
	for _, song := range songs {
		graph.Add(hnsw.MakeNode(song.ID, normalize(song.Embedding)))
		byID[song.ID] = song
	}

	s.mu.Lock()
	s.graph = graph
	s.songs = byID
	s.mu.Unlock()
	return nil
}

// Search finds the nearest songs to the query vector and filters them by
// the similarity threshold. Cosine distance from the graph is mapped back
// to a [0,1] similarity so all sources score on the same scale.
func (s *Source) Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []domain.Candidate{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.graph == nil || s.graph.Len() == 0 {
		return []domain.Candidate{}, nil
	}

	query := normalize(vector)
	neighbors := s.graph.Search(query, limit)

	candidates := make([]domain.Candidate, 0, len(neighbors))
	for _, n := range neighbors {
		song, ok := s.songs[n.Key]
		if !ok {
			continue
		}
		score := distanceToScore(hnsw.CosineDistance(query, n.Value))
		if score < threshold {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			ID:         song.ID,
			Title:      song.Title,
			Artist:     song.Artist,
			Similarity: score,
			Source:     s.tag,
		})
	}
	return candidates, nil
}

// distanceToScore maps cosine distance [0,2] to a similarity in [0,1].
func distanceToScore(distance float32) float64 {
	score := 1 - float64(distance)/2
	if score < 0 {
		return 0
	}
	return score
}

func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}
