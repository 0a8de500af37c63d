package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/ports"
)

// --- Mocks ---

type mockEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vector, nil
}

type mockSource struct {
	name       string
	tag        domain.SourceTag
	candidates []domain.Candidate
	err        error
}

func (m *mockSource) Name() string          { return m.name }
func (m *mockSource) Tag() domain.SourceTag { return m.tag }

func (m *mockSource) Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]domain.Candidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates, nil
}

type mockProvider struct {
	result domain.CurationResult
	err    error
	calls  int
	prompt string
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Curate(ctx context.Context, prompt string) (domain.CurationResult, error) {
	m.calls++
	m.prompt = prompt
	if m.err != nil {
		return domain.CurationResult{}, m.err
	}
	return m.result, nil
}

func candidates(tag domain.SourceTag, pairs ...[2]string) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, domain.Candidate{
			ID:         p[0] + "/" + p[1],
			Title:      p[0],
			Artist:     p[1],
			Similarity: 0.9 - float64(i)*0.05,
			Source:     tag,
		})
	}
	return out
}

func newTestOrchestrator(embedder *mockEmbedder, provider *mockProvider, opts Options, sources ...SourceSpec) *Orchestrator {
	return NewOrchestrator(embedder, sources, provider, opts, nil)
}

func TestRecommend_EmptyMoodRejected(t *testing.T) {
	o := newTestOrchestrator(&mockEmbedder{}, &mockProvider{}, Options{})

	_, err := o.Recommend(context.Background(), domain.MoodQuery{Mood: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyMood)
}

func TestRecommend_HappyPath(t *testing.T) {
	embedder := &mockEmbedder{vector: []float32{0.1, 0.2}}
	provider := &mockProvider{
		result: domain.CurationResult{
			Theme: &domain.Theme{MoodName: "Stormy Hope", HexColor: "#1a2b3c"},
			Recommendations: []domain.Recommendation{
				{Title: "Fix You", Artist: "Coldplay", Reason: "rises from heavy to hopeful"},
			},
		},
	}
	source := &mockSource{
		name: "lyrics", tag: domain.SourceLyrics,
		candidates: candidates(domain.SourceLyrics, [2]string{"Fix You", "Coldplay"}),
	}

	o := newTestOrchestrator(embedder, provider, Options{}, SourceSpec{Source: source, Priority: 0, Threshold: 0.25, Limit: 20})

	set, err := o.Recommend(context.Background(), domain.MoodQuery{Mood: "feeling overwhelmed but hopeful", Genre: "rock"})
	require.NoError(t, err)
	require.Len(t, set.Recommendations, 1)

	rec := set.Recommendations[0]
	assert.Equal(t, "Fix You", rec.Title)
	assert.Equal(t, BuildSearchLink("Fix You", "Coldplay"), rec.Link)
	assert.Equal(t, "Stormy Hope", set.Theme.MoodName)
	assert.Equal(t, 1, embedder.calls)
	assert.Contains(t, provider.prompt, `ID 0: "Fix You" by "Coldplay"`)
	assert.Contains(t, provider.prompt, "feeling overwhelmed but hopeful")
	assert.Contains(t, provider.prompt, `Preferred Genre: "rock"`)
}

func TestRecommend_EmptyRetrievalSkipsCuration(t *testing.T) {
	provider := &mockProvider{}
	source := &mockSource{name: "lyrics", tag: domain.SourceLyrics}

	o := newTestOrchestrator(&mockEmbedder{vector: []float32{1}}, provider, Options{},
		SourceSpec{Source: source, Priority: 0, Threshold: 0.25, Limit: 20})

	set, err := o.Recommend(context.Background(), domain.MoodQuery{Mood: "anything"})
	require.NoError(t, err)
	assert.Empty(t, set.Recommendations)
	assert.Equal(t, domain.NeutralTheme(), set.Theme)
	assert.Zero(t, provider.calls, "curation provider must not be invoked on empty retrieval")
}

func TestRecommend_SourceFailureDegrades(t *testing.T) {
	provider := &mockProvider{
		result: domain.CurationResult{
			Recommendations: []domain.Recommendation{{Title: "Song", Artist: "Band", Reason: "fits"}},
		},
	}
	broken := &mockSource{name: "lyrics", tag: domain.SourceLyrics, err: errors.New("qdrant down")}
	healthy := &mockSource{
		name: "general", tag: domain.SourceGeneral,
		candidates: candidates(domain.SourceGeneral, [2]string{"Song", "Band"}),
	}

	o := newTestOrchestrator(&mockEmbedder{vector: []float32{1}}, provider, Options{},
		SourceSpec{Source: broken, Priority: 0, Threshold: 0.25, Limit: 20},
		SourceSpec{Source: healthy, Priority: 1, Threshold: 0.20, Limit: 20},
	)

	set, err := o.Recommend(context.Background(), domain.MoodQuery{Mood: "rainy evening"})
	require.NoError(t, err)
	assert.Len(t, set.Recommendations, 1, "one failed source must not abort the run")
}

func TestRecommend_EmbeddingFailure(t *testing.T) {
	embedErr := errors.New("backend unreachable")

	t.Run("fail soft", func(t *testing.T) {
		o := newTestOrchestrator(&mockEmbedder{err: embedErr}, &mockProvider{}, Options{FailMode: FailSoft})
		set, err := o.Recommend(context.Background(), domain.MoodQuery{Mood: "calm"})
		require.NoError(t, err)
		assert.Empty(t, set.Recommendations)
		assert.Equal(t, domain.NeutralTheme(), set.Theme)
	})

	t.Run("fail loud", func(t *testing.T) {
		o := newTestOrchestrator(&mockEmbedder{err: embedErr}, &mockProvider{}, Options{FailMode: FailLoud})
		_, err := o.Recommend(context.Background(), domain.MoodQuery{Mood: "calm"})
		assert.ErrorIs(t, err, ports.ErrEmbedding)
	})
}

func TestRecommend_CurationFailureFollowsFailMode(t *testing.T) {
	source := &mockSource{
		name: "lyrics", tag: domain.SourceLyrics,
		candidates: candidates(domain.SourceLyrics, [2]string{"Song", "Band"}),
	}
	provider := &mockProvider{err: ports.CurationProviderError{Provider: "groq", Cause: errors.New("429")}}

	t.Run("fail loud keeps the typed error", func(t *testing.T) {
		o := newTestOrchestrator(&mockEmbedder{vector: []float32{1}}, provider, Options{FailMode: FailLoud},
			SourceSpec{Source: source, Priority: 0, Threshold: 0.25, Limit: 20})
		_, err := o.Recommend(context.Background(), domain.MoodQuery{Mood: "calm"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrCurationProvider)
		assert.True(t, IsRetryable(err))
	})

	t.Run("fail soft returns neutral success", func(t *testing.T) {
		o := newTestOrchestrator(&mockEmbedder{vector: []float32{1}}, provider, Options{FailMode: FailSoft},
			SourceSpec{Source: source, Priority: 0, Threshold: 0.25, Limit: 20})
		set, err := o.Recommend(context.Background(), domain.MoodQuery{Mood: "calm"})
		require.NoError(t, err)
		assert.Empty(t, set.Recommendations)
	})
}

func TestRecommend_StrictModeDropsHallucinations(t *testing.T) {
	source := &mockSource{
		name: "lyrics", tag: domain.SourceLyrics,
		candidates: candidates(domain.SourceLyrics, [2]string{"Real Song", "Real Band"}),
	}
	provider := &mockProvider{
		result: domain.CurationResult{
			Recommendations: []domain.Recommendation{
				{Title: "Real Song", Artist: "Real Band", Reason: "exists"},
				{Title: "Made Up", Artist: "Nobody", Reason: "hallucinated"},
			},
		},
	}

	o := newTestOrchestrator(&mockEmbedder{vector: []float32{1}}, provider, Options{Strict: true},
		SourceSpec{Source: source, Priority: 0, Threshold: 0.25, Limit: 20})

	set, err := o.Recommend(context.Background(), domain.MoodQuery{Mood: "calm"})
	require.NoError(t, err)
	require.Len(t, set.Recommendations, 1)
	assert.Equal(t, "Real Song", set.Recommendations[0].Title)
}

func TestRecommend_InvalidThemeFallsBackToNeutral(t *testing.T) {
	source := &mockSource{
		name: "lyrics", tag: domain.SourceLyrics,
		candidates: candidates(domain.SourceLyrics, [2]string{"Song", "Band"}),
	}
	provider := &mockProvider{
		result: domain.CurationResult{
			Theme:           &domain.Theme{MoodName: "Bad", HexColor: "blue"},
			Recommendations: []domain.Recommendation{{Title: "Song", Artist: "Band", Reason: "fits"}},
		},
	}

	o := newTestOrchestrator(&mockEmbedder{vector: []float32{1}}, provider, Options{},
		SourceSpec{Source: source, Priority: 0, Threshold: 0.25, Limit: 20})

	set, err := o.Recommend(context.Background(), domain.MoodQuery{Mood: "calm"})
	require.NoError(t, err)
	assert.Equal(t, domain.NeutralTheme(), set.Theme)
}

func TestBuildSearchLink_Deterministic(t *testing.T) {
	first := BuildSearchLink("Fix You", "Coldplay")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildSearchLink("Fix You", "Coldplay"))
	}
	assert.Contains(t, first, "https://www.youtube.com/results?search_query=")
	assert.Contains(t, first, "official+audio")
}

func TestFilterToCandidates_NormalizesFormattingDrift(t *testing.T) {
	offered := []domain.Candidate{{Title: "Don't Stop Me Now", Artist: "Queen"}}
	recs := []domain.Recommendation{
		{Title: "don't stop me now", Artist: "QUEEN", Reason: "case drift"},
		{Title: "Bohemian Rhapsody", Artist: "Queen", Reason: "not offered"},
	}

	kept := filterToCandidates(recs, offered)
	require.Len(t, kept, 1)
	assert.Equal(t, "don't stop me now", kept[0].Title)
}
