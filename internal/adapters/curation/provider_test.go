package curation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/ports"
)

func geminiBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(b)
}

func TestGemini_Curate(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		wantTheme string
	}{
		{
			name:      "success",
			status:    http.StatusOK,
			body:      geminiBody(`{"theme":{"moodName":"Stormy","hexColor":"#1e3a5f"},"recommendations":[{"title":"Riders on the Storm","artist":"The Doors","reason":"Literal storm."}]}`),
			wantTheme: "Stormy",
		},
		{
			name:      "fenced output still parses",
			status:    http.StatusOK,
			body:      geminiBody("```json\n{\"theme\":{\"moodName\":\"Soft\",\"hexColor\":\"#312e81\"},\"recommendations\":[]}\n```"),
			wantTheme: "Soft",
		},
		{
			name:    "server error",
			status:  http.StatusServiceUnavailable,
			body:    `{"error":{"message":"overloaded"}}`,
			wantErr: ports.ErrCurationProvider,
		},
		{
			name:    "empty candidates",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantErr: ports.ErrCurationProvider,
		},
		{
			name:    "non-json reply",
			status:  http.StatusOK,
			body:    geminiBody("I cannot produce JSON today."),
			wantErr: ports.ErrCurationParse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
				assert.Contains(t, r.URL.Path, ":generateContent")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			provider, err := NewGemini(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
			require.NoError(t, err)

			result, err := provider.Curate(context.Background(), "prompt")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result.Theme)
			assert.Equal(t, tc.wantTheme, result.Theme.MoodName)
		})
	}
}

func TestGemini_RequiresAPIKey(t *testing.T) {
	_, err := NewGemini(GeminiConfig{})
	assert.Error(t, err)
}

func TestGroq_Curate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		msgs := req["messages"].([]any)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"[{\"title\":\"Ivy\",\"artist\":\"Frank Ocean\",\"reason\":\"Wistful.\"}]"}}]}`)
	}))
	defer srv.Close()

	provider, err := NewGroq(GroqConfig{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	result, err := provider.Curate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Nil(t, result.Theme, "bare array carries no theme")
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Ivy", result.Recommendations[0].Title)
}

func TestGroq_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider, err := NewGroq(GroqConfig{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = provider.Curate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ports.ErrCurationProvider)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(ProviderConfig{Provider: "gemini", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	p, err = NewProvider(ProviderConfig{Provider: "groq", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "groq", p.Name())

	_, err = NewProvider(ProviderConfig{Provider: "openai", APIKey: "k"})
	assert.Error(t, err)
}

type flakyProvider struct {
	calls int
	fail  bool
}

func (f *flakyProvider) Name() string { return "flaky" }

func (f *flakyProvider) Curate(context.Context, string) (domain.CurationResult, error) {
	f.calls++
	if f.fail {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: "flaky", Cause: fmt.Errorf("down")}
	}
	return domain.CurationResult{}, nil
}

func TestWithBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &flakyProvider{fail: true}
	wrapped := NewWithBreaker(inner)

	for i := 0; i < 5; i++ {
		_, err := wrapped.Curate(context.Background(), "p")
		assert.ErrorIs(t, err, ports.ErrCurationProvider)
	}
	require.Equal(t, 5, inner.calls)

	// Breaker is open now; the inner provider is no longer called.
	_, err := wrapped.Curate(context.Background(), "p")
	assert.ErrorIs(t, err, ports.ErrCurationProvider)
	assert.Equal(t, 5, inner.calls)
}

func TestWithBreaker_PassesSuccessThrough(t *testing.T) {
	inner := &flakyProvider{}
	wrapped := NewWithBreaker(inner)

	_, err := wrapped.Curate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "flaky", wrapped.Name())
}
