// Package embedding converts mood text into vectors through any
// OpenAI-compatible embedding backend.
package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/moodic-labs/moodic/internal/core/ports"
)

// Config holds the embedding backend settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
}

// Client implements ports.Embedder over the OpenAI embeddings API. Every
// mood re-embeds; moods are effectively unique per request so a cache buys
// little.
type Client struct {
	api        *openai.Client
	model      string
	dimensions int
}

var _ ports.Embedder = (*Client)(nil)

// NewClient builds the embedding client. BaseURL selects the concrete
// provider (openai, gemini's compatibility endpoint, groq, ollama, ...).
func NewClient(cfg Config) (*Client, error) {
	if cfg.Model == "" {
		return nil, errors.New("embedding: model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:        openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed generates the vector for a single text. Callers validate that text
// is non-empty; an empty input here is a programming error upstream.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: c.dimensions,
	}

	resp, err := c.api.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, ports.EmbeddingError{Cause: fmt.Errorf("create embeddings: %w", err)}
	}
	if len(resp.Data) == 0 {
		return nil, ports.EmbeddingError{Cause: errors.New("empty embedding response")}
	}

	return resp.Data[0].Embedding, nil
}

// Dimensions returns the configured vector dimension, 0 when the backend
// default is used.
func (c *Client) Dimensions() int {
	return c.dimensions
}
