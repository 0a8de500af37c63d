package curation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/ports"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.3-70b-versatile"

	groqSystemPrompt = "You are a strict JSON API. Respond ONLY with valid raw JSON. No markdown."
)

// GroqConfig holds the Groq provider settings.
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Groq implements ports.CurationProvider over Groq's OpenAI-compatible
// chat completions API.
type Groq struct {
	api   *openai.Client
	model string
}

var _ ports.CurationProvider = (*Groq)(nil)

// NewGroq builds the provider. The API key is required.
func NewGroq(cfg GroqConfig) (*Groq, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq: api key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if clientConfig.BaseURL == "" {
		clientConfig.BaseURL = defaultGroqBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultGroqModel
	}

	return &Groq{
		api:   openai.NewClientWithConfig(clientConfig),
		model: model,
	}, nil
}

func (g *Groq) Name() string { return "groq" }

// Curate sends the prompt as a chat completion and parses the reply.
func (g *Groq) Curate(ctx context.Context, prompt string) (domain.CurationResult, error) {
	resp, err := g.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: groqSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: g.Name(), Cause: fmt.Errorf("chat completion: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: g.Name(), Cause: fmt.Errorf("empty response")}
	}

	return extractResult(resp.Choices[0].Message.Content)
}
