package curation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/ports"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.0-flash"
)

// GeminiConfig holds the Gemini provider settings.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Gemini implements ports.CurationProvider against the generateContent
// endpoint. The response MIME type is pinned to JSON so the model skips
// markdown fences, but the parser still tolerates them.
type Gemini struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ ports.CurationProvider = (*Gemini)(nil)

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGemini builds the provider. The API key is required.
func NewGemini(cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &Gemini{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (g *Gemini) Name() string { return "gemini" }

// Curate sends the prompt and parses the JSON reply.
func (g *Gemini) Curate(ctx context.Context, prompt string) (domain.CurationResult, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      0.7,
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: g.Name(), Cause: fmt.Errorf("marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: g.Name(), Cause: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: g.Name(), Cause: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: g.Name(), Cause: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: g.Name(), Cause: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.Error != nil {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: g.Name(), Cause: fmt.Errorf("%s", parsed.Error.Message)}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return domain.CurationResult{}, ports.CurationProviderError{Provider: g.Name(), Cause: fmt.Errorf("empty response")}
	}

	return extractResult(parsed.Candidates[0].Content.Parts[0].Text)
}
