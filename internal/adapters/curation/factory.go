package curation

import (
	"fmt"

	"github.com/moodic-labs/moodic/internal/core/ports"
)

// ProviderConfig selects and configures the active curation provider.
// The choice is made once at startup; the rest of the system only sees
// the ports.CurationProvider interface.
type ProviderConfig struct {
	Provider string // "gemini" or "groq"
	APIKey   string
	BaseURL  string
	Model    string
}

// NewProvider builds the configured provider.
func NewProvider(cfg ProviderConfig) (ports.CurationProvider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGemini(GeminiConfig{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, Model: cfg.Model})
	case "groq":
		return NewGroq(GroqConfig{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, Model: cfg.Model})
	default:
		return nil, fmt.Errorf("curation: unknown provider %q", cfg.Provider)
	}
}
