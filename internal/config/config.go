// Package config loads runtime configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	Port int `mapstructure:"port"`

	Embedding struct {
		APIKey     string `mapstructure:"api_key"`
		BaseURL    string `mapstructure:"base_url"`
		Model      string `mapstructure:"model"`
		Dimensions int    `mapstructure:"dimensions"`
	} `mapstructure:"embedding"`

	Qdrant struct {
		Host       string `mapstructure:"host"`
		Port       int    `mapstructure:"port"`
		APIKey     string `mapstructure:"api_key"`
		Collection string `mapstructure:"collection"`
	} `mapstructure:"qdrant"`

	Catalog struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"catalog"`

	Curation struct {
		Provider string `mapstructure:"provider"`
		APIKey   string `mapstructure:"api_key"`
		BaseURL  string `mapstructure:"base_url"`
		Model    string `mapstructure:"model"`
	} `mapstructure:"curation"`

	YouTube struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"youtube"`

	Pipeline struct {
		LyricsThreshold  float64 `mapstructure:"lyrics_threshold"`
		LyricsLimit      int     `mapstructure:"lyrics_limit"`
		GeneralThreshold float64 `mapstructure:"general_threshold"`
		GeneralLimit     int     `mapstructure:"general_limit"`
		FusedCap         int     `mapstructure:"fused_cap"`
		FailMode         string  `mapstructure:"fail_mode"`
		Strict           bool    `mapstructure:"strict"`
	} `mapstructure:"pipeline"`

	Worker struct {
		Count     int `mapstructure:"count"`
		QueueSize int `mapstructure:"queue_size"`
	} `mapstructure:"worker"`
}

// Load reads configuration. Environment variables use the MOODIC_ prefix
// with underscores for nesting, e.g. MOODIC_CURATION_PROVIDER=groq.
// A .env file is loaded first when present; real environment wins.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MOODIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// AutomaticEnv only resolves keys viper knows about.
	for _, key := range allKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var allKeys = []string{
	"port",
	"embedding.api_key", "embedding.base_url", "embedding.model", "embedding.dimensions",
	"qdrant.host", "qdrant.port", "qdrant.api_key", "qdrant.collection",
	"catalog.path",
	"curation.provider", "curation.api_key", "curation.base_url", "curation.model",
	"youtube.api_key", "youtube.base_url",
	"pipeline.lyrics_threshold", "pipeline.lyrics_limit",
	"pipeline.general_threshold", "pipeline.general_limit",
	"pipeline.fused_cap", "pipeline.fail_mode", "pipeline.strict",
	"worker.count", "worker.queue_size",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("embedding.model", "text-embedding-004")
	v.SetDefault("qdrant.host", "localhost")
	v.SetDefault("qdrant.port", 6334)
	v.SetDefault("qdrant.collection", "song_lyrics")
	v.SetDefault("catalog.path", "moodic.db")
	v.SetDefault("curation.provider", "gemini")
	v.SetDefault("pipeline.lyrics_threshold", 0.25)
	v.SetDefault("pipeline.lyrics_limit", 20)
	v.SetDefault("pipeline.general_threshold", 0.20)
	v.SetDefault("pipeline.general_limit", 20)
	v.SetDefault("pipeline.fused_cap", 20)
	v.SetDefault("pipeline.fail_mode", "soft")
	v.SetDefault("pipeline.strict", false)
	v.SetDefault("worker.count", 2)
	v.SetDefault("worker.queue_size", 100)
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.Embedding.APIKey == "" {
		return fmt.Errorf("config: embedding api key is required")
	}
	if c.Curation.APIKey == "" {
		return fmt.Errorf("config: curation api key is required")
	}
	switch c.Curation.Provider {
	case "gemini", "groq":
	default:
		return fmt.Errorf("config: unknown curation provider %q", c.Curation.Provider)
	}
	switch c.Pipeline.FailMode {
	case "soft", "loud":
	default:
		return fmt.Errorf("config: unknown fail mode %q", c.Pipeline.FailMode)
	}
	if c.Pipeline.FusedCap <= 0 {
		return fmt.Errorf("config: fused cap must be positive")
	}
	return nil
}
