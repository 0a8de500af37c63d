// Package client is the Go client for the Moodic API. It wraps the
// recommendation call in a fixed-delay retry loop so short pipeline
// hiccups (cold LLM, rate limits) never surface to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 1500 * time.Millisecond
)

// ErrRetriesExhausted is returned when every attempt failed. The last
// attempt's error is wrapped underneath.
var ErrRetriesExhausted = errors.New("client: retries exhausted")

// StatusFunc receives interim progress notes between attempts, e.g. to
// keep a UI spinner honest while the backend is slow.
type StatusFunc func(message string)

// Theme is the visual mood returned with a recommendation set.
type Theme struct {
	MoodName string `json:"moodName"`
	HexColor string `json:"hexColor"`
}

// Recommendation is one curated song.
type Recommendation struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Reason string `json:"reason"`
	Link   string `json:"link"`
}

// RecommendationSet mirrors the API response shape. The types are
// declared here so importers of this package stay decoupled from the
// server's internal packages.
type RecommendationSet struct {
	Theme           Theme            `json:"theme"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Options tune the retry behavior. Zero values fall back to defaults.
type Options struct {
	MaxAttempts int
	RetryDelay  time.Duration
	HTTPClient  *http.Client
	OnStatus    StatusFunc
}

// Client talks to a Moodic API instance.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	retryDelay  time.Duration
	onStatus    StatusFunc
}

// New builds a client for the given base URL.
func New(baseURL string, opts Options) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("client: base url is required")
	}

	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	if opts.OnStatus == nil {
		opts.OnStatus = func(string) {}
	}

	return &Client{
		baseURL:     baseURL,
		httpClient:  opts.HTTPClient,
		maxAttempts: opts.MaxAttempts,
		retryDelay:  opts.RetryDelay,
		onStatus:    opts.OnStatus,
	}, nil
}

// Recommend requests curated songs for a mood. Any transport error or
// non-2xx status counts as a failed attempt; attempts are spaced by a
// fixed delay rather than backoff because the dominant failure mode is
// a briefly overloaded LLM, not a congested network.
func (c *Client) Recommend(ctx context.Context, mood, genre string) (RecommendationSet, error) {
	if strings.TrimSpace(mood) == "" {
		return RecommendationSet{}, errors.New("client: mood is required")
	}

	body, err := json.Marshal(map[string]string{"mood": mood, "genre": genre})
	if err != nil {
		return RecommendationSet{}, fmt.Errorf("client: marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			c.onStatus(fmt.Sprintf("This is taking longer than expected... (attempt %d of %d)", attempt, c.maxAttempts))
			if err := sleepWithContext(ctx, c.retryDelay); err != nil {
				return RecommendationSet{}, err
			}
		}

		set, err := c.recommendOnce(ctx, body)
		if err == nil {
			return set, nil
		}
		lastErr = err
	}

	return RecommendationSet{}, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, c.maxAttempts, lastErr)
}

// Ping checks the API health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("client: health check status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) recommendOnce(ctx context.Context, body []byte) (RecommendationSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/recommendations", bytes.NewReader(body))
	if err != nil {
		return RecommendationSet{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RecommendationSet{}, fmt.Errorf("client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return RecommendationSet{}, fmt.Errorf("client: status %d", resp.StatusCode)
	}

	var set RecommendationSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return RecommendationSet{}, fmt.Errorf("client: decode response: %w", err)
	}
	return set, nil
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("client: canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
