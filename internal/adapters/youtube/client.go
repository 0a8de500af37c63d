// Package youtube resolves curated songs to playable videos through the
// YouTube Data API v3 search endpoint.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Queries are pinned to music-category, embeddable uploads so the reel
// and reaction noise is cut down before ranking even starts.
const (
	musicCategoryID = "10"
	searchPageSize  = 5
)

// ClientConfig configures the API client. Exactly one of APIKey or OAuth
// is used; OAuth wins when both are set.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	OAuth   *clientcredentials.Config
}

// Client is the raw HTTP client for the search endpoint.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	maxRetries  int
	baseBackoff time.Duration
}

// NewClient constructs the client. With an OAuth config the underlying
// transport refreshes tokens itself; otherwise the API key rides along
// as a query parameter.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" && cfg.OAuth == nil {
		return nil, fmt.Errorf("youtube adapter: api key or oauth config is required")
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	if cfg.OAuth != nil {
		httpClient = cfg.OAuth.Client(context.Background())
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		maxRetries:  3,
		baseBackoff: 500 * time.Millisecond,
	}, nil
}

// Search runs a video search and returns the raw API items.
func (c *Client) Search(ctx context.Context, query string) ([]searchItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("videoCategoryId", musicCategoryID)
	params.Set("videoEmbeddable", "true")
	params.Set("maxResults", fmt.Sprintf("%d", searchPageSize))
	params.Set("q", query)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("youtube adapter: build request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube adapter: status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("youtube adapter: decode response: %w", err)
	}

	return parsed.Items, nil
}
