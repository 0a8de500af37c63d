package youtube

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/ports"
)

const (
	resolveLimit = 3
	cacheSize    = 512
	watchBaseURL = "https://www.youtube.com/watch?v="
)

// Resolver implements ports.VideoResolver with an LRU cache in front of
// the API. Song titles repeat heavily across moods, and the Data API
// search quota is the scarcest resource in the system.
type Resolver struct {
	client *Client
	cache  *lru.Cache[string, []domain.Video]
}

var _ ports.VideoResolver = (*Resolver)(nil)

// NewResolver builds the resolver and its cache.
func NewResolver(client *Client) (*Resolver, error) {
	cache, err := lru.New[string, []domain.Video](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("youtube adapter: create cache: %w", err)
	}
	return &Resolver{client: client, cache: cache}, nil
}

// Search runs a free-form query and returns the ranked playable matches.
func (r *Resolver) Search(ctx context.Context, query string) ([]domain.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("youtube adapter: empty query")
	}

	if cached, ok := r.cache.Get(query); ok {
		return cached, nil
	}

	items, err := r.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	ranked := rankItems(items, query, "")
	if len(ranked) > resolveLimit {
		ranked = ranked[:resolveLimit]
	}

	videos := mapItems(ranked)
	r.cache.Add(query, videos)
	return videos, nil
}

// Resolve finds the playable uploads for a known song. Results keep rank
// order; callers wanting a single video take the first.
func (r *Resolver) Resolve(ctx context.Context, title, artist string) ([]domain.Video, error) {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" || artist == "" {
		return nil, fmt.Errorf("youtube adapter: title and artist are required")
	}

	key := normalize(title + " " + artist)
	if cached, ok := r.cache.Get(key); ok {
		return cached, nil
	}

	items, err := r.client.Search(ctx, fmt.Sprintf("%s %s official audio", title, artist))
	if err != nil {
		return nil, err
	}

	ranked := rankItems(items, title, artist)
	if len(ranked) > resolveLimit {
		ranked = ranked[:resolveLimit]
	}

	videos := mapItems(ranked)
	r.cache.Add(key, videos)
	return videos, nil
}

func mapItems(items []searchItem) []domain.Video {
	videos := make([]domain.Video, 0, len(items))
	for _, item := range items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, domain.Video{
			ID:        item.ID.VideoID,
			Title:     item.Snippet.Title,
			Thumbnail: item.thumbnail(),
			Channel:   item.Snippet.ChannelTitle,
			URL:       watchBaseURL + item.ID.VideoID,
		})
	}
	return videos
}
