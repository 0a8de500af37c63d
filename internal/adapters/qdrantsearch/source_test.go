package qdrantsearch

import (
	"testing"

	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodic-labs/moodic/internal/core/domain"
)

func TestMapPoint(t *testing.T) {
	s := &Source{collection: "song_lyrics", tag: domain.SourceLyrics}

	t.Run("numeric id with payload", func(t *testing.T) {
		point := &qdrant.ScoredPoint{
			Id:    qdrant.NewIDNum(42),
			Score: 0.87,
			Payload: qdrant.NewValueMap(map[string]any{
				"title":  "Fix You",
				"artist": "Coldplay",
			}),
		}

		c, err := s.mapPoint(point)
		require.NoError(t, err)
		assert.Equal(t, "42", c.ID)
		assert.Equal(t, "Fix You", c.Title)
		assert.Equal(t, "Coldplay", c.Artist)
		assert.InDelta(t, 0.87, c.Similarity, 1e-6)
		assert.Equal(t, domain.SourceLyrics, c.Source)
	})

	t.Run("uuid id", func(t *testing.T) {
		point := &qdrant.ScoredPoint{
			Id:    qdrant.NewID("3f2b7c1e-0000-0000-0000-000000000000"),
			Score: 0.5,
		}

		c, err := s.mapPoint(point)
		require.NoError(t, err)
		assert.Equal(t, "3f2b7c1e-0000-0000-0000-000000000000", c.ID)
		assert.Empty(t, c.Title, "missing payload maps to empty fields")
	})
}

func TestPayloadString(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{"title": "Holocene", "year": 2011})

	assert.Equal(t, "Holocene", payloadString(payload, "title"))
	assert.Equal(t, "", payloadString(payload, "artist"))
	assert.Equal(t, "", payloadString(payload, "year"), "non-string payload values are ignored")
	assert.Equal(t, "", payloadString(nil, "title"))
}

func TestSourceIdentity(t *testing.T) {
	s := &Source{collection: "song_lyrics", tag: domain.SourceLyrics}
	assert.Equal(t, "qdrant/song_lyrics", s.Name())
	assert.Equal(t, domain.SourceLyrics, s.Tag())
}
