package domain

import (
	"errors"
	"strings"
)

// DefaultGenre is used when the caller expresses no genre preference.
const DefaultGenre = "any"

var ErrEmptyMood = errors.New("domain: mood is required")

// MoodQuery is the free-text request that drives a recommendation run.
// It is request-scoped and never mutated after construction.
type MoodQuery struct {
	Mood  string
	Genre string
}

// NewMoodQuery validates and normalizes the raw user input.
func NewMoodQuery(mood, genre string) (MoodQuery, error) {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return MoodQuery{}, ErrEmptyMood
	}
	genre = strings.TrimSpace(genre)
	if genre == "" {
		genre = DefaultGenre
	}
	return MoodQuery{Mood: mood, Genre: genre}, nil
}
