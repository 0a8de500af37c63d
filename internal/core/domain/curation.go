package domain

import "regexp"

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Theme is the visual mood derived by the curation step.
type Theme struct {
	MoodName string `json:"moodName"`
	HexColor string `json:"hexColor"`
}

// NeutralTheme is the fallback theme for empty or failed curation runs.
func NeutralTheme() Theme {
	return Theme{MoodName: "Neutral", HexColor: "#1f2937"}
}

// Valid reports whether the theme carries a usable 6-digit hex color.
// The luminance contrast promise is a prompt rule, not checked here.
func (t Theme) Valid() bool {
	return t.MoodName != "" && hexColorPattern.MatchString(t.HexColor)
}

// Recommendation is one curated song with its justification.
type Recommendation struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Reason string `json:"reason"`
}

// CurationResult is the parsed provider output. Theme is nil for provider
// variants that only return the recommendation list.
type CurationResult struct {
	Theme           *Theme           `json:"theme,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

// FinalRecommendation is a curated song plus the deterministic external
// search link attached by the orchestrator.
type FinalRecommendation struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Reason string `json:"reason"`
	Link   string `json:"link"`
}

// Video is one playable candidate returned by the video resolver.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
	URL       string `json:"url"`
}
