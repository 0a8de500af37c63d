package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases and collapses", input: "  Fix   You ", want: "fix you"},
		{name: "strips official video suffix", input: "Fix You (Official Video)", want: "fix you"},
		{name: "strips bracketed audio suffix", input: "Fix You [Official Audio]", want: "fix you"},
		{name: "strips dash suffix", input: "Fix You - Official Audio", want: "fix you"},
		{name: "keeps meaningful parenthetical", input: "Time (You and I)", want: "time you and i"},
		{name: "stacked suffixes", input: "Holocene (Official Video) [HD]", want: "holocene"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalize(tc.input))
		})
	}
}

func TestIsBanned(t *testing.T) {
	banned := []string{
		"Fix You (Live at Glastonbury)",
		"Fix You - SLOWED + reverb",
		"Fix You but it's a meme",
		"My REACTION to Fix You",
		"Fix You 8D Audio",
		"Fix You (Acoustic Cover)",
	}
	for _, title := range banned {
		assert.True(t, isBanned(title), title)
	}

	allowed := []string{
		"Coldplay - Fix You (Official Video)",
		"Fix You",
	}
	for _, title := range allowed {
		assert.False(t, isBanned(title), title)
	}
}

func TestRankItems(t *testing.T) {
	mk := func(title, channel string) searchItem {
		var item searchItem
		item.ID.VideoID = title
		item.Snippet.Title = title
		item.Snippet.ChannelTitle = channel
		return item
	}

	items := []searchItem{
		mk("Fix You REACTION!!", "ReactTube"),
		mk("Some Other Song", "Random"),
		mk("Coldplay - Fix You (Official Video)", "Coldplay"),
	}

	ranked := rankItems(items, "Fix You", "Coldplay")

	assert.Len(t, ranked, 2, "banned upload dropped")
	assert.Equal(t, "Coldplay - Fix You (Official Video)", ranked[0].Snippet.Title)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("fix you coldplay", "fix you coldplay"))
	assert.Greater(t,
		similarity("fix you coldplay", "coldplay fix you"),
		similarity("fix you coldplay", "totally different thing"))
}
