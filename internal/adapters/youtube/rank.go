package youtube

import "strings"

// Upload titles that contain any of these are almost never the studio
// track the curation step picked.
var bannedTitleWords = []string{
	"short", "reel", "edit", "reaction", "interview",
	"meme", "slowed", "8d", "cover", "remix", "live",
}

var titleSuffixTokens = map[string]struct{}{
	"audio":      {},
	"hd":         {},
	"hq":         {},
	"lyric":      {},
	"lyrics":     {},
	"official":   {},
	"video":      {},
	"visualizer": {},
}

// rankItems filters out banned uploads, scores the rest against the
// wanted title and artist, and returns the best matches first.
func rankItems(items []searchItem, title, artist string) []searchItem {
	type scored struct {
		item  searchItem
		score float64
	}

	target := normalize(title + " " + artist)
	kept := make([]scored, 0, len(items))
	for _, item := range items {
		if isBanned(item.Snippet.Title) {
			continue
		}
		actual := normalize(item.Snippet.Title + " " + item.Snippet.ChannelTitle)
		kept = append(kept, scored{item: item, score: similarity(target, actual)})
	}

	// Insertion sort; the page size keeps n tiny. Stable, so API order
	// breaks score ties.
	for i := 1; i < len(kept); i++ {
		for j := i; j > 0 && kept[j].score > kept[j-1].score; j-- {
			kept[j], kept[j-1] = kept[j-1], kept[j]
		}
	}

	out := make([]searchItem, len(kept))
	for i, s := range kept {
		out[i] = s.item
	}
	return out
}

func isBanned(title string) bool {
	lowered := strings.ToLower(title)
	for _, word := range bannedTitleWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

// normalize cleans an upload title for comparison: lowercase, common
// bracketed or dash suffixes stripped, separators collapsed.
func normalize(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	lowered := strings.ToLower(strings.TrimSpace(input))
	trimmed := stripCommonSuffixes(lowered)
	cleaned := cleanSeparators(trimmed)

	return strings.Join(strings.Fields(cleaned), " ")
}

func stripCommonSuffixes(input string) string {
	trimmed := strings.TrimSpace(input)
	for {
		next := trimBracketedSuffix(trimmed)
		next = trimDashSuffix(next)
		if next == trimmed {
			return trimmed
		}
		trimmed = strings.TrimSpace(next)
	}
}

func trimBracketedSuffix(input string) string {
	trimmed := strings.TrimSpace(input)
	for _, pair := range [][2]string{{"(", ")"}, {"[", "]"}} {
		if strings.HasSuffix(trimmed, pair[1]) {
			if idx := strings.LastIndex(trimmed, pair[0]); idx != -1 && idx < len(trimmed)-1 {
				suffix := trimmed[idx+1 : len(trimmed)-1]
				if suffixHasToken(suffix) {
					return strings.TrimSpace(trimmed[:idx])
				}
			}
		}
	}
	return input
}

func trimDashSuffix(input string) string {
	trimmed := strings.TrimSpace(input)
	idx := strings.LastIndex(trimmed, " - ")
	if idx == -1 {
		return input
	}

	suffix := strings.TrimSpace(trimmed[idx+3:])
	if suffixHasToken(suffix) {
		return strings.TrimSpace(trimmed[:idx])
	}

	return input
}

func suffixHasToken(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}

	cleaned := cleanSeparators(strings.ToLower(input))
	for _, token := range strings.Fields(cleaned) {
		if _, ok := titleSuffixTokens[token]; ok {
			return true
		}
	}

	return false
}

func cleanSeparators(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := maxInt(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshteinDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

func levenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[j] = min3(
				prev[j]+1,
				curr[j-1]+1,
				prev[j-1]+cost,
			)
		}
		copy(prev, curr)
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
