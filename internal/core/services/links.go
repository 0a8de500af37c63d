package services

import "net/url"

const searchLinkBase = "https://www.youtube.com/results?search_query="

// BuildSearchLink derives the external search link for a recommendation.
// Pure function of (title, artist): identical inputs always yield the same
// URL, and no network I/O happens here.
func BuildSearchLink(title, artist string) string {
	return searchLinkBase + url.QueryEscape(title+" "+artist+" official audio")
}
