package youtube

// Wire types for the Data API v3 search endpoint. Only the fields the
// resolver reads are declared.

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		ChannelTitle string `json:"channelTitle"`
		Thumbnails   struct {
			Medium struct {
				URL string `json:"url"`
			} `json:"medium"`
			Default struct {
				URL string `json:"url"`
			} `json:"default"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}

func (i searchItem) thumbnail() string {
	if i.Snippet.Thumbnails.Medium.URL != "" {
		return i.Snippet.Thumbnails.Medium.URL
	}
	return i.Snippet.Thumbnails.Default.URL
}
