package rest

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/moodic-labs/moodic/internal/core/domain"
)

type searchVideosRequest struct {
	Query string `json:"query"`
}

type resolveVideoRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type videosResponse struct {
	Videos []domain.Video `json:"videos"`
}

// SearchVideos handles POST /api/videos/search.
func (h *Handler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req searchVideosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	videos, err := h.resolver.Search(r.Context(), req.Query)
	if err != nil {
		h.logger.Error("video search failed", zap.String("query", req.Query), zap.Error(err))
		writeError(w, http.StatusBadGateway, "video search failed")
		return
	}

	writeJSON(w, http.StatusOK, videosResponse{Videos: videos})
}

// ResolveVideo handles POST /api/videos/resolve. It returns the single
// best playable match for a known song.
func (h *Handler) ResolveVideo(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req resolveVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Artist == "" {
		writeError(w, http.StatusBadRequest, "title and artist are required")
		return
	}

	videos, err := h.resolver.Resolve(r.Context(), req.Title, req.Artist)
	if err != nil {
		h.logger.Error("video resolve failed",
			zap.String("title", req.Title),
			zap.String("artist", req.Artist),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, "video resolve failed")
		return
	}
	if len(videos) == 0 {
		writeError(w, http.StatusNotFound, "no playable video found")
		return
	}

	writeJSON(w, http.StatusOK, videos[0])
}
