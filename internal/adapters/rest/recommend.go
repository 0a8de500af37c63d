package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/moodic-labs/moodic/internal/core/domain"
	"github.com/moodic-labs/moodic/internal/core/services"
	"github.com/moodic-labs/moodic/internal/worker"
)

type recommendRequest struct {
	Mood  string `json:"mood"`
	Genre string `json:"genre"`
}

// Recommend handles POST /api/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	query, err := domain.NewMoodQuery(req.Mood, req.Genre)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	set, err := h.svc.Recommend(r.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMood) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("recommendation failed", zap.Error(err))
		if services.IsRetryable(err) {
			writeError(w, http.StatusServiceUnavailable, "recommendation pipeline unavailable")
			return
		}
		writeError(w, http.StatusBadGateway, "recommendation pipeline failed")
		return
	}

	if h.prefetch != nil {
		for _, rec := range set.Recommendations {
			h.prefetch.Submit(worker.Job{Title: rec.Title, Artist: rec.Artist})
		}
	}

	writeJSON(w, http.StatusOK, set)
}
