// Package rest exposes the recommendation pipeline over HTTP.
package rest

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/moodic-labs/moodic/internal/core/ports"
	"github.com/moodic-labs/moodic/internal/core/services"
	"github.com/moodic-labs/moodic/internal/worker"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc      *services.Orchestrator
	resolver ports.VideoResolver
	prefetch *worker.Pool
	logger   *zap.Logger
	router   *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes. The
// prefetch pool is optional; without it recommendations simply skip
// cache warming.
func NewHandler(svc *services.Orchestrator, resolver ports.VideoResolver, prefetch *worker.Pool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		svc:      svc,
		resolver: resolver,
		prefetch: prefetch,
		logger:   logger,
		router:   http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
// It acts as a proxy, passing the request to our internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Recommendation pipeline
	h.router.HandleFunc("POST /api/recommendations", h.Recommend)
	// Video lookups
	h.router.HandleFunc("POST /api/videos/search", h.SearchVideos)
	h.router.HandleFunc("POST /api/videos/resolve", h.ResolveVideo)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Moodic is live 🎧"})
}
