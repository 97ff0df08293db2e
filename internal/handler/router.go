package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the webhook endpoint behind the signature middleware
// plus the liveness endpoints.
func NewRouter(h *Handler, verify func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.With(verify).Post("/interactions", h.Interactions)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Skybot is running! 🤖"))
	})
	r.Get("/health", h.Health)

	return r
}

// Health reports process liveness and the live session count.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	count, err := h.games.Count(ctx)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"activeGames": count,
	})
}
