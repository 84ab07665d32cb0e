package vector

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers vector routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/stats", h.GetStats)
	r.Post("/sync", h.Sync)
	r.Get("/sync/jobs/{job_id}", h.GetSyncJob)
	r.Get("/health", h.Health)
	r.Post("/chat", h.Chat)
}
