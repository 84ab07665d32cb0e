package api

import (
	"net/http"
	"time"

	"github.com/azis14/second-brain/internal/api/docs"
	"github.com/azis14/second-brain/internal/api/middleware"
	vectorapi "github.com/azis14/second-brain/internal/api/vector"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(vectorHandler *vectorapi.Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Liveness endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Vector endpoints, gated by API key
	r.Route("/vector", func(r chi.Router) {
		r.Use(middleware.APIKey(apiKey))
		vectorapi.RegisterRoutes(r, vectorHandler)
	})

	return r
}
