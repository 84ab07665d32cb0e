package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/azis14/second-brain/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
)

const apiKeyHeader = "X-API-Key"

// APIKey gates a route group behind a shared API key carried in the
// X-API-Key header.
func APIKey(key string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(apiKeyHeader)

			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				ctxzap.Warn(r.Context(), "rejected request with invalid API key")
				response.Error(w, http.StatusUnauthorized, "invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
