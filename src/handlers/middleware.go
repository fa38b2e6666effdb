// backend/src/handlers/middleware.go
package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
)

// RequestIDHeader echoes the per-request ID back to clients.
const RequestIDHeader = "X-Request-ID"

// ContextualLoggerMiddleware creates a logger carrying a requestID for each request.
func ContextualLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()

		ctx := logger.With(r.Context(), "requestID", requestID)

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CORSMiddleware allows credentialed requests from the configured origins.
// Requests without an Origin header get a wildcard.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-Requested-With, If-None-Match")
				w.Header().Set("Access-Control-Expose-Headers", "ETag, "+RequestIDHeader+", Content-Disposition")
				w.Header().Add("Vary", "Origin")
			} else if origin == "" {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware rejects requests once the shared limiter is exhausted.
func RateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				logger.WarnFromContext(r.Context(), "Rate limit exceeded", "path", r.URL.Path)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
