package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/cors"
)

// CORS lets the configured browser origins call the API with a bearer token. A "*" entry
// opens the API to any origin and drops credentialed requests, which browsers refuse
// alongside a wildcard origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	anyOrigin := slices.Contains(allowedOrigins, "*")
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: !anyOrigin,
		MaxAge:           int((5 * time.Minute).Seconds()),
	})
}
