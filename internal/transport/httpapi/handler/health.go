package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is a dependency that can report whether it is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	checks map[string]HealthChecker
}

// NewHealthHandler creates a new health handler over the named dependencies
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
	Uptime  string            `json:"uptime,omitempty"`
}

// Version is reported by the health endpoints
const Version = "1.0.0"

var startTime = time.Now()

// GetHealth handles GET /health.
// Every dependency is checked; any failure turns the response into 503 "degraded".
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"api": "healthy"}
	status := "ok"
	for name, c := range h.checks {
		if err := c.Health(ctx); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			status = "degraded"
			continue
		}
		checks[name] = "healthy"
	}

	httpStatus := http.StatusOK
	if status == "degraded" {
		httpStatus = http.StatusServiceUnavailable
	}

	respondJSON(w, HealthResponse{
		Status:  status,
		Version: Version,
		Uptime:  time.Since(startTime).Round(time.Second).String(),
		Checks:  checks,
	}, httpStatus)
}

// GetLiveness handles GET /health/live
// Liveness check: the process is up and serving
func GetLiveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "alive"}, http.StatusOK)
}
