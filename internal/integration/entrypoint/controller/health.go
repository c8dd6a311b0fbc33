// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck struct {
	Name     string
	Optional bool
	Probe    func(ctx context.Context) error
}

// HealthController handles health check endpoints.
type HealthController struct {
	checks []HealthCheck
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
	Timestamp    string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(checks ...HealthCheck) *HealthController {
	return &HealthController{
		checks: checks,
	}
}

// Check handles GET /health requests.
// A failing required dependency turns the status into "degraded" with a 503.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:       "ok",
		Dependencies: make(map[string]string, len(h.checks)),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			response.Dependencies[check.Name] = "disconnected"
			if !check.Optional {
				response.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
			continue
		}
		response.Dependencies[check.Name] = "connected"
	}

	c.JSON(status, response)
}
