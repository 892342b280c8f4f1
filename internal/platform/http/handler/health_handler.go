// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check is a named dependency probe.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler serves /healthz.
type HealthHandler struct {
	checks  []Check
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler running the given checks on GET.
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Health handles /healthz. GET reports 503 when any dependency fails.
// Responses are never cached.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	failed := map[string]string{}
	for _, chk := range h.checks {
		if err := chk.Ping(ctx); err != nil {
			slog.Error("health check failed", "check", chk.Name, "error", err)
			failed[chk.Name] = "unavailable"
		}
	}
	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": failed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
