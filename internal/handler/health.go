package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"summerdb-ui-proxy/internal/service"
)

// Version is a string type for dependency injection of the build version.
type Version string

// HealthHandler serves health and status endpoints.
type HealthHandler struct {
	resolver service.BaseResolver
	version  Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(r service.BaseResolver, v Version) *HealthHandler {
	return &HealthHandler{resolver: r, version: v}
}

// Healthz returns a simple OK response for liveness probes.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Status reports the build version and whether a SummerDB API address is configured.
// It does not contact the API; /api/version does.
func (h *HealthHandler) Status(c echo.Context) error {
	base := h.resolver.ResolveAPIBase()
	status := "ok"
	if base == "" {
		status = "unconfigured"
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":              status,
		"version":             string(h.version),
		"upstream_url":        base,
		"upstream_configured": base != "",
	})
}
