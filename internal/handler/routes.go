package handler

import (
	"github.com/labstack/echo/v4"

	"summerdb-ui-proxy/internal/service"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
func RegisterRoutes(e *echo.Echo, fwd *ForwardHandler, health *HealthHandler) {
	e.GET("/healthz", health.Healthz)
	e.GET("/proxy/status", health.Status)

	for _, op := range service.Operations {
		e.Add(op.Method, op.Route, fwd.For(op))
	}
}
