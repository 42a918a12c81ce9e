package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		handler   echo.HandlerFunc
		wantCode  int
		wantLevel string
	}{
		{
			name:      "ok",
			handler:   func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
			wantCode:  http.StatusOK,
			wantLevel: "level=INFO",
		},
		{
			name:      "relayed backend 400",
			handler:   func(c echo.Context) error { return c.String(http.StatusBadRequest, `{"status":409}`) },
			wantCode:  http.StatusBadRequest,
			wantLevel: "level=WARN",
		},
		{
			name:      "returned http error",
			handler:   func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadGateway, "upstream") },
			wantCode:  http.StatusBadGateway,
			wantLevel: "level=ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			e := echo.New()
			e.Use(RequestLogger(logger))
			e.GET("/api/users", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/api/users", http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("log = %q, want %s", out, tt.wantLevel)
			}
			if !strings.Contains(out, "route=/api/users") {
				t.Errorf("log = %q, want route attribute", out)
			}
		})
	}
}
