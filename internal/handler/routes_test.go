package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"summerdb-ui-proxy/internal/client"
	"summerdb-ui-proxy/internal/config"
	"summerdb-ui-proxy/internal/metrics"
	"summerdb-ui-proxy/internal/service"
)

func TestRegisterRoutes_Wiring(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	e := newTestEcho(upstream.URL)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"GET /healthz", http.MethodGet, "/healthz", http.StatusOK},
		{"GET /proxy/status", http.MethodGet, "/proxy/status", http.StatusOK},
		{"POST /api/create/collection", http.MethodPost, "/api/create/collection", http.StatusOK},
		{"POST /api/create/user", http.MethodPost, "/api/create/user", http.StatusOK},
		{"GET /api/setup", http.MethodGet, "/api/setup", http.StatusOK},
		{"GET /api/users", http.MethodGet, "/api/users", http.StatusOK},
		{"GET /api/super-users", http.MethodGet, "/api/super-users", http.StatusOK},
		{"GET /api/version", http.MethodGet, "/api/version", http.StatusOK},
		{"GET /api/create/user is 405", http.MethodGet, "/api/create/user", http.StatusMethodNotAllowed},
		{"POST /api/users is 405", http.MethodPost, "/api/users", http.StatusMethodNotAllowed},
		{"GET /unknown returns 404", http.MethodGet, "/unknown", http.StatusNotFound},
		{"GET /api/other returns 404", http.MethodGet, "/api/other", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRegisterMetrics(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		wantStatus int
	}{
		{"enabled", true, http.StatusOK},
		{"disabled", false, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Metrics: config.MetricsConfig{Enabled: tt.enabled, Path: "/metrics"}}
			m := metrics.New()
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			svc := service.NewForwardService(client.NewSummerDBClient(cfg, logger, m), config.StaticResolver(""), logger, m)

			e := echo.New()
			RegisterRoutes(e, NewForwardHandler(svc, logger), NewHealthHandler(config.StaticResolver(""), "test"))
			RegisterMetrics(e, cfg, m)

			// One failed forward so the outcome counter has a series.
			e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users", http.NoBody))

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.enabled && !strings.Contains(rec.Body.String(), `summerdb_ui_forwards_total{operation="list-users",outcome="config_error"} 1`) {
				t.Errorf("metrics output missing forward outcome series:\n%s", rec.Body.String())
			}
		})
	}
}
