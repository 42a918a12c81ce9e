// Package metrics provides Prometheus metrics for the forwarder.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Default histogram buckets for API latency.
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Forward outcome label values.
const (
	OutcomeRelayed        = "relayed"
	OutcomeConfigError    = "config_error"
	OutcomeTransportError = "transport_error"
)

// Metrics holds all Prometheus metric collectors for the forwarder.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	UpstreamDuration  *prometheus.HistogramVec
	UpstreamResponses *prometheus.CounterVec

	ForwardsTotal *prometheus.CounterVec
}

// New creates a Metrics instance with a custom registry and all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "summerdb_ui_http_requests_total",
			Help: "Total inbound HTTP requests.",
		}, []string{"method", "status_code", "route"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "summerdb_ui_http_request_duration_seconds",
			Help:    "Inbound HTTP request latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method", "status_code", "route"}),

		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summerdb_ui_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed.",
		}),

		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "summerdb_ui_upstream_request_duration_seconds",
			Help:    "SummerDB API call latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method"}),

		UpstreamResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "summerdb_ui_upstream_responses_total",
			Help: "Total SummerDB API responses by method and status code.",
		}, []string{"method", "status_code"}),

		ForwardsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "summerdb_ui_forwards_total",
			Help: "Forward attempts by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
		m.UpstreamDuration,
		m.UpstreamResponses,
		m.ForwardsTotal,
	)

	return m
}

// ObserveForward counts one forward attempt. Safe to call on a nil *Metrics.
func (m *Metrics) ObserveForward(operation, outcome string) {
	if m == nil {
		return
	}
	m.ForwardsTotal.WithLabelValues(operation, outcome).Inc()
}

// knownMethods lists the allowed HTTP method label values (bounded cardinality).
var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

// NormalizeMethod returns a bounded HTTP method label for Prometheus metrics.
// Non-standard methods are mapped to "other" to prevent cardinality explosion.
func NormalizeMethod(method string) string {
	if knownMethods[method] {
		return method
	}
	return "other"
}

// knownRoutes lists the allowed route label values (bounded cardinality).
var knownRoutes = []string{
	"/api/create/collection",
	"/api/create/user",
	"/api/setup",
	"/api/super-users",
	"/api/users",
	"/api/version",
	"/healthz",
	"/proxy/status",
	"/metrics",
}

// NormalizePath returns a bounded route label for Prometheus metrics.
func NormalizePath(path string) string {
	path = strings.TrimSuffix(path, "/")
	for _, route := range knownRoutes {
		if path == route {
			return route
		}
	}
	return "other"
}
