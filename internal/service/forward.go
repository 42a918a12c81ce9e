// Package service implements the forwarding logic between the admin UI and the SummerDB API.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"summerdb-ui-proxy/internal/metrics"
	"summerdb-ui-proxy/internal/model"
)

// ErrBaseAddressUnset is returned when no SummerDB API base address is configured.
// No upstream call is made in that case.
var ErrBaseAddressUnset = errors.New("SummerDB API base address is not set")

// ErrRequestBody wraps failures reading the inbound body before forwarding.
var ErrRequestBody = errors.New("read request body")

// forwardableRequestHeaders are the only inbound headers carried upstream.
var forwardableRequestHeaders = []string{
	"Accept",
	"Accept-Language",
}

// forwardableResponseHeaders are the only upstream headers relayed to the UI.
var forwardableResponseHeaders = map[string]bool{
	"Content-Type":     true,
	"Content-Length":   true,
	"Content-Encoding": true,
	"Cache-Control":    true,
	"Date":             true,
}

const defaultContentType = "application/json"

// BaseResolver yields the SummerDB API base address, or "" when unset.
type BaseResolver interface {
	ResolveAPIBase() string
}

// Upstream issues a single request against the SummerDB API.
type Upstream interface {
	DoStream(ctx context.Context, method, url string, header http.Header, body io.Reader) (*model.ForwardResponse, error)
}

// ForwardService relays UI requests to the SummerDB API one-to-one.
type ForwardService struct {
	upstream Upstream
	resolver BaseResolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewForwardService creates a ForwardService. The metrics parameter is optional.
func NewForwardService(u Upstream, r BaseResolver, logger *slog.Logger, m *metrics.Metrics) *ForwardService {
	return &ForwardService{
		upstream: u,
		resolver: r,
		logger:   logger.With("component", "forward_service"),
		metrics:  m,
	}
}

// Forward issues exactly one upstream call for op and returns its response
// untouched apart from header filtering. Non-2xx upstream responses are not
// errors. The caller is responsible for closing the response body.
func (s *ForwardService) Forward(op Operation, fr *model.ForwardRequest) (*model.ForwardResponse, error) {
	base := s.resolver.ResolveAPIBase()
	if base == "" {
		s.metrics.ObserveForward(op.Name, metrics.OutcomeConfigError)
		return nil, ErrBaseAddressUnset
	}

	var body io.Reader
	if op.ForwardsBody {
		payload, err := readBody(fr.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRequestBody, err)
		}
		body = bytes.NewReader(payload)
	}

	target := op.Target(base)
	header := s.filterRequestHeaders(op, fr.Header)

	s.logger.Debug("forwarding request",
		"operation", op.Name,
		"method", op.Method,
		"target", target,
	)

	resp, err := s.upstream.DoStream(fr.Ctx, op.Method, target, header, body)
	if err != nil {
		s.metrics.ObserveForward(op.Name, metrics.OutcomeTransportError)
		return nil, fmt.Errorf("forward to upstream: %w", err)
	}

	s.metrics.ObserveForward(op.Name, metrics.OutcomeRelayed)
	resp.Header = s.filterResponseHeaders(resp.Header)
	return resp, nil
}

// readBody drains r in full. A nil reader is an empty payload.
func readBody(r io.Reader) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	return io.ReadAll(r)
}

func (s *ForwardService) filterRequestHeaders(op Operation, src http.Header) http.Header {
	dst := make(http.Header)
	for _, key := range forwardableRequestHeaders {
		if vals := src.Values(key); len(vals) > 0 {
			dst[http.CanonicalHeaderKey(key)] = vals
		}
	}
	if op.ForwardsBody {
		ct := src.Get("Content-Type")
		if ct == "" {
			ct = defaultContentType
		}
		dst.Set("Content-Type", ct)
	}
	return dst
}

func (s *ForwardService) filterResponseHeaders(src http.Header) http.Header {
	dst := make(http.Header)
	for key, vals := range src {
		if forwardableResponseHeaders[http.CanonicalHeaderKey(key)] {
			dst[key] = vals
		}
	}
	return dst
}
