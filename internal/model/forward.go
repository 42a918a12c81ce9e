// Package model defines shared types for the forwarder.
package model

import (
	"context"
	"io"
	"net/http"
)

// ForwardRequest is one inbound UI call to be re-issued against the SummerDB API.
// Body is nil for operations that do not forward a payload.
type ForwardRequest struct {
	Ctx    context.Context
	Header http.Header
	Body   io.Reader
}

// ForwardResponse is the SummerDB API response to be relayed back unchanged.
type ForwardResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}
