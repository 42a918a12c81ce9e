package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"summerdb-ui-proxy/internal/model"
	"summerdb-ui-proxy/internal/service"
)

// ForwardHandler serves the admin UI's /api routes by relaying them to the SummerDB API.
type ForwardHandler struct {
	service *service.ForwardService
	logger  *slog.Logger
}

// NewForwardHandler creates a ForwardHandler.
func NewForwardHandler(svc *service.ForwardService, logger *slog.Logger) *ForwardHandler {
	return &ForwardHandler{
		service: svc,
		logger:  logger.With("component", "forward_handler"),
	}
}

// For returns the echo handler for op.
func (h *ForwardHandler) For(op service.Operation) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.handle(c, op)
	}
}

func (h *ForwardHandler) handle(c echo.Context, op service.Operation) error {
	req := c.Request()

	fr := &model.ForwardRequest{
		Ctx:    req.Context(),
		Header: req.Header,
	}
	if op.ForwardsBody {
		fr.Body = req.Body
	}

	resp, err := h.service.Forward(op, fr)
	if err != nil {
		return h.mapError(c, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	for key, vals := range resp.Header {
		for _, v := range vals {
			c.Response().Header().Add(key, v)
		}
	}

	c.Response().WriteHeader(resp.StatusCode)

	// The status line is already out; a copy failure can only be logged.
	if _, err := io.Copy(c.Response(), resp.Body); err != nil {
		h.logger.Error("streaming response body",
			"err", err,
			"operation", op.Name,
		)
	}

	return nil
}

func (h *ForwardHandler) mapError(c echo.Context, op service.Operation, err error) error {
	if errors.Is(err, service.ErrBaseAddressUnset) {
		h.logger.Error("forwarder misconfigured",
			"err", err,
			"operation", op.Name,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "forwarder misconfigured: SummerDB API base address is not set",
		})
	}

	// BodyLimit reports oversized payloads as *echo.HTTPError while the body is read.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	h.logger.Error("forward error",
		"err", err,
		"operation", op.Name,
	)

	if errors.Is(err, service.ErrRequestBody) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "failed to read request body",
		})
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return c.JSON(http.StatusGatewayTimeout, map[string]string{
			"error": "upstream request timed out",
		})
	}

	if errors.Is(err, context.Canceled) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "client disconnected",
		})
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "upstream host unreachable",
		})
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "upstream connection failed",
		})
	}

	return c.JSON(http.StatusBadGateway, map[string]string{
		"error": "upstream request failed",
	})
}
