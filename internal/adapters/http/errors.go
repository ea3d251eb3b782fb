package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/unaigarro/mapstamp/internal/core/staticmap"
	"github.com/unaigarro/mapstamp/internal/pkg/metrics"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// errBuild maps URL-building failures onto HTTP responses: rejected
// option values are the client's fault, a missing API key is a service
// configuration problem, anything else is internal.
func errBuild(c *fiber.Ctx, err error) error {
	var verr *staticmap.ValidationError
	if errors.As(err, &verr) {
		metrics.BuildRejections.WithLabelValues(verr.Field).Inc()
		return errBadRequest(c, verr.Error())
	}
	var cerr *staticmap.ConfigurationError
	if errors.As(err, &cerr) {
		metrics.BuildRejections.WithLabelValues("api_key").Inc()
		return newError(c, 409, "missing_api_key", cerr.Error())
	}
	return errInternal(c, err.Error())
}
