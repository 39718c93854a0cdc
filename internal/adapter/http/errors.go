package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"lab-inventory/internal/domain/apperr"
)

var (
	ErrMalformedJSON = apperr.Validation("malformed_json", "Malformed JSON payload.")
	// ErrInvalidPayload shares its code with request.ErrInvalidPayload.
	ErrInvalidPayload = apperr.Validation("invalid_payload", "Invalid request payload.")
)

// invalidPayload carries per-field validation failures to the error handler.
type invalidPayload struct {
	details []FieldError
}

func (e *invalidPayload) Error() string { return fmt.Sprintf("validation failed: %v", e.details) }

// StatusFor maps an error kind onto its HTTP status.
func StatusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindContention:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders every error returned by handlers and middleware.
// Internal errors are logged here and nowhere else.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := render(err)
		if status == http.StatusServiceUnavailable {
			c.Response().Header().Set("Retry-After", "1")
		}
		if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
			logger.Error().Err(err).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}

func render(err error) (int, ErrorResponse) {
	var ip *invalidPayload
	if errors.As(err, &ip) {
		return http.StatusBadRequest, ErrorResponse{Error: "validation_failed", Message: "Invalid request payload.", Details: ip.details}
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return StatusFor(ae.Kind), ErrorResponse{Error: ae.Code, Message: ae.Message}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, ErrorResponse{Error: httpCode(he.Code), Message: fmt.Sprint(he.Message)}
	}
	ae = apperr.As(err)
	return StatusFor(ae.Kind), ErrorResponse{Error: ae.Code, Message: ae.Message}
}

func httpCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return "route_not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	default:
		return "http_error"
	}
}

// bindAndValidate decodes the body into req and runs struct validation.
// Decoder text never reaches the client.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return ErrInvalidPayload
		}
		return ErrMalformedJSON
	}
	if err := c.Validate(req); err != nil {
		return &invalidPayload{details: ToFieldErrors(err)}
	}
	return nil
}
