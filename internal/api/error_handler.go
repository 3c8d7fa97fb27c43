package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/finvault/bank-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors: a
// machine-readable tag plus a human message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<tag>", "message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, tag, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: tag, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, http.StatusText(he.Code), fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "UserNotFound", "User not found"
	case errors.Is(err, domain.ErrIncorrectPassword):
		return http.StatusUnauthorized, "IncorrectPassword", "Incorrect password"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "InvalidToken", "Invalid token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden", "access forbidden"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "UserExists", "User already exists"
	case errors.Is(err, domain.ErrInvalidEnrollment):
		return http.StatusBadRequest, "InvalidPayload", "invalid enrollment request"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "TooManyAttempts", "Too many login attempts, try again later"
	case errors.Is(err, domain.ErrStoreTimeout):
		return http.StatusServiceUnavailable, "StoreTimeout", "credential store unavailable"
	}

	// Unexpected error (store failures, corrupt credentials): log the real
	// cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "InternalError", "Internal server error"
}
