package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/finvault/bank-gateway/internal/api/metrics"
	"github.com/finvault/bank-gateway/internal/core/ports"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "jwt"

type authErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Auth validates the session token and injects its claims into context.
// The token is read from the session cookie; an Authorization bearer header
// is accepted as a fallback for non-browser clients.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return c.JSON(http.StatusUnauthorized, authErrorResponse{
					Error:   "InvalidToken",
					Message: "No token found",
				})
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return c.JSON(http.StatusUnauthorized, authErrorResponse{
					Error:   "InvalidToken",
					Message: "Invalid token",
				})
			}
			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()

			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
			c.Set("userid", claims.UserID)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
