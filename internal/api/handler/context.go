package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/finvault/bank-gateway/internal/core/domain"
)

// errorBody builds the canonical {error, message} envelope used by handlers
// that map domain failures themselves.
func errorBody(tag, message string) map[string]string {
	return map[string]string{"error": tag, "message": message}
}

// ctxClaims extracts the claims injected by the Auth middleware. A missing
// role means the middleware did not run on this route; fail closed.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get("username").(string)
	userID, _ := c.Get("userid").(string)

	return domain.Claims{Username: username, Role: role, UserID: userID}, nil
}
