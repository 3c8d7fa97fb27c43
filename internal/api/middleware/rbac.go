package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC admits the request iff the resolved role is in the allowed set.
// Pure function of the claims injected by Auth; no state.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, authErrorResponse{
					Error:   "Forbidden",
					Message: "access forbidden",
				})
			}
			return next(c)
		}
	}
}
