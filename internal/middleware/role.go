package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/arasdyanto/erapor-smk/internal/model"
)

// RequireRole returns a middleware that enforces that the resolved
// identity holds one of the given roles. Membership is exact-match:
// there is no hierarchy and no implication between roles, so every
// route declares its full allow-list. A caller whose role is missing
// from the set is rejected with 403 Forbidden, which is distinct from
// 401: the caller is known, just not permitted. JWTAuth must run
// earlier in the chain.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			if !allowed[u.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}
