package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"   // errors.Is for repository sentinel checks
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
	"github.com/arasdyanto/erapor-smk/internal/utils"
)

// userKey is the context key under which the resolved identity is stored.
const userKey = "user"

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and resolves its subject (the email claim) against the user
// store. The full identity is injected into the request context so
// downstream middleware and handlers work with the stored role, not the
// one encoded in the token at issuance time. Every failure mode is a
// plain 401: a missing header, a malformed or expired token, and a
// valid signature whose subject no longer exists in the store (the
// account may have been removed after the token was issued).
func JWTAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			email, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			u, err := users.GetByEmail(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "auth lookup failed"})
			}

			c.Set(userKey, u)
			return next(c)
		}
	}
}

// CurrentUser retrieves the identity stored by JWTAuth. The second
// return value is false when the middleware did not run or the stored
// value has an unexpected type.
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(userKey).(*model.User)
	return u, ok && u != nil
}
