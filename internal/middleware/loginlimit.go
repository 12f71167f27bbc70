package middleware

// loginlimit.go throttles credential-guessing on the login endpoint
// with a fixed-window counter in Redis keyed by client IP. The window
// survives process restarts and is shared across replicas, which is why
// this lives in Redis rather than in-process state.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimit allows at most max attempts per window for each client
// IP. On the first attempt of a window the key's TTL is armed; once the
// counter passes max the request is rejected with 429 until the window
// expires. A nil Redis client disables limiting entirely.
func LoginRateLimit(rdb *redis.Client, max int, window time.Duration) echo.MiddlewareFunc {
	if rdb == nil || max <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("loginrl:%s", c.RealIP())
			ctx := c.Request().Context()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis being down must not lock users out.
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, window).Err()
			}
			if n > int64(max) {
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many login attempts"})
			}
			return next(c)
		}
	}
}
