package middleware

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/arasdyanto/erapor-smk/internal/config"
)

// bodyCapture duplicates the response body while forwarding it to the
// client so a successful response can be stored after the handler runs.
type bodyCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// cacheKey builds a key from the route, raw query and the caller's id.
// The user id matters because cached routes (dashboard stats, detailed
// class list) produce role-dependent content: a wali_kelas and an admin
// hitting the same path must never share an entry.
func cacheKey(prefix string, c echo.Context) string {
	uid := ""
	if u, ok := CurrentUser(c); ok {
		uid = u.ID
	}
	sum := sha1.Sum([]byte(c.Path() + ":" + c.Request().URL.RawQuery + ":" + uid))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// ResponseCache returns a middleware that serves GET responses from
// Redis for the configured TTL. Only 200 responses are stored. With a
// nil client or caching disabled the middleware is a transparent
// pass-through, so the service keeps working without Redis.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := cacheKey(cfg.Prefix, c)
			ctx := c.Request().Context()

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
			}

			cap := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cap
			if err := next(c); err != nil {
				return err
			}
			if cap.status == http.StatusOK && cap.buf.Len() > 0 {
				// Best effort; a failed SET only costs the next request a miss.
				_ = rdb.Set(ctx, key, cap.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}
