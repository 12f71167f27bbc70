package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arasdyanto/erapor-smk/internal/config"
	"github.com/arasdyanto/erapor-smk/internal/model"
)

func cacheCfg() config.CacheConfig {
	return config.CacheConfig{Enabled: true, TTL: 30 * time.Second, Prefix: "erapor:cache"}
}

func TestResponseCache_SecondHitServedFromRedis(t *testing.T) {
	_, rdb := miniClient(t)

	calls := 0
	e := echo.New()
	h := ResponseCache(cacheCfg(), rdb)(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"total_siswa": 42})
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/dashboard/stats")
		c.Set(userKey, &model.User{ID: "u-1", Role: model.RoleAdmin})
		require.NoError(t, h(c))
		return rec
	}

	first := send()
	second := send()
	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestResponseCache_KeyedPerUser(t *testing.T) {
	_, rdb := miniClient(t)

	calls := 0
	e := echo.New()
	h := ResponseCache(cacheCfg(), rdb)(func(c echo.Context) error {
		calls++
		u, _ := CurrentUser(c)
		return c.JSON(http.StatusOK, echo.Map{"for": u.ID})
	})

	send := func(uid string) string {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/dashboard/stats")
		c.Set(userKey, &model.User{ID: uid})
		require.NoError(t, h(c))
		return rec.Body.String()
	}

	adminBody := send("u-admin")
	waliBody := send("u-wali")
	assert.Equal(t, 2, calls)
	assert.NotEqual(t, adminBody, waliBody)
}

func TestResponseCache_SkipsNonGET(t *testing.T) {
	_, rdb := miniClient(t)

	calls := 0
	e := echo.New()
	h := ResponseCache(cacheCfg(), rdb)(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/siswa", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
	}
	assert.Equal(t, 2, calls)
}

func TestResponseCache_DisabledPassesThrough(t *testing.T) {
	calls := 0
	e := echo.New()
	h := ResponseCache(config.CacheConfig{Enabled: false}, nil)(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/kelas/detailed", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
	}
	assert.Equal(t, 2, calls)
}
