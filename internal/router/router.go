package router // package router defines how HTTP routes are registered for the API

import (
	"time"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/arasdyanto/erapor-smk/internal/config"
	"github.com/arasdyanto/erapor-smk/internal/handler"
	"github.com/arasdyanto/erapor-smk/internal/middleware"
	"github.com/arasdyanto/erapor-smk/internal/model"
	"github.com/arasdyanto/erapor-smk/internal/repository"
)

// Handlers bundles every handler the API mounts. Keeping them in one
// struct keeps RegisterAPI's signature stable as endpoints are added.
type Handlers struct {
	Auth        *handler.AuthHandler
	Dashboard   *handler.DashboardHandler
	Jurusan     *handler.JurusanHandler
	Kelas       *handler.KelasHandler
	Siswa       *handler.SiswaHandler
	Guru        *handler.GuruHandler
	Mapel       *handler.MapelHandler
	TahunAjaran *handler.TahunAjaranHandler
	Seed        *handler.SeedHandler
}

// RegisterAPI wires every route under the /api prefix. The route table
// is the single place where each operation's allowed-role set is
// declared; handlers never re-check roles beyond the scope narrowing
// the siswa reads perform.
func RegisterAPI(e *echo.Echo, cfg config.Config, rdb *redis.Client, users *repository.UserRepo, h Handlers) {
	api := e.Group("/api")

	// Health check stays open for load balancers and monitoring.
	api.GET("/healthz", handler.Health)

	// Registration and login create sessions, so no token is required.
	// Login is rate limited per client IP to slow credential guessing.
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login, middleware.LoginRateLimit(rdb, 10, time.Minute))

	// Every route below requires a valid access token whose subject
	// still resolves to a stored user.
	auth := api.Group("", middleware.JWTAuth(cfg.JWTSecret, users))

	adminOnly := middleware.RequireRole(model.RoleAdmin)
	siswaRead := middleware.RequireRole(model.RoleAdmin, model.RoleWaliKelas)
	cached := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	auth.GET("/auth/me", h.Auth.Me)

	// Dashboard content varies by role; the cache key includes the
	// caller so entries are never shared between users.
	auth.GET("/dashboard/stats", h.Dashboard.Stats, cached)

	// Jurusan (admin only).
	auth.GET("/jurusan", h.Jurusan.List, adminOnly)
	auth.POST("/jurusan", h.Jurusan.Create, adminOnly)
	auth.PUT("/jurusan/:id", h.Jurusan.Update, adminOnly)
	auth.DELETE("/jurusan/:id", h.Jurusan.Delete, adminOnly)

	// Kelas: CRUD is admin only, the detailed listing serves pickers
	// for any authenticated user.
	auth.GET("/kelas", h.Kelas.List, adminOnly)
	auth.GET("/kelas/detailed", h.Kelas.ListDetailed, cached)
	auth.POST("/kelas", h.Kelas.Create, adminOnly)
	auth.PUT("/kelas/:id", h.Kelas.Update, adminOnly)
	auth.DELETE("/kelas/:id", h.Kelas.Delete, adminOnly)

	// Siswa: reads shared with wali_kelas (scoped inside the handler),
	// writes admin only. The static /siswa/search route must coexist
	// with /siswa/:id; echo matches static segments first.
	auth.GET("/siswa", h.Siswa.List, siswaRead)
	auth.GET("/siswa/search", h.Siswa.Search, siswaRead)
	auth.GET("/siswa/:id", h.Siswa.Get, siswaRead)
	auth.POST("/siswa", h.Siswa.Create, adminOnly)
	auth.PUT("/siswa/:id", h.Siswa.Update, adminOnly)
	auth.DELETE("/siswa/:id", h.Siswa.Delete, adminOnly)

	// Guru (admin only).
	auth.GET("/guru", h.Guru.List, adminOnly)
	auth.GET("/guru/:id", h.Guru.Get, adminOnly)
	auth.POST("/guru", h.Guru.Create, adminOnly)
	auth.PUT("/guru/:id", h.Guru.Update, adminOnly)
	auth.DELETE("/guru/:id", h.Guru.Delete, adminOnly)

	// Mapel: listing is open to any authenticated user, writes are
	// admin only.
	auth.GET("/mapel", h.Mapel.List)
	auth.POST("/mapel", h.Mapel.Create, adminOnly)
	auth.PUT("/mapel/:id", h.Mapel.Update, adminOnly)
	auth.DELETE("/mapel/:id", h.Mapel.Delete, adminOnly)

	// Tahun ajaran (admin only).
	auth.GET("/tahun-ajaran", h.TahunAjaran.List, adminOnly)
	auth.POST("/tahun-ajaran", h.TahunAjaran.Create, adminOnly)
	auth.PUT("/tahun-ajaran/:id", h.TahunAjaran.Update, adminOnly)
	auth.DELETE("/tahun-ajaran/:id", h.TahunAjaran.Delete, adminOnly)

	// Bulk seeding (admin only).
	auth.POST("/init/default-data", h.Seed.InitDefaultData, adminOnly)
}
