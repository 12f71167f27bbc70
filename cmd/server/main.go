package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/arasdyanto/erapor-smk/internal/config"
	"github.com/arasdyanto/erapor-smk/internal/database"
	"github.com/arasdyanto/erapor-smk/internal/handler"
	"github.com/arasdyanto/erapor-smk/internal/queue"
	"github.com/arasdyanto/erapor-smk/internal/repository"
	"github.com/arasdyanto/erapor-smk/internal/router"
)

func main() {
	// Best effort: a missing .env is fine in containerized deploys
	// where the environment is injected directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("db schema: %v", err)
	}
	cancel()

	// Redis is optional: a nil client disables response caching and
	// login rate limiting but the API stays fully functional.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and login limiter disabled")
	}

	// The audit consumer runs for the whole process lifetime and
	// reconnects on its own; it never takes the server down.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	jurusan := repository.NewJurusanRepo(db)
	kelas := repository.NewKelasRepo(db)
	siswa := repository.NewSiswaRepo(db)
	guru := repository.NewGuruRepo(db)
	mapel := repository.NewMapelRepo(db)
	tahunAjaran := repository.NewTahunAjaranRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	}))

	router.RegisterAPI(e, cfg, rdb, users, router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users),
		Dashboard:   handler.NewDashboardHandler(siswa, guru, kelas, mapel),
		Jurusan:     handler.NewJurusanHandler(jurusan),
		Kelas:       handler.NewKelasHandler(kelas),
		Siswa:       handler.NewSiswaHandler(siswa, kelas),
		Guru:        handler.NewGuruHandler(guru),
		Mapel:       handler.NewMapelHandler(mapel),
		TahunAjaran: handler.NewTahunAjaranHandler(tahunAjaran),
		Seed:        handler.NewSeedHandler(jurusan, kelas, mapel, tahunAjaran),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	go func() {
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	// Shutdown hook: drain in-flight requests, then release the store
	// connection.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("db close: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
