package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Ricaps/tennis-club-reservations-management/internal/booking"
	"github.com/Ricaps/tennis-club-reservations-management/internal/config"
	"github.com/Ricaps/tennis-club-reservations-management/internal/database"
	"github.com/Ricaps/tennis-club-reservations-management/internal/handler"
	"github.com/Ricaps/tennis-club-reservations-management/internal/middleware"
	"github.com/Ricaps/tennis-club-reservations-management/internal/queue"
	"github.com/Ricaps/tennis-club-reservations-management/internal/repository"
	"github.com/Ricaps/tennis-club-reservations-management/internal/router"
)

func main() {
	// A local .env is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	if cfg.DBSeed {
		if err := database.Seed(ctx, db); err != nil {
			log.Fatalf("seed database: %v", err)
		}
	}

	surfaces := repository.NewSurfaceRepo(db)
	courts := repository.NewCourtRepo(db)
	users := repository.NewUserRepo(db)
	reservations := repository.NewReservationRepo(db)
	bookingSvc := booking.NewService(repository.NewBookingStore(db))

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and response cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.Register(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users),
		Surfaces:     handler.NewSurfaceHandler(surfaces),
		Courts:       handler.NewCourtHandler(courts, surfaces),
		Users:        handler.NewUserHandler(cfg, users),
		Reservations: handler.NewReservationHandler(bookingSvc, courts, users, reservations),
	}, cfg.JWTSecret, cache)

	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
