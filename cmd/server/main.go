package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/dmarren/guesthouse-booking/internal/booking"
	"github.com/dmarren/guesthouse-booking/internal/config"
	"github.com/dmarren/guesthouse-booking/internal/database"
	"github.com/dmarren/guesthouse-booking/internal/handler"
	"github.com/dmarren/guesthouse-booking/internal/inventory"
	"github.com/dmarren/guesthouse-booking/internal/queue"
	"github.com/dmarren/guesthouse-booking/internal/repository"
	"github.com/dmarren/guesthouse-booking/internal/router"
	queue_publisher "github.com/dmarren/guesthouse-booking/internal/service"
	"github.com/dmarren/guesthouse-booking/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	inv, err := inventory.Load(cfg.RoomsFile, cfg.DefaultPriceCents, cfg.Currency, cfg.DepositPercent, cfg.MinGuestAge)
	if err != nil {
		log.Fatalf("inventory: %v", err)
	}

	orderRepo := repository.NewOrderRepo(db)
	overrideRepo := repository.NewOverrideRepo(db)
	eventRepo := repository.NewPrivateEventRepo(db)
	adminRepo := repository.NewAdminRepo(db)

	// Seed the admin account so a fresh deployment has a working login.
	if cfg.AdminUser != "" && cfg.AdminPass != "" {
		hash, err := utils.HashPassword(cfg.AdminPass, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("hash admin password: %v", err)
		}
		if err := adminRepo.EnsureSeed(context.Background(), cfg.AdminUser, hash); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
	}

	engine := booking.NewEngine(inv, overrideRepo, eventRepo, orderRepo, queue_publisher.AMQPPublisher{})

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, adminRepo),
		Availability: handler.NewAvailabilityHandler(engine, inv),
		Calendar:     handler.NewCalendarHandler(engine),
		Reservations: handler.NewReservationHandler(engine, orderRepo),
		Admin:        handler.NewAdminHandler(inv, overrideRepo, eventRepo),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, rooms=%d)", addr, cfg.Env, inv.Snapshot().Count())
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
