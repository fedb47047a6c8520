// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dmarren/guesthouse-booking/internal/config"
	"github.com/dmarren/guesthouse-booking/internal/handler"
	"github.com/dmarren/guesthouse-booking/internal/middleware"
)

// Handlers groups every constructed handler so registration stays a single
// call from main.
type Handlers struct {
	Auth         *handler.AuthHandler
	Availability *handler.AvailabilityHandler
	Calendar     *handler.CalendarHandler
	Reservations *handler.ReservationHandler
	Admin        *handler.AdminHandler
}

// Register wires all routes onto the Echo instance.  Public reads go
// through the response cache and the rate limiter; admin routes sit behind
// JWT auth plus the ADMIN role check.  The Redis client may be nil, in
// which case cache and limiter middleware pass requests straight through.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Public surface: availability, rooms, calendar reads and the hold flow.
	pub := e.Group("/v1", rateLimit)
	pub.GET("/availability", h.Availability.GetAvailability, cache)
	pub.GET("/rooms", h.Availability.ListRooms, cache)
	pub.GET("/calendar", h.Calendar.GetGrid, cache)
	pub.GET("/calendar/:room/:date", h.Calendar.GetCell)
	pub.POST("/reservations", h.Reservations.CreateHold)

	e.POST("/v1/auth/login", h.Auth.Login)

	// Admin surface: reservation management, overrides, private events.
	admin := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("ADMIN"))
	admin.GET("/reservations", h.Reservations.List)
	admin.GET("/reservations/:id", h.Reservations.Get)
	admin.POST("/reservations/:id/cancel", h.Reservations.Cancel)
	admin.DELETE("/reservations/:id", h.Reservations.Delete)
	admin.PUT("/admin/overrides", h.Admin.SetOverride)
	admin.DELETE("/admin/overrides", h.Admin.ClearOverride)
	admin.PUT("/admin/private-events", h.Admin.SetPrivateEvent)
	admin.DELETE("/admin/private-events", h.Admin.ClearPrivateEvent)
}
