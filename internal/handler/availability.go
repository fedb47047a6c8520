package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmarren/guesthouse-booking/internal/booking"
	"github.com/dmarren/guesthouse-booking/internal/inventory"
)

// AvailabilityHandler serves the public occupancy/pricing view and the
// sanitized room list consumed by the booking form.
type AvailabilityHandler struct {
	Engine *booking.Engine
	Inv    inventory.Provider
}

func NewAvailabilityHandler(e *booking.Engine, inv inventory.Provider) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: e, Inv: inv}
}

// GetAvailability handles GET /v1/availability?from=YYYY-MM-DD&to=YYYY-MM-DD.
// The response lists fully occupied dates, the displayed nightly price per
// date, and any private events in the range.
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from/to must be YYYY-MM-DD"})
	}
	av, err := h.Engine.GetAvailability(c.Request().Context(), from, to)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"from":                booking.DateKey(av.From),
		"to":                  booking.DateKey(av.To),
		"occupied_dates":      av.OccupiedDates,
		"nightly_price_cents": av.NightlyPrice,
		"private_events":      av.PrivateEvents,
	})
}

type roomView struct {
	ID                  int    `json:"id"`
	Title               string `json:"title"`
	Type                string `json:"type"`
	PriceCents          int64  `json:"price_cents"`
	EarlyBirdPriceCents *int64 `json:"early_bird_price_cents,omitempty"`
}

// ListRooms handles GET /v1/rooms.  Prices fall back to the global default
// so the form never renders a zero.
func (h *AvailabilityHandler) ListRooms(c echo.Context) error {
	snap := h.Inv.Snapshot()
	rooms := make([]roomView, 0, snap.Count())
	for _, r := range snap.Rooms {
		rooms = append(rooms, roomView{
			ID:                  r.ID,
			Title:               r.Title,
			Type:                r.Type,
			PriceCents:          snap.RoomPriceCents(r.ID),
			EarlyBirdPriceCents: r.EarlyBirdPriceCents,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"rooms":           rooms,
		"currency":        snap.Currency,
		"deposit_percent": snap.DepositPercent,
	})
}
