package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmarren/guesthouse-booking/internal/booking"
	"github.com/dmarren/guesthouse-booking/internal/inventory"
	"github.com/dmarren/guesthouse-booking/internal/model"
	"github.com/dmarren/guesthouse-booking/internal/repository"
)

// AdminHandler covers the administrative override and private-event
// endpoints.  Both stores are idempotent: setting the same value twice is
// a no-op change and clearing a missing record is not an error.
type AdminHandler struct {
	Inv       inventory.Provider
	Overrides *repository.OverrideRepo
	Events    *repository.PrivateEventRepo
}

func NewAdminHandler(inv inventory.Provider, ov *repository.OverrideRepo, ev *repository.PrivateEventRepo) *AdminHandler {
	return &AdminHandler{Inv: inv, Overrides: ov, Events: ev}
}

type overrideReq struct {
	RoomID           int     `json:"room_id"`
	Date             string  `json:"date"`
	Status           string  `json:"status"`
	Reason           string  `json:"reason,omitempty"`
	CustomPriceCents *int64  `json:"custom_price_cents,omitempty"`
	OriginOrderID    *uint64 `json:"origin_order_id,omitempty"`
}

// SetOverride handles PUT /v1/admin/overrides.
func (h *AdminHandler) SetOverride(c echo.Context) error {
	var req overrideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID < 1 || req.RoomID > h.Inv.Snapshot().Count() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown room id"})
	}
	date, err := booking.ParseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	status := model.OverrideStatus(req.Status)
	if !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown override status"})
	}
	ov := model.DateOverride{
		RoomID:           req.RoomID,
		Date:             date,
		Status:           status,
		Reason:           req.Reason,
		CustomPriceCents: req.CustomPriceCents,
		SetBy:            adminActor(c),
		OriginOrderID:    req.OriginOrderID,
	}
	if err := h.Overrides.Set(c.Request().Context(), ov); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearOverride handles DELETE /v1/admin/overrides?room_id=&date=.
func (h *AdminHandler) ClearOverride(c echo.Context) error {
	var roomID int
	if _, err := fmt.Sscanf(c.QueryParam("room_id"), "%d", &roomID); err != nil || roomID < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	date, err := booking.ParseDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if err := h.Overrides.Clear(c.Request().Context(), roomID, date); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type privateEventReq struct {
	Date       string `json:"date"`
	Name       string `json:"name"`
	Mode       string `json:"mode"`
	PriceCents int64  `json:"price_cents"`
}

// SetPrivateEvent handles PUT /v1/admin/private-events.
func (h *AdminHandler) SetPrivateEvent(c echo.Context) error {
	var req privateEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := booking.ParseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	mode := model.EventMode(req.Mode)
	if !mode.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown event mode"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	ev := model.PrivateEvent{Date: date, Name: req.Name, Mode: mode, PriceCents: req.PriceCents}
	if err := h.Events.Set(c.Request().Context(), ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearPrivateEvent handles DELETE /v1/admin/private-events?date=.
func (h *AdminHandler) ClearPrivateEvent(c echo.Context) error {
	date, err := booking.ParseDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if err := h.Events.Clear(c.Request().Context(), date); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// adminActor renders the authenticated admin identity from the JWT subject
// claim for audit fields.
func adminActor(c echo.Context) string {
	if v := c.Get("admin_id"); v != nil {
		return fmt.Sprintf("admin:%v", v)
	}
	return "admin"
}
