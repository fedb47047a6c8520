package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/dmarren/guesthouse-booking/internal/booking"
	"github.com/dmarren/guesthouse-booking/internal/model"
	"github.com/dmarren/guesthouse-booking/internal/repository"
)

// ReservationHandler covers the public hold endpoint and the admin
// reservation management endpoints.  The engine owns the workflow; the
// handler only binds, validates field shapes, and maps errors.
type ReservationHandler struct {
	Engine   *booking.Engine
	Orders   *repository.OrderRepo
	validate *validator.Validate
}

func NewReservationHandler(e *booking.Engine, orders *repository.OrderRepo) *ReservationHandler {
	return &ReservationHandler{Engine: e, Orders: orders, validate: validator.New()}
}

// holdReq is the public booking form payload.  Shape validation (formats,
// required fields) happens here; semantic validation (room ids, private
// events, pricing) belongs to the engine.
type holdReq struct {
	CheckIn    string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out" validate:"required,datetime=2006-01-02"`
	PrivateAll bool   `json:"private_all"`
	RoomIDs    []int  `json:"room_ids"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Age        *int   `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Note       string `json:"note,omitempty"`
}

// CreateHold handles POST /v1/reservations: the guest-facing hold flow.
// On success it returns 201 with the order id and the computed totals.
func (h *ReservationHandler) CreateHold(c echo.Context) error {
	var req holdReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid field",
				"field": errs[0].Field(),
			})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	checkIn, _ := booking.ParseDate(req.CheckIn)
	checkOut, _ := booking.ParseDate(req.CheckOut)
	result, err := h.Engine.CreateHold(c.Request().Context(), booking.HoldRequest{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		PrivateAll: req.PrivateAll,
		RoomIDs:    req.RoomIDs,
		Guest: model.Guest{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Age:       req.Age,
			Note:      req.Note,
		},
	})
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// orderView is the admin-facing serialization of a reservation.
type orderView struct {
	ID           uint64      `json:"id"`
	Status       string      `json:"status"`
	CheckIn      string      `json:"check_in"`
	CheckOut     string      `json:"check_out"`
	PrivateAll   bool        `json:"private_all"`
	RoomIDs      []int       `json:"room_ids,omitempty"`
	TotalCents   int64       `json:"total_cents"`
	DepositCents int64       `json:"deposit_cents"`
	Currency     string      `json:"currency"`
	Guest        model.Guest `json:"guest"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func toOrderView(o *model.Order) orderView {
	return orderView{
		ID:           o.ID,
		Status:       string(o.Status),
		CheckIn:      booking.DateKey(o.CheckIn),
		CheckOut:     booking.DateKey(o.CheckOut),
		PrivateAll:   o.PrivateAll,
		RoomIDs:      o.RoomIDs,
		TotalCents:   o.TotalCents,
		DepositCents: o.DepositCents,
		Currency:     o.Currency,
		Guest:        o.Guest,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// List handles GET /v1/reservations (admin): every reservation, newest
// first, with assigned rooms.
func (h *ReservationHandler) List(c echo.Context) error {
	orders, err := h.Orders.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views := make([]orderView, 0, len(orders))
	for i := range orders {
		views = append(views, toOrderView(&orders[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": views})
}

// Get handles GET /v1/reservations/:id (admin).
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := parseOrderID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	o, err := h.Orders.GetByID(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderView(o))
}

// Cancel handles POST /v1/reservations/:id/cancel (admin).  The engine
// flips the status, releases originated overrides and emits the
// cancellation event.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := parseOrderID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	o, err := h.Engine.CancelOrder(c.Request().Context(), id)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderView(o))
}

// Delete handles DELETE /v1/reservations/:id (admin) with the same release
// semantics as Cancel, removing the row entirely.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := parseOrderID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if _, err := h.Engine.DeleteOrder(c.Request().Context(), id); err != nil {
		return engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseOrderID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
