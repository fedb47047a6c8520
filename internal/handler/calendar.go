package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dmarren/guesthouse-booking/internal/booking"
)

// CalendarHandler serves the admin calendar grid.
type CalendarHandler struct {
	Engine *booking.Engine
}

func NewCalendarHandler(e *booking.Engine) *CalendarHandler {
	return &CalendarHandler{Engine: e}
}

// GetGrid handles GET /v1/calendar?from=YYYY-MM-DD&to=YYYY-MM-DD.  It
// returns one row of cells per room covering the inclusive range.
func (h *CalendarHandler) GetGrid(c echo.Context) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from/to must be YYYY-MM-DD"})
	}
	grid, err := h.Engine.CellRange(c.Request().Context(), from, to)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": grid})
}

// GetCell handles GET /v1/calendar/:room/:date, the single-cell variant
// used when the UI refreshes one cell after an edit.
func (h *CalendarHandler) GetCell(c echo.Context) error {
	roomID, err := strconv.Atoi(c.Param("room"))
	if err != nil || roomID < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	date, err := booking.ParseDate(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	cell, err := h.Engine.CellState(c.Request().Context(), roomID, date)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, cell)
}
