package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmarren/guesthouse-booking/internal/booking"
	"github.com/dmarren/guesthouse-booking/internal/repository"
)

// parseRange extracts and parses the from/to query parameters shared by
// the availability and calendar endpoints.
func parseRange(c echo.Context) (from, to time.Time, err error) {
	from, err = booking.ParseDate(c.QueryParam("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err = booking.ParseDate(c.QueryParam("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// engineError maps the engine's error taxonomy onto HTTP responses.  Every
// handler that calls into the engine funnels failures through here so the
// status mapping stays in one place.
func engineError(c echo.Context, err error) error {
	var verr *booking.ValidationError
	var conflict *booking.PrivateEventConflictError
	var serr *booking.StorageError
	switch {
	case errors.Is(err, booking.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date range"})
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Msg, "field": verr.Field})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":      "date reserved for a private event",
			"event_name": conflict.EventName,
			"date":       booking.DateKey(conflict.Date),
		})
	case errors.Is(err, booking.ErrInvalidTotal):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "computed total is not positive"})
	case errors.Is(err, repository.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.As(err, &serr):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage failure"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
