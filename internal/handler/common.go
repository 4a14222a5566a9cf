// Package handler contains the HTTP handlers. Handlers parse and
// validate the request shape, delegate to the service/repository
// layer, and translate domain errors onto HTTP statuses; they hold no
// business rules of their own.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking/internal/model"
)

// dbTimeout bounds every database round-trip started by a handler.
const dbTimeout = 5 * time.Second

// getUserID extracts the user_id set by the JWT middleware and
// converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the named path parameter as an unsigned integer.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// writeDomainErr maps the domain error taxonomy onto HTTP responses:
// not-found sentinels to 404, conflicts to 409, validation failures to
// 400, seat conflicts to 409 with the blocking seat list. Anything
// unrecognized is a 500 with a generic body.
func writeDomainErr(c echo.Context, err error) error {
	var unavailable *model.SeatUnavailableError
	switch {
	case errors.Is(err, model.ErrMovieNotFound),
		errors.Is(err, model.ErrShowtimeNotFound),
		errors.Is(err, model.ErrBookingNotFound),
		errors.Is(err, model.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrShowtimeExists),
		errors.Is(err, model.ErrBookingsExist),
		errors.Is(err, model.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidSchedule),
		errors.Is(err, model.ErrInvalidSeatSelection),
		errors.Is(err, model.ErrSeatNotInShowtime),
		errors.Is(err, model.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.As(err, &unavailable):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "seats not available",
			"seat_ids": unavailable.SeatIDs,
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
