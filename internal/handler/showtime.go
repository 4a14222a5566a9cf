package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking/internal/model"
	"github.com/iliyamo/movie-booking/internal/service"
)

// ShowtimeHandler serves showtime scheduling and seat maps.
type ShowtimeHandler struct {
	Showtimes *service.ShowtimeService
}

func NewShowtimeHandler(showtimes *service.ShowtimeService) *ShowtimeHandler {
	return &ShowtimeHandler{Showtimes: showtimes}
}

type showtimeReq struct {
	MovieID  uint64 `json:"movie_id"`
	ShowDate string `json:"show_date"`
	ShowTime string `json:"show_time"`
}

type showtimeView struct {
	ID       uint64 `json:"id"`
	MovieID  uint64 `json:"movie_id"`
	ShowDate string `json:"show_date"`
	ShowTime string `json:"show_time"`
}

func showtimeToView(s *model.Showtime) showtimeView {
	return showtimeView{ID: s.ID, MovieID: s.MovieID, ShowDate: s.ShowDate, ShowTime: s.ShowTime}
}

type seatView struct {
	ID         uint64 `json:"id"`
	SeatNumber uint32 `json:"seat_number"`
	Status     string `json:"status"`
}

// Create schedules a showtime; its seat inventory appears atomically
// with it. Duplicate (movie, date, time) submissions get 409.
func (h *ShowtimeHandler) Create(c echo.Context) error {
	var req showtimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Showtimes.Create(ctx, req.MovieID, req.ShowDate, req.ShowTime)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, showtimeToView(s))
}

// List returns every showtime.
func (h *ShowtimeHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	showtimes, err := h.Showtimes.List(ctx)
	if err != nil {
		return writeDomainErr(c, err)
	}
	views := make([]showtimeView, len(showtimes))
	for i := range showtimes {
		views[i] = showtimeToView(&showtimes[i])
	}
	return c.JSON(http.StatusOK, views)
}

// Get returns a single showtime.
func (h *ShowtimeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Showtimes.Get(ctx, id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, showtimeToView(s))
}

// ListByMovie returns the showtimes of one movie; unknown movies get 404.
func (h *ShowtimeHandler) ListByMovie(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	showtimes, err := h.Showtimes.ListByMovie(ctx, movieID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	views := make([]showtimeView, len(showtimes))
	for i := range showtimes {
		views[i] = showtimeToView(&showtimes[i])
	}
	return c.JSON(http.StatusOK, views)
}

// SeatMap returns a showtime's seats ordered by seat number.
func (h *ShowtimeHandler) SeatMap(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	seats, err := h.Showtimes.SeatMap(ctx, id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	views := make([]seatView, len(seats))
	for i, seat := range seats {
		views[i] = seatView{ID: seat.ID, SeatNumber: seat.SeatNumber, Status: seat.Status}
	}
	return c.JSON(http.StatusOK, views)
}

// Delete removes a showtime and its seats; 409 while bookings exist.
func (h *ShowtimeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Showtimes.Delete(ctx, id); err != nil {
		return writeDomainErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
