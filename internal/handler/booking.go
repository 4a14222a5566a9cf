package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking/internal/model"
	"github.com/iliyamo/movie-booking/internal/service"
)

// BookingHandler serves the booking endpoints. All of them sit behind
// the JWT middleware; the acting user always comes from the token,
// never from the body.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type bookingReq struct {
	ShowtimeID  uint64   `json:"showtime_id"`
	SeatIDs     []uint64 `json:"seat_ids"`
	TotalAmount float64  `json:"total_amount"`
}

type bookingView struct {
	ID          uint64    `json:"id"`
	Reference   string    `json:"reference"`
	ShowtimeID  uint64    `json:"showtime_id"`
	SeatIDs     []uint64  `json:"seat_ids"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

func bookingToView(b *model.Booking) bookingView {
	return bookingView{
		ID:          b.ID,
		Reference:   b.Reference,
		ShowtimeID:  b.ShowtimeID,
		SeatIDs:     b.SeatIDs,
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt,
	}
}

// Create books seats for the authenticated user. The whole request
// succeeds or fails as one unit; on a seat conflict the response names
// every blocking seat and nothing has changed.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.Create(ctx, uid, req.ShowtimeID, req.SeatIDs, req.TotalAmount)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, bookingToView(b))
}

// List returns the authenticated user's bookings.
func (h *BookingHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bookings, err := h.Bookings.List(ctx, uid)
	if err != nil {
		return writeDomainErr(c, err)
	}
	views := make([]bookingView, len(bookings))
	for i := range bookings {
		views[i] = bookingToView(&bookings[i])
	}
	return c.JSON(http.StatusOK, views)
}

// Get returns one of the user's bookings; other users' bookings read
// as 404.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.Get(ctx, uid, id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, bookingToView(b))
}

// Delete cancels one of the user's bookings and releases its seats.
func (h *BookingHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Bookings.Delete(ctx, uid, id); err != nil {
		return writeDomainErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Totals reports the global booking count and revenue sum.
func (h *BookingHandler) Totals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	totals, err := h.Bookings.Totals(ctx)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, totals)
}
