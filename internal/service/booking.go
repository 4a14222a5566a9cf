package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-booking/internal/model"
	"github.com/iliyamo/movie-booking/internal/queue"
)

// EventPublisher publishes a booking-confirmed event. In production it
// is queue.PublishBookingConfirmed; tests inject a capture function.
type EventPublisher func(ctx context.Context, event queue.BookingConfirmedEvent) error

// BookingService runs the booking workflow: validation up front, the
// all-or-nothing reservation transaction in the repository, and a
// best-effort confirmation event after commit.
type BookingService struct {
	movies    MovieStore
	showtimes ShowtimeStore
	seats     SeatStore
	bookings  BookingStore
	publish   EventPublisher
}

// NewBookingService wires a BookingService from its stores. publish
// may be nil to disable eventing.
func NewBookingService(movies MovieStore, showtimes ShowtimeStore, seats SeatStore, bookings BookingStore, publish EventPublisher) *BookingService {
	return &BookingService{movies: movies, showtimes: showtimes, seats: seats, bookings: bookings, publish: publish}
}

// Create books the given seats of a showtime for a user.
//
// Validation happens before any write: the seat list must be
// non-empty, free of duplicates and no larger than the showtime's
// inventory, the amount must be positive, and every seat ID must be
// part of the showtime's own inventory — a foreign or unknown seat is
// model.ErrSeatNotInShowtime, never a seat conflict. The showtime is
// resolved first so an unknown ID fails with
// model.ErrShowtimeNotFound. Everything after that is the
// repository's single transaction; on *model.SeatUnavailableError no
// seat has changed state.
func (s *BookingService) Create(ctx context.Context, userID, showtimeID uint64, seatIDs []uint64, totalAmount float64) (*model.Booking, error) {
	if len(seatIDs) == 0 || len(seatIDs) > model.SeatsPerShowtime {
		return nil, model.ErrInvalidSeatSelection
	}
	seen := make(map[uint64]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		if _, dup := seen[id]; dup {
			return nil, model.ErrInvalidSeatSelection
		}
		seen[id] = struct{}{}
	}
	if totalAmount <= 0 {
		return nil, model.ErrInvalidAmount
	}

	showtime, err := s.showtimes.GetByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	inventory, err := s.seats.ListByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	known := make(map[uint64]struct{}, len(inventory))
	for _, seat := range inventory {
		known[seat.ID] = struct{}{}
	}
	for _, id := range seatIDs {
		if _, ok := known[id]; !ok {
			return nil, model.ErrSeatNotInShowtime
		}
	}

	b := &model.Booking{
		Reference:   uuid.NewString(),
		UserID:      userID,
		ShowtimeID:  showtimeID,
		SeatIDs:     seatIDs,
		TotalAmount: totalAmount,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	s.publishConfirmed(ctx, b, showtime)
	return b, nil
}

// publishConfirmed assembles and publishes the confirmation event.
// The booking has already committed, so every failure here is
// swallowed after the publisher logs it.
func (s *BookingService) publishConfirmed(ctx context.Context, b *model.Booking, showtime *model.Showtime) {
	if s.publish == nil {
		return
	}
	ev := queue.BookingConfirmedEvent{
		Reference:   b.Reference,
		BookingID:   b.ID,
		UserID:      b.UserID,
		ShowtimeID:  b.ShowtimeID,
		ShowDate:    showtime.ShowDate,
		ShowTime:    showtime.ShowTime,
		TotalAmount: b.TotalAmount,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if movie, err := s.movies.GetByID(ctx, showtime.MovieID); err == nil {
		ev.MovieName = movie.Name
	}
	if seats, err := s.seats.ListByShowtime(ctx, b.ShowtimeID); err == nil {
		byID := make(map[uint64]uint32, len(seats))
		for _, seat := range seats {
			byID[seat.ID] = seat.SeatNumber
		}
		for _, id := range b.SeatIDs {
			if n, ok := byID[id]; ok {
				ev.SeatNumbers = append(ev.SeatNumbers, n)
			}
		}
	}
	_ = s.publish(ctx, ev)
}

// Get returns one of the user's bookings. A booking owned by someone
// else reports model.ErrBookingNotFound, not a permission error, so
// booking IDs cannot be probed.
func (s *BookingService) Get(ctx context.Context, userID, bookingID uint64) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, model.ErrBookingNotFound
	}
	return b, nil
}

// List returns all bookings of a user in insertion order.
func (s *BookingService) List(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// Delete cancels one of the user's bookings, releasing its seats in
// the same transaction. Ownership is checked the same way as Get.
func (s *BookingService) Delete(ctx context.Context, userID, bookingID uint64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return model.ErrBookingNotFound
	}
	return s.bookings.Delete(ctx, bookingID)
}

// Totals reports the global booking count and revenue sum.
func (s *BookingService) Totals(ctx context.Context) (*model.BookingTotals, error) {
	return s.bookings.Totals(ctx)
}
