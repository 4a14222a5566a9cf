// Package service holds the application logic between the HTTP
// handlers and the repositories: input validation, cross-entity
// checks, and event publishing. Services depend on narrow store
// interfaces, satisfied by the repository package in production and
// by in-memory fakes in tests.
package service

import (
	"context"

	"github.com/iliyamo/movie-booking/internal/model"
)

// MovieStore is the slice of MovieRepo the services need.
type MovieStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// ShowtimeStore is satisfied by repository.ShowtimeRepo.
type ShowtimeStore interface {
	Create(ctx context.Context, movieID uint64, showDate, showTime string) (*model.Showtime, error)
	GetByID(ctx context.Context, id uint64) (*model.Showtime, error)
	ListByMovie(ctx context.Context, movieID uint64) ([]model.Showtime, error)
	List(ctx context.Context) ([]model.Showtime, error)
	Delete(ctx context.Context, id uint64) error
}

// SeatStore is satisfied by repository.SeatRepo.
type SeatStore interface {
	ListByShowtime(ctx context.Context, showtimeID uint64) ([]model.Seat, error)
}

// BookingStore is satisfied by repository.BookingRepo.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
	Delete(ctx context.Context, id uint64) error
	Totals(ctx context.Context) (*model.BookingTotals, error)
}
