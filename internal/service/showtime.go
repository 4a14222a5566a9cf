package service

import (
	"context"
	"time"

	"github.com/iliyamo/movie-booking/internal/model"
)

// Layouts accepted for showtime scheduling input.
const (
	showDateLayout = "2006-01-02"
	showTimeLayout = "15:04:05"
)

// ShowtimeService schedules showtimes and exposes their seat maps.
type ShowtimeService struct {
	movies    MovieStore
	showtimes ShowtimeStore
	seats     SeatStore
}

// NewShowtimeService wires a ShowtimeService from its stores.
func NewShowtimeService(movies MovieStore, showtimes ShowtimeStore, seats SeatStore) *ShowtimeService {
	return &ShowtimeService{movies: movies, showtimes: showtimes, seats: seats}
}

// Create schedules a showtime for a movie. The date and time strings
// must parse as YYYY-MM-DD and HH:MM:SS; the movie must exist. The
// duplicate-schedule check is left entirely to the storage layer's
// unique key, so concurrent submissions of the same slot resolve to
// exactly one created showtime and model.ErrShowtimeExists for the
// rest.
func (s *ShowtimeService) Create(ctx context.Context, movieID uint64, showDate, showTime string) (*model.Showtime, error) {
	if _, err := time.Parse(showDateLayout, showDate); err != nil {
		return nil, model.ErrInvalidSchedule
	}
	if _, err := time.Parse(showTimeLayout, showTime); err != nil {
		return nil, model.ErrInvalidSchedule
	}
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return nil, err
	}
	return s.showtimes.Create(ctx, movieID, showDate, showTime)
}

// Get returns a single showtime by ID.
func (s *ShowtimeService) Get(ctx context.Context, id uint64) (*model.Showtime, error) {
	return s.showtimes.GetByID(ctx, id)
}

// List returns all showtimes.
func (s *ShowtimeService) List(ctx context.Context) ([]model.Showtime, error) {
	return s.showtimes.List(ctx)
}

// ListByMovie returns the showtimes of one movie. The movie is
// resolved first so an unknown ID reports model.ErrMovieNotFound
// instead of an empty list.
func (s *ShowtimeService) ListByMovie(ctx context.Context, movieID uint64) ([]model.Showtime, error) {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return nil, err
	}
	return s.showtimes.ListByMovie(ctx, movieID)
}

// Delete removes a showtime and its seats; the repository refuses with
// model.ErrBookingsExist while bookings still reference it.
func (s *ShowtimeService) Delete(ctx context.Context, id uint64) error {
	return s.showtimes.Delete(ctx, id)
}

// SeatMap returns the showtime's seats ordered by seat number. The
// showtime is resolved first so an unknown ID reports
// model.ErrShowtimeNotFound instead of an empty inventory.
func (s *ShowtimeService) SeatMap(ctx context.Context, showtimeID uint64) ([]model.Seat, error) {
	if _, err := s.showtimes.GetByID(ctx, showtimeID); err != nil {
		return nil, err
	}
	return s.seats.ListByShowtime(ctx, showtimeID)
}
