package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/movie-booking/internal/model"
)

// fakeStore is a mutex-guarded in-memory implementation of every store
// interface. Writes mimic the repository transaction semantics: a
// showtime appears together with its full seat inventory, a booking
// either flips all its seats or none, and deletion releases seats in
// the same critical section.
type fakeStore struct {
	mu           sync.Mutex
	nextID       uint64
	movies       map[uint64]model.Movie
	showtimes    map[uint64]model.Showtime
	showtimeKeys map[string]struct{}
	seats        map[uint64]model.Seat
	bookings     map[uint64]model.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		movies:       make(map[uint64]model.Movie),
		showtimes:    make(map[uint64]model.Showtime),
		showtimeKeys: make(map[string]struct{}),
		seats:        make(map[uint64]model.Seat),
		bookings:     make(map[uint64]model.Booking),
	}
}

func (f *fakeStore) id() uint64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addMovie(name string, price float64) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.movies[id] = model.Movie{ID: id, Name: name, Price: price}
	return id
}

func (f *fakeStore) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.movies[id]
	if !ok {
		return nil, model.ErrMovieNotFound
	}
	return &m, nil
}

func (f *fakeStore) Create(ctx context.Context, movieID uint64, showDate, showTime string) (*model.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%d|%s|%s", movieID, showDate, showTime)
	if _, taken := f.showtimeKeys[key]; taken {
		return nil, model.ErrShowtimeExists
	}
	f.showtimeKeys[key] = struct{}{}
	id := f.id()
	s := model.Showtime{ID: id, MovieID: movieID, ShowDate: showDate, ShowTime: showTime, CreatedAt: time.Now()}
	f.showtimes[id] = s
	for n := uint32(1); n <= model.SeatsPerShowtime; n++ {
		seatID := f.id()
		f.seats[seatID] = model.Seat{ID: seatID, ShowtimeID: id, SeatNumber: n, Status: model.SeatAvailable}
	}
	return &s, nil
}

func (f *fakeStore) GetShowtime(ctx context.Context, id uint64) (*model.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.showtimes[id]
	if !ok {
		return nil, model.ErrShowtimeNotFound
	}
	return &s, nil
}

func (f *fakeStore) ListByMovie(ctx context.Context, movieID uint64) ([]model.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]model.Showtime, 0)
	for _, s := range f.showtimes {
		if s.MovieID == movieID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeStore) List(ctx context.Context) ([]model.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]model.Showtime, 0, len(f.showtimes))
	for _, s := range f.showtimes {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeStore) DeleteShowtime(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.showtimes[id]
	if !ok {
		return model.ErrShowtimeNotFound
	}
	for _, b := range f.bookings {
		if b.ShowtimeID == id {
			return model.ErrBookingsExist
		}
	}
	for seatID, seat := range f.seats {
		if seat.ShowtimeID == id {
			delete(f.seats, seatID)
		}
	}
	delete(f.showtimes, id)
	delete(f.showtimeKeys, fmt.Sprintf("%d|%s|%s", s.MovieID, s.ShowDate, s.ShowTime))
	return nil
}

func (f *fakeStore) ListByShowtime(ctx context.Context, showtimeID uint64) ([]model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]model.Seat, 0, model.SeatsPerShowtime)
	for _, seat := range f.seats {
		if seat.ShowtimeID == showtimeID {
			result = append(result, seat)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SeatNumber < result[j].SeatNumber })
	return result, nil
}

func (f *fakeStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var unavailable []uint64
	for _, seatID := range b.SeatIDs {
		seat, ok := f.seats[seatID]
		if !ok || seat.ShowtimeID != b.ShowtimeID || seat.Status != model.SeatAvailable {
			unavailable = append(unavailable, seatID)
		}
	}
	if len(unavailable) > 0 {
		return &model.SeatUnavailableError{SeatIDs: unavailable}
	}
	for _, seatID := range b.SeatIDs {
		seat := f.seats[seatID]
		seat.Status = model.SeatBooked
		f.seats[seatID] = seat
	}
	b.ID = f.id()
	b.CreatedAt = time.Now()
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeStore) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, model.ErrBookingNotFound
	}
	return &b, nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]model.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeStore) DeleteBooking(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return model.ErrBookingNotFound
	}
	for _, seatID := range b.SeatIDs {
		if seat, ok := f.seats[seatID]; ok {
			seat.Status = model.SeatAvailable
			f.seats[seatID] = seat
		}
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeStore) Totals(ctx context.Context) (*model.BookingTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var t model.BookingTotals
	for _, b := range f.bookings {
		t.Count++
		t.Revenue += b.TotalAmount
	}
	return &t, nil
}

// showtimeStoreAdapter and bookingStoreAdapter rename the fake's
// methods onto the interface method sets, which collide between
// ShowtimeStore and BookingStore (GetByID, Delete, List).
type showtimeStoreAdapter struct{ f *fakeStore }

func (a showtimeStoreAdapter) Create(ctx context.Context, movieID uint64, showDate, showTime string) (*model.Showtime, error) {
	return a.f.Create(ctx, movieID, showDate, showTime)
}
func (a showtimeStoreAdapter) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	return a.f.GetShowtime(ctx, id)
}
func (a showtimeStoreAdapter) ListByMovie(ctx context.Context, movieID uint64) ([]model.Showtime, error) {
	return a.f.ListByMovie(ctx, movieID)
}
func (a showtimeStoreAdapter) List(ctx context.Context) ([]model.Showtime, error) {
	return a.f.List(ctx)
}
func (a showtimeStoreAdapter) Delete(ctx context.Context, id uint64) error {
	return a.f.DeleteShowtime(ctx, id)
}

type bookingStoreAdapter struct{ f *fakeStore }

func (a bookingStoreAdapter) Create(ctx context.Context, b *model.Booking) error {
	return a.f.CreateBooking(ctx, b)
}
func (a bookingStoreAdapter) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	return a.f.GetBooking(ctx, id)
}
func (a bookingStoreAdapter) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return a.f.ListByUser(ctx, userID)
}
func (a bookingStoreAdapter) Delete(ctx context.Context, id uint64) error {
	return a.f.DeleteBooking(ctx, id)
}
func (a bookingStoreAdapter) Totals(ctx context.Context) (*model.BookingTotals, error) {
	return a.f.Totals(ctx)
}

func newShowtimeService(f *fakeStore) *ShowtimeService {
	return NewShowtimeService(f, showtimeStoreAdapter{f}, f)
}

func newBookingService(f *fakeStore, publish EventPublisher) *BookingService {
	return NewBookingService(f, showtimeStoreAdapter{f}, f, bookingStoreAdapter{f}, publish)
}
