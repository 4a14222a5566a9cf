package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-booking/internal/model"
	"github.com/iliyamo/movie-booking/internal/queue"
)

// bookingFixture builds one movie with one showtime and returns the
// wired services plus the showtime's seats.
func bookingFixture(t *testing.T, publish EventPublisher) (*fakeStore, *ShowtimeService, *BookingService, *model.Showtime, []model.Seat) {
	t.Helper()
	f := newFakeStore()
	movieID := f.addMovie("Inception", 12.50)
	showtimes := newShowtimeService(f)
	bookings := newBookingService(f, publish)
	ctx := context.Background()

	st, err := showtimes.Create(ctx, movieID, "2026-09-01", "18:00:00")
	require.NoError(t, err)
	seats, err := showtimes.SeatMap(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, seats, model.SeatsPerShowtime)
	return f, showtimes, bookings, st, seats
}

func TestBookingCreateValidation(t *testing.T) {
	_, _, bookings, st, seats := bookingFixture(t, nil)
	ctx := context.Background()

	_, err := bookings.Create(ctx, 1, st.ID, nil, 10)
	assert.ErrorIs(t, err, model.ErrInvalidSeatSelection)

	_, err = bookings.Create(ctx, 1, st.ID, []uint64{seats[0].ID, seats[0].ID}, 10)
	assert.ErrorIs(t, err, model.ErrInvalidSeatSelection)

	tooMany := make([]uint64, model.SeatsPerShowtime+1)
	for i := range tooMany {
		tooMany[i] = uint64(i + 1)
	}
	_, err = bookings.Create(ctx, 1, st.ID, tooMany, 10)
	assert.ErrorIs(t, err, model.ErrInvalidSeatSelection)

	_, err = bookings.Create(ctx, 1, st.ID, []uint64{seats[0].ID}, 0)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = bookings.Create(ctx, 1, st.ID, []uint64{seats[0].ID}, -3)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = bookings.Create(ctx, 1, st.ID+999, []uint64{seats[0].ID}, 10)
	assert.ErrorIs(t, err, model.ErrShowtimeNotFound)
}

func TestBookingRejectsSeatsOutsideShowtime(t *testing.T) {
	f := newFakeStore()
	movieID := f.addMovie("Inception", 12.50)
	showtimes := newShowtimeService(f)
	bookings := newBookingService(f, nil)
	ctx := context.Background()

	stA, err := showtimes.Create(ctx, movieID, "2026-09-01", "18:00:00")
	require.NoError(t, err)
	stB, err := showtimes.Create(ctx, movieID, "2026-09-01", "21:00:00")
	require.NoError(t, err)
	seatsA, err := showtimes.SeatMap(ctx, stA.ID)
	require.NoError(t, err)

	// A seat from showtime A booked under showtime B is a validation
	// failure, not a seat conflict.
	_, err = bookings.Create(ctx, 1, stB.ID, []uint64{seatsA[0].ID}, 12.50)
	assert.ErrorIs(t, err, model.ErrSeatNotInShowtime)
	var unavailable *model.SeatUnavailableError
	assert.False(t, errors.As(err, &unavailable))

	// Same for a seat ID that exists nowhere.
	_, err = bookings.Create(ctx, 1, stB.ID, []uint64{999999}, 12.50)
	assert.ErrorIs(t, err, model.ErrSeatNotInShowtime)

	// The foreign seat was never touched and stays bookable in its own
	// showtime.
	after, err := showtimes.SeatMap(ctx, stA.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SeatAvailable, after[0].Status)
	_, err = bookings.Create(ctx, 1, stA.ID, []uint64{seatsA[0].ID}, 12.50)
	assert.NoError(t, err)
}

func TestBookingCreateFlipsSeatsAndPublishes(t *testing.T) {
	var published []queue.BookingConfirmedEvent
	capture := func(ctx context.Context, ev queue.BookingConfirmedEvent) error {
		published = append(published, ev)
		return nil
	}
	_, showtimes, bookings, st, seats := bookingFixture(t, capture)
	ctx := context.Background()

	picked := []uint64{seats[0].ID, seats[1].ID}
	b, err := bookings.Create(ctx, 1, st.ID, picked, 25.00)
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Len(t, b.Reference, 36)
	assert.Equal(t, picked, b.SeatIDs)

	after, err := showtimes.SeatMap(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SeatBooked, after[0].Status)
	assert.Equal(t, model.SeatBooked, after[1].Status)
	for _, seat := range after[2:] {
		assert.Equal(t, model.SeatAvailable, seat.Status)
	}

	require.Len(t, published, 1)
	ev := published[0]
	assert.Equal(t, b.Reference, ev.Reference)
	assert.Equal(t, b.ID, ev.BookingID)
	assert.Equal(t, "Inception", ev.MovieName)
	assert.Equal(t, "2026-09-01", ev.ShowDate)
	assert.Equal(t, []uint32{1, 2}, ev.SeatNumbers)
	assert.Equal(t, 25.00, ev.TotalAmount)
	assert.NotEmpty(t, ev.ConfirmedAt)
}

func TestBookingSeatConflictRollsBackEverySeat(t *testing.T) {
	_, showtimes, bookings, st, seats := bookingFixture(t, nil)
	ctx := context.Background()

	_, err := bookings.Create(ctx, 1, st.ID, []uint64{seats[0].ID}, 12.50)
	require.NoError(t, err)

	// Second booking wants one taken seat and one free seat; it must
	// fail naming the taken seat and leave the free seat untouched.
	_, err = bookings.Create(ctx, 2, st.ID, []uint64{seats[0].ID, seats[1].ID}, 25.00)
	var unavailable *model.SeatUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []uint64{seats[0].ID}, unavailable.SeatIDs)

	after, err := showtimes.SeatMap(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SeatBooked, after[0].Status)
	assert.Equal(t, model.SeatAvailable, after[1].Status)
}

func TestBookingConcurrentSameSeat(t *testing.T) {
	_, _, bookings, st, seats := bookingFixture(t, nil)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = bookings.Create(ctx, uint64(i+1), st.ID, []uint64{seats[3].ID}, 12.50)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			var unavailable *model.SeatUnavailableError
			assert.ErrorAs(t, err, &unavailable)
		}
	}
	assert.Equal(t, 1, winners, "exactly one booking should win the seat")

	totals, err := bookings.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Count)
}

func TestBookingOwnershipIsHidden(t *testing.T) {
	_, _, bookings, st, seats := bookingFixture(t, nil)
	ctx := context.Background()

	b, err := bookings.Create(ctx, 1, st.ID, []uint64{seats[0].ID}, 12.50)
	require.NoError(t, err)

	_, err = bookings.Get(ctx, 2, b.ID)
	assert.ErrorIs(t, err, model.ErrBookingNotFound)

	err = bookings.Delete(ctx, 2, b.ID)
	assert.ErrorIs(t, err, model.ErrBookingNotFound)

	got, err := bookings.Get(ctx, 1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestBookingDeleteReleasesSeats(t *testing.T) {
	_, showtimes, bookings, st, seats := bookingFixture(t, nil)
	ctx := context.Background()

	picked := []uint64{seats[0].ID, seats[1].ID}
	b, err := bookings.Create(ctx, 1, st.ID, picked, 25.00)
	require.NoError(t, err)

	require.NoError(t, bookings.Delete(ctx, 1, b.ID))

	after, err := showtimes.SeatMap(ctx, st.ID)
	require.NoError(t, err)
	for _, seat := range after {
		assert.Equal(t, model.SeatAvailable, seat.Status)
	}

	// Released seats are immediately bookable again.
	_, err = bookings.Create(ctx, 2, st.ID, picked, 25.00)
	assert.NoError(t, err)
}

func TestBookingTotals(t *testing.T) {
	_, _, bookings, st, seats := bookingFixture(t, nil)
	ctx := context.Background()

	totals, err := bookings.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.Count)
	assert.Equal(t, 0.0, totals.Revenue)

	_, err = bookings.Create(ctx, 1, st.ID, []uint64{seats[0].ID}, 10.0)
	require.NoError(t, err)
	_, err = bookings.Create(ctx, 2, st.ID, []uint64{seats[1].ID}, 15.5)
	require.NoError(t, err)

	totals, err = bookings.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.Count)
	assert.InDelta(t, 25.5, totals.Revenue, 1e-9)
}

func TestBookingListByUser(t *testing.T) {
	_, _, bookings, st, seats := bookingFixture(t, nil)
	ctx := context.Background()

	b1, err := bookings.Create(ctx, 1, st.ID, []uint64{seats[0].ID}, 12.50)
	require.NoError(t, err)
	_, err = bookings.Create(ctx, 2, st.ID, []uint64{seats[1].ID}, 12.50)
	require.NoError(t, err)
	b3, err := bookings.Create(ctx, 1, st.ID, []uint64{seats[2].ID}, 12.50)
	require.NoError(t, err)

	mine, err := bookings.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, b1.ID, mine[0].ID)
	assert.Equal(t, b3.ID, mine[1].ID)
}
