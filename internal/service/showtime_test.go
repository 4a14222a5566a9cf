package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-booking/internal/model"
)

func TestShowtimeCreateRejectsBadInput(t *testing.T) {
	f := newFakeStore()
	movieID := f.addMovie("Inception", 12.50)
	svc := newShowtimeService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, movieID, "2026-13-40", "18:00:00")
	assert.ErrorIs(t, err, model.ErrInvalidSchedule)

	_, err = svc.Create(ctx, movieID, "2026-09-01", "25:61:00")
	assert.ErrorIs(t, err, model.ErrInvalidSchedule)

	_, err = svc.Create(ctx, movieID+999, "2026-09-01", "18:00:00")
	assert.ErrorIs(t, err, model.ErrMovieNotFound)
}

func TestShowtimeCreateBuildsSeatInventory(t *testing.T) {
	f := newFakeStore()
	movieID := f.addMovie("Inception", 12.50)
	svc := newShowtimeService(f)
	ctx := context.Background()

	st, err := svc.Create(ctx, movieID, "2026-09-01", "18:00:00")
	require.NoError(t, err)
	require.NotZero(t, st.ID)

	seats, err := svc.SeatMap(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, seats, model.SeatsPerShowtime)
	for i, seat := range seats {
		assert.Equal(t, uint32(i+1), seat.SeatNumber)
		assert.Equal(t, model.SeatAvailable, seat.Status)
		assert.Equal(t, st.ID, seat.ShowtimeID)
	}
}

func TestShowtimeCreateDuplicateSlot(t *testing.T) {
	f := newFakeStore()
	movieID := f.addMovie("Inception", 12.50)
	svc := newShowtimeService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, movieID, "2026-09-01", "18:00:00")
	require.NoError(t, err)

	_, err = svc.Create(ctx, movieID, "2026-09-01", "18:00:00")
	assert.ErrorIs(t, err, model.ErrShowtimeExists)

	// A different time on the same day is a different slot.
	_, err = svc.Create(ctx, movieID, "2026-09-01", "21:00:00")
	assert.NoError(t, err)
}

func TestShowtimeCreateConcurrentSameSlot(t *testing.T) {
	f := newFakeStore()
	movieID := f.addMovie("Inception", 12.50)
	svc := newShowtimeService(f)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, movieID, "2026-09-01", "18:00:00")
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, model.ErrShowtimeExists)
		}
	}
	assert.Equal(t, 1, created, "exactly one creator should win the slot")

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestShowtimeListByMovieUnknownMovie(t *testing.T) {
	f := newFakeStore()
	svc := newShowtimeService(f)

	_, err := svc.ListByMovie(context.Background(), 42)
	assert.ErrorIs(t, err, model.ErrMovieNotFound)
}

func TestShowtimeDeleteBlockedByBookings(t *testing.T) {
	f := newFakeStore()
	movieID := f.addMovie("Inception", 12.50)
	showtimes := newShowtimeService(f)
	bookings := newBookingService(f, nil)
	ctx := context.Background()

	st, err := showtimes.Create(ctx, movieID, "2026-09-01", "18:00:00")
	require.NoError(t, err)
	seats, err := showtimes.SeatMap(ctx, st.ID)
	require.NoError(t, err)

	b, err := bookings.Create(ctx, 7, st.ID, []uint64{seats[0].ID}, 12.50)
	require.NoError(t, err)

	err = showtimes.Delete(ctx, st.ID)
	assert.ErrorIs(t, err, model.ErrBookingsExist)

	require.NoError(t, bookings.Delete(ctx, 7, b.ID))
	assert.NoError(t, showtimes.Delete(ctx, st.ID))

	_, err = showtimes.Get(ctx, st.ID)
	assert.ErrorIs(t, err, model.ErrShowtimeNotFound)
}

func TestSeatMapUnknownShowtime(t *testing.T) {
	f := newFakeStore()
	svc := newShowtimeService(f)

	_, err := svc.SeatMap(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrShowtimeNotFound)
}
