package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-booking/internal/model"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetUserIDConversions(t *testing.T) {
	cases := []struct {
		name string
		val  any
		want uint64
	}{
		{"uint64", uint64(7), 7},
		{"float64 from jwt claims", float64(42), 42},
		{"int", int(9), 9},
		{"numeric string", "13", 13},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t)
			c.Set("user_id", tc.val)
			got, err := getUserID(c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	c, _ := newTestContext(t)
	_, err := getUserID(c)
	assert.Error(t, err, "missing user_id must not default to zero silently")
}

func TestWriteDomainErrStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{model.ErrMovieNotFound, http.StatusNotFound},
		{model.ErrShowtimeNotFound, http.StatusNotFound},
		{model.ErrBookingNotFound, http.StatusNotFound},
		{model.ErrShowtimeExists, http.StatusConflict},
		{model.ErrBookingsExist, http.StatusConflict},
		{model.ErrEmailExists, http.StatusConflict},
		{model.ErrInvalidSchedule, http.StatusBadRequest},
		{model.ErrInvalidSeatSelection, http.StatusBadRequest},
		{model.ErrSeatNotInShowtime, http.StatusBadRequest},
		{model.ErrInvalidAmount, http.StatusBadRequest},
		{&model.SeatUnavailableError{SeatIDs: []uint64{3, 4}}, http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			c, rec := newTestContext(t)
			require.NoError(t, writeDomainErr(c, tc.err))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestSeatConflictBodyNamesSeats(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, writeDomainErr(c, &model.SeatUnavailableError{SeatIDs: []uint64{5}}))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "seat_ids")
	assert.Contains(t, rec.Body.String(), "5")
}
