// Package model defines the persistence-shaped domain types and the
// error values shared by the repository, service and handler layers.
// Sentinel errors let handlers map failure modes onto HTTP statuses
// with errors.Is instead of inspecting driver errors; expected
// outcomes such as a taken seat or a duplicate showtime are ordinary
// return values, never panics.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Not-found conditions, detected before any mutation.
var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")
)

// Conflict conditions.
var (
	// ErrShowtimeExists is returned when the (movie, date, time) key is
	// already taken. It is produced from the uq_showtime unique-key
	// violation at insert time, not from a pre-check query, so racing
	// creators cannot both commit.
	ErrShowtimeExists = errors.New("showtime already exists")

	// ErrBookingsExist blocks showtime and movie deletion while any
	// booking still references the affected seats.
	ErrBookingsExist = errors.New("bookings still reference this showtime")

	// ErrEmailExists is returned on registration with a taken email.
	ErrEmailExists = errors.New("email already exists")
)

// Validation conditions, rejected before any mutation.
var (
	ErrInvalidSeatSelection = errors.New("invalid seat selection")
	ErrInvalidAmount        = errors.New("total amount must be positive")
	ErrInvalidSchedule      = errors.New("invalid show date or time")

	// ErrSeatNotInShowtime rejects a seat ID that does not exist in the
	// target showtime's inventory. This is a validation failure, not a
	// seat conflict: a conflict means the seat exists and is taken.
	ErrSeatNotInShowtime = errors.New("seat does not belong to showtime")
)

// SeatUnavailableError reports which seats blocked a booking attempt.
// It is raised inside the booking transaction; by the time the caller
// sees it, every seat flipped during the attempt has been rolled back.
type SeatUnavailableError struct {
	SeatIDs []uint64
}

func (e *SeatUnavailableError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = strconv.FormatUint(id, 10)
	}
	return fmt.Sprintf("seat(s) not available: %s", strings.Join(ids, ", "))
}
