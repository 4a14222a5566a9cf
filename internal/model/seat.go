package model

import "time"

// Seat status values as stored in seats.status. A seat only moves
// AVAILABLE -> BOOKED through reservation; the reverse transition
// happens solely when the owning booking is deleted. UNAVAILABLE is
// reserved for manually blocked seats.
const (
	SeatAvailable   = "AVAILABLE"
	SeatBooked      = "BOOKED"
	SeatUnavailable = "UNAVAILABLE"
)

// Seat is one reservable unit in a showtime's inventory. Each seat
// belongs to exactly one showtime; (ShowtimeID, SeatNumber) is unique.
// Status is the only field that changes after creation.
//
// Fields:
//  ID         – primary key identifier.
//  ShowtimeID – showtime owning this seat.
//  SeatNumber – position within the inventory (1-based).
//  Status     – AVAILABLE, BOOKED or UNAVAILABLE.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Seat struct {
	ID         uint64    // seats.id
	ShowtimeID uint64    // seats.showtime_id
	SeatNumber uint32    // seats.seat_number
	Status     string    // seats.status
	CreatedAt  time.Time // seats.created_at
	UpdatedAt  time.Time // seats.updated_at
}
