package model

import "time"

// Booking records a user's reservation of one or more seats for a
// showtime. The seat set is immutable once the booking is committed;
// the only later mutation is deletion, which releases the seats.
//
// Fields:
//  ID          – primary key identifier.
//  Reference   – public UUID handed to clients and event consumers.
//  UserID      – user who made the booking.
//  ShowtimeID  – showtime the seats belong to.
//  SeatIDs     – IDs of the reserved seats, in selection order.
//  TotalAmount – total charged for the booking, supplied by the caller.
//  CreatedAt   – creation timestamp.
type Booking struct {
	ID          uint64    // bookings.id
	Reference   string    // bookings.reference
	UserID      uint64    // bookings.user_id
	ShowtimeID  uint64    // bookings.showtime_id
	SeatIDs     []uint64  // booking_seats.seat_id per row
	TotalAmount float64   // bookings.total_amount
	CreatedAt   time.Time // bookings.created_at
}

// BookingTotals is the aggregate returned by the totals endpoint:
// how many bookings exist and the sum of their amounts.
type BookingTotals struct {
	Count   int64   `json:"total_bookings"`
	Revenue float64 `json:"total_revenue"`
}
