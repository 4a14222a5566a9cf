// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair for the booking.confirmed queue.
package queue

// BookingConfirmedEvent is published after a booking transaction commits.
// It carries enough information for downstream consumers to log, notify,
// or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
	Reference   string   `json:"reference"`
	BookingID   uint64   `json:"booking_id"`
	UserID      uint64   `json:"user_id"`
	ShowtimeID  uint64   `json:"showtime_id"`
	MovieName   string   `json:"movie_name"`
	ShowDate    string   `json:"show_date"`
	ShowTime    string   `json:"show_time"`
	SeatNumbers []uint32 `json:"seat_numbers"`
	TotalAmount float64  `json:"total_amount"`
	ConfirmedAt string   `json:"confirmed_at"`
}
