package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-booking/internal/model"
)

// BookingRepo owns the booking transaction: seat reservation, the
// booking row and its seat links commit or roll back as one unit.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Create runs the booking transaction for b. The caller supplies
// Reference, UserID, ShowtimeID, SeatIDs and TotalAmount; ID and
// CreatedAt are populated on success.
//
// Every requested seat is flipped AVAILABLE -> BOOKED with a
// compare-and-set update. The attempt keeps going after the first
// failed seat so the returned *model.SeatUnavailableError names every
// blocking seat, but any failure rolls the whole transaction back:
// partially flipped seats never become visible. The
// uq_booking_seats_seat unique key backs the same guarantee at the
// storage level and surfaces as a seat conflict too.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var unavailable []uint64
	for _, seatID := range b.SeatIDs {
		ok, err := reserveSeatTx(ctx, tx, b.ShowtimeID, seatID)
		if err != nil {
			return err
		}
		if !ok {
			unavailable = append(unavailable, seatID)
		}
	}
	if len(unavailable) > 0 {
		return &model.SeatUnavailableError{SeatIDs: unavailable}
	}

	const ins = `INSERT INTO bookings (reference, user_id, showtime_id, total_amount) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins, b.Reference, b.UserID, b.ShowtimeID, b.TotalAmount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	var sb strings.Builder
	sb.WriteString(`INSERT INTO booking_seats (booking_id, seat_id) VALUES `)
	args := make([]any, 0, len(b.SeatIDs)*2)
	for i, seatID := range b.SeatIDs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?)")
		args = append(args, b.ID, seatID)
	}
	if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
		if isDuplicateKey(err) {
			return &model.SeatUnavailableError{SeatIDs: b.SeatIDs}
		}
		return err
	}

	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const bookingColumns = `id, reference, user_id, showtime_id, total_amount, created_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(&b.ID, &b.Reference, &b.UserID, &b.ShowtimeID, &b.TotalAmount, &b.CreatedAt)
}

// GetByID retrieves a booking with its seat IDs. It returns
// model.ErrBookingNotFound when no matching row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	var b model.Booking
	if err := scanBooking(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrBookingNotFound
		}
		return nil, err
	}
	seatIDs, err := r.seatIDsByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.SeatIDs = seatIDs
	return &b, nil
}

// ListByUser returns a user's bookings in insertion order, each with
// its seat IDs attached.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		seatIDs, err := r.seatIDsByBooking(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].SeatIDs = seatIDs
	}
	return result, nil
}

func (r *BookingRepo) seatIDsByBooking(ctx context.Context, bookingID uint64) ([]uint64, error) {
	const q = `SELECT seat_id FROM booking_seats WHERE booking_id = ? ORDER BY seat_id ASC`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0, model.SeatsPerShowtime)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Delete removes a booking and releases its seats back to AVAILABLE in
// the same transaction, so a cancelled seat can be re-reserved the
// moment the deletion commits and not a moment earlier. It returns
// model.ErrBookingNotFound when the booking does not exist.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrBookingNotFound
		}
		return err
	}

	rows, err := tx.QueryContext(ctx, `SELECT seat_id FROM booking_seats WHERE booking_id = ?`, id)
	if err != nil {
		return err
	}
	seatIDs := make([]uint64, 0, model.SeatsPerShowtime)
	for rows.Next() {
		var seatID uint64
		if err := rows.Scan(&seatID); err != nil {
			rows.Close()
			return err
		}
		seatIDs = append(seatIDs, seatID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if err := releaseSeatsTx(ctx, tx, seatIDs); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_seats WHERE booking_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Totals reports the booking count and revenue sum across all
// bookings. Both come from one statement so the pair is consistent
// even while bookings are being created concurrently.
func (r *BookingRepo) Totals(ctx context.Context) (*model.BookingTotals, error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM bookings`
	var t model.BookingTotals
	if err := r.db.QueryRowContext(ctx, q).Scan(&t.Count, &t.Revenue); err != nil {
		return nil, err
	}
	return &t, nil
}
