package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/movie-booking/internal/model"
)

// SeatRepo reads the per-showtime seat inventory. Seat mutation never
// happens through standalone methods: inventory rows are created inside
// the showtime transaction and flipped inside the booking transaction,
// via the package-level ...Tx helpers below.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatColumns = `id, showtime_id, seat_number, status, created_at, updated_at`

func scanSeat(row interface{ Scan(...any) error }, s *model.Seat) error {
	return row.Scan(&s.ID, &s.ShowtimeID, &s.SeatNumber, &s.Status, &s.CreatedAt, &s.UpdatedAt)
}

// ListByShowtime returns the full inventory of a showtime ordered by
// seat number. The caller is expected to have resolved the showtime
// first; an unknown ID yields an empty slice, not an error.
func (r *SeatRepo) ListByShowtime(ctx context.Context, showtimeID uint64) ([]model.Seat, error) {
	const q = `SELECT ` + seatColumns + ` FROM seats WHERE showtime_id = ? ORDER BY seat_number ASC`
	rows, err := r.db.QueryContext(ctx, q, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Seat, 0, model.SeatsPerShowtime)
	for rows.Next() {
		var s model.Seat
		if err := scanSeat(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// insertSeatInventoryTx bulk-inserts seats numbered 1..count for a new
// showtime, all AVAILABLE, inside the caller's transaction.
func insertSeatInventoryTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, count int) error {
	if count <= 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO seats (showtime_id, seat_number, status) VALUES `)
	args := make([]any, 0, count*3)
	for n := 1; n <= count; n++ {
		if n > 1 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?)")
		args = append(args, showtimeID, n, model.SeatAvailable)
	}
	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}

// reserveSeatTx attempts the compare-and-set transition of a single
// seat from AVAILABLE to BOOKED inside the caller's transaction. The
// status predicate in the WHERE clause is the whole concurrency story:
// of two transactions racing for the same seat, the second one matches
// zero rows (or blocks on the row lock until the first commits, then
// matches zero rows) and gets ok=false. The showtime_id predicate also
// rejects seats that belong to a different showtime.
func reserveSeatTx(ctx context.Context, tx *sql.Tx, showtimeID, seatID uint64) (bool, error) {
	const q = `UPDATE seats SET status = ? WHERE id = ? AND showtime_id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, q, model.SeatBooked, seatID, showtimeID, model.SeatAvailable)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// releaseSeatsTx flips the given seats back to AVAILABLE inside the
// caller's transaction. It is used when a booking is deleted; the
// caller guarantees the IDs came from that booking's seat list.
func releaseSeatsTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	placeholders := make([]string, len(seatIDs))
	args := make([]any, 0, len(seatIDs)+1)
	args = append(args, model.SeatAvailable)
	for i, id := range seatIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	q := `UPDATE seats SET status = ? WHERE id IN (` + strings.Join(placeholders, ", ") + `)`
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}
