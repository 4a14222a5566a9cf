package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-booking/internal/model"
)

// ShowtimeRepo manages persistence for showtimes and their seat
// inventories. A showtime and its seats are created and destroyed
// together; no code path leaves one without the other.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
	return &ShowtimeRepo{db: db}
}

// show_date and show_time are formatted in SQL so that scanning stays
// independent of the driver's parseTime handling of DATE/TIME columns.
const showtimeColumns = `id, movie_id, DATE_FORMAT(show_date, '%Y-%m-%d'), TIME_FORMAT(show_time, '%H:%i:%s'), created_at, updated_at`

func scanShowtime(row interface{ Scan(...any) error }, s *model.Showtime) error {
	return row.Scan(&s.ID, &s.MovieID, &s.ShowDate, &s.ShowTime, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a showtime and materializes its fixed seat inventory
// (seats 1..model.SeatsPerShowtime, all AVAILABLE) in one transaction.
// Uniqueness of the (movie_id, show_date, show_time) key is enforced
// by uq_showtime at insert time: a duplicate-key violation is
// translated into model.ErrShowtimeExists. There is deliberately no
// existence pre-check, so two concurrent creators of the same key race
// on the constraint and exactly one commits.
func (r *ShowtimeRepo) Create(ctx context.Context, movieID uint64, showDate, showTime string) (*model.Showtime, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const ins = `INSERT INTO showtimes (movie_id, show_date, show_time) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins, movieID, showDate, showTime)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, model.ErrShowtimeExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	showtimeID := uint64(id)

	if err := insertSeatInventoryTx(ctx, tx, showtimeID, model.SeatsPerShowtime); err != nil {
		return nil, err
	}

	var s model.Showtime
	const sel = `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = ?`
	if err := scanShowtime(tx.QueryRowContext(ctx, sel, showtimeID), &s); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &s, nil
}

// GetByID retrieves a showtime by its ID. It returns
// model.ErrShowtimeNotFound when there is no matching row.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	const q = `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = ?`
	var s model.Showtime
	if err := scanShowtime(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrShowtimeNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByMovie returns all showtimes of a movie in insertion order.
// It returns an empty slice and nil error when none exist.
func (r *ShowtimeRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Showtime, error) {
	const q = `SELECT ` + showtimeColumns + ` FROM showtimes WHERE movie_id = ? ORDER BY id ASC`
	return r.queryShowtimes(ctx, q, movieID)
}

// List returns every showtime in insertion order.
func (r *ShowtimeRepo) List(ctx context.Context) ([]model.Showtime, error) {
	const q = `SELECT ` + showtimeColumns + ` FROM showtimes ORDER BY id ASC`
	return r.queryShowtimes(ctx, q)
}

func (r *ShowtimeRepo) queryShowtimes(ctx context.Context, q string, args ...any) ([]model.Showtime, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Showtime, 0)
	for rows.Next() {
		var s model.Showtime
		if err := scanShowtime(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a showtime and its seat inventory as one atomic unit.
// It returns model.ErrShowtimeNotFound when the showtime does not
// exist and model.ErrBookingsExist while any booking still references
// it; in the conflict case nothing is deleted.
func (r *ShowtimeRepo) Delete(ctx context.Context, id uint64) error {
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
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM showtimes WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrShowtimeNotFound
		}
		return err
	}
	var bookings int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE showtime_id = ?`, id).Scan(&bookings); err != nil {
		return err
	}
	if bookings > 0 {
		return model.ErrBookingsExist
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM seats WHERE showtime_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM showtimes WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
