package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-booking/internal/model"
)

// MovieRepo manages persistence for catalog movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieColumns = `id, name, genre, description, duration_min, release_date, image_url, rating, price, created_at, updated_at`

func scanMovie(row interface{ Scan(...any) error }, m *model.Movie) error {
	var desc sql.NullString
	err := row.Scan(&m.ID, &m.Name, &m.Genre, &desc, &m.DurationMin, &m.ReleaseDate,
		&m.ImageURL, &m.Rating, &m.Price, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return err
	}
	m.Description = desc.String
	return nil
}

// Create inserts a new movie and populates the generated ID and the
// DB-default timestamps on the given struct.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (name, genre, description, duration_min, release_date, image_url, rating, price)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Genre, m.Description, m.DurationMin,
		m.ReleaseDate, m.ImageURL, m.Rating, m.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	return scanMovie(r.db.QueryRowContext(ctx, sel, m.ID), m)
}

// GetByID retrieves a movie by its ID. It returns model.ErrMovieNotFound
// when no matching row exists.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	var m model.Movie
	if err := scanMovie(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns all movies in insertion order. When genre is non-empty
// the result is restricted to that genre.
func (r *MovieRepo) List(ctx context.Context, genre string) ([]model.Movie, error) {
	q := `SELECT ` + movieColumns + ` FROM movies ORDER BY id ASC`
	args := []any{}
	if genre != "" {
		q = `SELECT ` + movieColumns + ` FROM movies WHERE genre = ? ORDER BY id ASC`
		args = append(args, genre)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites a movie's attributes. It returns
// model.ErrMovieNotFound when the row does not exist. A zero
// RowsAffected with an existing row means the values were identical,
// which is treated as success.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
	           SET name = ?, genre = ?, description = ?, duration_min = ?, release_date = ?,
	               image_url = ?, rating = ?, price = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Genre, m.Description, m.DurationMin,
		m.ReleaseDate, m.ImageURL, m.Rating, m.Price, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, m.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrMovieNotFound
		}
		return err
	}
	return nil
}

// Delete removes a movie together with its showtimes and their seat
// inventories, in dependency order (seats, showtimes, movie) within a
// single transaction. The deletion is refused with
// model.ErrBookingsExist while any booking references a showtime of
// this movie, so booking rows can never be left dangling.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
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
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrMovieNotFound
		}
		return err
	}
	var bookings int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings b JOIN showtimes s ON s.id = b.showtime_id WHERE s.movie_id = ?`,
		id).Scan(&bookings); err != nil {
		return err
	}
	if bookings > 0 {
		return model.ErrBookingsExist
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM seats WHERE showtime_id IN (SELECT id FROM showtimes WHERE movie_id = ?)`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM showtimes WHERE movie_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
