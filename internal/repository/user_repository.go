package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-booking/internal/model"
)

// UserRepo manages persistence for registered users.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, name, phone, email, address, password_hash, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }, u *model.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.Address, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
}

// Create inserts a user with an already-hashed password. Emails are
// normalized to lower case before storage so uniqueness is
// case-insensitive; a uq_users_email violation is translated into
// model.ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	const q = `INSERT INTO users (name, phone, email, address, password_hash) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, u.Name, u.Phone, u.Email, u.Address, u.PasswordHash)
	if err != nil {
		if isDuplicateKey(err) {
			return model.ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	const sel = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, sel, u.ID), u)
}

// GetByEmail fetches a user by normalized email. It returns
// model.ErrUserNotFound when no matching row exists.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, email), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by ID. It returns model.ErrUserNotFound when
// no matching row exists.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, id), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
