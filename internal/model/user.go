package model

import "time"

// User mirrors the users table. PasswordHash is a bcrypt hash and is
// never serialized into API responses.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Phone        string    // users.phone
	Email        string    // users.email
	Address      string    // users.address
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
