// Package repository implements MySQL persistence for the booking
// service. Repositories expose plain methods for single reads and
// ...Tx variants that participate in a caller-owned *sql.Tx when an
// operation spans tables. Domain-facing sentinel errors live in the
// model package; this file holds driver error translation.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the repositories care about.
const (
	mysqlErrDuplicateEntry = 1062
)

// isDuplicateKey reports whether err is a unique-key violation. The
// uniqueness constraints (uq_showtime, uq_users_email,
// uq_booking_seats_seat) are the storage-level enforcement of the
// engine's invariants, so insert paths translate this error into the
// corresponding conflict sentinel instead of pre-checking.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}
