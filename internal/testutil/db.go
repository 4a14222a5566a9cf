// Package testutil provides helpers for integration tests that need a
// real MySQL instance.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/movie-booking/migrations"
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// OpenTestDB connects to the MySQL instance described by the
// TEST_DB_* environment variables, applies migrations, and truncates
// the domain tables so each test starts clean. When no database is
// reachable the calling test is skipped, so the suite stays green on
// machines without MySQL.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	user := env("TEST_DB_USER", "root")
	pass := env("TEST_DB_PASS", "")
	host := env("TEST_DB_HOST", "127.0.0.1")
	port := env("TEST_DB_PORT", "3306")
	name := env("TEST_DB_NAME", "movie_booking_test")

	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&multiStatements=true",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open test database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		t.Skipf("skipping: test database not reachable: %v", err)
	}

	if err := migrations.Apply(context.Background(), db); err != nil {
		_ = db.Close()
		t.Fatalf("apply migrations: %v", err)
	}
	truncateAll(t, db)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// truncateAll clears the domain tables in FK-safe order.
func truncateAll(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []string{
		"SET FOREIGN_KEY_CHECKS = 0",
		"TRUNCATE TABLE booking_seats",
		"TRUNCATE TABLE bookings",
		"TRUNCATE TABLE seats",
		"TRUNCATE TABLE showtimes",
		"TRUNCATE TABLE movies",
		"TRUNCATE TABLE refresh_tokens",
		"TRUNCATE TABLE users",
		"SET FOREIGN_KEY_CHECKS = 1",
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("reset tables: %s: %v", s, err)
		}
	}
}
