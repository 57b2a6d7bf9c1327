package testutil

import (
	"database/sql"
	"testing"

	"github.com/fireminder/fireminder/internal/db"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is configured with foreign keys enabled and WAL mode.
func NewTestDB(t *testing.T) *sql.DB {
	conn, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on&_journal_mode=WAL")
	require.NoError(t, err)

	// an in-memory database exists per connection, so the pool must stay at one
	conn.SetMaxOpenConns(1)

	entries, err := db.Migrations.ReadDir("migrations")
	require.NoError(t, err)

	for _, entry := range entries {
		sqlBytes, err := db.Migrations.ReadFile("migrations/" + entry.Name())
		require.NoError(t, err, "failed to read migration %s", entry.Name())

		_, err = conn.Exec(string(sqlBytes))
		require.NoError(t, err, "failed to apply migration %s", entry.Name())
	}

	return conn
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
