package testing

import (
	"database/sql"
	"testing"

	"github.com/teranos/PRX/db"
)

// CreateTestDB creates an in-memory SQLite test database with the full
// schema applied. Automatically registers cleanup via t.Cleanup().
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenWithMigrations(":memory:", nil)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// A second pooled connection would see a fresh, empty memory
	// database, so the pool is pinned to one connection.
	conn.SetMaxOpenConns(1)

	// Register cleanup
	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}
