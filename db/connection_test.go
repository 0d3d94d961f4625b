package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpen(t *testing.T) {
	t.Run("opens database successfully", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")

		conn, err := Open(dbPath, nil)
		require.NoError(t, err)
		require.NotNil(t, conn)
		defer conn.Close()

		// Verify WAL mode enabled
		var journalMode string
		err = conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		assert.Equal(t, "wal", journalMode)

		// Verify foreign keys enabled
		var foreignKeys int
		err = conn.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys)
		require.NoError(t, err)
		assert.Equal(t, 1, foreignKeys)

		// Verify busy timeout set
		var busyTimeout int
		err = conn.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout)
		require.NoError(t, err)
		assert.Equal(t, SQLiteBusyTimeoutMS, busyTimeout)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		conn, err := Open("/invalid/nonexistent/path/db.sqlite", nil)

		// Open can succeed lazily on some platforms; the first statement fails
		if err == nil && conn != nil {
			err = conn.Ping()
			conn.Close()
		}
		assert.Error(t, err)
	})

	t.Run("creates database file if it doesn't exist", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "new.db")

		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))

		conn, err := Open(dbPath, nil)
		require.NoError(t, err)
		defer conn.Close()

		_, err = os.Stat(dbPath)
		assert.NoError(t, err)
	})

	t.Run("operations on a closed connection fail", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")

		conn, err := Open(dbPath, nil)
		require.NoError(t, err)
		conn.Close()

		_, err = conn.Exec("PRAGMA journal_mode")
		require.Error(t, err)
		assert.True(t, IsDatabaseClosed(err), "error should register as closed-database: %v", err)
	})
}

func TestOpenWithLogger(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	log := zaptest.NewLogger(t).Sugar()
	conn, err := Open(dbPath, log)
	require.NoError(t, err)
	require.NotNil(t, conn)
	defer conn.Close()
}

func TestIsDatabaseClosed(t *testing.T) {
	assert.False(t, IsDatabaseClosed(nil))
	assert.True(t, IsDatabaseClosed(ErrDatabaseClosed))
	assert.False(t, IsDatabaseClosed(assert.AnError))
}
