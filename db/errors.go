package db

import (
	"strings"

	"github.com/teranos/PRX/errors"
)

// ErrDatabaseClosed is returned when operations are attempted on a closed
// database, typically during shutdown when the connection closes before
// in-flight work finishes.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err indicates a closed connection.
// It covers both wrapped ErrDatabaseClosed and raw driver errors, whose
// messages we cannot wrap at the source.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
