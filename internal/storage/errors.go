package storage

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrDuplicateKey is returned when an insert violates a unique constraint
	// (username or email already taken).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// IsUniqueViolation reports whether a driver error is a unique-constraint
// violation. Postgres reports class 23505; the sqlite driver used in tests
// only exposes the message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
