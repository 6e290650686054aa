package repo

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors surfaced to handlers. Wrap with %w so errors.Is keeps working.
var (
	// ErrDuplicateUser is returned when a username is already taken (exact,
	// case-sensitive match enforced by the unique index).
	ErrDuplicateUser = errors.New("user already exists")

	// ErrUserNotFound is returned when a user id or username does not resolve.
	ErrUserNotFound = errors.New("user not found")
)

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isInvalidUUID reports whether err is a Postgres invalid_text_representation
// (22P02), which is what a malformed uuid in a WHERE clause produces. Callers
// treat a malformed id the same as an unknown one.
func isInvalidUUID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}
