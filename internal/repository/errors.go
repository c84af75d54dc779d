package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateReference = errors.New("duplicate booking reference")
)

// Postgres SQLSTATE codes the booking path cares about.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgTooManyConnections   = "53300"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// bookingReferenceIndex is the unique index on bookings.booking_reference.
const bookingReferenceIndex = "idx_bookings_reference"

// IsDuplicateReference reports whether err is a unique violation on the booking reference
// and not on any other constraint.
func IsDuplicateReference(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == bookingReferenceIndex
	}
	// sqlite: "UNIQUE constraint failed: bookings.booking_reference"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") && strings.Contains(msg, "bookings.booking_reference")
}

// IsConflict reports errors after which the whole transaction can simply be run again.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	switch pgCode(err) {
	case pgSerializationFailure, pgDeadlockDetected:
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "sqlite_busy")
}

// IsTransient reports store failures a client may retry later: lock waits that timed out
// and an exhausted connection budget.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	switch pgCode(err) {
	case pgLockNotAvailable, pgTooManyConnections:
		return true
	}
	return IsConflict(err)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
