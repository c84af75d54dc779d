package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateReference(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres reference index", &pgconn.PgError{Code: "23505", ConstraintName: "idx_bookings_reference"}, true},
		{"postgres wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_bookings_reference"}), true},
		{"postgres other unique index", &pgconn.PgError{Code: "23505", ConstraintName: "promo_codes_pkey"}, false},
		{"postgres other error", &pgconn.PgError{Code: "23503", ConstraintName: "idx_bookings_reference"}, false},
		{"sqlite reference", errors.New("constraint failed: UNIQUE constraint failed: bookings.booking_reference (2067)"), true},
		{"sqlite other column", errors.New("constraint failed: UNIQUE constraint failed: bookings.id (1555)"), false},
		{"unrelated duplicate wording", errors.New("duplicate key value violates unique constraint \"slots_pkey\""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateReference(tt.err))
		})
	}
}

func TestIsConflictAndTransient(t *testing.T) {
	assert.True(t, IsConflict(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsConflict(&pgconn.PgError{Code: "40P01"}))
	assert.True(t, IsConflict(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.False(t, IsConflict(&pgconn.PgError{Code: "55P03"}))

	assert.True(t, IsTransient(&pgconn.PgError{Code: "55P03"}))
	assert.True(t, IsTransient(&pgconn.PgError{Code: "53300"}))
	assert.True(t, IsTransient(&pgconn.PgError{Code: "40001"}))
	assert.False(t, IsTransient(errors.New("syntax error")))
}
