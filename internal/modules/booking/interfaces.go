package booking

import (
	"context"

	"bookit/internal/domain"
	"bookit/internal/repository"
)

// BookingStore runs the booking transaction and serves read-only lookups.
type BookingStore interface {
	InTx(ctx context.Context, fn func(tx repository.BookingTx) error) error
	GetByReference(ctx context.Context, ref string) (*domain.Booking, error)
}
