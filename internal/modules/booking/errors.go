package booking

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrSlotUnavailable = errors.New("slot not available or insufficient spots")
	ErrNotFound        = errors.New("booking not found")
)

// ValidationError describes rejected input. It matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InternalError wraps a store failure after the transaction has been rolled back.
type InternalError struct {
	Err       error
	retryable bool
}

func (e *InternalError) Error() string { return fmt.Sprintf("booking: internal error: %v", e.Err) }
func (e *InternalError) Unwrap() error { return e.Err }

// Retryable reports whether the same request may succeed if sent again.
func (e *InternalError) Retryable() bool { return e.retryable }
