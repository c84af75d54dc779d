package promo

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrPromoInvalid = errors.New("invalid or expired promo code")
	ErrBelowMinimum = errors.New("amount below promo minimum")
)

// ValidationError names the offending input. It matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// MinAmountError carries the minimum the amount failed to reach. It matches ErrBelowMinimum.
type MinAmountError struct {
	Min decimal.Decimal
}

func (e *MinAmountError) Error() string {
	return fmt.Sprintf("minimum amount of $%s required for this promo code", e.Min.StringFixed(2))
}

func (e *MinAmountError) Is(target error) bool { return target == ErrBelowMinimum }

// Reason turns a rejected promo into the sentence shown to customers.
func Reason(err error) string {
	var minErr *MinAmountError
	if errors.As(err, &minErr) {
		return fmt.Sprintf("Minimum amount of $%s required for this promo code", minErr.Min.StringFixed(2))
	}
	return "Invalid or expired promo code"
}
