package promo

import (
	"time"

	"bookit/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeDiscount prices a promo against base. Percentage discounts are rounded to cents
// and capped by MaxDiscount when one is set. Fixed discounts are returned as-is, even when
// they exceed base, so FinalAmount can go negative.
func ComputeDiscount(p domain.PromoCode, base decimal.Decimal) decimal.Decimal {
	switch p.DiscountType {
	case domain.DiscountPercentage:
		d := domain.RoundMoney(base.Mul(p.DiscountValue).Div(hundred))
		if p.MaxDiscount != nil && d.GreaterThan(*p.MaxDiscount) {
			d = *p.MaxDiscount
		}
		return d
	case domain.DiscountFixed:
		return p.DiscountValue
	default:
		return decimal.Zero
	}
}

func FinalAmount(base, discount decimal.Decimal) decimal.Decimal {
	return base.Sub(discount)
}

// Eligible checks the active flag, the inclusive validity window and the usage limit.
func Eligible(p domain.PromoCode, today time.Time) bool {
	if !p.IsActive {
		return false
	}
	day := domain.DateOf(today)
	if day.Before(domain.DateOf(p.ValidFrom)) || day.After(domain.DateOf(p.ValidUntil)) {
		return false
	}
	if p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit {
		return false
	}
	return true
}

func MeetsMinimum(p domain.PromoCode, base decimal.Decimal) bool {
	return base.GreaterThanOrEqual(p.MinAmount)
}

// Apply runs every rule in order and returns the discount for base.
// Both the preview and the booking transaction go through here.
func Apply(p domain.PromoCode, base decimal.Decimal, today time.Time) (decimal.Decimal, error) {
	if !Eligible(p, today) {
		return decimal.Zero, ErrPromoInvalid
	}
	if !MeetsMinimum(p, base) {
		return decimal.Zero, &MinAmountError{Min: p.MinAmount}
	}
	return ComputeDiscount(p, base), nil
}
