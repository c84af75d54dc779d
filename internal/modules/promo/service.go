package promo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookit/internal/pkg/clock"
	"bookit/internal/repository"

	"github.com/shopspring/decimal"
)

type Service struct {
	promos PromoRepository
	clock  clock.Clock
}

func NewService(promos PromoRepository, c clock.Clock) *Service {
	return &Service{promos: promos, clock: c}
}

// ValidatePromoCode previews a promo against total without touching used_count.
func (s *Service) ValidatePromoCode(ctx context.Context, code string, total decimal.Decimal) (*Validation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, &ValidationError{Message: "code is required"}
	}
	if total.IsNegative() {
		return nil, &ValidationError{Message: "total_amount must not be negative"}
	}

	p, err := s.promos.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPromoInvalid
		}
		return nil, fmt.Errorf("load promo code: %w", err)
	}

	discount, err := Apply(*p, total, s.clock.Today())
	if err != nil {
		return nil, err
	}

	return &Validation{
		Code:           p.Code,
		DiscountType:   p.DiscountType,
		DiscountValue:  p.DiscountValue,
		DiscountAmount: discount,
		FinalAmount:    FinalAmount(total, discount),
	}, nil
}
