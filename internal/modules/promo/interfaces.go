package promo

import (
	"context"

	"bookit/internal/domain"
)

type PromoRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
}
