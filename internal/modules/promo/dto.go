package promo

import (
	"bookit/internal/domain"

	"github.com/shopspring/decimal"
)

type ValidateRequest struct {
	Code        string           `json:"code" validate:"required,max=50"`
	TotalAmount *decimal.Decimal `json:"total_amount" validate:"required"`
}

// Validation is the outcome of a successful preview.
type Validation struct {
	Code           string
	DiscountType   domain.DiscountType
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

type ValidationResponse struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`
	PromoCode      string  `json:"promo_code"`
	DiscountType   string  `json:"discount_type"`
	DiscountValue  float64 `json:"discount_value"`
}

func toValidationResponse(v *Validation) ValidationResponse {
	return ValidationResponse{
		Valid:          true,
		DiscountAmount: v.DiscountAmount.InexactFloat64(),
		FinalAmount:    v.FinalAmount.InexactFloat64(),
		PromoCode:      v.Code,
		DiscountType:   string(v.DiscountType),
		DiscountValue:  v.DiscountValue.InexactFloat64(),
	}
}
