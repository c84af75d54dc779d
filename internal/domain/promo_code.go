package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PromoCode is a discount rule. UsedCount never exceeds UsageLimit when a limit is set.
type PromoCode struct {
	Code          string           `json:"code" gorm:"primaryKey;type:varchar(50)"`
	DiscountType  DiscountType     `json:"discount_type" gorm:"type:varchar(16);not null;check:chk_promo_type,discount_type IN ('percentage','fixed')"`
	DiscountValue decimal.Decimal  `json:"discount_value" gorm:"type:decimal(10,2);not null"`
	MinAmount     decimal.Decimal  `json:"min_amount" gorm:"type:decimal(10,2);not null;default:0"`
	MaxDiscount   *decimal.Decimal `json:"max_discount,omitempty" gorm:"type:decimal(10,2)"`
	ValidFrom     time.Time        `json:"valid_from" gorm:"type:date;not null"`
	ValidUntil    time.Time        `json:"valid_until" gorm:"type:date;not null"`
	UsageLimit    *int             `json:"usage_limit,omitempty"`
	UsedCount     int              `json:"used_count" gorm:"not null;default:0"`
	IsActive      bool             `json:"is_active" gorm:"not null"`
	CreatedAt     time.Time        `json:"created_at"`
}

func (PromoCode) TableName() string { return "promo_codes" }
