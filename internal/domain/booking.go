package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is written once by the booking transaction and never updated.
type Booking struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	SlotID           int64           `json:"slot_id" gorm:"not null;index"`
	UserName         string          `json:"user_name" gorm:"type:varchar(255);not null"`
	UserEmail        string          `json:"user_email" gorm:"type:varchar(255);not null"`
	UserPhone        *string         `json:"user_phone,omitempty" gorm:"type:varchar(20)"`
	NumberOfPeople   int             `json:"number_of_people" gorm:"not null"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	DiscountAmount   decimal.Decimal `json:"discount_amount" gorm:"type:decimal(10,2);not null;default:0"`
	FinalAmount      decimal.Decimal `json:"final_amount" gorm:"type:decimal(10,2);not null"`
	PromoCode        *string         `json:"promo_code,omitempty" gorm:"type:varchar(50)"`
	BookingReference string          `json:"booking_reference" gorm:"type:varchar(32);not null;uniqueIndex:idx_bookings_reference"`
	CreatedAt        time.Time       `json:"created_at"`

	Slot *Slot `json:"slot,omitempty" gorm:"foreignKey:SlotID;constraint:OnDelete:RESTRICT"`
}

func (Booking) TableName() string { return "bookings" }
