package booking

import (
	"time"

	"bookit/internal/domain"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	SlotID         int64  `json:"slot_id" validate:"required,gt=0"`
	UserName       string `json:"user_name" validate:"required,max=255"`
	UserEmail      string `json:"user_email" validate:"required,email,max=255"`
	UserPhone      string `json:"user_phone" validate:"omitempty,max=20"`
	NumberOfPeople int    `json:"number_of_people" validate:"required,min=1"`
	PromoCode      string `json:"promo_code" validate:"omitempty,max=50"`
}

// BookingResult is what a committed booking reports back.
type BookingResult struct {
	BookingReference string
	TotalAmount      decimal.Decimal
	DiscountAmount   decimal.Decimal
	FinalAmount      decimal.Decimal
}

type BookingResponse struct {
	BookingReference string  `json:"booking_reference"`
	TotalAmount      float64 `json:"total_amount"`
	DiscountAmount   float64 `json:"discount_amount"`
	FinalAmount      float64 `json:"final_amount"`
}

func toBookingResponse(r *BookingResult) BookingResponse {
	return BookingResponse{
		BookingReference: r.BookingReference,
		TotalAmount:      r.TotalAmount.InexactFloat64(),
		DiscountAmount:   r.DiscountAmount.InexactFloat64(),
		FinalAmount:      r.FinalAmount.InexactFloat64(),
	}
}

type BookingDetails struct {
	BookingReference string    `json:"booking_reference"`
	SlotID           int64     `json:"slot_id"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
	UserPhone        string    `json:"user_phone,omitempty"`
	NumberOfPeople   int       `json:"number_of_people"`
	TotalAmount      float64   `json:"total_amount"`
	DiscountAmount   float64   `json:"discount_amount"`
	FinalAmount      float64   `json:"final_amount"`
	PromoCode        string    `json:"promo_code,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func toBookingDetails(b *domain.Booking) BookingDetails {
	d := BookingDetails{
		BookingReference: b.BookingReference,
		SlotID:           b.SlotID,
		UserName:         b.UserName,
		UserEmail:        b.UserEmail,
		NumberOfPeople:   b.NumberOfPeople,
		TotalAmount:      b.TotalAmount.InexactFloat64(),
		DiscountAmount:   b.DiscountAmount.InexactFloat64(),
		FinalAmount:      b.FinalAmount.InexactFloat64(),
		CreatedAt:        b.CreatedAt,
	}
	if b.UserPhone != nil {
		d.UserPhone = *b.UserPhone
	}
	if b.PromoCode != nil {
		d.PromoCode = *b.PromoCode
	}
	return d
}
