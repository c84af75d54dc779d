package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Experience is a bookable activity priced per person.
type Experience struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Location    string          `json:"location,omitempty" gorm:"type:varchar(255)"`
	ImageURL    string          `json:"image_url,omitempty" gorm:"type:varchar(500)"`
	Duration    string          `json:"duration,omitempty" gorm:"type:varchar(50)"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Slots []Slot `json:"slots,omitempty" gorm:"foreignKey:ExperienceID;constraint:OnDelete:CASCADE"`
}

func (Experience) TableName() string { return "experiences" }
