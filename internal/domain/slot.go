package domain

import "time"

// Slot is a dated instance of an Experience with a capacity counter.
// AvailableSpots stays within [0, TotalSpots] and only changes inside a booking transaction.
type Slot struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	ExperienceID   int64     `json:"experience_id" gorm:"not null;index:idx_slots_experience_date,priority:1"`
	Date           time.Time `json:"date" gorm:"type:date;not null;index:idx_slots_experience_date,priority:2"`
	StartTime      string    `json:"start_time" gorm:"type:varchar(5);not null"`
	TotalSpots     int       `json:"total_spots" gorm:"not null;check:chk_slots_total,total_spots >= 0"`
	AvailableSpots int       `json:"available_spots" gorm:"not null;check:chk_slots_available,available_spots >= 0 AND available_spots <= total_spots"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Slot) TableName() string { return "slots" }

// DateOf truncates t to its calendar date, expressed as midnight UTC.
// Slot and promo dates are stored this way so they compare without zone drift.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
