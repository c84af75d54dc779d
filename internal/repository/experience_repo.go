package repository

import (
	"context"

	"bookit/internal/domain"

	"gorm.io/gorm"
)

type ExperienceRepository struct {
	db *gorm.DB
}

func NewExperienceRepository(db *gorm.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

// List returns every experience, newest first, without slots.
func (r *ExperienceRepository) List(ctx context.Context) ([]domain.Experience, error) {
	var out []domain.Experience
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ExperienceRepository) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	var e domain.Experience
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

// OpenSlots returns slots of the experience that still have spots, ordered by date then start time.
// Past dates are filtered by the caller, which owns the notion of "today".
func (r *ExperienceRepository) OpenSlots(ctx context.Context, experienceID int64) ([]domain.Slot, error) {
	var out []domain.Slot
	err := r.db.WithContext(ctx).
		Where("experience_id = ? AND available_spots > 0", experienceID).
		Order("date ASC").
		Order("start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
