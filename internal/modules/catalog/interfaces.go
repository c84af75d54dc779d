package catalog

import (
	"context"

	"bookit/internal/domain"
)

type ExperienceRepository interface {
	List(ctx context.Context) ([]domain.Experience, error)
	GetByID(ctx context.Context, id int64) (*domain.Experience, error)
	OpenSlots(ctx context.Context, experienceID int64) ([]domain.Slot, error)
}

// ExperienceCache holds the experience list between reads. A miss reports ok=false.
type ExperienceCache interface {
	GetList(ctx context.Context) (list []domain.Experience, ok bool, err error)
	SetList(ctx context.Context, list []domain.Experience) error
}
