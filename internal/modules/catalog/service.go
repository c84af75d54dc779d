package catalog

import (
	"context"
	"errors"

	"bookit/internal/domain"
	"bookit/internal/pkg/clock"
	"bookit/internal/repository"

	"github.com/sirupsen/logrus"
)

type Service struct {
	experiences ExperienceRepository
	cache       ExperienceCache
	clock       clock.Clock
	log         logrus.FieldLogger
}

type Option func(*Service)

// WithCache serves the experience list from cache when it is warm.
func WithCache(cache ExperienceCache) Option {
	return func(s *Service) { s.cache = cache }
}

func NewService(experiences ExperienceRepository, c clock.Clock, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{experiences: experiences, clock: c, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/* ---------- EXPERIENCES ---------- */

// ListExperiences returns all experiences, newest first. Cache failures fall through to
// the database.
func (s *Service) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	if s.cache != nil {
		list, ok, err := s.cache.GetList(ctx)
		if err != nil {
			s.log.WithError(err).Warn("experience cache read failed")
		}
		if ok {
			return list, nil
		}
	}

	list, err := s.experiences.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, list); err != nil {
			s.log.WithError(err).Warn("experience cache write failed")
		}
	}
	return list, nil
}

// GetExperience returns the experience with its bookable slots: dated today or later and
// with at least one spot left.
func (s *Service) GetExperience(ctx context.Context, id int64) (*domain.Experience, error) {
	exp, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	slots, err := s.experiences.OpenSlots(ctx, id)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	exp.Slots = make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if domain.DateOf(slot.Date).Before(today) {
			continue
		}
		exp.Slots = append(exp.Slots, slot)
	}
	return exp, nil
}
