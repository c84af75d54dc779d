package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bookit/internal/domain"

	"github.com/redis/go-redis/v9"
)

const experienceListKey = "experiences:list"

// ExperienceCache keeps the experience list in redis as JSON.
type ExperienceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewExperienceCache(client *redis.Client, ttl time.Duration) *ExperienceCache {
	return &ExperienceCache{client: client, ttl: ttl}
}

// GetList reports ok=false on a cache miss.
func (c *ExperienceCache) GetList(ctx context.Context) ([]domain.Experience, bool, error) {
	data, err := c.client.Get(ctx, experienceListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var out []domain.Experience
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (c *ExperienceCache) SetList(ctx context.Context, list []domain.Experience) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, experienceListKey, data, c.ttl).Err()
}

func (c *ExperienceCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, experienceListKey).Err()
}
