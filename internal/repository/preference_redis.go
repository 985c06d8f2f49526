package repository

import (
	"context"
	"fmt"

	"healthdash/internal/constants"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// RedisPreferenceRepository keeps preferences as fields of one Redis hash.
type RedisPreferenceRepository struct {
	client *redis.Client
	key    string
	logger zerolog.Logger
}

func NewRedisPreferenceRepository(client *redis.Client, key string, logger zerolog.Logger) *RedisPreferenceRepository {
	return &RedisPreferenceRepository{client: client, key: key, logger: logger}
}

func (r *RedisPreferenceRepository) Load(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RedisTimeout)
	defer cancel()

	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences from redis: %w", err)
	}
	r.logger.Debug().Str("hash", r.key).Int("count", len(values)).Msg("preferences loaded")
	return values, nil
}

func (r *RedisPreferenceRepository) Save(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RedisTimeout)
	defer cancel()

	if err := r.client.HSet(ctx, r.key, key, value).Err(); err != nil {
		r.logger.Error().Err(err).Str("hash", r.key).Str("key", key).Msg("failed to save preference")
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}
