package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"healthdash/internal/constants"

	"github.com/rs/zerolog"
)

// PreferenceRepository stores preference key/value pairs in SQLite.
type PreferenceRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPreferenceRepository(sqlDB *sql.DB, logger zerolog.Logger) *PreferenceRepository {
	return &PreferenceRepository{db: sqlDB, logger: logger}
}

func (r *PreferenceRepository) Load(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preferences: %w", err)
	}

	r.logger.Debug().Int("count", len(values)).Msg("preferences loaded")
	return values, nil
}

func (r *PreferenceRepository) Save(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to save preference")
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}
