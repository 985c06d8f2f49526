package fx

import (
	"context"
	"fmt"

	"healthdash/internal/config"
	"healthdash/internal/constants"
	"healthdash/internal/database"
	"healthdash/internal/latency"
	"healthdash/internal/logger"
	"healthdash/internal/mockapi"
	"healthdash/internal/preferences"
	"healthdash/internal/querycache"
	"healthdash/internal/repository"
	"healthdash/internal/server"
	"healthdash/internal/service"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvidePreferenceBackend picks the preference storage named by
// PREFERENCES_BACKEND and ties its connections to the app lifecycle.
func ProvidePreferenceBackend(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (preferences.Backend, error) {
	switch cfg.PreferencesBackend {
	case config.BackendMemory:
		logger.Warn().Msg("preferences are kept in memory and lost on restart")
		return preferences.NewMemoryBackend(), nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, constants.RedisTimeout)
				defer cancel()
				if err := client.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
				}
				logger.Info().Str("addr", cfg.RedisAddr).Msg("redis connected")
				return nil
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		return repository.NewRedisPreferenceRepository(client, cfg.RedisPreferencesKey, logger), nil

	default:
		sqlDB, err := database.New(cfg, logger)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				if err := sqlDB.Close(); err != nil {
					logger.Warn().Err(err).Msg("error closing database connection")
				}
				return nil
			},
		})
		return repository.NewPreferenceRepository(sqlDB, logger), nil
	}
}

func ProvideDelayer(cfg *config.Config) latency.Delayer {
	if cfg.LatencyMax == 0 {
		return latency.None{}
	}
	return latency.NewRandom(cfg.LatencyMin, cfg.LatencyMax)
}

func ProvideQueryCache(cfg *config.Config, logger zerolog.Logger) *querycache.Cache {
	metrics := querycache.NewMetrics(prometheus.DefaultRegisterer)
	return querycache.New(cfg.CacheStaleTime, logger, querycache.WithMetrics(metrics))
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	// storage
	fx.Provide(ProvidePreferenceBackend),
	fx.Provide(preferences.NewStore),
	// data service
	fx.Provide(ProvideDelayer),
	fx.Provide(mockapi.New),
	fx.Provide(ProvideQueryCache),
	// svc
	fx.Provide(service.NewDashboardService),
	// server
	fx.Provide(server.NewDashboardServer),
)
