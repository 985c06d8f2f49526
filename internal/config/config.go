package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"healthdash/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ServerPort  string
	LogLevel    string
	CORSOrigins []string

	DBPath string

	PreferencesBackend  string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisPreferencesKey string

	CacheStaleTime time.Duration
	LatencyMin     time.Duration
	LatencyMax     time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CORSOrigins:         splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DBPath:              getEnv("DB_PATH", "healthdash.db"),
		PreferencesBackend:  strings.ToLower(getEnv("PREFERENCES_BACKEND", BackendSQLite)),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisPreferencesKey: getEnv("REDIS_PREFERENCES_KEY", constants.DefaultRedisPreferencesKey),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.CacheStaleTime, err = getDuration("CACHE_STALE_TIME", constants.QueryStaleTime); err != nil {
		return nil, err
	}
	if cfg.LatencyMin, err = getDuration("MOCK_LATENCY_MIN", constants.MockLatencyMin); err != nil {
		return nil, err
	}
	if cfg.LatencyMax, err = getDuration("MOCK_LATENCY_MAX", constants.MockLatencyMax); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("preferences_backend", cfg.PreferencesBackend).
		Dur("cache_stale_time", cfg.CacheStaleTime).
		Dur("latency_min", cfg.LatencyMin).
		Dur("latency_max", cfg.LatencyMax).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.PreferencesBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown PREFERENCES_BACKEND %q", c.PreferencesBackend)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.CacheStaleTime < 0 {
		return fmt.Errorf("CACHE_STALE_TIME must not be negative")
	}
	if c.LatencyMin < 0 || c.LatencyMax < c.LatencyMin {
		return fmt.Errorf("mock latency range [%s, %s] is invalid", c.LatencyMin, c.LatencyMax)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var Module = fx.Provide(Load)
