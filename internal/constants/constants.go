package constants

import "time"

const (
	QueryStaleTime    = 60 * time.Second
	QueryFetchTimeout = 10 * time.Second
)

const (
	MockLatencyMin = 300 * time.Millisecond
	MockLatencyMax = 600 * time.Millisecond
)

const (
	RequestTimeout   = 30 * time.Second
	BootstrapTimeout = 5 * time.Second
	DatabaseTimeout  = 5 * time.Second
	RedisTimeout     = 3 * time.Second
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	SummaryRecommendationLimit = 3
	MaxSymptomSeverity         = 10
	DefaultRedisPreferencesKey = "healthdash:preferences"
)

const (
	ClientReadTimeout  = 10 * time.Second
	ClientWriteTimeout = 10 * time.Second
)
