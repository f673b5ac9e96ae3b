package app

import (
	"time"

	"github.com/yungbote/waltz-backend/internal/platform/envutil"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type Config struct {
	Port                string
	JWTSecretKey        string
	CORSOrigins         string
	AutoMigrate         bool
	StrategyConcurrency int
	GridCacheTTL        time.Duration
	ServiceName         string
	Environment         string
	Version             string
	MetricsAddr         string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:                envutil.String("PORT", "8080", log),
		JWTSecretKey:        envutil.String("JWT_SECRET_KEY", "", log),
		CORSOrigins:         envutil.String("CORS_ALLOWED_ORIGINS", "", log),
		AutoMigrate:         envutil.Bool("DB_AUTO_MIGRATE", true),
		StrategyConcurrency: envutil.Int("GRID_STRATEGY_CONCURRENCY", 8),
		GridCacheTTL:        envutil.Seconds("GRID_CACHE_TTL_SECONDS", 300*time.Second),
		ServiceName:         envutil.String("OTEL_SERVICE_NAME", "waltz-report-grid", log),
		Environment:         envutil.String("APP_ENV", "development", log),
		Version:             envutil.String("APP_VERSION", "dev", log),
		MetricsAddr:         envutil.String("METRICS_ADDR", "", log),
	}
}
