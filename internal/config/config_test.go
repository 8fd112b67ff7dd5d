package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INSIGHTCLASS_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "InsightClass API", cfg.AppName)
	require.Equal(t, DriverSQLite, cfg.StorageDriver)
	require.Equal(t, "insightclass.db", cfg.SQLitePath)
	require.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	require.Equal(t, 30, cfg.FeedbackRateLimit)
	require.Equal(t, time.Minute, cfg.FeedbackRateWindow)
	require.Equal(t, "*", cfg.CORSAllowOrigins)
	require.Equal(t, ":8080", cfg.HTTPAddress())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("INSIGHTCLASS_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadPostgresDriverNeedsDatabaseURL(t *testing.T) {
	t.Setenv("INSIGHTCLASS_JWT_SECRET", "secret")
	t.Setenv("INSIGHTCLASS_STORAGE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("INSIGHTCLASS_DATABASE_URL", "postgres://localhost/insightclass")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverPostgres, cfg.StorageDriver)
}

func TestLoadRedisDriverNeedsRedisURL(t *testing.T) {
	t.Setenv("INSIGHTCLASS_JWT_SECRET", "secret")
	t.Setenv("INSIGHTCLASS_STORAGE_DRIVER", "redis")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("INSIGHTCLASS_REDIS_URL", "redis://localhost:6379")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverRedis, cfg.StorageDriver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("INSIGHTCLASS_JWT_SECRET", "secret")
	t.Setenv("INSIGHTCLASS_STORAGE_DRIVER", "dynamodb")

	_, err := Load()
	require.Error(t, err)
}

func TestHTTPAddressKeepsLeadingColon(t *testing.T) {
	require.Equal(t, ":9090", Config{AppPort: ":9090"}.HTTPAddress())
	require.Equal(t, ":9090", Config{AppPort: "9090"}.HTTPAddress())
}
