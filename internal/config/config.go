package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage driver names accepted by the STORAGE_DRIVER setting.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	StorageDriver string
	SQLitePath    string
	DatabaseURL   string
	RedisURL      string
	NATSURL       string

	JWTSecret string
	JWTExpiry time.Duration

	SentimentProvider string
	SentimentURL      string
	OpenAIAPIKey      string

	FeedbackRateLimit  int
	FeedbackRateWindow time.Duration

	CORSAllowOrigins string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("INSIGHTCLASS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "InsightClass API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("sqlite.path", "insightclass.db")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("sentiment.provider", "")
	v.SetDefault("feedback.rate_limit", 30)
	v.SetDefault("feedback.rate_window", "1m")
	v.SetDefault("cors.allow_origins", "*")

	expiry, err := time.ParseDuration(v.GetString("jwt.expiry"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt expiry: %w", err)
	}

	window, err := time.ParseDuration(v.GetString("feedback.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid feedback rate window: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		StorageDriver:      strings.ToLower(v.GetString("storage.driver")),
		SQLitePath:         v.GetString("sqlite.path"),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		NATSURL:            v.GetString("nats.url"),
		JWTSecret:          v.GetString("jwt.secret"),
		JWTExpiry:          expiry,
		SentimentProvider:  strings.ToLower(v.GetString("sentiment.provider")),
		SentimentURL:       strings.TrimRight(v.GetString("sentiment.url"), "/"),
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		FeedbackRateLimit:  v.GetInt("feedback.rate_limit"),
		FeedbackRateWindow: window,
		CORSAllowOrigins:   v.GetString("cors.allow_origins"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.StorageDriver {
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return Config{}, fmt.Errorf("sqlite path must be provided")
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database url must be provided for the postgres driver")
		}
	case DriverRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("redis url must be provided for the redis driver")
		}
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.FeedbackRateLimit <= 0 {
		cfg.FeedbackRateLimit = 30
	}

	return cfg, nil
}
