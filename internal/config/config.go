package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/food-order-service/internal/domain"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Orders       OrdersConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// MongoConfig holds document store connection values. An empty URI selects the
// in-memory store.
type MongoConfig struct {
	URI               string
	Database          string
	ConnectTimeoutSec int
	RunMigrations     bool
}

// RedisConfig holds Redis connection values. An empty Addr disables the order feed.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret           string
	AccessTokenTTLHours int
	BcryptCost          int
	AdminEmail          string
	AdminPassword       string
}

// OrdersConfig selects how placed items are persisted and priced.
type OrdersConfig struct {
	Strategy    domain.OrderStrategy
	PriceSource domain.PriceSource
}

// NotificationConfig names the pub/sub channel for the order feed.
type NotificationConfig struct {
	Channel string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "food-order-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", getEnv("PORT", "8000")),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 0),
		},
		Mongo: MongoConfig{
			URI:               os.Getenv("MONGO_URI"),
			Database:          getEnv("MONGO_DATABASE", "BusFoodOrder2"),
			ConnectTimeoutSec: getEnvAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10),
			RunMigrations:     getEnvAsBool("MONGO_RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:           getEnv("AUTH_JWT_SECRET", getEnv("ACCESS_TOKEN_SECRET", "dev-secret")),
			AccessTokenTTLHours: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_HOURS", 7*24),
			BcryptCost:          getEnvAsInt("AUTH_BCRYPT_COST", 10),
			AdminEmail:          getEnv("AUTH_ADMIN_EMAIL", "admin1@gmail.com"),
			AdminPassword:       getEnv("AUTH_ADMIN_PASSWORD", "123456789"),
		},
		Orders: OrdersConfig{
			Strategy:    domain.OrderStrategy(strings.ToLower(getEnv("ORDERS_STRATEGY", string(domain.OrderStrategyEmbedded)))),
			PriceSource: domain.PriceSource(strings.ToLower(getEnv("ORDERS_PRICE_SOURCE", string(domain.PriceSourceClient)))),
		},
		Notification: NotificationConfig{
			Channel: getEnv("NOTIFY_CHANNEL", "orders.feed"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c *Config) Validate() error {
	switch c.Orders.Strategy {
	case domain.OrderStrategyEmbedded, domain.OrderStrategyReferenced:
	default:
		return fmt.Errorf("invalid ORDERS_STRATEGY %q", c.Orders.Strategy)
	}
	switch c.Orders.PriceSource {
	case domain.PriceSourceClient, domain.PriceSourceCatalog:
	default:
		return fmt.Errorf("invalid ORDERS_PRICE_SOURCE %q", c.Orders.PriceSource)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("AUTH_JWT_SECRET must not be empty")
	}
	if c.Auth.AccessTokenTTLHours <= 0 {
		return fmt.Errorf("invalid AUTH_ACCESS_TOKEN_TTL_HOURS %d", c.Auth.AccessTokenTTLHours)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ConnectTimeout bounds the initial connect and ping.
func (m MongoConfig) ConnectTimeout() time.Duration {
	if m.ConnectTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(m.ConnectTimeoutSec) * time.Second
}

// TokenTTL returns the lifetime of issued access tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
