package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv                  string
	LogLevel                slog.Level
	ApiServicePort          string
	ApiGrpcPort             string
	PostgreSQLHost          string
	PostgreSQLPort          int64
	PostgreSQLUser          string
	PostgreSQLPassword      string
	PostgreSQLDatabase      string
	JWTSecret               string
	JWTIssuer               string
	AccessTokenExpiration   int64 // seconds
	RefreshTokenExpiration  int64 // seconds
	RedisHost               string
	RedisPort               int64
	RedisPassword           string
	RedisDB                 int64
	RateLimitPerMinute      int64
	RevocationSweepSchedule string
	HealthProbeSchedule     string
	OrderMaxQuantityPerLine int64
	AMQPURL                 string
	ShutdownTimeout         int64 // seconds
	BuildVersion            string
}

func LoadConfig() *Config {
	// A missing .env is the normal case in containers.
	_ = godotenv.Load()

	return &Config{
		AppEnv:                  getEnv("APP_ENV", "development"),                          // Default development
		LogLevel:                getLogLevel(),                                             // Default INFO
		ApiServicePort:          getEnv("API_SERVICE_PORT", "8080"),                        // Default 8080
		ApiGrpcPort:             getEnv("API_GRPC_PORT", "50052"),                          // Default 50052 (gRPC health)
		PostgreSQLHost:          getEnv("POSTGRESQL_HOST", "db"),                           // Default db
		PostgreSQLPort:          getEnvAsInt64("POSTGRESQL_PORT", 5432),                    // Default 5432
		PostgreSQLUser:          getEnv("POSTGRESQL_USER", "bookstore_user"),               // Default user
		PostgreSQLPassword:      getEnv("POSTGRESQL_PASSWORD", "bookstore_password"),       // Default password
		PostgreSQLDatabase:      getEnv("POSTGRESQL_DATABASE", "bookstore_db"),             // Default database name
		JWTSecret:               getEnv("JWT_SECRET", "bookstore_secret"),                  // Default secret key
		JWTIssuer:               getEnv("JWT_ISSUER", "bookstore"),                         // Default issuer
		AccessTokenExpiration:   getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 1800),            // Default 30 minutes
		RefreshTokenExpiration:  getEnvAsInt64("REFRESH_TOKEN_EXPIRATION", 604800),         // Default 7 days
		RedisHost:               getEnv("REDIS_HOST", "redis"),                             // Default redis
		RedisPort:               getEnvAsInt64("REDIS_PORT", 6379),                         // Default 6379
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),                              // Default empty
		RedisDB:                 getEnvAsInt64("REDIS_DATABASE", 0),                        // Default 0
		RateLimitPerMinute:      getEnvAsInt64("RATE_LIMIT_PER_MINUTE", 120),               // Default 120 requests per client
		RevocationSweepSchedule: getEnv("REVOCATION_SWEEP_SCHEDULE", "@every 1h"),          // Default hourly
		HealthProbeSchedule:     getEnv("HEALTH_PROBE_SCHEDULE", "@every 30s"),             // Default 30 seconds
		OrderMaxQuantityPerLine: getEnvAsPositiveInt64("ORDER_MAX_QUANTITY_PER_LINE", 100), // Default 100, never disabled
		AMQPURL:                 getEnv("AMQP_URL", ""),                                    // Empty disables events
		ShutdownTimeout:         getEnvAsInt64("SHUTDOWN_TIMEOUT", 15),                     // Default 15 seconds
		BuildVersion:            getEnv("BUILD_VERSION", "1.0.0"),                          // Default 1.0.0
	}
}

// IsProduction reports whether internal error details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.AppEnv) == "production"
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpiration) * time.Second
}

func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpiration) * time.Second
}

// PostgresDSN builds the key/value DSN understood by both pgx and lib/pq.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		c.PostgreSQLHost,
		c.PostgreSQLUser,
		c.PostgreSQLPassword,
		c.PostgreSQLDatabase,
		c.PostgreSQLPort,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsPositiveInt64 is getEnvAsInt64 for limits that must stay in force.
func getEnvAsPositiveInt64(key string, fallback int64) int64 {
	if value := getEnvAsInt64(key, fallback); value > 0 {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
