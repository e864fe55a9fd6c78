package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	DBMaxConnections int
	DBMaxIdleTime    time.Duration

	RedisURL string

	JWTSecret string

	ServerPort         string
	ServerHost         string
	Environment        string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	LogLevel               string
	LogFormat              string
	LogCorrelationIDHeader string
	LogEnableRequestLog    bool

	InsightMaxConcurrency    int
	InsightDefaultWindowDays int
	EntityLockTTL            time.Duration

	MetricsEnabled bool

	CORSEnabled        bool
	CORSAllowedOrigins []string
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrInvalidWindowDays  = errors.New("INSIGHT_DEFAULT_WINDOW_DAYS must be 7, 30 or 90")
	ErrInvalidConcurrency = errors.New("INSIGHT_MAX_CONCURRENCY must be between 1 and DB_MAX_CONNECTIONS")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DBMaxConnections: getEnvOrDefaultInt("DB_MAX_CONNECTIONS", 20),
		DBMaxIdleTime:    getEnvOrDefaultDuration("DB_MAX_IDLE_TIME", 5*time.Minute),

		// empty disables the Redis backed lock and rate limiter
		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		ServerPort:         getEnvOrDefault("SERVER_PORT", "8080"),
		ServerHost:         getEnvOrDefault("SERVER_HOST", "localhost"),
		Environment:        getEnvOrDefault("ENV", "development"),
		ServerReadTimeout:  getEnvOrDefaultDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getEnvOrDefaultDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),

		RateLimitEnabled:  getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: getEnvOrDefaultInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getEnvOrDefaultDuration("RATE_LIMIT_WINDOW", time.Minute),

		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		LogCorrelationIDHeader: getEnvOrDefault("LOG_CORRELATION_ID_HEADER", "X-Correlation-ID"),
		LogEnableRequestLog:    getEnvOrDefaultBool("LOG_ENABLE_REQUEST_LOG", true),

		InsightDefaultWindowDays: getEnvOrDefaultInt("INSIGHT_DEFAULT_WINDOW_DAYS", 30),
		EntityLockTTL:            getEnvOrDefaultDuration("ENTITY_LOCK_TTL", 10*time.Second),

		MetricsEnabled: getEnvOrDefaultBool("METRICS_ENABLED", true),

		CORSEnabled:        getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowedOrigins: parseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),
	}
	// the evaluation pool shares the connection budget with request handlers
	cfg.InsightMaxConcurrency = getEnvOrDefaultInt("INSIGHT_MAX_CONCURRENCY", max(1, cfg.DBMaxConnections/2))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	switch c.InsightDefaultWindowDays {
	case 7, 30, 90:
	default:
		return ErrInvalidWindowDays
	}
	if c.InsightMaxConcurrency < 1 || c.InsightMaxConcurrency > c.DBMaxConnections {
		return ErrInvalidConcurrency
	}
	return nil
}

// Address is the host:port the HTTP server binds to.
func (c *Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		// interpret as seconds if numeric, else parse like Go duration
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Second
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return d
	}
	return defaultValue
}

func parseAllowedOrigins(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}
