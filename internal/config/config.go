package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSessionSecret = "session-secret-change-in-production"

type Config struct {
	// Server settings
	ServerAddr   string
	BaseURL      string
	IsProduction bool

	// Session settings
	SessionSecret string
	SessionMaxAge int // seconds

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string // Database connection string (DSN or path)

	// Facebook OAuth
	FacebookOAuthEnabled     bool
	FacebookClientID         string
	FacebookClientSecret     string
	FacebookOAuthRedirectURL string
	FacebookOAuthScopes      []string

	// OAuth Auto Registration
	OAuthAutoRegister bool // Allow OAuth to auto-create accounts (default: true)

	// Metrics
	MetricsEnabled bool
	MetricsToken   string // Optional bearer token protecting /metrics

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string // "memory" or "redis"
	SigninRateLimit          int    // requests per minute
	SignupRateLimit          int    // requests per minute
	RateLimitCleanupInterval time.Duration
	RedisAddr                string
	RedisPassword            string
	RedisDB                  int
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	// Determine database driver and DSN
	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", "gaongill.db")
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		IsProduction:   getEnvBool("PRODUCTION", false),
		SessionSecret:  getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionMaxAge:  getEnvInt("SESSION_MAX_AGE", 3600),
		DatabaseDriver: driver,
		DatabaseDSN:    dsn,

		// Facebook OAuth
		FacebookOAuthEnabled:     getEnvBool("FACEBOOK_OAUTH_ENABLED", false),
		FacebookClientID:         getEnv("FACEBOOK_CLIENT_ID", ""),
		FacebookClientSecret:     getEnv("FACEBOOK_CLIENT_SECRET", ""),
		FacebookOAuthRedirectURL: getEnv("FACEBOOK_REDIRECT_URL", ""),
		FacebookOAuthScopes:      getEnvSlice("FACEBOOK_SCOPES", []string{"email"}),

		OAuthAutoRegister: getEnvBool("OAUTH_AUTO_REGISTER", true),

		// Metrics
		MetricsEnabled: getEnvBool("METRICS_ENABLED", false),
		MetricsToken:   getEnv("METRICS_TOKEN", ""),

		// Rate limiting
		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", true),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", "memory"),
		SigninRateLimit:          getEnvInt("SIGNIN_RATE_LIMIT", 10),
		SignupRateLimit:          getEnvInt("SIGNUP_RATE_LIMIT", 10),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		RedisAddr:                getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:            getEnv("REDIS_PASSWORD", ""),
		RedisDB:                  getEnvInt("REDIS_DB", 0),
	}
}

// Validate checks that required settings are present and consistent
func (c *Config) Validate() error {
	if c.DatabaseDriver != "sqlite" && c.DatabaseDriver != "postgres" {
		return fmt.Errorf("invalid DATABASE_DRIVER: %s (must be: sqlite, postgres)", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if c.IsProduction && c.SessionSecret == defaultSessionSecret {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if c.FacebookOAuthEnabled {
		if c.FacebookClientID == "" || c.FacebookClientSecret == "" {
			return errors.New(
				"FACEBOOK_CLIENT_ID and FACEBOOK_CLIENT_SECRET are required when FACEBOOK_OAUTH_ENABLED=true",
			)
		}
	}
	if c.EnableRateLimit && c.RateLimitStore != "memory" && c.RateLimitStore != "redis" {
		return fmt.Errorf("invalid RATE_LIMIT_STORE: %s (must be: memory, redis)", c.RateLimitStore)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var parts []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
