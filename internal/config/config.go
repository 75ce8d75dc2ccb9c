package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Upstream UpstreamConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Store    StoreConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Payment  PaymentConfig
	Auth     AuthConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	GinMode string
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level  string
	Format string
}

// UpstreamConfig holds settings for the boarding-house REST API
type UpstreamConfig struct {
	BaseURL       string
	Timeout       time.Duration
	LoginAttempts int
	LoginTimeout  time.Duration
	LoginBackoff  time.Duration
}

// DatabaseConfig holds database configuration, used by the postgres store driver
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds redis configuration, used by the redis store driver
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StoreConfig selects the session/preferences store
type StoreConfig struct {
	Driver      string
	SessionTTL  time.Duration
	CleanupCron string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins string
}

// PaymentConfig holds payment status settings
type PaymentConfig struct {
	// ZeroMeansPaid makes "0"/0 count as a paid status flag. Leave off until the
	// upstream endpoint is confirmed to use inverted semantics.
	ZeroMeansPaid bool
}

// AuthConfig holds login settings
type AuthConfig struct {
	CaptchaRequired bool
	ChallengeTTL    time.Duration
}

// DefaultJWTSecret is the development secret; release mode refuses it
const DefaultJWTSecret = "your-secret-key"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Upstream: UpstreamConfig{
			BaseURL:       getEnv("UPSTREAM_BASE_URL", "https://all-oqry.onrender.com"),
			Timeout:       getEnvAsDuration("UPSTREAM_TIMEOUT", 30*time.Second),
			LoginAttempts: getEnvAsInt("UPSTREAM_LOGIN_ATTEMPTS", 3),
			LoginTimeout:  getEnvAsDuration("UPSTREAM_LOGIN_TIMEOUT", 8*time.Second),
			LoginBackoff:  getEnvAsDuration("UPSTREAM_LOGIN_BACKOFF", time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "portal"),
			Password: getEnv("DB_PASSWORD", "secret"),
			DBName:   getEnv("DB_NAME", "tenant_portal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", "memory")),
			SessionTTL:  getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CleanupCron: getEnv("STORE_CLEANUP_CRON", "0 */10 * * * *"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", DefaultJWTSecret),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		},
		Payment: PaymentConfig{
			ZeroMeansPaid: getEnvAsBool("PAYMENT_ZERO_MEANS_PAID", false),
		},
		Auth: AuthConfig{
			CaptchaRequired: getEnvAsBool("AUTH_CAPTCHA_REQUIRED", true),
			ChallengeTTL:    getEnvAsDuration("AUTH_CHALLENGE_TTL", 5*time.Minute),
		},
	}

	switch config.Store.Driver {
	case "memory", "redis", "postgres":
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", config.Store.Driver)
	}

	if config.Server.GinMode == "release" {
		if secret := strings.TrimSpace(config.JWT.Secret); secret == "" || secret == DefaultJWTSecret {
			return nil, fmt.Errorf("JWT_SECRET must be set in release mode")
		}
	}

	return config, nil
}

// GetDSN returns PostgreSQL connection string
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// AllowedOriginList splits the comma separated origin list
func (c *CORSConfig) AllowedOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
