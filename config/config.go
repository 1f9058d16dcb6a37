package config

import (
	"fmt"
	"os"
	"strconv"

	"keyless-stay/logger"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting of the service.
type Config struct {
	AppHost     string
	AppPort     string
	FrontendURL string
	LogDir      string

	DBHost     string
	DBPort     string
	DBDatabase string
	DBUsername string
	DBPassword string
	DBSSLMode  string

	// JWTSecret enables HS256 verification. When empty the RSA key at PublicKeyURL is used.
	JWTSecret    string
	PublicKeyURL string

	NotifyBaseURL string
	NotifyAPIKey  string

	// EncryptionKey protects guest ID numbers at rest. Empty disables encryption.
	EncryptionKey string

	AccessCodeLength     int
	AccessCodeGraceHours int
	AccessCodeRatePerMin int
	AccessCodeRateBurst  int
}

const (
	DefaultAccessCodeLength     = 6
	DefaultAccessCodeGraceHours = 24
	DefaultAccessCodeRatePerMin = 20
	DefaultAccessCodeRateBurst  = 5
)

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file loaded, using process environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	cfg := &Config{
		AppHost:     os.Getenv("APP_HOST"),
		AppPort:     getString("APP_PORT", "8080"),
		FrontendURL: getString("FRONTEND_URL", "*"),
		LogDir:      getString("LOG_DIR", "log/app"),

		DBHost:     getString("DB_HOST", "localhost"),
		DBPort:     getString("DB_PORT", "5432"),
		DBDatabase: os.Getenv("DB_DATABASE"),
		DBUsername: os.Getenv("DB_USERNAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  getString("DB_SSLMODE", "disable"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		PublicKeyURL: os.Getenv("PUBLIC_KEY_URL"),

		NotifyBaseURL: os.Getenv("NOTIFY_BASE_URL"),
		NotifyAPIKey:  os.Getenv("NOTIFY_API_KEY"),

		EncryptionKey: os.Getenv("ENCRYPTION_KEY"),

		AccessCodeLength:     getInt("ACCESS_CODE_LENGTH", DefaultAccessCodeLength),
		AccessCodeGraceHours: getInt("ACCESS_CODE_GRACE_HOURS", DefaultAccessCodeGraceHours),
		AccessCodeRatePerMin: getInt("ACCESS_CODE_RATE_PER_MIN", DefaultAccessCodeRatePerMin),
		AccessCodeRateBurst:  getInt("ACCESS_CODE_RATE_BURST", DefaultAccessCodeRateBurst),
	}
	return cfg
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUsername, c.DBPassword, c.DBDatabase, c.DBSSLMode)
}

func (c *Config) ListenAddr() string {
	return c.AppHost + ":" + c.AppPort
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		logger.Warning(fmt.Sprintf("Invalid %s=%q, using default %d", key, raw, fallback))
		return fallback
	}
	return v
}
