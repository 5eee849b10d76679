package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv                   string
	LogLevel                 slog.Level
	AuthServicePort          string
	MealServicePort          string
	PostgreSQLHost           string
	PostgreSQLPort           int64
	PostgreSQLUser           string
	PostgreSQLPassword       string
	PostgreSQLDatabase       string
	JWTSecret                string
	JWTAlgorithm             string
	AccessTokenExpireMinutes int64
	AuthServiceURL           string
	VerifyTimeoutSeconds     int64
	VerifyMaxRetries         int64
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:                   getEnv("APP_ENV", "development"),                    // Default development
		LogLevel:                 getLogLevel(),                                       // Default INFO
		AuthServicePort:          getEnv("AUTH_SERVICE_PORT", "8000"),                 // Default 8000
		MealServicePort:          getEnv("MEAL_SERVICE_PORT", "8001"),                 // Default 8001
		PostgreSQLHost:           getEnv("POSTGRESQL_HOST", ""),                       // Required
		PostgreSQLPort:           getEnvAsInt64("POSTGRESQL_PORT", 5432),              // Default 5432
		PostgreSQLUser:           getEnv("POSTGRESQL_USER", "mealtrack_user"),         // Default user
		PostgreSQLPassword:       getEnv("POSTGRESQL_PASSWORD", "mealtrack_password"), // Default password
		PostgreSQLDatabase:       getEnv("POSTGRESQL_DATABASE", ""),                   // Required
		JWTSecret:                getEnv("JWT_SECRET", ""),                            // Required (auth service)
		JWTAlgorithm:             getEnv("JWT_ALGORITHM", "HS256"),                    // Default HS256
		AccessTokenExpireMinutes: getEnvAsInt64("ACCESS_TOKEN_EXPIRE_MINUTES", 30),    // Default 30 minutes
		AuthServiceURL:           getAuthServiceURL(),                                 // Default auth-service:8000
		VerifyTimeoutSeconds:     getEnvAsInt64("VERIFY_TIMEOUT", 5),                  // Default 5 seconds
		VerifyMaxRetries:         getEnvAsInt64("VERIFY_MAX_RETRIES", 2),              // Default 2 retries
	}
}

// ValidateAuth checks the settings the auth service cannot start without.
func (c *Config) ValidateAuth() error {
	if c.PostgreSQLHost == "" || c.PostgreSQLDatabase == "" {
		return errors.New("POSTGRESQL_HOST and POSTGRESQL_DATABASE must be set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if !strings.HasPrefix(strings.ToUpper(c.JWTAlgorithm), "HS") {
		return errors.New("JWT_ALGORITHM must be an HMAC algorithm (HS256, HS384 or HS512)")
	}
	return nil
}

// ValidateMeal checks the settings the meal service cannot start without.
// The meal service never sees the signing secret; it only needs its own
// database and a reachable auth service.
func (c *Config) ValidateMeal() error {
	if c.PostgreSQLHost == "" || c.PostgreSQLDatabase == "" {
		return errors.New("POSTGRESQL_HOST and POSTGRESQL_DATABASE must be set")
	}
	if c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL must be set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
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

func getAuthServiceURL() string {
	if url, exists := os.LookupEnv("AUTH_SERVICE_URL"); exists {
		return strings.TrimRight(url, "/")
	}
	host := getEnv("AUTH_SERVICE_HOST", "auth-service")
	port := getEnv("AUTH_SERVICE_PORT", "8000")
	return "http://" + host + ":" + port + "/api/auth"
}
