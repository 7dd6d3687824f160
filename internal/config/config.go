package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBPath     string `json:"db_path"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_sslmode"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret   string   `json:"jwt_secret"`
	CORSOrigins []string `json:"cors_origins"`

	// Menu configuration
	PublicOrigin string        `json:"public_origin"`
	MenuCacheTTL time.Duration `json:"menu_cache_ttl"`

	// Export storage configuration, publishing is disabled when ExportBucket is empty
	ExportBucket        string `json:"export_bucket"`
	ExportRegion        string `json:"export_region"`
	ExportEndpoint      string `json:"export_endpoint"`
	ExportAccessKey     string `json:"export_access_key"`
	ExportSecretKey     string `json:"export_secret_key"`
	ExportPublicBaseURL string `json:"export_public_base_url"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DBPath: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], "+
		"LogLevel: %s, JWTSecret: [REDACTED], CORSOrigins: %v, PublicOrigin: %s, MenuCacheTTL: %s, "+
		"ExportBucket: %s, ExportRegion: %s, ExportEndpoint: %s, ExportAccessKey: %s, ExportSecretKey: [REDACTED], ExportPublicBaseURL: %s}",
		c.Port, c.Host, c.DBDriver, c.DBPath, c.DBHost, c.DBPort, c.DBName, c.DBUser,
		c.LogLevel, c.CORSOrigins, c.PublicOrigin, c.MenuCacheTTL,
		c.ExportBucket, c.ExportRegion, c.ExportEndpoint, maskKey(c.ExportAccessKey), c.ExportPublicBaseURL)
}

// maskKey keeps the first characters of an access key id so it can be recognised in logs
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "[REDACTED]"
	}
	return key[:4] + "[REDACTED]"
}

// PublishingEnabled reports whether exports can be uploaded to object storage
func (c *Config) PublishingEnabled() bool {
	return c.ExportBucket != ""
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// It also validates formats like PublicOrigin and MenuCacheTTL
// Returns an error if any environment variable is invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	publicOrigin := GetEnvWithDefault("PUBLIC_ORIGIN", "http://localhost:5173")
	if _, err := url.ParseRequestURI(publicOrigin); err != nil {
		return nil, fmt.Errorf("invalid PUBLIC_ORIGIN %q: %w", publicOrigin, err)
	}

	cacheTTL, err := time.ParseDuration(GetEnvWithDefault("MENU_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid MENU_CACHE_TTL: %w", err)
	}
	if cacheTTL < 0 {
		return nil, fmt.Errorf("invalid MENU_CACHE_TTL: must not be negative, got %s", cacheTTL)
	}

	config := &Config{
		Port:                port,
		Host:                GetEnvWithDefault("APP_HOST", "localhost"),
		DBDriver:            strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite")),
		DBPath:              GetEnvWithDefault("DB_PATH", "menu.sqlite"),
		DBHost:              GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:              GetEnvWithDefault("DB_PORT", "5432"),
		DBName:              GetEnvWithDefault("DB_NAME", "menu"),
		DBUser:              GetEnvWithDefault("DB_USER", "user"),
		DBPassword:          GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:           GetEnvWithDefault("DB_SSLMODE", "disable"),
		LogLevel:            GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:           GetEnvWithDefault("JWT_SECRET", "secret"),
		CORSOrigins:         splitList(GetEnvWithDefault("CORS_ORIGINS", publicOrigin)),
		PublicOrigin:        publicOrigin,
		MenuCacheTTL:        cacheTTL,
		ExportBucket:        GetEnvAsType("EXPORT_BUCKET", ""),
		ExportRegion:        GetEnvAsType("EXPORT_REGION", "auto"),
		ExportEndpoint:      GetEnvAsType("EXPORT_ENDPOINT", ""),
		ExportAccessKey:     GetEnvAsType("EXPORT_ACCESS_KEY", ""),
		ExportSecretKey:     GetEnvAsType("EXPORT_SECRET_KEY", ""),
		ExportPublicBaseURL: GetEnvAsType("EXPORT_PUBLIC_BASE_URL", ""),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// splitList splits a comma separated value, dropping blanks
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	case time.Duration:
		durationValue, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return any(durationValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
