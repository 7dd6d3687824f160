package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	testCases := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "should return env value when set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "from_env",
			expected:     "from_env",
		},
		{
			name:         "should return default when env not set",
			key:          "MISSING_KEY",
			defaultValue: "default_value",
			envValue:     "",
			expected:     "default_value",
		},
		{
			name:         "should return empty string default",
			key:          "EMPTY_KEY",
			defaultValue: "",
			envValue:     "",
			expected:     "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			// Setup: set environment variable if provided
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key) // cleanup after test
			} else {
				os.Unsetenv(tt.key) // ensure it's not set
			}

			// Execute
			result := GetEnvWithDefault(tt.key, tt.defaultValue)

			// Assert
			if result != tt.expected {
				t.Errorf("GetEnvWithDefault() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestGetEnvAsType(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		t.Setenv("TEST_INT", "42")
		if got := GetEnvAsType("TEST_INT", 7); got != 42 {
			t.Errorf("GetEnvAsType() = %d, expected 42", got)
		}
	})

	t.Run("invalid int falls back to default", func(t *testing.T) {
		t.Setenv("TEST_INT", "forty-two")
		if got := GetEnvAsType("TEST_INT", 7); got != 7 {
			t.Errorf("GetEnvAsType() = %d, expected 7", got)
		}
	})

	t.Run("bool", func(t *testing.T) {
		t.Setenv("TEST_BOOL", "true")
		if got := GetEnvAsType("TEST_BOOL", false); !got {
			t.Error("GetEnvAsType() = false, expected true")
		}
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "90s")
		if got := GetEnvAsType("TEST_DURATION", time.Minute); got != 90*time.Second {
			t.Errorf("GetEnvAsType() = %s, expected 1m30s", got)
		}
	})
}

// configEnv lists every variable LoadConfig reads
var configEnv = []string{
	"APP_PORT", "APP_HOST", "LOG_LEVEL", "JWT_SECRET",
	"DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSLMODE",
	"PUBLIC_ORIGIN", "MENU_CACHE_TTL", "CORS_ORIGINS",
	"EXPORT_BUCKET", "EXPORT_REGION", "EXPORT_ENDPOINT", "EXPORT_ACCESS_KEY", "EXPORT_SECRET_KEY", "EXPORT_PUBLIC_BASE_URL",
}

func TestLoadConfig(t *testing.T) {
	// Helper function to set multiple env vars
	setTestEnv := func() {
		os.Setenv("APP_PORT", "9000")
		os.Setenv("APP_HOST", "0.0.0.0")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("JWT_SECRET", "super_secret_jwt_key")
		os.Setenv("DB_DRIVER", "Postgres")
		os.Setenv("PUBLIC_ORIGIN", "https://menus.example.com")
		os.Setenv("MENU_CACHE_TTL", "30s")
		os.Setenv("CORS_ORIGINS", "https://menus.example.com, https://admin.example.com,")
		os.Setenv("EXPORT_BUCKET", "menu-exports")
		os.Setenv("EXPORT_ACCESS_KEY", "AKIAEXAMPLE")
		os.Setenv("EXPORT_SECRET_KEY", "very-secret")
	}

	// Helper function to cleanup env vars
	cleanupTestEnv := func() {
		for _, v := range configEnv {
			os.Unsetenv(v)
		}
	}

	t.Run("successful config load with all env vars", func(t *testing.T) {
		setTestEnv()
		defer cleanupTestEnv()

		config, err := LoadConfig()

		// Should not return error
		if err != nil {
			t.Fatalf("LoadConfig() returned error: %v", err)
		}

		// Verify all values
		if config.Port != 9000 {
			t.Errorf("Port = %d, expected 9000", config.Port)
		}
		if config.Host != "0.0.0.0" {
			t.Errorf("Host = %s, expected 0.0.0.0", config.Host)
		}
		if config.LogLevel != "debug" {
			t.Errorf("LogLevel = %s, expected debug", config.LogLevel)
		}
		if config.DBDriver != "postgres" {
			t.Errorf("DBDriver = %s, expected postgres", config.DBDriver)
		}
		if config.MenuCacheTTL != 30*time.Second {
			t.Errorf("MenuCacheTTL = %s, expected 30s", config.MenuCacheTTL)
		}
		if len(config.CORSOrigins) != 2 || config.CORSOrigins[1] != "https://admin.example.com" {
			t.Errorf("CORSOrigins = %v, expected two trimmed origins", config.CORSOrigins)
		}
		if !config.PublishingEnabled() {
			t.Error("PublishingEnabled() = false, expected true when EXPORT_BUCKET is set")
		}
	})

	t.Run("should mask secrets", func(t *testing.T) {
		setTestEnv()
		defer cleanupTestEnv()

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() returned error: %v", err)
		}

		rendered := config.String()
		for _, secret := range []string{"super_secret_jwt_key", "very-secret", "AKIAEXAMPLE"} {
			if strings.Contains(rendered, secret) {
				t.Errorf("String() leaks %q: %s", secret, rendered)
			}
		}
	})

	t.Run("should fail with invalid port", func(t *testing.T) {
		cleanupTestEnv()
		os.Setenv("APP_PORT", "not_a_number")
		defer cleanupTestEnv()

		config, err := LoadConfig()

		if err == nil {
			t.Error("LoadConfig() should return error when APP_PORT is invalid")
		}
		if config != nil {
			t.Error("Config should be nil when error occurs")
		}
	})

	t.Run("should fail with invalid cache ttl", func(t *testing.T) {
		cleanupTestEnv()
		os.Setenv("MENU_CACHE_TTL", "five minutes")
		defer cleanupTestEnv()

		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig() should return error when MENU_CACHE_TTL is invalid")
		}
	})

	t.Run("should use defaults when optional env vars not set", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()

		config, err := LoadConfig()

		if err != nil {
			t.Fatalf("LoadConfig() returned unexpected error: %v", err)
		}

		// Check defaults
		if config.Port != 8080 {
			t.Errorf("Port = %d, expected default 8080", config.Port)
		}
		if config.Host != "localhost" {
			t.Errorf("Host = %s, expected default localhost", config.Host)
		}
		if config.LogLevel != "info" {
			t.Errorf("LogLevel = %s, expected default info", config.LogLevel)
		}
		if config.DBDriver != "sqlite" {
			t.Errorf("DBDriver = %s, expected default sqlite", config.DBDriver)
		}
		if config.MenuCacheTTL != 5*time.Minute {
			t.Errorf("MenuCacheTTL = %s, expected default 5m", config.MenuCacheTTL)
		}
		if len(config.CORSOrigins) != 1 || config.CORSOrigins[0] != config.PublicOrigin {
			t.Errorf("CORSOrigins = %v, expected the public origin", config.CORSOrigins)
		}
		if config.PublishingEnabled() {
			t.Error("PublishingEnabled() = true, expected false without EXPORT_BUCKET")
		}
	})
}

// Benchmark tests (optional but good practice)
func BenchmarkGetEnvWithDefault(b *testing.B) {
	os.Setenv("BENCH_KEY", "test_value")
	defer os.Unsetenv("BENCH_KEY")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GetEnvWithDefault("BENCH_KEY", "default")
	}
}
