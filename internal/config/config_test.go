package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)
		// Must set API_KEY or it fails validation
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, StoreBackendSQLite, cfg.StoreBackend)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, time.Duration(0), cfg.TransferCodeTTL, "Codes never expire by default")
		assert.True(t, cfg.AllowNegativeBalance)
		assert.False(t, cfg.DiscordEnabled())
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)

		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("STORE_BACKEND", "postgres")
		t.Setenv("DB_HOST", "db.example.com")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("TRANSFER_CODE_TTL", "15m")
		t.Setenv("ALLOW_NEGATIVE_BALANCE", "false")
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("DISCORD_CHANNEL_ID", "123")
		t.Setenv("NATS_URL", "nats://127.0.0.1:4222")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, StoreBackendPostgres, cfg.StoreBackend)
		assert.Equal(t, "db.example.com", cfg.DBHost)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, 15*time.Minute, cfg.TransferCodeTTL)
		assert.False(t, cfg.AllowNegativeBalance)
		assert.True(t, cfg.DiscordEnabled())
		assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATSURL)
	})

	t.Run("returns error when API_KEY is missing", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "API_KEY")
		assert.Contains(t, err.Error(), "must be set")
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("PORT", "not-a-number")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for unknown store backend", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("STORE_BACKEND", "redis")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORE_BACKEND")
	})

	t.Run("returns error for negative transfer TTL", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("TRANSFER_CODE_TTL", "-1m")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "TRANSFER_CODE_TTL")
	})
}

// TestGetDBConnString verifies database connection string generation
func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "testuser",
		DBPassword: "p@ss:word",
		DBHost:     "testhost",
		DBPort:     "5433",
		DBName:     "testdb",
	}

	assert.Equal(t, "postgres://testuser:p@ss:word@testhost:5433/testdb?sslmode=disable", cfg.GetDBConnString())
}

// Helper function to clear environment variables
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR",
		"VERSION", "ENVIRONMENT", "STORE_BACKEND",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"TRANSFER_CODE_TTL", "ALLOW_NEGATIVE_BALANCE",
		"DISCORD_TOKEN", "DISCORD_CHANNEL_ID", "NATS_URL", "NODE_NAME",
	}

	for _, key := range envVars {
		// t.Setenv registers restoration of the original value
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
