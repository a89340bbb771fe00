package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT"` // empty picks json in prod, text elsewhere
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"VERSION" envDefault:"dev"`
	APIKey      string `env:"API_KEY"` // API key for authentication

	StoreBackend string        `env:"STORE_BACKEND" envDefault:"sqlite"`
	DBUser       string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword   string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost       string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort       string        `env:"DB_PORT" envDefault:"5432"`
	DBName       string        `env:"DB_NAME" envDefault:"brandishevents"`
	DBMaxConns   int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxIdle    time.Duration `env:"DB_MAX_IDLE" envDefault:"5m"`
	DBMaxLife    time.Duration `env:"DB_MAX_LIFE" envDefault:"1h"`
	SQLitePath   string        `env:"SQLITE_PATH" envDefault:"data/events.db"`
	FlatFileDir  string        `env:"FLATFILE_DIR" envDefault:"data/players"`

	EventsPath  string `env:"EVENTS_CONFIG" envDefault:"configs/events.json"`
	RewardsPath string `env:"REWARDS_CONFIG" envDefault:"configs/rewards.json"`

	DiscordToken     string `env:"DISCORD_TOKEN"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID"`

	NATSURL        string `env:"NATS_URL"`
	NodeName       string `env:"NODE_NAME" envDefault:"brandish-events"`
	RelayPrefix    string `env:"RELAY_SUBJECT_PREFIX" envDefault:"brandish.events"`
	RelayRetries   int    `env:"RELAY_MAX_RETRIES" envDefault:"5"`
	DeadLetterPath string `env:"DEAD_LETTER_PATH" envDefault:"logs/deadletter.jsonl"`

	TransferCodeTTL      time.Duration `env:"TRANSFER_CODE_TTL" envDefault:"0s"`
	AllowNegativeBalance bool          `env:"ALLOW_NEGATIVE_BALANCE" envDefault:"true"`
	InventorySize        int           `env:"INVENTORY_SIZE" envDefault:"24"`
	WorkerCount          int           `env:"WORKER_COUNT" envDefault:"4"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.APIKey == "" {
		return nil, errors.New("API_KEY environment variable must be set for security")
	}
	if !slices.Contains([]string{StoreBackendPostgres, StoreBackendSQLite, StoreBackendFlatFile}, cfg.StoreBackend) {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q (want postgres, sqlite or flatfile)", cfg.StoreBackend)
	}
	if cfg.TransferCodeTTL < 0 {
		return nil, fmt.Errorf("invalid TRANSFER_CODE_TTL %s: must not be negative", cfg.TransferCodeTTL)
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// DiscordEnabled reports whether Discord notifications are configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}
