package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Telegram    TelegramConfig  `toml:"telegram"`
	Sources     SourcesConfig   `toml:"sources"`
	Storage     StorageConfig   `toml:"storage"`
	Broadcast   BroadcastConfig `toml:"broadcast"`
	Logging     LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host" validate:"required"`
}

// TelegramConfig contains Telegram Bot API settings
type TelegramConfig struct {
	Token      string `toml:"token" validate:"required"` // Bot API token from @BotFather
	APIBaseURL string `toml:"api_base_url" validate:"required,url"`
	WebhookURL string `toml:"webhook_url" validate:"omitempty,url"` // Public base URL; webhook is registered as <url>/webhook/<token>
	RateLimit  int    `toml:"rate_limit" validate:"min=1"`          // Outbound messages per second
}

// SourcesConfig contains the scrape endpoints for the two NEPSE listing tables
type SourcesConfig struct {
	LiveTradingURL  string        `toml:"live_trading_url" validate:"required,url"`
	DailySummaryURL string        `toml:"daily_summary_url" validate:"required,url"`
	RequestTimeout  time.Duration `toml:"request_timeout"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

// BroadcastConfig controls the scheduled daily summary broadcast
type BroadcastConfig struct {
	Enabled  bool   `toml:"enabled"`  // When false the HTTP trigger is the only entry point
	Schedule string `toml:"schedule"` // Cron schedule format
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in nepsebot.toml; technical
// parameters are hardcoded here for production stability.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Telegram: TelegramConfig{
			Token:      "", // User must provide token (TELEGRAM_API_KEY or config)
			APIBaseURL: "https://api.telegram.org",
			WebhookURL: "",
			RateLimit:  25, // Below Telegram's ~30 msg/s broadcast ceiling
		},
		Sources: SourcesConfig{
			LiveTradingURL:  "https://www.sharesansar.com/live-trading",
			DailySummaryURL: "https://www.sharesansar.com/today-share-price",
			RequestTimeout:  10 * time.Second,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Broadcast: BroadcastConfig{
			// HTTP trigger remains the default entry point; the in-process
			// schedule fires at 15:00 NPT after market close when enabled.
			Enabled:  false,
			Schedule: "0 0 15 * * SUN-THU",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// CLI flag overrides are applied separately via ApplyFlagOverrides.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("NEPSEBOT_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration (PORT kept for PaaS deployments that inject it)
	if port := os.Getenv("NEPSEBOT_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	} else if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("NEPSEBOT_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Telegram configuration
	if token := os.Getenv("TELEGRAM_API_KEY"); token != "" {
		config.Telegram.Token = token
	}
	if url := os.Getenv("WEBHOOK_URL"); url != "" {
		config.Telegram.WebhookURL = url
	}

	// Logging configuration
	if level := os.Getenv("NEPSEBOT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// Storage configuration
	if path := os.Getenv("NEPSEBOT_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the resolved configuration against struct-level constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
