package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Defaults applied by setDefaults.
const (
	DefaultAPIURL         = "http://localhost:5000/api"
	DefaultImageURL       = "https://image.tmdb.org/t/p/"
	DefaultPlaceholder    = "/static/placeholder.jpg"
	DefaultTimeoutSeconds = 15
	DefaultMaxAttempts    = 1
	DefaultRatePerSecond  = 1.0
	DefaultBurst          = 5
)

// Config represents the main application configuration
type Config struct {
	// Recommendation API
	API APIConfig `yaml:"api"`

	// Poster CDN
	Images ImagesConfig `yaml:"images"`

	// Frontends
	Telegram *TelegramConfig `yaml:"telegram,omitempty"`

	// Application settings
	App AppConfig `yaml:"app"`
}

// APIConfig holds the recommendation API connection settings
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxAttempts    int    `yaml:"max_attempts"` // 1 disables retries
}

// Timeout returns the per-request timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// ImagesConfig holds poster URL settings
type ImagesConfig struct {
	BaseURL     string `yaml:"base_url"`
	Placeholder string `yaml:"placeholder"` // absolute URL, or a path on the API host
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string  `yaml:"bot_token"`
	AllowedUserIDs []int64 `yaml:"allowed_user_ids,omitempty"`
	RatePerSecond  float64 `yaml:"rate_per_second,omitempty"`
	Burst          int     `yaml:"burst,omitempty"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn", "error"
	LogFile  string `yaml:"log_file"`  // TUI log destination
	DataDir  string `yaml:"data_dir"`
}

// DefaultPath returns the config file location used when --config is not given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".reelview", "config.yaml")
}

// Load loads configuration from a YAML file with environment variable overrides.
// A missing file is not an error: defaults and environment values apply.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	err := validateConfigPath(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// validateConfigPath checks that path names a regular file.
func validateConfigPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)
		}
		return fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	return nil
}

// applyEnvOverrides overrides config values with environment variables
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("REELVIEW_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("REELVIEW_IMAGE_BASE_URL"); v != "" {
		c.Images.BaseURL = v
	}

	// Telegram section is created from the token alone
	if v := os.Getenv("REELVIEW_TELEGRAM_BOT_TOKEN"); v != "" {
		if c.Telegram == nil {
			c.Telegram = &TelegramConfig{}
		}
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("REELVIEW_TELEGRAM_ALLOWED_USER_IDS"); v != "" && c.Telegram != nil {
		c.Telegram.AllowedUserIDs = parseIDs(v)
	}

	if v := os.Getenv("REELVIEW_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
	if v := os.Getenv("REELVIEW_LOG_FILE"); v != "" {
		c.App.LogFile = v
	}
	if v := os.Getenv("REELVIEW_DATA_DIR"); v != "" {
		c.App.DataDir = v
	}
}

// parseIDs parses a comma-separated list of user IDs, skipping malformed entries.
func parseIDs(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// setDefaults fills zero values. Negative numbers are kept so Validate can reject them.
func (c *Config) setDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIURL
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.API.MaxAttempts == 0 {
		c.API.MaxAttempts = DefaultMaxAttempts
	}

	if c.Images.BaseURL == "" {
		c.Images.BaseURL = DefaultImageURL
	}
	if c.Images.Placeholder == "" {
		c.Images.Placeholder = DefaultPlaceholder
	}

	if c.Telegram != nil {
		if c.Telegram.RatePerSecond == 0 {
			c.Telegram.RatePerSecond = DefaultRatePerSecond
		}
		if c.Telegram.Burst == 0 {
			c.Telegram.Burst = DefaultBurst
		}
	}

	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.App.DataDir = filepath.Join(home, ".reelview")
		} else {
			c.App.DataDir = ".reelview"
		}
	}
	if c.App.LogFile == "" {
		c.App.LogFile = filepath.Join(c.App.DataDir, "reelview.log")
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validateURL(c.API.BaseURL, "api.base_url"); err != nil {
		return err
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive")
	}
	if c.API.MaxAttempts <= 0 {
		return fmt.Errorf("api.max_attempts must be positive")
	}

	if err := validateURL(c.Images.BaseURL, "images.base_url"); err != nil {
		return err
	}

	if c.Telegram != nil {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required")
		}
		if c.Telegram.RatePerSecond < 0 {
			return fmt.Errorf("telegram.rate_per_second must be positive")
		}
		if c.Telegram.Burst < 0 {
			return fmt.Errorf("telegram.burst must be positive")
		}
	}

	switch strings.ToLower(c.App.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("app.log_level must be one of debug, info, warn, error; got %q", c.App.LogLevel)
	}

	return nil
}

// validateURL checks that raw is an absolute http(s) URL with a host.
func validateURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing host", field)
	}
	return nil
}
