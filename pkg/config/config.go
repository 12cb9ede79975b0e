package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      int    `yaml:"port"`
		StaticDir string `yaml:"static_dir"`
		DocsPath  string `yaml:"docs_path"`

		// ImageOrigins are the hosts the kiosk page may load listing photos from.
		ImageOrigins []string `yaml:"image_origins"`
	} `yaml:"server"`
	Feed struct {
		BaseURL   string `yaml:"base_url"`
		TimeoutMs int    `yaml:"timeout_ms"`
	} `yaml:"feed"`
	Retry struct {
		MaxAttempts int `yaml:"max_attempts"`
		BaseDelayMs int `yaml:"base_delay_ms"`
	} `yaml:"retry"`
	Slideshow struct {
		IntervalMs       int    `yaml:"interval_ms"`
		FallbackEnabled  *bool  `yaml:"fallback_enabled"`
		Limit            int    `yaml:"limit"`
		Status           string `yaml:"status"`
		PlaylistPath     string `yaml:"playlist_path"`
		Currency         string `yaml:"currency"`
		PlaceholderImage string `yaml:"placeholder_image"`
	} `yaml:"slideshow"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute"`
		Burst             int `yaml:"burst"`
	} `yaml:"rate_limit"`
}

const (
	DefaultPort             = 8000
	DefaultFeedBaseURL      = "http://localhost:8080"
	DefaultFeedTimeoutMs    = 10000
	DefaultMaxAttempts      = 3
	DefaultBaseDelayMs      = 1000
	DefaultIntervalMs       = 8000
	DefaultLimit            = 20
	DefaultCurrency         = "EUR"
	DefaultPlaceholderImage = "/images/placeholder.jpg"
)

// LoadConfig reads the YAML file at path, applies environment overrides and
// defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}
	return Parse(data)
}

// Parse builds a Config from raw YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Override with environment variables if set
func (cfg *Config) applyEnv() error {
	if v := os.Getenv("FEED_BASE_URL"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %v", err)
		}
		cfg.Server.Port = n
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("DOCS_PATH"); v != "" {
		cfg.Server.DocsPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SLIDESHOW_INTERVAL_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SLIDESHOW_INTERVAL_MS value: %v", err)
		}
		cfg.Slideshow.IntervalMs = n
	}
	if v := os.Getenv("SLIDESHOW_FALLBACK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SLIDESHOW_FALLBACK value: %v", err)
		}
		cfg.Slideshow.FallbackEnabled = &b
	}
	if v := os.Getenv("SLIDESHOW_PLAYLIST"); v != "" {
		cfg.Slideshow.PlaylistPath = v
	}
	if v := os.Getenv("RETRY_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RETRY_MAX_ATTEMPTS value: %v", err)
		}
		cfg.Retry.MaxAttempts = n
	}
	if v := os.Getenv("RETRY_BASE_DELAY_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RETRY_BASE_DELAY_MS value: %v", err)
		}
		cfg.Retry.BaseDelayMs = n
	}
	return nil
}

// Set default values
func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "static"
	}
	if cfg.Server.DocsPath == "" {
		cfg.Server.DocsPath = "docs/swagger.json"
	}
	if cfg.Server.ImageOrigins == nil {
		cfg.Server.ImageOrigins = []string{"https:"}
	}
	if cfg.Feed.BaseURL == "" {
		cfg.Feed.BaseURL = DefaultFeedBaseURL
	}
	if cfg.Feed.TimeoutMs == 0 {
		cfg.Feed.TimeoutMs = DefaultFeedTimeoutMs
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Retry.BaseDelayMs == 0 {
		cfg.Retry.BaseDelayMs = DefaultBaseDelayMs
	}
	if cfg.Slideshow.IntervalMs == 0 {
		cfg.Slideshow.IntervalMs = DefaultIntervalMs
	}
	if cfg.Slideshow.FallbackEnabled == nil {
		enabled := true
		cfg.Slideshow.FallbackEnabled = &enabled
	}
	if cfg.Slideshow.Limit == 0 {
		cfg.Slideshow.Limit = DefaultLimit
	}
	if cfg.Slideshow.Currency == "" {
		cfg.Slideshow.Currency = DefaultCurrency
	}
	if cfg.Slideshow.PlaceholderImage == "" {
		cfg.Slideshow.PlaceholderImage = DefaultPlaceholderImage
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = 100
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
}

// Validate checks ranges and formats.
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	u, err := url.Parse(cfg.Feed.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("FEED_BASE_URL must be an absolute URL: %q", cfg.Feed.BaseURL)
	}
	if cfg.Feed.TimeoutMs < 0 {
		return fmt.Errorf("feed timeout must be non-negative")
	}
	if cfg.Retry.MaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1")
	}
	if cfg.Retry.BaseDelayMs < 0 {
		return fmt.Errorf("RETRY_BASE_DELAY_MS must be non-negative")
	}
	if cfg.Slideshow.IntervalMs <= 0 {
		return fmt.Errorf("SLIDESHOW_INTERVAL_MS must be positive")
	}
	if cfg.Slideshow.Limit < 0 {
		return fmt.Errorf("slideshow limit must be non-negative")
	}
	if cfg.Slideshow.PlaylistPath != "" {
		if _, err := os.Stat(cfg.Slideshow.PlaylistPath); os.IsNotExist(err) {
			return fmt.Errorf("playlist file does not exist: %s", cfg.Slideshow.PlaylistPath)
		}
	}
	return nil
}

// ImageSources lists the configured image origins plus the feed origin, which
// serves relative image paths.
func (cfg *Config) ImageSources() []string {
	sources := append([]string(nil), cfg.Server.ImageOrigins...)
	if u, err := url.Parse(cfg.Feed.BaseURL); err == nil && u.Scheme != "" && u.Host != "" {
		sources = append(sources, u.Scheme+"://"+u.Host)
	}
	return sources
}

func (cfg *Config) FeedTimeout() time.Duration {
	return time.Duration(cfg.Feed.TimeoutMs) * time.Millisecond
}

func (cfg *Config) RetryBaseDelay() time.Duration {
	return time.Duration(cfg.Retry.BaseDelayMs) * time.Millisecond
}

func (cfg *Config) SlideInterval() time.Duration {
	return time.Duration(cfg.Slideshow.IntervalMs) * time.Millisecond
}

func (cfg *Config) Fallback() bool {
	return cfg.Slideshow.FallbackEnabled == nil || *cfg.Slideshow.FallbackEnabled
}
