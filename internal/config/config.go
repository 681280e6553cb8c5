package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full service configuration as read from YAML.
type Config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    string `yaml:"port"`
		Prefork bool   `yaml:"prefork"`
	} `yaml:"server"`

	Logger struct {
		File       string `yaml:"file"`
		Level      string `yaml:"level"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logger"`

	Cache struct {
		RedisHost          string        `yaml:"redis_host"`
		RateLimitDB        int           `yaml:"redis_rate_db"`
		RenderCacheDB      int           `yaml:"redis_render_db"`
		RenderCacheEnabled bool          `yaml:"render_cache_enabled"`
		RenderCacheTTL     time.Duration `yaml:"render_cache_ttl"`
	} `yaml:"cache"`

	RateLimiter struct {
		Interval  time.Duration `yaml:"interval"`
		UserLimit int           `yaml:"user_limit"`
	} `yaml:"rate_limiter"`

	Document struct {
		DefaultPaymentStatus string `yaml:"default_payment_status"`
		Timezone             string `yaml:"timezone"`
	} `yaml:"document"`

	PDF struct {
		Compress       bool `yaml:"compress"`
		ValidateOutput bool `yaml:"validate_output"`
	} `yaml:"pdf"`

	Scratch struct {
		Dir          string        `yaml:"dir"`
		CleanupDelay time.Duration `yaml:"cleanup_delay"`
		DownloadPath string        `yaml:"download_path"`
	} `yaml:"scratch"`
}

const (
	defaultConfigPath   = "config.yaml"
	defaultScratchDir   = "temp"
	defaultCleanupDelay = 5 * time.Second
	defaultDownloadPath = "/v1/sppt/download"
)

// Default returns a configuration usable without any YAML file.
func Default() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

// Load reads the configuration from CONFIG_PATH, or config.yaml when unset.
// A missing default file yields Default(); a missing explicit file panics.
func Load() Config {
	loadEnvFiles()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return Default()
		}
		path = defaultConfigPath
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the YAML file at path. It panics on
// unreadable files and invalid values, since the service cannot start.
func LoadFrom(path string) Config {
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("config: read %s: %v", path, err))
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		panic(fmt.Sprintf("config: parse %s: %v", path, err))
	}

	applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		panic(fmt.Sprintf("config: %s: %v", path, err))
	}
	return cfg
}

// loadEnvFiles loads .env and then .env.local, both optional.
func loadEnvFiles() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
	if _, err := os.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Cache.RenderCacheTTL == 0 {
		cfg.Cache.RenderCacheTTL = time.Minute
	}
	if cfg.RateLimiter.Interval == 0 {
		cfg.RateLimiter.Interval = time.Minute
	}
	if cfg.Document.DefaultPaymentStatus == "" {
		cfg.Document.DefaultPaymentStatus = "UNPAID"
	}
	if cfg.Document.Timezone == "" {
		cfg.Document.Timezone = "Asia/Jakarta"
	}
	if cfg.Scratch.Dir == "" {
		cfg.Scratch.Dir = defaultScratchDir
	}
	if cfg.Scratch.CleanupDelay == 0 {
		cfg.Scratch.CleanupDelay = defaultCleanupDelay
	}
	if cfg.Scratch.DownloadPath == "" {
		cfg.Scratch.DownloadPath = defaultDownloadPath
	}
}

func validate(cfg Config) error {
	if cfg.RateLimiter.UserLimit < 0 {
		return fmt.Errorf("rate_limiter.user_limit must not be negative")
	}
	if cfg.RateLimiter.Interval < 0 {
		return fmt.Errorf("rate_limiter.interval must be positive")
	}
	if cfg.Scratch.CleanupDelay < 0 {
		return fmt.Errorf("scratch.cleanup_delay must be positive")
	}
	if cfg.Cache.RenderCacheEnabled && cfg.Cache.RedisHost == "" {
		return fmt.Errorf("cache.redis_host is required when render_cache_enabled is set")
	}
	if _, err := time.LoadLocation(cfg.Document.Timezone); err != nil {
		return fmt.Errorf("document.timezone: %w", err)
	}
	return nil
}

// Location resolves Document.Timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Document.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
