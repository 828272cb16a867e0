// Package config provides configuration management for the application.
// Precedence, lowest to highest: built-in defaults, an optional YAML
// file, environment variables (with .env support for local development).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Feed        FeedConfig        `yaml:"feed"`
	Benchmark   BenchmarkConfig   `yaml:"benchmark"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Cache       CacheConfig       `yaml:"cache"`
	Providers   ProvidersConfig   `yaml:"providers"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// FeedConfig holds the primary model feed configuration.
type FeedConfig struct {
	URL string `yaml:"url"`
}

// BenchmarkConfig holds the benchmark-scores API configuration. An empty
// APIKey disables the integration.
type BenchmarkConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// LeaderboardConfig holds the leaderboard dataset configuration.
type LeaderboardConfig struct {
	BaseURL  string `yaml:"base_url"`
	Dataset  string `yaml:"dataset"`
	PageSize int    `yaml:"page_size"`
	MaxRows  int    `yaml:"max_rows"`
}

// CacheConfig holds source-cache configuration.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// UnmarshalYAML accepts Go duration strings ("30m", "1h") for the TTL.
func (c *CacheConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		TTL string `yaml:"ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.TTL != "" {
		d, err := time.ParseDuration(raw.TTL)
		if err != nil {
			return fmt.Errorf("parsing cache ttl: %w", err)
		}
		c.TTL = d
	}
	return nil
}

// ProvidersConfig holds the provider allow-list. Empty means the
// built-in default list.
type ProvidersConfig struct {
	Allowed []string `yaml:"allowed"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "pretty"
	Level  string `yaml:"level"`
}

// MetricsConfig holds Prometheus exposition configuration.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Feed:   FeedConfig{URL: "https://openrouter.ai/api/v1/models"},
		Benchmark: BenchmarkConfig{
			URL: "https://artificialanalysis.ai/api/v2/data/llms/models",
		},
		Leaderboard: LeaderboardConfig{
			BaseURL:  "https://datasets-server.huggingface.co/rows",
			Dataset:  "open-llm-leaderboard/contents",
			PageSize: 100,
			MaxRows:  500,
		},
		Cache:   CacheConfig{TTL: time.Hour},
		Logging: LoggingConfig{Format: "json", Level: "info"},
		Metrics: MetricsConfig{Enabled: true, Endpoint: "/metrics"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty or the file does not exist), then
// environment variables. A .env file in the working directory is loaded
// first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.Cache.TTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", cfg.Cache.TTL)
	}
	if cfg.Feed.URL == "" {
		return nil, fmt.Errorf("feed url must not be empty")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Feed.URL, "FEED_URL")
	setString(&cfg.Benchmark.URL, "BENCHMARK_URL")
	setString(&cfg.Benchmark.APIKey, "BENCHMARK_API_KEY")
	setString(&cfg.Leaderboard.BaseURL, "LEADERBOARD_BASE_URL")
	setString(&cfg.Leaderboard.Dataset, "LEADERBOARD_DATASET")
	setInt(&cfg.Leaderboard.PageSize, "LEADERBOARD_PAGE_SIZE")
	setInt(&cfg.Leaderboard.MaxRows, "LEADERBOARD_MAX_ROWS")
	setDuration(&cfg.Cache.TTL, "CACHE_TTL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setBool(&cfg.Metrics.Enabled, "METRICS_ENABLED")
	setString(&cfg.Metrics.Endpoint, "METRICS_ENDPOINT")

	if v := os.Getenv("ALLOWED_PROVIDERS"); v != "" {
		parts := strings.Split(v, ",")
		allowed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				allowed = append(allowed, p)
			}
		}
		cfg.Providers.Allowed = allowed
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
