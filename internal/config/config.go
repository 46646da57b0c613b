package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Events      EventsConfig      `yaml:"events"`
	Consistency ConsistencyConfig `yaml:"consistency"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type ServerConfig struct {
	Port               int    `yaml:"port"`
	MetricsPort        int    `yaml:"metrics_port"`
	AdminToken         string `yaml:"admin_token"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// CatalogConfig selects the alternative data. URL wins over Path; with
// neither set the embedded phone catalog is used.
type CatalogConfig struct {
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
}

// EventsConfig points at the NATS server. An empty URL disables events.
type EventsConfig struct {
	URL string `yaml:"url"`
}

// ConsistencyConfig tunes the consistency check. RandomIndex is required
// when the catalog has more criteria than the built-in table covers; zero
// means use the table.
type ConsistencyConfig struct {
	Threshold   float64 `yaml:"threshold"`
	RandomIndex float64 `yaml:"random_index"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerMinute: 120,
		},
		Consistency: ConsistencyConfig{
			Threshold: 0.10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.MetricsPort <= 0 {
		return fmt.Errorf("invalid ports: api=%d metrics=%d", c.Server.Port, c.Server.MetricsPort)
	}
	if c.Server.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate_limit_per_minute must be positive, got %d", c.Server.RateLimitPerMinute)
	}
	if c.Consistency.Threshold <= 0 || c.Consistency.Threshold >= 1 {
		return fmt.Errorf("consistency threshold %.4f must be in (0, 1)", c.Consistency.Threshold)
	}
	if c.Consistency.RandomIndex < 0 {
		return fmt.Errorf("consistency random_index %.4f must not be negative", c.Consistency.RandomIndex)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ARBITER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("ARBITER_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("ARBITER_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("ARBITER_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("ARBITER_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("ARBITER_CATALOG_URL"); v != "" {
		cfg.Catalog.URL = v
	}
	if v := os.Getenv("ARBITER_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("ARBITER_CONSISTENCY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Consistency.Threshold = f
		}
	}
	if v := os.Getenv("ARBITER_CONSISTENCY_RANDOM_INDEX"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Consistency.RandomIndex = f
		}
	}
	if v := os.Getenv("ARBITER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ARBITER_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
