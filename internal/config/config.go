// Package config loads the engine's runtime configuration and the
// calibration tables injected at startup.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/heatpath/survey-engine/internal/domain"
)

// PublisherConfig controls the optional Kafka publisher for completed
// assessments.
type PublisherConfig struct {
	Enabled bool     `json:"enabled"`
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
	Acks    string   `json:"acks"`
}

// Config holds the engine's runtime configuration. Precedence is
// environment variables over the config file over built-in defaults.
type Config struct {
	ListenAddr         string          `json:"listen_addr"`
	DBPath             string          `json:"db_path"`
	TablesPath         string          `json:"tables_path"`
	ShutdownTimeoutSec int             `json:"shutdown_timeout_sec"`
	Publisher          PublisherConfig `json:"publisher"`
}

// Load reads a JSON config file, applies environment overrides and
// defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default builds a configuration from environment variables and
// defaults alone, for running without a config file.
func Default() (*Config, error) {
	var cfg Config
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HEATPATH_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("HEATPATH_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("HEATPATH_TABLES_PATH"); v != "" {
		c.TablesPath = v
	}
	if v := os.Getenv("HEATPATH_KAFKA_ENABLED"); v != "" {
		c.Publisher.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("HEATPATH_KAFKA_BROKERS"); v != "" {
		c.Publisher.Brokers = splitCSV(v)
	}
	if v := os.Getenv("HEATPATH_KAFKA_TOPIC"); v != "" {
		c.Publisher.Topic = v
	}
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":9080"
	}
	if c.DBPath == "" {
		c.DBPath = "heatpath.db"
	}
	if c.ShutdownTimeoutSec == 0 {
		c.ShutdownTimeoutSec = 10
	}
	if c.Publisher.Topic == "" {
		c.Publisher.Topic = "heatpath.assessments"
	}
	if c.Publisher.Acks == "" {
		c.Publisher.Acks = "one"
	}
}

func (c *Config) validate() error {
	var problems []string

	if c.ShutdownTimeoutSec < 0 {
		problems = append(problems, "shutdown_timeout_sec must not be negative")
	}
	switch c.Publisher.Acks {
	case "none", "one", "all":
	default:
		problems = append(problems, fmt.Sprintf("publisher.acks must be none, one or all, got %q", c.Publisher.Acks))
	}
	if c.Publisher.Enabled && len(c.Publisher.Brokers) == 0 {
		problems = append(problems, "publisher.brokers is required when the publisher is enabled")
	}

	if len(problems) > 0 {
		return &domain.EngineError{
			Code:    domain.ErrConfigInvalid.Code,
			Message: fmt.Sprintf("%s: %v", domain.ErrConfigInvalid.Message, problems),
		}
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
