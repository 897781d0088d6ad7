// Package config loads the entry-point configuration for the smart home
// adapter: logging, processing budget and health check limits.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes YAML durations written as strings like "5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the entry-point configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	// ProcessingBudget is the wall-clock budget for one invocation. It must
	// stay at or below seven seconds so the adapter times out before the
	// upstream voice service does.
	ProcessingBudget Duration `yaml:"processingBudget"`
	// EnforceBudget enables the misconfiguration check that rejects
	// invocations with a missing or oversized budget.
	EnforceBudget bool `yaml:"enforceBudget"`
	// MaxGoroutines bounds the runtime health check; zero disables it.
	MaxGoroutines int `yaml:"maxGoroutines"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		ProcessingBudget: Duration(5 * time.Second),
		EnforceBudget:    false,
		MaxGoroutines:    0,
	}
}

// Load reads a YAML configuration file, applying defaults for absent fields.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious misconfiguration.
func (c Config) Validate() error {
	if c.ProcessingBudget <= 0 {
		return fmt.Errorf("processingBudget must be positive, got %s", c.ProcessingBudget.Std())
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging format must be text or json, got %q", c.Logging.Format)
	}
	if _, err := c.logLevel(); err != nil {
		return err
	}
	return nil
}

// Logger builds the slog logger described by the configuration.
func (c Config) Logger() *slog.Logger {
	level, err := c.logLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func (c Config) logLevel() (slog.Level, error) {
	switch c.Logging.Level {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
}
