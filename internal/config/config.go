// Package config loads runtime settings from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Transcript drivers.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// EnvConfigPath names the variable holding the config file path used by
// the C entry points.
const EnvConfigPath = "MARSRT_CONFIG"

// Config holds all runtime configuration.
type Config struct {
	// Seed for the magic bit source. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`

	Transcript TranscriptConfig `yaml:"transcript"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TranscriptConfig selects where primitive calls are recorded.
type TranscriptConfig struct {
	Driver string `yaml:"driver"` // none, memory, sqlite
	Path   string `yaml:"path"`
}

// LoggingConfig configures the zap logger. Logs always go to stderr.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Transcript: TranscriptConfig{
			Driver: DriverNone,
			Path:   "marsrt.db",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("MARSRT_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MARSRT_SEED %q: %w", v, err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("MARSRT_TRANSCRIPT_DRIVER"); v != "" {
		c.Transcript.Driver = v
	}
	if v := os.Getenv("MARSRT_TRANSCRIPT_PATH"); v != "" {
		c.Transcript.Path = v
		// A path alone implies the sqlite driver.
		if os.Getenv("MARSRT_TRANSCRIPT_DRIVER") == "" {
			c.Transcript.Driver = DriverSQLite
		}
	}
	if v := os.Getenv("MARSRT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Transcript.Driver {
	case "", DriverNone, DriverMemory:
	case DriverSQLite:
		if c.Transcript.Path == "" {
			return fmt.Errorf("transcript.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown transcript driver %q (use none, memory or sqlite)", c.Transcript.Driver)
	}
	return nil
}
