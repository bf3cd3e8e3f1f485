// control/config.go
// Author: momentics <momentics@gmail.com>
//
// YAML configuration for the shared pool, buffers and logging.

package control

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by DefaultConfig and to zero fields after parsing.
const (
	DefaultMinArrayLength = 16
	DefaultMaxArrayLength = 1 << 20
	DefaultMaxPerBucket   = 32
	DefaultLogLevel       = "info"
)

// PoolConfig sizes the shared array pool.
type PoolConfig struct {
	MinArrayLength int `yaml:"min_array_length"`
	MaxArrayLength int `yaml:"max_array_length"`
	MaxPerBucket   int `yaml:"max_per_bucket"`
}

// BufferConfig toggles debug behaviour of parameter buffers.
type BufferConfig struct {
	Debug      bool `yaml:"debug"`
	TrackLeaks bool `yaml:"track_leaks"`
}

// LogConfig selects the logger level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the root configuration document.
type Config struct {
	Pool   PoolConfig   `yaml:"pool"`
	Buffer BufferConfig `yaml:"buffer"`
	Log    LogConfig    `yaml:"log"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Pool: PoolConfig{
			MinArrayLength: DefaultMinArrayLength,
			MaxArrayLength: DefaultMaxArrayLength,
			MaxPerBucket:   DefaultMaxPerBucket,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// LoadConfig reads and validates a YAML file. An empty path yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML, fills defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Pool.MinArrayLength == 0 {
		c.Pool.MinArrayLength = DefaultMinArrayLength
	}
	if c.Pool.MaxArrayLength == 0 {
		c.Pool.MaxArrayLength = DefaultMaxArrayLength
	}
	if c.Pool.MaxPerBucket == 0 {
		c.Pool.MaxPerBucket = DefaultMaxPerBucket
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks pool sizing.
func (c *Config) Validate() error {
	p := c.Pool
	if p.MinArrayLength < 1 || p.MinArrayLength&(p.MinArrayLength-1) != 0 {
		return fmt.Errorf("pool.min_array_length must be a positive power of two, got %d", p.MinArrayLength)
	}
	if p.MaxArrayLength < p.MinArrayLength || p.MaxArrayLength&(p.MaxArrayLength-1) != 0 {
		return fmt.Errorf("pool.max_array_length must be a power of two >= min_array_length, got %d", p.MaxArrayLength)
	}
	if p.MaxPerBucket < 0 {
		return fmt.Errorf("pool.max_per_bucket must not be negative, got %d", p.MaxPerBucket)
	}
	return nil
}
