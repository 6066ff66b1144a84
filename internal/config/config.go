package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/bisim/internal/logging"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up in the working directory.
const FileName = "bisim.yaml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
)

// Config represents the top-level bisim.yaml configuration.
type Config struct {
	Version  string        `yaml:"version"`
	Graphs   string        `yaml:"graphs,omitempty"` // Directory holding graph documents
	Store    *StoreConfig  `yaml:"store,omitempty"`
	Output   *OutputConfig `yaml:"output,omitempty"`
	LogLevel string        `yaml:"log_level,omitempty"`
}

// StoreConfig selects where refinement results are persisted.
type StoreConfig struct {
	Backend string       `yaml:"backend"`
	Path    string       `yaml:"path,omitempty"` // file backend only
	Redis   *RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password,omitempty"`
	DB       int           `yaml:"db,omitempty"`
	Prefix   string        `yaml:"prefix,omitempty"`
	TTL      time.Duration `yaml:"ttl,omitempty"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// Default returns the configuration used when no bisim.yaml exists.
func Default() *Config {
	c := &Config{Version: "1.0"}
	_ = c.Validate()
	return c
}

// Validate performs strict validation and applies defaults.
func (c *Config) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Graphs == "" {
		c.Graphs = "."
	}

	if c.Store == nil {
		c.Store = &StoreConfig{Backend: BackendMemory}
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}

	if c.Output == nil {
		c.Output = &OutputConfig{Format: FormatText}
	}
	switch c.Output.Format {
	case "":
		c.Output.Format = FormatText
	case FormatText, FormatJSON, FormatMarkdown, FormatMermaid:
	default:
		return fmt.Errorf("invalid output.format: %s (must be 'text', 'json', 'markdown' or 'mermaid')", c.Output.Format)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	return nil
}

// Validate checks the store section and applies backend defaults.
func (s *StoreConfig) Validate() error {
	switch s.Backend {
	case "", BackendMemory:
		s.Backend = BackendMemory
	case BackendFile:
		if s.Path == "" {
			s.Path = ".bisim/results"
		}
	case BackendRedis:
		if s.Redis == nil || s.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr is required when store.backend is 'redis'")
		}
		if s.Redis.Prefix == "" {
			s.Redis.Prefix = "bisim:result:"
		}
		if s.Redis.TTL < 0 {
			return fmt.Errorf("store.redis.ttl must be >= 0, got %s", s.Redis.TTL)
		}
	default:
		return fmt.Errorf("invalid store.backend: %s (must be 'memory', 'file' or 'redis')", s.Backend)
	}
	return nil
}

// Load reads and validates a config file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads path when it exists and falls back to Default otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}
