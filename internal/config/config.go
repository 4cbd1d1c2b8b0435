package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"vigcrack/internal/crack"
	"vigcrack/internal/dictionary"
	"vigcrack/internal/logging"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "vigcrack.yaml"

// Config holds all vigcrack configuration.
type Config struct {
	// Word list
	Dictionary DictionaryConfig `yaml:"dictionary"`

	// Search pipeline tuning
	Search SearchConfig `yaml:"search"`

	// Report output
	Output OutputConfig `yaml:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DictionaryConfig configures the word list.
type DictionaryConfig struct {
	Path string `yaml:"path"`
}

// SearchConfig configures the concurrent search.
type SearchConfig struct {
	Workers    int `yaml:"workers"`     // concurrent batches
	BatchSize  int `yaml:"batch_size"`  // keys per batch
	BufferSize int `yaml:"buffer_size"` // result channel capacity
}

// OutputConfig configures reporting.
type OutputConfig struct {
	Progress bool   `yaml:"progress"` // progress bar on stderr
	File     string `yaml:"file"`     // optional .json/.yaml export
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`  // debug, info, warn, error
	Format     string          `yaml:"format"` // json, console
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dictionary: DictionaryConfig{
			Path: dictionary.DefaultPath,
		},
		Search: SearchConfig{
			Workers:    crack.DefaultWorkers,
			BatchSize:  crack.DefaultBatchSize,
			BufferSize: crack.DefaultBufferSize,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; env overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if path := os.Getenv("VIGCRACK_DICT"); path != "" {
		c.Dictionary.Path = path
	}
	if level := os.Getenv("VIGCRACK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"VIGCRACK_WORKERS", &c.Search.Workers},
		{"VIGCRACK_BATCH_SIZE", &c.Search.BatchSize},
		{"VIGCRACK_BUFFER", &c.Search.BufferSize},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", o.env, v, err)
		}
		*o.dst = n
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Dictionary.Path == "" {
		return fmt.Errorf("dictionary path not configured")
	}
	if c.Search.Workers < 1 {
		return fmt.Errorf("search.workers must be >= 1, got %d", c.Search.Workers)
	}
	if c.Search.BatchSize < 1 {
		return fmt.Errorf("search.batch_size must be >= 1, got %d", c.Search.BatchSize)
	}
	if c.Search.BufferSize < 1 {
		return fmt.Errorf("search.buffer_size must be >= 1, got %d", c.Search.BufferSize)
	}
	switch c.Logging.Format {
	case "", "json", "console", "text":
	default:
		return fmt.Errorf("invalid logging.format: %s (valid: json, console)", c.Logging.Format)
	}
	return nil
}

// LoggingSettings converts the logging section for logging.Initialize.
func (c *Config) LoggingSettings() logging.Config {
	return logging.Config{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		Categories: c.Logging.Categories,
	}
}
