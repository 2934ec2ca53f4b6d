// Package config loads and persists tool configuration from
// .nl2pl/config.json under the working directory.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete nl2pl configuration (v1 schema)
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Output  OutputConfig  `json:"output" mapstructure:"output"`
	Parse   ParseConfig   `json:"parse" mapstructure:"parse"`
	Export  ExportConfig  `json:"export" mapstructure:"export"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// OutputConfig controls how command results are rendered
type OutputConfig struct {
	// Format is the default output format: json, yaml or human
	Format string `json:"format" mapstructure:"format"`
}

// ParseConfig controls parser behavior
type ParseConfig struct {
	// IDStart is the counter value identifier numbering starts from
	IDStart int `json:"idStart" mapstructure:"idStart"`
}

// ExportConfig controls bundle export
type ExportConfig struct {
	// Compress enables zstd compression for exported bundles
	Compress bool `json:"compress" mapstructure:"compress"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Output: OutputConfig{
			Format: "human",
		},
		Parse: ParseConfig{
			IDStart: 0,
		},
		Export: ExportConfig{
			Compress: false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .nl2pl/config.json
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("version", 1)
	v.SetDefault("output.format", "human")
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(dir, ".nl2pl"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .nl2pl/config.json, creating the
// directory if needed.
func (c *Config) Save(dir string) error {
	configDir := filepath.Join(dir, ".nl2pl")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}

	switch c.Output.Format {
	case "", "json", "yaml", "human":
	default:
		return &ConfigError{Field: "output.format", Message: "must be json, yaml or human"}
	}

	if c.Parse.IDStart < 0 {
		return &ConfigError{Field: "parse.idStart", Message: "must not be negative"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
