// Package config implements the sns-launch configuration options.
package config

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/a8m/envsubst"
	"gopkg.in/yaml.v3"
)

const (
	// MetricsModeNone disables metrics.
	MetricsModeNone = "none"
	// MetricsModePush pushes the collected metrics to a Prometheus push
	// gateway once a command completes.
	MetricsModePush = "push"
)

// GlobalConfig holds the global configuration options.
var GlobalConfig Config

// Config is the top-level configuration structure.
type Config struct {
	Log     LogConfig     `yaml:"log,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// LogConfig is the logging configuration structure.
type LogConfig struct {
	// Log file.
	File string `yaml:"file,omitempty"`
	// Log format (logfmt, json).
	Format string `yaml:"format,omitempty"`
	// Log level (debug, info, warn, error) per module. The "default" key
	// sets the level of modules without an entry.
	Level map[string]string `yaml:"level,omitempty"`
}

// MetricsConfig is the metrics configuration structure.
type MetricsConfig struct {
	// Metrics mode (none, push).
	Mode string `yaml:"mode"`
	// Push gateway address.
	Address string `yaml:"address,omitempty"`
	// Push job name.
	JobName string `yaml:"job_name,omitempty"`
	// Push grouping labels.
	Labels map[string]string `yaml:"labels,omitempty"`
	// Maximum time spent retrying a failed push.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Validate validates the logging settings.
func (c *LogConfig) Validate() error {
	switch c.Format {
	case "", "logfmt", "json", "JSON":
	default:
		return fmt.Errorf("unknown log format: %s", c.Format)
	}
	return nil
}

// Validate validates the metrics settings.
func (c *MetricsConfig) Validate() error {
	switch c.Mode {
	case MetricsModeNone:
	case MetricsModePush:
		if len(c.Address) == 0 {
			return fmt.Errorf("missing address in push mode")
		}
		if len(c.JobName) == 0 {
			return fmt.Errorf("missing job_name in push mode")
		}
		if c.Timeout == 0 {
			return fmt.Errorf("missing timeout in push mode")
		}
	default:
		return fmt.Errorf("unknown metrics mode: %s", c.Mode)
	}
	return nil
}

// Validate validates the configuration settings.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			File:   "",
			Format: "logfmt",
			Level: map[string]string{
				"default": "warn",
			},
		},
		Metrics: MetricsConfig{
			Mode:    MetricsModeNone,
			Address: "127.0.0.1:9091",
			JobName: "sns-launch",
			Labels:  map[string]string{},
			Timeout: 30 * time.Second,
		},
	}
}

// InitConfig initializes the global configuration from the given file.
func InitConfig(cfgFile string) error {
	// Read the specified config file and substitute environment variables.
	cfg, err := envsubst.ReadFile(cfgFile)
	if err != nil {
		return fmt.Errorf("unable to read config file '%s': %w", cfgFile, err)
	}

	// Reset the global config and apply changes from the config file.
	// Report error if any of the fields from the input file are unknown.
	GlobalConfig = DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(cfg))
	dec.KnownFields(true)
	err = dec.Decode(&GlobalConfig)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to load config file '%s': %w", cfgFile, err)
	}

	return GlobalConfig.Validate()
}

func init() {
	GlobalConfig = DefaultConfig()
}
