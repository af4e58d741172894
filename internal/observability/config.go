package observability

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete observability configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default observability configuration
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Tracing: TracingConfig{
			Enabled:        false,
			Exporter:       "otlp",
			OTLPEndpoint:   "localhost:4318",
			SampleRate:     1.0,
			ServiceName:    "chameleon",
			ServiceVersion: "1.0.0",
		},
	}
}

// LoadConfig reads the observability section of configPath and merges it over
// the defaults. An empty path or a missing file yields the defaults.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig struct {
		Observability struct {
			Logging LoggingConfig `yaml:"logging"`
			Metrics struct {
				Enabled *bool `yaml:"enabled"`
			} `yaml:"metrics"`
			Tracing TracingConfig `yaml:"tracing"`
		} `yaml:"observability"`
	}

	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}

	obs := fileConfig.Observability
	if obs.Logging.Level != "" {
		config.Logging.Level = obs.Logging.Level
	}
	if obs.Logging.Format != "" {
		config.Logging.Format = obs.Logging.Format
	}

	if obs.Metrics.Enabled != nil {
		config.Metrics.Enabled = *obs.Metrics.Enabled
	}

	// Tracing config - always override the Enabled flag from file
	config.Tracing.Enabled = obs.Tracing.Enabled
	if obs.Tracing.Exporter != "" {
		config.Tracing.Exporter = obs.Tracing.Exporter
	}
	if obs.Tracing.OTLPEndpoint != "" {
		config.Tracing.OTLPEndpoint = obs.Tracing.OTLPEndpoint
	}
	if obs.Tracing.ZipkinEndpoint != "" {
		config.Tracing.ZipkinEndpoint = obs.Tracing.ZipkinEndpoint
	}
	// A sample rate of exactly 0.0 cannot be expressed here; disable tracing instead.
	if obs.Tracing.SampleRate > 0 && obs.Tracing.SampleRate <= 1.0 {
		config.Tracing.SampleRate = obs.Tracing.SampleRate
	}
	if obs.Tracing.ServiceName != "" {
		config.Tracing.ServiceName = obs.Tracing.ServiceName
	}
	if obs.Tracing.ServiceVersion != "" {
		config.Tracing.ServiceVersion = obs.Tracing.ServiceVersion
	}

	return config, nil
}

// Observability bundles the logger, metrics and tracer built from a Config.
type Observability struct {
	Logger  *Logger
	Metrics *MetricsCollector
	Tracer  *TracerProvider
}

// New builds every observability component described by config.
func New(config Config) (*Observability, error) {
	logger := NewLogger(LogConfig{
		Level:  config.Logging.Level,
		Format: config.Logging.Format,
	})

	metrics, err := NewMetricsCollector(config.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics collector: %w", err)
	}

	tracer, err := NewTracerProvider(config.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	return &Observability{
		Logger:  logger,
		Metrics: metrics,
		Tracer:  tracer,
	}, nil
}

// Shutdown stops the metrics and tracing providers.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}
	return errors.Join(o.Metrics.Shutdown(ctx), o.Tracer.Shutdown(ctx))
}
