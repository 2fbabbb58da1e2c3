package observability

import "time"

// Config configures OTLP metric and trace export.
type Config struct {
	// Enabled turns telemetry export on. When false, instruments still
	// record against the default no-op providers.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Insecure allows plaintext connections (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// MetricInterval is the metric export interval (default: 15s).
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`

	// TraceSampleRate is the trace sampling rate, 0.0 to 1.0 (default: 1.0).
	TraceSampleRate float64 `yaml:"trace_sample_rate" mapstructure:"trace_sample_rate"`

	// Environment is the deployment environment (dev, staging, prod).
	Environment string `yaml:"environment" mapstructure:"environment"`
}

// ApplyDefaults sets development-friendly defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
	if c.TraceSampleRate == 0 {
		c.TraceSampleRate = 1.0
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}
