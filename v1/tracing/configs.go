package tracing

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultCollectorEndpoint = "https://collector.agentpaid.io:4318/v1/traces"
	DefaultServiceName       = "paid-go"

	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// Config is read once when tracing is initialized and never re-read.
type Config struct {
	// APIKey authorizes span ingestion and is attached to attributed spans as "token".
	// Tracing stays disabled without it.
	APIKey string `yaml:"api_key" envconfig:"PAID_API_KEY"`

	// CollectorEndpoint is the full OTLP/HTTP traces URL of the billing collector.
	//
	// Default: "https://collector.agentpaid.io:4318/v1/traces"
	CollectorEndpoint string `yaml:"collector_endpoint" envconfig:"PAID_OTEL_COLLECTOR_ENDPOINT" default:"https://collector.agentpaid.io:4318/v1/traces"`

	// Exporter selects the span exporter: "otlp", "stdout" (debugging) or "none".
	//
	// Default: "otlp"
	Exporter string `yaml:"exporter" envconfig:"PAID_OTEL_EXPORTER" default:"otlp"`

	// Enabled turns the whole tracing layer on or off.
	//
	// Default: true
	Enabled bool `yaml:"enabled" envconfig:"PAID_ENABLED" default:"true"`

	// LogLevel is the SDK log verbosity: "debug", "info", "warning" or "error".
	LogLevel string `yaml:"log_level" envconfig:"PAID_LOG_LEVEL" default:"info"`

	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"PAID_SERVICE_NAME" default:"paid-go"`

	// StorePromptDefault applies to traces whose options leave StorePrompt unset.
	//
	// Default: false
	StorePromptDefault bool `yaml:"store_prompt" envconfig:"PAID_STORE_PROMPT" default:"false"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		CollectorEndpoint: DefaultCollectorEndpoint,
		Exporter:          ExporterOTLP,
		Enabled:           true,
		LogLevel:          "info",
		ServiceName:       DefaultServiceName,
	}
}

// LoadConfig reads the PAID_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load tracing config: %w", err)
	}
	return cfg, nil
}
