package instrumentation

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config controls auto-instrumentation when it is started by the FX module.
type Config struct {
	// Enabled runs AutoInstrument on application start.
	//
	// Default: true
	Enabled bool `yaml:"enabled" envconfig:"PAID_AUTO_INSTRUMENT" default:"true"`

	// Libraries restricts instrumentation to a comma-separated list such as
	// "openai,anthropic". Empty means every known library.
	Libraries []string `yaml:"libraries" envconfig:"PAID_INSTRUMENT_LIBRARIES"`
}

// LoadConfig reads PAID_AUTO_INSTRUMENT and PAID_INSTRUMENT_LIBRARIES.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load instrumentation config: %w", err)
	}
	return cfg, nil
}

// SelectedLibraries returns the configured libraries, normalized.
func (c Config) SelectedLibraries() []Library {
	var libs []Library
	for _, name := range c.Libraries {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			libs = append(libs, Library(name))
		}
	}
	return libs
}
