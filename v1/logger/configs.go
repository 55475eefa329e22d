package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// DefaultServiceName is attached to every log entry when Config.ServiceName is empty.
const DefaultServiceName = "paid-go"

// Config defines how the SDK logger is built.
type Config struct {
	// Level selects the minimum severity that is written.
	// Accepted values: "debug", "info", "warning", "error". Anything else falls back to info.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "level" key
	//   - Environment variable PAID_LOG_LEVEL
	Level string `yaml:"level" envconfig:"PAID_LOG_LEVEL"`

	// ServiceName is written as the "service" field of each entry.
	ServiceName string `yaml:"service_name" envconfig:"PAID_SERVICE_NAME"`
}
