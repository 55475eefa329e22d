package instrumentation

import "go.opentelemetry.io/otel/trace"

// Library identifies an LLM client library.
type Library string

const (
	OpenAI    Library = "openai"
	Anthropic Library = "anthropic"
	Mistral   Library = "mistral"
	Bedrock   Library = "bedrock"
	VercelAI  Library = "vercel-ai"
	Gemini    Library = "gemini"
)

// KnownLibraries is the candidate set AutoInstrument tries when none are selected.
var KnownLibraries = []Library{OpenAI, Anthropic, Mistral, Bedrock, VercelAI, Gemini}

// Instrumentor hooks one LLM client library into a tracer provider.
//
//go:generate mockgen -source=interface.go -destination=mock_instrumentor.go -package=instrumentation
type Instrumentor interface {
	Library() Library

	// Instrument enables tracing for every client of the library in the process.
	Instrument(tp trace.TracerProvider) error

	// InstrumentModule enables tracing for one client reference, for setups where
	// process-wide hooks cannot reach the client. Unsupported references yield
	// ErrUnsupportedModule.
	InstrumentModule(tp trace.TracerProvider, module any) error
}

// Logger is the logging contract this package needs.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}
