package tracing

import "errors"

var (
	// ErrUninitialized is returned by Signal when tracing was never initialized with a valid API key.
	ErrUninitialized = errors.New("tracing: not initialized, call tracing.Initialize with a valid API key first")

	// ErrMissingContext is returned by Signal outside an active trace, or when the
	// trace lacks the external customer or product id.
	ErrMissingContext = errors.New("tracing: missing trace context")

	// ErrMissingToken is returned when the configuration carries no API key.
	ErrMissingToken = errors.New("tracing: missing API key")

	// ErrTracingDisabled is returned when the configuration turns tracing off.
	ErrTracingDisabled = errors.New("tracing: disabled by configuration")

	// ErrAlreadyInitialized is returned when a second, different client is installed as default.
	ErrAlreadyInitialized = errors.New("tracing: already initialized")

	// ErrUnsupportedExporter is returned for an unknown Config.Exporter value.
	ErrUnsupportedExporter = errors.New("tracing: unsupported exporter")
)

// IsUninitializedError checks if the error reports missing initialization.
func IsUninitializedError(err error) bool {
	return errors.Is(err, ErrUninitialized)
}

// IsMissingContextError checks if the error reports a missing or partial trace context.
func IsMissingContextError(err error) bool {
	return errors.Is(err, ErrMissingContext)
}
