package instrumentation

import "errors"

var (
	// ErrLibraryUnavailable means no adapter for the library is linked into the binary.
	ErrLibraryUnavailable = errors.New("instrumentation: library not available")

	// ErrUnsupportedModule is returned by InstrumentModule for references it cannot hook.
	ErrUnsupportedModule = errors.New("instrumentation: unsupported module reference")

	// ErrAlreadyRegistered is returned when a second adapter claims the same library.
	ErrAlreadyRegistered = errors.New("instrumentation: library already registered")

	// ErrNilInstrumentor is returned when registering a nil adapter.
	ErrNilInstrumentor = errors.New("instrumentation: nil instrumentor")
)

// IsLibraryUnavailable checks if the error reports a missing adapter.
func IsLibraryUnavailable(err error) bool {
	return errors.Is(err, ErrLibraryUnavailable)
}

// IsUnsupportedModule checks if the error reports an unsupported module reference.
func IsUnsupportedModule(err error) bool {
	return errors.Is(err, ErrUnsupportedModule)
}
