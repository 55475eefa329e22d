// Package observability defines the hook components use to report what they did.
//
// Components hold an optional Observer and call ObserveOperation after each unit of
// work. A nil Observer means nothing is reported. The metrics package ships a
// Prometheus-backed implementation.
package observability

import "time"

// Observer receives one OperationContext per completed operation.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "tracing" or "instrumentation".
	Component string

	// Operation is the action performed, e.g. "trace", "signal", "span.process".
	Operation string

	// Resource is the primary object of the operation (event name, library, processor).
	Resource string

	// SubResource adds detail such as the span kind.
	SubResource string

	Duration time.Duration

	// Error is nil on success.
	Error error

	// Size is an operation-specific count, e.g. the number of filtered attributes.
	Size int64

	Metadata map[string]interface{}
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
