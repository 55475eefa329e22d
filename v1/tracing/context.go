package tracing

import (
	"context"
	"maps"
)

// TracingContext is the billing identity bound to one traced operation.
type TracingContext struct {
	// ExternalCustomerID identifies the paying customer. Required for attribution.
	ExternalCustomerID string

	// ExternalProductID identifies the metered product or agent. Required for signals.
	ExternalProductID string

	// Token is the API key that authorizes ingestion of the spans.
	Token string

	// StorePrompt allows prompt and completion content to stay on spans.
	StorePrompt bool

	// Metadata is caller-supplied and passed through untouched.
	Metadata map[string]any
}

// HasAttribution reports whether both customer and product are known.
func (tc TracingContext) HasAttribution() bool {
	return tc.ExternalCustomerID != "" && tc.ExternalProductID != ""
}

// Clone returns a copy whose Metadata map is not shared with tc.
func (tc TracingContext) Clone() TracingContext {
	if tc.Metadata != nil {
		tc.Metadata = maps.Clone(tc.Metadata)
	}
	return tc
}

type tracingContextKey struct{}

// GetContext returns the TracingContext bound to ctx, or the zero value when none is.
func GetContext(ctx context.Context) TracingContext {
	if ctx == nil {
		return TracingContext{}
	}
	tc, _ := ctx.Value(tracingContextKey{}).(TracingContext)
	return tc
}

// WithTracingContext returns a child of ctx carrying tc. ctx itself is not modified,
// so code still holding ctx keeps seeing the previous binding (or none).
func WithTracingContext(ctx context.Context, tc TracingContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, tracingContextKey{}, tc.Clone())
}

// RunWithContext binds tc for the dynamic extent of fn and returns fn's result.
// Once fn returns, errors or panics, the caller's ctx is exactly as before.
func RunWithContext[T any](ctx context.Context, tc TracingContext, fn func(ctx context.Context) (T, error)) (T, error) {
	return fn(WithTracingContext(ctx, tc))
}
