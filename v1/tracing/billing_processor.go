package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/paid-ai/paid-go/v1/semconv"
)

// BillingProcessor stamps every span with the customer and product of the ambient
// TracingContext, strips prompt content unless the trace allows it, and routes
// signal spans to the collector.
type BillingProcessor struct{}

var _ SpanProcessor = (*BillingProcessor)(nil)

func NewBillingProcessor() *BillingProcessor {
	return &BillingProcessor{}
}

func (p *BillingProcessor) OnStart(_ context.Context, span MutableSpan) {
	tc := span.TracingContext()

	if tc.ExternalCustomerID != "" {
		setIfAbsent(span, semconv.ExternalCustomerIDKey.String(tc.ExternalCustomerID))
	}
	if tc.ExternalProductID != "" {
		setIfAbsent(span, semconv.ExternalAgentIDKey.String(tc.ExternalProductID))
	}

	// no binding means no consent either
	if !tc.StorePrompt {
		span.FilterAttributes(semconv.IsPromptKey)
	}

	if _, ok := span.Attribute(semconv.EventNameKey); ok {
		rename(span, semconv.RoutedName(span.Name(), true))
	}
}

// OnEnd has nothing to do: the filter engaged at start rejects every later write.
func (p *BillingProcessor) OnEnd(MutableSpan) {}

func setIfAbsent(span MutableSpan, kv attribute.KeyValue) bool {
	if _, ok := span.Attribute(kv.Key); ok {
		return false
	}
	span.SetAttributes(kv)
	return true
}

func rename(span MutableSpan, name string) {
	if span.Name() != name {
		span.SetName(name)
	}
}
