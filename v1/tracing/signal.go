package tracing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paid-ai/paid-go/v1/semconv"
)

// SignalSpanName is the span name of a signal before routing.
const SignalSpanName = "trace.signal"

// Signal records a billable business event inside the active trace.
//
// It fails with ErrUninitialized before initialization and with ErrMissingContext
// when ctx carries no active span or the trace lacks a customer or product id.
// With enableCostTracing the collector attributes the trace's LLM cost to this
// event. data must be JSON-serializable.
func (c *Client) Signal(ctx context.Context, eventName string, enableCostTracing bool, data map[string]any) (err error) {
	if c == nil || c.cfg.APIKey == "" {
		return ErrUninitialized
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	defer func() {
		c.observeOperation("signal", eventName, time.Since(start), err, nil)
	}()

	if !trace.SpanContextFromContext(ctx).IsValid() {
		c.logger.Warn("signal outside of a trace", nil, map[string]interface{}{"event_name": eventName})
		return fmt.Errorf("%w: no active span, call Signal inside Trace", ErrMissingContext)
	}
	tc := GetContext(ctx)
	if !tc.HasAttribution() {
		return fmt.Errorf("%w: external customer id and external product id are required", ErrMissingContext)
	}

	attrs := []attribute.KeyValue{
		semconv.ExternalCustomerIDKey.String(tc.ExternalCustomerID),
		semconv.ExternalAgentIDKey.String(tc.ExternalProductID),
		semconv.EventNameKey.String(eventName),
		semconv.TokenKey.String(c.cfg.APIKey),
		semconv.EnableCostTracingKey.Bool(enableCostTracing),
	}
	if data != nil {
		b, jerr := json.Marshal(data)
		if jerr != nil {
			return fmt.Errorf("serialize signal data: %w", jerr)
		}
		attrs = append(attrs, semconv.DataKey.String(string(b)))
	}

	_, span := c.tracer.Start(ctx, SignalSpanName, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Ok, "")
	span.End()
	return nil
}

// Signal records an event through the process-wide client.
func Signal(ctx context.Context, eventName string, enableCostTracing bool, data map[string]any) error {
	return Default().Signal(ctx, eventName, enableCostTracing, data)
}
