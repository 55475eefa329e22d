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

// RootSpanName is the default name of the span opened by Trace.
const RootSpanName = "trace"

// TraceOptions describes one billable operation.
type TraceOptions struct {
	// ExternalCustomerID is required. Without it the callback runs untraced.
	ExternalCustomerID string

	// ExternalProductID is optional for tracing but required by Signal.
	ExternalProductID string

	// StorePrompt keeps prompt content on spans. Nil falls back to Config.StorePromptDefault.
	StorePrompt *bool

	// Metadata is attached to the root span as JSON.
	Metadata map[string]any

	// SpanName overrides RootSpanName.
	SpanName string
}

// Trace runs fn inside a root span attributed to opts.ExternalCustomerID. Every
// span started from the ctx passed to fn inherits the attribution.
//
// fn's error is returned unchanged and recorded on the span. A panic in fn is
// recorded, the span is ended and the panic is re-raised. With a nil client, or
// without a customer id, fn runs with the caller's ctx and nothing is recorded.
//
// Example:
//
//	err := client.Trace(ctx, tracing.TraceOptions{
//		ExternalCustomerID: "cus_42",
//		ExternalProductID:  "support-agent",
//	}, func(ctx context.Context) error {
//		_, err := llm.Chat.Completions.New(ctx, params)
//		return err
//	})
func (c *Client) Trace(ctx context.Context, opts TraceOptions, fn func(ctx context.Context) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c == nil {
		return fn(ctx)
	}
	if opts.ExternalCustomerID == "" {
		c.logger.Warn("trace without external customer id, running untraced", nil)
		return fn(ctx)
	}

	storePrompt := c.cfg.StorePromptDefault
	if opts.StorePrompt != nil {
		storePrompt = *opts.StorePrompt
	}
	ctx = WithTracingContext(ctx, TracingContext{
		ExternalCustomerID: opts.ExternalCustomerID,
		ExternalProductID:  opts.ExternalProductID,
		Token:              c.cfg.APIKey,
		StorePrompt:        storePrompt,
		Metadata:           opts.Metadata,
	})

	name := opts.SpanName
	if name == "" {
		name = RootSpanName
	}
	attrs := []attribute.KeyValue{
		semconv.ExternalCustomerIDKey.String(opts.ExternalCustomerID),
		semconv.TokenKey.String(c.cfg.APIKey),
	}
	if opts.ExternalProductID != "" {
		attrs = append(attrs, semconv.ExternalAgentIDKey.String(opts.ExternalProductID))
	}
	if len(opts.Metadata) > 0 {
		if b, jerr := json.Marshal(opts.Metadata); jerr != nil {
			c.logger.Warn("dropping trace metadata that is not JSON-serializable", jerr)
		} else {
			attrs = append(attrs, semconv.MetadataKey.String(string(b)))
		}
	}

	ctx, span := c.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			perr := fmt.Errorf("panic: %v", r)
			span.RecordError(perr, trace.WithStackTrace(true))
			span.SetStatus(codes.Error, perr.Error())
			span.End()
			c.observeOperation("trace", name, time.Since(start), perr, nil)
			panic(r)
		}
	}()

	err = fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
	c.observeOperation("trace", name, time.Since(start), err, nil)
	return err
}

// Trace runs fn through the process-wide client and returns its result.
func Trace[T any](ctx context.Context, opts TraceOptions, fn func(ctx context.Context) (T, error)) (T, error) {
	return TraceWith(Default(), ctx, opts, fn)
}

// TraceWith is Trace on an explicit client.
func TraceWith[T any](c *Client, ctx context.Context, opts TraceOptions, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := c.Trace(ctx, opts, func(ctx context.Context) error {
		var ferr error
		result, ferr = fn(ctx)
		return ferr
	})
	return result, err
}
