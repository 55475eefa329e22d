package tracing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/paid-ai/paid-go/v1/observability"
	"github.com/paid-ai/paid-go/v1/semconv"
)

// MutableSpan is the view of a live span handed to span processors.
// Unlike an ended OpenTelemetry span it can still be renamed and have attributes
// removed, up to and including OnEnd.
type MutableSpan interface {
	Name() string
	SetName(name string)

	Attribute(key attribute.Key) (attribute.Value, bool)
	Attributes() []attribute.KeyValue
	SetAttributes(kv ...attribute.KeyValue)
	DeleteAttributes(keys ...attribute.Key) int

	// FilterAttributes removes every attribute whose key matches drop and keeps
	// rejecting matching keys, including event attributes, until the span ends.
	// It returns how many attributes were removed now.
	FilterAttributes(drop func(attribute.Key) bool) int

	SpanContext() trace.SpanContext

	// TracingContext is the binding that was active when the span started.
	TracingContext() TracingContext
}

// SpanProcessor observes span lifecycle and may mutate the span.
//
// OnStart runs right after the span is created, in the goroutine that created it.
// OnEnd runs right before the span is handed to the exporters.
// Implementations must be safe for concurrent use across spans.
type SpanProcessor interface {
	OnStart(ctx context.Context, span MutableSpan)
	OnEnd(span MutableSpan)
}

// Flusher is implemented by processors holding state that must be drained.
type Flusher interface {
	ForceFlush(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// pipeline runs processors in registration order and contains their panics.
type pipeline struct {
	processors []SpanProcessor
	logger     Logger
	observer   observability.Observer
}

func newPipeline(logger Logger, observer observability.Observer, processors ...SpanProcessor) *pipeline {
	return &pipeline{
		processors: processors,
		logger:     logger,
		observer:   observer,
	}
}

func (p *pipeline) onStart(ctx context.Context, span *decoratedSpan) {
	for _, proc := range p.processors {
		p.safely("on_start", proc, func() { proc.OnStart(ctx, span) })
	}
}

func (p *pipeline) onEnd(span *decoratedSpan) {
	start := time.Now()
	for _, proc := range p.processors {
		p.safely("on_end", proc, func() { proc.OnEnd(span) })
	}
	p.observeSpan(span, time.Since(start))
}

// safely keeps a failing processor from breaking the caller's span.
func (p *pipeline) safely(hook string, proc SpanProcessor, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("span processor failed", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"processor": fmt.Sprintf("%T", proc),
				"hook":      hook,
			})
		}
	}()
	fn()
}

func (p *pipeline) observeSpan(span *decoratedSpan, duration time.Duration) {
	if p.observer == nil {
		return
	}
	kind := "untyped"
	if v, ok := span.Attribute(semconv.SpanKindKey); ok {
		kind = v.AsString()
	}
	system := ""
	if v, ok := span.Attribute(semconv.GenAISystemKey); ok {
		system = v.AsString()
	}
	p.observer.ObserveOperation(observability.OperationContext{
		Component:   componentName,
		Operation:   "span.process",
		Resource:    kind,
		SubResource: system,
		Duration:    duration,
		Size:        int64(span.suppressedCount()),
	})
}

func (p *pipeline) forceFlush(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, proc := range p.processors {
		if f, ok := proc.(Flusher); ok {
			g.Go(func() error { return f.ForceFlush(ctx) })
		}
	}
	return g.Wait()
}

func (p *pipeline) shutdown(ctx context.Context) error {
	var errs []error
	for _, proc := range p.processors {
		if f, ok := proc.(Flusher); ok {
			if err := f.Shutdown(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
