package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"

	"github.com/paid-ai/paid-go/v1/observability"
)

// TracerProvider wraps another provider and runs the billing span processors on
// every recording span it creates. Installed as the global provider it covers
// instrumentation libraries as well as SDK code.
type TracerProvider struct {
	embedded.TracerProvider

	delegate trace.TracerProvider
	pipeline *pipeline
}

var _ trace.TracerProvider = (*TracerProvider)(nil)

// NewTracerProvider wraps delegate. Processors run in the given order.
// logger and observer may be nil.
func NewTracerProvider(delegate trace.TracerProvider, logger Logger, observer observability.Observer, processors ...SpanProcessor) *TracerProvider {
	return &TracerProvider{
		delegate: delegate,
		pipeline: newPipeline(orNop(logger), observer, processors...),
	}
}

// Tracer implements trace.TracerProvider.
func (p *TracerProvider) Tracer(name string, options ...trace.TracerOption) trace.Tracer {
	return &tracer{
		delegate: p.delegate.Tracer(name, options...),
		provider: p,
	}
}

type tracer struct {
	embedded.Tracer

	delegate trace.Tracer
	provider *TracerProvider
}

// Start creates the delegate span without its start attributes, which are kept
// in the decorator's buffer instead so processors can still remove them.
func (t *tracer) Start(ctx context.Context, name string, options ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(options...)

	startOpts := []trace.SpanStartOption{trace.WithSpanKind(cfg.SpanKind())}
	if links := cfg.Links(); len(links) > 0 {
		startOpts = append(startOpts, trace.WithLinks(links...))
	}
	if ts := cfg.Timestamp(); !ts.IsZero() {
		startOpts = append(startOpts, trace.WithTimestamp(ts))
	}
	if cfg.NewRoot() {
		startOpts = append(startOpts, trace.WithNewRoot())
	}

	ctx, span := t.delegate.Start(ctx, name, startOpts...)
	if !span.IsRecording() {
		return ctx, span
	}

	decorated := newDecoratedSpan(span, t.provider, name, GetContext(ctx), cfg.Attributes())
	ctx = trace.ContextWithSpan(ctx, decorated)
	t.provider.pipeline.onStart(ctx, decorated)
	return ctx, decorated
}
