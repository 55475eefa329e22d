package tracing

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/paid-ai/paid-go/v1/logger"
	"github.com/paid-ai/paid-go/v1/observability"
)

const testAPIKey = "pk_test_123"

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.APIKey = testAPIKey
	cfg.Exporter = ExporterNone
	return cfg
}

func newTestClient(t *testing.T, opts ...Option) (*Client, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	client, err := NewClient(testConfig(), logger.NewNop(), append([]Option{WithSyncer(exporter)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Shutdown(context.Background()) })
	return client, exporter
}

func findSpan(t *testing.T, spans tracetest.SpanStubs, name string) tracetest.SpanStub {
	t.Helper()
	for _, s := range spans {
		if s.Name == name {
			return s
		}
	}
	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name)
	}
	require.Failf(t, "span not found", "want %q, have %v", name, names)
	return tracetest.SpanStub{}
}

func attrs(s tracetest.SpanStub) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(s.Attributes))
	for _, kv := range s.Attributes {
		out[kv.Key] = kv.Value
	}
	return out
}

// TestObserver records every reported operation.
type TestObserver struct {
	mu         sync.Mutex
	operations []observability.OperationContext
}

func (t *TestObserver) ObserveOperation(ctx observability.OperationContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = append(t.operations, ctx)
}

func (t *TestObserver) GetOperations() []observability.OperationContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]observability.OperationContext, len(t.operations))
	copy(out, t.operations)
	return out
}

// processorFunc adapts two functions to SpanProcessor.
type processorFunc struct {
	onStart func(ctx context.Context, span MutableSpan)
	onEnd   func(span MutableSpan)
}

func (p processorFunc) OnStart(ctx context.Context, span MutableSpan) {
	if p.onStart != nil {
		p.onStart(ctx, span)
	}
}

func (p processorFunc) OnEnd(span MutableSpan) {
	if p.onEnd != nil {
		p.onEnd(span)
	}
}
