package tracing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/paid-ai/paid-go/v1/semconv"
)

func startLLMSpan(ctx context.Context, c *Client, name string, kv ...attribute.KeyValue) trace.Span {
	_, span := c.TracerProvider().Tracer("llm-instrumentation").Start(ctx, name, trace.WithAttributes(kv...))
	return span
}

func TestTraceRootSpan(t *testing.T) {
	client, exporter := newTestClient(t)

	err := client.Trace(context.Background(), TraceOptions{
		ExternalCustomerID: "cus_1",
		ExternalProductID:  "agent_1",
		Metadata:           map[string]any{"plan": "pro"},
	}, func(ctx context.Context) error {
		tc := GetContext(ctx)
		assert.Equal(t, "cus_1", tc.ExternalCustomerID)
		assert.Equal(t, testAPIKey, tc.Token)
		assert.False(t, tc.StorePrompt)
		return nil
	})
	require.NoError(t, err)

	root := findSpan(t, exporter.GetSpans(), RootSpanName)
	a := attrs(root)
	assert.Equal(t, "cus_1", a[semconv.ExternalCustomerIDKey].AsString())
	assert.Equal(t, "agent_1", a[semconv.ExternalAgentIDKey].AsString())
	assert.Equal(t, testAPIKey, a[semconv.TokenKey].AsString())
	assert.JSONEq(t, `{"plan":"pro"}`, a[semconv.MetadataKey].AsString())
	assert.Equal(t, codes.Ok, root.Status.Code)
}

func TestTraceCustomSpanName(t *testing.T) {
	client, exporter := newTestClient(t)

	require.NoError(t, client.Trace(context.Background(), TraceOptions{
		ExternalCustomerID: "cus_1",
		SpanName:           "trace.checkout",
	}, func(context.Context) error { return nil }))

	findSpan(t, exporter.GetSpans(), "trace.checkout")
}

func TestTraceWithoutCustomerRunsUntraced(t *testing.T) {
	client, exporter := newTestClient(t)

	called := false
	err := client.Trace(context.Background(), TraceOptions{}, func(ctx context.Context) error {
		called = true
		assert.Equal(t, TracingContext{}, GetContext(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, exporter.GetSpans())
}

func TestTraceNilClientRunsCallback(t *testing.T) {
	var client *Client

	got, err := TraceWith(client, context.Background(), TraceOptions{ExternalCustomerID: "cus_1"}, func(context.Context) (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestTraceReturnsCallbackErrorUnchanged(t *testing.T) {
	client, exporter := newTestClient(t)
	errBoom := errors.New("boom")

	err := client.Trace(context.Background(), TraceOptions{ExternalCustomerID: "cus_1"}, func(context.Context) error {
		return errBoom
	})

	assert.Same(t, errBoom, err)
	root := findSpan(t, exporter.GetSpans(), RootSpanName)
	assert.Equal(t, codes.Error, root.Status.Code)
	assert.Equal(t, "boom", root.Status.Description)
}

func TestTracePanicEndsSpanAndRepanics(t *testing.T) {
	client, exporter := newTestClient(t)

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = client.Trace(context.Background(), TraceOptions{ExternalCustomerID: "cus_1"}, func(context.Context) error {
			panic("kaboom")
		})
	})

	root := findSpan(t, exporter.GetSpans(), RootSpanName)
	assert.Equal(t, codes.Error, root.Status.Code)
	require.NotEmpty(t, root.Events)
	assert.Equal(t, "exception", root.Events[0].Name)
}

func TestTraceGenericUsesDefault(t *testing.T) {
	exporter := newDefaultClient(t)

	got, err := Trace(context.Background(), TraceOptions{ExternalCustomerID: "cus_1"}, func(ctx context.Context) (string, error) {
		return GetContext(ctx).ExternalCustomerID, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "cus_1", got)
	findSpan(t, exporter.GetSpans(), RootSpanName)
}

func TestChildSpansInheritAttribution(t *testing.T) {
	client, exporter := newTestClient(t)

	require.NoError(t, client.Trace(context.Background(), TraceOptions{
		ExternalCustomerID: "cus_1",
		ExternalProductID:  "agent_1",
	}, func(ctx context.Context) error {
		_, span := client.Tracer().Start(ctx, "db.query")
		span.End()
		return nil
	}))

	child := findSpan(t, exporter.GetSpans(), "db.query")
	a := attrs(child)
	assert.Equal(t, "cus_1", a[semconv.ExternalCustomerIDKey].AsString())
	assert.Equal(t, "agent_1", a[semconv.ExternalAgentIDKey].AsString())
	root := findSpan(t, exporter.GetSpans(), RootSpanName)
	assert.Equal(t, root.SpanContext.SpanID(), child.Parent.SpanID())
}

func TestNestedTraceRestoresOuterContext(t *testing.T) {
	client, exporter := newTestClient(t)

	require.NoError(t, client.Trace(context.Background(), TraceOptions{ExternalCustomerID: "outer"}, func(ctx context.Context) error {
		if err := client.Trace(ctx, TraceOptions{ExternalCustomerID: "inner", SpanName: "trace.inner"}, func(ctx context.Context) error {
			_, span := client.Tracer().Start(ctx, "inner.work")
			span.End()
			return nil
		}); err != nil {
			return err
		}
		_, span := client.Tracer().Start(ctx, "outer.work")
		span.End()
		return nil
	}))

	spans := exporter.GetSpans()
	assert.Equal(t, "inner", attrs(findSpan(t, spans, "inner.work"))[semconv.ExternalCustomerIDKey].AsString())
	assert.Equal(t, "outer", attrs(findSpan(t, spans, "outer.work"))[semconv.ExternalCustomerIDKey].AsString())
}

func TestConcurrentTracesKeepTheirOwnAttribution(t *testing.T) {
	client, exporter := newTestClient(t)

	g, ctx := errgroup.WithContext(context.Background())
	for i := range 16 {
		g.Go(func() error {
			return client.Trace(ctx, TraceOptions{
				ExternalCustomerID: fmt.Sprintf("cus_%d", i),
				SpanName:           fmt.Sprintf("trace.%d", i),
			}, func(ctx context.Context) error {
				_, span := client.Tracer().Start(ctx, fmt.Sprintf("work.%d", i))
				span.End()
				return nil
			})
		})
	}
	require.NoError(t, g.Wait())

	spans := exporter.GetSpans()
	for i := range 16 {
		child := findSpan(t, spans, fmt.Sprintf("work.%d", i))
		root := findSpan(t, spans, fmt.Sprintf("trace.%d", i))
		assert.Equal(t, fmt.Sprintf("cus_%d", i), attrs(child)[semconv.ExternalCustomerIDKey].AsString())
		assert.Equal(t, root.SpanContext.TraceID(), child.SpanContext.TraceID())
	}
}

func TestLLMSpanNormalizedAndRouted(t *testing.T) {
	client, exporter := newTestClient(t)

	require.NoError(t, client.Trace(context.Background(), TraceOptions{
		ExternalCustomerID: "cus_1",
		ExternalProductID:  "agent_1",
	}, func(ctx context.Context) error {
		span := startLLMSpan(ctx, client, "openai.chat",
			semconv.LLMProviderKey.String("openai.chat"),
			semconv.LLMModelNameKey.String("gpt-4o"),
			semconv.GenAIUsagePromptTokensKey.Int(10),
		)
		// completion usage only arrives once the response is read
		span.SetAttributes(semconv.GenAIUsageCompletionTokensKey.Int(5))
		span.End()
		return nil
	}))

	llm := findSpan(t, exporter.GetSpans(), "paid.trace.openai.chat.signal")
	a := attrs(llm)
	assert.Equal(t, "openai", a[semconv.GenAISystemKey].AsString())
	assert.Equal(t, "gpt-4o", a[semconv.GenAIRequestModelKey].AsString())
	assert.Equal(t, int64(10), a[semconv.GenAIUsageInputTokensKey].AsInt64())
	assert.Equal(t, int64(5), a[semconv.GenAIUsageOutputTokensKey].AsInt64())
	assert.Equal(t, int64(15), a[semconv.GenAIUsageTotalTokensKey].AsInt64())
	assert.Equal(t, semconv.SpanKindLLM, a[semconv.SpanKindKey].AsString())
	assert.Equal(t, semconv.OperationChat, a[semconv.GenAIOperationNameKey].AsString())
	assert.Equal(t, "cus_1", a[semconv.ExternalCustomerIDKey].AsString())
	assert.Equal(t, "openai.chat", a[semconv.LLMProviderKey].AsString())
}

func TestLLMSpanKeepsCanonicalValues(t *testing.T) {
	client, exporter := newTestClient(t)

	span := startLLMSpan(context.Background(), client, "ai.generateText",
		semconv.AIModelIDKey.String("claude-sonnet"),
		semconv.GenAIRequestModelKey.String("claude-sonnet-4"),
		semconv.AIUsageInputTokensKey.Int(7),
		semconv.AIUsageOutputTokensKey.Int(3),
		semconv.AIUsageTotalTokensKey.Int(99),
	)
	span.End()

	a := attrs(findSpan(t, exporter.GetSpans(), "paid.trace.ai.generateText.signal"))
	assert.Equal(t, "claude-sonnet-4", a[semconv.GenAIRequestModelKey].AsString())
	assert.Equal(t, int64(99), a[semconv.GenAIUsageTotalTokensKey].AsInt64())
}

func TestLLMSpanWithoutSignalSuffix(t *testing.T) {
	client, exporter := newTestClient(t, WithGenAIOptions(WithSignalSuffix(false)))

	startLLMSpan(context.Background(), client, "anthropic.messages", semconv.LLMProviderKey.String("Anthropic")).End()

	a := attrs(findSpan(t, exporter.GetSpans(), "paid.trace.anthropic.messages"))
	assert.Equal(t, "anthropic", a[semconv.GenAISystemKey].AsString())
}

func TestNonLLMSpanIsNotRenamed(t *testing.T) {
	client, exporter := newTestClient(t)

	_, span := client.Tracer().Start(context.Background(), "http.get")
	span.End()

	s := findSpan(t, exporter.GetSpans(), "http.get")
	_, ok := attrs(s)[semconv.SpanKindKey]
	assert.False(t, ok)
}

func TestEmbeddingAndToolSpansClassified(t *testing.T) {
	client, exporter := newTestClient(t)

	startLLMSpan(context.Background(), client, "ai.embedMany", semconv.AIModelIDKey.String("text-embedding-3")).End()
	startLLMSpan(context.Background(), client, "ai.toolCall", semconv.AIToolCallNameKey.String("search")).End()

	spans := exporter.GetSpans()
	embed := attrs(findSpan(t, spans, "paid.trace.ai.embedMany.signal"))
	assert.Equal(t, semconv.SpanKindEmbedding, embed[semconv.SpanKindKey].AsString())
	assert.Equal(t, semconv.OperationEmbeddings, embed[semconv.GenAIOperationNameKey].AsString())

	tool := attrs(findSpan(t, spans, "paid.trace.ai.toolCall.signal"))
	assert.Equal(t, semconv.SpanKindTool, tool[semconv.SpanKindKey].AsString())
	assert.Equal(t, "search", tool[semconv.GenAIToolNameKey].AsString())
}

func TestPromptContentStripped(t *testing.T) {
	client, exporter := newTestClient(t)

	require.NoError(t, client.Trace(context.Background(), TraceOptions{ExternalCustomerID: "cus_1"}, func(ctx context.Context) error {
		span := startLLMSpan(ctx, client, "openai.chat",
			semconv.LLMProviderKey.String("openai"),
			attribute.String("gen_ai.prompt.0.content", "secret question"),
		)
		span.SetAttributes(attribute.String("gen_ai.completion.0.content", "secret answer"))
		span.AddEvent("gen_ai.content.prompt", trace.WithAttributes(
			semconv.GenAIPromptKey.String("secret"),
			attribute.String("kept", "yes"),
		))
		span.End()
		return nil
	}))

	llm := findSpan(t, exporter.GetSpans(), "paid.trace.openai.chat.signal")
	for _, kv := range llm.Attributes {
		assert.False(t, semconv.IsPromptKey(kv.Key), "unexpected %s", kv.Key)
	}
	require.Len(t, llm.Events, 1)
	require.Len(t, llm.Events[0].Attributes, 1)
	assert.Equal(t, attribute.Key("kept"), llm.Events[0].Attributes[0].Key)
}

func TestPromptContentKeptWithConsent(t *testing.T) {
	client, exporter := newTestClient(t)
	store := true

	require.NoError(t, client.Trace(context.Background(), TraceOptions{
		ExternalCustomerID: "cus_1",
		StorePrompt:        &store,
	}, func(ctx context.Context) error {
		span := startLLMSpan(ctx, client, "openai.chat", attribute.String("gen_ai.prompt.0.content", "hello"))
		span.SetAttributes(attribute.String("gen_ai.completion.0.content", "hi"))
		span.End()
		return nil
	}))

	a := attrs(findSpan(t, exporter.GetSpans(), "paid.trace.openai.chat.signal"))
	assert.Equal(t, "hello", a["gen_ai.prompt.0.content"].AsString())
	assert.Equal(t, "hi", a["gen_ai.completion.0.content"].AsString())
}

func TestPromptContentStrippedWithoutBinding(t *testing.T) {
	client, exporter := newTestClient(t)

	startLLMSpan(context.Background(), client, "openai.chat", attribute.String("gen_ai.prompt.0.content", "hello")).End()

	a := attrs(findSpan(t, exporter.GetSpans(), "paid.trace.openai.chat.signal"))
	_, ok := a["gen_ai.prompt.0.content"]
	assert.False(t, ok)
	_, ok = a[semconv.ExternalCustomerIDKey]
	assert.False(t, ok)
}
