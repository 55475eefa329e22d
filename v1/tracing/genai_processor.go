package tracing

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/paid-ai/paid-go/v1/semconv"
)

// GenAIProcessor normalizes LLM spans from any supported instrumentation onto the
// gen_ai.* convention, fills in token totals, span kind and operation name, and
// routes the span to the collector.
//
// It runs at start and again at end because some libraries only write their
// attributes when the call completes. Every step only fills what is missing, so
// running it twice changes nothing. The one exception is span kind and operation
// name: when the processor inferred them at start, they are inferred again at end
// so that a late ai.operationId still decides them.
type GenAIProcessor struct {
	signalSuffix bool
	inferred     sync.Map // MutableSpan -> inference, between OnStart and OnEnd
}

// inference records which classification attributes the processor wrote itself.
type inference struct {
	kind      bool
	operation bool
}

var _ SpanProcessor = (*GenAIProcessor)(nil)

// GenAIOption configures a GenAIProcessor.
type GenAIOption func(*GenAIProcessor)

// WithSignalSuffix controls whether routed LLM spans also get the ".signal" suffix.
// Enabled by default: the collector bills those spans as signals.
func WithSignalSuffix(enabled bool) GenAIOption {
	return func(p *GenAIProcessor) {
		p.signalSuffix = enabled
	}
}

func NewGenAIProcessor(opts ...GenAIOption) *GenAIProcessor {
	p := &GenAIProcessor{signalSuffix: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *GenAIProcessor) OnStart(_ context.Context, span MutableSpan) {
	p.process(span)
}

func (p *GenAIProcessor) OnEnd(span MutableSpan) {
	p.process(span)
	p.inferred.Delete(span)
}

func (p *GenAIProcessor) process(span MutableSpan) {
	if !IsLLMSpan(span) {
		return
	}
	normalizeValues(span)
	p.classify(span)
	rename(span, semconv.RoutedName(span.Name(), p.signalSuffix))
}

func (p *GenAIProcessor) classify(span MutableSpan) {
	var prev inference
	if v, ok := p.inferred.Load(span); ok {
		prev = v.(inference)
	}
	kind, operation := classification(span, prev.operation)

	var now inference
	now.kind = setInferred(span, kind, prev.kind)
	now.operation = setInferred(span, operation, prev.operation)
	if now.kind || now.operation {
		p.inferred.Store(span, now)
	}
}

// setInferred writes kv when the key is absent or holds a value inferred earlier,
// and reports whether kv is now an inferred value.
func setInferred(span MutableSpan, kv attribute.KeyValue, inferred bool) bool {
	if _, ok := span.Attribute(kv.Key); ok && !inferred {
		return false
	}
	span.SetAttributes(kv)
	return true
}

// IsLLMSpan reports whether span carries a known LLM attribute or LLM span name.
func IsLLMSpan(span MutableSpan) bool {
	for _, k := range semconv.MarkerKeys {
		if _, ok := span.Attribute(k); ok {
			return true
		}
	}
	return semconv.MatchesLLMName(span.Name())
}

// NormalizeAttributes fills the canonical gen_ai.* attributes of span from the
// provider-specific ones. Canonical values already present are never overwritten,
// apart from gen_ai.system being rewritten to its canonical spelling.
func NormalizeAttributes(span MutableSpan) {
	normalizeValues(span)
	kind, operation := classification(span, false)
	setIfAbsent(span, kind)
	setIfAbsent(span, operation)
}

func normalizeValues(span MutableSpan) {
	for _, m := range semconv.AttributeMappings {
		if _, ok := span.Attribute(m.To); ok {
			continue
		}
		v, ok := span.Attribute(m.From)
		if !ok {
			continue
		}
		if semconv.IsTokenKey(m.To) {
			n, ok := semconv.TokenCount(v)
			if !ok {
				continue
			}
			v = attribute.Int64Value(n)
		}
		span.SetAttributes(attribute.KeyValue{Key: m.To, Value: v})
	}

	if v, ok := span.Attribute(semconv.GenAISystemKey); ok && v.Type() == attribute.STRING {
		if canonical := semconv.CanonicalProvider(v.AsString()); canonical != v.AsString() {
			span.SetAttributes(semconv.GenAISystemKey.String(canonical))
		}
	}

	if _, ok := span.Attribute(semconv.GenAIUsageTotalTokensKey); !ok {
		in, okIn := tokenAttribute(span, semconv.GenAIUsageInputTokensKey)
		out, okOut := tokenAttribute(span, semconv.GenAIUsageOutputTokensKey)
		if okIn && okOut {
			if total, ok := semconv.TotalTokens(in, out); ok {
				span.SetAttributes(semconv.GenAIUsageTotalTokensKey.Int64(total))
			}
		}
	}
}

// classification derives the span kind and gen_ai.operation.name of span. An
// inferred operation name is not a source for its own recomputation.
func classification(span MutableSpan, inferredOperation bool) (kind, operation attribute.KeyValue) {
	var op string
	if !inferredOperation {
		op = stringAttribute(span, semconv.GenAIOperationNameKey)
	}
	if op == "" {
		op = stringAttribute(span, semconv.AIOperationIDKey)
	}
	return semconv.SpanKindKey.String(semconv.ClassifySpanKind(span.Name(), op)),
		semconv.GenAIOperationNameKey.String(semconv.InferOperationName(span.Name(), op))
}

func tokenAttribute(span MutableSpan, key attribute.Key) (int64, bool) {
	v, ok := span.Attribute(key)
	if !ok {
		return 0, false
	}
	return semconv.TokenCount(v)
}

func stringAttribute(span MutableSpan, key attribute.Key) string {
	v, ok := span.Attribute(key)
	if !ok || v.Type() != attribute.STRING {
		return ""
	}
	return v.AsString()
}
