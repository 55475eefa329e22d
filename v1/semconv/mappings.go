package semconv

import (
	"math"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
)

// AttributeMapping copies the value of From into To when To is not yet set.
type AttributeMapping struct {
	From attribute.Key
	To   attribute.Key
}

// AttributeMappings is the provider → canonical table. Order matters only when two
// provider keys feed the same canonical key: the first one present wins.
var AttributeMappings = []AttributeMapping{
	{From: AIModelIDKey, To: GenAIRequestModelKey},
	{From: LLMModelNameKey, To: GenAIRequestModelKey},
	{From: AIModelProviderKey, To: GenAISystemKey},
	{From: LLMProviderKey, To: GenAISystemKey},
	{From: AIResponseModelKey, To: GenAIResponseModelKey},
	{From: AIResponseIDKey, To: GenAIResponseIDKey},
	{From: AIResponseFinishReasonKey, To: GenAIResponseFinishReasonsKey},

	{From: AIUsagePromptTokensKey, To: GenAIUsageInputTokensKey},
	{From: AIUsageInputTokensKey, To: GenAIUsageInputTokensKey},
	{From: GenAIUsagePromptTokensKey, To: GenAIUsageInputTokensKey},
	{From: LLMTokenCountPromptKey, To: GenAIUsageInputTokensKey},

	{From: AIUsageCompletionTokensKey, To: GenAIUsageOutputTokensKey},
	{From: AIUsageOutputTokensKey, To: GenAIUsageOutputTokensKey},
	{From: GenAIUsageCompletionTokensKey, To: GenAIUsageOutputTokensKey},
	{From: LLMTokenCountCompletionKey, To: GenAIUsageOutputTokensKey},

	{From: AIUsageTotalTokensKey, To: GenAIUsageTotalTokensKey},
	{From: LLMUsageTotalTokensKey, To: GenAIUsageTotalTokensKey},
	{From: LLMTokenCountTotalKey, To: GenAIUsageTotalTokensKey},

	{From: AIToolCallNameKey, To: GenAIToolNameKey},
	{From: AIToolCallIDKey, To: GenAIToolCallIDKey},
}

// MarkerKeys identify a span as coming from an LLM client library.
var MarkerKeys = []attribute.Key{
	AIModelIDKey,
	AIModelProviderKey,
	AIOperationIDKey,
	GenAISystemKey,
	GenAIRequestModelKey,
	LLMProviderKey,
	LLMModelNameKey,
}

// tokenKeys are the canonical keys whose values are normalized to int64.
var tokenKeys = map[attribute.Key]struct{}{
	GenAIUsageInputTokensKey:  {},
	GenAIUsageOutputTokensKey: {},
	GenAIUsageTotalTokensKey:  {},
}

// IsTokenKey reports whether key is a canonical token-count key.
func IsTokenKey(key attribute.Key) bool {
	_, ok := tokenKeys[key]
	return ok
}

// TokenCount reads a non-negative integer token count from v. Integral float64
// values and decimal strings are accepted since some instrumentations emit them.
func TokenCount(v attribute.Value) (int64, bool) {
	switch v.Type() {
	case attribute.INT64:
		n := v.AsInt64()
		return n, n >= 0
	case attribute.FLOAT64:
		f := v.AsFloat64()
		if f < 0 || f != math.Trunc(f) || f > math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case attribute.STRING:
		n, err := strconv.ParseInt(v.AsString(), 10, 64)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// TotalTokens returns input+output, reporting false on overflow.
func TotalTokens(input, output int64) (int64, bool) {
	if input < 0 || output < 0 || input > math.MaxInt64-output {
		return 0, false
	}
	return input + output, true
}
