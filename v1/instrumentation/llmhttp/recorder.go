package llmhttp

import (
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paid-ai/paid-go/v1/semconv"
)

// responseState accumulates what a response, or a stream of events, says about the call.
type responseState struct {
	dialect *Dialect

	model        string
	id           string
	finishReason string
	completion   strings.Builder

	input, output, total          int64
	hasInput, hasOutput, hasTotal bool
}

func newResponseState(d *Dialect) *responseState {
	return &responseState{dialect: d}
}

// apply reads one JSON payload. Later payloads override earlier values, which is
// how streaming providers report cumulative usage.
func (s *responseState) apply(payload []byte, stream bool) {
	if !gjson.ValidBytes(payload) {
		return
	}
	d := s.dialect
	if r := d.ResponseModel.Get(payload); r.Exists() && r.String() != "" {
		s.model = r.String()
	}
	if r := d.ResponseID.Get(payload); r.Exists() && r.String() != "" {
		s.id = r.String()
	}
	if r := d.FinishReason.Get(payload); r.Exists() && r.String() != "" {
		s.finishReason = r.String()
	}
	if r := d.InputTokens.Get(payload); r.Exists() {
		s.input, s.hasInput = r.Int(), true
	}
	if r := d.OutputTokens.Get(payload); r.Exists() {
		s.output, s.hasOutput = r.Int(), true
	}
	if r := d.TotalTokens.Get(payload); r.Exists() {
		s.total, s.hasTotal = r.Int(), true
	}

	completion := d.Completion
	if stream {
		completion = d.StreamCompletion
	}
	if r := completion.Get(payload); r.Exists() {
		s.completion.WriteString(r.String())
	}
}

// attributes uses the provider-native keys; normalization happens in the span processors.
func (s *responseState) attributes() []attribute.KeyValue {
	var kv []attribute.KeyValue
	if s.model != "" {
		kv = append(kv, semconv.GenAIResponseModelKey.String(s.model))
	}
	if s.id != "" {
		kv = append(kv, semconv.GenAIResponseIDKey.String(s.id))
	}
	if s.finishReason != "" {
		kv = append(kv, semconv.GenAIResponseFinishReasonsKey.StringSlice([]string{s.finishReason}))
	}
	if s.hasInput {
		kv = append(kv, semconv.GenAIUsagePromptTokensKey.Int64(s.input))
	}
	if s.hasOutput {
		kv = append(kv, semconv.GenAIUsageCompletionTokensKey.Int64(s.output))
	}
	if s.hasTotal {
		kv = append(kv, semconv.LLMUsageTotalTokensKey.Int64(s.total))
	}
	if s.completion.Len() > 0 {
		kv = append(kv, semconv.GenAICompletionKey.String(s.completion.String()))
	}
	return kv
}
