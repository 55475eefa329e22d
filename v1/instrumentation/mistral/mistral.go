// Package mistral traces calls to the Mistral API, which speaks the OpenAI wire format.
package mistral

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/paid-ai/paid-go/v1/instrumentation"
	"github.com/paid-ai/paid-go/v1/instrumentation/llmhttp"
)

var Dialect = llmhttp.Dialect{
	System: "mistral",
	Hosts:  []string{"api.mistral.ai", "codestral.mistral.ai"},
	Operation: llmhttp.SuffixOperations(
		[2]string{"/fim/completions", "completion"},
		[2]string{"/agents/completions", "chat"},
		[2]string{"/chat/completions", "chat"},
		[2]string{"/embeddings", "embeddings"},
	),
	RequestModel:     llmhttp.Paths{"model", "agent_id"},
	Prompt:           llmhttp.Paths{"messages", "prompt", "input"},
	ResponseModel:    llmhttp.Paths{"model"},
	ResponseID:       llmhttp.Paths{"id"},
	FinishReason:     llmhttp.Paths{"choices.0.finish_reason"},
	Completion:       llmhttp.Paths{"choices.0.message.content"},
	InputTokens:      llmhttp.Paths{"usage.prompt_tokens"},
	OutputTokens:     llmhttp.Paths{"usage.completion_tokens"},
	TotalTokens:      llmhttp.Paths{"usage.total_tokens"},
	StreamCompletion: llmhttp.Paths{"choices.0.delta.content"},
}

func init() {
	instrumentation.Register(instrumentor{})
}

type instrumentor struct{}

func (instrumentor) Library() instrumentation.Library {
	return instrumentation.Mistral
}

func (instrumentor) Instrument(tp trace.TracerProvider) error {
	llmhttp.Install(tp, Dialect)
	return nil
}

// InstrumentModule accepts the *http.Client the Mistral client sends with.
func (instrumentor) InstrumentModule(tp trace.TracerProvider, module any) error {
	if c, ok := module.(*http.Client); ok && c != nil {
		llmhttp.WrapClient(c, tp, Dialect)
		return nil
	}
	return fmt.Errorf("%w: %T", instrumentation.ErrUnsupportedModule, module)
}
