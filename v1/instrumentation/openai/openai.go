// Package openai traces calls to the OpenAI API.
//
// Importing the package registers the adapter with instrumentation.AutoInstrument,
// which then traces every request to api.openai.com sent through http.DefaultTransport.
// Clients built with their own transport can be traced per client instead:
//
//	client := openai.NewClient(paidopenai.WithTracing(nil))
package openai

import (
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3/option"
	"go.opentelemetry.io/otel/trace"

	"github.com/paid-ai/paid-go/v1/instrumentation"
	"github.com/paid-ai/paid-go/v1/instrumentation/llmhttp"
)

// Dialect describes the chat completions, legacy completions, embeddings and
// responses endpoints.
var Dialect = llmhttp.Dialect{
	System: "openai",
	Hosts:  []string{"api.openai.com"},
	Operation: llmhttp.SuffixOperations(
		[2]string{"/chat/completions", "chat"},
		[2]string{"/completions", "completion"},
		[2]string{"/embeddings", "embeddings"},
		[2]string{"/responses", "responses"},
	),
	RequestModel:  llmhttp.Paths{"model"},
	Prompt:        llmhttp.Paths{"messages", "input", "prompt"},
	ResponseModel: llmhttp.Paths{"model", "response.model"},
	ResponseID:    llmhttp.Paths{"id", "response.id"},
	FinishReason:  llmhttp.Paths{"choices.0.finish_reason", "response.status"},
	Completion:    llmhttp.Paths{"choices.0.message.content", "choices.0.text", "output.0.content.0.text"},
	InputTokens:   llmhttp.Paths{"usage.prompt_tokens", "usage.input_tokens", "response.usage.input_tokens"},
	OutputTokens:  llmhttp.Paths{"usage.completion_tokens", "usage.output_tokens", "response.usage.output_tokens"},
	TotalTokens:   llmhttp.Paths{"usage.total_tokens", "response.usage.total_tokens"},
	// chat chunks carry choices[].delta, responses API events a top-level delta
	StreamCompletion: llmhttp.Paths{"choices.0.delta.content", "choices.0.text", "delta"},
}

func init() {
	instrumentation.Register(instrumentor{})
}

type instrumentor struct{}

func (instrumentor) Library() instrumentation.Library {
	return instrumentation.OpenAI
}

func (instrumentor) Instrument(tp trace.TracerProvider) error {
	llmhttp.Install(tp, Dialect)
	return nil
}

// InstrumentModule accepts an *http.Client handed to option.WithHTTPClient, or a
// *[]option.RequestOption that the tracing middleware is appended to.
func (instrumentor) InstrumentModule(tp trace.TracerProvider, module any) error {
	switch m := module.(type) {
	case *http.Client:
		if m != nil {
			llmhttp.WrapClient(m, tp, Dialect)
			return nil
		}
	case *[]option.RequestOption:
		if m != nil {
			*m = append(*m, WithTracing(tp))
			return nil
		}
	}
	return fmt.Errorf("%w: %T", instrumentation.ErrUnsupportedModule, module)
}

// WithTracing traces every request of the client it is passed to, whatever its
// base URL. A nil tp means the global OpenTelemetry provider.
func WithTracing(tp trace.TracerProvider) option.RequestOption {
	return option.WithMiddleware(llmhttp.Middleware(tp, Dialect))
}
