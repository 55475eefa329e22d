// Package anthropic traces calls to the Anthropic Messages API.
//
// Importing the package registers the adapter with instrumentation.AutoInstrument.
// For a client with its own transport or base URL, add the middleware directly:
//
//	client := anthropic.NewClient(paidanthropic.WithTracing(nil))
package anthropic

import (
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel/trace"

	"github.com/paid-ai/paid-go/v1/instrumentation"
	"github.com/paid-ai/paid-go/v1/instrumentation/llmhttp"
)

// Dialect describes the messages endpoint, streamed or not. Token counting
// requests are not billed and stay untraced.
var Dialect = llmhttp.Dialect{
	System: "anthropic",
	Hosts:  []string{"api.anthropic.com"},
	Operation: llmhttp.SuffixOperations(
		[2]string{"/messages/count_tokens", ""},
		[2]string{"/messages", "chat"},
		[2]string{"/complete", "completion"},
	),
	RequestModel:  llmhttp.Paths{"model"},
	Prompt:        llmhttp.Paths{"messages", "prompt"},
	ResponseModel: llmhttp.Paths{"model", "message.model"},
	ResponseID:    llmhttp.Paths{"id", "message.id"},
	FinishReason:  llmhttp.Paths{"stop_reason", "delta.stop_reason"},
	Completion:    llmhttp.Paths{"content.0.text", "completion"},
	// message_start reports both counts, message_delta the final output count
	InputTokens:      llmhttp.Paths{"usage.input_tokens", "message.usage.input_tokens"},
	OutputTokens:     llmhttp.Paths{"usage.output_tokens", "message.usage.output_tokens"},
	StreamCompletion: llmhttp.Paths{"delta.text"},
}

func init() {
	instrumentation.Register(instrumentor{})
}

type instrumentor struct{}

func (instrumentor) Library() instrumentation.Library {
	return instrumentation.Anthropic
}

func (instrumentor) Instrument(tp trace.TracerProvider) error {
	llmhttp.Install(tp, Dialect)
	return nil
}

// InstrumentModule accepts an *http.Client or a *[]option.RequestOption.
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

// WithTracing traces every request of the client it is passed to.
// A nil tp means the global OpenTelemetry provider.
func WithTracing(tp trace.TracerProvider) option.RequestOption {
	return option.WithMiddleware(llmhttp.Middleware(tp, Dialect))
}
