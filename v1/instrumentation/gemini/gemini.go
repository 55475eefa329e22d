// Package gemini traces calls to the Gemini API (generativelanguage.googleapis.com).
//
// The google.golang.org/genai client sends through the *http.Client of its
// ClientConfig, so either hand that config to InstrumentModule before creating
// the client, or rely on AutoInstrument when it uses http.DefaultTransport.
package gemini

import (
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/paid-ai/paid-go/v1/instrumentation"
	"github.com/paid-ai/paid-go/v1/instrumentation/llmhttp"
)

var Dialect = llmhttp.Dialect{
	System:           "gemini",
	Hosts:            []string{"generativelanguage.googleapis.com"},
	Operation:        operation,
	PathModel:        pathModel,
	Prompt:           llmhttp.Paths{"contents", "requests"},
	ResponseModel:    llmhttp.Paths{"modelVersion"},
	ResponseID:       llmhttp.Paths{"responseId"},
	FinishReason:     llmhttp.Paths{"candidates.0.finishReason"},
	Completion:       llmhttp.Paths{"candidates.0.content.parts.0.text"},
	InputTokens:      llmhttp.Paths{"usageMetadata.promptTokenCount"},
	OutputTokens:     llmhttp.Paths{"usageMetadata.candidatesTokenCount"},
	TotalTokens:      llmhttp.Paths{"usageMetadata.totalTokenCount"},
	StreamCompletion: llmhttp.Paths{"candidates.0.content.parts.0.text"},
}

// operation maps the ":method" suffix of a model path.
func operation(path string) string {
	_, method, ok := strings.Cut(path[strings.LastIndex(path, "/")+1:], ":")
	if !ok {
		return ""
	}
	switch method {
	case "generateContent", "streamGenerateContent":
		return "chat"
	case "embedContent", "batchEmbedContents":
		return "embeddings"
	}
	return ""
}

// pathModel extracts the model from /v1beta/models/{model}:{method}.
func pathModel(path string) string {
	_, rest, ok := strings.Cut(path, "/models/")
	if !ok {
		return ""
	}
	model, _, _ := strings.Cut(rest, ":")
	return model
}

func init() {
	instrumentation.Register(instrumentor{})
}

type instrumentor struct{}

func (instrumentor) Library() instrumentation.Library {
	return instrumentation.Gemini
}

func (instrumentor) Instrument(tp trace.TracerProvider) error {
	llmhttp.Install(tp, Dialect)
	return nil
}

// InstrumentModule accepts an *http.Client or a *genai.ClientConfig. A config
// without an HTTP client gets one.
func (instrumentor) InstrumentModule(tp trace.TracerProvider, module any) error {
	switch m := module.(type) {
	case *http.Client:
		if m != nil {
			llmhttp.WrapClient(m, tp, Dialect)
			return nil
		}
	case *genai.ClientConfig:
		if m != nil {
			m.HTTPClient = llmhttp.WrapClient(m.HTTPClient, tp, Dialect)
			return nil
		}
	}
	return fmt.Errorf("%w: %T", instrumentation.ErrUnsupportedModule, module)
}
