package llmhttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/paid-ai/paid-go/v1/semconv"
)

var testDialect = Dialect{
	System: "openai",
	Hosts:  []string{"127.0.0.1"},
	Operation: SuffixOperations(
		[2]string{"/chat/completions", "chat"},
		[2]string{"/embeddings", "embeddings"},
	),
	RequestModel:     Paths{"model"},
	Prompt:           Paths{"messages"},
	ResponseModel:    Paths{"model"},
	ResponseID:       Paths{"id"},
	FinishReason:     Paths{"choices.0.finish_reason"},
	Completion:       Paths{"choices.0.message.content"},
	InputTokens:      Paths{"usage.prompt_tokens"},
	OutputTokens:     Paths{"usage.completion_tokens"},
	TotalTokens:      Paths{"usage.total_tokens"},
	StreamCompletion: Paths{"choices.0.delta.content"},
}

const chatRequest = `{"model":"gpt-4o","messages":[{"role":"user","content":"hi"}]}`

const chatResponse = `{
	"id": "chatcmpl-1",
	"model": "gpt-4o-2024-08-06",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "hello"}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

const chatStream = "data: {\"id\":\"chatcmpl-2\",\"model\":\"gpt-4o\",\"choices\":[{\"delta\":{\"content\":\"hel\"}}]}\n\n" +
	"data: {\"id\":\"chatcmpl-2\",\"model\":\"gpt-4o\",\"choices\":[{\"delta\":{\"content\":\"lo\"},\"finish_reason\":\"stop\"}]}\n\n" +
	"data: {\"id\":\"chatcmpl-2\",\"model\":\"gpt-4o\",\"choices\":[],\"usage\":{\"prompt_tokens\":7,\"completion_tokens\":2,\"total_tokens\":9}}\n\n" +
	"data: [DONE]\n\n"

func newRecorder() (*tracetest.SpanRecorder, trace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

func newLLMServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			body, _ := io.ReadAll(r.Body)
			if strings.Contains(string(body), `"stream":true`) {
				w.Header().Set("Content-Type", "text/event-stream")
				_, _ = io.WriteString(w, chatStream)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, chatResponse)
		case "/v1/embeddings":
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":{"message":"slow down"}}`)
		default:
			_, _ = io.WriteString(w, "ok")
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, client *http.Client, url, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestTransportRecordsChatCompletion(t *testing.T) {
	recorder, tp := newRecorder()
	srv := newLLMServer(t)
	client := &http.Client{Transport: NewTransport(http.DefaultTransport, tp, testDialect)}

	_, body := post(t, client, srv.URL+"/v1/chat/completions", chatRequest)

	assert.JSONEq(t, chatResponse, body)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "openai.chat", s.Name())
	assert.Equal(t, trace.SpanKindClient, s.SpanKind())
	a := spanAttrs(s)
	assert.Equal(t, "openai", a[semconv.LLMProviderKey].AsString())
	assert.Equal(t, "gpt-4o", a[semconv.LLMModelNameKey].AsString())
	assert.JSONEq(t, `[{"role":"user","content":"hi"}]`, a[semconv.GenAIPromptKey].AsString())
	assert.Equal(t, "gpt-4o-2024-08-06", a[semconv.GenAIResponseModelKey].AsString())
	assert.Equal(t, "chatcmpl-1", a[semconv.GenAIResponseIDKey].AsString())
	assert.Equal(t, []string{"stop"}, a[semconv.GenAIResponseFinishReasonsKey].AsStringSlice())
	assert.Equal(t, int64(10), a[semconv.GenAIUsagePromptTokensKey].AsInt64())
	assert.Equal(t, int64(5), a[semconv.GenAIUsageCompletionTokensKey].AsInt64())
	assert.Equal(t, int64(15), a[semconv.LLMUsageTotalTokensKey].AsInt64())
	assert.Equal(t, "hello", a[semconv.GenAICompletionKey].AsString())
	assert.Equal(t, int64(200), a["http.response.status_code"].AsInt64())
}

func TestTransportPassesThroughUnknownRequests(t *testing.T) {
	recorder, tp := newRecorder()
	srv := newLLMServer(t)
	client := &http.Client{Transport: NewTransport(nil, tp, testDialect)}

	_, body := post(t, client, srv.URL+"/v1/files", "{}")

	assert.Equal(t, "ok", body)
	assert.Empty(t, recorder.Ended())

	other := testDialect
	other.Hosts = []string{"api.openai.com"}
	client = &http.Client{Transport: NewTransport(nil, tp, other)}
	post(t, client, srv.URL+"/v1/chat/completions", chatRequest)
	assert.Empty(t, recorder.Ended())
}

func TestTransportMarksHTTPErrors(t *testing.T) {
	recorder, tp := newRecorder()
	srv := newLLMServer(t)
	client := &http.Client{Transport: NewTransport(nil, tp, testDialect)}

	resp, body := post(t, client, srv.URL+"/v1/embeddings", `{"model":"text-embedding-3-small","input":"x"}`)

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, body, "slow down")
	s := recorder.Ended()[0]
	assert.Equal(t, "openai.embeddings", s.Name())
	assert.Equal(t, codes.Error, s.Status().Code)
}

type failingTransport struct{ err error }

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) { return nil, f.err }

func TestTransportReturnsTransportErrorUnchanged(t *testing.T) {
	recorder, tp := newRecorder()
	errDown := errors.New("connection refused")
	transport := NewTransport(failingTransport{err: errDown}, tp, testDialect)
	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1/v1/chat/completions", strings.NewReader(chatRequest))
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)

	assert.Nil(t, resp)
	assert.Same(t, errDown, err)
	s := recorder.Ended()[0]
	assert.Equal(t, codes.Error, s.Status().Code)
	require.NotEmpty(t, s.Events())
	assert.Equal(t, "exception", s.Events()[0].Name)
}

func TestTransportStreamEndsSpanAtEOF(t *testing.T) {
	recorder, tp := newRecorder()
	srv := newLLMServer(t)
	client := &http.Client{Transport: NewTransport(nil, tp, testDialect)}
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/chat/completions", strings.NewReader(`{"model":"gpt-4o","stream":true}`))
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	assert.Empty(t, recorder.Ended())

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, chatStream, string(body))
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	a := spanAttrs(spans[0])
	assert.Equal(t, "hello", a[semconv.GenAICompletionKey].AsString())
	assert.Equal(t, "chatcmpl-2", a[semconv.GenAIResponseIDKey].AsString())
	assert.Equal(t, []string{"stop"}, a[semconv.GenAIResponseFinishReasonsKey].AsStringSlice())
	assert.Equal(t, int64(7), a[semconv.GenAIUsagePromptTokensKey].AsInt64())
	assert.Equal(t, int64(2), a[semconv.GenAIUsageCompletionTokensKey].AsInt64())
	assert.Equal(t, int64(9), a[semconv.LLMUsageTotalTokensKey].AsInt64())
}

func TestStreamBodyHandlesSplitLinesAndEarlyClose(t *testing.T) {
	recorder, tp := newRecorder()
	_, span := tp.Tracer("test").Start(context.Background(), "openai.chat")
	body := newStreamBody(io.NopCloser(strings.NewReader("")), span, newResponseState(&testDialect))

	body.consume([]byte("data: {\"choices\":[{\"delta\":{\"con"))
	body.consume([]byte("tent\":\"par\"}}]}\r\n"))
	body.consume([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"tial\"}}]}"))
	require.NoError(t, body.Close())
	require.NoError(t, body.Close())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "partial", spanAttrs(spans[0])[semconv.GenAICompletionKey].AsString())
}

func TestMiddlewareTracesWithoutHostMatch(t *testing.T) {
	recorder, tp := newRecorder()
	mw := Middleware(tp, Dialect{
		System:      "anthropic",
		Operation:   SuffixOperations([2]string{"/v1/messages", "messages"}),
		InputTokens: Paths{"usage.input_tokens"},
	})
	req := httptest.NewRequest(http.MethodPost, "https://proxy.internal/v1/messages", strings.NewReader(`{}`))

	var seen *http.Request
	resp, err := mw(req, func(r *http.Request) (*http.Response, error) {
		seen = r
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"usage":{"input_tokens":3}}`)),
		}, nil
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.True(t, already(seen.Context()))
	assert.True(t, trace.SpanContextFromContext(seen.Context()).IsValid())
	s := recorder.Ended()[0]
	assert.Equal(t, "anthropic.messages", s.Name())
	assert.Equal(t, int64(3), spanAttrs(s)[semconv.GenAIUsagePromptTokensKey].AsInt64())
}

func TestMiddlewareAndTransportTraceOnce(t *testing.T) {
	recorder, tp := newRecorder()
	srv := newLLMServer(t)
	transport := NewTransport(nil, tp, testDialect)
	mw := Middleware(tp, testDialect)
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/chat/completions", strings.NewReader(chatRequest))
	require.NoError(t, err)

	resp, err := mw(req, transport.RoundTrip)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Len(t, recorder.Ended(), 1)
}

func TestInstallWrapsDefaultTransportOnce(t *testing.T) {
	recorder, tp := newRecorder()
	srv := newLLMServer(t)
	original := http.DefaultTransport
	t.Cleanup(Uninstall)

	first := Install(tp, testDialect)
	second := Install(tp, testDialect)

	assert.Same(t, first, second)
	assert.Same(t, original, first.Base)
	assert.True(t, first.Routes("127.0.0.1"))

	resp, err := http.Post(srv.URL+"/v1/chat/completions", "application/json", strings.NewReader(chatRequest))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Len(t, recorder.Ended(), 1)

	Uninstall()
	assert.Equal(t, original, http.DefaultTransport)
}

func TestWrapClient(t *testing.T) {
	_, tp := newRecorder()
	client := &http.Client{}

	WrapClient(client, tp, testDialect)
	wrapped := client.Transport
	other := testDialect
	other.Hosts = []string{"api.mistral.ai"}
	WrapClient(client, tp, other)

	assert.Same(t, wrapped, client.Transport)
	transport := client.Transport.(*Transport)
	assert.True(t, transport.Routes("127.0.0.1"))
	assert.True(t, transport.Routes("API.MISTRAL.AI"))
	assert.NotNil(t, WrapClient(nil, tp, testDialect).Transport)
}

func TestSuffixOperations(t *testing.T) {
	op := SuffixOperations(
		[2]string{"/messages/count_tokens", ""},
		[2]string{"/messages", "messages"},
	)
	for path, want := range map[string]string{
		"/v1/messages":              "messages",
		"/v1/messages/":             "messages",
		"/v1/messages/count_tokens": "",
		"/v1/models":                "",
	} {
		assert.Equal(t, want, op(path), fmt.Sprintf("path %s", path))
	}
}
