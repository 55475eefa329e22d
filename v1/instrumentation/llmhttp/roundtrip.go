package llmhttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelsemconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/paid-ai/paid-go/v1/semconv"
)

const instrumentationName = "github.com/paid-ai/paid-go/v1/instrumentation/llmhttp"

// Next sends a request. It is the shape of both http.RoundTripper.RoundTrip and
// the next handler of an SDK middleware chain.
type Next = func(*http.Request) (*http.Response, error)

type tracedKey struct{}

// already reports whether an outer layer is tracing this request.
func already(ctx context.Context) bool {
	v, _ := ctx.Value(tracedKey{}).(bool)
	return v
}

func tracerFor(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(instrumentationName)
}

// roundTrip sends req through next inside a "<system>.<operation>" client span.
// Errors from next are recorded and returned as they are.
func roundTrip(tracer trace.Tracer, d *Dialect, operation string, req *http.Request, next Next) (*http.Response, error) {
	body, replay, err := requestBody(req)
	if err != nil {
		return nil, fmt.Errorf("read llm request body: %w", err)
	}

	attrs := []attribute.KeyValue{
		semconv.LLMProviderKey.String(d.System),
		attribute.String("llm.request.type", operation),
		otelsemconv.HTTPRequestMethodKey.String(req.Method),
		otelsemconv.ServerAddress(req.URL.Hostname()),
	}
	if model := d.requestModel(req.URL.Path, body); model != "" {
		attrs = append(attrs, semconv.LLMModelNameKey.String(model))
	}
	if p := d.Prompt.Get(body); p.Exists() {
		attrs = append(attrs, semconv.GenAIPromptKey.String(p.Raw))
	}

	ctx := context.WithValue(req.Context(), tracedKey{}, true)
	ctx, span := tracer.Start(ctx, d.System+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	out := req.WithContext(ctx)
	if replay != nil {
		out.Body = replay()
		out.GetBody = func() (io.ReadCloser, error) { return replay(), nil }
	}

	resp, err := next(out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return resp, err
	}

	span.SetAttributes(otelsemconv.HTTPResponseStatusCode(resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status)
	}

	state := newResponseState(d)
	if resp.Body == nil {
		span.End()
		return resp, nil
	}
	if isEventStream(resp) {
		resp.Body = newStreamBody(resp.Body, span, state)
		return resp, nil
	}

	payload, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	state.apply(payload, false)
	span.SetAttributes(state.attributes()...)
	if readErr != nil {
		span.RecordError(readErr)
		span.SetStatus(codes.Error, readErr.Error())
	}
	span.End()

	resp.Body = &replayedBody{Reader: bytes.NewReader(payload), err: readErr}
	return resp, nil
}

// requestBody reads the request body without consuming what will be sent.
// When the body had to be consumed, replay returns fresh copies of it.
func requestBody(req *http.Request) (body []byte, replay func() io.ReadCloser, err error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil, nil
	}
	if req.GetBody != nil {
		if rc, gerr := req.GetBody(); gerr == nil {
			defer rc.Close()
			body, err = io.ReadAll(rc)
			return body, nil, err
		}
	}
	body, err = io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, nil, err
	}
	return body, func() io.ReadCloser { return io.NopCloser(bytes.NewReader(body)) }, nil
}

func isEventStream(resp *http.Response) bool {
	return strings.HasPrefix(strings.ToLower(resp.Header.Get("Content-Type")), "text/event-stream")
}

// replayedBody serves an already read response body, then the read error if any.
type replayedBody struct {
	*bytes.Reader
	err error
}

func (b *replayedBody) Read(p []byte) (int, error) {
	n, err := b.Reader.Read(p)
	if err == io.EOF && b.err != nil {
		return n, b.err
	}
	return n, err
}

func (b *replayedBody) Close() error {
	return nil
}
