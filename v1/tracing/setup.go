package tracing

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	otelsemconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/paid-ai/paid-go/v1/observability"
)

const (
	instrumentationName = "github.com/paid-ai/paid-go/v1/tracing"
	sdkVersion          = "0.1.0"
)

// Client owns the span pipeline: an SDK tracer provider exporting to the billing
// collector, wrapped by a TracerProvider running the billing span processors.
//
// A nil *Client is valid: Trace runs the callback untraced and Signal reports
// ErrUninitialized.
type Client struct {
	cfg      Config
	logger   Logger
	observer observability.Observer

	sdk      *sdktrace.TracerProvider
	provider *TracerProvider
	tracer   trace.Tracer
}

// Option customizes NewClient.
type Option func(*options)

type options struct {
	exporter   sdktrace.SpanExporter
	sync       bool
	processors []SpanProcessor
	observer   observability.Observer
	sampler    sdktrace.Sampler
	genai      []GenAIOption
}

// WithSpanExporter replaces the exporter selected by Config.Exporter. Spans are batched.
func WithSpanExporter(exporter sdktrace.SpanExporter) Option {
	return func(o *options) {
		o.exporter = exporter
		o.sync = false
	}
}

// WithSyncer exports every span synchronously as it ends. Meant for tests.
func WithSyncer(exporter sdktrace.SpanExporter) Option {
	return func(o *options) {
		o.exporter = exporter
		o.sync = true
	}
}

// WithSpanProcessor appends a processor after the built-in billing and GenAI processors.
func WithSpanProcessor(p SpanProcessor) Option {
	return func(o *options) {
		o.processors = append(o.processors, p)
	}
}

// WithObserver reports traces, signals and processed spans to observer.
func WithObserver(observer observability.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithSampler overrides the default AlwaysSample sampler.
func WithSampler(sampler sdktrace.Sampler) Option {
	return func(o *options) {
		o.sampler = sampler
	}
}

// WithGenAIOptions configures the built-in GenAIProcessor.
func WithGenAIOptions(opts ...GenAIOption) Option {
	return func(o *options) {
		o.genai = append(o.genai, opts...)
	}
}

// NewClient builds a client from cfg. It does not touch any global state; use
// Initialize or SetDefault for that.
//
// Example:
//
//	cfg, err := tracing.LoadConfig()
//	if err != nil {
//		return err
//	}
//	client, err := tracing.NewClient(cfg, log)
//
// A nil logger is replaced by a JSON logger at cfg.LogLevel.
func NewClient(cfg Config, logger Logger, opts ...Option) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrTracingDisabled
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingToken
	}
	logger = defaultLogger(logger, cfg)

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	exporter := o.exporter
	if exporter == nil {
		var err error
		exporter, err = newExporter(cfg)
		if err != nil {
			return nil, err
		}
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		otelsemconv.SchemaURL,
		otelsemconv.ServiceName(serviceName),
		otelsemconv.TelemetrySDKLanguageGo,
		attribute.String("paid.sdk.name", "paid-go"),
		attribute.String("paid.sdk.version", sdkVersion),
	)

	sampler := o.sampler
	if sampler == nil {
		sampler = sdktrace.AlwaysSample()
	}
	sdkOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	}
	if exporter != nil {
		if o.sync {
			sdkOpts = append(sdkOpts, sdktrace.WithSyncer(exporter))
		} else {
			sdkOpts = append(sdkOpts, sdktrace.WithBatcher(exporter))
		}
	}
	sdk := sdktrace.NewTracerProvider(sdkOpts...)

	processors := append([]SpanProcessor{
		NewBillingProcessor(),
		NewGenAIProcessor(o.genai...),
	}, o.processors...)
	provider := NewTracerProvider(sdk, logger, o.observer, processors...)

	logger.Debug("tracing client created", nil, map[string]interface{}{
		"exporter":     exporterName(cfg, o.exporter),
		"endpoint":     cfg.CollectorEndpoint,
		"service_name": serviceName,
	})

	return &Client{
		cfg:      cfg,
		logger:   logger,
		observer: o.observer,
		sdk:      sdk,
		provider: provider,
		tracer:   provider.Tracer(instrumentationName, trace.WithInstrumentationVersion(sdkVersion)),
	}, nil
}

func newExporter(cfg Config) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(cfg.Exporter) {
	case "", ExporterOTLP:
		endpoint := cfg.CollectorEndpoint
		if endpoint == "" {
			endpoint = DefaultCollectorEndpoint
		}
		client := otlptracehttp.NewClient(otlptracehttp.WithEndpointURL(endpoint))
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		return exporter, nil
	case ExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		return exporter, nil
	case ExporterNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExporter, cfg.Exporter)
	}
}

func exporterName(cfg Config, custom sdktrace.SpanExporter) string {
	if custom != nil {
		return fmt.Sprintf("%T", custom)
	}
	if cfg.Exporter == "" {
		return ExporterOTLP
	}
	return cfg.Exporter
}

// TracerProvider returns the wrapping provider. Spans created from it go through
// the billing span processors.
func (c *Client) TracerProvider() trace.TracerProvider {
	if c == nil {
		return otel.GetTracerProvider()
	}
	return c.provider
}

// Tracer returns the tracer used for root and signal spans.
func (c *Client) Tracer() trace.Tracer {
	if c == nil {
		return otel.Tracer(instrumentationName)
	}
	return c.tracer
}

// Logger returns the logger the client reports through.
func (c *Client) Logger() Logger {
	if c == nil {
		return orNop(nil)
	}
	return c.logger
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// ForceFlush exports every finished span that is still buffered.
func (c *Client) ForceFlush(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return errors.Join(c.provider.pipeline.forceFlush(ctx), c.sdk.ForceFlush(ctx))
}

// Shutdown flushes and stops the exporter. The client must not be used afterwards.
func (c *Client) Shutdown(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.logger.Info("shutting down tracing", nil)
	return errors.Join(c.provider.pipeline.shutdown(ctx), c.sdk.Shutdown(ctx))
}

var (
	defaultMu     sync.RWMutex
	defaultClient *Client
	shutdownHooks []func()
)

// Initialize creates the process-wide client from cfg and installs its provider as
// the global OpenTelemetry provider. Only the first successful call has an effect;
// later calls log and return the existing client.
//
// A nil logger is replaced by a JSON logger at cfg.LogLevel (PAID_LOG_LEVEL).
func Initialize(cfg Config, logger Logger, opts ...Option) (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient != nil {
		if logger == nil {
			logger = defaultClient.logger
		}
		logger.Info("tracing already initialized, ignoring", nil)
		return defaultClient, nil
	}

	client, err := NewClient(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}
	install(client)
	client.logger.Info("tracing initialized", nil, map[string]interface{}{
		"endpoint": cfg.CollectorEndpoint,
		"exporter": exporterName(cfg, nil),
	})
	return client, nil
}

// InitializeFromEnv calls Initialize with LoadConfig's result.
func InitializeFromEnv(logger Logger, opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return Initialize(cfg, logger, opts...)
}

// SetDefault installs client as the process-wide client. Installing the current
// default again is a no-op; installing a different one fails with ErrAlreadyInitialized.
func SetDefault(client *Client) error {
	if client == nil {
		return ErrUninitialized
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	switch defaultClient {
	case nil:
		install(client)
		return nil
	case client:
		return nil
	default:
		return ErrAlreadyInitialized
	}
}

// Default returns the process-wide client, or nil before initialization.
func Default() *Client {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultClient
}

// IsInitialized reports whether a process-wide client is installed.
func IsInitialized() bool {
	return Default() != nil
}

// Shutdown shuts the process-wide client down and uninstalls it, after which
// Initialize may be called again. Hooks registered with OnShutdown run once the
// client is uninstalled.
func Shutdown(ctx context.Context) error {
	return uninstall(nil).Shutdown(ctx)
}

// OnShutdown registers fn to run every time a process-wide client is uninstalled,
// by Shutdown or by FXModule on stop. State bound to the old client, such as
// instrumentation holding its tracers, is dropped there.
func OnShutdown(fn func()) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	shutdownHooks = append(shutdownHooks, fn)
}

// uninstall removes the process-wide client when it is client, or whatever it is
// when client is nil, and runs the shutdown hooks. It returns the removed client.
func uninstall(client *Client) *Client {
	defaultMu.Lock()
	current := defaultClient
	if current == nil || (client != nil && current != client) {
		defaultMu.Unlock()
		return nil
	}
	defaultClient = nil
	hooks := slices.Clone(shutdownHooks)
	defaultMu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return current
}

func install(client *Client) {
	defaultClient = client
	otel.SetTracerProvider(client.provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
