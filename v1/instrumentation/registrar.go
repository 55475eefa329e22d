package instrumentation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/paid-ai/paid-go/v1/instrumentation/llmhttp"
	"github.com/paid-ai/paid-go/v1/logger"
	"github.com/paid-ai/paid-go/v1/observability"
	"github.com/paid-ai/paid-go/v1/tracing"
)

const componentName = "instrumentation"

// Registrar enables the registered adapters against the tracing pipeline.
// Nothing it does can fail the caller: problems are logged and skipped.
type Registrar struct {
	registry *Registry
	logger   Logger
	observer observability.Observer
	tp       trace.TracerProvider

	// inheritLogger is set when no logger was given; the registrar then logs
	// through the tracing client it resolves.
	inheritLogger bool

	mu           sync.Mutex
	done         bool
	instrumented map[Library]struct{}
}

// RegistrarOption configures a Registrar.
type RegistrarOption func(*Registrar)

// WithRegistry replaces the default registry.
func WithRegistry(registry *Registry) RegistrarOption {
	return func(r *Registrar) {
		r.registry = registry
	}
}

// WithTracerProvider pins the provider adapters are bound to. Without it the
// process-wide tracing client is used, initialized from the environment if needed.
func WithTracerProvider(tp trace.TracerProvider) RegistrarOption {
	return func(r *Registrar) {
		r.tp = tp
	}
}

// WithObserver reports every instrumentation attempt to observer.
func WithObserver(observer observability.Observer) RegistrarOption {
	return func(r *Registrar) {
		r.observer = observer
	}
}

// NewRegistrar creates a registrar over the default registry. A nil log means the
// logger of the process-wide tracing client once one is resolved.
func NewRegistrar(log Logger, opts ...RegistrarOption) *Registrar {
	r := &Registrar{
		registry:     defaultRegistry,
		logger:       log,
		instrumented: make(map[Library]struct{}),
	}
	if log == nil {
		r.logger = logger.NewNop()
		r.inheritLogger = true
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AutoInstrument enables process-wide tracing for libs, or for KnownLibraries when
// libs is empty, and returns the libraries it instrumented. Libraries without a
// linked adapter are skipped.
//
// Only the first call that finds a tracing pipeline does anything; later calls log
// and return nil.
func (r *Registrar) AutoInstrument(ctx context.Context, libs ...Library) []Library {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		r.logger.Info("auto-instrumentation already ran, ignoring", nil)
		return nil
	}
	tp, err := r.tracerProvider()
	if err != nil {
		r.logger.Warn("auto-instrumentation skipped, tracing unavailable", err)
		return nil
	}
	r.done = true

	if len(libs) == 0 {
		libs = KnownLibraries
	}
	var enabled []Library
	for _, lib := range libs {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("auto-instrumentation interrupted", err)
			break
		}
		if _, ok := r.instrumented[lib]; ok {
			continue
		}
		if r.run(lib, "instrument", func(inst Instrumentor) error { return inst.Instrument(tp) }) {
			r.instrumented[lib] = struct{}{}
			enabled = append(enabled, lib)
		}
	}
	r.logger.Info("auto-instrumentation finished", nil, map[string]interface{}{
		"libraries": enabled,
	})
	return enabled
}

// InstrumentModules hooks individual client references, e.g. an *http.Client,
// keyed by the library they belong to. It can be called any number of times and
// returns the libraries whose reference was hooked.
func (r *Registrar) InstrumentModules(ctx context.Context, modules map[Library]any) []Library {
	r.mu.Lock()
	defer r.mu.Unlock()

	tp, err := r.tracerProvider()
	if err != nil {
		r.logger.Warn("manual instrumentation skipped, tracing unavailable", err)
		return nil
	}

	var enabled []Library
	for lib, module := range modules {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("manual instrumentation interrupted", err)
			break
		}
		if r.run(lib, "instrument_module", func(inst Instrumentor) error { return inst.InstrumentModule(tp, module) }) {
			enabled = append(enabled, lib)
		}
	}
	return enabled
}

// Reset forgets what AutoInstrument did and removes the process-wide HTTP hook,
// so that the next AutoInstrument binds to the current tracing client.
func (r *Registrar) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.instrumented) > 0 {
		llmhttp.Uninstall()
	}
	r.done = false
	clear(r.instrumented)
}

// Instrumented reports whether AutoInstrument enabled lib.
func (r *Registrar) Instrumented(lib Library) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.instrumented[lib]
	return ok
}

func (r *Registrar) tracerProvider() (trace.TracerProvider, error) {
	if r.tp != nil {
		return r.tp, nil
	}
	if client := tracing.Default(); client != nil {
		r.adoptLogger(client)
		return client.TracerProvider(), nil
	}
	var log tracing.Logger
	if !r.inheritLogger {
		log = r.logger
	}
	client, err := tracing.InitializeFromEnv(log)
	if err != nil {
		return nil, err
	}
	r.adoptLogger(client)
	return client.TracerProvider(), nil
}

func (r *Registrar) adoptLogger(client *tracing.Client) {
	if r.inheritLogger {
		r.logger = client.Logger()
	}
}

// run looks lib up and calls fn on its adapter, containing any failure.
func (r *Registrar) run(lib Library, operation string, fn func(Instrumentor) error) (ok bool) {
	start := time.Now()
	inst, found := r.registry.Lookup(lib)
	if !found {
		r.logger.Debug("instrumentation not available, skipping", nil, map[string]interface{}{
			"library": string(lib),
		})
		r.observeOperation(operation, lib, time.Since(start), ErrLibraryUnavailable)
		return false
	}

	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("instrumentor panicked: %v", p)
			}
		}()
		return fn(inst)
	}()
	r.observeOperation(operation, lib, time.Since(start), err)
	if err != nil {
		r.logger.Warn("failed to instrument library", err, map[string]interface{}{
			"library": string(lib),
		})
		return false
	}
	r.logger.Debug("library instrumented", nil, map[string]interface{}{
		"library": string(lib),
	})
	return true
}

func (r *Registrar) observeOperation(operation string, lib Library, duration time.Duration, err error) {
	if r.observer == nil {
		return
	}
	r.observer.ObserveOperation(observability.OperationContext{
		Component: componentName,
		Operation: operation,
		Resource:  string(lib),
		Duration:  duration,
		Error:     err,
	})
}

var defaultRegistrar = sync.OnceValue(func() *Registrar {
	r := NewRegistrar(nil)
	tracing.OnShutdown(r.Reset)
	return r
})

// AutoInstrument runs the process-wide registrar.
//
// Example:
//
//	import (
//		"github.com/paid-ai/paid-go/v1/instrumentation"
//		_ "github.com/paid-ai/paid-go/v1/instrumentation/all"
//	)
//
//	instrumentation.AutoInstrument(ctx)
func AutoInstrument(ctx context.Context, libs ...Library) []Library {
	return defaultRegistrar().AutoInstrument(ctx, libs...)
}

// InstrumentModules runs the process-wide registrar in manual mode.
func InstrumentModules(ctx context.Context, modules map[Library]any) []Library {
	return defaultRegistrar().InstrumentModules(ctx, modules)
}
