package instrumentation

import (
	"context"

	"go.uber.org/fx"

	"github.com/paid-ai/paid-go/v1/logger"
	"github.com/paid-ai/paid-go/v1/observability"
	"github.com/paid-ai/paid-go/v1/tracing"
)

// FXModule provides a *Registrar and runs AutoInstrument on start.
//
// Dependencies required by this module:
// - An instrumentation.Config instance
// - Optionally a *tracing.Client, a logger.Logger and an observability.Observer
//
// Usage:
//
//	app := fx.New(
//	    tracing.FXModule,
//	    instrumentation.FXModule,
//	    fx.Provide(tracing.LoadConfig, instrumentation.LoadConfig),
//	)
var FXModule = fx.Module("instrumentation",
	fx.Provide(
		NewRegistrarWithDI,
	),
	fx.Invoke(RegisterInstrumentationLifecycle),
)

// InstrumentationParams groups the dependencies needed to create a Registrar.
type InstrumentationParams struct {
	fx.In

	Client   *tracing.Client        `optional:"true"`
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewRegistrarWithDI creates a Registrar bound to the injected tracing client, if any.
func NewRegistrarWithDI(params InstrumentationParams) *Registrar {
	var opts []RegistrarOption
	if params.Client != nil {
		opts = append(opts, WithTracerProvider(params.Client.TracerProvider()))
	}
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	var log Logger
	switch {
	case params.Logger != nil:
		log = params.Logger
	case params.Client != nil:
		log = params.Client.Logger()
	}
	return NewRegistrar(log, opts...)
}

// InstrumentationLifecycleParams groups the dependencies for lifecycle management.
type InstrumentationLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Registrar *Registrar
	Config    Config
}

// RegisterInstrumentationLifecycle runs AutoInstrument on start when enabled and
// resets the registrar on stop.
func RegisterInstrumentationLifecycle(params InstrumentationLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !params.Config.Enabled {
				params.Registrar.logger.Info("auto-instrumentation disabled", nil)
				return nil
			}
			params.Registrar.AutoInstrument(ctx, params.Config.SelectedLibraries()...)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Registrar.Reset()
			return nil
		},
	})
}
