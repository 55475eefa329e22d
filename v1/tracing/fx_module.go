package tracing

import (
	"context"
	"errors"

	"go.uber.org/fx"

	"github.com/paid-ai/paid-go/v1/logger"
	"github.com/paid-ai/paid-go/v1/observability"
)

// FXModule provides *Client and makes it the process-wide client on start.
// On stop it uninstalls the client and flushes pending spans.
//
// Dependencies required by this module:
// - A tracing.Config instance
// - Optionally a logger.Logger and an observability.Observer
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracing.FXModule,
//	    fx.Provide(tracing.LoadConfig),
//	)
var FXModule = fx.Module("tracing",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterTracingLifecycle),
)

// TracingParams groups the dependencies needed to create a tracing client.
type TracingParams struct {
	fx.In

	Config   Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a tracing client from injected dependencies.
func NewClientWithDI(params TracingParams) (*Client, error) {
	var opts []Option
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	var log Logger
	if params.Logger != nil {
		log = params.Logger
	}
	return NewClient(params.Config, log, opts...)
}

// TracingLifecycleParams groups the dependencies needed for lifecycle management.
type TracingLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *Client
}

// RegisterTracingLifecycle installs the client on start and shuts it down on stop.
// An already installed client is kept and this one only logs.
func RegisterTracingLifecycle(params TracingLifecycleParams) {
	client := params.Client
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := SetDefault(client); err != nil {
				if errors.Is(err, ErrAlreadyInitialized) {
					client.logger.Warn("tracing already initialized by another client", err)
					return nil
				}
				return err
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			uninstall(client)
			return client.Shutdown(ctx)
		},
	})
}
