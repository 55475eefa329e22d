package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing SDK metrics. It doubles as an observability.Observer so that
// tracing and instrumentation can report through it.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the isolated Prometheus registry where all metrics are registered.
	Registry *prometheus.Registry

	namespace  string
	registerer prometheus.Registerer

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	operationSize     *prometheus.CounterVec
	lastSuccess       *prometheus.GaugeVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, wraps it with a constant `service`
// label, registers the SDK operation metrics and optionally the Go/process collectors,
// and creates an HTTP server exposing /metrics.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "billing-api"})
//	client, _ := tracing.NewClient(cfg, log, tracing.WithObserver(m))
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	m := &Metrics{
		Registry:   registry,
		namespace:  namespace,
		registerer: wrappedRegistry,
	}

	m.operationsTotal = m.CreateCounter("operations_total",
		"Total number of SDK operations by component, operation, resource and status",
		[]string{"component", "operation", "resource", "status"})
	m.operationDuration = m.CreateHistogram("operation_duration_seconds",
		"Duration of SDK operations in seconds",
		[]string{"component", "operation"}, prometheus.DefBuckets)
	m.operationSize = m.CreateCounter("operation_items_total",
		"Items affected by SDK operations, e.g. filtered span attributes",
		[]string{"component", "operation"})
	m.lastSuccess = m.CreateGauge("operation_last_success_timestamp_seconds",
		"Unix time of the last successful SDK operation",
		[]string{"component", "operation"})

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    address,
		Handler: mux,
	}
	return m
}
