// Package metrics exposes Prometheus metrics about the SDK itself: traces wrapped,
// signals emitted, spans processed, prompt attributes filtered and instrumentation
// registered.
//
// *Metrics implements observability.Observer, so it can be handed to
// tracing.WithObserver and instrumentation.WithObserver directly.
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "billing-api",
//	})
//	go m.Server.ListenAndServe()
//
// # Exposed metrics
//
//	paid_operations_total{component,operation,resource,status}
//	paid_operation_duration_seconds{component,operation}
//	paid_operation_items_total{component,operation}
//
// Every metric also carries the constant label service="<ServiceName>".
package metrics
