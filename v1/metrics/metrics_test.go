package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/paid-ai/paid-go/v1/observability"
)

func TestNewMetricsDefaults(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	require.Equal(t, DefaultMetricsAddress, m.Server.Addr)
	require.Equal(t, DefaultNamespace, m.namespace)
	require.NotNil(t, m.Registry)
}

func TestObserveOperation(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveOperation(observability.OperationContext{
		Component: "tracing",
		Operation: "signal",
		Resource:  "evt",
		Duration:  5 * time.Millisecond,
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "tracing",
		Operation: "signal",
		Resource:  "evt",
		Error:     errors.New("missing context"),
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "tracing",
		Operation: "span.filter",
		Resource:  "billing",
		Size:      3,
	})

	require.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("tracing", "signal", "evt", statusOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("tracing", "signal", "evt", statusError)))
	require.Equal(t, 3.0, testutil.ToFloat64(m.operationSize.WithLabelValues("tracing", "span.filter")))
	require.Equal(t, 1, testutil.CollectAndCount(m.operationDuration))
	require.Greater(t, testutil.ToFloat64(m.lastSuccess.WithLabelValues("tracing", "signal")), 0.0)
	require.Equal(t, 2, testutil.CollectAndCount(m.lastSuccess))
}

func TestObserveOperationFailureLeavesLastSuccess(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveOperation(observability.OperationContext{
		Component: "instrumentation",
		Operation: "instrument",
		Resource:  "openai",
		Error:     errors.New("boom"),
	})

	require.Equal(t, 0, testutil.CollectAndCount(m.lastSuccess))
}

func TestObserveOperationNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveOperation(observability.OperationContext{Component: "tracing"})
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "svc"})
	m.ObserveOperation(observability.OperationContext{Component: "tracing", Operation: "trace", Resource: "root"})

	rec := httptest.NewRecorder()
	m.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, "paid_operations_total"))
	require.True(t, strings.Contains(body, `service="svc"`))
	require.True(t, strings.Contains(body, "paid_operation_last_success_timestamp_seconds"))
}

func TestCreateCounter(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "svc"})
	c := m.CreateCounter("custom_total", "custom", []string{"k"})
	c.WithLabelValues("v").Inc()
	require.Equal(t, 1.0, testutil.ToFloat64(c.WithLabelValues("v")))
}

func TestCreateHistogram(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "svc"})
	h := m.CreateHistogram("custom_seconds", "custom", []string{"k"}, []float64{0.1, 1})
	h.WithLabelValues("v").Observe(0.5)

	require.Equal(t, 1, testutil.CollectAndCount(h))
	count, err := testutil.GatherAndCount(m.Registry, "paid_custom_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestCreateGauge(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "svc"})
	g := m.CreateGauge("custom_inflight", "custom", []string{"k"})
	g.WithLabelValues("v").Set(3)
	g.WithLabelValues("v").Dec()

	require.Equal(t, 2.0, testutil.ToFloat64(g.WithLabelValues("v")))
}

func TestCreateDuplicateMetricPanics(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "svc"})

	require.Panics(t, func() {
		m.CreateGauge("operations_total", "dup", []string{"component", "operation", "resource", "status"})
	})
}
