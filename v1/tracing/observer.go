package tracing

import (
	"time"

	"github.com/paid-ai/paid-go/v1/observability"
)

const componentName = "tracing"

func (c *Client) observeOperation(operation, resource string, duration time.Duration, err error, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component: componentName,
		Operation: operation,
		Resource:  resource,
		Duration:  duration,
		Error:     err,
		Metadata:  metadata,
	})
}
