// Package tracing attributes LLM usage to customers and products and ships the
// resulting spans to the Paid collector.
//
// # Architecture
//
//   - TracingContext: customer, product, token and prompt consent, carried in
//     context.Context so bindings nest and unwind with the call tree.
//   - Client: the SDK tracer provider plus exporter, wrapped in a TracerProvider
//     that runs SpanProcessors on every recording span.
//   - BillingProcessor: stamps attribution, strips prompt content and routes signals.
//   - GenAIProcessor: maps provider attributes onto gen_ai.*, computes token totals,
//     classifies the span and routes it.
//
// # Usage
//
//	client, err := tracing.Initialize(tracing.Config{APIKey: key, Enabled: true}, log)
//	if err != nil {
//		return err
//	}
//	defer tracing.Shutdown(context.Background())
//
//	err = client.Trace(ctx, tracing.TraceOptions{
//		ExternalCustomerID: "cus_42",
//		ExternalProductID:  "support-agent",
//	}, func(ctx context.Context) error {
//		if _, err := llm.Chat.Completions.New(ctx, params); err != nil {
//			return err
//		}
//		return tracing.Signal(ctx, "ticket_resolved", true, map[string]any{"ticket": 17})
//	})
//
// # Routing
//
// The collector only ingests spans named "paid.trace.*". Root spans keep their
// name. LLM spans are renamed once, e.g. "openai.chat" becomes
// "paid.trace.openai.chat.signal", and signal spans become "paid.trace.signal".
//
// # Configuration
//
//	PAID_API_KEY=...                    # required
//	PAID_OTEL_COLLECTOR_ENDPOINT=...    # default https://collector.agentpaid.io:4318/v1/traces
//	PAID_OTEL_EXPORTER=otlp             # otlp, stdout or none
//	PAID_ENABLED=true
//	PAID_STORE_PROMPT=false
//
// # Thread Safety
//
// Client and TracerProvider are safe for concurrent use. Each span's buffered
// state is guarded by its own mutex.
package tracing
