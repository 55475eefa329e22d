// Package instrumentation connects LLM client libraries to the tracing pipeline.
//
// Adapters live in sub-packages and register themselves on import, the way
// database/sql drivers do. Linking an adapter is what makes a library available:
//
//	import (
//		"github.com/paid-ai/paid-go/v1/instrumentation"
//		_ "github.com/paid-ai/paid-go/v1/instrumentation/openai"
//		_ "github.com/paid-ai/paid-go/v1/instrumentation/anthropic"
//	)
//
//	// initializes tracing from PAID_* variables if nobody did yet
//	instrumentation.AutoInstrument(ctx)
//
// AutoInstrument never fails the caller. Unknown or unlinked libraries are logged
// at debug level, adapter errors at warn level, and a second call is a logged no-op.
//
// # Manual Mode
//
// When process-wide hooks cannot reach a client, hand the reference to the adapter:
//
//	httpClient := &http.Client{}
//	instrumentation.InstrumentModules(ctx, map[instrumentation.Library]any{
//		instrumentation.Mistral: httpClient,
//	})
//
// # Configuration
//
//	PAID_AUTO_INSTRUMENT=true                 # FX module only
//	PAID_INSTRUMENT_LIBRARIES=openai,gemini   # empty means all known libraries
package instrumentation
