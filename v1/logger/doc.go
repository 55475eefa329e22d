// Package logger provides the structured logger used by every paid-go component.
//
// It wraps Uber's zap with a small, map-based API so that components can depend on
// a narrow interface instead of zap directly.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: the contract other packages depend on
//   - LoggerClient struct: the zap-backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FX module: provides both *LoggerClient and Logger
//
// # Direct Usage (Without FX)
//
//	import "github.com/paid-ai/paid-go/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info})
//	log.Info("tracing initialized", nil, map[string]interface{}{
//		"endpoint": "https://collector.agentpaid.io:4318/v1/traces",
//	})
//
//	// Adds trace_id and span_id of the active span
//	log.WarnWithContext(ctx, "signal rejected", err, nil)
//
// # Configuration
//
//	PAID_LOG_LEVEL=debug       # debug, info, warning, error
//	PAID_SERVICE_NAME=billing  # "service" field on every entry
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
