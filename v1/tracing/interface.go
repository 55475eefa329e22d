package tracing

import "github.com/paid-ai/paid-go/v1/logger"

// Logger is the logging contract this package needs.
// *logger.LoggerClient satisfies it.
//
//go:generate mockgen -source=interface.go -destination=mock_logger.go -package=tracing
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

func orNop(l Logger) Logger {
	if l == nil {
		return logger.NewNop()
	}
	return l
}

// defaultLogger returns l, or when l is nil a logger built from cfg's level and
// service name.
func defaultLogger(l Logger, cfg Config) Logger {
	if l != nil {
		return l
	}
	return logger.NewLoggerClient(logger.Config{
		Level:       cfg.LogLevel,
		ServiceName: cfg.ServiceName,
	})
}
