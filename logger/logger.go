package logger

// Logger provides a standardized logging interface for the basket Go client.
// It defines methods for different log levels (Debug, Info, Warn, Error) to enable
// consistent logging throughout the client library. This interface allows users
// to plug in their preferred logging implementation (e.g., zerolog, glog, zap, standard log)
// or use the provided Noop logger to disable logging entirely.
// Noop is the default: the client writes nothing unless a logger is configured.
//
// The logger is used by the client for:
// - request debugging (method and endpoint of every call)
// - transport, decode and "error" envelope failures
//
// Usage Example:
//
//	// Using with a custom logger implementation
//	client := basket.NewClient(apiKey, baseUrl, basket.WithLogger(myLogger))
//
//	// Using zerolog
//	client := basket.NewClient(apiKey, baseUrl, basket.WithLogger(logger.NewZerolog(zl)))
//
//	// Disable logging entirely
//	client := basket.NewClient(apiKey, baseUrl, basket.WithLogger(&logger.Noop{}))
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
