// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports development and
// production encodings and integrates with the Fiber web framework.
// Logs always go to stderr so that CLI reports on stdout stay clean.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so every log line of a request can be correlated.
//
// Progress adapts a logger to reconcile.ProgressFunc, turning engine progress
// into info entries with current and total fields.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
