package logger

import (
	"mailrecon/core/reconcile"

	"go.uber.org/zap"
)

// Progress adapts a logger to the engine's progress callback.
func Progress(l *zap.Logger) reconcile.ProgressFunc {
	return func(current, total int, message string) {
		l.Info(message, zap.Int("current", current), zap.Int("total", total))
	}
}
