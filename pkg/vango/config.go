package vango

import (
	"log/slog"
	"sync/atomic"
)

// DebugMode enables dev-time validation such as hook order checking and
// debug logging of transactions and render scheduling.
// This should be set at startup and not changed during runtime.
var DebugMode bool

var runtimeLogger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used by the runtime. A nil logger restores
// slog.Default().
func SetLogger(l *slog.Logger) {
	if l == nil {
		runtimeLogger.Store(nil)
		return
	}
	runtimeLogger.Store(l.With("component", "vango"))
}

// Logger returns the runtime logger.
func Logger() *slog.Logger {
	if l := runtimeLogger.Load(); l != nil {
		return l
	}
	return slog.Default().With("component", "vango")
}
