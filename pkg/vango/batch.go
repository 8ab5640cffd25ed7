package vango

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the OpenTelemetry instrumentation name used by TxContext.
const tracerName = "github.com/vango-dev/smartvalue/pkg/vango"

// Batch groups multiple signal updates into a single notification phase.
// Writes inside the batch are applied immediately; the affected listeners are
// collected, deduplicated, and notified once when the outermost batch
// completes.
//
// Example:
//
//	Batch(func() {
//	    count.Update(func(n int) int { return n + 1 })
//	    count.Update(func(n int) int { return n + 5 })
//	})
//	// Component re-renders once and sees both updates
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	unique := make([]Listener, 0, len(updates))

	for _, listener := range updates {
		id := listener.ID()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, listener)
		}
	}

	for _, listener := range unique {
		listener.MarkDirty()
	}
}

// TxNamed runs fn as a named transaction.
// The name is logged at debug level when DebugMode is on.
func TxNamed(name string, fn func()) {
	if DebugMode {
		Logger().Debug("tx start", "tx", name)
		defer Logger().Debug("tx end", "tx", name)
	}
	Batch(fn)
}

// TxContext runs fn as a named transaction inside an OpenTelemetry span.
// The span records how many listeners the transaction notified.
func TxContext(ctx context.Context, name string, fn func(ctx context.Context)) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "vango.tx "+name,
		trace.WithAttributes(attribute.String("vango.tx.name", name)))
	defer span.End()

	incrementBatchDepth()
	defer func() {
		if decrementBatchDepth() {
			notified := countUnique(getTrackingContext().pendingUpdates)
			span.SetAttributes(attribute.Int("vango.tx.notified", notified))
			processPendingUpdates()
		}
	}()

	TxNamed(name, func() { fn(ctx) })
}

func countUnique(listeners []Listener) int {
	seen := make(map[uint64]struct{}, len(listeners))
	for _, l := range listeners {
		seen[l.ID()] = struct{}{}
	}
	return len(seen)
}
