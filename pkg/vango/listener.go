package vango

// Listener is anything that can be notified when a dependency changes.
// Components implement it; tests use lightweight counting listeners.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	// For components, this schedules a re-render.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// sourceTracker is implemented by listeners that remember which signals they
// read, so they can unsubscribe when disposed.
type sourceTracker interface {
	addSource(source *signalBase)
}
