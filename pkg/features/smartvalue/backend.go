package smartvalue

// Mode selects the storage strategy of a container. It is fixed at
// construction.
type Mode uint8

const (
	// ModeReactive stores the value in a signal; changes schedule a re-render.
	ModeReactive Mode = iota

	// ModeSilent stores the value in a ref; changes never schedule a re-render.
	ModeSilent
)

// String returns the mode name used in logs and metric labels.
func (m Mode) String() string {
	switch m {
	case ModeReactive:
		return "reactive"
	case ModeSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// Backend is the storage contract shared by both strategies.
type Backend[T any] interface {
	// Get returns the current value.
	Get() T

	// Set replaces the current value.
	Set(value T)

	// Update replaces the current value with fn applied to the value held
	// immediately before the call. fn may read the backend but must not
	// write to it, and may run more than once under concurrent writes.
	Update(fn func(prev T) T)

	// Initial returns the value the backend was created with.
	Initial() T

	// Reset restores the initial value through the same path as Set.
	Reset()
}

// PreviousReader is the optional history capability of a Backend.
// Previous reports the value held immediately before the most recent
// Set, Update or Reset, and false before any of them has been called.
type PreviousReader[T any] interface {
	Previous() (T, bool)
}

var (
	_ Backend[int]        = (*ReactiveBackend[int])(nil)
	_ PreviousReader[int] = (*ReactiveBackend[int])(nil)
	_ Backend[int]        = (*SilentBackend[int])(nil)
)
