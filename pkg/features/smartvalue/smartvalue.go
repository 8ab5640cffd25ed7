package smartvalue

import "github.com/vango-dev/smartvalue/pkg/vango"

// Options configures a container.
type Options[T any] struct {
	// InitialValue seeds the container and is what Reset restores.
	InitialValue T

	// UseRef selects silent storage. The default is reactive storage.
	UseRef bool

	// Name labels the container in logs and observer callbacks.
	Name string

	// Observer, if set, is notified of every write and reset.
	Observer Observer

	// Equal decides whether a reactive write changed the value; an unchanged
	// write schedules no re-render. nil compares contents, so pointers to
	// equal structs count as unchanged. Silent storage ignores it.
	Equal func(a, b T) bool
}

// Value is the accessor of a container. It is bound to exactly one backend
// for its whole life.
type Value[T any] struct {
	backend  Backend[T]
	history  PreviousReader[T]
	mode     Mode
	name     string
	observer Observer
}

// New creates a standalone container.
func New[T any](opts Options[T]) *Value[T] {
	v := &Value[T]{
		name:     opts.Name,
		observer: opts.Observer,
	}

	if opts.UseRef {
		v.mode = ModeSilent
		v.backend = NewSilentBackend(opts.InitialValue)
	} else {
		v.mode = ModeReactive
		rb := NewReactiveBackend(opts.InitialValue)
		if opts.Equal != nil {
			rb.value.WithEquals(opts.Equal)
		}
		v.backend = rb
		v.history = rb
	}

	if vango.DebugMode {
		vango.Logger().Debug("smart value created", "name", v.name, "mode", v.mode.String())
	}
	return v
}

// Use is the hook form of New. During render it returns the same *Value on
// every render of the current owner; options passed on later renders are
// ignored. Outside of an owner it behaves like New.
//
// This is a hook-like API and MUST be called unconditionally during render.
func Use[T any](opts Options[T]) *Value[T] {
	owner := vango.CurrentOwner()
	if owner == nil {
		return New(opts)
	}

	owner.TrackHook(vango.HookSmartValue)
	if slot := owner.UseHookSlot(); slot != nil {
		return slot.(*Value[T])
	}
	v := New(opts)
	owner.SetHookSlot(v)
	return v
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.backend.Get()
}

// Set replaces the current value.
func (v *Value[T]) Set(value T) {
	v.backend.Set(value)
	if v.observer != nil {
		v.observer.ObserveWrite(v.name, v.mode)
	}
}

// Update replaces the current value with fn applied to the value held
// immediately before the call. fn may call Get on the same container but
// must not write to it.
func (v *Value[T]) Update(fn func(prev T) T) {
	v.backend.Update(fn)
	if v.observer != nil {
		v.observer.ObserveWrite(v.name, v.mode)
	}
}

// Initial returns the value the container was created with.
func (v *Value[T]) Initial() T {
	return v.backend.Initial()
}

// Reset restores the initial value.
func (v *Value[T]) Reset() {
	v.backend.Reset()
	if v.observer != nil {
		v.observer.ObserveReset(v.name, v.mode)
	}
}

// Previous returns the value held immediately before the most recent Set,
// Update or Reset. ok is false before the first write and always false when
// the backend does not track history (silent storage).
func (v *Value[T]) Previous() (prev T, ok bool) {
	if v.history == nil {
		return prev, false
	}
	return v.history.Previous()
}

// TracksPrevious reports whether Previous can ever return ok.
func (v *Value[T]) TracksPrevious() bool {
	return v.history != nil
}

// Mode returns the storage mode.
func (v *Value[T]) Mode() Mode {
	return v.mode
}

// Name returns the label given in Options.
func (v *Value[T]) Name() string {
	return v.name
}

// Backend returns the active backend.
func (v *Value[T]) Backend() Backend[T] {
	return v.backend
}
