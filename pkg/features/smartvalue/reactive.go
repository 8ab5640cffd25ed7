package smartvalue

import "github.com/vango-dev/smartvalue/pkg/vango"

// ReactiveBackend keeps the value in a signal tied to the render cycle.
//
// Every write goes through Signal.Update so that the next value is always
// computed from the value left by the previous write, even when several
// writes land in the same batch before the component re-renders. The
// previous value is captured inside that same update step and stored in a
// ref, so history bookkeeping never schedules a render of its own.
type ReactiveBackend[T any] struct {
	initial  T
	value    *vango.Signal[T]
	previous *vango.Ref[T]
}

// NewReactiveBackend creates a reactive backend seeded with initial.
func NewReactiveBackend[T any](initial T) *ReactiveBackend[T] {
	var zero T
	return &ReactiveBackend[T]{
		initial:  initial,
		value:    vango.NewSignal(initial),
		previous: vango.NewRef(zero),
	}
}

// Get returns the current value. Called during render, it subscribes the
// rendering component.
func (b *ReactiveBackend[T]) Get() T {
	return b.value.Get()
}

// Set replaces the current value.
func (b *ReactiveBackend[T]) Set(value T) {
	b.Update(func(T) T { return value })
}

// Update applies fn to the value held immediately before the call.
func (b *ReactiveBackend[T]) Update(fn func(prev T) T) {
	b.value.Update(func(prev T) T {
		b.previous.Set(prev)
		return fn(prev)
	})
}

// Initial returns the construction value.
func (b *ReactiveBackend[T]) Initial() T {
	return b.initial
}

// Reset restores the construction value.
func (b *ReactiveBackend[T]) Reset() {
	b.Set(b.initial)
}

// Previous returns the value held before the most recent write.
func (b *ReactiveBackend[T]) Previous() (T, bool) {
	if !b.previous.IsSet() {
		var zero T
		return zero, false
	}
	return b.previous.Current(), true
}
