package smartvalue

import "github.com/vango-dev/smartvalue/pkg/vango"

// SilentBackend keeps the value in a ref outside the render cycle.
// Reads and writes are immediate and no listener is ever notified.
type SilentBackend[T any] struct {
	initial T
	cell    *vango.Ref[T]
}

// NewSilentBackend creates a silent backend seeded with initial.
func NewSilentBackend[T any](initial T) *SilentBackend[T] {
	return &SilentBackend[T]{
		initial: initial,
		cell:    vango.NewRef(initial),
	}
}

func (b *SilentBackend[T]) Get() T {
	return b.cell.Current()
}

func (b *SilentBackend[T]) Set(value T) {
	b.cell.Set(value)
}

// Update has no batching to respect: it reads the cell and writes back.
func (b *SilentBackend[T]) Update(fn func(prev T) T) {
	b.cell.Set(fn(b.cell.Current()))
}

func (b *SilentBackend[T]) Initial() T {
	return b.initial
}

func (b *SilentBackend[T]) Reset() {
	b.cell.Set(b.initial)
}
