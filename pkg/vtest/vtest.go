package vtest

import (
	"testing"

	"github.com/vango-dev/smartvalue/pkg/vango"
)

// Harness drives a mounted component in tests.
type Harness struct {
	t    testing.TB
	comp *vango.Component
}

// Mount creates a root component for render, performs the first render and
// disposes the component when the test ends.
func Mount(t testing.TB, render func()) *Harness {
	t.Helper()

	comp := vango.NewComponent(nil, render)
	t.Cleanup(comp.Dispose)
	comp.Mount()

	return &Harness{t: t, comp: comp}
}

// Component returns the mounted component.
func (h *Harness) Component() *vango.Component {
	return h.comp
}

// Act runs fn as a single batch and then flushes any scheduled refresh.
// It reports whether the component re-rendered.
func (h *Harness) Act(fn func()) bool {
	vango.Batch(fn)
	return h.comp.Flush()
}

// Flush re-renders the component if a refresh is pending.
func (h *Harness) Flush() bool {
	return h.comp.Flush()
}

// Renders returns how many times the component has rendered.
func (h *Harness) Renders() uint64 {
	return h.comp.RenderCount()
}

// Scheduled returns how many refreshes have been scheduled.
func (h *Harness) Scheduled() uint64 {
	return h.comp.Scheduled()
}

// ExpectRenders asserts the total render count, including the mount.
func (h *Harness) ExpectRenders(want uint64) {
	h.t.Helper()
	if got := h.comp.RenderCount(); got != want {
		h.t.Errorf("expected %d renders, got %d", want, got)
	}
}

// ExpectScheduled asserts how many refreshes have been scheduled so far.
func (h *Harness) ExpectScheduled(want uint64) {
	h.t.Helper()
	if got := h.comp.Scheduled(); got != want {
		h.t.Errorf("expected %d scheduled refreshes, got %d", want, got)
	}
}

// ExpectDirty asserts that a refresh is pending.
func (h *Harness) ExpectDirty() {
	h.t.Helper()
	if !h.comp.IsDirty() {
		h.t.Error("expected component to have a pending refresh")
	}
}

// ExpectClean asserts that no refresh is pending.
func (h *Harness) ExpectClean() {
	h.t.Helper()
	if h.comp.IsDirty() {
		h.t.Error("expected no pending refresh")
	}
}
