package vango

import (
	"sync"
	"testing"
)

// testListener is a simple Listener implementation for testing.
type testListener struct {
	id         uint64
	dirtyCount int
	mu         sync.Mutex
}

func newTestListener() *testListener {
	return &testListener{id: nextID()}
}

func (l *testListener) MarkDirty() {
	l.mu.Lock()
	l.dirtyCount++
	l.mu.Unlock()
}

func (l *testListener) ID() uint64 {
	return l.id
}

func (l *testListener) getDirtyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirtyCount
}

func TestGetTrackingContext(t *testing.T) {
	ctx1 := getTrackingContext()
	ctx2 := getTrackingContext()

	if ctx1 != ctx2 {
		t.Error("getTrackingContext should return same context for same goroutine")
	}
}

func TestTrackingContextIsolation(t *testing.T) {
	mainCtx := getTrackingContext()

	var otherCtx *TrackingContext
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer ReleaseTrackingContext()
		otherCtx = getTrackingContext()
	}()
	wg.Wait()

	if mainCtx == otherCtx {
		t.Error("goroutines should have separate tracking contexts")
	}
}

func TestWithListenerRestores(t *testing.T) {
	outer := newTestListener()
	inner := newTestListener()

	WithListener(outer, func() {
		WithListener(inner, func() {
			if getCurrentListener() != inner {
				t.Error("inner listener should be current")
			}
		})
		if getCurrentListener() != outer {
			t.Error("outer listener should be restored")
		}
	})

	if getCurrentListener() != nil {
		t.Error("listener should be nil after WithListener returns")
	}
}

func TestWithOwnerRestores(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	WithOwner(owner, func() {
		if CurrentOwner() != owner {
			t.Error("owner should be current inside WithOwner")
		}
	})

	if CurrentOwner() != nil {
		t.Error("owner should be nil after WithOwner returns")
	}
}
