package vango

import "testing"

func TestComponentRerendersOnSignalChange(t *testing.T) {
	count := NewSignal(0)
	var seen []int

	c := NewComponent(nil, func() {
		seen = append(seen, count.Get())
	})
	defer c.Dispose()

	c.Mount()
	count.Set(1)

	if !c.IsDirty() {
		t.Fatal("component should be dirty after signal change")
	}
	if !c.Flush() {
		t.Fatal("Flush should re-render a dirty component")
	}
	if c.Flush() {
		t.Error("second Flush should be a no-op")
	}

	if len(seen) != 2 || seen[1] != 1 {
		t.Errorf("rendered values = %v, want [0 1]", seen)
	}
	if c.RenderCount() != 2 {
		t.Errorf("RenderCount() = %d, want 2", c.RenderCount())
	}
}

func TestComponentCoalescesRefreshes(t *testing.T) {
	count := NewSignal(0)
	c := NewComponent(nil, func() {
		_ = count.Get()
	})
	defer c.Dispose()
	c.Mount()

	count.Set(1)
	count.Set(2)
	count.Set(3)

	if c.Scheduled() != 1 {
		t.Errorf("expected 1 scheduled refresh, got %d", c.Scheduled())
	}
}

func TestComponentOnRender(t *testing.T) {
	var calls []uint64
	var second int
	c := NewComponent(nil, func() {})
	defer c.Dispose()
	c.OnRender(func(n uint64) { calls = append(calls, n) })
	c.OnRender(func(uint64) { second++ })

	c.Mount()
	c.MarkDirty()
	c.Flush()

	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("OnRender calls = %v, want [1 2]", calls)
	}
	if second != 2 {
		t.Errorf("second OnRender callback ran %d times, want 2", second)
	}
}

func TestComponentDisposeUnsubscribes(t *testing.T) {
	count := NewSignal(0)
	c := NewComponent(nil, func() {
		_ = count.Get()
	})
	c.Mount()

	if count.base.subscriberCount() != 1 {
		t.Fatalf("expected 1 subscriber after mount, got %d", count.base.subscriberCount())
	}

	c.Dispose()
	if count.base.subscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after dispose, got %d", count.base.subscriberCount())
	}

	c.MarkDirty()
	if c.IsDirty() || c.Flush() {
		t.Error("disposed component should not schedule or render")
	}
}

func TestComponentOwnerIsChildOfParent(t *testing.T) {
	root := NewOwner(nil)
	c := NewComponent(root, func() {})
	c.Mount()

	if c.Owner().Parent() != root {
		t.Error("component owner should be a child of parent")
	}

	root.Dispose()
	if !c.Owner().IsDisposed() {
		t.Error("disposing parent should dispose component owner")
	}
}

func TestComponentBatchedUpdatesRenderOnce(t *testing.T) {
	count := NewSignal(0)
	var rendered int
	c := NewComponent(nil, func() {
		rendered = count.Get()
	})
	defer c.Dispose()
	c.Mount()

	Batch(func() {
		count.Update(func(n int) int { return n + 1 })
		count.Update(func(n int) int { return n + 5 })
	})

	if c.Scheduled() != 1 {
		t.Errorf("expected 1 scheduled refresh, got %d", c.Scheduled())
	}
	c.Flush()
	if rendered != 6 {
		t.Errorf("rendered value = %d, want 6", rendered)
	}
}
