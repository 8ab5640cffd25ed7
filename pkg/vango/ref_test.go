package vango

import "testing"

func TestRefMethods(t *testing.T) {
	r := NewRef(5)

	if r.Current() != 5 {
		t.Errorf("Current() = %d, want 5", r.Current())
	}
	if r.IsSet() {
		t.Error("IsSet() should be false before Set")
	}

	r.Set(9)
	if r.Current() != 9 || !r.IsSet() {
		t.Errorf("after Set: Current()=%d IsSet()=%v", r.Current(), r.IsSet())
	}
}

func TestRefNeverMarksComponentDirty(t *testing.T) {
	r := NewRef(0)
	c := NewComponent(nil, func() {
		_ = r.Current()
	})
	defer c.Dispose()
	c.Mount()

	r.Set(1)
	r.Set(2)

	if c.IsDirty() || c.Scheduled() != 0 {
		t.Errorf("ref writes scheduled %d refreshes", c.Scheduled())
	}
}
