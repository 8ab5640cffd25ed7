// Package vango provides the reactive runtime that smart values live in.
//
// Dependencies are tracked automatically at runtime: reading a signal while
// a component renders subscribes that component to the signal, and a later
// write marks the component dirty so it re-renders on the next flush.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Ref[T] is a mutable cell that never notifies anyone:
//
//	hits := NewRef(0)
//	hits.Set(hits.Current() + 1)
//
// Component ties an Owner and a render function to the render cycle:
//
//	c := NewComponent(nil, func() {
//	    fmt.Println("count:", count.Get())
//	})
//	c.Mount()
//	count.Set(1) // c is now dirty
//	c.Flush()    // re-renders once
//
// # Batching
//
// Multiple signal updates can be batched to trigger a single notification:
//
//	Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	    c.Set(3)
//	})  // Single notification after all updates
//
// # Hooks
//
// Owners keep hook slots so that values created during render keep their
// identity across re-renders. Hook-like constructors must be called
// unconditionally and in the same order on every render; with DebugMode
// enabled the order is validated and violations panic with E002.
//
// # Thread Safety
//
// Signals and refs are safe for concurrent access. The tracking context is
// per-goroutine, so spawning goroutines requires explicit context
// propagation via WithOwner.
package vango
