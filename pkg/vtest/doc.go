// Package vtest provides testing helpers for components built on the
// reactive runtime.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    var count *smartvalue.Value[int]
//	    h := vtest.Mount(t, func() {
//	        count = smartvalue.Use(smartvalue.Options[int]{})
//	        _ = count.Get()
//	    })
//
//	    h.Act(func() {
//	        count.Update(func(n int) int { return n + 1 })
//	    })
//	    h.ExpectRenders(2)
//	}
//
// # Render Assertions
//
// ExpectRenders, ExpectScheduled, ExpectDirty and ExpectClean assert on the
// component's render cycle. Act runs a function as one batch and flushes the
// resulting refresh, much like a single event handler followed by a render.
package vtest
