// Package smartvalue wraps a single component value behind one accessor
// and lets the caller pick how it is stored.
//
// With reactive storage (the default) the value lives in a signal: reading it
// during render subscribes the component and every change schedules a
// re-render. With silent storage (UseRef) the value lives in a ref: writes
// are immediate and never schedule a re-render, which suits counters, caches
// and instrumentation that must survive renders without causing them.
//
// Usage:
//
//	func Counter() {
//	    count := smartvalue.Use(smartvalue.Options[int]{InitialValue: 0})
//
//	    onIncrement := func() { count.Update(func(n int) int { return n + 1 }) }
//	    onReset := func() { count.Reset() }
//
//	    fmt.Println("Current:", count.Get(), "Initial:", count.Initial())
//	    if prev, ok := count.Previous(); ok {
//	        fmt.Println("Previous:", prev)
//	    }
//	}
//
// Use must be called unconditionally during render; the returned *Value keeps
// its identity across re-renders. New builds a standalone container.
//
// Accessors trust their callers: no operation validates input or returns an
// error.
package smartvalue
