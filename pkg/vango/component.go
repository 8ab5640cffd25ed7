package vango

import (
	"sync"
	"sync/atomic"
)

// Component binds an Owner and a render function to the render cycle.
//
// Every signal read during render subscribes the component. A change to any
// of those signals marks the component dirty; the next Flush re-renders it
// exactly once no matter how many changes arrived in between. Writes to a
// Ref never mark a component dirty.
type Component struct {
	id     uint64
	owner  *Owner
	render func()

	dirty     atomic.Bool
	scheduled atomic.Uint64
	renders   atomic.Uint64

	sources   []*signalBase
	sourcesMu sync.Mutex

	onRender []func(renders uint64)
}

// NewComponent creates a component whose owner is a child of parent.
// The component does not render until Mount is called.
func NewComponent(parent *Owner, render func()) *Component {
	c := &Component{
		id:     nextID(),
		owner:  NewOwner(parent),
		render: render,
	}
	c.owner.OnCleanup(c.unsubscribeAll)
	return c
}

// ID implements Listener.
func (c *Component) ID() uint64 {
	return c.id
}

// Owner returns the component's owner scope.
func (c *Component) Owner() *Owner {
	return c.owner
}

// OnRender registers a callback invoked after every completed render with
// the total render count. Callbacks run in registration order on the
// rendering goroutine. Must be called before Mount.
func (c *Component) OnRender(fn func(renders uint64)) {
	c.onRender = append(c.onRender, fn)
}

// MarkDirty implements Listener. It schedules a re-render unless one is
// already pending or the component has been disposed.
func (c *Component) MarkDirty() {
	if c.owner.IsDisposed() {
		if DebugMode {
			Logger().Debug("refresh ignored on disposed component", "component_id", c.id)
		}
		return
	}
	if c.dirty.CompareAndSwap(false, true) {
		c.scheduled.Add(1)
		if DebugMode {
			Logger().Debug("refresh scheduled", "component_id", c.id)
		}
	}
}

// IsDirty reports whether a re-render is pending.
func (c *Component) IsDirty() bool {
	return c.dirty.Load()
}

// Scheduled returns how many refreshes have been scheduled since creation.
func (c *Component) Scheduled() uint64 {
	return c.scheduled.Load()
}

// RenderCount returns how many times the component has rendered.
func (c *Component) RenderCount() uint64 {
	return c.renders.Load()
}

// Mount performs the first render.
func (c *Component) Mount() {
	c.renderNow()
}

// Flush re-renders the component if it is dirty and reports whether it did.
func (c *Component) Flush() bool {
	if c.owner.IsDisposed() || !c.dirty.Load() {
		return false
	}
	c.renderNow()
	return true
}

// Dispose tears the component down. Pending refreshes are dropped and the
// component unsubscribes from every signal it read.
func (c *Component) Dispose() {
	c.dirty.Store(false)
	c.owner.Dispose()
}

func (c *Component) renderNow() {
	c.dirty.Store(false)

	WithOwner(c.owner, func() {
		WithListener(c, func() {
			c.owner.StartRender()
			defer c.owner.EndRender()
			c.render()
		})
	})

	n := c.renders.Add(1)
	for _, fn := range c.onRender {
		fn(n)
	}
}

func (c *Component) addSource(source *signalBase) {
	c.sourcesMu.Lock()
	defer c.sourcesMu.Unlock()

	for _, s := range c.sources {
		if s == source {
			return
		}
	}
	c.sources = append(c.sources, source)
}

func (c *Component) unsubscribeAll() {
	c.sourcesMu.Lock()
	sources := c.sources
	c.sources = nil
	c.sourcesMu.Unlock()

	for _, s := range sources {
		s.unsubscribe(c)
	}
}
