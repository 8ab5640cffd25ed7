// Package demo implements the counter screen used by the CLI and the HTTP
// demo: a component holding one smart value with increment and reset
// buttons.
package demo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vango-dev/smartvalue/internal/metrics"
	"github.com/vango-dev/smartvalue/pkg/features/smartvalue"
	"github.com/vango-dev/smartvalue/pkg/vango"
)

// Snapshot is what the counter screen shows after an action.
type Snapshot struct {
	Name        string `json:"name"`
	Mode        string `json:"mode"`
	Current     int    `json:"current"`
	Initial     int    `json:"initial"`
	Previous    int    `json:"previous"`
	HasPrevious bool   `json:"has_previous"`
	Renders     uint64 `json:"renders"`
	Scheduled   uint64 `json:"scheduled"`

	// View is the text produced by the most recent render. With silent
	// storage it lags behind Current until something else re-renders.
	View string `json:"view"`
}

// Counter is a mounted counter component.
//
// The container itself is single-threaded; Counter serializes access so the
// HTTP demo can share it between requests.
type Counter struct {
	name   string
	comp   *vango.Component
	value  *smartvalue.Value[int]
	view   string
	logger *slog.Logger

	mu sync.Mutex

	subs    map[uint64]func(Snapshot)
	nextSub uint64
	subsMu  sync.Mutex
}

// Config configures a Counter.
type Config struct {
	Name    string
	Initial int
	UseRef  bool

	// Metrics, if set, counts writes, resets and renders.
	Metrics *metrics.Collector

	Logger *slog.Logger
}

// NewCounter creates and mounts a counter component.
func NewCounter(cfg Config) *Counter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Counter{
		name:   cfg.Name,
		logger: logger.With("counter", cfg.Name),
		subs:   make(map[uint64]func(Snapshot)),
	}

	opts := smartvalue.Options[int]{
		Name:         cfg.Name,
		InitialValue: cfg.Initial,
		UseRef:       cfg.UseRef,
	}
	if cfg.Metrics != nil {
		opts.Observer = cfg.Metrics
	}

	c.comp = vango.NewComponent(nil, func() {
		c.value = smartvalue.Use(opts)
		c.view = fmt.Sprintf("Current Value: %d | Initial Value: %d", c.value.Get(), c.value.Initial())
	})
	if cfg.Metrics != nil {
		cfg.Metrics.Instrument(cfg.Name, c.comp)
	}
	// Renders happen in Mount and in Apply, both with c.mu held or before
	// the counter is shared.
	c.comp.OnRender(func(uint64) {
		c.publish(c.snapshotLocked())
	})
	c.comp.Mount()

	return c
}

// Name returns the counter's name.
func (c *Counter) Name() string {
	return c.name
}

// Subscribe registers fn to receive a snapshot after every re-render. Silent
// counters never re-render after mount, so their subscribers hear nothing.
// fn runs while the counter is locked and must not call back into it.
// The returned function removes the subscription.
func (c *Counter) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	c.nextSub++
	id := c.nextSub
	c.subs[id] = fn

	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Counter) publish(s Snapshot) {
	c.subsMu.Lock()
	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subsMu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// Apply runs one action as a transaction and flushes the resulting render.
func (c *Counter) Apply(ctx context.Context, a Action) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	vango.TxContext(ctx, c.name+":"+string(a.Kind), func(context.Context) {
		switch a.Kind {
		case ActionInc:
			c.value.Update(func(n int) int { return n + 1 })
		case ActionDec:
			c.value.Update(func(n int) int { return n - 1 })
		case ActionDouble:
			c.value.Update(func(n int) int { return n * 2 })
		case ActionAdd:
			c.value.Update(func(n int) int { return n + a.N })
		case ActionSet:
			c.value.Set(a.N)
		case ActionReset:
			c.value.Reset()
		}
	})
	rendered := c.comp.Flush()

	c.logger.Debug("action applied", "action", a.String(), "rendered", rendered)
	return c.snapshotLocked()
}

// Snapshot returns the current state of the screen.
func (c *Counter) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Counter) snapshotLocked() Snapshot {
	prev, ok := c.value.Previous()
	return Snapshot{
		Name:        c.name,
		Mode:        c.value.Mode().String(),
		Current:     c.value.Get(),
		Initial:     c.value.Initial(),
		Previous:    prev,
		HasPrevious: ok,
		Renders:     c.comp.RenderCount(),
		Scheduled:   c.comp.Scheduled(),
		View:        c.view,
	}
}

// Close unmounts the component.
func (c *Counter) Close() {
	c.comp.Dispose()
}
