// Package metrics exports smart value and render-cycle activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/smartvalue/pkg/features/smartvalue"
	"github.com/vango-dev/smartvalue/pkg/vango"
)

// Config configures the Prometheus collector.
type Config struct {
	// Namespace is the metrics namespace (default: "smartvalue").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "smartvalue",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector counts writes, resets and renders. It implements
// smartvalue.Observer.
type Collector struct {
	writes  *prometheus.CounterVec
	resets  *prometheus.CounterVec
	renders *prometheus.CounterVec
}

var _ smartvalue.Observer = (*Collector)(nil)

// New registers the collector's metrics and returns it.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_total",
			Help:        "Total number of Set and Update calls on smart values",
			ConstLabels: config.ConstLabels,
		}, []string{"name", "mode"}),

		resets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resets_total",
			Help:        "Total number of Reset calls on smart values",
			ConstLabels: config.ConstLabels,
		}, []string{"name", "mode"}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of component renders",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),
	}
}

// ObserveWrite implements smartvalue.Observer.
func (c *Collector) ObserveWrite(name string, mode smartvalue.Mode) {
	c.writes.WithLabelValues(name, mode.String()).Inc()
}

// ObserveReset implements smartvalue.Observer.
func (c *Collector) ObserveReset(name string, mode smartvalue.Mode) {
	c.resets.WithLabelValues(name, mode.String()).Inc()
}

// ObserveRender counts one render of the named component.
func (c *Collector) ObserveRender(component string) {
	c.renders.WithLabelValues(component).Inc()
}

// Instrument counts every render of comp under the given name.
// Must be called before the component mounts.
func (c *Collector) Instrument(name string, comp *vango.Component) {
	comp.OnRender(func(uint64) {
		c.ObserveRender(name)
	})
}
