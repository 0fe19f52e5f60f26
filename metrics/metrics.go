// Package metrics exposes descriptor cache and clone activity as Prometheus
// metrics.
package metrics

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"deepgraph/errs"
	"deepgraph/node"
)

const namespace = "deepgraph"

// Collector records cache lookups, descriptor builds and clone calls. It
// implements descriptor.Observer and clone.Observer and is safe for
// concurrent use; a nil *Collector records nothing.
type Collector struct {
	lookups       *prometheus.CounterVec
	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram

	clones        *prometheus.CounterVec
	cloneDuration *prometheus.HistogramVec
	cloneNodes    prometheus.Histogram

	errorsTotal *prometheus.CounterVec
}

// NewCollector creates a collector on the default registerer.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector using the supplied registerer.
func NewCollectorWithRegistry(registry prometheus.Registerer) *Collector {
	factory := promauto.With(registry)

	return &Collector{
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "descriptor_lookups_total",
				Help:      "Total number of descriptor cache lookups",
			},
			[]string{"result"},
		),
		builds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "descriptor_builds_total",
				Help:      "Total number of published descriptors",
			},
			[]string{"dispatch"},
		),
		buildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "descriptor_build_duration_seconds",
				Help:      "Duration of descriptor construction in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
		clones: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "clones_total",
				Help:      "Total number of top-level clone calls",
			},
			[]string{"type", "outcome"},
		),
		cloneDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "clone_duration_seconds",
				Help:      "Duration of top-level clone calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		cloneNodes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "clone_nodes",
				Help:      "Number of values visited per clone call",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of failed clone calls by error kind",
			},
			[]string{"kind"},
		),
	}
}

// DescriptorHit counts a cache hit.
func (c *Collector) DescriptorHit(reflect.Type) {
	if c == nil {
		return
	}

	c.lookups.WithLabelValues("hit").Inc()
}

// DescriptorMiss counts a cache miss.
func (c *Collector) DescriptorMiss(reflect.Type) {
	if c == nil {
		return
	}

	c.lookups.WithLabelValues("miss").Inc()
}

// DescriptorBuilt counts a published descriptor and its construction time.
func (c *Collector) DescriptorBuilt(t reflect.Type, elapsed time.Duration) {
	if c == nil {
		return
	}

	c.builds.WithLabelValues(dispatchLabel(t)).Inc()
	c.buildDuration.Observe(elapsed.Seconds())
}

// CloneFinished records one top-level clone call.
func (c *Collector) CloneFinished(t reflect.Type, nodes int, elapsed time.Duration, err error) {
	if c == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		c.errorsTotal.WithLabelValues(ErrorKind(err)).Inc()
	}

	c.clones.WithLabelValues(errs.TypeName(t), outcome).Inc()
	c.cloneDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	c.cloneNodes.Observe(float64(nodes))
}

func dispatchLabel(t reflect.Type) string {
	return strings.ToLower(strings.TrimPrefix(node.Dispatch(t).String(), "Dispatcher"))
}

// ErrorKind names the taxonomy kind of err.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, errs.ErrInstantiation):
		return "instantiation"
	case errors.Is(err, errs.ErrFieldAccess):
		return "field_access"
	case errors.Is(err, errs.ErrIllegalArgument):
		return "illegal_argument"
	case errors.Is(err, errs.ErrConfiguration):
		return "configuration"
	default:
		return "other"
	}
}
