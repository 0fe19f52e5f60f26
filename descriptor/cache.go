package descriptor

import (
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"deepgraph/access"
	"deepgraph/declare"
	"deepgraph/errs"
)

// Observer is notified of cache activity.
type Observer interface {
	DescriptorHit(t reflect.Type)
	DescriptorMiss(t reflect.Type)
	DescriptorBuilt(t reflect.Type, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) DescriptorHit(reflect.Type)                  {}
func (nopObserver) DescriptorMiss(reflect.Type)                 {}
func (nopObserver) DescriptorBuilt(reflect.Type, time.Duration) {}

// Cache maps types to their descriptors. It is safe for concurrent use;
// concurrent first lookups of one type may build it twice, but only the
// first published descriptor is ever returned.
type Cache struct {
	entries sync.Map // reflect.Type -> *ClassDescriptor
	size    atomic.Int64

	registry *declare.Registry
	strategy access.Strategy
	observer Observer
	logger   *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithRegistry sets the declarations consulted while building descriptors.
func WithRegistry(r *declare.Registry) Option {
	return func(c *Cache) {
		c.registry = r
	}
}

// WithStrategy forces the access strategy of the descriptors' accessors.
func WithStrategy(s access.Strategy) Option {
	return func(c *Cache) {
		c.strategy = s
	}
}

// WithObserver sets the observer notified of hits, misses and builds.
func WithObserver(o Observer) Option {
	return func(c *Cache) {
		c.observer = o
	}
}

// WithLogger sets the logger receiving build records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = l
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		registry: declare.Default(),
		strategy: access.Selected(),
		observer: nopObserver{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	return c
}

var (
	defaultOnce  sync.Once
	defaultCache *Cache
)

// Default returns the process-wide cache bound to declare.Default.
func Default() *Cache {
	defaultOnce.Do(func() {
		defaultCache = NewCache()
	})

	return defaultCache
}

// Registry returns the declarations the cache reads.
func (c *Cache) Registry() *declare.Registry { return c.registry }

// Strategy returns the access strategy of the cached accessors.
func (c *Cache) Strategy() access.Strategy { return c.strategy }

// Get returns the descriptor of t, building and publishing it on first use.
// Build failures are not cached.
func (c *Cache) Get(t reflect.Type) (*ClassDescriptor, error) {
	if t == nil {
		return nil, errs.IllegalArgument(nil, "", "no descriptor for the nil type")
	}

	if d, ok := c.entries.Load(t); ok {
		c.observer.DescriptorHit(t)
		return d.(*ClassDescriptor), nil
	}

	c.observer.DescriptorMiss(t)
	b := &builder{cache: c, building: make(map[reflect.Type]*ClassDescriptor)}

	d, err := b.get(t)
	if err != nil {
		c.logger.Debug("descriptor build failed", slog.String("type", errs.TypeName(t)), slog.Any("error", err))
		return nil, err
	}

	return d, nil
}

// MustGet is Get that panics on error.
func (c *Cache) MustGet(t reflect.Type) *ClassDescriptor {
	d, err := c.Get(t)
	if err != nil {
		panic(err)
	}

	return d
}

// Len returns the number of published descriptors.
func (c *Cache) Len() int {
	return int(c.size.Load())
}

// publish stores d unless another descriptor for the type won the race,
// and returns the one that is now cached.
func (c *Cache) publish(d *ClassDescriptor, elapsed time.Duration) *ClassDescriptor {
	actual, loaded := c.entries.LoadOrStore(d.Type, d)
	if loaded {
		return actual.(*ClassDescriptor)
	}

	c.size.Add(1)
	c.observer.DescriptorBuilt(d.Type, elapsed)
	c.logger.Debug("descriptor built",
		slog.String("type", errs.TypeName(d.Type)),
		slog.String("dispatch", d.Dispatch.String()),
		slog.Int("fields", len(d.Fields)),
		slog.Bool("immutable", d.Immutable),
		slog.Bool("noclone", d.NonCloneable),
		slog.Bool("flat", d.Flat),
		slog.Bool("custom_clone", d.CustomClone != nil),
	)

	return d
}
