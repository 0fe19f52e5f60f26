package clone

import (
	"log/slog"
	"reflect"
	"time"

	"deepgraph/descriptor"
	"deepgraph/errs"
	"deepgraph/options"
)

// Observer is notified once per top-level clone call.
type Observer interface {
	CloneFinished(t reflect.Type, nodes int, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) CloneFinished(reflect.Type, int, time.Duration, error) {}

// Driver clones object graphs. It holds no per-call state and is safe for
// concurrent use.
type Driver struct {
	cfg      options.Clone
	cache    *descriptor.Cache
	registry *Registry
	observer Observer
	logger   *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithConfig replaces the whole clone configuration.
func WithConfig(cfg options.Clone) Option {
	return func(d *Driver) {
		d.cfg = cfg
	}
}

// WithTransientFields toggles copying of transient fields.
func WithTransientFields(on bool) Option {
	return func(d *Driver) {
		d.cfg.CloneTransientFields = on
	}
}

// WithSyntheticFields toggles copying of blank fields.
func WithSyntheticFields(on bool) Option {
	return func(d *Driver) {
		d.cfg.CloneSyntheticFields = on
	}
}

// WithCloneImmutable toggles duplication of immutable values.
func WithCloneImmutable(on bool) Option {
	return func(d *Driver) {
		d.cfg.CloneImmutable = on
	}
}

// WithCustomCloneOperations toggles the use of declared clone hooks.
func WithCustomCloneOperations(on bool) Option {
	return func(d *Driver) {
		d.cfg.UseCustomCloneOperations = on
	}
}

// WithCache sets the descriptor cache.
func WithCache(c *descriptor.Cache) Option {
	return func(d *Driver) {
		d.cache = c
	}
}

// WithRegistry sets the implementor registry.
func WithRegistry(r *Registry) Option {
	return func(d *Driver) {
		d.registry = r
	}
}

// WithObserver sets the observer notified after every call.
func WithObserver(o Observer) Option {
	return func(d *Driver) {
		d.observer = o
	}
}

// WithLogger sets the logger receiving per-call debug records.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// NewDriver creates a driver with the default configuration, the default
// descriptor cache and the default implementor registry.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		cfg:      options.DefaultClone(),
		cache:    descriptor.Default(),
		registry: Default(),
		observer: nopObserver{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.observer == nil {
		d.observer = nopObserver{}
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}

	return d
}

// Config returns the configuration the driver runs with.
func (d *Driver) Config() options.Clone { return d.cfg }

// Clone returns a deep copy of v.
func (d *Driver) Clone(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	out, err := d.CloneValue(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}

	return out.Interface(), nil
}

// CloneValue returns a deep copy of v. On failure no part of the copy is
// returned.
func (d *Driver) CloneValue(v reflect.Value) (reflect.Value, error) {
	if !v.IsValid() {
		return v, nil
	}

	start := time.Now()
	s := newSession(d)

	out, err := s.clone(v, false)
	if err == nil {
		err = s.drain()
	}

	d.observer.CloneFinished(v.Type(), s.nodes, time.Since(start), err)
	if err != nil {
		d.logger.Debug("clone failed",
			slog.String("type", errs.TypeName(v.Type())),
			slog.Int("nodes", s.nodes),
			slog.Any("error", err),
		)
		return reflect.Value{}, err
	}
	d.logger.Debug("clone finished",
		slog.String("type", errs.TypeName(v.Type())),
		slog.Int("nodes", s.nodes),
		slog.Int("deferred", s.queue.Dealt()),
		slog.Int("backlog", s.backlog),
	)

	return out, nil
}

// Clone returns a deep copy of v.
func Clone[T any](v T, opts ...Option) (T, error) {
	var res T

	out, err := NewDriver(opts...).CloneValue(reflect.ValueOf(&v).Elem())
	if err != nil {
		return res, err
	}
	reflect.ValueOf(&res).Elem().Set(out)

	return res, nil
}

// MustClone is Clone that panics on error.
func MustClone[T any](v T, opts ...Option) T {
	res, err := Clone(v, opts...)
	if err != nil {
		panic(err)
	}

	return res
}
