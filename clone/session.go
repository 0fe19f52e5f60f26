package clone

import (
	"fmt"
	"reflect"

	"deepgraph/access"
	"deepgraph/descriptor"
	"deepgraph/errs"
	"deepgraph/node"
	"deepgraph/options"
	"deepgraph/primitive"
)

// task is a reference copy whose contents are still to be filled in.
type task struct {
	src, dst reflect.Value
	impl     Implementor // nil for plain pointers
	flat     bool
}

// session is the state of one top-level clone call.
type session struct {
	driver  *Driver
	cfg     options.Clone
	seen    map[node.Ident]reflect.Value
	queue   node.Dealer[task]
	nodes   int
	backlog int // longest the queue got
}

func newSession(d *Driver) *session {
	return &session{
		driver: d,
		cfg:    d.cfg,
		seen:   make(map[node.Ident]reflect.Value),
	}
}

// cloner hands the session to implementors with the flat mode of the
// container being populated.
type cloner struct {
	s    *session
	flat bool
}

func (c cloner) Clone(v reflect.Value) (reflect.Value, error) {
	return c.s.clone(v, c.flat)
}

func (s *session) drain() error {
	for {
		t, ok := s.queue.NextNeeds()
		if !ok {
			return nil
		}

		if t.impl != nil {
			if err := t.impl.Populate(t.src, t.dst, cloner{s: s, flat: t.flat}); err != nil {
				return err
			}
			continue
		}

		v, err := s.clone(t.src.Elem(), t.flat)
		if err != nil {
			return err
		}
		t.dst.Elem().Set(v)
	}
}

func (s *session) enqueue(t task) {
	s.queue.Needs(t)
	s.backlog = max(s.backlog, s.queue.Pending())
}

func (s *session) record(tracked bool, id node.Ident, v reflect.Value) {
	if tracked {
		s.seen[id] = v
	}
}

// clone returns the copy of src. Copies of references may still be
// incomplete when clone returns; drain completes them.
func (s *session) clone(src reflect.Value, flat bool) (reflect.Value, error) {
	t := src.Type()
	if primitive.FromReflectType(t).IsPrimitive() {
		return src, nil
	}
	s.nodes++

	switch t.Kind() {
	case reflect.Interface:
		if src.IsNil() {
			return reflect.Zero(t), nil
		}
		inner, err := s.clone(src.Elem(), flat)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t).Elem()
		out.Set(inner)
		return out, nil
	case reflect.Pointer, reflect.Slice, reflect.Map:
		if src.IsNil() {
			return reflect.Zero(t), nil
		}
	}

	var (
		id      node.Ident
		tracked bool
	)
	if !flat {
		if id, tracked = node.IdentOf(src); tracked {
			if hit, ok := s.seen[id]; ok {
				return hit, nil
			}
		}
	}

	d, err := s.driver.cache.Get(t)
	if err != nil {
		return reflect.Value{}, err
	}
	if (d.Immutable && !s.cfg.CloneImmutable) || d.NonCloneable {
		return src, nil
	}
	flat = flat || d.Flat

	if d.CustomClone != nil && s.cfg.UseCustomCloneOperations {
		out, err := d.CustomClone.Invoke(src)
		if err != nil {
			return reflect.Value{}, err
		}
		s.record(tracked, id, out)
		return out, nil
	}

	impl, ok := s.driver.registry.Lookup(t)
	if !ok {
		switch {
		case IsSet(t):
			impl = setImplementor{}
		case t.Kind() == reflect.Map:
			impl = mapImplementor{}
		case t.Kind() == reflect.Slice:
			impl = sliceImplementor{}
		}
	}
	if impl != nil {
		return s.delegate(impl, src, flat, tracked, id)
	}

	switch t.Kind() {
	case reflect.Pointer:
		dst := reflect.New(t.Elem())
		s.record(tracked, id, dst)
		s.enqueue(task{src: src, dst: dst, flat: flat})
		return dst, nil
	case reflect.Struct:
		dst, err := d.Accessor.NewInstance()
		if err != nil {
			return reflect.Value{}, err
		}
		if err := s.populate(d, dst, access.Addressable(src), flat); err != nil {
			return reflect.Value{}, err
		}
		return dst, nil
	case reflect.Array:
		return s.cloneArray(src, flat)
	default:
		return src, nil
	}
}

func (s *session) delegate(impl Implementor, src reflect.Value, flat, tracked bool, id node.Ident) (reflect.Value, error) {
	t := src.Type()

	dst, err := impl.Allocate(src)
	if err != nil {
		return reflect.Value{}, &errs.Error{Kind: errs.ErrInstantiation, Type: t, Message: "implementor allocation failed", Cause: err}
	}
	if !dst.IsValid() || dst.Type() != t {
		return reflect.Value{}, errs.IllegalArgument(t, "", "implementor allocated %s", typeOf(dst))
	}
	s.record(tracked, id, dst)

	switch dst.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		s.enqueue(task{src: src, dst: dst, impl: impl, flat: flat})
		return dst, nil
	}

	// a value copy cannot be completed later
	if !dst.CanSet() {
		cp := reflect.New(t).Elem()
		cp.Set(dst)
		dst = cp
	}
	if err := impl.Populate(src, dst, cloner{s: s, flat: flat}); err != nil {
		return reflect.Value{}, err
	}

	return dst, nil
}

func (s *session) populate(d *descriptor.ClassDescriptor, dst, src reflect.Value, flat bool) error {
	for level := d; level != nil; level = level.Super {
		for _, f := range level.Fields {
			if f.Synthetic && !s.cfg.CloneSyntheticFields {
				continue
			}
			if f.IsTransient() && !s.cfg.CloneTransientFields {
				continue
			}
			if err := s.copyField(f, dst, src, flat); err != nil {
				return errs.WithField(err, level.Type, f.Name)
			}
		}

		if level.Super == nil {
			break
		}

		var err error
		if dst, err = level.Accessor.Upcast(dst); err != nil {
			return err
		}
		if src, err = level.Accessor.Upcast(src); err != nil {
			return err
		}
	}

	return nil
}

func (s *session) copyField(f *descriptor.FieldDescriptor, dst, src reflect.Value, flat bool) error {
	if f.Kind == descriptor.FieldPrimitive {
		return f.Accessor.CopyPrimitive(dst, src)
	}

	v, err := f.Accessor.Get(src)
	if err != nil {
		return err
	}
	cv, err := s.clone(v, flat)
	if err != nil {
		return err
	}

	return f.Accessor.Set(dst, cv)
}

func (s *session) cloneArray(src reflect.Value, flat bool) (reflect.Value, error) {
	t := src.Type()
	dst := reflect.New(t).Elem()

	if primitive.FromReflectType(t.Elem()).IsPrimitive() {
		dst.Set(src)
		return dst, nil
	}

	for i := 0; i < src.Len(); i++ {
		v, err := s.clone(src.Index(i), flat)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
		}
		dst.Index(i).Set(v)
	}

	return dst, nil
}

func typeOf(v reflect.Value) string {
	if !v.IsValid() {
		return "nothing"
	}

	return v.Type().String()
}
