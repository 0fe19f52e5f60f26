package structural

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

// Equals reports whether lhs and rhs are structurally equal.
func Equals(lhs, rhs any, opts ...Option) (bool, error) {
	s := newSettings(opts)
	if lhs == nil || rhs == nil {
		return lhs == nil && rhs == nil, nil
	}

	return equalValues(s.cache, reflect.ValueOf(lhs), reflect.ValueOf(rhs), s.cfg.AsEquals())
}

// EqualValues is Equals over reflected values, using the default cache.
func EqualValues(l, r reflect.Value, cfg options.Equals) (bool, error) {
	return equalValues(descriptor.Default(), l, r, cfg)
}

func equalValues(cache *descriptor.Cache, l, r reflect.Value, cfg options.Equals) (bool, error) {
	if !l.IsValid() || !r.IsValid() {
		return l.IsValid() == r.IsValid(), nil
	}

	l, r, ok := unify(l, r)
	if !ok {
		return false, nil
	}

	w := &equalsWalk{cache: cache, cfg: cfg, visited: make(map[node.Pair]struct{})}
	lr, lok := rootOf(l)
	rr, rok := rootOf(r)
	if !lok || !rok {
		return w.equal(l, r)
	}
	if l.UnsafePointer() == r.UnsafePointer() {
		return true, nil
	}
	w.seen(l, r)

	return w.equal(lr, rr)
}

// unify brings l and r to one type. Differing types are comparable only
// when one is a defined type over the other.
func unify(l, r reflect.Value) (reflect.Value, reflect.Value, bool) {
	lt, rt := l.Type(), r.Type()
	switch {
	case lt == rt:
		return l, r, true
	case defined(lt) && !defined(rt) && rt.ConvertibleTo(lt):
		return l, r.Convert(lt), true
	case defined(rt) && !defined(lt) && lt.ConvertibleTo(rt):
		return l.Convert(rt), r, true
	default:
		return l, r, false
	}
}

// defined reports whether t was declared by a type declaration, as opposed
// to a predeclared or literal type.
func defined(t reflect.Type) bool {
	return t.Name() != "" && t.PkgPath() != ""
}

type equalsWalk struct {
	cache   *descriptor.Cache
	cfg     options.Equals
	visited map[node.Pair]struct{}
}

// seen marks the pair and reports whether it was already under comparison.
func (w *equalsWalk) seen(l, r reflect.Value) bool {
	lid, _ := node.IdentOf(l)
	rid, _ := node.IdentOf(r)

	key := node.Pair{L: lid, R: rid}
	if _, ok := w.visited[key]; ok {
		return true
	}
	w.visited[key] = struct{}{}

	return false
}

func (w *equalsWalk) equal(l, r reflect.Value) (bool, error) {
	t := l.Type()
	if primitive.FromReflectType(t).IsPrimitive() {
		return primitive.Equal(l, r), nil
	}

	switch t.Kind() {
	case reflect.Interface:
		if l.IsNil() || r.IsNil() {
			return l.IsNil() && r.IsNil(), nil
		}
		le, re := l.Elem(), r.Elem()
		if le.Type() != re.Type() {
			return false, nil
		}
		return w.equal(le, re)
	case reflect.Pointer:
		return w.equalPointers(l, r)
	case reflect.Slice:
		if l.IsNil() || r.IsNil() {
			return l.IsNil() && r.IsNil(), nil
		}
		if l.Len() != r.Len() {
			return false, nil
		}
		if l.UnsafePointer() == r.UnsafePointer() || w.seen(l, r) {
			return true, nil
		}
		return w.equalElements(l, r)
	case reflect.Array:
		return w.equalElements(l, r)
	case reflect.Map:
		return w.equalMaps(l, r)
	case reflect.Struct:
		return w.equalStructs(l, r)
	case reflect.Func:
		return l.IsNil() && r.IsNil(), nil
	default:
		// chan, unsafe.Pointer
		return l.Pointer() == r.Pointer(), nil
	}
}

func (w *equalsWalk) equalPointers(l, r reflect.Value) (bool, error) {
	if l.IsNil() || r.IsNil() {
		return l.IsNil() && r.IsNil(), nil
	}
	if l.UnsafePointer() == r.UnsafePointer() {
		return true, nil
	}

	d, err := w.cache.Get(l.Type().Elem())
	if err != nil {
		return false, err
	}
	if d.OverridesEquals {
		return d.CallEqual(l.Elem(), r.Elem()), nil
	}
	if !w.cfg.DeepReflect {
		return false, nil
	}
	if w.seen(l, r) {
		return true, nil
	}

	return w.equal(l.Elem(), r.Elem())
}

func (w *equalsWalk) equalElements(l, r reflect.Value) (bool, error) {
	for i := 0; i < l.Len(); i++ {
		ok, err := w.equal(l.Index(i), r.Index(i))
		if err != nil {
			return false, fmt.Errorf("index %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}

func (w *equalsWalk) equalMaps(l, r reflect.Value) (bool, error) {
	if l.IsNil() || r.IsNil() {
		return l.IsNil() && r.IsNil(), nil
	}
	if l.Len() != r.Len() {
		return false, nil
	}
	if l.UnsafePointer() == r.UnsafePointer() || w.seen(l, r) {
		return true, nil
	}

	iter := l.MapRange()
	for iter.Next() {
		rv := r.MapIndex(iter.Key())
		if !rv.IsValid() {
			return false, nil
		}
		ok, err := w.equal(iter.Value(), rv)
		if err != nil || !ok {
			return false, err
		}
	}

	return true, nil
}

func (w *equalsWalk) equalStructs(l, r reflect.Value) (bool, error) {
	d, err := w.cache.Get(l.Type())
	if err != nil {
		return false, err
	}

	l, r = access.Addressable(l), access.Addressable(r)
	for level := d; level != nil; level = level.Super {
		if level.OverridesEquals {
			return level.CallEqual(l, r), nil
		}

		for _, f := range level.Fields {
			if skip(f, w.cfg.Reflect) {
				continue
			}
			ok, err := w.equalField(f, l, r)
			if err != nil {
				return false, errs.WithField(err, level.Type, f.Name)
			}
			if !ok {
				return false, nil
			}
		}

		if level.Super == nil {
			break
		}
		if l, err = level.Accessor.Upcast(l); err != nil {
			return false, err
		}
		if r, err = level.Accessor.Upcast(r); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (w *equalsWalk) equalField(f *descriptor.FieldDescriptor, l, r reflect.Value) (bool, error) {
	lv, err := f.Accessor.Get(l)
	if err != nil {
		return false, err
	}
	rv, err := f.Accessor.Get(r)
	if err != nil {
		return false, err
	}

	return w.equal(lv, rv)
}

