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

// HashCode returns the structural hash of v. Seed and multiplier must be
// odd and non-zero.
func HashCode(v any, opts ...Option) (int32, error) {
	s := newSettings(opts)

	return hashValue(s.cache, reflect.ValueOf(v), s.cfg)
}

// HashValue is HashCode over a reflected value, using the default cache.
func HashValue(v reflect.Value, cfg options.Hash) (int32, error) {
	return hashValue(descriptor.Default(), v, cfg)
}

func hashValue(cache *descriptor.Cache, v reflect.Value, cfg options.Hash) (int32, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	w := &hashWalk{
		cache:  cache,
		cfg:    cfg,
		done:   make(map[node.Ident]int32),
		active: make(map[node.Ident]struct{}),
	}
	if !v.IsValid() {
		return cfg.Seed * cfg.Multiplier, nil
	}
	root, deref := rootOf(v)
	if !deref {
		return w.append(cfg.Seed, v)
	}

	id, _ := node.IdentOf(v)
	w.active[id] = struct{}{}

	return w.append(cfg.Seed, root)
}

// hashWalk is the state of one hash computation. Reference nodes contribute
// the hash of their contents, computed once from the seed: done holds the
// finished contributions and active the nodes still being hashed.
type hashWalk struct {
	cache  *descriptor.Cache
	cfg    options.Hash
	done   map[node.Ident]int32
	active map[node.Ident]struct{}
}

// visit folds the contribution of the reference v into total. A node reached
// again contributes what it did the first time, unless it is still being
// hashed: then it closes a cycle and contributes nothing.
func (w *hashWalk) visit(total int32, v reflect.Value, contents func(reflect.Value) (int32, error)) (int32, error) {
	id, _ := node.IdentOf(v)
	if c, ok := w.done[id]; ok {
		return total*w.cfg.Multiplier + c, nil
	}
	if _, ok := w.active[id]; ok {
		return total, nil
	}

	w.active[id] = struct{}{}
	c, err := contents(v)
	delete(w.active, id)
	if err != nil {
		return 0, err
	}
	w.done[id] = c

	return total*w.cfg.Multiplier + c, nil
}

func (w *hashWalk) append(total int32, v reflect.Value) (int32, error) {
	m := w.cfg.Multiplier
	t := v.Type()
	if primitive.FromReflectType(t).IsPrimitive() {
		return primitive.Append(total, m, v), nil
	}

	switch t.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return total * m, nil
		}
		return w.append(total, v.Elem())
	case reflect.Pointer:
		return w.appendPointer(total, v)
	case reflect.Slice:
		if v.IsNil() {
			return total * m, nil
		}
		return w.visit(total, v, w.elements)
	case reflect.Array:
		c, err := w.elements(v)
		if err != nil {
			return 0, err
		}
		return total*m + c, nil
	case reflect.Map:
		if v.IsNil() {
			return total * m, nil
		}
		return w.visit(total, v, w.entries)
	case reflect.Struct:
		return w.appendStruct(total, v)
	case reflect.Func:
		if v.IsNil() {
			return total * m, nil
		}
		return total*m + 1, nil
	default:
		return total*m + primitive.Fold64(uint64(v.Pointer())), nil
	}
}

func (w *hashWalk) appendPointer(total int32, v reflect.Value) (int32, error) {
	m := w.cfg.Multiplier
	if v.IsNil() {
		return total * m, nil
	}

	elem := v.Type().Elem()
	d, err := w.cache.Get(elem)
	if err != nil {
		return 0, err
	}
	if d.OverridesHashCode {
		return total*m + d.CallHashCode(v.Elem()), nil
	}
	if d.ValueHash != nil {
		return total*m + d.ValueHash(v.Elem()), nil
	}
	if d.OverridesEquals || w.cfg.DeepReflect {
		return w.visit(total, v, w.pointee)
	}

	return total*m + primitive.Fold64(uint64(v.Pointer())), nil
}

func (w *hashWalk) pointee(v reflect.Value) (int32, error) {
	return w.append(w.cfg.Seed, v.Elem())
}

// elements folds the elements of a slice or array from the seed.
func (w *hashWalk) elements(v reflect.Value) (int32, error) {
	total := w.cfg.Seed
	var err error
	for i := 0; i < v.Len(); i++ {
		if total, err = w.append(total, v.Index(i)); err != nil {
			return 0, fmt.Errorf("index %d: %w", i, err)
		}
	}

	return total, nil
}

// entries is the order-independent sum of key and value hashes.
func (w *hashWalk) entries(v reflect.Value) (int32, error) {
	var sum int32
	iter := v.MapRange()
	for iter.Next() {
		kh, err := w.append(w.cfg.Seed, iter.Key())
		if err != nil {
			return 0, err
		}
		vh, err := w.append(w.cfg.Seed, iter.Value())
		if err != nil {
			return 0, err
		}
		sum += kh ^ vh
	}

	return sum, nil
}

// appendStruct folds the fields of v level by level, stopping at the first
// level that hashes itself.
func (w *hashWalk) appendStruct(total int32, v reflect.Value) (int32, error) {
	m := w.cfg.Multiplier
	d, err := w.cache.Get(v.Type())
	if err != nil {
		return 0, err
	}

	v = access.Addressable(v)
	for level := d; level != nil; level = level.Super {
		if level.ValueHash != nil {
			return total*m + level.ValueHash(v), nil
		}
		if level.OverridesHashCode {
			return total*m + level.CallHashCode(v), nil
		}

		for _, f := range level.Fields {
			if skip(f, w.cfg.Reflect) {
				continue
			}
			fv, err := f.Accessor.Get(v)
			if err != nil {
				return 0, err
			}
			if total, err = w.append(total, fv); err != nil {
				return 0, errs.WithField(err, level.Type, f.Name)
			}
		}

		if level.Super == nil {
			break
		}
		if v, err = level.Accessor.Upcast(v); err != nil {
			return 0, err
		}
	}

	return total, nil
}
