package clone

import (
	"container/list"
	"math/big"
	"reflect"

	"deepgraph/primitive"
)

func installBuiltins(r *Registry) {
	r.Register(reflect.TypeFor[*list.List](), listImplementor{})
	r.Register(reflect.TypeFor[*big.Int](), numeric[big.Int]{copy: func(dst, src *big.Int) { dst.Set(src) }})
	r.Register(reflect.TypeFor[*big.Float](), numeric[big.Float]{copy: func(dst, src *big.Float) { dst.Copy(src) }})
	r.Register(reflect.TypeFor[*big.Rat](), numeric[big.Rat]{copy: func(dst, src *big.Rat) { dst.Set(src) }})

	r.RegisterFunc(IsSet, setImplementor{})
	r.RegisterFunc(isMap, mapImplementor{})
	r.RegisterFunc(isSlice, sliceImplementor{})
}

// IsSet reports whether t is a map used as a set, with a zero-size element.
func IsSet(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Elem().Kind() == reflect.Struct && t.Elem().Size() == 0
}

func isMap(t reflect.Type) bool { return t.Kind() == reflect.Map }

func isSlice(t reflect.Type) bool { return t.Kind() == reflect.Slice }

// sliceImplementor copies ordered lists. Elements of primitive kind are
// copied in bulk.
type sliceImplementor struct{}

func (sliceImplementor) Allocate(src reflect.Value) (reflect.Value, error) {
	return reflect.MakeSlice(src.Type(), src.Len(), src.Len()), nil
}

func (sliceImplementor) Populate(src, dst reflect.Value, c Cloner) error {
	if primitive.FromReflectType(src.Type().Elem()).IsPrimitive() {
		reflect.Copy(dst, src)
		return nil
	}

	for i := 0; i < src.Len(); i++ {
		v, err := c.Clone(src.Index(i))
		if err != nil {
			return err
		}
		dst.Index(i).Set(v)
	}

	return nil
}

// mapImplementor copies hash-keyed maps, keys included.
type mapImplementor struct{}

func (mapImplementor) Allocate(src reflect.Value) (reflect.Value, error) {
	return reflect.MakeMapWithSize(src.Type(), src.Len()), nil
}

func (mapImplementor) Populate(src, dst reflect.Value, c Cloner) error {
	iter := src.MapRange()
	for iter.Next() {
		k, err := c.Clone(iter.Key())
		if err != nil {
			return err
		}
		v, err := c.Clone(iter.Value())
		if err != nil {
			return err
		}
		dst.SetMapIndex(k, v)
	}

	return nil
}

// setImplementor copies map-backed sets; only the keys carry data.
type setImplementor struct{}

func (setImplementor) Allocate(src reflect.Value) (reflect.Value, error) {
	return reflect.MakeMapWithSize(src.Type(), src.Len()), nil
}

func (setImplementor) Populate(src, dst reflect.Value, c Cloner) error {
	present := reflect.Zero(src.Type().Elem())

	iter := src.MapRange()
	for iter.Next() {
		k, err := c.Clone(iter.Key())
		if err != nil {
			return err
		}
		dst.SetMapIndex(k, present)
	}

	return nil
}

// listImplementor copies container/list lists element by element.
type listImplementor struct{}

func (listImplementor) Allocate(reflect.Value) (reflect.Value, error) {
	return reflect.ValueOf(list.New()), nil
}

func (listImplementor) Populate(src, dst reflect.Value, c Cloner) error {
	from := src.Interface().(*list.List)
	to := dst.Interface().(*list.List)

	for e := from.Front(); e != nil; e = e.Next() {
		if e.Value == nil {
			to.PushBack(nil)
			continue
		}

		v, err := c.Clone(reflect.ValueOf(e.Value))
		if err != nil {
			return err
		}
		to.PushBack(v.Interface())
	}

	return nil
}

// numeric copies arbitrary-precision numbers, which are values behind a pointer.
type numeric[T any] struct {
	copy func(dst, src *T)
}

func (numeric[T]) Allocate(reflect.Value) (reflect.Value, error) {
	return reflect.ValueOf(new(T)), nil
}

func (n numeric[T]) Populate(src, dst reflect.Value, _ Cloner) error {
	n.copy(dst.Interface().(*T), src.Interface().(*T))
	return nil
}
