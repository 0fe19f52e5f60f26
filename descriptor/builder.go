package descriptor

import (
	"reflect"
	"time"

	"deepgraph/access"
	"deepgraph/declare"
	"deepgraph/node"
	"deepgraph/primitive"
)

// builder constructs the descriptors needed by one Get call. The building
// map holds descriptors under construction so a type that reaches itself
// receives its partial descriptor instead of recursing forever.
type builder struct {
	cache    *Cache
	building map[reflect.Type]*ClassDescriptor
}

func (b *builder) get(t reflect.Type) (*ClassDescriptor, error) {
	if d, ok := b.cache.entries.Load(t); ok {
		return d.(*ClassDescriptor), nil
	}
	if d, ok := b.building[t]; ok {
		return d, nil
	}

	start := time.Now()
	d := &ClassDescriptor{Type: t, Dispatch: node.Dispatch(t)}
	b.building[t] = d
	defer delete(b.building, t)

	if err := b.fill(d); err != nil {
		return nil, err
	}

	return b.cache.publish(d, time.Since(start)), nil
}

func (b *builder) declared(t reflect.Type) declare.Declaration {
	d, _ := b.cache.registry.Lookup(t)
	return d
}

func (b *builder) fill(d *ClassDescriptor) error {
	t := d.Type
	d.Declaration = b.declared(t)
	d.Accessor = access.New(t, b.cache.strategy)
	d.OverridesEquals = d.Accessor.ProvidesEquals()
	d.OverridesHashCode = d.Accessor.ProvidesHashCode()
	d.ValueHash = valueHashers[t]
	b.warnHashing(d)

	if d.Accessor.SuperAccessor() != nil {
		super, err := b.get(t.Field(0).Type)
		if err != nil {
			return err
		}
		d.Super = super
	}

	fields := d.Accessor.FieldAccessors()
	d.Fields = make([]*FieldDescriptor, 0, len(fields))
	for _, fa := range fields {
		d.Fields = append(d.Fields, newFieldDescriptor(fa, d.Declaration))
	}

	immutable, err := b.immutable(d)
	if err != nil {
		return err
	}
	d.Immutable = immutable

	if d.NonCloneable, err = b.nonCloneable(d); err != nil {
		return err
	}

	d.Flat = d.Declaration.Flat
	if t.Kind() == reflect.Pointer {
		d.Flat = d.Flat || b.declared(t.Elem()).Flat
	}

	d.CustomClone, err = cloneOperation(d)

	return err
}

// immutable classifies d. Value kinds are immutable when everything they
// hold is; reference kinds only when declared. A struct carrying transient
// or blank fields is never inferred immutable.
func (b *builder) immutable(d *ClassDescriptor) (bool, error) {
	if d.Declaration.Immutable {
		return true, nil
	}

	t := d.Type
	switch t.Kind() {
	case reflect.Struct:
		if d.Super != nil && !d.Super.Immutable {
			return false, nil
		}
		for _, f := range d.Fields {
			if f.Synthetic || f.IsTransient() {
				return false, nil
			}
			ok, err := b.typeImmutable(f.Type)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case reflect.Array:
		return b.typeImmutable(t.Elem())
	default:
		return b.shallowImmutable(t), nil
	}
}

func (b *builder) typeImmutable(t reflect.Type) (bool, error) {
	switch t.Kind() {
	case reflect.Struct, reflect.Array:
		d, err := b.get(t)
		if err != nil {
			return false, err
		}
		return d.Immutable, nil
	default:
		return b.shallowImmutable(t), nil
	}
}

// shallowImmutable classifies t without building descriptors.
func (b *builder) shallowImmutable(t reflect.Type) bool {
	if primitive.FromReflectType(t).IsPrimitive() {
		return true
	}
	if b.declared(t).Immutable {
		return true
	}

	return t.Kind() == reflect.Pointer && b.declared(t.Elem()).Immutable
}

func (b *builder) nonCloneable(d *ClassDescriptor) (bool, error) {
	if d.Declaration.NonCloneable {
		return true, nil
	}

	switch d.Type.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true, nil
	case reflect.Pointer:
		elem, err := b.get(d.Type.Elem())
		if err != nil {
			return false, err
		}
		return elem.NonCloneable, nil
	default:
		return false, nil
	}
}
