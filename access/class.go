package access

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"deepgraph/errs"
)

type fieldFactory func(owner reflect.Type, index int, sf reflect.StructField) FieldAccessor

// class is the strategy-independent part of a ClassAccessor; only the
// field accessors differ between strategies.
type class struct {
	typ      reflect.Type
	strategy Strategy
	fields   []FieldAccessor
	byName   map[string]FieldAccessor
	parent   FieldAccessor
	super    ClassAccessor

	equal       reflect.Method
	hasEqual    bool
	equalArgPtr bool

	hash    reflect.Method
	hasHash bool
}

func newClass(t reflect.Type, strategy Strategy, factory fieldFactory) *class {
	c := &class{typ: t, strategy: strategy, byName: map[string]FieldAccessor{}}
	if t == nil {
		return c
	}

	if t.Kind() == reflect.Struct {
		start := 0
		if t.NumField() > 0 {
			if f0 := t.Field(0); f0.Anonymous && f0.Type.Kind() == reflect.Struct {
				c.parent = factory(t, 0, f0)
				c.super = newClass(f0.Type, strategy, factory)
				start = 1
			}
		}

		c.fields = make([]FieldAccessor, 0, t.NumField()-start)
		for i := start; i < t.NumField(); i++ {
			fa := factory(t, i, t.Field(i))
			c.fields = append(c.fields, fa)
			if _, dup := c.byName[fa.Name()]; !dup {
				c.byName[fa.Name()] = fa
			}
		}
	}

	c.equal, c.equalArgPtr, c.hasEqual = findEqual(t)
	c.hash, c.hasHash = findHashCode(t)

	return c
}

func (c *class) Type() reflect.Type { return c.typ }

func (c *class) Strategy() Strategy { return c.strategy }

func (c *class) NewInstance() (reflect.Value, error) {
	if c.typ == nil {
		return reflect.Value{}, errs.Instantiation(nil, "no type")
	}
	if c.typ.Kind() == reflect.Interface {
		return reflect.Value{}, errs.Instantiation(c.typ, "interface types have no bare instance")
	}

	return reflect.New(c.typ).Elem(), nil
}

func (c *class) FieldAccessors() []FieldAccessor { return c.fields }

func (c *class) FieldAccessor(name string) (FieldAccessor, bool) {
	fa, ok := c.byName[name]
	return fa, ok
}

func (c *class) SuperAccessor() ClassAccessor {
	if c.super == nil {
		return nil
	}
	return c.super
}

func (c *class) Upcast(obj reflect.Value) (reflect.Value, error) {
	if c.parent == nil {
		return reflect.Value{}, errs.FieldAccess(c.typ, "", errNoParent)
	}

	return c.parent.Get(obj)
}

func (c *class) Methods() []reflect.Method {
	if c.typ == nil {
		return nil
	}

	ms := methodSet(c.typ)
	out := make([]reflect.Method, 0, ms.NumMethod())
	for i := 0; i < ms.NumMethod(); i++ {
		out = append(out, ms.Method(i))
	}

	return out
}

func (c *class) Method(name string) (reflect.Method, bool) {
	if c.typ == nil {
		return reflect.Method{}, false
	}

	return methodSet(c.typ).MethodByName(name)
}

func (c *class) ProvidesEquals() bool { return c.hasEqual }

func (c *class) ProvidesHashCode() bool { return c.hasHash }

var (
	errNoParent       = errors.New("type has no embedded parent")
	errNotAddressable = errors.New("instance is not addressable")
)

// checkInstance verifies that obj is an addressable instance of owner.
func checkInstance(owner reflect.Type, name string, obj reflect.Value) error {
	if !obj.IsValid() {
		return errs.FieldAccess(owner, name, errors.New("invalid instance"))
	}
	if obj.Type() != owner {
		return errs.FieldAccess(owner, name, fmt.Errorf("instance has type %s", obj.Type()))
	}
	if !obj.CanAddr() {
		return errs.FieldAccess(owner, name, errNotAddressable)
	}

	return nil
}

// assign stores v into target, which must be settable.
func assign(owner reflect.Type, name string, target, v reflect.Value) error {
	if !v.IsValid() {
		target.SetZero()
		return nil
	}
	if !v.Type().AssignableTo(target.Type()) {
		return errs.IllegalArgument(owner, name, "cannot assign %s to field of type %s", v.Type(), target.Type())
	}

	opened, ok := Open(v)
	if !ok {
		return errs.FieldAccess(owner, name, errors.New("value was read through an unexported field and is not addressable"))
	}
	target.Set(opened)

	return nil
}

// Open returns v unchanged when it may be used freely, or an equivalent
// view without the read-only flag reflect puts on values reached through
// unexported fields. Read-only values that are not addressable cannot be
// opened.
func Open(v reflect.Value) (reflect.Value, bool) {
	if !v.IsValid() || v.CanInterface() {
		return v, true
	}
	if !v.CanAddr() {
		return v, false
	}

	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem(), true
}

// Addressable returns v, or an addressable copy of it. Field accessors only
// accept addressable instances.
func Addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}

	opened, _ := Open(v)
	cp := reflect.New(v.Type()).Elem()
	cp.Set(opened)

	return cp
}
