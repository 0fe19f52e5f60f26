package access

import (
	"reflect"

	"deepgraph/primitive"
)

const (
	equalMethod    = "Equal"
	hashCodeMethod = "HashCode"
)

// methodSet returns the type whose method set is the widest available for t.
func methodSet(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return t
	default:
		return reflect.PointerTo(t)
	}
}

// findEqual looks for Equal(T) bool or Equal(*T) bool. Promoted methods take
// the embedded type as argument and are rejected by the parameter check.
func findEqual(t reflect.Type) (m reflect.Method, argPtr bool, ok bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return
	}

	m, ok = methodSet(t).MethodByName(equalMethod)
	if !ok {
		return
	}

	mt := m.Type
	if mt.NumIn() != 2 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Bool {
		return reflect.Method{}, false, false
	}

	switch mt.In(1) {
	case t:
		return m, false, true
	case reflect.PointerTo(t):
		return m, true, true
	default:
		return reflect.Method{}, false, false
	}
}

// findHashCode looks for HashCode() returning any integer kind. When an
// embedded field also provides HashCode the method is taken to be promoted.
func findHashCode(t reflect.Type) (m reflect.Method, ok bool) {
	m, ok, embedded := lookupHashCode(t)
	if !ok || embedded {
		return reflect.Method{}, false
	}

	return m, true
}

// ShadowedHashCode reports whether t has a well-formed HashCode that is
// ignored because an embedded field provides one too. Reflection cannot
// tell such a method from one the type redeclares.
func ShadowedHashCode(t reflect.Type) bool {
	_, ok, embedded := lookupHashCode(t)

	return ok && embedded
}

func lookupHashCode(t reflect.Type) (m reflect.Method, ok, embedded bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return
	}

	m, ok = methodSet(t).MethodByName(hashCodeMethod)
	if !ok {
		return
	}

	mt := m.Type
	if mt.NumIn() != 1 || mt.NumOut() != 1 || !primitive.FromReflectType(mt.Out(0)).IsInteger() {
		return reflect.Method{}, false, false
	}

	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() == reflect.Struct {
		for i := 0; i < base.NumField(); i++ {
			f := base.Field(i)
			if !f.Anonymous || f.Type.Kind() == reflect.Interface {
				continue
			}
			if _, promoted := methodSet(f.Type).MethodByName(hashCodeMethod); promoted {
				return m, true, true
			}
		}
	}

	return m, true, false
}

func (c *class) InvokeEqual(l, r reflect.Value) bool {
	arg := r
	if c.equalArgPtr {
		arg = addressOf(c.typ, r)
	}

	out := c.equal.Func.Call([]reflect.Value{c.receiver(l), arg})

	return out[0].Bool()
}

func (c *class) InvokeHashCode(v reflect.Value) int32 {
	out := c.hash.Func.Call([]reflect.Value{c.receiver(v)})[0]

	kind := primitive.FromReflectType(out.Type())
	switch {
	case kind.IsSigned() && kind.Bits() > 32:
		return primitive.Fold64(uint64(out.Int()))
	case kind.IsSigned():
		return int32(out.Int())
	case kind.Bits() > 32:
		return primitive.Fold64(out.Uint())
	default:
		return int32(uint32(out.Uint()))
	}
}

// receiver adapts v to the receiver expected by functions from methodSet(c.typ).
func (c *class) receiver(v reflect.Value) reflect.Value {
	if c.typ.Kind() == reflect.Pointer {
		return v
	}

	return addressOf(c.typ, v)
}

// addressOf returns a pointer to v, copying it when v is not addressable.
func addressOf(t reflect.Type, v reflect.Value) reflect.Value {
	if opened, ok := Open(v); ok && opened.CanAddr() {
		return opened.Addr()
	} else if ok {
		v = opened
	}

	p := reflect.New(t)
	p.Elem().Set(v)

	return p
}
