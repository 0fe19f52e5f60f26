package access

import (
	"reflect"
	"unsafe"

	"deepgraph/errs"
	"deepgraph/primitive"
)

// portableField reaches the field through reflect.Value.Field on every call.
type portableField struct {
	owner reflect.Type
	index int
	sf    reflect.StructField
	kind  primitive.KindEnum
}

func newPortableField(owner reflect.Type, index int, sf reflect.StructField) FieldAccessor {
	return &portableField{
		owner: owner,
		index: index,
		sf:    sf,
		kind:  primitive.FromReflectType(sf.Type),
	}
}

func (f *portableField) Name() string                  { return f.sf.Name }
func (f *portableField) Index() int                    { return f.index }
func (f *portableField) Field() reflect.StructField    { return f.sf }
func (f *portableField) Primitive() primitive.KindEnum { return f.kind }

// view returns a settable value for the field; obj must be addressable.
func (f *portableField) view(obj reflect.Value) reflect.Value {
	v := obj.Field(f.index)
	if v.CanSet() {
		return v
	}

	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

func (f *portableField) Get(obj reflect.Value) (reflect.Value, error) {
	if err := checkInstance(f.owner, f.sf.Name, obj); err != nil {
		return reflect.Value{}, err
	}

	return f.view(obj), nil
}

func (f *portableField) Set(obj, v reflect.Value) error {
	if err := checkInstance(f.owner, f.sf.Name, obj); err != nil {
		return err
	}

	return assign(f.owner, f.sf.Name, f.view(obj), v)
}

func (f *portableField) CopyPrimitive(dst, src reflect.Value) error {
	if !f.kind.IsPrimitive() {
		return errs.IllegalArgument(f.owner, f.sf.Name, "field of type %s is not primitive", f.sf.Type)
	}
	if err := checkInstance(f.owner, f.sf.Name, dst); err != nil {
		return err
	}
	if err := checkInstance(f.owner, f.sf.Name, src); err != nil {
		return err
	}

	f.view(dst).Set(f.view(src))

	return nil
}

func (f *portableField) Bool(obj reflect.Value) bool           { return f.view(obj).Bool() }
func (f *portableField) SetBool(obj reflect.Value, b bool)     { f.view(obj).SetBool(b) }
func (f *portableField) Int(obj reflect.Value) int64           { return f.view(obj).Int() }
func (f *portableField) SetInt(obj reflect.Value, i int64)     { f.view(obj).SetInt(i) }
func (f *portableField) Uint(obj reflect.Value) uint64         { return f.view(obj).Uint() }
func (f *portableField) SetUint(obj reflect.Value, u uint64)   { f.view(obj).SetUint(u) }
func (f *portableField) Float(obj reflect.Value) float64       { return f.view(obj).Float() }
func (f *portableField) SetFloat(obj reflect.Value, x float64) { f.view(obj).SetFloat(x) }
func (f *portableField) Complex(obj reflect.Value) complex128  { return f.view(obj).Complex() }
func (f *portableField) SetComplex(obj reflect.Value, c complex128) {
	f.view(obj).SetComplex(c)
}
func (f *portableField) String(obj reflect.Value) string       { return f.view(obj).String() }
func (f *portableField) SetString(obj reflect.Value, s string) { f.view(obj).SetString(s) }
