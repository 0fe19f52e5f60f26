package access

import (
	"reflect"
	"unsafe"

	"deepgraph/errs"
	"deepgraph/primitive"
)

// directField addresses the field at a fixed offset from the instance base
// and moves primitives through typed pointers.
type directField struct {
	owner  reflect.Type
	index  int
	sf     reflect.StructField
	kind   primitive.KindEnum
	offset uintptr
}

func newDirectField(owner reflect.Type, index int, sf reflect.StructField) FieldAccessor {
	return &directField{
		owner:  owner,
		index:  index,
		sf:     sf,
		kind:   primitive.FromReflectType(sf.Type),
		offset: sf.Offset,
	}
}

func (f *directField) Name() string                  { return f.sf.Name }
func (f *directField) Index() int                    { return f.index }
func (f *directField) Field() reflect.StructField    { return f.sf }
func (f *directField) Primitive() primitive.KindEnum { return f.kind }

func (f *directField) ptr(obj reflect.Value) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(obj.UnsafeAddr()), f.offset)
}

func (f *directField) Get(obj reflect.Value) (reflect.Value, error) {
	if err := checkInstance(f.owner, f.sf.Name, obj); err != nil {
		return reflect.Value{}, err
	}

	return reflect.NewAt(f.sf.Type, f.ptr(obj)).Elem(), nil
}

func (f *directField) Set(obj, v reflect.Value) error {
	if err := checkInstance(f.owner, f.sf.Name, obj); err != nil {
		return err
	}

	return assign(f.owner, f.sf.Name, reflect.NewAt(f.sf.Type, f.ptr(obj)).Elem(), v)
}

func (f *directField) CopyPrimitive(dst, src reflect.Value) error {
	if !f.kind.IsPrimitive() {
		return errs.IllegalArgument(f.owner, f.sf.Name, "field of type %s is not primitive", f.sf.Type)
	}
	if err := checkInstance(f.owner, f.sf.Name, dst); err != nil {
		return err
	}
	if err := checkInstance(f.owner, f.sf.Name, src); err != nil {
		return err
	}

	pd, ps := f.ptr(dst), f.ptr(src)
	switch f.kind {
	case primitive.KindBool, primitive.KindInt8, primitive.KindUint8:
		*(*uint8)(pd) = *(*uint8)(ps)
	case primitive.KindInt16, primitive.KindUint16:
		*(*uint16)(pd) = *(*uint16)(ps)
	case primitive.KindInt32, primitive.KindUint32, primitive.KindFloat32:
		*(*uint32)(pd) = *(*uint32)(ps)
	case primitive.KindInt64, primitive.KindUint64, primitive.KindFloat64, primitive.KindComplex64:
		*(*uint64)(pd) = *(*uint64)(ps)
	case primitive.KindInt, primitive.KindUint, primitive.KindUintptr:
		*(*uintptr)(pd) = *(*uintptr)(ps)
	case primitive.KindComplex128:
		*(*complex128)(pd) = *(*complex128)(ps)
	case primitive.KindString:
		*(*string)(pd) = *(*string)(ps)
	}

	return nil
}

func (f *directField) Bool(obj reflect.Value) bool {
	return *(*bool)(f.ptr(obj))
}

func (f *directField) SetBool(obj reflect.Value, b bool) {
	*(*bool)(f.ptr(obj)) = b
}

func (f *directField) Int(obj reflect.Value) int64 {
	p := f.ptr(obj)
	switch f.kind {
	case primitive.KindInt:
		return int64(*(*int)(p))
	case primitive.KindInt8:
		return int64(*(*int8)(p))
	case primitive.KindInt16:
		return int64(*(*int16)(p))
	case primitive.KindInt32:
		return int64(*(*int32)(p))
	case primitive.KindInt64:
		return *(*int64)(p)
	default:
		panic("access: Int on field " + f.sf.Name + " of kind " + f.kind.String())
	}
}

func (f *directField) SetInt(obj reflect.Value, i int64) {
	p := f.ptr(obj)
	switch f.kind {
	case primitive.KindInt:
		*(*int)(p) = int(i)
	case primitive.KindInt8:
		*(*int8)(p) = int8(i)
	case primitive.KindInt16:
		*(*int16)(p) = int16(i)
	case primitive.KindInt32:
		*(*int32)(p) = int32(i)
	case primitive.KindInt64:
		*(*int64)(p) = i
	default:
		panic("access: SetInt on field " + f.sf.Name + " of kind " + f.kind.String())
	}
}

func (f *directField) Uint(obj reflect.Value) uint64 {
	p := f.ptr(obj)
	switch f.kind {
	case primitive.KindUint:
		return uint64(*(*uint)(p))
	case primitive.KindUint8:
		return uint64(*(*uint8)(p))
	case primitive.KindUint16:
		return uint64(*(*uint16)(p))
	case primitive.KindUint32:
		return uint64(*(*uint32)(p))
	case primitive.KindUint64:
		return *(*uint64)(p)
	case primitive.KindUintptr:
		return uint64(*(*uintptr)(p))
	default:
		panic("access: Uint on field " + f.sf.Name + " of kind " + f.kind.String())
	}
}

func (f *directField) SetUint(obj reflect.Value, u uint64) {
	p := f.ptr(obj)
	switch f.kind {
	case primitive.KindUint:
		*(*uint)(p) = uint(u)
	case primitive.KindUint8:
		*(*uint8)(p) = uint8(u)
	case primitive.KindUint16:
		*(*uint16)(p) = uint16(u)
	case primitive.KindUint32:
		*(*uint32)(p) = uint32(u)
	case primitive.KindUint64:
		*(*uint64)(p) = u
	case primitive.KindUintptr:
		*(*uintptr)(p) = uintptr(u)
	default:
		panic("access: SetUint on field " + f.sf.Name + " of kind " + f.kind.String())
	}
}

func (f *directField) Float(obj reflect.Value) float64 {
	p := f.ptr(obj)
	switch f.kind {
	case primitive.KindFloat32:
		return float64(*(*float32)(p))
	case primitive.KindFloat64:
		return *(*float64)(p)
	default:
		panic("access: Float on field " + f.sf.Name + " of kind " + f.kind.String())
	}
}

func (f *directField) SetFloat(obj reflect.Value, x float64) {
	p := f.ptr(obj)
	switch f.kind {
	case primitive.KindFloat32:
		*(*float32)(p) = float32(x)
	case primitive.KindFloat64:
		*(*float64)(p) = x
	default:
		panic("access: SetFloat on field " + f.sf.Name + " of kind " + f.kind.String())
	}
}

func (f *directField) Complex(obj reflect.Value) complex128 {
	p := f.ptr(obj)
	switch f.kind {
	case primitive.KindComplex64:
		return complex128(*(*complex64)(p))
	case primitive.KindComplex128:
		return *(*complex128)(p)
	default:
		panic("access: Complex on field " + f.sf.Name + " of kind " + f.kind.String())
	}
}

func (f *directField) SetComplex(obj reflect.Value, c complex128) {
	p := f.ptr(obj)
	switch f.kind {
	case primitive.KindComplex64:
		*(*complex64)(p) = complex64(c)
	case primitive.KindComplex128:
		*(*complex128)(p) = c
	default:
		panic("access: SetComplex on field " + f.sf.Name + " of kind " + f.kind.String())
	}
}

func (f *directField) String(obj reflect.Value) string {
	return *(*string)(f.ptr(obj))
}

func (f *directField) SetString(obj reflect.Value, s string) {
	*(*string)(f.ptr(obj)) = s
}
