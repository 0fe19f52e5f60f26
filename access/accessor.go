package access

import (
	"reflect"

	"deepgraph/primitive"
)

// ClassAccessor is the capability bound to one type.
type ClassAccessor interface {
	Type() reflect.Type
	Strategy() Strategy

	// NewInstance returns an addressable zero value of the type. Interface
	// types and the nil type cannot be instantiated.
	NewInstance() (reflect.Value, error)

	// FieldAccessors lists the fields declared by the type itself, in
	// declaration order, without the parent-embedding field.
	FieldAccessors() []FieldAccessor
	FieldAccessor(name string) (FieldAccessor, bool)

	// SuperAccessor describes the embedded parent, or nil at the root.
	SuperAccessor() ClassAccessor
	// Upcast returns the addressable parent view of obj.
	Upcast(obj reflect.Value) (reflect.Value, error)

	// Methods lists the method set of the type and of a pointer to it.
	Methods() []reflect.Method
	Method(name string) (reflect.Method, bool)

	// ProvidesEquals reports whether the type itself declares Equal(T) bool
	// (or Equal(*T) bool). Methods promoted from embedded fields do not count.
	ProvidesEquals() bool
	// ProvidesHashCode reports whether the type itself declares HashCode().
	ProvidesHashCode() bool
	// InvokeEqual calls the declared Equal method. It must only be called
	// when ProvidesEquals is true.
	InvokeEqual(l, r reflect.Value) bool
	// InvokeHashCode calls the declared HashCode method, folding wider
	// results to 32 bits. It must only be called when ProvidesHashCode is true.
	InvokeHashCode(v reflect.Value) int32
}

// FieldAccessor is the capability bound to one field of one struct type.
//
// Every obj argument must be an addressable value of the owning struct
// type; Get and Set report errs.ErrFieldAccess otherwise. The typed
// accessors skip that check and panic on misuse, they exist for the hot
// copy path where the caller already holds a valid instance.
type FieldAccessor interface {
	Name() string
	Index() int
	Field() reflect.StructField
	// Primitive is the primitive kind of the field, or zero.
	Primitive() primitive.KindEnum

	// Get returns a settable view of the field within obj.
	Get(obj reflect.Value) (reflect.Value, error)
	// Set stores v into the field; a value not assignable to the field type
	// yields errs.ErrIllegalArgument. An invalid v stores the zero value.
	Set(obj, v reflect.Value) error
	// CopyPrimitive copies the field from src into dst without boxing.
	CopyPrimitive(dst, src reflect.Value) error

	Bool(obj reflect.Value) bool
	SetBool(obj reflect.Value, b bool)
	Int(obj reflect.Value) int64
	SetInt(obj reflect.Value, i int64)
	Uint(obj reflect.Value) uint64
	SetUint(obj reflect.Value, u uint64)
	Float(obj reflect.Value) float64
	SetFloat(obj reflect.Value, f float64)
	Complex(obj reflect.Value) complex128
	SetComplex(obj reflect.Value, c complex128)
	String(obj reflect.Value) string
	SetString(obj reflect.Value, s string)
}

// For builds a ClassAccessor for t with the strategy chosen by Selected.
func For(t reflect.Type) ClassAccessor {
	return New(t, Selected())
}

// New builds a ClassAccessor for t with the given strategy.
func New(t reflect.Type, strategy Strategy) ClassAccessor {
	switch strategy {
	case StrategyDirect:
		return newClass(t, strategy, newDirectField)
	default:
		return newClass(t, StrategyPortable, newPortableField)
	}
}
