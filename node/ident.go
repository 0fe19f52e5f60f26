package node

import (
	"reflect"
	"unsafe"
)

// Ident is the identity of a reference value: the address it points at,
// qualified by its type. A pointer to a struct and a pointer to its first
// field share an address but not an Ident. Slices additionally carry their
// length and capacity, so two windows over one backing array are distinct.
type Ident struct {
	Type reflect.Type
	Ptr  unsafe.Pointer
	Len  int
	Cap  int
}

// IdentOf returns the identity of v, or false when v has none (value kinds
// and nil references).
func IdentOf(v reflect.Value) (Ident, bool) {
	switch v.Kind() {
	default:
		return Ident{}, false
	case reflect.Pointer, reflect.Map:
		if v.IsNil() {
			return Ident{}, false
		}
		return Ident{Type: v.Type(), Ptr: v.UnsafePointer()}, true
	case reflect.Slice:
		if v.IsNil() {
			return Ident{}, false
		}
		return Ident{Type: v.Type(), Ptr: v.UnsafePointer(), Len: v.Len(), Cap: v.Cap()}, true
	}
}

// Pair identifies an ordered pair of references visited together.
type Pair struct{ L, R Ident }
