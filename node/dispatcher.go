package node

import (
	"reflect"

	"deepgraph/primitive"
)

// Dispatch picks the traversal strategy for values of type t.
func Dispatch(t reflect.Type) DispatcherEnum {
	if t == nil {
		return DispatcherOpaque
	}

	if primitive.FromReflectType(t) != 0 {
		return DispatcherPrimitive
	}

	switch t.Kind() {
	default:
		return DispatcherOpaque
	case reflect.Interface:
		return DispatcherInterface
	case reflect.Pointer:
		return DispatcherPointer
	case reflect.Slice:
		return DispatcherSlice
	case reflect.Array:
		return DispatcherArray
	case reflect.Map:
		return DispatcherMap
	case reflect.Struct:
		return DispatcherStruct
	}
}
