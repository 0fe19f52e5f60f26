package node

import (
	"reflect"
	"strconv"
)

// TypeString renders t with fully qualified named types, or the builtin
// spelling for basics.
func TypeString(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + TypeString(t.Elem())
	case reflect.Slice:
		return "[]" + TypeString(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + TypeString(t.Elem())
	case reflect.Map:
		return "map[" + TypeString(t.Key()) + "]" + TypeString(t.Elem())
	default:
		if t.PkgPath() == "" || t.Name() == "" {
			return t.String()
		}
		return t.PkgPath() + "." + t.Name()
	}
}
