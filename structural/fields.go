package structural

import (
	"reflect"

	"deepgraph/descriptor"
	"deepgraph/options"
)

// skip reports whether f takes no part in comparison and hashing.
func skip(f *descriptor.FieldDescriptor, cfg options.Reflect) bool {
	switch {
	case f.Synthetic:
		return true
	case f.IsTransient() && !cfg.TestTransients:
		return true
	default:
		return cfg.Excludes(f.Name)
	}
}

// rootOf steps through a non-nil pointer to a struct at the root, so the
// root object is always examined by its contents.
func rootOf(v reflect.Value) (reflect.Value, bool) {
	if v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Kind() == reflect.Struct {
		return v.Elem(), true
	}

	return v, false
}
