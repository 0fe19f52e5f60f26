package descriptor

import (
	"log/slog"
	"reflect"
	"time"

	"deepgraph/access"
	"deepgraph/errs"
	"deepgraph/primitive"
)

// valueHashers hash well-known value types whose fields do not reflect
// equality.
var valueHashers = map[reflect.Type]func(v reflect.Value) int32{
	reflect.TypeFor[time.Time](): func(v reflect.Value) int32 {
		return primitive.Fold64(uint64(v.Interface().(time.Time).UnixNano()))
	},
}

// warnHashing logs struct types whose Equal is honored while their hash is
// built from fields.
func (b *builder) warnHashing(d *ClassDescriptor) {
	if d.Type.Kind() != reflect.Struct {
		return
	}
	shadowed := !d.OverridesHashCode && access.ShadowedHashCode(d.Type)

	switch {
	case !d.OverridesEquals || d.OverridesHashCode || d.ValueHash != nil:
		if shadowed {
			b.cache.logger.Debug("HashCode taken as promoted from an embedded field",
				slog.String("type", errs.TypeName(d.Type)))
		}
	case shadowed:
		b.cache.logger.Warn("Equal is used but HashCode is taken as promoted from an embedded field; hashing falls back to fields",
			slog.String("type", errs.TypeName(d.Type)))
	default:
		b.cache.logger.Warn("Equal without HashCode; hashing falls back to fields",
			slog.String("type", errs.TypeName(d.Type)))
	}
}
