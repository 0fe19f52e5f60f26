package primitive

import (
	"math"
	"reflect"
)

// Fold64 reduces a 64-bit word to 32 bits by XOR-ing its high and low halves.
func Fold64(u uint64) int32 {
	return int32(u ^ (u >> 32))
}

// FloatBits returns the IEEE 754 bits of f with negative zero mapped to
// positive zero, since the two compare equal.
func FloatBits(f float64) uint64 {
	if f == 0 {
		return 0
	}

	return math.Float64bits(f)
}

// Float32Bits is FloatBits for single precision.
func Float32Bits(f float32) uint32 {
	if f == 0 {
		return 0
	}

	return math.Float32bits(f)
}

// StringHash folds the bytes of s with the classic 31 multiplier.
func StringHash(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = 31*h + int32(s[i])
	}

	return h
}

// Append folds the primitive value v into total and returns the new total.
// Complex values contribute their real and imaginary parts in turn.
func Append(total, multiplier int32, v reflect.Value) int32 {
	switch FromReflectKind(v.Kind()) {
	default:
		panic("primitive.Append called with a non-primitive value of type " + v.Type().String())
	case KindBool:
		if v.Bool() {
			return total*multiplier + 1
		}
		return total * multiplier
	case KindInt8, KindInt16, KindInt32:
		return total*multiplier + int32(v.Int())
	case KindInt, KindInt64:
		return total*multiplier + Fold64(uint64(v.Int()))
	case KindUint8, KindUint16, KindUint32:
		return total*multiplier + int32(uint32(v.Uint()))
	case KindUint, KindUint64, KindUintptr:
		return total*multiplier + Fold64(v.Uint())
	case KindFloat32:
		return total*multiplier + int32(Float32Bits(float32(v.Float())))
	case KindFloat64:
		return total*multiplier + Fold64(FloatBits(v.Float()))
	case KindComplex64:
		c := v.Complex()
		total = total*multiplier + int32(Float32Bits(float32(real(c))))
		return total*multiplier + int32(Float32Bits(float32(imag(c))))
	case KindComplex128:
		c := v.Complex()
		total = total*multiplier + Fold64(FloatBits(real(c)))
		return total*multiplier + Fold64(FloatBits(imag(c)))
	case KindString:
		return total*multiplier + StringHash(v.String())
	}
}

// Equal compares two primitive values of the same kind. Floating point
// values follow == semantics: NaN never equals itself and -0 equals +0.
func Equal(l, r reflect.Value) bool {
	switch FromReflectKind(l.Kind()) {
	default:
		panic("primitive.Equal called with a non-primitive value of type " + l.Type().String())
	case KindBool:
		return l.Bool() == r.Bool()
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return l.Int() == r.Int()
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64, KindUintptr:
		return l.Uint() == r.Uint()
	case KindFloat32, KindFloat64:
		return l.Float() == r.Float()
	case KindComplex64, KindComplex128:
		return l.Complex() == r.Complex()
	case KindString:
		return l.String() == r.String()
	}
}
