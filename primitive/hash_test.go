package primitive

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold64(t *testing.T) {
	assert.Equal(t, int32(0), Fold64(0))
	assert.Equal(t, int32(1), Fold64(1))
	assert.Equal(t, int32(1), Fold64(1<<32))
	assert.Equal(t, int32(0), Fold64(1<<32|1))
}

func TestFloatBits_NegativeZero(t *testing.T) {
	assert.Equal(t, FloatBits(0), FloatBits(math.Copysign(0, -1)))
	assert.Equal(t, Float32Bits(0), Float32Bits(float32(math.Copysign(0, -1))))
	assert.NotEqual(t, FloatBits(1), FloatBits(-1))
}

func TestStringHash(t *testing.T) {
	assert.Equal(t, int32(0), StringHash(""))
	assert.Equal(t, int32('a'), StringHash("a"))
	assert.Equal(t, int32(31*'a'+'b'), StringHash("ab"))
}

func TestAppend(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int32
	}{
		{"bool true", true, 17*37 + 1},
		{"bool false", false, 17 * 37},
		{"int8", int8(-3), 17*37 - 3},
		{"int32", int32(42), 17*37 + 42},
		{"int64", int64(1 << 32), 17*37 + 1},
		{"uint16", uint16(7), 17*37 + 7},
		{"string", "ab", 17*37 + 31*'a' + 'b'},
		{"float zero", 0.0, 17 * 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Append(17, 37, reflect.ValueOf(tt.value)))
		})
	}
}

func TestAppend_ComplexContributesTwice(t *testing.T) {
	got := Append(17, 37, reflect.ValueOf(complex(0, 0)))
	assert.Equal(t, int32(17*37*37), got)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(reflect.ValueOf(1.5), reflect.ValueOf(1.5)))
	assert.True(t, Equal(reflect.ValueOf(0.0), reflect.ValueOf(math.Copysign(0, -1))))
	assert.False(t, Equal(reflect.ValueOf(math.NaN()), reflect.ValueOf(math.NaN())))
	assert.True(t, Equal(reflect.ValueOf("x"), reflect.ValueOf("x")))
	assert.False(t, Equal(reflect.ValueOf(uint(1)), reflect.ValueOf(uint(2))))
}

func TestKindEnum_Bits(t *testing.T) {
	assert.Equal(t, 8, KindInt8.Bits())
	assert.Equal(t, 64, KindFloat64.Bits())
	assert.Equal(t, 128, KindComplex128.Bits())
	assert.Panics(t, func() { KindString.Bits() })
}
