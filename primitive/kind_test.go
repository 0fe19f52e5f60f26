package primitive_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"deepgraph/primitive"
)

func Example() {
	type Status string
	type Cents int64
	type Node struct{ next *Node }

	for _, v := range []any{
		0, "", Status(""), Cents(0), time.Duration(0), uintptr(0),
		complex64(0), time.Time{}, Node{}, &Node{}, []int{}, [2]int{},
	} {
		fmt.Println(primitive.FromReflectType(reflect.TypeOf(v)))
	}
	// Output:
	// KindInt
	// KindString
	// KindString
	// KindInt64
	// KindInt64
	// KindUintptr
	// KindComplex64
	// KindEnum(0)
	// KindEnum(0)
	// KindEnum(0)
	// KindEnum(0)
	// KindEnum(0)
}

func TestKindEnum_Predicates(t *testing.T) {
	tests := []struct {
		kind               primitive.KindEnum
		primitive, integer bool
		signed, unsigned   bool
	}{
		{0, false, false, false, false},
		{primitive.KindBool, true, false, false, false},
		{primitive.KindInt16, true, true, true, false},
		{primitive.KindUintptr, true, true, false, true},
		{primitive.KindFloat64, true, false, false, false},
		{primitive.KindComplex128, true, false, false, false},
		{primitive.KindString, true, false, false, false},
		{primitive.KindEnum(primitive.KindTotal), false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.primitive, tt.kind.IsPrimitive())
			assert.Equal(t, tt.integer, tt.kind.IsInteger())
			assert.Equal(t, tt.signed, tt.kind.IsSigned())
			assert.Equal(t, tt.unsigned, tt.kind.IsUnsigned())
		})
	}
}

func TestFromReflectType_Nil(t *testing.T) {
	assert.Equal(t, primitive.KindEnum(0), primitive.FromReflectType(nil))
	assert.Equal(t, primitive.KindEnum(0), primitive.FromReflectKind(reflect.UnsafePointer))
}
