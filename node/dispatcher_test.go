package node

import (
	"reflect"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestDispatch(t *testing.T) {
	type named string
	type record struct{ A int }

	tests := []struct {
		typ      reflect.Type
		expected DispatcherEnum
	}{
		{reflect.TypeFor[int](), DispatcherPrimitive},
		{reflect.TypeFor[named](), DispatcherPrimitive},
		{reflect.TypeFor[time.Duration](), DispatcherPrimitive},
		{reflect.TypeFor[any](), DispatcherInterface},
		{reflect.TypeFor[error](), DispatcherInterface},
		{reflect.TypeFor[*record](), DispatcherPointer},
		{reflect.TypeFor[[]int](), DispatcherSlice},
		{reflect.TypeFor[[3]int](), DispatcherArray},
		{reflect.TypeFor[map[string]int](), DispatcherMap},
		{reflect.TypeFor[record](), DispatcherStruct},
		{reflect.TypeFor[time.Time](), DispatcherStruct},
		{reflect.TypeFor[chan int](), DispatcherOpaque},
		{reflect.TypeFor[func()](), DispatcherOpaque},
		{reflect.TypeFor[unsafe.Pointer](), DispatcherOpaque},
		{nil, DispatcherOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Dispatch(tt.typ))
		})
	}
}

func TestDispatcherEnum_String(t *testing.T) {
	assert.Equal(t, "DispatcherStruct", DispatcherStruct.String())
	assert.Equal(t, "DispatcherEnum(42)", DispatcherEnum(42).String())
}

func TestIdentOf(t *testing.T) {
	type pair struct{ A, B int }

	p := &pair{}
	id1, ok := IdentOf(reflect.ValueOf(p))
	assert.True(t, ok)
	id2, _ := IdentOf(reflect.ValueOf(p))
	assert.Equal(t, id1, id2)

	// same address, different type
	idA, ok := IdentOf(reflect.ValueOf(&p.A))
	assert.True(t, ok)
	assert.NotEqual(t, id1, idA)

	s := []int{1, 2, 3}
	full, _ := IdentOf(reflect.ValueOf(s))
	window, _ := IdentOf(reflect.ValueOf(s[:2]))
	assert.NotEqual(t, full, window)

	m := map[string]int{}
	idM1, _ := IdentOf(reflect.ValueOf(m))
	idM2, _ := IdentOf(reflect.ValueOf(m))
	assert.Equal(t, idM1, idM2)

	_, ok = IdentOf(reflect.ValueOf((*pair)(nil)))
	assert.False(t, ok)
	_, ok = IdentOf(reflect.ValueOf([]int(nil)))
	assert.False(t, ok)
	_, ok = IdentOf(reflect.ValueOf(pair{}))
	assert.False(t, ok)
}

func TestTypeString(t *testing.T) {
	type local struct{}

	assert.Equal(t, "*deepgraph/node.local", TypeString(reflect.TypeFor[*local]()))
	assert.Equal(t, "map[string][]int", TypeString(reflect.TypeFor[map[string][]int]()))
	assert.Equal(t, "[2]time.Duration", TypeString(reflect.TypeFor[[2]time.Duration]()))
}
