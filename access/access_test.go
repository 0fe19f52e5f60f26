package access

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepgraph/errs"
	"deepgraph/primitive"
)

type base struct {
	id   int64
	kind string
}

type account struct {
	base
	Owner   string
	balance float64
	frozen  bool
	flags   uint16
	phase   complex64
	tags    []string
}

type money struct{ cents int64 }

func (m money) Equal(o money) bool { return m.cents == o.cents }
func (m money) HashCode() int64    { return m.cents }

type wallet struct {
	money
	label string
}

type point struct{ x, y int }

func (p *point) Equal(o *point) bool { return p.x == o.x && p.y == o.y }

func strategies() []Strategy { return []Strategy{StrategyPortable, StrategyDirect} }

func TestClassAccessor_Fields(t *testing.T) {
	for _, s := range strategies() {
		t.Run(s.String(), func(t *testing.T) {
			c := New(reflect.TypeFor[account](), s)
			assert.Equal(t, s, c.Strategy())

			names := []string{}
			for _, fa := range c.FieldAccessors() {
				names = append(names, fa.Name())
			}
			assert.Equal(t, []string{"Owner", "balance", "frozen", "flags", "phase", "tags"}, names)

			super := c.SuperAccessor()
			require.NotNil(t, super)
			assert.Equal(t, reflect.TypeFor[base](), super.Type())
			assert.Nil(t, super.SuperAccessor())

			fa, ok := c.FieldAccessor("balance")
			require.True(t, ok)
			assert.Equal(t, primitive.KindFloat64, fa.Primitive())
			fa, ok = c.FieldAccessor("tags")
			require.True(t, ok)
			assert.False(t, fa.Primitive().IsPrimitive())
		})
	}
}

func TestFieldAccessor_GetSetUnexported(t *testing.T) {
	for _, s := range strategies() {
		t.Run(s.String(), func(t *testing.T) {
			c := New(reflect.TypeFor[account](), s)
			a := account{Owner: "ada", balance: 10.5, tags: []string{"x"}}
			obj := reflect.ValueOf(&a).Elem()

			fa, _ := c.FieldAccessor("balance")
			v, err := fa.Get(obj)
			require.NoError(t, err)
			assert.Equal(t, 10.5, v.Float())

			require.NoError(t, fa.Set(obj, reflect.ValueOf(99.25)))
			assert.Equal(t, 99.25, a.balance)

			tags, _ := c.FieldAccessor("tags")
			require.NoError(t, tags.Set(obj, reflect.Value{}))
			assert.Nil(t, a.tags)

			err = fa.Set(obj, reflect.ValueOf("nope"))
			assert.True(t, errors.Is(err, errs.ErrIllegalArgument))
		})
	}
}

func TestFieldAccessor_RejectsForeignInstance(t *testing.T) {
	for _, s := range strategies() {
		t.Run(s.String(), func(t *testing.T) {
			c := New(reflect.TypeFor[account](), s)
			fa, _ := c.FieldAccessor("Owner")

			_, err := fa.Get(reflect.ValueOf(&point{}).Elem())
			assert.True(t, errors.Is(err, errs.ErrFieldAccess))

			_, err = fa.Get(reflect.ValueOf(account{}))
			assert.True(t, errors.Is(err, errs.ErrFieldAccess), "non-addressable instance")

			var e *errs.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, "Owner", e.Field)
		})
	}
}

func TestFieldAccessor_TypedAndCopy(t *testing.T) {
	for _, s := range strategies() {
		t.Run(s.String(), func(t *testing.T) {
			c := New(reflect.TypeFor[account](), s)
			src := account{Owner: "grace", balance: 1.25, frozen: true, flags: 7, phase: complex(2, 3)}
			var dst account
			sv, dv := reflect.ValueOf(&src).Elem(), reflect.ValueOf(&dst).Elem()

			for _, fa := range c.FieldAccessors() {
				if fa.Primitive().IsPrimitive() {
					require.NoError(t, fa.CopyPrimitive(dv, sv))
				}
			}
			assert.Equal(t, "grace", dst.Owner)
			assert.Equal(t, 1.25, dst.balance)
			assert.True(t, dst.frozen)
			assert.Equal(t, uint16(7), dst.flags)
			assert.Equal(t, complex64(complex(2, 3)), dst.phase)

			flags, _ := c.FieldAccessor("flags")
			flags.SetUint(dv, 300)
			assert.Equal(t, uint64(300), flags.Uint(dv))

			frozen, _ := c.FieldAccessor("frozen")
			frozen.SetBool(dv, false)
			assert.False(t, frozen.Bool(dv))

			owner, _ := c.FieldAccessor("Owner")
			owner.SetString(dv, "hopper")
			assert.Equal(t, "hopper", owner.String(dv))

			tags, _ := c.FieldAccessor("tags")
			err := tags.CopyPrimitive(dv, sv)
			assert.True(t, errors.Is(err, errs.ErrIllegalArgument))
		})
	}
}

func TestClassAccessor_Upcast(t *testing.T) {
	for _, s := range strategies() {
		t.Run(s.String(), func(t *testing.T) {
			c := New(reflect.TypeFor[account](), s)
			a := account{base: base{id: 4, kind: "savings"}}

			parent, err := c.Upcast(reflect.ValueOf(&a).Elem())
			require.NoError(t, err)
			require.Equal(t, reflect.TypeFor[base](), parent.Type())

			id, _ := c.SuperAccessor().FieldAccessor("id")
			id.SetInt(parent, 5)
			assert.Equal(t, int64(5), a.id)

			_, err = New(reflect.TypeFor[base](), s).Upcast(reflect.ValueOf(&a.base).Elem())
			assert.True(t, errors.Is(err, errs.ErrFieldAccess))
		})
	}
}

func TestClassAccessor_NewInstance(t *testing.T) {
	v, err := For(reflect.TypeFor[account]()).NewInstance()
	require.NoError(t, err)
	assert.True(t, v.CanAddr())
	assert.Equal(t, account{}, v.Interface())

	_, err = For(reflect.TypeFor[error]()).NewInstance()
	assert.True(t, errors.Is(err, errs.ErrInstantiation))
}

func TestClassAccessor_EqualAndHashCode(t *testing.T) {
	c := For(reflect.TypeFor[money]())
	require.True(t, c.ProvidesEquals())
	require.True(t, c.ProvidesHashCode())
	assert.True(t, c.InvokeEqual(reflect.ValueOf(money{3}), reflect.ValueOf(money{3})))
	assert.False(t, c.InvokeEqual(reflect.ValueOf(money{3}), reflect.ValueOf(money{4})))
	assert.Equal(t, primitive.Fold64(uint64(1<<33|5)), c.InvokeHashCode(reflect.ValueOf(money{1<<33 | 5})))

	promoted := For(reflect.TypeFor[wallet]())
	assert.False(t, promoted.ProvidesEquals(), "Equal promoted from money")
	assert.False(t, promoted.ProvidesHashCode(), "HashCode promoted from money")
	_, ok := promoted.Method("HashCode")
	assert.True(t, ok)
	assert.True(t, ShadowedHashCode(reflect.TypeFor[wallet]()))
	assert.False(t, ShadowedHashCode(reflect.TypeFor[money]()))
	assert.False(t, ShadowedHashCode(reflect.TypeFor[point]()))

	ptr := For(reflect.TypeFor[point]())
	require.True(t, ptr.ProvidesEquals())
	assert.False(t, ptr.ProvidesHashCode())
	assert.True(t, ptr.InvokeEqual(reflect.ValueOf(point{1, 2}), reflect.ValueOf(point{1, 2})))
}

func TestSelectStrategy(t *testing.T) {
	assert.Equal(t, StrategyPortable, selectStrategy("portable"))
	assert.Equal(t, StrategyDirect, selectStrategy("direct"))
	assert.True(t, directWorks())
	assert.Equal(t, StrategyDirect, selectStrategy("bogus"))
}
