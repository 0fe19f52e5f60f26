package metrics

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepgraph/clone"
	"deepgraph/declare"
	"deepgraph/descriptor"
	"deepgraph/errs"
)

var (
	_ descriptor.Observer = (*Collector)(nil)
	_ clone.Observer      = (*Collector)(nil)
)

type order struct {
	id    int
	lines []string
}

type receipt struct{ total int }

func TestCollector_WiredIntoCacheAndDriver(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollectorWithRegistry(registry)

	cache := descriptor.NewCache(descriptor.WithRegistry(declare.NewRegistry()), descriptor.WithObserver(c))
	driver := clone.NewDriver(clone.WithCache(cache), clone.WithObserver(c))

	for i := 0; i < 3; i++ {
		_, err := driver.Clone(&order{id: i, lines: []string{"a"}})
		require.NoError(t, err)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(c.clones.WithLabelValues("*metrics.order", "ok")))
	assert.Positive(t, testutil.ToFloat64(c.lookups.WithLabelValues("hit")))
	assert.Positive(t, testutil.ToFloat64(c.lookups.WithLabelValues("miss")))
	assert.Equal(t, float64(cache.Len()),
		testutil.ToFloat64(c.builds.WithLabelValues("pointer"))+
			testutil.ToFloat64(c.builds.WithLabelValues("struct"))+
			testutil.ToFloat64(c.builds.WithLabelValues("slice")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.cloneNodes))
}

func TestCollector_Errors(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollectorWithRegistry(registry)

	r := declare.NewRegistry()
	require.NoError(t, declare.CloneMethod[receipt](r, "Missing"))
	driver := clone.NewDriver(
		clone.WithCache(descriptor.NewCache(descriptor.WithRegistry(r))),
		clone.WithObserver(c),
	)

	_, err := driver.Clone(receipt{total: 1})
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.errorsTotal.WithLabelValues("configuration")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.clones.WithLabelValues("deepgraph/metrics.receipt", "error")))
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.DescriptorHit(reflect.TypeFor[int]())
		c.DescriptorMiss(reflect.TypeFor[int]())
		c.DescriptorBuilt(reflect.TypeFor[int](), time.Millisecond)
		c.CloneFinished(reflect.TypeFor[int](), 1, time.Millisecond, nil)
	})
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errs.Instantiation(nil, "x"), "instantiation"},
		{errs.FieldAccess(nil, "f", errors.New("x")), "field_access"},
		{fmt.Errorf("field a: %w", errs.IllegalArgument(nil, "", "x")), "illegal_argument"},
		{errs.Configuration(nil, "x"), "configuration"},
		{errors.New("x"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}
