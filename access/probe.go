package access

import (
	"log/slog"
	"os"
	"reflect"
	"sync"
)

// EnvStrategy overrides the probed strategy when set to "portable" or "direct".
const EnvStrategy = "DEEPGRAPH_ACCESS"

var (
	selectOnce sync.Once
	selected   Strategy
)

// Selected returns the process-wide access strategy. The probe runs once.
func Selected() Strategy {
	selectOnce.Do(func() {
		selected = selectStrategy(os.Getenv(EnvStrategy))
		slog.Debug("access strategy selected", slog.String("strategy", selected.String()))
	})

	return selected
}

func selectStrategy(env string) Strategy {
	if env != "" {
		if s, ok := ParseStrategy(env); ok {
			return s
		}
		slog.Warn("ignoring unknown access strategy", slog.String("env", EnvStrategy), slog.String("value", env))
	}

	if directWorks() {
		return StrategyDirect
	}

	return StrategyPortable
}

type probe struct {
	flag  bool
	small int8
	count int
	ratio float64
	name  string
	wide  complex128
}

// directWorks checks raw offsets against reflect and round-trips one value
// of each width through the direct accessors.
func directWorks() (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	t := reflect.TypeOf(probe{})
	c := New(t, StrategyDirect)
	fields := c.FieldAccessors()
	if len(fields) != t.NumField() {
		return false
	}
	for i, fa := range fields {
		df, isDirect := fa.(*directField)
		if !isDirect || df.offset != t.Field(i).Offset {
			return false
		}
	}

	var p probe
	obj := reflect.ValueOf(&p).Elem()
	fields[0].SetBool(obj, true)
	fields[1].SetInt(obj, -7)
	fields[2].SetInt(obj, 1<<30)
	fields[3].SetFloat(obj, 2.5)
	fields[4].SetString(obj, "probe")
	fields[5].SetComplex(obj, complex(1, -1))

	return p == probe{flag: true, small: -7, count: 1 << 30, ratio: 2.5, name: "probe", wide: complex(1, -1)}
}
