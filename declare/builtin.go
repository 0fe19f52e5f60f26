package declare

import (
	"os"
	"reflect"
	"regexp"
	"sync"
	"time"
)

// installBuiltins declares the standard library types with well-known
// copy semantics.
func installBuiltins(r *Registry) {
	immutable := []reflect.Type{
		reflect.TypeFor[time.Time](),
		reflect.TypeFor[regexp.Regexp](),
	}
	for _, t := range immutable {
		r.byType[t] = Declaration{Immutable: true}
	}

	nonCloneable := []reflect.Type{
		reflect.TypeFor[time.Location](),
		reflect.TypeFor[sync.Mutex](),
		reflect.TypeFor[sync.RWMutex](),
		reflect.TypeFor[sync.WaitGroup](),
		reflect.TypeFor[sync.Once](),
		reflect.TypeFor[sync.Cond](),
		reflect.TypeFor[sync.Map](),
		reflect.TypeFor[sync.Pool](),
		reflect.TypeFor[os.File](),
	}
	for _, t := range nonCloneable {
		r.byType[t] = Declaration{NonCloneable: true}
	}

	// runtime type descriptors reached through reflect.Type interface values
	r.byName["reflect.rtype"] = Declaration{NonCloneable: true}
}
