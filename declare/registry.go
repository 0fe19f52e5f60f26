package declare

import (
	"reflect"
	"slices"
	"sync"

	"deepgraph/errs"
)

// Declaration is the set of capability flags attached to one type.
type Declaration struct {
	Immutable       bool
	NonCloneable    bool
	Flat            bool
	CloneMethod     string   // method of the type returning a copy of its receiver
	Constructor     any      // func(T) T or func(T) (T, error)
	TransientFields []string // fields skipped unless transient cloning is enabled
}

// IsZero reports whether d declares nothing.
func (d Declaration) IsZero() bool {
	return !d.Immutable && !d.NonCloneable && !d.Flat &&
		d.CloneMethod == "" && d.Constructor == nil && len(d.TransientFields) == 0
}

// IsTransient reports whether the named field was declared transient.
func (d Declaration) IsTransient(field string) bool {
	return slices.Contains(d.TransientFields, field)
}

// merge combines two declarations. Flags accumulate; hooks from o win over
// hooks of the same form in d, but a method and a constructor are both kept
// so the conflict surfaces when the descriptor is built.
func (d Declaration) merge(o Declaration) Declaration {
	d.Immutable = d.Immutable || o.Immutable
	d.NonCloneable = d.NonCloneable || o.NonCloneable
	d.Flat = d.Flat || o.Flat
	if o.CloneMethod != "" {
		d.CloneMethod = o.CloneMethod
	}
	if o.Constructor != nil {
		d.Constructor = o.Constructor
	}
	for _, f := range o.TransientFields {
		if !slices.Contains(d.TransientFields, f) {
			d.TransientFields = append(d.TransientFields, f)
		}
	}

	return d
}

// Registry holds declarations. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]Declaration
	byName map[string]Declaration
}

// NewRegistry creates a registry preloaded with the built-in declarations.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	installBuiltins(r)

	return r
}

// NewEmptyRegistry creates a registry without any declaration.
func NewEmptyRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]Declaration),
		byName: make(map[string]Declaration),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry used when no other is configured.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// Declare attaches d to t, merging with any earlier declaration.
func (r *Registry) Declare(t reflect.Type, d Declaration) error {
	if t == nil {
		return errs.IllegalArgument(nil, "", "cannot declare the nil type")
	}
	if d.Constructor != nil {
		if err := checkConstructor(t, d.Constructor); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byType[t] = r.byType[t].merge(d)

	return nil
}

// DeclareName attaches d to the type with the given qualified name.
// Constructors cannot be declared by name since their type cannot be checked.
func (r *Registry) DeclareName(name string, d Declaration) error {
	if name == "" {
		return errs.IllegalArgument(nil, "", "cannot declare an empty type name")
	}
	if d.Constructor != nil {
		return errs.Configuration(nil, "constructor for %s must be declared by type, not by name", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName[name] = r.byName[name].merge(d)

	return nil
}

// Lookup returns the merged declarations for t, by name and by type.
func (r *Registry) Lookup(t reflect.Type) (Declaration, bool) {
	if t == nil {
		return Declaration{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var d Declaration
	byName, okName := r.byName[QualifiedName(t)]
	if okName {
		d = d.merge(byName)
	}
	byType, okType := r.byType[t]
	if okType {
		d = d.merge(byType)
	}

	return d, okName || okType
}

// Len returns the number of declared keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byType) + len(r.byName)
}

// QualifiedName returns "import/path.Name" for named types and an empty
// string for unnamed ones.
func QualifiedName(t reflect.Type) string {
	if t == nil || t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return t.Name()
	}

	return t.PkgPath() + "." + t.Name()
}

func checkConstructor(t reflect.Type, fn any) error {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return errs.Configuration(t, "constructor must be a function, got %T", fn)
	}
	if ft.NumIn() != 1 || ft.In(0) != t {
		return errs.Configuration(t, "constructor must take exactly one %s argument", errs.TypeName(t))
	}

	switch ft.NumOut() {
	case 1:
		if ft.Out(0) == t {
			return nil
		}
	case 2:
		if ft.Out(0) == t && ft.Out(1) == reflect.TypeFor[error]() {
			return nil
		}
	}

	return errs.Configuration(t, "constructor must return %s or (%s, error)", errs.TypeName(t), errs.TypeName(t))
}

// Immutable declares T immutable in r.
func Immutable[T any](r *Registry) error {
	return r.Declare(reflect.TypeFor[T](), Declaration{Immutable: true})
}

// NonCloneable declares T non-cloneable in r.
func NonCloneable[T any](r *Registry) error {
	return r.Declare(reflect.TypeFor[T](), Declaration{NonCloneable: true})
}

// Flat declares T flat in r.
func Flat[T any](r *Registry) error {
	return r.Declare(reflect.TypeFor[T](), Declaration{Flat: true})
}

// CloneWith declares fn as the clone constructor of T in r.
func CloneWith[T any](r *Registry, fn func(T) T) error {
	return r.Declare(reflect.TypeFor[T](), Declaration{Constructor: fn})
}

// CloneMethod declares the named method of T as its clone hook in r.
func CloneMethod[T any](r *Registry, method string) error {
	return r.Declare(reflect.TypeFor[T](), Declaration{CloneMethod: method})
}

// Transient declares the named fields of T transient in r.
func Transient[T any](r *Registry, fields ...string) error {
	return r.Declare(reflect.TypeFor[T](), Declaration{TransientFields: fields})
}
