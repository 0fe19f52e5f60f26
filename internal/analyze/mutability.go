package analyze

import (
	"errors"
	"fmt"
	"go/types"
)

// knownImmutable lists external types whose mutators only serve decoding.
var knownImmutable = map[string]bool{
	"time.Time": true,
}

// violation explains why a type is not immutable.
type violation struct {
	field  string
	reason string
}

// inference decides immutability of named types on go/types alone.
type inference struct {
	memo      map[*types.Named]bool
	declared  map[*types.TypeName]bool
	transient map[*types.TypeName]map[string]bool
}

func newInference(g *TypeGraph) *inference {
	in := &inference{
		memo:      make(map[*types.Named]bool),
		declared:  make(map[*types.TypeName]bool),
		transient: make(map[*types.TypeName]map[string]bool),
	}
	for _, info := range g.Types {
		named, ok := info.GoType.(*types.Named)
		if !ok {
			continue
		}
		if d, ok := info.Directive(DirectiveImmutable); ok && d.wellFormed() {
			in.declared[named.Obj()] = true
		}
		for _, f := range info.Fields {
			if !f.IsTransient() {
				continue
			}
			if in.transient[named.Obj()] == nil {
				in.transient[named.Obj()] = make(map[string]bool)
			}
			in.transient[named.Obj()][f.Name] = true
		}
	}

	return in
}

// immutable reports whether named is immutable by declaration or analysis.
// A type reached again while its own analysis is running counts as mutable.
func (in *inference) immutable(named *types.Named) bool {
	obj := named.Obj()
	if in.declared[obj] {
		return true
	}
	if obj.Pkg() != nil && knownImmutable[obj.Pkg().Path()+"."+obj.Name()] {
		return true
	}
	if v, ok := in.memo[named]; ok {
		return v
	}

	in.memo[named] = false
	v := len(in.violations(named)) == 0
	in.memo[named] = v

	return v
}

// violations lists every reason named fails the immutability rules: a
// struct whose fields are all unexported and neither blank nor transient,
// whose methods all have value receivers, and whose field types are basic,
// immutable named types or pointers to those.
func (in *inference) violations(named *types.Named) []violation {
	var out []violation

	for i := range named.NumMethods() {
		m := named.Method(i)
		sig, ok := m.Type().(*types.Signature)
		if !ok || sig.Recv() == nil {
			continue
		}
		if _, ptr := sig.Recv().Type().(*types.Pointer); ptr {
			out = append(out, violation{reason: fmt.Sprintf("method %s has a pointer receiver", m.Name())})
		}
	}

	switch ut := named.Underlying().(type) {
	case *types.Basic:
		if ut.Kind() == types.UnsafePointer {
			out = append(out, violation{reason: "underlying type is unsafe.Pointer"})
		}

	case *types.Struct:
		for i := range ut.NumFields() {
			f := ut.Field(i)
			switch {
			case f.Name() == "_":
				out = append(out, violation{field: f.Name(), reason: "field is blank"})
			case in.transient[named.Obj()][f.Name()]:
				out = append(out, violation{field: f.Name(), reason: "field is transient"})
			case f.Exported():
				out = append(out, violation{field: f.Name(), reason: "field is exported"})
			case !in.immutableType(f.Type()):
				out = append(out, violation{field: f.Name(), reason: fmt.Sprintf("field type %s is mutable", f.Type())})
			}
		}

	default:
		out = append(out, violation{reason: fmt.Sprintf("underlying type %s is mutable", ut)})
	}

	return out
}

func (in *inference) immutableType(t types.Type) bool {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return tt.Kind() != types.UnsafePointer
	case *types.Named:
		return in.immutable(tt)
	case *types.Pointer:
		elem, ok := types.Unalias(tt.Elem()).(*types.Named)
		return ok && in.immutable(elem)
	default:
		return false
	}
}

var (
	errorType = types.Universe.Lookup("error").Type()

	errNoCloneMethod = errors.New("clone method does not exist")
)

// checkCloneMethod verifies that named has a method name of shape
// func() T or func() (T, error).
func checkCloneMethod(named *types.Named, name string) error {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(named), false, named.Obj().Pkg(), name)
	fn, ok := obj.(*types.Func)
	if !ok {
		return fmt.Errorf("%w: %s", errNoCloneMethod, name)
	}

	sig := fn.Type().(*types.Signature)
	res := sig.Results()
	shaped := sig.Params().Len() == 0 && res.Len() >= 1 && res.Len() <= 2 &&
		types.Identical(res.At(0).Type(), named) &&
		(res.Len() == 1 || types.Identical(res.At(1).Type(), errorType))
	if !shaped {
		return fmt.Errorf("clone method %s has signature %s, want func() %s", name, sig, named.Obj().Name())
	}

	return nil
}

// methodNames lists the methods callable on a *named value.
func methodNames(named *types.Named) []string {
	ms := types.NewMethodSet(types.NewPointer(named))
	names := make([]string, ms.Len())
	for i := range ms.Len() {
		names[i] = ms.At(i).Obj().Name()
	}

	return names
}
