package descriptor

import (
	"fmt"
	"reflect"

	"deepgraph/access"
	"deepgraph/errs"
)

// CloneKind tells how a custom clone operation was discovered.
type CloneKind int

const (
	CloneByMethod CloneKind = iota + 1
	CloneByConstructor
	CloneByDeepCopy
)

// DeepCopyMethod is the conventional clone method of pointer types.
const DeepCopyMethod = "DeepCopy"

var errorType = reflect.TypeFor[error]()

// CloneOperation is a clone hook bound to one type.
type CloneOperation struct {
	Kind CloneKind
	Name string

	typ          reflect.Type
	fn           reflect.Value
	returnsError bool
}

func (op *CloneOperation) String() string {
	switch op.Kind {
	case CloneByConstructor:
		return "constructor"
	default:
		return op.Name
	}
}

// Invoke runs the hook on v and returns the copy it produced.
func (op *CloneOperation) Invoke(v reflect.Value) (reflect.Value, error) {
	opened, ok := access.Open(v)
	if !ok {
		return reflect.Value{}, errs.FieldAccess(op.typ, "", fmt.Errorf("cannot pass read-only value to %s", op))
	}

	arg := opened
	if op.Kind != CloneByConstructor && op.typ.Kind() != reflect.Pointer {
		p := reflect.New(op.typ)
		p.Elem().Set(opened)
		arg = p
	}

	out := op.fn.Call([]reflect.Value{arg})
	if op.returnsError && !out[1].IsNil() {
		return reflect.Value{}, &errs.Error{
			Kind:    errs.ErrInstantiation,
			Type:    op.typ,
			Message: op.String() + " failed",
			Cause:   out[1].Interface().(error),
		}
	}

	return out[0], nil
}

// returnsCopy checks that ft returns t or (t, error).
func returnsCopy(ft, t reflect.Type) (ok, withError bool) {
	switch ft.NumOut() {
	case 1:
		return ft.Out(0) == t, false
	case 2:
		return ft.Out(0) == t && ft.Out(1) == errorType, true
	default:
		return false, false
	}
}

func constructorOperation(t reflect.Type, fn any) (*CloneOperation, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, errs.Configuration(t, "constructor must be a function, got %T", fn)
	}

	ft := fv.Type()
	ok, withError := returnsCopy(ft, t)
	if ft.NumIn() != 1 || ft.In(0) != t || !ok {
		return nil, errs.Configuration(t, "constructor has signature %s, want func(%s) %s", ft, errs.TypeName(t), errs.TypeName(t))
	}

	return &CloneOperation{Kind: CloneByConstructor, typ: t, fn: fv, returnsError: withError}, nil
}

func methodOperation(t reflect.Type, ca access.ClassAccessor, name string, kind CloneKind) (*CloneOperation, error) {
	m, found := ca.Method(name)
	if !found {
		return nil, errs.Configuration(t, "declared clone method %s does not exist", name)
	}

	ok, withError := returnsCopy(m.Type, t)
	if m.Type.NumIn() != 1 || !ok {
		return nil, errs.Configuration(t, "clone method %s has signature %s, want func() %s", name, m.Type, errs.TypeName(t))
	}

	return &CloneOperation{Kind: kind, Name: name, typ: t, fn: m.Func, returnsError: withError}, nil
}

// cloneOperation resolves the custom clone hook of d, if any.
func cloneOperation(d *ClassDescriptor) (*CloneOperation, error) {
	decl := d.Declaration
	switch {
	case decl.CloneMethod != "" && decl.Constructor != nil:
		return nil, errs.Configuration(d.Type, "both clone method %s and a constructor are declared", decl.CloneMethod)
	case decl.Constructor != nil:
		return constructorOperation(d.Type, decl.Constructor)
	case decl.CloneMethod != "":
		return methodOperation(d.Type, d.Accessor, decl.CloneMethod, CloneByMethod)
	}

	if d.Type.Kind() != reflect.Pointer {
		return nil, nil
	}
	if _, found := d.Accessor.Method(DeepCopyMethod); !found {
		return nil, nil
	}

	op, err := methodOperation(d.Type, d.Accessor, DeepCopyMethod, CloneByDeepCopy)
	if err != nil {
		// a DeepCopy with another shape is not the convention
		return nil, nil
	}

	return op, nil
}
