// Package errs defines the failure taxonomy shared by the accessor,
// descriptor, clone and structural packages.
//
// Every failure is fatal to the top-level operation in progress. Callers
// classify with errors.Is against the sentinel kinds and recover the
// offending type and field with errors.As on *Error.
package errs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel kinds.
var (
	// ErrInstantiation is reported when a bare instance of a type cannot be allocated.
	ErrInstantiation = errors.New("deepgraph: cannot instantiate")

	// ErrFieldAccess is reported when a field is not reachable under the active access strategy.
	ErrFieldAccess = errors.New("deepgraph: field not accessible")

	// ErrIllegalArgument is reported for type mismatches and invalid hashing parameters.
	ErrIllegalArgument = errors.New("deepgraph: illegal argument")

	// ErrConfiguration is reported for conflicting or missing declarations.
	ErrConfiguration = errors.New("deepgraph: invalid configuration")
)

// Error carries the kind of failure together with the type and field it concerns.
type Error struct {
	Kind    error
	Type    reflect.Type
	Field   string
	Message string
	Cause   error
}

// Error implements error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Type != nil {
		b.WriteString(" ")
		b.WriteString(TypeName(e.Type))
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
	} else if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(" (")
		b.WriteString(e.Cause.Error())
		b.WriteString(")")
	}

	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Cause == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Cause}
}

// Instantiation reports that t cannot be allocated.
func Instantiation(t reflect.Type, format string, args ...any) error {
	return &Error{Kind: ErrInstantiation, Type: t, Message: fmt.Sprintf(format, args...)}
}

// FieldAccess reports that field of t cannot be read or written.
func FieldAccess(t reflect.Type, field string, cause error) error {
	return &Error{Kind: ErrFieldAccess, Type: t, Field: field, Cause: cause}
}

// IllegalArgument reports a type mismatch or an invalid parameter.
func IllegalArgument(t reflect.Type, field string, format string, args ...any) error {
	return &Error{Kind: ErrIllegalArgument, Type: t, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Configuration reports a conflicting or missing declaration on t.
func Configuration(t reflect.Type, format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Type: t, Message: fmt.Sprintf(format, args...)}
}

// WithField locates err at field of owner. An *Error about owner that
// names no field gets a copy naming it, one already naming that very field
// is returned as is, and anything else is wrapped with the field name, so
// nested failures read as a path.
func WithField(err error, owner reflect.Type, field string) error {
	if e, ok := err.(*Error); ok && (e.Type == nil || e.Type == owner) {
		switch e.Field {
		case field:
			return err
		case "":
			cp := *e
			cp.Type, cp.Field = owner, field
			return &cp
		}
	}

	return fmt.Errorf("field %s: %w", field, err)
}

// TypeName renders t with its package path, falling back to the reflect
// representation for unnamed types.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}
