package descriptor

import (
	"reflect"
	"strings"

	"deepgraph/access"
	"deepgraph/declare"
	"deepgraph/node"
	"deepgraph/primitive"
)

//go:generate go tool stringer -type=FieldKind -trimprefix=Field -output=fieldkind_string.go

// FieldKind is the coarse category of a field.
type FieldKind int

const (
	FieldObject FieldKind = iota
	FieldPrimitive
	FieldArray
)

// TagKey is the struct tag key read for field markers.
const TagKey = "graph"

// FieldDescriptor describes one field declared by a struct type.
type FieldDescriptor struct {
	Name      string
	Index     int
	Kind      FieldKind
	Primitive primitive.KindEnum
	Type      reflect.Type
	Dispatch  node.DispatcherEnum

	Transient         bool // tagged graph:"transient"
	DeclaredTransient bool // listed in the type's declaration
	Synthetic         bool // blank "_" field
	Private           bool // unexported

	Accessor access.FieldAccessor
}

// IsTransient reports whether the field is transient by tag or by declaration.
func (f *FieldDescriptor) IsTransient() bool {
	return f.Transient || f.DeclaredTransient
}

// ClassDescriptor is the cached metadata for one type.
type ClassDescriptor struct {
	Type     reflect.Type
	Dispatch node.DispatcherEnum

	// Super describes the embedded parent struct, nil at the root.
	Super *ClassDescriptor
	// Fields lists the fields the type declares, without the parent.
	Fields []*FieldDescriptor

	Immutable    bool
	NonCloneable bool
	Flat         bool
	CustomClone  *CloneOperation

	OverridesEquals   bool
	OverridesHashCode bool
	// ValueHash hashes well-known value types by what they represent.
	ValueHash func(v reflect.Value) int32

	Declaration declare.Declaration
	Accessor    access.ClassAccessor
}

// CallEqual invokes the type's own Equal method.
func (d *ClassDescriptor) CallEqual(l, r reflect.Value) bool {
	return d.Accessor.InvokeEqual(l, r)
}

// CallHashCode invokes the type's own HashCode method.
func (d *ClassDescriptor) CallHashCode(v reflect.Value) int32 {
	return d.Accessor.InvokeHashCode(v)
}

// Chain returns d followed by its ancestors, nearest first.
func (d *ClassDescriptor) Chain() []*ClassDescriptor {
	var out []*ClassDescriptor
	for c := d; c != nil; c = c.Super {
		out = append(out, c)
	}

	return out
}

// Field returns the descriptor of the named field declared by the type itself.
func (d *ClassDescriptor) Field(name string) (*FieldDescriptor, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return nil, false
}

func (d *ClassDescriptor) String() string {
	var flags []string
	if d.Immutable {
		flags = append(flags, "immutable")
	}
	if d.NonCloneable {
		flags = append(flags, "noclone")
	}
	if d.Flat {
		flags = append(flags, "flat")
	}
	if d.CustomClone != nil {
		flags = append(flags, "clone="+d.CustomClone.String())
	}
	if d.OverridesEquals {
		flags = append(flags, "equals")
	}
	if d.OverridesHashCode {
		flags = append(flags, "hashcode")
	}

	return node.TypeString(d.Type) + "{" + strings.Join(flags, ",") + "}"
}

func hasTag(sf reflect.StructField, marker string) bool {
	tag, ok := sf.Tag.Lookup(TagKey)
	if !ok {
		return false
	}
	for _, part := range strings.Split(tag, ",") {
		if strings.TrimSpace(part) == marker {
			return true
		}
	}

	return false
}

func newFieldDescriptor(fa access.FieldAccessor, decl declare.Declaration) *FieldDescriptor {
	sf := fa.Field()
	fd := &FieldDescriptor{
		Name:              sf.Name,
		Index:             fa.Index(),
		Primitive:         fa.Primitive(),
		Type:              sf.Type,
		Dispatch:          node.Dispatch(sf.Type),
		Transient:         hasTag(sf, "transient"),
		DeclaredTransient: decl.IsTransient(sf.Name),
		Synthetic:         sf.Name == "_",
		Private:           !sf.IsExported(),
		Accessor:          fa,
	}

	switch {
	case fd.Primitive.IsPrimitive():
		fd.Kind = FieldPrimitive
	case sf.Type.Kind() == reflect.Array || sf.Type.Kind() == reflect.Slice:
		fd.Kind = FieldArray
	default:
		fd.Kind = FieldObject
	}

	return fd
}
