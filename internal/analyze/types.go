package analyze

import (
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"deepgraph/descriptor"
	"deepgraph/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "deepgraph/examples/ledger"
	Name    string // e.g., "Money"
}

// String returns the qualified name, matching declare.QualifiedName at runtime.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindArray             // array of another type
	TypeKindMap               // map type
	TypeKindAlias             // named type wrapping another
	TypeKindExternal          // type from a package outside the scan (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID         // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind       // Kind of type
	Underlying *TypeInfo      // For named non-struct types, the underlying type
	ElemType   *TypeInfo      // For pointers, slices, arrays and maps, the element type
	KeyType    *TypeInfo      // For maps, the key type
	Fields     []FieldInfo    // For structs, the list of fields
	GoType     types.Type     // The original go/types.Type
	Directives []Directive    // Directives found in the type's doc comment
	Pos        token.Position // Declaration position of named types
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Directive returns the first directive of the given kind.
func (t *TypeInfo) Directive(kind DirectiveKind) (Directive, bool) {
	return findDirective(t.Directives, kind)
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name       string            // Go field name
	Exported   bool              // Whether the field is exported
	Type       *TypeInfo         // Field type
	Tag        reflect.StructTag // Raw struct tag
	Embedded   bool              // Whether the field is embedded (anonymous)
	Index      int               // Field index in the struct
	Directives []Directive       // Directives found in the field's doc comment
}

// HasTag returns true if the field has the specified tag.
func (f *FieldInfo) HasTag(key string) bool {
	return f.Tag.Get(key) != ""
}

// GetTag returns the value of the specified tag.
func (f *FieldInfo) GetTag(key string) string {
	return f.Tag.Get(key)
}

// IsTransient reports whether the field is transient by directive or by tag.
func (f *FieldInfo) IsTransient() bool {
	if _, ok := findDirective(f.Directives, DirectiveTransient); ok {
		return true
	}
	for _, part := range strings.Split(f.GetTag(descriptor.TagKey), ",") {
		if strings.TrimSpace(part) == "transient" {
			return true
		}
	}

	return false
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}
