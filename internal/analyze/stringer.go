package analyze

import (
	"fmt"
	"go/types"
	"strings"

	"deepgraph/internal/common"
)

// TypePath builds a readable path string for a type.
// Examples:
//   - "Journal" for a simple struct
//   - "Journal.postings" for a nested field
//   - "Journal.postings[]" for a slice field
//   - "Journal.postings[].Entry" for a field within slice elements
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Slice appends a slice indicator "[]" to the path.
func (p *TypePath) Slice() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"[]"}}
	}
	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] = newParts[len(newParts)-1] + "[]"
	return &TypePath{parts: newParts}
}

// Pointer appends a pointer indicator "*" to the path.
func (p *TypePath) Pointer() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"*"}}
	}
	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] = "*" + newParts[len(newParts)-1]
	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer provides methods for creating readable type path strings.
type TypeStringer struct{}

// NewTypeStringer creates a new TypeStringer.
func NewTypeStringer() *TypeStringer {
	return &TypeStringer{}
}

// TypeString returns a human-readable string representation of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindBasic:
		return t.GoType.String()

	case TypeKindStruct:
		if t.IsNamed() {
			return t.ID.Name
		}
		return "struct{...}"

	case TypeKindPointer:
		if t.ElemType != nil {
			return "*" + s.TypeString(t.ElemType)
		}
		return "*<unknown>"

	case TypeKindSlice:
		if t.ElemType != nil {
			return "[]" + s.TypeString(t.ElemType)
		}
		return "[]<unknown>"

	case TypeKindArray:
		if t.ElemType != nil {
			return fmt.Sprintf("[%d]%s", t.GoType.(*types.Array).Len(), s.TypeString(t.ElemType))
		}
		return t.GoType.String()

	case TypeKindMap:
		if t.KeyType != nil && t.ElemType != nil {
			return "map[" + s.TypeString(t.KeyType) + "]" + s.TypeString(t.ElemType)
		}
		return t.GoType.String()

	case TypeKindAlias:
		if t.IsNamed() {
			return t.ID.Name
		}
		return s.TypeString(t.Underlying)

	case TypeKindExternal:
		if t.IsNamed() && t.ID.PkgPath != "" {
			return common.PkgAlias(t.ID.PkgPath) + "." + t.ID.Name
		}
		if t.IsNamed() {
			return t.ID.Name
		}
		return t.GoType.String()

	default:
		return t.GoType.String()
	}
}

// FieldPath returns a path string for a field within a type.
// Example: Posting, Entry -> "Posting.Entry"
func (s *TypeStringer) FieldPath(typeName string, fieldNames ...string) string {
	path := NewTypePath(typeName)
	for _, fn := range fieldNames {
		path = path.Field(fn)
	}
	return path.String()
}
