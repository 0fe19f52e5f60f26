package analyze

import (
	"go/ast"
	"go/token"
	"strings"

	"deepgraph/internal/common"
	"deepgraph/utils"
)

// DirectivePrefix starts every comment line the scanner interprets.
const DirectivePrefix = "//deepgraph:"

// DirectiveKind names a //deepgraph: directive.
type DirectiveKind int

const (
	DirectiveUnknown   DirectiveKind = iota
	DirectiveImmutable               // //deepgraph:immutable
	DirectiveNoClone                 // //deepgraph:noclone
	DirectiveFlat                    // //deepgraph:flat
	DirectiveClone                   // //deepgraph:clone <Method>
	DirectiveTransient               // //deepgraph:transient, on fields
)

var directiveNames = map[string]DirectiveKind{
	"immutable": DirectiveImmutable,
	"noclone":   DirectiveNoClone,
	"flat":      DirectiveFlat,
	"clone":     DirectiveClone,
	"transient": DirectiveTransient,
}

// String returns the directive name as written after the prefix.
func (k DirectiveKind) String() string {
	for name, kind := range directiveNames {
		if kind == k {
			return name
		}
	}

	return common.UnknownStr
}

// Directive is one parsed //deepgraph: comment line.
type Directive struct {
	Kind DirectiveKind
	Name string // as written, kept for unknown directives
	Arg  string
	Pos  token.Position

	arity int
}

func (d Directive) String() string {
	if d.Arg == "" {
		return DirectivePrefix + d.Name
	}

	return DirectivePrefix + d.Name + " " + d.Arg
}

// parseDirectives extracts the directives of a doc comment. Comment text
// that is not a directive is ignored.
func parseDirectives(fset *token.FileSet, docs ...*ast.CommentGroup) []Directive {
	var out []Directive
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, c := range doc.List {
			rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
			if !ok {
				continue
			}

			fields := strings.Fields(rest)
			name, arg := utils.Unpack2(fields)
			out = append(out, Directive{
				Kind:  directiveNames[name],
				Name:  name,
				Arg:   arg,
				Pos:   fset.Position(c.Slash),
				arity: max(len(fields)-1, 0),
			})
		}
	}

	return out
}

// wellFormed reports whether d is known and carries the arguments it needs.
func (d Directive) wellFormed() bool {
	switch d.Kind {
	case DirectiveUnknown:
		return false
	case DirectiveClone:
		return d.arity == 1
	default:
		return d.arity == 0
	}
}

func findDirective(ds []Directive, kind DirectiveKind) (Directive, bool) {
	for _, d := range ds {
		if d.Kind == kind {
			return d, true
		}
	}

	return Directive{}, false
}

// typeDocs returns the doc comments that apply to spec. A lone spec in a
// parenthesis-free declaration carries its doc on the GenDecl.
func typeDocs(decl *ast.GenDecl, spec *ast.TypeSpec) []*ast.CommentGroup {
	if spec.Doc != nil {
		return []*ast.CommentGroup{spec.Doc}
	}
	if !decl.Lparen.IsValid() {
		return []*ast.CommentGroup{decl.Doc}
	}

	return nil
}
