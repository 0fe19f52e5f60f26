package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"reflect"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
	fset      *token.FileSet
	dir       string
	logger    *slog.Logger

	typeDirectives  map[*types.TypeName][]Directive
	fieldDirectives map[token.Pos][]Directive
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory packages are resolved from.
func WithDir(dir string) Option {
	return func(a *Analyzer) { a.dir = dir }
}

// WithLogger sets the logger of the analyzer.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:           NewTypeGraph(),
		typeCache:       make(map[types.Type]*TypeInfo),
		fset:            token.NewFileSet(),
		logger:          slog.New(slog.DiscardHandler),
		typeDirectives:  make(map[*types.TypeName][]Directive),
		fieldDirectives: make(map[token.Pos][]Directive),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/ledger", "deepgraph/examples/ledger").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
		Fset: a.fset,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var result *multierror.Error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			result = multierror.Append(result, e)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("package errors: %w", err)
	}

	// Register first so types of sibling packages are not external and
	// their field directives are known when a field type is reached early
	for _, pkg := range pkgs {
		if pkg.Types == nil || pkg.TypesInfo == nil {
			return nil, fmt.Errorf("package %s has no type information", pkg.PkgPath)
		}
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path: pkg.PkgPath,
			Name: pkg.Name,
		}
		for _, file := range pkg.Syntax {
			a.collectDirectives(pkg.TypesInfo, file)
		}
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
		a.logger.Debug("package loaded",
			slog.String("package", pkg.PkgPath),
			slog.Int("types", len(a.graph.Packages[pkg.PkgPath].Types)))
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts the named types of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	pkgInfo := a.graph.Packages[pkg.PkgPath]
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)

		// Only process type names (not variables, constants, functions)
		typeName, ok := obj.(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		// Unexported types take part only when annotated
		directives := a.typeDirectives[typeName]
		if !typeName.Exported() && len(directives) == 0 {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.PkgPath,
			Name:    name,
		}

		typeInfo := a.analyzeType(typeName.Type())
		typeInfo.ID = typeID
		typeInfo.Directives = directives
		typeInfo.Pos = a.fset.Position(typeName.Pos())

		a.graph.Types[typeID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}

	return nil
}

// collectDirectives records the directives of type and field doc comments in file.
func (a *Analyzer) collectDirectives(info *types.Info, file *ast.File) {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			if obj, ok := info.Defs[ts.Name].(*types.TypeName); ok {
				if ds := parseDirectives(a.fset, typeDocs(gd, ts)...); len(ds) > 0 {
					a.typeDirectives[obj] = ds
				}
			}

			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			for _, field := range st.Fields.List {
				ds := parseDirectives(a.fset, field.Doc)
				if len(ds) == 0 {
					continue
				}
				for _, pos := range fieldPositions(field) {
					a.fieldDirectives[pos] = ds
				}
			}
		}
	}
}

// fieldPositions returns the positions go/types reports for the variables
// declared by field.
func fieldPositions(field *ast.Field) []token.Pos {
	if len(field.Names) > 0 {
		pos := make([]token.Pos, len(field.Names))
		for i, n := range field.Names {
			pos[i] = n.Pos()
		}

		return pos
	}

	// embedded: the position of the type name
	expr := field.Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch e := expr.(type) {
	case *ast.SelectorExpr:
		return []token.Pos{e.Sel.Pos()}
	case *ast.IndexExpr:
		return []token.Pos{e.X.Pos()}
	default:
		return []token.Pos{expr.Pos()}
	}
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	t = types.Unalias(t)

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		// Interfaces, channels, functions, type parameters
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	if obj.Pkg() == nil {
		// error and comparable
		info.ID = TypeID{Name: obj.Name()}
		info.Kind = TypeKindExternal

		return
	}

	info.ID = TypeID{
		PkgPath: obj.Pkg().Path(),
		Name:    obj.Name(),
	}

	// Types of unscanned packages (e.g., time.Time) stay opaque
	if a.isExternalPackage(obj.Pkg().Path()) {
		info.Kind = TypeKindExternal
		return
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	default:
		// Named type wrapping something else (e.g., type Currency string)
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		fieldInfo := FieldInfo{
			Name:       field.Name(),
			Exported:   field.Exported(),
			Type:       a.analyzeType(field.Type()),
			Tag:        reflect.StructTag(st.Tag(i)),
			Embedded:   field.Embedded(),
			Index:      i,
			Directives: a.fieldDirectives[field.Pos()],
		}

		info.Fields = append(info.Fields, fieldInfo)
	}
}

// GetStruct returns the TypeInfo for a named struct by its package path and name.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}
	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}
	if info.Kind != TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", id, info.Kind)
	}

	return info, nil
}
