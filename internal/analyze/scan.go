package analyze

import (
	"cmp"
	"errors"
	"fmt"
	"go/types"
	"log/slog"
	"maps"
	"slices"

	"deepgraph/declare"
	"deepgraph/internal/diagnostic"
	"deepgraph/internal/match"
)

// suggestDistance bounds the edits between a misspelled name and a suggestion.
const suggestDistance = 2

// typeDirectives are the directive names valid on type declarations.
var typeDirectives = []string{"immutable", "noclone", "flat", "clone"}

// Diagnostic codes reported by Scan.
const (
	CodeConflict     = "DG001" // directives that cannot hold together
	CodeContradicted = "DG002" // immutable directive the analysis disagrees with
	CodeCloneMethod  = "DG003" // clone method missing or malformed
	CodeMalformed    = "DG004" // unknown or misplaced directive
	CodeInferred     = "DG005" // type inferred immutable
)

// Report is the outcome of a scan.
type Report struct {
	Graph       *TypeGraph
	Manifest    *declare.Manifest
	Diagnostics diagnostic.Diagnostics
}

// Scan loads the packages matched by patterns and turns their directives
// and the inferred immutable types into a manifest. Entries are sorted by
// qualified type name.
func (a *Analyzer) Scan(patterns ...string) (*Report, error) {
	graph, err := a.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Graph:    graph,
		Manifest: &declare.Manifest{Version: declare.ManifestVersion},
	}

	in := newInference(graph)
	ids := slices.SortedFunc(maps.Keys(graph.Types), func(x, y TypeID) int {
		return cmp.Compare(x.String(), y.String())
	})
	for _, id := range ids {
		if entry, ok := a.entry(graph.Types[id], in, &r.Diagnostics); ok {
			r.Manifest.Types = append(r.Manifest.Types, entry)
		}
	}

	a.logger.Debug("scan finished",
		slog.Int("types", len(ids)),
		slog.Int("entries", len(r.Manifest.Types)),
		slog.Int("errors", len(r.Diagnostics.Errors)),
		slog.Int("warnings", len(r.Diagnostics.Warnings)))

	return r, nil
}

// entry builds the manifest entry of info, if it deserves one.
func (a *Analyzer) entry(info *TypeInfo, in *inference, diags *diagnostic.Diagnostics) (declare.TypeEntry, bool) {
	named, ok := info.GoType.(*types.Named)
	if !ok {
		return declare.TypeEntry{}, false
	}

	name := info.ID.String()
	path := NewTypePath(info.ID.Name)
	e := declare.TypeEntry{Type: name, Source: declare.SourceDirective}
	annotated := false

	for _, d := range info.Directives {
		if !d.wellFormed() || d.Kind == DirectiveTransient {
			diag := diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticError,
				Code:     CodeMalformed,
				Message:  fmt.Sprintf("%s is not a valid type directive", d),
				TypeName: name,
				Pos:      d.Pos,
			}
			if d.Kind == DirectiveUnknown {
				diag.Suggestions = match.Suggest(d.Name, typeDirectives, suggestDistance)
			}
			diags.Add(diag)
			continue
		}

		annotated = true
		switch d.Kind {
		case DirectiveImmutable:
			e.Immutable = true
		case DirectiveNoClone:
			e.NonCloneable = true
		case DirectiveFlat:
			e.Flat = true
		case DirectiveClone:
			e.Clone = d.Arg
		}
	}

	for _, f := range info.Fields {
		for _, d := range f.Directives {
			if d.Kind != DirectiveTransient || !d.wellFormed() {
				diags.AddError(CodeMalformed, fmt.Sprintf("%s is not a valid field directive", d), name, path.Field(f.Name).String(), d.Pos)
				continue
			}
			annotated = true
			e.Transient = append(e.Transient, f.Name)
		}
	}

	if !annotated {
		if info.Kind != TypeKindStruct || !in.immutable(named) {
			return declare.TypeEntry{}, false
		}
		diags.AddInfo(CodeInferred, "inferred immutable", name, "", info.Pos)

		return declare.TypeEntry{Type: name, Immutable: true, Source: declare.SourceInferred}, true
	}

	if e.Immutable && e.NonCloneable {
		diags.AddError(CodeConflict, "immutable and noclone directives conflict", name, "", info.Pos)
	}
	if e.NonCloneable && e.Clone != "" {
		diags.AddError(CodeConflict, fmt.Sprintf("noclone conflicts with clone method %s", e.Clone), name, "", info.Pos)
	}
	if e.Clone != "" {
		if err := checkCloneMethod(named, e.Clone); err != nil {
			diag := diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticError,
				Code:     CodeCloneMethod,
				Message:  err.Error(),
				TypeName: name,
				Pos:      info.Pos,
			}
			if errors.Is(err, errNoCloneMethod) {
				diag.Suggestions = match.Suggest(e.Clone, methodNames(named), suggestDistance)
			}
			diags.Add(diag)
		}
	}
	if e.Immutable {
		for _, v := range in.violations(named) {
			field := ""
			if v.field != "" {
				field = path.Field(v.field).String()
			}
			diags.AddWarning(CodeContradicted, "declared immutable but "+v.reason, name, field, info.Pos)
		}
	}

	return e, true
}
