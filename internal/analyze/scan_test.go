package analyze

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepgraph/declare"
	"deepgraph/internal/diagnostic"
)

func entryFor(m *declare.Manifest, name string) (declare.TypeEntry, bool) {
	for _, e := range m.Types {
		if e.Type == name {
			return e, true
		}
	}

	return declare.TypeEntry{}, false
}

func fieldPaths(ds []diagnostic.Diagnostic) []string {
	var out []string
	for _, d := range ds {
		out = append(out, d.FieldPath)
	}

	return out
}

func TestScan_Ledger(t *testing.T) {
	report, err := NewAnalyzer().Scan(ledgerPkg)
	require.NoError(t, err)
	require.True(t, report.Diagnostics.IsValid(), report.Diagnostics.Error())

	m := report.Manifest
	require.NoError(t, m.Validate())

	var names []string
	for _, e := range m.Types {
		names = append(names, e.Type)
	}
	assert.Equal(t, []string{
		ledgerPkg + ".Book",
		ledgerPkg + ".Entry",
		ledgerPkg + ".Journal",
		ledgerPkg + ".Money",
		ledgerPkg + ".Posting",
		ledgerPkg + ".Quote",
		ledgerPkg + ".Rate",
	}, names)

	tests := []struct {
		name string
		want declare.TypeEntry
	}{
		{"Book", declare.TypeEntry{NonCloneable: true, Source: declare.SourceDirective}},
		{"Entry", declare.TypeEntry{Flat: true, Source: declare.SourceDirective}},
		{"Journal", declare.TypeEntry{Clone: "Snapshot", Source: declare.SourceDirective}},
		{"Money", declare.TypeEntry{Immutable: true, Source: declare.SourceInferred}},
		{"Posting", declare.TypeEntry{Transient: declare.StringOrArray{"Cached"}, Source: declare.SourceDirective}},
		{"Quote", declare.TypeEntry{Transient: declare.StringOrArray{"fetched"}, Source: declare.SourceDirective}},
		{"Rate", declare.TypeEntry{Immutable: true, Source: declare.SourceDirective}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := entryFor(m, ledgerPkg+"."+tt.name)
			require.True(t, ok)

			tt.want.Type = ledgerPkg + "." + tt.name
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan_LedgerDiagnostics(t *testing.T) {
	report, err := NewAnalyzer().Scan(ledgerPkg)
	require.NoError(t, err)

	d := report.Diagnostics
	assert.Empty(t, d.Errors)

	// Rate is declared immutable but exposes its fields
	require.Len(t, d.Warnings, 4)
	for _, w := range d.Warnings {
		assert.Equal(t, CodeContradicted, w.Code)
		assert.Equal(t, ledgerPkg+".Rate", w.TypeName)
		assert.Contains(t, w.Message, "field is exported")
	}
	assert.Equal(t, []string{"Rate.From", "Rate.To", "Rate.Factor", "Rate.AsOf"}, fieldPaths(d.Warnings))

	require.Len(t, d.Infos, 1)
	assert.Equal(t, CodeInferred, d.Infos[0].Code)
	assert.Equal(t, ledgerPkg+".Money", d.Infos[0].TypeName)
}

func TestScan_Broken(t *testing.T) {
	report, err := NewAnalyzer().Scan(brokenPkg)
	require.NoError(t, err)

	d := report.Diagnostics
	assert.False(t, d.IsValid())

	var errs []string
	for _, e := range d.Errors {
		errs = append(errs, e.Code+" "+e.TypeName)
	}
	assert.Equal(t, []string{
		CodeConflict + " " + brokenPkg + ".Both",
		CodeCloneMethod + " " + brokenPkg + ".Missing",
		CodeCloneMethod + " " + brokenPkg + ".Shaped",
		CodeMalformed + " " + brokenPkg + ".Typo",
		CodeMalformed + " " + brokenPkg + ".Unknown",
	}, errs)
	assert.Contains(t, d.Errors[1].Message, "does not exist")
	assert.Equal(t, []string{"Clone"}, d.Errors[1].Suggestions)
	assert.Contains(t, d.Errors[2].Message, "has signature")
	assert.Equal(t, []string{"immutable"}, d.Errors[3].Suggestions)
	assert.Contains(t, d.Errors[4].Message, "//deepgraph:frozen")
	assert.Empty(t, d.Errors[4].Suggestions)

	require.Len(t, d.Warnings, 1)
	assert.Equal(t, CodeContradicted, d.Warnings[0].Code)
	assert.Equal(t, brokenPkg+".Mutable", d.Warnings[0].TypeName)
	assert.Contains(t, d.Warnings[0].Message, "method Set has a pointer receiver")

	// unknown directives are ignored, so the types themselves are inferred
	require.Len(t, d.Infos, 2)
	assert.Equal(t, brokenPkg+".Typo", d.Infos[0].TypeName)
	assert.Equal(t, brokenPkg+".Unknown", d.Infos[1].TypeName)

	// conflicting entries still land in the manifest so check can report them
	assert.Error(t, report.Manifest.Validate())
}

func TestInference_Rules(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(ledgerPkg)
	require.NoError(t, err)

	in := newInference(graph)
	named := func(name string) *types.Named {
		info := graph.GetType(TypeID{PkgPath: ledgerPkg, Name: name})
		require.NotNil(t, info)

		return info.GoType.(*types.Named)
	}

	tests := []struct {
		name      string
		immutable bool
	}{
		{"Money", true},
		{"Currency", true},
		{"Rate", true}, // declared
		{"Account", false},
		{"Journal", false},
		{"Book", false},
		{"Quote", false},
		{"Tick", false}, // holds a Quote by value
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.immutable, in.immutable(named(tt.name)))
		})
	}

	assert.Len(t, in.violations(named("Rate")), 4)
	assert.Empty(t, in.violations(named("Money")))
	assert.Equal(t, []violation{{field: "fetched", reason: "field is transient"}}, in.violations(named("Quote")))
}

func TestParseDirectiveArity(t *testing.T) {
	tests := []struct {
		d    Directive
		want bool
	}{
		{Directive{Kind: DirectiveImmutable, Name: "immutable"}, true},
		{Directive{Kind: DirectiveImmutable, Name: "immutable", Arg: "x", arity: 1}, false},
		{Directive{Kind: DirectiveClone, Name: "clone"}, false},
		{Directive{Kind: DirectiveClone, Name: "clone", Arg: "Copy", arity: 1}, true},
		{Directive{Kind: DirectiveClone, Name: "clone", Arg: "Copy", arity: 2}, false},
		{Directive{Name: "frozen"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.wellFormed())
		})
	}

	assert.Equal(t, "transient", DirectiveTransient.String())
	assert.Equal(t, "unknown", DirectiveUnknown.String())
}
