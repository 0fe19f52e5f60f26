package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ledgerPkg = "deepgraph/examples/ledger"
	brokenPkg = "deepgraph/examples/ledger/broken"
)

func fieldByName(t *testing.T, info *TypeInfo, name string) *FieldInfo {
	t.Helper()

	for i := range info.Fields {
		if info.Fields[i].Name == name {
			return &info.Fields[i]
		}
	}
	require.Failf(t, "field not found", "%s has no field %s", info.ID, name)

	return nil
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(ledgerPkg, brokenPkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	// Check that packages were loaded
	assert.Contains(t, graph.Packages, ledgerPkg)
	assert.Contains(t, graph.Packages, brokenPkg)

	// Check that types were extracted
	assert.Contains(t, graph.Types, TypeID{PkgPath: ledgerPkg, Name: "Journal"})
	assert.Contains(t, graph.Types, TypeID{PkgPath: brokenPkg, Name: "Both"})
	assert.Same(t, graph, analyzer.Graph())
}

func TestAnalyzer_AccountFields(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages(ledgerPkg)
	require.NoError(t, err)

	account, err := analyzer.GetStruct(ledgerPkg, "Account")
	require.NoError(t, err)
	assert.Equal(t, TypeKindStruct, account.Kind)

	var names []string
	for _, f := range account.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"ID", "Name", "Opened", "Balance", "Parent"}, names)

	opened := fieldByName(t, account, "Opened")
	assert.Equal(t, TypeKindExternal, opened.Type.Kind)
	assert.Equal(t, "time.Time", opened.Type.ID.String())

	// self reference resolves to the cached entry
	parent := fieldByName(t, account, "Parent")
	require.Equal(t, TypeKindPointer, parent.Type.Kind)
	assert.Same(t, account, parent.Type.ElemType)
}

func TestAnalyzer_UnexportedFields(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages(ledgerPkg)
	require.NoError(t, err)

	journal, err := analyzer.GetStruct(ledgerPkg, "Journal")
	require.NoError(t, err)

	postings := fieldByName(t, journal, "postings")
	assert.False(t, postings.Exported)
	require.Equal(t, TypeKindSlice, postings.Type.Kind)
	assert.Equal(t, TypeKindPointer, postings.Type.ElemType.Kind)

	index := fieldByName(t, journal, "index")
	require.Equal(t, TypeKindMap, index.Type.Kind)
	assert.Equal(t, TypeKindBasic, index.Type.KeyType.Kind)
	assert.Equal(t, TypeKindBasic, index.Type.ElemType.Kind)
}

func TestAnalyzer_Directives(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(ledgerPkg)
	require.NoError(t, err)

	journal := graph.GetType(TypeID{PkgPath: ledgerPkg, Name: "Journal"})
	require.NotNil(t, journal)
	d, ok := journal.Directive(DirectiveClone)
	require.True(t, ok)
	assert.Equal(t, "Snapshot", d.Arg)
	assert.Equal(t, "//deepgraph:clone Snapshot", d.String())
	assert.True(t, d.Pos.IsValid())

	money := graph.GetType(TypeID{PkgPath: ledgerPkg, Name: "Money"})
	require.NotNil(t, money)
	assert.Empty(t, money.Directives)

	posting, err := analyzer.GetStruct(ledgerPkg, "Posting")
	require.NoError(t, err)
	assert.True(t, fieldByName(t, posting, "Cached").IsTransient())
	assert.False(t, fieldByName(t, posting, "Entry").IsTransient())
}

func TestAnalyzer_GetStructErrors(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages(ledgerPkg)
	require.NoError(t, err)

	_, err = analyzer.GetStruct(ledgerPkg, "Nope")
	assert.ErrorContains(t, err, "not found")

	_, err = analyzer.GetStruct(ledgerPkg, "Currency")
	assert.ErrorContains(t, err, "not a struct (kind: alias)")
}

func TestAnalyzer_LoadErrors(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("deepgraph/examples/does-not-exist")
	assert.Error(t, err)
}

func TestFieldInfo_TransientTag(t *testing.T) {
	f := FieldInfo{Name: "cache", Tag: `graph:"transient" json:"-"`}
	assert.True(t, f.IsTransient())
	assert.True(t, f.HasTag("json"))
	assert.Equal(t, "transient", f.GetTag("graph"))

	f = FieldInfo{Name: "id", Tag: `graph:"other"`}
	assert.False(t, f.IsTransient())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "map", TypeKindMap.String())
	assert.Equal(t, "external", TypeKindExternal.String())
	assert.Equal(t, "unknown", TypeKind(42).String())
}
