package diagnostic

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Buckets(t *testing.T) {
	var d Diagnostics
	d.AddInfo("DG005", "inferred immutable", "p.Money", "", token.Position{})
	d.AddWarning("DG002", "exported field", "p.Rate", "Rate.From", token.Position{})
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddError("DG001", "conflict", "p.Both", "", token.Position{Filename: "types.go", Line: 7, Column: 1})
	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{"DG001", "DG002", "DG005"}, d.Codes())

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "types.go:7:1 [p.Both]: [DG001] conflict", err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddWarning("DG002", "w", "", "", token.Position{})
	b.AddError("DG004", "e", "", "", token.Position{})
	b.AddInfo("DG005", "i", "", "", token.Position{})

	a.Merge(b)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
}

func TestDiagnostic_String(t *testing.T) {
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "[T] F: [X] m", Diagnostic{Code: "X", Message: "m", TypeName: "T", FieldPath: "F"}.String())
	assert.Equal(t, "[X] m (did you mean a or b?)", Diagnostic{Code: "X", Message: "m", Suggestions: []string{"a", "b"}}.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
