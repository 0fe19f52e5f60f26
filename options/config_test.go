package options

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepgraph/errs"
)

func TestDefaultClone(t *testing.T) {
	c := DefaultClone()
	assert.True(t, c.CloneTransientFields)
	assert.False(t, c.CloneSyntheticFields)
	assert.False(t, c.CloneImmutable)
	assert.True(t, c.UseCustomCloneOperations)
}

func TestHash_Validate(t *testing.T) {
	tests := []struct {
		name       string
		seed, mult int32
		valid      bool
	}{
		{"defaults", 17, 37, true},
		{"negative odd", -3, 5, true},
		{"zero seed", 0, 37, false},
		{"even seed", 16, 37, false},
		{"zero multiplier", 17, 0, false},
		{"even multiplier", 17, 38, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Hash{Seed: tt.seed, Multiplier: tt.mult}.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errs.ErrIllegalArgument)
			}
		})
	}
}

func TestReflect_Excludes(t *testing.T) {
	r := Reflect{ExcludeFields: []string{"cache", "ID"}}
	assert.True(t, r.Excludes("cache"))
	assert.False(t, r.Excludes("Name"))
}

func TestParse_KeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
clone:
  transient_fields: false
equals:
  deep_reflect: true
  exclude_fields: [updated]
hash:
  multiplier: 31
`))
	require.NoError(t, err)

	assert.False(t, cfg.Clone.CloneTransientFields)
	assert.True(t, cfg.Clone.UseCustomCloneOperations)
	assert.True(t, cfg.Equals.DeepReflect)
	assert.Equal(t, []string{"updated"}, cfg.Equals.ExcludeFields)
	assert.Equal(t, DefaultSeed, cfg.Hash.Seed)
	assert.Equal(t, int32(31), cfg.Hash.Multiplier)
}

func TestParse_RejectsEvenMultiplier(t *testing.T) {
	_, err := Parse([]byte("hash:\n  multiplier: 32\n"))
	assert.ErrorIs(t, err, errs.ErrIllegalArgument)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("clone: [unclosed"))
	assert.Error(t, err)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deepgraph.yaml")

	cfg := Default()
	cfg.Hash.DeepReflect = true
	require.NoError(t, WriteFile(&cfg, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Hash, loaded.Hash)
	assert.Equal(t, cfg.Clone, loaded.Clone)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
