package options

import (
	"slices"

	"deepgraph/errs"
)

// Clone controls which parts of a graph are duplicated.
type Clone struct {
	CloneTransientFields     bool `yaml:"transient_fields"`  // copy fields tagged graph:"transient" or declared transient
	CloneSyntheticFields     bool `yaml:"synthetic_fields"`  // copy blank "_" fields
	CloneImmutable           bool `yaml:"immutable"`         // duplicate declared-immutable reference types instead of sharing them
	UseCustomCloneOperations bool `yaml:"custom_operations"` // honor declared clone methods, constructors and DeepCopy
}

// DefaultClone returns the documented defaults.
func DefaultClone() Clone {
	return Clone{
		CloneTransientFields:     true,
		CloneSyntheticFields:     false,
		CloneImmutable:           false,
		UseCustomCloneOperations: true,
	}
}

// Reflect holds the knobs shared by structural equality and hashing.
type Reflect struct {
	// DeepReflect compares and hashes referenced values whose type has no
	// Equal / HashCode of its own by structure instead of by identity.
	DeepReflect bool `yaml:"deep_reflect"`
	// TestTransients includes transient fields in the comparison.
	TestTransients bool `yaml:"test_transients"`
	// ExcludeFields names fields skipped at every level of the walk.
	ExcludeFields []string `yaml:"exclude_fields,omitempty"`
}

// Excludes reports whether the named field is skipped.
func (r Reflect) Excludes(name string) bool {
	return slices.Contains(r.ExcludeFields, name)
}

// Equals configures structural equality.
type Equals struct {
	Reflect `yaml:",inline"`
}

// DefaultEquals returns the documented defaults.
func DefaultEquals() Equals {
	return Equals{}
}

// Hash configures structural hashing.
type Hash struct {
	Reflect    `yaml:",inline"`
	Seed       int32 `yaml:"seed"`
	Multiplier int32 `yaml:"multiplier"`
}

const (
	DefaultSeed       int32 = 17
	DefaultMultiplier int32 = 37
)

// DefaultHash returns the documented defaults.
func DefaultHash() Hash {
	return Hash{Seed: DefaultSeed, Multiplier: DefaultMultiplier}
}

// Validate checks that seed and multiplier are odd and non-zero.
func (h Hash) Validate() error {
	if h.Seed == 0 || h.Seed%2 == 0 {
		return errs.IllegalArgument(nil, "", "hash seed must be odd and non-zero, got %d", h.Seed)
	}
	if h.Multiplier == 0 || h.Multiplier%2 == 0 {
		return errs.IllegalArgument(nil, "", "hash multiplier must be odd and non-zero, got %d", h.Multiplier)
	}

	return nil
}

// AsEquals returns the equality configuration matching h, so equal values
// under it are guaranteed equal hashes.
func (h Hash) AsEquals() Equals {
	return Equals{Reflect: h.Reflect}
}
