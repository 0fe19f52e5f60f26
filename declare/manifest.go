package declare

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"deepgraph/errs"
)

// ManifestVersion is the schema version written by WriteManifest.
const ManifestVersion = "1"

// Manifest is the YAML form of a set of name-keyed declarations.
type Manifest struct {
	Version string      `yaml:"version"`
	Types   []TypeEntry `yaml:"types"`
}

// TypeEntry declares one type.
type TypeEntry struct {
	Type         string        `yaml:"type"`
	Immutable    bool          `yaml:"immutable,omitempty"`
	NonCloneable bool          `yaml:"noclone,omitempty"`
	Flat         bool          `yaml:"flat,omitempty"`
	Clone        string        `yaml:"clone,omitempty"`
	Transient    StringOrArray `yaml:"transient,omitempty"`
	Source       Source        `yaml:"source,omitempty"`
}

// Declaration converts the entry to a Declaration.
func (e TypeEntry) Declaration() Declaration {
	return Declaration{
		Immutable:       e.Immutable,
		NonCloneable:    e.NonCloneable,
		Flat:            e.Flat,
		CloneMethod:     e.Clone,
		TransientFields: []string(e.Transient),
	}
}

// LoadManifest loads and parses a YAML manifest from the given path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return ParseManifest(data)
}

// ParseManifest parses YAML data into a Manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest

	err := yaml.Unmarshal(data, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&m)

	return &m, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(m *Manifest) {
	if m.Version == "" {
		m.Version = ManifestVersion
	}

	for i := range m.Types {
		if m.Types[i].Source == SourceUnknown {
			m.Types[i].Source = SourceManual
		}
	}
}

// Validate reports every problem of the manifest at once.
func (m *Manifest) Validate() error {
	var result *multierror.Error

	if m.Version != ManifestVersion {
		result = multierror.Append(result, errs.Configuration(nil, "unsupported manifest version %q", m.Version))
	}

	seen := make(map[string]int, len(m.Types))
	for i, e := range m.Types {
		if e.Type == "" {
			result = multierror.Append(result, errs.Configuration(nil, "types[%d]: missing type name", i))
			continue
		}
		if prev, dup := seen[e.Type]; dup {
			result = multierror.Append(result, errs.Configuration(nil, "types[%d]: %s already declared at types[%d]", i, e.Type, prev))
		}
		seen[e.Type] = i

		if e.Immutable && e.NonCloneable {
			result = multierror.Append(result, errs.Configuration(nil, "types[%d]: %s cannot be both immutable and noclone", i, e.Type))
		}
		if e.NonCloneable && e.Clone != "" {
			result = multierror.Append(result, errs.Configuration(nil, "types[%d]: %s is noclone but declares clone hook %s", i, e.Type, e.Clone))
		}
	}

	return result.ErrorOrNil()
}

// Apply validates m and records its declarations in r.
func (m *Manifest) Apply(r *Registry) error {
	if err := m.Validate(); err != nil {
		return err
	}

	for _, e := range m.Types {
		if err := r.DeclareName(e.Type, e.Declaration()); err != nil {
			return fmt.Errorf("failed to apply declaration for %s: %w", e.Type, err)
		}
	}

	return nil
}

// MarshalManifest serializes a Manifest to YAML.
func MarshalManifest(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

// WriteManifest writes a Manifest to the given path.
func WriteManifest(m *Manifest, path string) error {
	data, err := MarshalManifest(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}
