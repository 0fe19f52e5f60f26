package declare

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// Source records where a manifest entry came from.
type Source int

const (
	SourceUnknown   Source = iota
	SourceManual           // written by hand
	SourceDirective        // //deepgraph: comment on the type
	SourceInferred         // static mutability analysis
)

// String returns the YAML spelling of the source.
func (s Source) String() string {
	switch s {
	case SourceManual:
		return "manual"
	case SourceDirective:
		return "directive"
	case SourceInferred:
		return "inferred"
	default:
		return "unknown"
	}
}

// ParseSource is the inverse of Source.String.
func ParseSource(str string) (Source, error) {
	switch str {
	case "", "unknown":
		return SourceUnknown, nil
	case "manual":
		return SourceManual, nil
	case "directive":
		return SourceDirective, nil
	case "inferred":
		return SourceInferred, nil
	default:
		return SourceUnknown, fmt.Errorf("unknown source %q", str)
	}
}

// UnmarshalYAML implements custom YAML unmarshaling for Source.
func (s *Source) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return err
	}

	parsed, err := ParseSource(str)
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}

// MarshalYAML implements custom YAML marshaling for Source.
func (s Source) MarshalYAML() (any, error) {
	return s.String(), nil
}

// IsZero lets omitempty drop unknown sources.
func (s Source) IsZero() bool {
	return s == SourceUnknown
}
