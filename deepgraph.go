package deepgraph

import (
	"reflect"

	"deepgraph/clone"
	"deepgraph/declare"
	"deepgraph/options"
	"deepgraph/structural"
)

// Clone returns a deep copy of v.
func Clone[T any](v T, cfg options.Clone) (T, error) {
	return clone.Clone(v, clone.WithConfig(cfg))
}

// StructuralEquals reports whether a and b are equal field by field.
func StructuralEquals[T any](a, b T, cfg options.Equals) (bool, error) {
	return structural.EqualValues(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem(), cfg)
}

// StructuralHashCode returns a hash of a consistent with StructuralEquals
// under cfg.AsEquals().
func StructuralHashCode[T any](a T, cfg options.Hash) (int32, error) {
	return structural.HashValue(reflect.ValueOf(&a).Elem(), cfg)
}

// RegisterImplementor binds impl to exactly the type t for every later clone.
func RegisterImplementor(t reflect.Type, impl clone.Implementor) {
	clone.Default().Register(t, impl)
}

// DeclareImmutable declares T immutable.
func DeclareImmutable[T any]() error {
	return declare.Immutable[T](declare.Default())
}

// DeclareNonCloneable declares T non-cloneable.
func DeclareNonCloneable[T any]() error {
	return declare.NonCloneable[T](declare.Default())
}

// DeclareFlat declares T flat: its values hold no shared references and no cycles.
func DeclareFlat[T any]() error {
	return declare.Flat[T](declare.Default())
}

// DeclareCloneWith declares fn as the clone operation of T.
func DeclareCloneWith[T any](fn func(T) T) error {
	return declare.CloneWith(declare.Default(), fn)
}

// LoadManifest applies the declarations of a manifest file.
func LoadManifest(path string) error {
	m, err := declare.LoadManifest(path)
	if err != nil {
		return err
	}

	return m.Apply(declare.Default())
}
