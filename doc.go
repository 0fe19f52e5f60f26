// Package deepgraph deep-copies, compares and hashes arbitrary Go object
// graphs by reflection.
//
// The three operations are Clone, StructuralEquals and StructuralHashCode.
// All of them run on per-type descriptors computed once and cached for the
// lifetime of the process, and all of them handle shared references and
// cycles.
//
// Types may be declared immutable, non-cloneable or flat, and may carry a
// custom clone operation, either in code (DeclareImmutable and friends) or
// in a YAML manifest (LoadManifest), typically produced by the
// "deepgraph scan" command from //deepgraph: directives. Declarations must
// be made before a type is first used.
//
//	cp, err := deepgraph.Clone(order, options.DefaultClone())
//	same, err := deepgraph.StructuralEquals(order, cp, options.DefaultEquals())
package deepgraph
