// Package declare records out-of-band capability flags for types.
//
// A declaration marks a type as immutable (shared instead of copied),
// non-cloneable (always returned as-is), or flat (never aliased inside
// one graph, so the clone identity map is bypassed for its subtree). It can
// also name a clone hook, either a method on the type or a constructor
// function, and list transient fields.
//
// Declarations are keyed either by reflect.Type or by the qualified name
// "import/path.TypeName". Name keys let a YAML manifest describe types
// without importing them:
//
//	version: "1"
//	types:
//	  - type: example.com/ledger.Money
//	    immutable: true
//	    source: directive
//	  - type: example.com/ledger.Journal
//	    clone: Snapshot
//	    transient: [index]
//	  - type: example.com/ledger.Line
//	    flat: true
//
// Declarations must be in place before the first descriptor of the type is
// built; descriptors are cached and never rebuilt.
package declare
