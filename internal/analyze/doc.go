// Package analyze provides package loading, directive scanning and static
// mutability analysis.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build an
// in-memory model of named types, reads //deepgraph: directives from their
// doc comments and infers which struct types are immutable. The outcome is
// a declare.Manifest that the runtime registry can load.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: kind, fields, directives and source position of a type
//   - Directive: one parsed //deepgraph: comment
//   - Report: type graph, manifest and diagnostics of a scan
package analyze
