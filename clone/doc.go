// Package clone produces deep copies of arbitrary object graphs.
//
// A Driver walks the graph reachable from a root value and returns a copy
// in which every reference (pointer, slice, map) is new, unless its type is
// immutable or non-cloneable, while the shape of the graph is kept: two
// places referencing one object in the source reference one object in the
// copy, and cycles are reproduced. Pointer population is queued, so long
// chains are copied iteratively.
//
// The per-node procedure is:
//
//  1. nil references stay nil;
//  2. a reference already copied in this call yields its copy;
//  3. immutable (unless options.Clone.CloneImmutable) and non-cloneable
//     values are returned as they are;
//  4. a custom clone operation of the type produces the copy;
//  5. an Implementor registered for the type allocates the copy, which is
//     recorded before it is populated;
//  6. otherwise a bare instance is allocated, recorded and populated field
//     by field, parents included.
//
// Values of a flat type skip identity tracking for their whole subtree,
// which is only correct when that subtree contains no shared references
// and no cycles. This is not checked.
//
// Interior pointers (a pointer to a field or element of a value that is
// copied on its own) are not unified with the copy of the enclosing value.
package clone
