// Package access provides per-type capabilities for reading and writing
// struct fields, allocating bare instances and calling the equality and
// hashing methods a type declares.
//
// Two interchangeable strategies implement the same interfaces:
//
//   - Portable walks reflect.Value.Field on every call and opens unexported
//     fields with reflect.NewAt over the field address.
//   - Direct precomputes byte offsets and loads/stores primitives through
//     typed unsafe pointers, bypassing per-call reflective dispatch.
//
// Selected probes the runtime once and picks Direct when raw offsets are
// trustworthy, falling back to Portable otherwise. The DEEPGRAPH_ACCESS
// environment variable ("portable" or "direct") overrides the probe. The
// choice is never observable through results.
//
// Go has no inheritance; the closest analogue is a struct whose first field
// embeds another struct by value. That embedded type is treated as the
// parent: FieldAccessors lists only the remaining fields, SuperAccessor
// describes the parent and Upcast yields the parent view of an instance.
package access
