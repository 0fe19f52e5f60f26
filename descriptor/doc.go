// Package descriptor computes and caches the per-type metadata the clone
// and structural packages run on.
//
// A ClassDescriptor is derived once per reflect.Type from the type's shape,
// the declarations registered in a declare.Registry and the methods the
// type provides. Descriptors are immutable after publication and shared by
// every goroutine through a Cache.
package descriptor
