// Package structural compares and hashes object graphs by their contents.
//
// The root values are always examined field by field. Below the root, a
// reference is compared through the Equal method of the referenced type
// when it declares one, and otherwise by identity, unless deep reflection
// is enabled, in which case it is examined field by field as well. Struct
// levels that declare Equal or HashCode defer to it for themselves and
// their parents.
//
// Values equal under a configuration hash equally under the matching
// options.Hash configuration, provided every type whose Equal is used also
// declares a consistent HashCode.
package structural
