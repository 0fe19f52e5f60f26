// Package diagnostic provides structured warnings and errors for the
// directive scanner.
//
// Key capabilities:
//   - Coded diagnostics (DG001...) with type, field and source position
//   - Severity buckets that can be merged across packages
//   - Folding of error diagnostics into a single error value
package diagnostic
