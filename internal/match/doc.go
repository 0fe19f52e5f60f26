// Package match ranks identifiers by edit distance. The scanner uses it to
// suggest the directive or method a misspelled name most likely meant.
package match
