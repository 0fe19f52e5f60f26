package match

import (
	"cmp"
	"slices"
	"strings"
)

// Distance computes the Levenshtein distance between a and b: the minimum
// number of single-byte insertions, deletions or substitutions turning one
// into the other. It keeps two rows of the matrix only.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	// a is the shorter string
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity maps Distance to [0, 1], 1 meaning identical.
func Similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(longest)
}

// minSimilarity keeps short names from matching everything within reach.
const minSimilarity = 0.5

// Suggest returns the candidates within maxDistance of name that share at
// least half of it, closest first and alphabetically among equals.
// Comparison ignores case.
func Suggest(name string, candidates []string, maxDistance int) []string {
	type scored struct {
		name string
		dist int
	}

	lower := strings.ToLower(name)

	var hits []scored
	for _, c := range candidates {
		if c == name {
			continue
		}
		lc := strings.ToLower(c)
		if d := Distance(lower, lc); d <= maxDistance && Similarity(lower, lc) >= minSimilarity {
			hits = append(hits, scored{c, d})
		}
	}

	slices.SortFunc(hits, func(x, y scored) int {
		return cmp.Or(cmp.Compare(x.dist, y.dist), cmp.Compare(x.name, y.name))
	})

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}

	return out
}
