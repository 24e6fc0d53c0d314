package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fold normalizes a string for case-insensitive substring matching.
// NFKD normalization keeps matching stable for decomposed input the same
// way credential normalization does elsewhere in the stack.
func fold(s string) string {
	return strings.ToLower(norm.NFKD.String(s))
}

// Filter computes the product subsequence a catalog view should render.
//
// A non-empty search term wins over the category: the result is every
// product whose title or category display name contains the term
// case-insensitively, in the original order. With an empty term and a
// non-zero category, the result is the exact category subsequence.
// With neither, the full sequence is returned. The input slice is never
// mutated.
func Filter(products []Product, term string, cat Category) []Product {
	if term != "" {
		needle := fold(term)
		var out []Product
		for _, p := range products {
			if strings.Contains(fold(p.Title), needle) ||
				strings.Contains(fold(string(p.Category)), needle) {
				out = append(out, p)
			}
		}
		return out
	}
	if cat != "" {
		var out []Product
		for _, p := range products {
			if p.Category == cat {
				out = append(out, p)
			}
		}
		return out
	}
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
