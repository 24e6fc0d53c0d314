package util

import "golang.org/x/text/unicode/norm"

// Normalize applies NFKD normalization so visually-equivalent input
// compares equal regardless of how the client composed it.
func Normalize(s string) string {
	return norm.NFKD.String(s)
}
