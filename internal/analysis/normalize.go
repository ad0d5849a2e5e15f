package analysis

import "strings"

// Normalize canonicalizes a raw product name into a comparable key: a single
// contiguous lowercase token containing only ASCII letters and digits.
// Whitespace, punctuation, currency symbols and accented characters are all
// dropped. Normalize is pure and idempotent; an empty result means the name
// is unusable for matching.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
