package analysis

import (
	"math"

	"github.com/agnivade/levenshtein"
)

// Similarity returns an edit-distance ratio in [0,1] between two normalized
// keys: 1 - distance/max(len(a), len(b)). Identical strings score 1, strings
// with nothing in common score 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := max(len(a), len(b))
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

// Matcher resolves a normalized key against the set of known products.
type Matcher struct {
	// thresholdPct is the similarity cutoff in whole percent. Keeping the
	// comparison in integer space makes the boundary exact: a key at
	// exactly 80% similarity matches under the default threshold, one at
	// 79% does not.
	thresholdPct int64
}

// NewMatcher builds a Matcher with the given similarity threshold in [0,1].
func NewMatcher(threshold float64) *Matcher {
	return &Matcher{thresholdPct: int64(math.Round(threshold * 100))}
}

// Match returns the existing product whose key is most similar to key, if
// that similarity meets the threshold. Candidates are scanned in creation
// order and only a strictly better score replaces the current best, so equal
// top scores resolve to the earliest-created product. An empty key never
// matches anything.
func (m *Matcher) Match(key string, products []*Product) (*Product, bool) {
	if key == "" {
		return nil, false
	}

	var (
		best       *Product
		bestDist   int64
		bestMaxLen int64
	)
	for _, p := range products {
		if p.Key == "" {
			continue
		}
		dist := int64(levenshtein.ComputeDistance(key, p.Key))
		maxLen := int64(max(len(key), len(p.Key)))
		// dist/maxLen < bestDist/bestMaxLen, compared exactly.
		if best == nil || dist*bestMaxLen < bestDist*maxLen {
			best, bestDist, bestMaxLen = p, dist, maxLen
		}
	}
	if best == nil {
		return nil, false
	}
	// similarity >= threshold  <=>  (maxLen-dist)*100 >= pct*maxLen
	if (bestMaxLen-bestDist)*100 < m.thresholdPct*bestMaxLen {
		return nil, false
	}
	return best, true
}
