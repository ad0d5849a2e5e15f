package analysis

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// priceToken matches a trailing price: an optional currency symbol, then
// digits with an optional decimal part separated by '.' or ','. Receipts put
// the price at the end of the line, so the token is anchored there; when a
// line carries several numeric tokens this naturally picks the last one.
// Thousands separators are not understood: in "1,000.00" the trailing token
// is "000.00", zero cents, and the line is dropped as noise.
var priceToken = regexp.MustCompile(`[€$£]?(\d+)(?:[.,](\d+))?\s*$`)

// Classifier decides whether a single OCR line encodes a product/price pair.
// Lines that do not are noise and are silently dropped; OCR garbage must
// never abort a batch.
type Classifier struct {
	denylist map[string]bool
	ceiling  int64
}

// NewClassifier builds a Classifier from the given configuration.
func NewClassifier(cfg Config) *Classifier {
	denylist := make(map[string]bool, len(cfg.Denylist))
	for _, kw := range cfg.Denylist {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			denylist[kw] = true
		}
	}
	return &Classifier{denylist: denylist, ceiling: cfg.CeilingCents}
}

// Classify extracts a ParsedItem from one line of OCR text. The second
// return value is false when the line is noise: a denylisted keyword, no
// price token, an implausible price, or no usable product name.
func (c *Classifier) Classify(receipt, line string) (ParsedItem, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParsedItem{}, false
	}

	// Keywords match whole words only, so "cashew nuts" survives "cash" and
	// "cardigan" survives "card".
	lower := strings.ToLower(line)
	for _, word := range strings.FieldsFunc(lower, isWordSep) {
		if c.denylist[word] {
			return ParsedItem{}, false
		}
	}

	// Percentage lines are tax-rate or discount annotations, never products.
	if strings.ContainsRune(line, '%') {
		return ParsedItem{}, false
	}
	if !strings.ContainsFunc(line, unicode.IsDigit) {
		return ParsedItem{}, false
	}

	// Headers, footers and addresses have no trailing price token.
	m := priceToken.FindStringSubmatchIndex(line)
	if m == nil {
		return ParsedItem{}, false
	}

	cents, ok := parseCents(line[m[2]:m[3]], submatch(line, m, 2))
	if !ok || cents <= 0 || cents > c.ceiling {
		return ParsedItem{}, false
	}

	name := strings.TrimSpace(line[:m[0]])
	if name == "" || !strings.ContainsFunc(name, unicode.IsLetter) {
		return ParsedItem{}, false
	}

	return ParsedItem{RawName: name, PriceCents: cents, Receipt: receipt}, true
}

// isWordSep splits a line into denylist-comparable words.
func isWordSep(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// submatch returns capture group n of a FindStringSubmatchIndex result, or
// "" when the group did not participate.
func submatch(s string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}

// parseCents converts a whole/fraction digit pair into exact integer cents.
// A fraction longer than two digits is malformed OCR output, not a price.
// Both "3.99" and the European "3,99" arrive here the same way.
func parseCents(whole, frac string) (int64, bool) {
	if len(frac) > 2 {
		return 0, false
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/100 {
		return 0, false
	}
	cents := units * 100
	switch len(frac) {
	case 1:
		f, _ := strconv.ParseInt(frac, 10, 64)
		cents += f * 10
	case 2:
		f, _ := strconv.ParseInt(frac, 10, 64)
		cents += f
	}
	return cents, true
}
