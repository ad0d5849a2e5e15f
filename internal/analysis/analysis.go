// Package analysis turns noisy per-receipt OCR text into an aggregated,
// deduplicated product report. Everything in this package is pure in-memory
// computation: OCR, file access and rendering live elsewhere.
package analysis

// ParsedItem is one successfully classified product/price line.
// It is immutable after creation.
type ParsedItem struct {
	RawName    string
	PriceCents int64
	Receipt    string
}

// Product is a running aggregate owned by the Aggregator. Name is the raw
// name of the first item that created it and never changes afterwards, even
// when later items merge in under a different spelling.
type Product struct {
	Name       string
	Key        string
	TotalCents int64
	Count      int
}

// ProductSummary is a read-only snapshot of a Product for reporting.
type ProductSummary struct {
	Name       string `json:"name"`
	TotalCents int64  `json:"total_cents"`
	Count      int    `json:"count"`
}

// Report is the final result of a batch run. Products are sorted by total
// descending, ties broken by name ascending.
type Report struct {
	Products        []ProductSummary `json:"products"`
	GrandTotalCents int64            `json:"grand_total_cents"`
	UniqueProducts  int              `json:"unique_products"`
	Receipts        int              `json:"receipts"`
	Lines           int              `json:"lines"`
	NoiseLines      int              `json:"noise_lines"`
}

// Config holds the knobs the core recognizes.
type Config struct {
	// Threshold is the minimum similarity for two normalized keys to be
	// considered the same product. Interpreted at whole-percent granularity.
	Threshold float64

	// CeilingCents rejects implausibly large prices as OCR artifacts.
	CeilingCents int64

	// Denylist keywords mark a line as noise on a case-insensitive
	// substring match.
	Denylist []string
}

// DefaultConfig returns the standard configuration: 80% similarity, a
// 1000.00 price ceiling and the usual receipt noise keywords.
func DefaultConfig() Config {
	return Config{
		Threshold:    0.80,
		CeilingCents: 100000,
		Denylist: []string{
			"total", "subtotal", "tax", "vat",
			"change", "cash", "card", "balance",
		},
	}
}
