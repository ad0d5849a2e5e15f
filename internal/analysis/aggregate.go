package analysis

import (
	"fmt"
	"sort"
)

// Aggregator accumulates parsed items into products across every receipt of
// a batch. It owns the product set exclusively; one Aggregator per batch,
// fed sequentially. Matching each item against the set as it exists at
// ingest time is what makes first-seen names canonical, so concurrent
// ingestion is not supported.
type Aggregator struct {
	matcher  *Matcher
	products []*Product
}

// NewAggregator creates an empty Aggregator using the given matcher.
func NewAggregator(matcher *Matcher) *Aggregator {
	return &Aggregator{matcher: matcher}
}

// Ingest merges one item into the product set: the price is added to the
// best-matching existing product, or a new product is created with the
// item's raw name as its canonical display name. A non-positive price here
// is a classifier invariant violation, not OCR noise, and is surfaced
// instead of corrupting totals.
func (a *Aggregator) Ingest(item ParsedItem) error {
	if item.PriceCents <= 0 {
		return fmt.Errorf("ingesting %q: price must be positive, got %d cents", item.RawName, item.PriceCents)
	}

	key := Normalize(item.RawName)
	if key == "" {
		// Nothing left to compare after normalization; treat as noise.
		return nil
	}

	if p, ok := a.matcher.Match(key, a.products); ok {
		p.TotalCents += item.PriceCents
		p.Count++
		return nil
	}

	a.products = append(a.products, &Product{
		Name:       item.RawName,
		Key:        key,
		TotalCents: item.PriceCents,
		Count:      1,
	})
	return nil
}

// Len returns the number of distinct products seen so far.
func (a *Aggregator) Len() int {
	return len(a.products)
}

// Report snapshots the current product set, sorted by total descending with
// ties broken by name ascending. It never mutates state and may be called
// repeatedly.
func (a *Aggregator) Report() Report {
	products := make([]ProductSummary, 0, len(a.products))
	var grandTotal int64
	for _, p := range a.products {
		products = append(products, ProductSummary{
			Name:       p.Name,
			TotalCents: p.TotalCents,
			Count:      p.Count,
		})
		grandTotal += p.TotalCents
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].TotalCents != products[j].TotalCents {
			return products[i].TotalCents > products[j].TotalCents
		}
		return products[i].Name < products[j].Name
	})

	return Report{
		Products:        products,
		GrandTotalCents: grandTotal,
		UniqueProducts:  len(products),
	}
}
