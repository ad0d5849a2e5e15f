package analysis

import (
	"fmt"
	"log/slog"
	"strings"
)

// Pipeline drives one batch: it splits each receipt's raw OCR text into
// lines, classifies them, and feeds every parsed item into a shared
// Aggregator. Receipts must be processed in a stable caller-supplied order
// for reports to be deterministic.
type Pipeline struct {
	classifier *Classifier
	aggregator *Aggregator

	receipts int
	lines    int
	noise    int
}

// NewPipeline creates a Pipeline for a fresh batch.
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{
		classifier: NewClassifier(cfg),
		aggregator: NewAggregator(NewMatcher(cfg.Threshold)),
	}
}

// Process ingests the raw OCR text of a single receipt. Unparseable lines
// are counted as noise and dropped; Process only fails on internal
// consistency errors, never on malformed input.
func (p *Pipeline) Process(receipt, text string) error {
	p.receipts++
	seen, noise := 0, 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		seen++
		item, ok := p.classifier.Classify(receipt, line)
		if !ok {
			noise++
			continue
		}
		if err := p.aggregator.Ingest(item); err != nil {
			return fmt.Errorf("processing receipt %s: %w", receipt, err)
		}
	}
	p.lines += seen
	p.noise += noise

	slog.Debug("processed receipt",
		"receipt", receipt,
		"lines", seen,
		"noise", noise,
		"products", p.aggregator.Len(),
	)
	return nil
}

// Report returns the aggregated result for everything processed so far,
// annotated with batch diagnostics. An empty batch yields an empty product
// list with a zero grand total.
func (p *Pipeline) Report() Report {
	rep := p.aggregator.Report()
	rep.Receipts = p.receipts
	rep.Lines = p.lines
	rep.NoiseLines = p.noise
	return rep
}
