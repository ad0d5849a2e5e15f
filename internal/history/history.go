// Package history persists batch run reports so past analyses can be
// compared without re-running OCR.
package history

import (
	"time"

	"github.com/BadPackage/receipt-analyzer/internal/analysis"
)

// Run is one completed batch analysis: the report snapshot plus when and
// over how many receipts it was produced.
type Run struct {
	ID              string                    `json:"id"`
	CreatedAt       time.Time                 `json:"created_at"`
	Receipts        int                       `json:"receipts"`
	Products        []analysis.ProductSummary `json:"products"`
	GrandTotalCents int64                     `json:"grand_total_cents"`
}

// DB defines the interface for run persistence
type DB interface {
	// SaveRun saves a completed run
	SaveRun(run *Run) error

	// GetRun retrieves a run by ID
	GetRun(id string) (*Run, error)

	// ListRuns returns all runs, oldest first
	ListRuns() ([]*Run, error)

	// Close closes the database connection
	Close() error
}
