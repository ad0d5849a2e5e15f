package batch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BadPackage/receipt-analyzer/internal/analysis"
	"github.com/BadPackage/receipt-analyzer/internal/history"
	"github.com/BadPackage/receipt-analyzer/internal/scanning"
)

// IDGenerator generates unique IDs for runs
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Runner wires the collaborators around the analysis core: it walks a
// directory, runs every receipt through the OCR scanner, feeds the text into
// a fresh pipeline, and optionally records the resulting report.
type Runner struct {
	scanner     scanning.Scanner
	history     history.DB // nil disables run persistence
	cfg         analysis.Config
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewRunner creates a Runner with default ID generator and time source.
// history may be nil when runs should not be persisted.
func NewRunner(scanner scanning.Scanner, db history.DB, cfg analysis.Config) *Runner {
	return &Runner{
		scanner:     scanner,
		history:     db,
		cfg:         cfg,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewRunnerWithDeps creates a Runner with custom dependencies for testing
func NewRunnerWithDeps(scanner scanning.Scanner, db history.DB, cfg analysis.Config, idGen IDGenerator, timeSrc TimeSource) *Runner {
	return &Runner{
		scanner:     scanner,
		history:     db,
		cfg:         cfg,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// Run analyzes every receipt image under dir and returns the aggregated
// report. Receipts are fed to the pipeline one at a time in walk order;
// unreadable or unscannable files are logged and skipped so a single bad
// photo never sinks the batch.
func (r *Runner) Run(dir string) (analysis.Report, error) {
	images, err := List(dir)
	if err != nil {
		return analysis.Report{}, fmt.Errorf("listing receipts: %w", err)
	}

	pipeline := analysis.NewPipeline(r.cfg)
	for _, img := range images {
		slog.Info("Processing receipt", "file", img.ID)

		data, err := ReadImage(img)
		if err != nil {
			slog.Error("Failed to read receipt file", "file", img.ID, "error", err)
			continue
		}

		text, err := r.scanner.ExtractText(data, img.ContentType)
		if err != nil {
			slog.Error("Failed to scan receipt",
				"file", img.ID,
				"content_type", img.ContentType,
				"file_size", len(data),
				"error", err,
			)
			continue
		}

		if err := pipeline.Process(img.ID, text); err != nil {
			return analysis.Report{}, fmt.Errorf("analyzing %s: %w", img.ID, err)
		}
	}

	report := pipeline.Report()
	slog.Info("Batch complete",
		"receipts", report.Receipts,
		"lines", report.Lines,
		"noise", report.NoiseLines,
		"products", report.UniqueProducts,
	)

	if r.history != nil {
		run := &history.Run{
			ID:              r.idGenerator.Generate(),
			CreatedAt:       r.timeSource.Now(),
			Receipts:        report.Receipts,
			Products:        report.Products,
			GrandTotalCents: report.GrandTotalCents,
		}
		if err := r.history.SaveRun(run); err != nil {
			return analysis.Report{}, fmt.Errorf("saving run to database: %w", err)
		}
		slog.Info("Run saved", "run", run.ID)
	}

	return report, nil
}
