package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/BadPackage/receipt-analyzer/internal/analysis"
	"github.com/BadPackage/receipt-analyzer/internal/batch"
	"github.com/BadPackage/receipt-analyzer/internal/history"
	"github.com/BadPackage/receipt-analyzer/internal/report"
	"github.com/BadPackage/receipt-analyzer/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-analyzer")
	var (
		dir         = fs.StringLong("dir", "", "Directory containing receipt images")
		scannerType = fs.StringLong("scanner", "gemini", "Scanner type: 'gemini' or 'ollama'")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL   = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, llava-phi3, bakllava, qwen2-vl)")
		threshold   = fs.Float64Long("threshold", 0.80, "Fuzzy match similarity threshold in [0,1]")
		ceiling     = fs.Float64Long("price-ceiling", 1000.00, "Reject parsed prices above this amount as OCR artifacts")
		currency    = fs.StringLong("currency", "€", "Currency symbol used in the printed report")
		dbPath      = fs.StringLong("db", "", "Run history database file path (optional)")
		showHistory = fs.BoolLong("history", "Print past runs from the history database and exit")
		verbose     = fs.BoolLong("verbose", "Enable per-receipt debug logging")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_ANALYZER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if *verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *showHistory {
		if *dbPath == "" {
			slog.Error("History requires a database. Set --db to the history database path")
			os.Exit(1)
		}
		if err := printHistory(*dbPath, *currency); err != nil {
			slog.Error("Failed to print history", "error", err)
			os.Exit(1)
		}
		return
	}

	if *dir == "" {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: --dir is required")
		os.Exit(1)
	}

	// Initialize scanner based on type
	var scanner scanning.Scanner
	var err error
	switch *scannerType {
	case "gemini":
		// Get Gemini API key from flag or environment
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini scanner...", "model", *geminiModel)
		scanner, err = scanning.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama scanner...", "url", *ollamaURL, "model", *ollamaModel)
		scanner, err = scanning.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid scanner type", "type", *scannerType, "valid", "gemini or ollama")
		os.Exit(1)
	}
	defer scanner.Close()

	// Initialize run history when a database path is given
	var db history.DB
	if *dbPath != "" {
		slog.Info("Initializing history database...", "path", *dbPath)
		boltDB, err := history.NewBoltDB(*dbPath)
		if err != nil {
			slog.Error("Failed to initialize history database", "error", err)
			os.Exit(1)
		}
		defer boltDB.Close()
		db = boltDB
	}

	cfg := analysis.DefaultConfig()
	cfg.Threshold = *threshold
	cfg.CeilingCents = int64(math.Round(*ceiling * 100))

	slog.Info("Analyzing receipts", "dir", *dir)
	runner := batch.NewRunner(scanner, db, cfg)
	rep, err := runner.Run(*dir)
	if err != nil {
		slog.Error("Batch failed", "error", err)
		os.Exit(1)
	}

	report.Render(os.Stdout, rep, *currency)
}

// printHistory lists every stored run, oldest first.
func printHistory(dbPath, currency string) error {
	db, err := history.NewBoltDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s  receipts=%d  products=%d  total=%s\n",
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.ID,
			run.Receipts,
			len(run.Products),
			report.FormatCents(run.GrandTotalCents, currency),
		)
	}
	return nil
}
