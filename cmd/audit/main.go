package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/smefin/ledger-audit/internal/archive"
	infra "github.com/smefin/ledger-audit/internal/infra/sqlite"
	"github.com/smefin/ledger-audit/internal/logger"
	"github.com/smefin/ledger-audit/internal/narrative"
	"github.com/smefin/ledger-audit/internal/pipeline"
)

// Runs the full audit pipeline against a local ledger file and prints the
// result payload as JSON. Useful for trying out documents without the HTTP
// server.
func main() {
	log := logger.New()

	filePath := flag.String("file", "", "Path to the ledger document (.pdf, .csv or spreadsheet)")
	industry := flag.String("industry", "", "Industry label (defaults to Manufacturing)")
	dbPath := flag.String("db", os.Getenv("AUDIT_DB"), "SQLite database path; in-memory when empty")
	bucket := flag.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for archiving the document (optional)")
	flag.Parse()

	if *filePath == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read ledger file")
	}

	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		// A throwaway key is fine for ad hoc runs against an in-memory store.
		encryptionKey = "local-audit"
	}
	dsn := *dbPath
	if dsn == "" {
		dsn = ":memory:"
	}

	store, err := infra.Open(dsn, encryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open audit report store")
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	var generator narrative.Generator
	if os.Getenv("GEMINI_API_KEY") != "" {
		if gen, err := narrative.NewGeminiGenerator(ctx); err == nil {
			generator = gen
		} else {
			log.Warn().Err(err).Msg("Narrative service unavailable, using templated summary")
		}
	}
	narrator := narrative.New(generator, narrative.DefaultTimeout, log)

	var archiver archive.Archiver
	if *bucket != "" {
		archiver = archive.NewGCSArchiver(*bucket)
	}

	auditor := pipeline.NewAuditor(store, narrator, archiver, log)

	result, err := auditor.Run(ctx, data, filepath.Base(*filePath), *industry)
	if err != nil {
		log.Fatal().Err(err).Msg("Audit failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
}
